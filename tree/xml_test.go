package tree

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

const ecbDaily = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<gesmes:Sender>
		<gesmes:name>European Central Bank</gesmes:name>
	</gesmes:Sender>
	<Cube>
		<Cube time='2024-01-02'>
			<Cube currency='USD' rate='1.0956'/>
			<Cube currency='JPY' rate='155.59'/>
			<Cube currency='GBP' rate='0.86518'/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func TestParseXML_ECBDocument(t *testing.T) {
	doc, err := ParseXML(strings.NewReader(ecbDaily))
	require.NoError(t, err)

	root, ok := AsObject(doc)
	require.True(t, ok)

	envelope, ok := AsObject(root["gesmes:Envelope"])
	require.True(t, ok)
	assert.Equal(t, String("http://www.gesmes.org/xml/2002-08-01"), envelope["@xmlns:gesmes"])
	assert.Equal(t, String("Reference rates"), envelope["gesmes:subject"])

	sender, ok := AsObject(envelope["gesmes:Sender"])
	require.True(t, ok)
	assert.Equal(t, String("European Central Bank"), sender["gesmes:name"])

	outer, ok := AsObject(envelope["Cube"])
	require.True(t, ok)
	inner, ok := AsObject(outer["Cube"])
	require.True(t, ok)
	assert.Equal(t, String("2024-01-02"), inner["@time"])

	leaves, ok := AsArray(inner["Cube"])
	require.True(t, ok)
	require.Len(t, leaves, 3)
	assert.Equal(t, Object{"@currency": String("USD"), "@rate": Number(1.0956)}, leaves[0])
	assert.Equal(t, Object{"@currency": String("JPY"), "@rate": Number(155.59)}, leaves[1])
	assert.Equal(t, Object{"@currency": String("GBP"), "@rate": Number(0.86518)}, leaves[2])
}

func TestParseXML_Scalars(t *testing.T) {
	doc, err := ParseXML(strings.NewReader(`<r a="1e3" b="true" c="x1" d=""><e/><f> 42 </f><g>false</g><h>0x10</h></r>`))
	require.NoError(t, err)

	want := Object{
		"r": Object{
			"@a": Number(1000),
			"@b": Bool(true),
			"@c": String("x1"),
			"@d": String(""),
			"e":  Null{},
			"f":  Number(42),
			"g":  Bool(false),
			"h":  String("0x10"),
		},
	}
	assert.Equal(t, Node(want), doc)
}

func TestParseXML_MixedText(t *testing.T) {
	doc, err := ParseXML(strings.NewReader(`<r id="7">hello</r>`))
	require.NoError(t, err)
	assert.Equal(t, Node(Object{"r": Object{"@id": Number(7), "#text": String("hello")}}), doc)
}

func TestParseXML_SingleChildIsNotArray(t *testing.T) {
	doc, err := ParseXML(strings.NewReader(`<r><c v="1"/></r>`))
	require.NoError(t, err)

	r, _ := AsObject(doc.(Object)["r"])
	_, isArray := AsArray(r["c"])
	assert.False(t, isArray)
}

func TestParseXML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"text only", "just text"},
		{"unclosed", "<a><b></b>"},
		{"mismatched", "<a><b></a></b>"},
		{"two roots", "<a/><b/>"},
		{"garbage", "<a <b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseXML(strings.NewReader(tt.input))
			assert.Error(t, err)
			assert.Nil(t, doc)
		})
	}
}

func TestAccessors(t *testing.T) {
	var nilObject Object
	_, ok := AsObject(nilObject)
	assert.False(t, ok)

	_, ok = AsObject(nil)
	assert.False(t, ok)

	_, ok = AsObject(String("x"))
	assert.False(t, ok)

	o := Object{"a": Number(1), "b": nil}
	n, ok := o.Field("a")
	assert.True(t, ok)
	assert.Equal(t, Number(1), n)
	_, ok = o.Field("b")
	assert.False(t, ok)
	_, ok = o.Field("c")
	assert.False(t, ok)

	s, ok := AsString(String("x"))
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = AsString(Number(1))
	assert.False(t, ok)

	f, ok := AsNumber(Number(1.5))
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	_, ok = AsNumber(String("1.5"))
	assert.False(t, ok)

	_, ok = AsArray(Array{})
	assert.True(t, ok)
	_, ok = AsArray(Null{})
	assert.False(t, ok)
}
