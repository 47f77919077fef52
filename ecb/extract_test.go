package ecb

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-exchange-rates-api"
	"go-exchange-rates-api/tree"
	"strings"
	"testing"
)

func document(day tree.Object) tree.Node {
	return tree.Object{
		"gesmes:Envelope": tree.Object{
			"Cube": tree.Object{
				"Cube": day,
			},
		},
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		doc  tree.Node
		want *rates.ExchangeRate
	}{
		{
			"malformed entries are dropped",
			document(tree.Object{
				"@time": tree.String("2024-01-02"),
				"Cube": tree.Array{
					tree.Object{"@currency": tree.String("USD"), "@rate": tree.Number(1.08)},
					tree.Object{"@currency": tree.String(""), "@rate": tree.Number(1.2)},
					tree.Object{"@currency": tree.String("GBP"), "@rate": tree.String("bad")},
				},
			}),
			&rates.ExchangeRate{Amount: 1.0, Base: "EUR", Date: "2024-01-02", Rates: rates.Rates{"USD": 1.08}},
		},
		{
			"non object entries are skipped",
			document(tree.Object{
				"@time": tree.String("2024-01-02"),
				"Cube": tree.Array{
					tree.String("USD"),
					tree.Null{},
					tree.Array{},
					tree.Object{"@currency": tree.Number(1), "@rate": tree.Number(1.2)},
					tree.Object{"@rate": tree.Number(1.2)},
					tree.Object{"@currency": tree.String("CHF")},
					tree.Object{"@currency": tree.String("JPY"), "@rate": tree.Number(155.59)},
				},
			}),
			&rates.ExchangeRate{Amount: 1.0, Base: "EUR", Date: "2024-01-02", Rates: rates.Rates{"JPY": 155.59}},
		},
		{
			"empty rate list is still a record",
			document(tree.Object{
				"@time": tree.String("2024-01-02"),
				"Cube":  tree.Array{},
			}),
			&rates.ExchangeRate{Amount: 1.0, Base: "EUR", Date: "2024-01-02", Rates: rates.Rates{}},
		},
		{
			"missing time",
			document(tree.Object{
				"Cube": tree.Array{
					tree.Object{"@currency": tree.String("USD"), "@rate": tree.Number(1.08)},
				},
			}),
			nil,
		},
		{
			"numeric time",
			document(tree.Object{
				"@time": tree.Number(20240102),
				"Cube":  tree.Array{},
			}),
			nil,
		},
		{
			"missing rates",
			document(tree.Object{"@time": tree.String("2024-01-02")}),
			nil,
		},
		{
			"single rate is not a list",
			document(tree.Object{
				"@time": tree.String("2024-01-02"),
				"Cube":  tree.Object{"@currency": tree.String("USD"), "@rate": tree.Number(1.08)},
			}),
			nil,
		},
		{
			"inner cube is not an object",
			document(nil),
			nil,
		},
		{
			"outer cube missing",
			tree.Object{"gesmes:Envelope": tree.Object{}},
			nil,
		},
		{
			"envelope is scalar",
			tree.Object{"gesmes:Envelope": tree.String("x")},
			nil,
		},
		{
			"no envelope",
			tree.Object{"Envelope": tree.Object{}},
			nil,
		},
		{"string", tree.String("x"), nil},
		{"number", tree.Number(1), nil},
		{"null", tree.Null{}, nil},
		{"array", tree.Array{}, nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.doc)
			assert.Equal(t, tt.want != nil, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_ParsedDocument(t *testing.T) {
	doc, err := tree.ParseXML(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	got, ok := Extract(doc)
	require.True(t, ok)
	assert.Equal(t, 1.0, got.Amount)
	assert.Equal(t, rates.Currency("EUR"), got.Base)
	assert.Equal(t, "2024-01-02", got.Date)
	assert.Equal(t, rates.Rates{"USD": 1.0956, "JPY": 155.59, "GBP": 0.86518}, got.Rates)
}
