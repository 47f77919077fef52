package tree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// AttrPrefix is prepended to attribute names, TextKey holds the text of elements
// that also carry attributes or children.
const (
	AttrPrefix = "@"
	TextKey    = "#text"
)

// ErrEmptyDocument no root element was found
var ErrEmptyDocument = errors.New("empty document")

var decimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// element collects one open element while its content is decoded
type element struct {
	name   string
	fields Object
	text   strings.Builder
}

// ParseXML decodes an XML document into a tree. The result is an Object holding
// the root element under its name. Namespace prefixes are kept as written, so
// <gesmes:Envelope> becomes the field "gesmes:Envelope".
//
// An element without attributes and children becomes a scalar revived from its
// text, or Null when it has none. Other elements become an Object with "@name"
// attribute fields and one field per child name; repeated child names collect
// into an Array in document order.
func ParseXML(r io.Reader) (Node, error) {
	d := xml.NewDecoder(r)

	var stack []*element
	var root Object

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, errors.New("decoding xml: multiple root elements")
			}
			el := &element{name: qualified(t.Name), fields: Object{}}
			for _, a := range t.Attr {
				el.fields[AttrPrefix+qualified(a.Name)] = revive(a.Value)
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("decoding xml: unexpected end element %q", qualified(t.Name))
			}
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if name := qualified(t.Name); name != el.name {
				return nil, fmt.Errorf("decoding xml: element %q closed by %q", el.name, name)
			}

			value := el.value()
			if len(stack) == 0 {
				root = Object{el.name: value}
				continue
			}
			stack[len(stack)-1].add(el.name, value)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("decoding xml: element %q not closed", stack[len(stack)-1].name)
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// add stores a child value, turning repeated names into an Array
func (el *element) add(name string, value Node) {
	existing, ok := el.fields[name]
	if !ok {
		el.fields[name] = value
		return
	}
	if arr, ok := existing.(Array); ok {
		el.fields[name] = append(arr, value)
		return
	}
	el.fields[name] = Array{existing, value}
}

func (el *element) value() Node {
	text := strings.TrimSpace(el.text.String())
	if len(el.fields) == 0 {
		if text == "" {
			return Null{}
		}
		return revive(text)
	}
	if text != "" {
		el.fields[TextKey] = revive(text)
	}
	return el.fields
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// revive turns scalar text into a Bool or Number where it reads as one
func revive(s string) Node {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if decimal.MatchString(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Number(f)
		}
	}
	return String(s)
}
