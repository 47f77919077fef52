// Package tree models untyped documents as a tagged variant of objects, arrays
// and scalars.
package tree

// Node one value of a document: Object, Array, String, Number, Bool or Null.
type Node interface {
	node()
}

// Object a mapping of field names to nodes
type Object map[string]Node

// Array an ordered sequence of nodes
type Array []Node

// String a text scalar
type String string

// Number a numeric scalar
type Number float64

// Bool a boolean scalar
type Bool bool

// Null an empty value
type Null struct{}

func (Object) node() {}
func (Array) node()  {}
func (String) node() {}
func (Number) node() {}
func (Bool) node()   {}
func (Null) node()   {}

// Field returns the node stored under name.
func (o Object) Field(name string) (Node, bool) {
	n, ok := o[name]
	return n, ok && n != nil
}

// AsObject returns n as an Object, false for any other variant or a nil Object.
func AsObject(n Node) (Object, bool) {
	o, ok := n.(Object)
	return o, ok && o != nil
}

// AsArray returns n as an Array.
func AsArray(n Node) (Array, bool) {
	a, ok := n.(Array)
	return a, ok
}

// AsString returns n as a string.
func AsString(n Node) (string, bool) {
	s, ok := n.(String)
	return string(s), ok
}

// AsNumber returns n as a float64.
func AsNumber(n Node) (float64, bool) {
	f, ok := n.(Number)
	return float64(f), ok
}
