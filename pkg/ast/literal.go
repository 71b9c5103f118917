package ast

import "strings"

// LiteralNode is an author-written example value.
type LiteralNode interface {
	literalNode()
}

// ObjectLiteral is a set of assignments. Keys are paths (a.b.c = 1).
type ObjectLiteral struct {
	Fields []LiteralField
}

// LiteralField is one assignment of an ObjectLiteral.
type LiteralField struct {
	KeyPath []string
	Value   LiteralNode
}

// Key joins the key path with dots.
func (f LiteralField) Key() string {
	return strings.Join(f.KeyPath, ".")
}

// ListLiteral is an ordered list of literal items.
type ListLiteral struct {
	Items []LiteralNode
}

// PrimitiveLiteral carries a string, float64 or bool value.
type PrimitiveLiteral struct {
	Value any
}

// NoneLiteral is the explicit absence of a value.
type NoneLiteral struct{}

func (*ObjectLiteral) literalNode()    {}
func (*ListLiteral) literalNode()      {}
func (*PrimitiveLiteral) literalNode() {}
func (*NoneLiteral) literalNode()      {}

// Lookup returns the value assigned to name, matching the joined key path.
// When a key is assigned more than once the last assignment wins.
func (o *ObjectLiteral) Lookup(name string) (LiteralNode, bool) {
	if o == nil {
		return nil, false
	}
	var (
		found LiteralNode
		ok    bool
	)
	for _, field := range o.Fields {
		if field.Key() == name {
			found, ok = field.Value, true
		}
	}
	return found, ok
}
