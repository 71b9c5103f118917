package ast

// PrimitiveKind enumerates the scalar kinds a profile can declare.
type PrimitiveKind string

const (
	PrimitiveString  PrimitiveKind = "string"
	PrimitiveNumber  PrimitiveKind = "number"
	PrimitiveBoolean PrimitiveKind = "boolean"
)

// Valid reports whether the kind is one of the declared primitives.
func (k PrimitiveKind) Valid() bool {
	switch k {
	case PrimitiveString, PrimitiveNumber, PrimitiveBoolean:
		return true
	default:
		return false
	}
}

// TypeNode is any node of the type grammar.
type TypeNode interface {
	typeNode()
}

// Primitive is a scalar type.
type Primitive struct {
	Kind PrimitiveKind
}

// Object declares a structured type with named fields.
type Object struct {
	Fields []FieldDecl
}

// FieldDecl is a single field of an Object. Type may be nil, in which case the
// named-field definition with the same name (if any) supplies it.
type FieldDecl struct {
	Name        string
	Required    bool
	Type        TypeNode
	Title       string
	Description string
}

// HasTitle reports whether the field carries inline documentation.
func (f FieldDecl) HasTitle() bool {
	return f.Title != ""
}

// List declares a homogeneous collection.
type List struct {
	ElementType TypeNode
}

// Enum declares a closed set of scalar values.
type Enum struct {
	Values []EnumValue
}

// EnumValue is one member of an Enum. Value holds a string, float64 or bool.
type EnumValue struct {
	Value any    `json:"value"`
	Title string `json:"title,omitempty"`
}

// Union declares a set of alternative types.
type Union struct {
	Alternatives []TypeNode
}

// ModelRef points at a NamedModelDefinition by name.
type ModelRef struct {
	Name string
}

// NonNull marks the wrapped type as non-nullable.
type NonNull struct {
	Inner TypeNode
}

func (*Primitive) typeNode() {}
func (*Object) typeNode()    {}
func (*List) typeNode()      {}
func (*Enum) typeNode()      {}
func (*Union) typeNode()     {}
func (*ModelRef) typeNode()  {}
func (*NonNull) typeNode()   {}

// String, Number and Boolean are shorthands used by importers and fixtures.
func String() *Primitive  { return &Primitive{Kind: PrimitiveString} }
func Number() *Primitive  { return &Primitive{Kind: PrimitiveNumber} }
func Boolean() *Primitive { return &Primitive{Kind: PrimitiveBoolean} }

// Required wraps a type node in NonNull unless it already is one.
func Required(node TypeNode) TypeNode {
	if node == nil {
		return nil
	}
	if _, ok := node.(*NonNull); ok {
		return node
	}
	return &NonNull{Inner: node}
}
