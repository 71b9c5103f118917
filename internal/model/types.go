package model

import (
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

// ModelKind enumerates the structural shapes a Model can take.
type ModelKind string

const (
	ModelObject ModelKind = "object"
	ModelList   ModelKind = "list"
	ModelEnum   ModelKind = "enum"
	ModelUnion  ModelKind = "union"
	ModelScalar ModelKind = "scalar"
	ModelNone   ModelKind = "none"
)

// Model is the resolved structural description of a type. It never contains
// named-model indirection. Only the fields relevant to Kind are populated.
//
// Collection fields are serialised without omitempty so templates walking the
// tree never fall through to an enclosing node's field of the same name.
type Model struct {
	Kind         ModelKind         `json:"kind"`
	NonNull      bool              `json:"nonNull"`
	Fields       []ModelField      `json:"fields"`
	Model        *Model            `json:"model"`
	Values       []ast.EnumValue   `json:"values"`
	Alternatives []Model           `json:"alternatives"`
	ScalarKind   ast.PrimitiveKind `json:"scalarKind,omitempty"`
}

// ModelField describes one field of an object Model.
type ModelField struct {
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	NonNull     bool   `json:"nonNull"`
	Model       Model  `json:"model"`
	Description string `json:"description"`
}

// ExampleKind enumerates example value shapes. Scalar examples use the scalar
// kind directly.
type ExampleKind string

const (
	ExampleObject  ExampleKind = "object"
	ExampleArray   ExampleKind = "array"
	ExampleString  ExampleKind = "string"
	ExampleNumber  ExampleKind = "number"
	ExampleBoolean ExampleKind = "boolean"
	ExampleNone    ExampleKind = "none"
)

// Example is a concrete value tree. Numbers are carried as float64.
type Example struct {
	Kind       ExampleKind       `json:"kind"`
	Properties []ExampleProperty `json:"properties"`
	Items      []Example         `json:"items"`
	Value      any               `json:"value"`
}

// ExampleProperty is a named member of an object Example. It serialises flat:
// the name sits next to the example's own fields.
type ExampleProperty struct {
	Name string `json:"name"`
	Example
}

type flatProperty struct {
	Name       string            `json:"name"`
	Kind       ExampleKind       `json:"kind"`
	Properties []ExampleProperty `json:"properties"`
	Items      []Example         `json:"items"`
	Value      any               `json:"value"`
}

// MarshalJSON writes the property as one object.
func (p ExampleProperty) MarshalJSON() ([]byte, error) {
	return json.Marshal(flatProperty{
		Name:       p.Name,
		Kind:       p.Kind,
		Properties: p.Properties,
		Items:      p.Items,
		Value:      p.Value,
	})
}

// UnmarshalJSON reads the flat form written by MarshalJSON.
func (p *ExampleProperty) UnmarshalJSON(data []byte) error {
	var flat flatProperty
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*p = ExampleProperty{
		Name: flat.Name,
		Example: Example{
			Kind:       flat.Kind,
			Properties: flat.Properties,
			Items:      flat.Items,
			Value:      flat.Value,
		},
	}
	return nil
}

// IsNone reports whether the example carries no value.
func (e Example) IsNone() bool {
	return e.Kind == ExampleNone || e.Kind == ""
}

// Plain converts the example into generic values: map[string]any, []any,
// string, float64, bool or nil.
func (e Example) Plain() any {
	switch e.Kind {
	case ExampleObject:
		out := make(map[string]any, len(e.Properties))
		for _, prop := range e.Properties {
			out[prop.Name] = prop.Example.Plain()
		}
		return out
	case ExampleArray:
		out := make([]any, 0, len(e.Items))
		for _, item := range e.Items {
			out = append(out, item.Plain())
		}
		return out
	case ExampleNone, "":
		return nil
	default:
		return e.Value
	}
}

// Property returns the property with the given name.
func (e Example) Property(name string) (Example, bool) {
	for _, prop := range e.Properties {
		if prop.Name == name {
			return prop.Example, true
		}
	}
	return Example{}, false
}

// Field returns the object field with the given name.
func (m Model) Field(name string) (ModelField, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return ModelField{}, false
}

func noneModel() Model {
	return Model{Kind: ModelNone}
}

func noneExample() Example {
	return Example{Kind: ExampleNone}
}

func scalarExample(kind ast.PrimitiveKind, value any) Example {
	return Example{Kind: ExampleKind(kind), Value: value}
}
