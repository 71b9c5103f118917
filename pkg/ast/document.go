package ast

import "fmt"

// ExampleKind tags an example block as a success or an error case.
type ExampleKind string

const (
	ExampleSuccess ExampleKind = "success"
	ExampleError   ExampleKind = "error"
)

// Definition is a top-level definition of a profile document.
type Definition interface {
	DefinitionName() string
	definition()
}

// NamedModelDefinition aliases a type under a document-level name.
type NamedModelDefinition struct {
	Name string
	Type TypeNode
}

// NamedFieldDefinition declares the type and documentation of a field name
// reused across models.
type NamedFieldDefinition struct {
	Name        string
	Type        TypeNode
	Title       string
	Description string
}

// UseCaseDefinition is a named operation with typed slots and examples.
type UseCaseDefinition struct {
	Name        string
	Title       string
	Description string
	Safety      string
	Input       TypeNode
	Result      TypeNode
	Error       TypeNode
	Examples    []ExampleBlock
}

// ExampleBlock is an author-written example for a use case.
type ExampleBlock struct {
	Name   string
	Kind   ExampleKind
	Input  LiteralNode
	Result LiteralNode
	Error  LiteralNode
}

func (d *NamedModelDefinition) DefinitionName() string { return d.Name }
func (d *NamedFieldDefinition) DefinitionName() string { return d.Name }
func (d *UseCaseDefinition) DefinitionName() string    { return d.Name }

func (*NamedModelDefinition) definition() {}
func (*NamedFieldDefinition) definition() {}
func (*UseCaseDefinition) definition()    {}

// Header identifies a profile.
type Header struct {
	Scope       string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ID returns scope/name, or name when the profile is unscoped.
func (h Header) ID() string {
	if h.Scope == "" {
		return h.Name
	}
	return h.Scope + "/" + h.Name
}

// FullID returns the id with the version suffix when one is set.
func (h Header) FullID() string {
	if h.Version == "" {
		return h.ID()
	}
	return fmt.Sprintf("%s@%s", h.ID(), h.Version)
}

// ProfileDocument is the root of a parsed profile.
type ProfileDocument struct {
	Header      Header
	Definitions []Definition
}

// UseCases returns the use-case definitions in declaration order.
func (d ProfileDocument) UseCases() []*UseCaseDefinition {
	var out []*UseCaseDefinition
	for _, def := range d.Definitions {
		if uc, ok := def.(*UseCaseDefinition); ok && uc != nil {
			out = append(out, uc)
		}
	}
	return out
}

// UseCase looks up a use case by name.
func (d ProfileDocument) UseCase(name string) (*UseCaseDefinition, bool) {
	for _, uc := range d.UseCases() {
		if uc.Name == name {
			return uc, true
		}
	}
	return nil, false
}
