package parser

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

// bodyField names the input field a request body is assigned to when it
// cannot be merged with the parameters.
const bodyField = "body"

// inputBuilder collects parameters and the request body into one input
// object. Later declarations of a name replace earlier ones, so operation
// parameters override path-level ones.
type inputBuilder struct {
	fields   []ast.FieldDecl
	index    map[string]int
	examples map[string]any

	body        *openapi3.MediaType
	bodyWrapped bool
}

func newInputBuilder() *inputBuilder {
	return &inputBuilder{
		index:    make(map[string]int),
		examples: make(map[string]any),
	}
}

func (b *inputBuilder) add(field ast.FieldDecl) {
	if at, ok := b.index[field.Name]; ok {
		b.fields[at] = field
		return
	}
	b.index[field.Name] = len(b.fields)
	b.fields = append(b.fields, field)
}

func (b *inputBuilder) addParameters(params openapi3.Parameters) {
	for _, ref := range params {
		if ref == nil || ref.Value == nil || ref.Value.Name == "" {
			continue
		}
		param := ref.Value
		field := ast.FieldDecl{
			Name:        param.Name,
			Required:    param.Required,
			Type:        convertSchemaRef(param.Schema),
			Description: plainText(param.Description),
		}
		nullable := param.Schema != nil && param.Schema.Value != nil && param.Schema.Value.Nullable
		if field.Required && !nullable {
			field.Type = ast.Required(field.Type)
		}
		b.add(field)

		if value, ok := parameterExample(param); ok {
			b.examples[param.Name] = value
		}
	}
}

func parameterExample(param *openapi3.Parameter) (any, bool) {
	if param.Example != nil {
		return param.Example, true
	}
	if _, value, ok := firstNamedExample(param.Examples); ok {
		return value, true
	}
	if param.Schema != nil && param.Schema.Value != nil && param.Schema.Value.Example != nil {
		return param.Schema.Value.Example, true
	}
	return nil, false
}

// addRequestBody merges the fields of an inline object body into the input.
// Referenced or non-object bodies are assigned to a single "body" field.
func (b *inputBuilder) addRequestBody(ref *openapi3.RequestBodyRef) {
	if ref == nil || ref.Value == nil {
		return
	}
	media := jsonMedia(ref.Value.Content)
	if media == nil || media.Schema == nil {
		return
	}
	b.body = media

	schema := media.Schema
	if _, isRef := componentName(schema.Ref); !isRef && schema.Value != nil && len(schema.Value.Properties) > 0 && len(schema.Value.AllOf) == 0 {
		for _, field := range objectFields(schema.Value) {
			b.add(field)
		}
		return
	}

	b.bodyWrapped = true
	field := ast.FieldDecl{
		Name:     bodyField,
		Required: ref.Value.Required,
		Type:     convertSchemaRef(schema),
	}
	if field.Required {
		field.Type = ast.Required(field.Type)
	}
	b.add(field)
}

func (b *inputBuilder) node() ast.TypeNode {
	if len(b.fields) == 0 {
		return nil
	}
	return &ast.Object{Fields: append([]ast.FieldDecl(nil), b.fields...)}
}

// example merges parameter examples with the body example into one input
// literal, or returns nil when neither exists.
func (b *inputBuilder) example() ast.LiteralNode {
	values := make(map[string]any, len(b.examples))
	for name, value := range b.examples {
		values[name] = value
	}
	if b.body != nil {
		if _, body, ok := mediaExample(b.body); ok {
			if object, isObject := body.(map[string]any); isObject && !b.bodyWrapped {
				for name, value := range object {
					values[name] = value
				}
			} else {
				values[bodyField] = body
			}
		}
	}
	if len(values) == 0 {
		return nil
	}
	return literalFromValue(values)
}
