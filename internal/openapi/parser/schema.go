package parser

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

const componentSchemaPrefix = "#/components/schemas/"

// convertSchemaRef turns a local component reference into a ModelRef and
// converts inline schemas structurally. Stopping at references keeps
// recursive component graphs finite.
func convertSchemaRef(ref *openapi3.SchemaRef) ast.TypeNode {
	if ref == nil {
		return nil
	}
	if name, ok := componentName(ref.Ref); ok {
		return &ast.ModelRef{Name: name}
	}
	return convertSchema(ref.Value)
}

func componentName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, componentSchemaPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, componentSchemaPrefix)
	return name, name != ""
}

// convertSchema maps one schema onto the profile type grammar. Schemas
// without a recognisable shape convert to nil (absent type).
func convertSchema(schema *openapi3.Schema) ast.TypeNode {
	if schema == nil {
		return nil
	}

	if alternatives := append(append(openapi3.SchemaRefs{}, schema.OneOf...), schema.AnyOf...); len(alternatives) > 0 {
		union := &ast.Union{}
		for _, alt := range alternatives {
			if node := convertSchemaRef(alt); node != nil {
				union.Alternatives = append(union.Alternatives, node)
			}
		}
		switch len(union.Alternatives) {
		case 0:
			return nil
		case 1:
			return union.Alternatives[0]
		default:
			return union
		}
	}

	if len(schema.AllOf) > 0 {
		return convertAllOf(schema)
	}

	if len(schema.Enum) > 0 {
		enum := &ast.Enum{}
		for _, value := range schema.Enum {
			if scalar, ok := scalarValue(value); ok {
				enum.Values = append(enum.Values, ast.EnumValue{Value: scalar})
			}
		}
		if len(enum.Values) > 0 {
			return enum
		}
	}

	switch {
	case hasType(schema, openapi3.TypeString):
		return ast.String()
	case hasType(schema, openapi3.TypeInteger), hasType(schema, openapi3.TypeNumber):
		return ast.Number()
	case hasType(schema, openapi3.TypeBoolean):
		return ast.Boolean()
	case hasType(schema, openapi3.TypeArray):
		elem := convertSchemaRef(schema.Items)
		if elem == nil {
			elem = ast.String()
		}
		return &ast.List{ElementType: elem}
	case hasType(schema, openapi3.TypeObject), len(schema.Properties) > 0:
		return &ast.Object{Fields: objectFields(schema)}
	default:
		return nil
	}
}

// convertAllOf merges the fields of every object member. A single member
// converts as itself.
func convertAllOf(schema *openapi3.Schema) ast.TypeNode {
	if len(schema.AllOf) == 1 && len(schema.Properties) == 0 {
		return convertSchemaRef(schema.AllOf[0])
	}

	merged := &ast.Object{}
	index := make(map[string]int)
	add := func(fields []ast.FieldDecl) {
		for _, field := range fields {
			if at, ok := index[field.Name]; ok {
				merged.Fields[at] = field
				continue
			}
			index[field.Name] = len(merged.Fields)
			merged.Fields = append(merged.Fields, field)
		}
	}
	for _, member := range schema.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		add(objectFields(member.Value))
	}
	add(objectFields(schema))
	return merged
}

// objectFields converts properties in name order. Required properties that
// are not nullable become NonNull.
func objectFields(schema *openapi3.Schema) []ast.FieldDecl {
	if len(schema.Properties) == 0 {
		return nil
	}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]ast.FieldDecl, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		field := ast.FieldDecl{
			Name:     name,
			Required: required[name],
			Type:     convertSchemaRef(prop),
		}
		if prop != nil && prop.Value != nil {
			field.Title = plainText(prop.Value.Title)
			field.Description = plainText(prop.Value.Description)
			if field.Required && !prop.Value.Nullable {
				field.Type = ast.Required(field.Type)
			}
		}
		fields = append(fields, field)
	}
	return fields
}

func hasType(schema *openapi3.Schema, typ string) bool {
	if schema.Type == nil {
		return false
	}
	for _, value := range schema.Type.Slice() {
		if value == typ {
			return true
		}
	}
	return false
}

// scalarValue normalises an enum or example scalar to string, float64 or bool.
func scalarValue(value any) (any, bool) {
	switch v := value.(type) {
	case string, bool, float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return nil, false
	}
}
