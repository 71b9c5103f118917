package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

// Node kinds of the interchange format.
const (
	kindProfileDocument = "ProfileDocument"
	kindUseCase         = "UseCaseDefinition"
	kindNamedModel      = "NamedModelDefinition"
	kindNamedField      = "NamedFieldDefinition"
	kindSlot            = "UseCaseSlotDefinition"
	kindExample         = "UseCaseExample"

	kindPrimitive = "PrimitiveTypeName"
	kindModelRef  = "ModelTypeName"
	kindObject    = "ObjectDefinition"
	kindField     = "FieldDefinition"
	kindList      = "ListDefinition"
	kindEnum      = "EnumDefinition"
	kindEnumValue = "EnumValue"
	kindUnion     = "UnionDefinition"
	kindNonNull   = "NonNullDefinition"

	kindObjectLiteral    = "ComlinkObjectLiteral"
	kindAssignment       = "ComlinkAssignment"
	kindListLiteral      = "ComlinkListLiteral"
	kindPrimitiveLiteral = "ComlinkPrimitiveLiteral"
	kindNoneLiteral      = "ComlinkNoneLiteral"
)

func invalid(path, format string, args ...any) error {
	return errors.Mark(errors.Wrap(errors.Newf(format, args...), path), profile.ErrInvalidDocument)
}

func convertDocument(tree any) (ast.ProfileDocument, error) {
	root, ok := tree.(map[string]any)
	if !ok {
		return ast.ProfileDocument{}, invalid("$", "expected an object, got %T", tree)
	}
	if kind := kindOf(root); kind != kindProfileDocument {
		return ast.ProfileDocument{}, invalid("$.kind", "expected %s, got %q", kindProfileDocument, kind)
	}

	header, err := convertHeader(root["header"], "$.header")
	if err != nil {
		return ast.ProfileDocument{}, err
	}
	doc := ast.ProfileDocument{Header: header}

	defs, err := listAt(root, "definitions", "$")
	if err != nil {
		return ast.ProfileDocument{}, err
	}
	for i, raw := range defs {
		def, err := convertDefinition(raw, fmt.Sprintf("$.definitions[%d]", i))
		if err != nil {
			return ast.ProfileDocument{}, err
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	return doc, nil
}

func convertHeader(value any, path string) (ast.Header, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return ast.Header{}, invalid(path, "header is required")
	}
	header := ast.Header{
		Scope: stringAt(m, "scope"),
		Name:  stringAt(m, "name"),
	}
	if header.Name == "" {
		return ast.Header{}, invalid(path+".name", "profile name is required")
	}
	version, err := convertVersion(m["version"], path+".version")
	if err != nil {
		return ast.Header{}, err
	}
	header.Version = version
	header.Title, header.Description = documentation(m)
	return header, nil
}

// convertVersion accepts "1.2.3" or {major, minor, patch, label}.
func convertVersion(value any, path string) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case map[string]any:
		parts := make([]string, 0, 3)
		for _, key := range []string{"major", "minor", "patch"} {
			n, ok := v[key].(float64)
			if !ok {
				if key == "major" {
					return "", invalid(path+".major", "major version is required")
				}
				continue
			}
			parts = append(parts, strconv.FormatFloat(n, 'f', 0, 64))
		}
		out := strings.Join(parts, ".")
		if label := stringAt(v, "label"); label != "" {
			out += "-" + label
		}
		return out, nil
	default:
		return "", invalid(path, "unsupported version %T", value)
	}
}

func convertDefinition(value any, path string) (ast.Definition, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, invalid(path, "expected a definition object, got %T", value)
	}

	switch kind := kindOf(m); kind {
	case kindUseCase:
		return convertUseCase(m, path)

	case kindNamedModel:
		name := firstString(m, "modelName", "name")
		if name == "" {
			return nil, invalid(path, "named model without a name")
		}
		typ, err := optionalType(m["type"], path+".type")
		if err != nil {
			return nil, err
		}
		return &ast.NamedModelDefinition{Name: name, Type: typ}, nil

	case kindNamedField:
		name := firstString(m, "fieldName", "name")
		if name == "" {
			return nil, invalid(path, "named field without a name")
		}
		typ, err := optionalType(m["type"], path+".type")
		if err != nil {
			return nil, err
		}
		def := &ast.NamedFieldDefinition{Name: name, Type: typ}
		def.Title, def.Description = documentation(m)
		return def, nil

	default:
		return nil, invalid(path+".kind", "unknown definition kind %q", kind)
	}
}

func convertUseCase(m map[string]any, path string) (*ast.UseCaseDefinition, error) {
	uc := &ast.UseCaseDefinition{
		Name:   firstString(m, "useCaseName", "name"),
		Safety: stringAt(m, "safety"),
	}
	if uc.Name == "" {
		return nil, invalid(path, "use case without a name")
	}
	uc.Title, uc.Description = documentation(m)

	var err error
	if uc.Input, err = optionalType(unwrapSlot(m["input"]), path+".input"); err != nil {
		return nil, err
	}
	if uc.Result, err = optionalType(unwrapSlot(m["result"]), path+".result"); err != nil {
		return nil, err
	}
	if uc.Error, err = optionalType(unwrapSlot(m["error"]), path+".error"); err != nil {
		return nil, err
	}

	examples, err := listAt(m, "examples", path)
	if err != nil {
		return nil, err
	}
	for i, raw := range examples {
		block, err := convertExample(unwrapSlot(raw), fmt.Sprintf("%s.examples[%d]", path, i))
		if err != nil {
			return nil, err
		}
		uc.Examples = append(uc.Examples, block)
	}
	return uc, nil
}

func convertExample(value any, path string) (ast.ExampleBlock, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return ast.ExampleBlock{}, invalid(path, "expected an example object, got %T", value)
	}
	if kind := kindOf(m); kind != "" && kind != kindExample {
		return ast.ExampleBlock{}, invalid(path+".kind", "expected %s, got %q", kindExample, kind)
	}

	block := ast.ExampleBlock{
		Name: firstString(m, "exampleName", "name"),
		Kind: ast.ExampleSuccess,
	}
	var err error
	if block.Input, err = optionalLiteral(unwrapSlot(m["input"]), path+".input"); err != nil {
		return ast.ExampleBlock{}, err
	}
	if block.Result, err = optionalLiteral(unwrapSlot(m["result"]), path+".result"); err != nil {
		return ast.ExampleBlock{}, err
	}
	if block.Error, err = optionalLiteral(unwrapSlot(m["error"]), path+".error"); err != nil {
		return ast.ExampleBlock{}, err
	}
	if block.Error != nil {
		block.Kind = ast.ExampleError
	}
	return block, nil
}

func optionalType(value any, path string) (ast.TypeNode, error) {
	if value == nil {
		return nil, nil
	}
	return convertType(value, path)
}

func convertType(value any, path string) (ast.TypeNode, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, invalid(path, "expected a type object, got %T", value)
	}

	switch kind := kindOf(m); kind {
	case kindPrimitive:
		prim := ast.PrimitiveKind(stringAt(m, "name"))
		if !prim.Valid() {
			return nil, invalid(path+".name", "unknown primitive %q", prim)
		}
		return &ast.Primitive{Kind: prim}, nil

	case kindModelRef:
		name := stringAt(m, "name")
		if name == "" {
			return nil, invalid(path+".name", "model reference without a name")
		}
		return &ast.ModelRef{Name: name}, nil

	case kindObject:
		fields, err := listAt(m, "fields", path)
		if err != nil {
			return nil, err
		}
		obj := &ast.Object{}
		for i, raw := range fields {
			decl, err := convertField(raw, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, decl)
		}
		return obj, nil

	case kindList:
		elem, err := convertType(m["elementType"], path+".elementType")
		if err != nil {
			return nil, err
		}
		return &ast.List{ElementType: elem}, nil

	case kindEnum:
		values, err := listAt(m, "values", path)
		if err != nil {
			return nil, err
		}
		enum := &ast.Enum{}
		for i, raw := range values {
			value, err := convertEnumValue(raw, fmt.Sprintf("%s.values[%d]", path, i))
			if err != nil {
				return nil, err
			}
			enum.Values = append(enum.Values, value)
		}
		return enum, nil

	case kindUnion:
		types, err := listAt(m, "types", path)
		if err != nil {
			return nil, err
		}
		union := &ast.Union{}
		for i, raw := range types {
			alt, err := convertType(raw, fmt.Sprintf("%s.types[%d]", path, i))
			if err != nil {
				return nil, err
			}
			union.Alternatives = append(union.Alternatives, alt)
		}
		return union, nil

	case kindNonNull:
		inner, err := convertType(m["type"], path+".type")
		if err != nil {
			return nil, err
		}
		return &ast.NonNull{Inner: inner}, nil

	default:
		return nil, invalid(path+".kind", "unknown type kind %q", kind)
	}
}

func convertField(value any, path string) (ast.FieldDecl, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return ast.FieldDecl{}, invalid(path, "expected a field object, got %T", value)
	}
	if kind := kindOf(m); kind != "" && kind != kindField {
		return ast.FieldDecl{}, invalid(path+".kind", "expected %s, got %q", kindField, kind)
	}
	decl := ast.FieldDecl{
		Name:     firstString(m, "fieldName", "name"),
		Required: boolAt(m, "required"),
	}
	if decl.Name == "" {
		return ast.FieldDecl{}, invalid(path, "field without a name")
	}
	typ, err := optionalType(m["type"], path+".type")
	if err != nil {
		return ast.FieldDecl{}, err
	}
	decl.Type = typ
	decl.Title, decl.Description = documentation(m)
	return decl, nil
}

func convertEnumValue(value any, path string) (ast.EnumValue, error) {
	switch v := value.(type) {
	case string, float64, bool:
		return ast.EnumValue{Value: v}, nil
	case map[string]any:
		if kind := kindOf(v); kind != "" && kind != kindEnumValue {
			return ast.EnumValue{}, invalid(path+".kind", "expected %s, got %q", kindEnumValue, kind)
		}
		switch raw := v["value"].(type) {
		case string, float64, bool:
			title, _ := documentation(v)
			return ast.EnumValue{Value: raw, Title: title}, nil
		default:
			return ast.EnumValue{}, invalid(path+".value", "enum value must be a scalar, got %T", raw)
		}
	default:
		return ast.EnumValue{}, invalid(path, "enum value must be a scalar, got %T", value)
	}
}

func optionalLiteral(value any, path string) (ast.LiteralNode, error) {
	if value == nil {
		return nil, nil
	}
	return convertLiteral(value, path)
}

func convertLiteral(value any, path string) (ast.LiteralNode, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, invalid(path, "expected a literal object, got %T", value)
	}

	switch kind := kindOf(m); kind {
	case kindObjectLiteral:
		fields, err := listAt(m, "fields", path)
		if err != nil {
			return nil, err
		}
		obj := &ast.ObjectLiteral{}
		for i, raw := range fields {
			field, err := convertAssignment(raw, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, field)
		}
		return obj, nil

	case kindListLiteral:
		items, err := listAt(m, "items", path)
		if err != nil {
			return nil, err
		}
		list := &ast.ListLiteral{}
		for i, raw := range items {
			item, err := convertLiteral(raw, fmt.Sprintf("%s.items[%d]", path, i))
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		return list, nil

	case kindPrimitiveLiteral:
		switch raw := m["value"].(type) {
		case string, float64, bool:
			return &ast.PrimitiveLiteral{Value: raw}, nil
		default:
			return nil, invalid(path+".value", "primitive literal must be a scalar, got %T", raw)
		}

	case kindNoneLiteral:
		return &ast.NoneLiteral{}, nil

	default:
		return nil, invalid(path+".kind", "unknown literal kind %q", kind)
	}
}

func convertAssignment(value any, path string) (ast.LiteralField, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return ast.LiteralField{}, invalid(path, "expected an assignment object, got %T", value)
	}
	if kind := kindOf(m); kind != "" && kind != kindAssignment {
		return ast.LiteralField{}, invalid(path+".kind", "expected %s, got %q", kindAssignment, kind)
	}

	var keyPath []string
	switch key := m["key"].(type) {
	case string:
		keyPath = strings.Split(key, ".")
	case []any:
		for _, part := range key {
			s, ok := part.(string)
			if !ok {
				return ast.LiteralField{}, invalid(path+".key", "key segments must be strings, got %T", part)
			}
			keyPath = append(keyPath, s)
		}
	}
	if len(keyPath) == 0 {
		return ast.LiteralField{}, invalid(path+".key", "assignment without a key")
	}

	lit, err := convertLiteral(m["value"], path+".value")
	if err != nil {
		return ast.LiteralField{}, err
	}
	return ast.LiteralField{KeyPath: keyPath, Value: lit}, nil
}

// unwrapSlot strips a UseCaseSlotDefinition wrapper, if any.
func unwrapSlot(value any) any {
	m, ok := value.(map[string]any)
	if !ok || kindOf(m) != kindSlot {
		return value
	}
	return m["value"]
}

// documentation reads title/description either inline or from a nested
// "documentation" object. Inline keys win.
func documentation(m map[string]any) (string, string) {
	title, description := stringAt(m, "title"), stringAt(m, "description")
	if doc, ok := m["documentation"].(map[string]any); ok {
		if title == "" {
			title = stringAt(doc, "title")
		}
		if description == "" {
			description = stringAt(doc, "description")
		}
	}
	return title, description
}

func kindOf(m map[string]any) string {
	return stringAt(m, "kind")
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringAt(m, key); s != "" {
			return s
		}
	}
	return ""
}

func boolAt(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func listAt(m map[string]any, key, path string) ([]any, error) {
	switch v := m[key].(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	default:
		return nil, invalid(path+"."+key, "expected a list, got %T", v)
	}
}
