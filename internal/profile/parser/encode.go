package parser

import (
	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

// Encode serialises doc into the AST interchange format Parse reads. YAML is
// used for FormatYAML, JSON otherwise.
func Encode(doc ast.ProfileDocument, format profile.Format) ([]byte, error) {
	tree, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}
	if format == profile.FormatYAML {
		out, err := yaml.Marshal(tree)
		if err != nil {
			return nil, errors.Wrap(err, "profile encoder: yaml")
		}
		return out, nil
	}
	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "profile encoder: json")
	}
	return append(out, '\n'), nil
}

func encodeDocument(doc ast.ProfileDocument) (map[string]any, error) {
	header := map[string]any{
		"name":    doc.Header.Name,
		"version": doc.Header.Version,
	}
	setString(header, "scope", doc.Header.Scope)
	setString(header, "title", doc.Header.Title)
	setString(header, "description", doc.Header.Description)

	defs := make([]any, 0, len(doc.Definitions))
	for _, def := range doc.Definitions {
		encoded, err := encodeDefinition(def)
		if err != nil {
			return nil, err
		}
		defs = append(defs, encoded)
	}
	return map[string]any{
		"kind":        kindProfileDocument,
		"header":      header,
		"definitions": defs,
	}, nil
}

func encodeDefinition(def ast.Definition) (map[string]any, error) {
	switch d := def.(type) {
	case *ast.NamedModelDefinition:
		out := map[string]any{"kind": kindNamedModel, "modelName": d.Name}
		return out, setType(out, "type", d.Type)

	case *ast.NamedFieldDefinition:
		out := map[string]any{"kind": kindNamedField, "fieldName": d.Name}
		setString(out, "title", d.Title)
		setString(out, "description", d.Description)
		return out, setType(out, "type", d.Type)

	case *ast.UseCaseDefinition:
		out := map[string]any{"kind": kindUseCase, "useCaseName": d.Name}
		setString(out, "title", d.Title)
		setString(out, "description", d.Description)
		setString(out, "safety", d.Safety)
		for key, node := range map[string]ast.TypeNode{"input": d.Input, "result": d.Result, "error": d.Error} {
			if err := setType(out, key, node); err != nil {
				return nil, errors.Wrapf(err, "use case %s %s", d.Name, key)
			}
		}
		if len(d.Examples) > 0 {
			examples := make([]any, 0, len(d.Examples))
			for _, block := range d.Examples {
				encoded, err := encodeExample(block)
				if err != nil {
					return nil, errors.Wrapf(err, "use case %s example %q", d.Name, block.Name)
				}
				examples = append(examples, encoded)
			}
			out["examples"] = examples
		}
		return out, nil

	default:
		return nil, errors.Newf("profile encoder: unknown definition %T", def)
	}
}

func encodeExample(block ast.ExampleBlock) (map[string]any, error) {
	out := map[string]any{"kind": kindExample}
	setString(out, "name", block.Name)

	errorLiteral := block.Error
	if block.Kind == ast.ExampleError && errorLiteral == nil {
		errorLiteral = &ast.NoneLiteral{}
	}
	for key, node := range map[string]ast.LiteralNode{"input": block.Input, "result": block.Result, "error": errorLiteral} {
		if node == nil {
			continue
		}
		encoded, err := encodeLiteral(node)
		if err != nil {
			return nil, err
		}
		out[key] = encoded
	}
	return out, nil
}

func setType(out map[string]any, key string, node ast.TypeNode) error {
	if node == nil {
		return nil
	}
	encoded, err := encodeType(node)
	if err != nil {
		return err
	}
	out[key] = encoded
	return nil
}

func encodeType(node ast.TypeNode) (map[string]any, error) {
	switch n := node.(type) {
	case *ast.Primitive:
		return map[string]any{"kind": kindPrimitive, "name": string(n.Kind)}, nil

	case *ast.ModelRef:
		return map[string]any{"kind": kindModelRef, "name": n.Name}, nil

	case *ast.Object:
		fields := make([]any, 0, len(n.Fields))
		for _, field := range n.Fields {
			out := map[string]any{
				"kind":      kindField,
				"fieldName": field.Name,
				"required":  field.Required,
			}
			setString(out, "title", field.Title)
			setString(out, "description", field.Description)
			if err := setType(out, "type", field.Type); err != nil {
				return nil, errors.Wrapf(err, "field %s", field.Name)
			}
			fields = append(fields, out)
		}
		return map[string]any{"kind": kindObject, "fields": fields}, nil

	case *ast.List:
		if n.ElementType == nil {
			return nil, errors.New("profile encoder: list without element type")
		}
		elem, err := encodeType(n.ElementType)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": kindList, "elementType": elem}, nil

	case *ast.Enum:
		values := make([]any, 0, len(n.Values))
		for _, value := range n.Values {
			out := map[string]any{"kind": kindEnumValue, "value": value.Value}
			setString(out, "title", value.Title)
			values = append(values, out)
		}
		return map[string]any{"kind": kindEnum, "values": values}, nil

	case *ast.Union:
		types := make([]any, 0, len(n.Alternatives))
		for _, alt := range n.Alternatives {
			encoded, err := encodeType(alt)
			if err != nil {
				return nil, err
			}
			types = append(types, encoded)
		}
		return map[string]any{"kind": kindUnion, "types": types}, nil

	case *ast.NonNull:
		if n.Inner == nil {
			return nil, errors.New("profile encoder: non-null without inner type")
		}
		inner, err := encodeType(n.Inner)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": kindNonNull, "type": inner}, nil

	default:
		return nil, errors.Newf("profile encoder: unknown type node %T", node)
	}
}

func encodeLiteral(node ast.LiteralNode) (map[string]any, error) {
	switch n := node.(type) {
	case *ast.ObjectLiteral:
		fields := make([]any, 0, len(n.Fields))
		for _, field := range n.Fields {
			value, err := encodeLiteral(field.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "key %s", field.Key())
			}
			key := make([]any, 0, len(field.KeyPath))
			for _, part := range field.KeyPath {
				key = append(key, part)
			}
			fields = append(fields, map[string]any{
				"kind":  kindAssignment,
				"key":   key,
				"value": value,
			})
		}
		return map[string]any{"kind": kindObjectLiteral, "fields": fields}, nil

	case *ast.ListLiteral:
		items := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			encoded, err := encodeLiteral(item)
			if err != nil {
				return nil, err
			}
			items = append(items, encoded)
		}
		return map[string]any{"kind": kindListLiteral, "items": items}, nil

	case *ast.PrimitiveLiteral:
		return map[string]any{"kind": kindPrimitiveLiteral, "value": n.Value}, nil

	case *ast.NoneLiteral:
		return map[string]any{"kind": kindNoneLiteral}, nil

	default:
		return nil, errors.Newf("profile encoder: unknown literal node %T", node)
	}
}

func setString(out map[string]any, key, value string) {
	if value != "" {
		out[key] = value
	}
}
