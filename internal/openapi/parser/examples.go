package parser

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

// examples builds at most one success and one error block from the examples
// attached to the request body, parameters and chosen responses.
func examples(input *inputBuilder, success, failure *response) []ast.ExampleBlock {
	inputLiteral := input.example()

	var blocks []ast.ExampleBlock
	successName, successValue, hasSuccess := responseExample(success)
	if hasSuccess || inputLiteral != nil {
		block := ast.ExampleBlock{Name: successName, Kind: ast.ExampleSuccess, Input: inputLiteral}
		if hasSuccess {
			block.Result = literalFromValue(successValue)
		}
		blocks = append(blocks, block)
	}
	if name, value, ok := responseExample(failure); ok {
		blocks = append(blocks, ast.ExampleBlock{
			Name:  name,
			Kind:  ast.ExampleError,
			Input: inputLiteral,
			Error: literalFromValue(value),
		})
	}
	return blocks
}

func responseExample(resp *response) (string, any, bool) {
	if resp == nil {
		return "", nil, false
	}
	return mediaExample(resp.media)
}

// mediaExample returns the media type example, else the first named example,
// else the schema example.
func mediaExample(media *openapi3.MediaType) (string, any, bool) {
	if media == nil {
		return "", nil, false
	}
	if media.Example != nil {
		return "", media.Example, true
	}
	if name, value, ok := firstNamedExample(media.Examples); ok {
		return name, value, true
	}
	if media.Schema != nil && media.Schema.Value != nil && media.Schema.Value.Example != nil {
		return "", media.Schema.Value.Example, true
	}
	return "", nil, false
}

func firstNamedExample(examples openapi3.Examples) (string, any, bool) {
	if len(examples) == 0 {
		return "", nil, false
	}
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := examples[name]
		if ref == nil || ref.Value == nil || ref.Value.Value == nil {
			continue
		}
		return name, ref.Value.Value, true
	}
	return "", nil, false
}

// literalFromValue converts decoded example data into literal nodes. Object
// keys are emitted in sorted order.
func literalFromValue(value any) ast.LiteralNode {
	switch v := value.(type) {
	case nil:
		return &ast.NoneLiteral{}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := &ast.ObjectLiteral{}
		for _, key := range keys {
			obj.Fields = append(obj.Fields, ast.LiteralField{
				KeyPath: []string{key},
				Value:   literalFromValue(v[key]),
			})
		}
		return obj
	case []any:
		list := &ast.ListLiteral{}
		for _, item := range v {
			list.Items = append(list.Items, literalFromValue(item))
		}
		return list
	default:
		if scalar, ok := scalarValue(v); ok {
			return &ast.PrimitiveLiteral{Value: scalar}
		}
		return &ast.NoneLiteral{}
	}
}
