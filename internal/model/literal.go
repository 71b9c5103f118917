package model

import (
	"fmt"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

// ParseLiteral converts an author-written literal into an Example. Object keys
// are the dotted key paths; primitive kinds follow the literal's value.
func ParseLiteral(node ast.LiteralNode) Example {
	switch n := node.(type) {
	case *ast.ObjectLiteral:
		if n == nil {
			return noneExample()
		}
		props := make([]ExampleProperty, 0, len(n.Fields))
		for _, field := range n.Fields {
			props = append(props, ExampleProperty{
				Name:    field.Key(),
				Example: ParseLiteral(field.Value),
			})
		}
		return Example{Kind: ExampleObject, Properties: props}

	case *ast.ListLiteral:
		if n == nil {
			return noneExample()
		}
		items := make([]Example, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, ParseLiteral(item))
		}
		return Example{Kind: ExampleArray, Items: items}

	case *ast.PrimitiveLiteral:
		if n == nil {
			return noneExample()
		}
		if b, ok := n.Value.(bool); ok {
			return scalarExample(ast.PrimitiveBoolean, b)
		}
		if f, ok := toFloat(n.Value); ok {
			return scalarExample(ast.PrimitiveNumber, f)
		}
		if s, ok := n.Value.(string); ok {
			return scalarExample(ast.PrimitiveString, s)
		}
		if n.Value == nil {
			return scalarExample(ast.PrimitiveString, "")
		}
		return scalarExample(ast.PrimitiveString, fmt.Sprint(n.Value))

	default:
		return noneExample()
	}
}

// primitiveKindOf classifies a scalar value.
func primitiveKindOf(value any) (ast.PrimitiveKind, bool) {
	switch value.(type) {
	case bool:
		return ast.PrimitiveBoolean, true
	case string:
		return ast.PrimitiveString, true
	}
	if _, ok := toFloat(value); ok {
		return ast.PrimitiveNumber, true
	}
	return "", false
}

// normalizeScalar converts every numeric representation to float64.
func normalizeScalar(value any) any {
	if f, ok := toFloat(value); ok {
		return f
	}
	return value
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
