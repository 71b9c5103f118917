package model

import "github.com/goliatone/go-comlinkgen/pkg/ast"

// example walks node in lock-step with literal. The literal supplies the value
// only where its shape fits the declared type; everything else falls back to
// the per-kind default (string "", number 0, boolean true, first enum value,
// one list element).
func (r *resolver) example(node ast.TypeNode, required bool, literal ast.LiteralNode) (Example, error) {
	if isNilNode(node) {
		if literal != nil {
			return ParseLiteral(literal), nil
		}
		return noneExample(), nil
	}

	switch n := node.(type) {
	case *ast.Primitive:
		return primitiveExample(n.Kind, literal)

	case *ast.Object:
		obj, _ := literal.(*ast.ObjectLiteral)
		props := make([]ExampleProperty, 0, len(n.Fields))
		for _, decl := range n.Fields {
			var sub ast.LiteralNode
			if value, ok := obj.Lookup(decl.Name); ok {
				sub = value
			}
			value, err := r.example(r.fieldType(decl), decl.Required, sub)
			if err != nil {
				return Example{}, err
			}
			props = append(props, ExampleProperty{Name: decl.Name, Example: value})
		}
		return Example{Kind: ExampleObject, Properties: props}, nil

	case *ast.List:
		if list, ok := literal.(*ast.ListLiteral); ok && list != nil {
			items := make([]Example, 0, len(list.Items))
			for _, item := range list.Items {
				value, err := r.example(n.ElementType, false, item)
				if err != nil {
					return Example{}, err
				}
				items = append(items, value)
			}
			return Example{Kind: ExampleArray, Items: items}, nil
		}
		value, err := r.example(n.ElementType, false, nil)
		if err != nil {
			return Example{}, err
		}
		return Example{Kind: ExampleArray, Items: []Example{value}}, nil

	case *ast.Enum:
		return enumExample(n.Values, literal), nil

	case *ast.ModelRef:
		resolved, err := r.enter(n.Name)
		if err != nil {
			return Example{}, err
		}
		defer r.leave()
		return r.example(resolved, required, literal)

	case *ast.NonNull:
		return r.example(n.Inner, required, literal)

	case *ast.Union:
		// Only the first alternative is synthesized. Literal data shaped for
		// a later alternative is dropped.
		if len(n.Alternatives) == 0 {
			return noneExample(), nil
		}
		return r.example(n.Alternatives[0], required, literal)

	default:
		return Example{}, invalidKindError(node)
	}
}

func primitiveExample(kind ast.PrimitiveKind, literal ast.LiteralNode) (Example, error) {
	value, hasValue := primitiveLiteralValue(literal)

	switch kind {
	case ast.PrimitiveString:
		if s, ok := value.(string); hasValue && ok {
			return scalarExample(kind, s), nil
		}
		return scalarExample(kind, ""), nil
	case ast.PrimitiveNumber:
		if f, ok := toFloat(value); hasValue && ok {
			return scalarExample(kind, f), nil
		}
		return scalarExample(kind, float64(0)), nil
	case ast.PrimitiveBoolean:
		if b, ok := value.(bool); hasValue && ok {
			return scalarExample(kind, b), nil
		}
		return scalarExample(kind, true), nil
	default:
		return Example{}, invalidPrimitiveError(string(kind))
	}
}

func enumExample(values []ast.EnumValue, literal ast.LiteralNode) Example {
	if len(values) == 0 {
		return noneExample()
	}
	first := normalizeScalar(values[0].Value)
	kind, ok := primitiveKindOf(first)
	if !ok {
		return noneExample()
	}

	if value, has := primitiveLiteralValue(literal); has {
		if litKind, ok := primitiveKindOf(value); ok && litKind == kind {
			return scalarExample(kind, normalizeScalar(value))
		}
	}
	return scalarExample(kind, first)
}

func primitiveLiteralValue(literal ast.LiteralNode) (any, bool) {
	prim, ok := literal.(*ast.PrimitiveLiteral)
	if !ok || prim == nil {
		return nil, false
	}
	return prim.Value, true
}
