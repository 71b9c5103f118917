package model

import "github.com/goliatone/go-comlinkgen/pkg/ast"

func (r *resolver) model(node ast.TypeNode, nonNull bool) (Model, error) {
	if isNilNode(node) {
		return noneModel(), nil
	}

	switch n := node.(type) {
	case *ast.Primitive:
		if !n.Kind.Valid() {
			return Model{}, invalidPrimitiveError(string(n.Kind))
		}
		return Model{Kind: ModelScalar, NonNull: nonNull, ScalarKind: n.Kind}, nil

	case *ast.Object:
		fields := make([]ModelField, 0, len(n.Fields))
		for _, decl := range n.Fields {
			field, err := r.modelField(decl)
			if err != nil {
				return Model{}, err
			}
			fields = append(fields, field)
		}
		return Model{Kind: ModelObject, NonNull: nonNull, Fields: fields}, nil

	case *ast.List:
		elem, err := r.model(n.ElementType, false)
		if err != nil {
			return Model{}, err
		}
		return Model{Kind: ModelList, NonNull: nonNull, Model: &elem}, nil

	case *ast.Enum:
		values := append([]ast.EnumValue(nil), n.Values...)
		return Model{Kind: ModelEnum, NonNull: nonNull, Values: values}, nil

	case *ast.ModelRef:
		resolved, err := r.enter(n.Name)
		if err != nil {
			return Model{}, err
		}
		defer r.leave()
		return r.model(resolved, nonNull)

	case *ast.NonNull:
		return r.model(n.Inner, true)

	case *ast.Union:
		alternatives := make([]Model, 0, len(n.Alternatives))
		for _, alt := range n.Alternatives {
			converted, err := r.model(alt, false)
			if err != nil {
				return Model{}, err
			}
			alternatives = append(alternatives, converted)
		}
		return Model{Kind: ModelUnion, NonNull: nonNull, Alternatives: alternatives}, nil

	default:
		return Model{}, invalidKindError(node)
	}
}

func (r *resolver) modelField(decl ast.FieldDecl) (ModelField, error) {
	fieldModel, err := r.model(r.fieldType(decl), false)
	if err != nil {
		return ModelField{}, err
	}

	// Inline documentation wins over the named field's once a title exists.
	var description string
	if decl.HasTitle() {
		description = decl.Description
		if description == "" {
			description = decl.Title
		}
	} else if named, ok := r.cache.Field(decl.Name); ok {
		description = named.Description
	}

	return ModelField{
		Name:        decl.Name,
		Required:    decl.Required,
		NonNull:     fieldModel.NonNull,
		Model:       fieldModel,
		Description: description,
	}, nil
}
