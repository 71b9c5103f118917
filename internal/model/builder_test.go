package model_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-comlinkgen/internal/model"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

var equateEmpty = cmpopts.EquateEmpty()

func TestBuildModel_Primitive(t *testing.T) {
	got, err := model.BuildModel(ast.Number(), false, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := model.Model{Kind: model.ModelScalar, ScalarKind: ast.PrimitiveNumber}
	if diff := cmp.Diff(want, got, equateEmpty); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildModel_NonNullThreadsFlag(t *testing.T) {
	wrapped, err := model.BuildModel(&ast.NonNull{Inner: ast.String()}, false, nil)
	if err != nil {
		t.Fatalf("build wrapped: %v", err)
	}
	flagged, err := model.BuildModel(ast.String(), true, nil)
	if err != nil {
		t.Fatalf("build flagged: %v", err)
	}
	if diff := cmp.Diff(flagged, wrapped, equateEmpty); diff != "" {
		t.Fatalf("NonNull wrapper and flag differ (-flag +wrapper):\n%s", diff)
	}
	if !wrapped.NonNull {
		t.Fatalf("expected nonNull scalar, got %+v", wrapped)
	}
}

func TestBuildModel_EndToEndObject(t *testing.T) {
	node := &ast.Object{Fields: []ast.FieldDecl{
		{Name: "id", Required: true, Type: &ast.NonNull{Inner: ast.Number()}},
	}}

	got, err := model.BuildModel(node, false, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := model.Model{
		Kind: model.ModelObject,
		Fields: []model.ModelField{{
			Name:     "id",
			Required: true,
			NonNull:  true,
			Model:    model.Model{Kind: model.ModelScalar, NonNull: true, ScalarKind: ast.PrimitiveNumber},
		}},
	}
	if diff := cmp.Diff(want, got, equateEmpty); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildModel_FieldFallbacks(t *testing.T) {
	cache := model.BuildDefinitionCache([]ast.Definition{
		&ast.NamedFieldDefinition{Name: "age", Type: ast.Number(), Description: "age in years"},
		&ast.NamedFieldDefinition{Name: "label", Description: "named label"},
	})

	node := &ast.Object{Fields: []ast.FieldDecl{
		{Name: "age"},
		{Name: "untyped"},
		{Name: "label", Type: ast.String(), Title: "Inline label"},
		{Name: "note", Title: "Note", Description: "Longer note"},
	}}

	got, err := model.BuildModel(node, false, cache)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	age, _ := got.Field("age")
	if age.Model.ScalarKind != ast.PrimitiveNumber || age.Description != "age in years" {
		t.Fatalf("age should resolve through the named field, got %+v", age)
	}
	untyped, _ := got.Field("untyped")
	if untyped.Model.Kind != model.ModelScalar || untyped.Model.ScalarKind != ast.PrimitiveString {
		t.Fatalf("untyped field should default to string scalar, got %+v", untyped.Model)
	}
	label, _ := got.Field("label")
	if label.Description != "Inline label" {
		t.Fatalf("inline title should win over named description, got %q", label.Description)
	}
	note, _ := got.Field("note")
	if note.Description != "Longer note" {
		t.Fatalf("inline description should be preferred when a title exists, got %q", note.Description)
	}
}

func TestBuildModel_ModelRefPropagatesNonNull(t *testing.T) {
	cache := model.BuildDefinitionCache([]ast.Definition{
		&ast.NamedModelDefinition{Name: "Tags", Type: &ast.List{ElementType: ast.String()}},
	})

	got, err := model.BuildModel(&ast.NonNull{Inner: &ast.ModelRef{Name: "Tags"}}, false, cache)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := model.Model{
		Kind:    model.ModelList,
		NonNull: true,
		Model:   &model.Model{Kind: model.ModelScalar, ScalarKind: ast.PrimitiveString},
	}
	if diff := cmp.Diff(want, got, equateEmpty); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildModel_EnumAndUnion(t *testing.T) {
	node := &ast.Union{Alternatives: []ast.TypeNode{
		&ast.Enum{Values: []ast.EnumValue{{Value: "on", Title: "On"}, {Value: "off"}}},
		ast.Boolean(),
	}}

	got, err := model.BuildModel(node, false, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := model.Model{
		Kind: model.ModelUnion,
		Alternatives: []model.Model{
			{Kind: model.ModelEnum, Values: []ast.EnumValue{{Value: "on", Title: "On"}, {Value: "off"}}},
			{Kind: model.ModelScalar, ScalarKind: ast.PrimitiveBoolean},
		},
	}
	if diff := cmp.Diff(want, got, equateEmpty); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildModel_AbsentTypeIsNone(t *testing.T) {
	got, err := model.BuildModel(nil, true, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got.Kind != model.ModelNone {
		t.Fatalf("expected none model, got %+v", got)
	}
}

func TestBuildModel_DeveloperErrors(t *testing.T) {
	type unknownNode struct{ ast.TypeNode }

	selfRef := model.BuildDefinitionCache([]ast.Definition{
		&ast.NamedModelDefinition{Name: "Node", Type: &ast.Object{Fields: []ast.FieldDecl{
			{Name: "next", Type: &ast.ModelRef{Name: "Node"}},
		}}},
	})

	cases := []struct {
		name     string
		node     ast.TypeNode
		cache    *model.DefinitionCache
		sentinel error
	}{
		{name: "missing model", node: &ast.ModelRef{Name: "Missing"}, sentinel: model.ErrModelNotFound},
		{name: "unknown node", node: unknownNode{}, sentinel: model.ErrInvalidKind},
		{name: "unknown primitive", node: &ast.Primitive{Kind: "date"}, sentinel: model.ErrInvalidKind},
		{name: "self reference", node: &ast.ModelRef{Name: "Node"}, cache: selfRef, sentinel: model.ErrRefDepthExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.BuildModel(tc.node, false, tc.cache)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("expected %v, got %v", tc.sentinel, err)
			}
			if !model.IsDeveloperError(err) || !errors.IsAssertionFailure(err) {
				t.Fatalf("expected developer error, got %v", err)
			}
		})
	}

	if model.IsDeveloperError(errors.New("connection reset")) || model.IsDeveloperError(nil) {
		t.Fatal("plain errors are not developer errors")
	}
}

func TestEngine_MaxRefDepthOption(t *testing.T) {
	cache := model.BuildDefinitionCache([]ast.Definition{
		&ast.NamedModelDefinition{Name: "A", Type: &ast.ModelRef{Name: "B"}},
		&ast.NamedModelDefinition{Name: "B", Type: &ast.ModelRef{Name: "C"}},
		&ast.NamedModelDefinition{Name: "C", Type: ast.String()},
	})

	if _, err := model.New(cache, model.Options{MaxRefDepth: 3}).BuildModel(&ast.ModelRef{Name: "A"}, false); err != nil {
		t.Fatalf("depth 3 should resolve a three-link chain: %v", err)
	}
	_, err := model.New(cache, model.Options{MaxRefDepth: 2}).BuildModel(&ast.ModelRef{Name: "A"}, false)
	if !errors.Is(err, model.ErrRefDepthExceeded) {
		t.Fatalf("expected depth error, got %v", err)
	}
}
