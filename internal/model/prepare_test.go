package model_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-comlinkgen/internal/model"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/testsupport"
)

func TestPrepare_WeatherDocument(t *testing.T) {
	prepared, err := model.Prepare(testsupport.WeatherDocument(), model.Options{})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if len(prepared.UseCases) != 2 {
		t.Fatalf("expected 2 use cases, got %d", len(prepared.UseCases))
	}

	getWeather := prepared.UseCases[0]
	if getWeather.Result == nil || getWeather.Result.Kind != model.ModelObject {
		t.Fatalf("expected object result model, got %+v", getWeather.Result)
	}
	if field, ok := getWeather.Result.Field("description"); !ok || field.Description != "Human readable summary" {
		t.Errorf("expected named field documentation, got %+v", field)
	}

	success, ok := getWeather.SuccessExample()
	if !ok {
		t.Fatal("expected a success example")
	}
	wantInput := map[string]any{"city": "Prague", "units": "C"}
	if diff := cmp.Diff(wantInput, success.Input.Plain()); diff != "" {
		t.Errorf("input mismatch (-want +got):\n%s", diff)
	}
	wantResult := map[string]any{"temperature": 21.5, "description": "Sunny", "windy": false}
	if diff := cmp.Diff(wantResult, success.Result.Plain()); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if success.Error != nil {
		t.Errorf("success block should not carry an error example")
	}

	failure, ok := getWeather.ErrorExample()
	if !ok {
		t.Fatal("expected an error example")
	}
	wantError := map[string]any{"title": "Not found", "status": 404.0}
	if diff := cmp.Diff(wantError, failure.Error.Plain()); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
	if failure.Result != nil {
		t.Errorf("error block should not carry a result example")
	}
}

func TestPrepare_DefaultBlockWithoutExamples(t *testing.T) {
	prepared, err := model.Prepare(testsupport.WeatherDocument(), model.Options{})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	listCities := prepared.UseCases[1]
	if len(listCities.Examples) != 1 {
		t.Fatalf("expected one default block, got %d", len(listCities.Examples))
	}
	block := listCities.Examples[0]
	if block.Kind != ast.ExampleSuccess || block.Input != nil {
		t.Errorf("unexpected default block %+v", block)
	}
	if diff := cmp.Diff([]any{""}, block.Result.Plain()); diff != "" {
		t.Errorf("default list mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepare_RecordsDuplicates(t *testing.T) {
	doc := testsupport.WeatherDocument()
	doc.Definitions = append(doc.Definitions, &ast.NamedModelDefinition{
		Name: "Weather",
		Type: &ast.Object{Fields: []ast.FieldDecl{{Name: "summary", Type: ast.String()}}},
	})

	prepared, err := model.Prepare(doc, model.Options{})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if len(prepared.Duplicates) != 1 {
		t.Fatalf("expected one duplicate, got %v", prepared.Duplicates)
	}
	if _, ok := prepared.UseCases[0].Result.Field("summary"); !ok {
		t.Errorf("expected the last Weather declaration to win")
	}
}

func TestPrepare_WrapsUseCaseErrors(t *testing.T) {
	doc := ast.ProfileDocument{
		Header: ast.Header{Name: "broken"},
		Definitions: []ast.Definition{
			&ast.UseCaseDefinition{Name: "Broken", Result: &ast.ModelRef{Name: "Missing"}},
		},
	}

	_, err := model.Prepare(doc, model.Options{})
	if err == nil {
		t.Fatal("expected error for unresolved model")
	}
	if !model.IsDeveloperError(err) {
		t.Errorf("expected developer error, got %v", err)
	}
	if !errors.Is(err, model.ErrModelNotFound) {
		t.Errorf("expected model not found, got %v", err)
	}
}

func TestExample_Plain(t *testing.T) {
	cases := []struct {
		name    string
		example model.Example
		want    any
	}{
		{name: "none", example: model.Example{Kind: model.ExampleNone}, want: nil},
		{name: "zero", example: model.Example{}, want: nil},
		{name: "scalar", example: model.Example{Kind: model.ExampleNumber, Value: 3.0}, want: 3.0},
		{
			name: "nested",
			example: model.Example{Kind: model.ExampleObject, Properties: []model.ExampleProperty{
				{Name: "tags", Example: model.Example{Kind: model.ExampleArray, Items: []model.Example{
					{Kind: model.ExampleString, Value: "a"},
					{Kind: model.ExampleNone},
				}}},
			}},
			want: map[string]any{"tags": []any{"a", nil}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.example.Plain()); diff != "" {
				t.Errorf("Plain() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSynthesizeUseCase(t *testing.T) {
	doc := testsupport.WeatherDocument()
	cache := model.BuildDefinitionCache(doc.Definitions)

	getWeather, _ := doc.UseCase("GetWeather")
	blocks, err := model.SynthesizeUseCase(getWeather, cache)
	if err != nil {
		t.Fatalf("synthesize use case: %v", err)
	}
	if len(blocks) != 2 || blocks[0].Name != "prague" || !blocks[1].IsError() {
		t.Fatalf("unexpected blocks %+v", blocks)
	}
	if got := blocks[1].Input.Plain(); cmp.Diff(map[string]any{"city": "Atlantis", "units": "C"}, got) != "" {
		t.Errorf("unexpected error block input %v", got)
	}
}
