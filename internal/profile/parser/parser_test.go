package parser_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/internal/profile/parser"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
	"github.com/goliatone/go-comlinkgen/pkg/testsupport"
)

func TestParser_FixturesMatchWeatherDocument(t *testing.T) {
	for _, name := range []string{"weather.json", "weather.yaml"} {
		t.Run(name, func(t *testing.T) {
			got := testsupport.LoadProfile(t, filepath.Join("testdata", name))
			if diff := testsupport.CompareGolden(testsupport.WeatherDocument(), got); diff != "" {
				t.Fatalf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_FormatOverride(t *testing.T) {
	payload := []byte(`{"kind":"ProfileDocument","header":{"name":"ping","version":"1.0.0"}}`)
	doc := profile.MustNewDocument(profile.SourceFromFile("ping.profile"), payload)

	p := parser.New(profile.NewParserOptions(profile.WithFormat(profile.FormatJSON)))
	got, err := p.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Header.FullID() != "ping@1.0.0" {
		t.Fatalf("unexpected header %+v", got.Header)
	}
	if len(got.Definitions) != 0 {
		t.Fatalf("expected no definitions, got %d", len(got.Definitions))
	}
}

func TestParser_UnionAndListLiterals(t *testing.T) {
	payload := []byte(`
kind: ProfileDocument
header: { name: search, version: "2.1.0-rc" }
definitions:
  - kind: UseCaseDefinition
    name: Search
    input:
      kind: ObjectDefinition
      fields:
        - name: query
          type:
            kind: UnionDefinition
            types:
              - { kind: PrimitiveTypeName, name: string }
              - { kind: PrimitiveTypeName, name: number }
        - name: tags
          type: { kind: ListDefinition, elementType: { kind: PrimitiveTypeName, name: string } }
    examples:
      - kind: UseCaseExample
        input:
          kind: ComlinkObjectLiteral
          fields:
            - key: filters.tags
              value:
                kind: ComlinkListLiteral
                items:
                  - { kind: ComlinkPrimitiveLiteral, value: a }
                  - { kind: ComlinkNoneLiteral }
`)
	doc := profile.MustNewDocument(profile.SourceFromFile("search.yaml"), payload)
	got, err := parser.New(profile.NewParserOptions()).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := ast.ProfileDocument{
		Header: ast.Header{Name: "search", Version: "2.1.0-rc"},
		Definitions: []ast.Definition{
			&ast.UseCaseDefinition{
				Name: "Search",
				Input: &ast.Object{Fields: []ast.FieldDecl{
					{Name: "query", Type: &ast.Union{Alternatives: []ast.TypeNode{ast.String(), ast.Number()}}},
					{Name: "tags", Type: &ast.List{ElementType: ast.String()}},
				}},
				Examples: []ast.ExampleBlock{{
					Kind: ast.ExampleSuccess,
					Input: &ast.ObjectLiteral{Fields: []ast.LiteralField{{
						KeyPath: []string{"filters", "tags"},
						Value: &ast.ListLiteral{Items: []ast.LiteralNode{
							&ast.PrimitiveLiteral{Value: "a"},
							&ast.NoneLiteral{},
						}},
					}}},
				}},
			},
		},
	}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_InvalidDocuments(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{name: "not an object", payload: `[1, 2]`},
		{name: "wrong root kind", payload: `{"kind":"MapDocument","header":{"name":"x"}}`},
		{name: "missing header name", payload: `{"kind":"ProfileDocument","header":{}}`},
		{name: "unknown definition", payload: `{"kind":"ProfileDocument","header":{"name":"x"},"definitions":[{"kind":"Mystery"}]}`},
		{name: "unknown primitive", payload: `{"kind":"ProfileDocument","header":{"name":"x"},"definitions":[{"kind":"NamedModelDefinition","name":"M","type":{"kind":"PrimitiveTypeName","name":"date"}}]}`},
		{name: "assignment without key", payload: `{"kind":"ProfileDocument","header":{"name":"x"},"definitions":[{"kind":"UseCaseDefinition","name":"U","examples":[{"input":{"kind":"ComlinkObjectLiteral","fields":[{"value":{"kind":"ComlinkNoneLiteral"}}]}}]}]}`},
		{name: "malformed json", payload: `{"kind":`},
	}

	p := parser.New(profile.NewParserOptions())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := profile.MustNewDocument(profile.SourceFromFile("broken.json"), []byte(tc.payload))
			_, err := p.Parse(context.Background(), doc)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, profile.ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestParser_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := profile.MustNewDocument(profile.SourceFromFile("weather.json"), []byte(`{}`))
	if _, err := parser.New(profile.NewParserOptions()).Parse(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
