package parser_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-comlinkgen/internal/profile/parser"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
	"github.com/goliatone/go-comlinkgen/pkg/testsupport"
)

func TestEncode_ParsesBack(t *testing.T) {
	for _, format := range []profile.Format{profile.FormatJSON, profile.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			payload, err := parser.Encode(testsupport.WeatherDocument(), format)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			doc := profile.MustNewDocument(profile.SourceFromFile("weather."+string(format)), payload)
			got, err := parser.New(profile.NewParserOptions()).Parse(context.Background(), doc)
			if err != nil {
				t.Fatalf("parse: %v\n%s", err, payload)
			}
			if diff := testsupport.CompareGolden(testsupport.WeatherDocument(), got); diff != "" {
				t.Fatalf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_ErrorBlockWithoutLiteral(t *testing.T) {
	doc := ast.ProfileDocument{
		Header: ast.Header{Name: "auth", Version: "1.0.0"},
		Definitions: []ast.Definition{
			&ast.UseCaseDefinition{
				Name:     "Login",
				Examples: []ast.ExampleBlock{{Name: "denied", Kind: ast.ExampleError}},
			},
		},
	}
	payload, err := parser.Encode(doc, profile.FormatJSON)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(payload), `"ComlinkNoneLiteral"`) {
		t.Fatalf("expected a none literal for the error slot:\n%s", payload)
	}

	parsed, err := parser.New(profile.NewParserOptions()).Parse(context.Background(),
		profile.MustNewDocument(profile.SourceFromFile("auth.json"), payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	uc, _ := parsed.UseCase("Login")
	if uc == nil || len(uc.Examples) != 1 || uc.Examples[0].Kind != ast.ExampleError {
		t.Fatalf("expected the error kind to survive, got %+v", uc)
	}
}

func TestEncode_RejectsIncompleteNodes(t *testing.T) {
	doc := ast.ProfileDocument{
		Header: ast.Header{Name: "broken"},
		Definitions: []ast.Definition{
			&ast.NamedModelDefinition{Name: "Items", Type: &ast.List{}},
		},
	}
	if _, err := parser.Encode(doc, profile.FormatJSON); err == nil {
		t.Fatalf("expected an error for a list without element type")
	}
}
