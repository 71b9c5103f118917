package comlinkgen_test

import (
	"io/fs"
	"strings"
	"testing"

	comlinkgen "github.com/goliatone/go-comlinkgen"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
	"github.com/goliatone/go-comlinkgen/pkg/testsupport"
)

const citiesProfile = `{
  "kind": "ProfileDocument",
  "header": {"name": "cities", "version": "1.0.0"},
  "definitions": [
    {
      "kind": "UseCaseDefinition",
      "useCaseName": "ListCities",
      "result": {
        "kind": "ListDefinition",
        "elementType": {"kind": "PrimitiveTypeName", "name": "string"}
      }
    }
  ]
}`

func TestGenerateFromDocument(t *testing.T) {
	doc := profile.MustNewDocument(profile.SourceFromFS("cities.json"), []byte(citiesProfile))

	output, err := comlinkgen.GenerateFromDocument(testsupport.Context(), doc, "", comlinkgen.RenderOptions{Provider: "acme"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	text := string(output)
	for _, want := range []string{
		`profile = "cities@1.0.0"`,
		`provider = "acme"`,
		"map ListCities {",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestNewParser(t *testing.T) {
	doc := profile.MustNewDocument(profile.SourceFromFS("cities.json"), []byte(citiesProfile))

	parsed, err := comlinkgen.NewParser().Parse(testsupport.Context(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := parsed.UseCase("ListCities"); !ok {
		t.Fatalf("expected ListCities use case, got %+v", parsed.Definitions)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.ReadFile(comlinkgen.EmbeddedTemplates(), "Map.hbs"); err != nil {
		t.Fatalf("read map template: %v", err)
	}
	if _, err := fs.ReadFile(comlinkgen.EmbeddedPartials(), "Type.hbs"); err != nil {
		t.Fatalf("read type partial: %v", err)
	}
}
