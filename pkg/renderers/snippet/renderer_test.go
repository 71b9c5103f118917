package snippet_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/render"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/snippet"
	"github.com/goliatone/go-comlinkgen/pkg/testsupport"
)

func TestRenderer_RenderContract(t *testing.T) {
	input := testsupport.MustPrepare(t, testsupport.WeatherDocument())

	cases := []struct {
		dialect render.Dialect
		name    string
		golden  string
	}{
		{dialect: render.DialectJS, name: "snippet-js", golden: "weather_js.golden"},
		{dialect: render.DialectPython, name: "snippet-python", golden: "weather_python.golden"},
	}

	for _, tc := range cases {
		t.Run(string(tc.dialect), func(t *testing.T) {
			renderer, err := snippet.New(tc.dialect)
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			if renderer.Name() != tc.name {
				t.Fatalf("expected name %q, got %q", tc.name, renderer.Name())
			}
			output, err := renderer.Render(testsupport.Context(), input, render.RenderOptions{Provider: "acme"})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			testsupport.AssertGolden(t, filepath.Join("testdata", tc.golden), output)
		})
	}
}

func TestRenderer_DialectsDifferInLiteralsOnly(t *testing.T) {
	doc := ast.ProfileDocument{
		Header: ast.Header{Name: "flags"},
		Definitions: []ast.Definition{
			&ast.UseCaseDefinition{
				Name: "Toggle",
				Input: &ast.Object{Fields: []ast.FieldDecl{
					{Name: "enabled", Type: ast.Boolean()},
					{Name: "note"},
				}},
			},
		},
	}
	input := testsupport.MustPrepare(t, doc)

	js, err := snippet.NewJS()
	if err != nil {
		t.Fatalf("new js renderer: %v", err)
	}
	py, err := snippet.NewPython()
	if err != nil {
		t.Fatalf("new python renderer: %v", err)
	}

	jsOut, err := js.Render(testsupport.Context(), input, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render js: %v", err)
	}
	pyOut, err := py.Render(testsupport.Context(), input, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render python: %v", err)
	}

	if want := `.perform({ enabled: true, note: "" }, {`; !strings.Contains(string(jsOut), want) {
		t.Fatalf("expected js output to contain %q\n%s", want, jsOut)
	}
	if want := `{ "enabled": True, "note": "" },`; !strings.Contains(string(pyOut), want) {
		t.Fatalf("expected python output to contain %q\n%s", want, pyOut)
	}
}

func TestNew_RejectsUnknownDialect(t *testing.T) {
	if _, err := snippet.New(render.Dialect("ruby")); err == nil {
		t.Fatalf("expected unknown dialect error")
	}
}

func TestRenderer_SubsetSelection(t *testing.T) {
	input := testsupport.MustPrepare(t, testsupport.WeatherDocument())
	renderer, err := snippet.NewJS()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), input, render.RenderOptions{UseCases: []string{"listcities"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "GetWeather") {
		t.Fatalf("expected GetWeather to be filtered out\n%s", output)
	}
	if !strings.Contains(string(output), "provider: 'current-city-provider',") {
		t.Fatalf("expected default provider\n%s", output)
	}
}
