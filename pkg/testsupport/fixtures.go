package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	profileparser "github.com/goliatone/go-comlinkgen/internal/profile/parser"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/model"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
	"github.com/goliatone/go-comlinkgen/pkg/render"
)

// WeatherDocument is the profile most renderer and pipeline tests share: a
// named model, a named field, one use case with a success and an error
// example and one use case without examples.
func WeatherDocument() ast.ProfileDocument {
	return ast.ProfileDocument{
		Header: ast.Header{
			Scope:       "weather",
			Name:        "current-city",
			Version:     "1.0.0",
			Title:       "Current weather",
			Description: "Weather in a city",
		},
		Definitions: []ast.Definition{
			&ast.NamedModelDefinition{
				Name: "Weather",
				Type: &ast.Object{Fields: []ast.FieldDecl{
					{Name: "temperature", Type: &ast.NonNull{Inner: ast.Number()}},
					{Name: "description"},
					{Name: "windy", Type: ast.Boolean()},
				}},
			},
			&ast.NamedFieldDefinition{
				Name:        "description",
				Type:        ast.String(),
				Title:       "Description",
				Description: "Human readable summary",
			},
			&ast.UseCaseDefinition{
				Name:   "GetWeather",
				Title:  "Get weather",
				Safety: "safe",
				Input: &ast.Object{Fields: []ast.FieldDecl{
					{Name: "city", Required: true, Type: &ast.NonNull{Inner: ast.String()}},
					{Name: "units", Type: &ast.Enum{Values: []ast.EnumValue{
						{Value: "C", Title: "Celsius"},
						{Value: "F"},
					}}},
				}},
				Result: &ast.ModelRef{Name: "Weather"},
				Error: &ast.Object{Fields: []ast.FieldDecl{
					{Name: "title", Type: ast.String()},
					{Name: "status", Type: ast.Number()},
				}},
				Examples: []ast.ExampleBlock{
					{
						Name:  "prague",
						Kind:  ast.ExampleSuccess,
						Input: objectLiteral("city", "Prague"),
						Result: objectLiteral(
							"temperature", 21.5,
							"description", "Sunny",
							"windy", false,
						),
					},
					{
						Name:  "unknown city",
						Kind:  ast.ExampleError,
						Input: objectLiteral("city", "Atlantis"),
						Error: objectLiteral("title", "Not found", "status", 404.0),
					},
				},
			},
			&ast.UseCaseDefinition{
				Name:   "ListCities",
				Result: &ast.List{ElementType: ast.String()},
			},
		},
	}
}

// objectLiteral builds a flat object literal from key/value pairs.
func objectLiteral(pairs ...any) *ast.ObjectLiteral {
	out := &ast.ObjectLiteral{}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		out.Fields = append(out.Fields, ast.LiteralField{
			KeyPath: []string{key},
			Value:   &ast.PrimitiveLiteral{Value: pairs[i+1]},
		})
	}
	return out
}

// MustPrepare runs the engine over doc and adapts the result for renderers.
func MustPrepare(t *testing.T, doc ast.ProfileDocument) render.Input {
	t.Helper()

	prepared, err := model.NewPreparer().Prepare(doc)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	return render.NewInput(prepared)
}

// LoadProfile decodes an AST interchange fixture from disk.
func LoadProfile(t *testing.T, path string) ast.ProfileDocument {
	t.Helper()

	doc, err := LoadProfileFromPath(path)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	return doc
}

// LoadProfileFromPath is LoadProfile without testing.T, for setup code.
func LoadProfileFromPath(path string) (ast.ProfileDocument, error) {
	if path == "" {
		return ast.ProfileDocument{}, errors.New("testsupport: profile path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ast.ProfileDocument{}, errors.Wrap(err, "testsupport: read profile")
	}
	raw, err := profile.NewDocument(profile.SourceFromFile(path), data)
	if err != nil {
		return ast.ProfileDocument{}, err
	}
	parser := profileparser.New(profile.NewParserOptions())
	return parser.Parse(context.Background(), raw)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, refreshing it when
// UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := CompareGolden(string(want), string(got)); diff != "" {
		t.Fatalf("output mismatch for %s (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
