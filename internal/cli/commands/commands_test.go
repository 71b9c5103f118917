package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-comlinkgen/internal/cli/ui"
	profileparser "github.com/goliatone/go-comlinkgen/internal/profile/parser"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

const weatherFixture = "testdata/weather.json"

type stubPrompts struct {
	picked  []int
	confirm bool
	asked   []string
}

func (s *stubPrompts) Confirm(_ context.Context, cfg ui.ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	return s.confirm, nil
}

func (s *stubPrompts) MultiSelect(_ context.Context, cfg ui.SelectConfig) ([]int, error) {
	s.asked = append(s.asked, cfg.Message)
	return s.picked, nil
}

func execute(t *testing.T, prompts ui.PromptDriver, args ...string) (string, string, error) {
	t.Helper()

	if prompts == nil {
		prompts = &stubPrompts{}
	}
	root := NewRootCommand(WithPromptDriver(prompts))
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "comlinkgen" {
		t.Errorf("expected Use to be 'comlinkgen', got %s", cmd.Use)
	}

	expectedCommands := []string{
		"version",
		"generate",
		"model",
		"example",
		"import-openapi",
		"scaffold",
		"renderers",
	}
	for _, expected := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected command %s to be registered", expected)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, nil, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(stdout, "comlinkgen version: "+Version) {
		t.Errorf("unexpected version output: %s", stdout)
	}
}

func TestGenerate_MapToStdout(t *testing.T) {
	stdout, _, err := execute(t, nil, "generate", "map", weatherFixture, "--provider", "acme")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{
		`profile = "weather/current-city@1.0.0"`,
		`provider = "acme"`,
		"map GetWeather {",
		"map ListCities {",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestGenerate_SnippetDialect(t *testing.T) {
	stdout, _, err := execute(t, nil, "generate", "snippet", weatherFixture, "--dialect", "python", "-p", "acme", "-u", "GetWeather")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(stdout, `{ "city": "Prague", "units": "C" },`) {
		t.Errorf("expected python literal in output:\n%s", stdout)
	}
	if strings.Contains(stdout, "ListCities") {
		t.Errorf("use case filter ignored:\n%s", stdout)
	}
}

func TestGenerate_InteractiveSelection(t *testing.T) {
	prompts := &stubPrompts{picked: []int{1}}
	stdout, _, err := execute(t, prompts, "generate", "mock-map", weatherFixture, "--interactive")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(prompts.asked) != 1 {
		t.Fatalf("expected one prompt, got %v", prompts.asked)
	}
	if strings.Contains(stdout, "GetWeather") || !strings.Contains(stdout, "map ListCities {") {
		t.Errorf("expected only ListCities:\n%s", stdout)
	}
}

func TestGenerate_AllWritesFiles(t *testing.T) {
	dir := t.TempDir()
	_, stderr, err := execute(t, nil, "generate", "all", weatherFixture, "-p", "acme", "-o", dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	header := ast.Header{Scope: "weather", Name: "current-city"}
	for _, name := range allRenderers {
		path := filepath.Join(dir, OutputFileName(name, header, "acme"))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", path)
		}
		if !strings.Contains(stderr, "wrote "+path) {
			t.Errorf("expected status line for %s in:\n%s", path, stderr)
		}
	}
}

func TestGenerate_OverwriteDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.suma")
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	prompts := &stubPrompts{picked: []int{0, 1}, confirm: false}

	_, _, err := execute(t, prompts, "generate", "map", weatherFixture, "-i", "-o", path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep" {
		t.Errorf("file was overwritten: %q", data)
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	_, _, err := execute(t, nil, "generate", "html", weatherFixture)
	if err == nil || !strings.Contains(err.Error(), `unknown renderer "html"`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestGenerate_FromStdin(t *testing.T) {
	data, err := os.ReadFile(weatherFixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	root := NewRootCommand(WithPromptDriver(&stubPrompts{}))
	var stdout bytes.Buffer
	root.SetIn(bytes.NewReader(data))
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--no-color", "generate", "snippet-js", "-", "-u", "ListCities"})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(stdout.String(), "ListCities") {
		t.Errorf("expected ListCities snippet:\n%s", stdout.String())
	}
}

func TestModelCommand(t *testing.T) {
	stdout, _, err := execute(t, nil, "model", weatherFixture, "-u", "GetWeather")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	var got []struct {
		Name   string `json:"name"`
		Result struct {
			Kind   string `json:"kind"`
			Fields []struct {
				Name string `json:"name"`
			} `json:"fields"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(got) != 1 || got[0].Name != "GetWeather" {
		t.Fatalf("unexpected use cases %+v", got)
	}
	if got[0].Result.Kind != "object" || len(got[0].Result.Fields) != 3 {
		t.Errorf("expected resolved Weather object, got %+v", got[0].Result)
	}
}

func TestExampleCommand(t *testing.T) {
	stdout, _, err := execute(t, nil, "example", weatherFixture)
	if err != nil {
		t.Fatalf("example: %v", err)
	}
	var got []struct {
		Name     string `json:"name"`
		Examples []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Result any    `json:"result"`
			Error  any    `json:"error"`
		} `json:"examples"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(got) != 2 || len(got[0].Examples) != 2 || len(got[1].Examples) != 1 {
		t.Fatalf("unexpected examples %+v", got)
	}
	success := got[0].Examples[0]
	result, _ := success.Result.(map[string]any)
	if success.Kind != "success" || result["temperature"] != 21.5 || result["description"] != "Sunny" {
		t.Errorf("unexpected success example %+v", success)
	}
	failure := got[0].Examples[1]
	failureBody, _ := failure.Error.(map[string]any)
	if failure.Kind != "error" || failureBody["status"] != 404.0 {
		t.Errorf("unexpected error example %+v", failure)
	}
	if diff := cmp.Diff([]any{""}, got[1].Examples[0].Result); diff != "" {
		t.Errorf("list result mismatch (-want +got):\n%s", diff)
	}
}

func TestExampleCommand_Tree(t *testing.T) {
	stdout, _, err := execute(t, nil, "example", weatherFixture, "--tree", "-u", "GetWeather")
	if err != nil {
		t.Fatalf("example --tree: %v", err)
	}
	var got []struct {
		Name     string `json:"name"`
		Examples []struct {
			Input struct {
				Kind       string `json:"kind"`
				Properties []struct {
					Name  string `json:"name"`
					Kind  string `json:"kind"`
					Value any    `json:"value"`
				} `json:"properties"`
			} `json:"input"`
		} `json:"examples"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(got) != 1 || len(got[0].Examples) == 0 {
		t.Fatalf("unexpected output %+v", got)
	}
	input := got[0].Examples[0].Input
	if input.Kind != "object" || len(input.Properties) != 2 {
		t.Fatalf("unexpected input tree %+v", input)
	}
	city := input.Properties[0]
	if city.Name != "city" || city.Kind != "string" || city.Value != "Prague" {
		t.Errorf("unexpected city property %+v", city)
	}
}

func TestImportOpenAPI(t *testing.T) {
	stdout, _, err := execute(t, nil, "import-openapi", "testdata/openapi.yaml", "--profile-id", "weather/current")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	doc := profile.MustNewDocument(profile.SourceFromFS("imported.json"), []byte(stdout))
	parsed, err := profileparser.New(profile.NewParserOptions()).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse imported profile: %v\n%s", err, stdout)
	}
	if parsed.Header.FullID() != "weather/current@1.2.0" {
		t.Errorf("unexpected header %+v", parsed.Header)
	}
	for _, name := range []string{"GetWeather", "PostCities"} {
		if _, ok := parsed.UseCase(name); !ok {
			t.Errorf("expected use case %s", name)
		}
	}
}

func TestImportOpenAPI_YAMLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.profile.yaml")
	if _, _, err := execute(t, nil, "import-openapi", "testdata/openapi.yaml", "--out-format", "yaml", "-o", path); err != nil {
		t.Fatalf("import: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "kind: ProfileDocument") {
		t.Errorf("expected yaml profile document:\n%s", data)
	}
}

func TestScaffold_All(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, nil, "scaffold", "all", "weather/current-city@1.0.0", "-u", "get-weather", "-p", "acme", "-o", dir)
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	for _, name := range []string{"weather.current-city.supr", "weather.current-city.acme.suma", "acme.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestScaffold_UnknownKind(t *testing.T) {
	if _, _, err := execute(t, nil, "scaffold", "schema", "weather/current-city"); err == nil {
		t.Fatal("expected error for unknown scaffold kind")
	}
}

func TestRenderersCommand(t *testing.T) {
	stdout, _, err := execute(t, nil, "renderers")
	if err != nil {
		t.Fatalf("renderers: %v", err)
	}
	for _, name := range []string{"map", "mock-map", "test", "snippet-js", "snippet-python", "scaffold-map"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("expected %s in:\n%s", name, stdout)
		}
	}
}

func TestOutputFileName(t *testing.T) {
	header := ast.Header{Scope: "weather", Name: "current-city"}
	tests := []struct {
		renderer string
		want     string
	}{
		{renderer: "map", want: "weather.current-city.acme.suma"},
		{renderer: "mock-map", want: "weather.current-city.mock.suma"},
		{renderer: "test", want: "weather.current-city.acme.test.ts"},
		{renderer: "snippet-js", want: "weather.current-city.snippet.js"},
		{renderer: "snippet-python", want: "weather_current_city_snippet.py"},
	}
	for _, tt := range tests {
		if got := OutputFileName(tt.renderer, header, "acme"); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.renderer, tt.want, got)
		}
	}
}
