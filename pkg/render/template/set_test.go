package template_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/render/template"
)

func mustSet(t *testing.T, sources map[string]string) *template.Set {
	t.Helper()
	set, err := template.New(sources)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	return set
}

func render(t *testing.T, sources map[string]string, entry string, data any) string {
	t.Helper()
	out, err := template.Render(mustSet(t, sources), entry, data)
	if err != nil {
		t.Fatalf("render %s: %v", entry, err)
	}
	return out
}

func TestRenderValuesAndLookup(t *testing.T) {
	data := map[string]any{
		"name":  "GetWeather",
		"count": 3,
		"ratio": 0.5,
		"ok":    true,
		"user":  map[string]any{"id": "u1"},
		"tags":  []string{"a", "b"},
	}
	cases := []struct {
		name string
		src  string
		want string
	}{
		{name: "plain", src: "{{name}}", want: "GetWeather"},
		{name: "triple", src: "{{{name}}}", want: "GetWeather"},
		{name: "dotted", src: "{{user.id}}", want: "u1"},
		{name: "number", src: "{{count}}/{{ratio}}", want: "3/0.5"},
		{name: "bool", src: "{{ok}}", want: "true"},
		{name: "missing", src: "[{{nope.deeper}}]", want: "[]"},
		{name: "index", src: "{{tags.1}}/{{tags.length}}", want: "b/2"},
		{name: "comment", src: "a{{! ignored }}b{{!-- also }} ignored --}}c", want: "abc"},
		{name: "this", src: "{{#with user}}{{this.id}}{{/with}}", want: "u1"},
		{name: "root", src: "{{#with user}}{{@root.name}}{{/with}}", want: "GetWeather"},
		{name: "parent", src: "{{#each tags}}{{../name}}{{/each}}", want: "GetWeatherGetWeather"},
		{name: "walk up", src: "{{#each tags}}{{this}}:{{name}};{{/each}}", want: "a:GetWeather;b:GetWeather;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := render(t, map[string]string{"main": tc.src}, "main", data)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestRenderStructContext(t *testing.T) {
	type field struct {
		Name     string `json:"name"`
		Required bool   `json:"required"`
	}
	data := struct {
		Fields []field `json:"fields"`
	}{Fields: []field{{Name: "city", Required: true}, {Name: "units"}}}

	got := render(t, map[string]string{
		"main": "{{#each fields}}{{name}}{{#if required}}!{{/if}}{{#unless @last}}, {{/unless}}{{/each}}",
	}, "main", data)
	if got != "city!, units" {
		t.Fatalf("got %q", got)
	}
}

func TestEachDataVariables(t *testing.T) {
	data := map[string]any{
		"items": []any{"x", "y", "z"},
		"props": map[string]any{"b": 2, "a": 1},
		"empty": []any{},
	}
	cases := map[string]struct {
		src  string
		want string
	}{
		"index":   {src: "{{#each items}}{{@index}}{{this}}{{/each}}", want: "0x1y2z"},
		"first":   {src: "{{#each items}}{{#if @first}}[{{/if}}{{this}}{{#if @last}}]{{/if}}{{/each}}", want: "[xyz]"},
		"map":     {src: "{{#each props}}{{@key}}={{this}};{{/each}}", want: "a=1;b=2;"},
		"inverse": {src: "{{#each empty}}x{{else}}none{{/each}}", want: "none"},
		"nested": {
			src:  "{{#each items}}{{#each ../items}}{{@index}}{{/each}}|{{/each}}",
			want: "012|012|012|",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := render(t, map[string]string{"main": tc.src}, "main", data)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestStructuralHelpers(t *testing.T) {
	data := map[string]any{
		"kind":  "object",
		"n":     2,
		"none":  nil,
		"list":  []any{},
		"inner": map[string]any{"v": "deep"},
	}
	cases := map[string]struct {
		src  string
		want string
	}{
		"if else":          {src: "{{#if none}}yes{{else}}no{{/if}}", want: "no"},
		"unless":           {src: "{{#unless list}}empty{{/unless}}", want: "empty"},
		"with":             {src: "{{#with inner}}{{v}}{{/with}}", want: "deep"},
		"with inverse":     {src: "{{#with none}}x{{else}}missing{{/with}}", want: "missing"},
		"ifeq string":      {src: `{{#ifeq kind "object"}}obj{{else}}other{{/ifeq}}`, want: "obj"},
		"ifeq number":      {src: "{{#ifeq n 2}}two{{/ifeq}}", want: "two"},
		"ifeq subexpr":     {src: "{{#ifeq (inc n) 3}}three{{/ifeq}}", want: "three"},
		"switch hit":       {src: `{{#switch kind}}{{#case "list"}}L{{/case}}{{#case "enum" "object"}}O{{/case}}{{/switch}}`, want: "O"},
		"switch default":   {src: `{{#switch kind}}{{#case "list"}}L{{/case}}{{else}}D{{/switch}}`, want: "D"},
		"switch first win": {src: `{{#switch n}}{{#case 2}}a{{/case}}{{#case 2}}b{{/case}}{{/switch}}`, want: "a"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := render(t, map[string]string{"main": tc.src}, "main", data)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFormattingHelpers(t *testing.T) {
	data := map[string]any{
		"indent": 2, "flag": false, "text": "say \"hi\"\n",
		"plain": "city", "dashed": "content-type", "path": "geo.lat", "dollar": "$ref", "digit": "1st",
	}
	cases := map[string]struct {
		src  string
		want string
	}{
		"newLine":        {src: "a{{newLine indent}}b", want: "a\n  b"},
		"newLine bare":   {src: "a{{newLine}}b", want: "a\nb"},
		"inc":            {src: "{{inc indent}}", want: "3"},
		"inc step":       {src: "{{inc indent 4}}", want: "6"},
		"newLine inc":    {src: "a{{newLine (inc indent 2)}}b", want: "a\n    b"},
		"quotes js":      {src: `{{quotes "js"}}k{{quotes "js"}}`, want: "k"},
		"quotes python":  {src: `{{quotes "python"}}k{{quotes "python"}}`, want: `"k"`},
		"boolean js":     {src: `{{boolean flag "js"}}`, want: "false"},
		"boolean python": {src: `{{boolean true "python"}}`, want: "True"},
		"string":         {src: "{{string text}}", want: `"say \"hi\"\n"`},
		"key js":         {src: `{{key plain "js"}}`, want: "city"},
		"key js default": {src: `{{key dollar}}`, want: "$ref"},
		"key js dashed":  {src: `{{key dashed "js"}}`, want: `"content-type"`},
		"key js path":    {src: `{{key path "js"}}`, want: `"geo.lat"`},
		"key js digit":   {src: `{{key digit "js"}}`, want: `"1st"`},
		"key python":     {src: `{{key plain "python"}}`, want: `"city"`},
		"key comlink":    {src: `{{key path "comlink"}}`, want: "geo.lat"},
		"key comlink $":  {src: `{{key dollar "comlink"}}`, want: `"$ref"`},
		"key comlink -":  {src: `{{key dashed "comlink"}}`, want: `"content-type"`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := render(t, map[string]string{"main": tc.src}, "main", data)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestWhitespaceControl(t *testing.T) {
	src := "start\n  {{~#if ok~}}\n  body\n  {{~/if~}}\n end"
	got := render(t, map[string]string{"main": src}, "main", map[string]any{"ok": true})
	if got != "startbodyend" {
		t.Fatalf("got %q", got)
	}
}

func TestPartials(t *testing.T) {
	sources := map[string]string{
		"main":  "{{#each fields}}{{> Field this pad=(inc ../depth)}}{{/each}}",
		"Field": "{{name}}@{{pad}}{{> Tail}};",
		"Tail":  "/{{pad}}",
	}
	data := map[string]any{
		"depth":  1,
		"fields": []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}},
	}
	got := render(t, sources, "main", data)
	if got != "a@2/2;b@2/2;" {
		t.Fatalf("got %q", got)
	}
}

func TestRecursivePartial(t *testing.T) {
	sources := map[string]string{
		"Tree": "{{label}}{{#if children}}({{#each children}}{{> Tree}}{{/each}}){{/if}}",
	}
	data := map[string]any{
		"label": "root",
		"children": []any{
			map[string]any{"label": "a", "children": []any{map[string]any{"label": "a1", "children": []any{}}}},
			map[string]any{"label": "b", "children": []any{}},
		},
	}
	got := render(t, sources, "Tree", data)
	if got != "root(a(a1)b)" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	sources := map[string]string{"main": "{{#each props}}{{@key}}:{{this}} {{/each}}"}
	data := map[string]any{"props": map[string]any{"z": 1, "m": 2, "a": 3, "q": 4}}
	set := mustSet(t, sources)
	first, err := set.Render("main", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := set.Render("main", data)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if again != first {
			t.Fatalf("render %d differs: %q vs %q", i, again, first)
		}
	}
}

func TestRenderStringAndWriters(t *testing.T) {
	set := mustSet(t, map[string]string{"Greeting": "hello {{name}}"})
	var buf strings.Builder
	got, err := set.RenderString("{{> Greeting}}!", map[string]any{"name": "map"}, &buf)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "hello map!" || buf.String() != got {
		t.Fatalf("got %q, writer %q", got, buf.String())
	}
}

func TestParseFS(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/Main.hbs": {Data: []byte("{{> Item}}")},
		"templates/Item.hbs": {Data: []byte("item {{v}}")},
	}
	set, err := template.ParseFS(fsys, "templates/*.hbs")
	if err != nil {
		t.Fatalf("parse fs: %v", err)
	}
	if !set.Has("Main") || !set.Has("Item") {
		t.Fatalf("unexpected names %v", set.Names())
	}
	got, err := set.Render("Main", map[string]any{"v": 1})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "item 1" {
		t.Fatalf("got %q", got)
	}
}

func TestTemplateErrors(t *testing.T) {
	cases := []struct {
		name    string
		sources map[string]string
		target  error
	}{
		{name: "unknown block helper", sources: map[string]string{"m": "{{#loop x}}{{/loop}}"}, target: template.ErrUnknownHelper},
		{name: "unknown inline helper", sources: map[string]string{"m": "{{shout name}}"}, target: template.ErrUnknownHelper},
		{name: "unknown subexpression", sources: map[string]string{"m": "{{newLine (twice n)}}"}, target: template.ErrUnknownHelper},
		{name: "unresolved partial", sources: map[string]string{"m": "{{> Missing}}"}, target: template.ErrUnknownPartial},
		{name: "unclosed block", sources: map[string]string{"m": "{{#if x}}"}, target: template.ErrSyntax},
		{name: "mismatched close", sources: map[string]string{"m": "{{#if x}}{{/each}}"}, target: template.ErrSyntax},
		{name: "unclosed tag", sources: map[string]string{"m": "{{name"}, target: template.ErrSyntax},
		{name: "case outside switch", sources: map[string]string{"m": `{{#case "a"}}{{/case}}`}, target: template.ErrSyntax},
		{name: "arity", sources: map[string]string{"m": "{{#ifeq a}}{{/ifeq}}"}, target: template.ErrSyntax},
		{name: "text in switch", sources: map[string]string{"m": `{{#switch a}}x{{/switch}}`}, target: template.ErrSyntax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := template.New(tc.sources)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
			if !template.IsDeveloperError(err) || !errors.IsAssertionFailure(err) {
				t.Fatalf("expected developer error, got %v", err)
			}
		})
	}
}

func TestRecursionLimit(t *testing.T) {
	set := mustSet(t, map[string]string{"Loop": "{{> Loop}}"})
	_, err := set.Render("Loop", nil)
	if !errors.Is(err, template.ErrRecursionLimit) {
		t.Fatalf("expected recursion limit error, got %v", err)
	}
	if !template.IsDeveloperError(err) {
		t.Fatalf("recursion limit should be a developer error, got %v", err)
	}
	if template.IsDeveloperError(errors.New("disk full")) || template.IsDeveloperError(nil) {
		t.Fatalf("plain errors are not developer errors")
	}
}

func TestStandaloneTagLines(t *testing.T) {
	src := "items:\n{{#each items}}\n  {{! one per line }}\n  - {{this}}\n{{/each}}\n{{#unless items}}\n  none\n{{else}}\ndone\n{{/unless}}\n"
	got := render(t, map[string]string{"main": src}, "main", map[string]any{"items": []any{"a", "b"}})
	want := "items:\n  - a\n  - b\ndone\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSourcesTrimTrailingNewline(t *testing.T) {
	fsys := fstest.MapFS{
		"Main.hbs": {Data: []byte("[{{> Inline}}]\n")},
		"Inline.hbs": {Data: []byte("x\n")},
	}
	sources, err := template.Sources(fsys, "*.hbs")
	if err != nil {
		t.Fatalf("sources: %v", err)
	}
	if sources["Inline"] != "x" {
		t.Fatalf("unexpected source %q", sources["Inline"])
	}
	set, err := template.New(sources)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := set.Render("Main", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[x]" {
		t.Fatalf("got %q", got)
	}
}
