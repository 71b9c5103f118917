package openapi_test

import (
	"testing"

	"github.com/goliatone/go-comlinkgen/pkg/openapi"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{raw: `{"openapi":"3.0.3","info":{}}`, want: true},
		{raw: `{"swagger":"2.0"}`, want: true},
		{raw: "openapi: 3.1.0\ninfo:\n  title: x\n", want: true},
		{raw: "# comment\nswagger: '2.0'\n", want: true},
		{raw: `{"kind":"ProfileDocument","header":{}}`, want: false},
		{raw: "kind: ProfileDocument\nheader:\n  name: x\n", want: false},
		{raw: "   ", want: false},
		{raw: "description: mentions openapi: in passing\n", want: false},
	}
	for _, tc := range cases {
		if got := openapi.Detect([]byte(tc.raw)); got != tc.want {
			t.Fatalf("Detect(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestNewImportOptions(t *testing.T) {
	defaults := openapi.NewImportOptions()
	if !defaults.ResolveReferences || !defaults.IncludeExamples || defaults.AllowPartialDocuments {
		t.Fatalf("unexpected defaults %+v", defaults)
	}

	opts := openapi.NewImportOptions(
		openapi.WithProfileID("weather/current-city"),
		openapi.WithVersion(" 2.0.0 "),
		openapi.WithExamples(false),
		openapi.WithPartialDocuments(true),
		openapi.WithReferenceResolution(false),
	)
	if opts.Scope != "weather" || opts.Name != "current-city" || opts.Version != "2.0.0" {
		t.Fatalf("unexpected id options %+v", opts)
	}
	if opts.IncludeExamples || !opts.AllowPartialDocuments || opts.ResolveReferences {
		t.Fatalf("unexpected toggles %+v", opts)
	}
}
