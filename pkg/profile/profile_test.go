package profile_test

import (
	"testing"

	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

func TestSourceFromLocation(t *testing.T) {
	src, err := profile.SourceFromLocation("https://example.com/weather.supr.json")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	if src.Kind() != profile.SourceKindURL {
		t.Fatalf("expected url source, got %s", src.Kind())
	}

	src, err = profile.SourceFromLocation("./fixtures/../weather.json")
	if err != nil {
		t.Fatalf("file source: %v", err)
	}
	if src.Kind() != profile.SourceKindFile || src.Location() != "weather.json" {
		t.Fatalf("unexpected file source %s %q", src.Kind(), src.Location())
	}

	if _, err := profile.SourceFromLocation("  "); err == nil {
		t.Fatalf("expected error for empty location")
	}
	if _, err := profile.SourceFromURL("ftp://example.com/x"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestDocumentFormat(t *testing.T) {
	cases := []struct {
		location string
		raw      string
		want     profile.Format
	}{
		{location: "a.json", raw: "kind: x", want: profile.FormatJSON},
		{location: "a.yml", raw: "{}", want: profile.FormatYAML},
		{location: "https://x.dev/a.yaml?ref=main", raw: "{}", want: profile.FormatYAML},
		{location: "a.ast", raw: "  {\"kind\": \"ProfileDocument\"}", want: profile.FormatJSON},
		{location: "a.ast", raw: "kind: ProfileDocument", want: profile.FormatYAML},
	}
	for _, tc := range cases {
		doc := profile.MustNewDocument(profile.SourceFromFS(tc.location), []byte(tc.raw))
		if got := doc.Format(); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.location, got, tc.want)
		}
	}
}

func TestNewDocumentValidation(t *testing.T) {
	if _, err := profile.NewDocument(nil, []byte("x")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := profile.NewDocument(profile.SourceFromFS("a"), []byte("  \n")); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	raw := []byte("{}")
	doc := profile.MustNewDocument(profile.SourceFromFS("a"), raw)
	raw[0] = 'x'
	if string(doc.Raw()) != "{}" {
		t.Fatalf("document should copy its payload")
	}
}
