package profile

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Source identifies where a document originated so loaders can operate on
// files, fs.FS entries, or URLs without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindStdin SourceKind = "stdin"
)

// StdinLocation is the location argument that selects standard input.
const StdinLocation = "-"

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL validates raw and returns a URL Source.
func SourceFromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("profile: empty URL source")
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "profile: invalid URL %q", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Newf("profile: unsupported URL scheme %q", parsed.Scheme)
	}
	return urlSource{raw: raw}, nil
}

type stdinSource struct{}

func (stdinSource) Location() string { return StdinLocation }
func (stdinSource) Kind() SourceKind { return SourceKindStdin }

// SourceFromStdin returns a Source read from the loader's stdin reader.
func SourceFromStdin() Source {
	return stdinSource{}
}

// SourceFromLocation picks stdin for "-", a URL source for http(s) locations
// and a file source otherwise. This is what CLI arguments go through.
func SourceFromLocation(location string) (Source, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil, errors.New("profile: location is required")
	}
	if trimmed == StdinLocation {
		return SourceFromStdin(), nil
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return SourceFromURL(trimmed)
	}
	return SourceFromFile(trimmed), nil
}
