package orchestrator

import (
	"bytes"
	"context"
	"io/fs"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

// Transformer rewrites a parsed profile before the engine runs.
// Implementations can rename use cases, fix headers, or perform arbitrary
// rewrites.
type Transformer interface {
	Transform(ctx context.Context, doc *ast.ProfileDocument) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *ast.ProfileDocument) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *ast.ProfileDocument) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// The document shape supports header patches and per-use-case patches:
//
//	{
//	  "header": {"scope": "weather", "version": "2.0.0"},
//	  "useCases": {
//	    "GetWeather": {"title": "Current weather", "rename": "CurrentWeather"}
//	  }
//	}
type JSONPresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Header   presetHeader            `json:"header"`
	UseCases map[string]useCasePatch `json:"useCases"`
}

type presetHeader struct {
	Scope       string `json:"scope"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type useCasePatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Safety      string `json:"safety"`
	Rename      string `json:"rename"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, errors.Wrap(err, "json preset transformer: parse document")
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "json preset transformer: read %s", path)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto doc. Patches naming an
// unknown use case fail; patches apply in use case name order.
func (t *JSONPresetTransformer) Transform(ctx context.Context, doc *ast.ProfileDocument) error {
	if doc == nil {
		return errors.New("json preset transformer: document is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	applyHeaderPatch(&doc.Header, t.document.Header)

	names := make([]string, 0, len(t.document.UseCases))
	for name := range t.document.UseCases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		uc, ok := doc.UseCase(name)
		if !ok {
			return errors.Newf("json preset transformer: use case %q not found", name)
		}
		applyUseCasePatch(uc, t.document.UseCases[name])
	}
	return nil
}

func applyHeaderPatch(header *ast.Header, patch presetHeader) {
	if patch.Scope != "" {
		header.Scope = patch.Scope
	}
	if patch.Name != "" {
		header.Name = patch.Name
	}
	if patch.Version != "" {
		header.Version = patch.Version
	}
	if patch.Title != "" {
		header.Title = patch.Title
	}
	if patch.Description != "" {
		header.Description = patch.Description
	}
}

func applyUseCasePatch(uc *ast.UseCaseDefinition, patch useCasePatch) {
	if patch.Title != "" {
		uc.Title = patch.Title
	}
	if patch.Description != "" {
		uc.Description = patch.Description
	}
	if patch.Safety != "" {
		uc.Safety = patch.Safety
	}
	if rename := strings.TrimSpace(patch.Rename); rename != "" {
		uc.Name = rename
	}
}
