// Package partials holds the template partials every generator shares: the
// Comlink type expression of a Model and the literal renderings of an
// Example (client dialects, inline Comlink, block Comlink).
package partials

import (
	"embed"
	"io/fs"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/render/template"
)

//go:embed templates/*.hbs
var embedded embed.FS

// Names of the shared partials.
const (
	Type         = "Type"
	Literal      = "Literal"
	Comlink      = "Comlink"
	ComlinkBlock = "ComlinkBlock"
)

// FS exposes the embedded partial bundle.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}

// NewSet parses the shared partials together with the templates in fsys
// matching patterns. Templates from fsys override shared ones of the same name.
func NewSet(fsys fs.FS, patterns ...string) (*template.Set, error) {
	sources, err := template.Sources(FS(), "*.hbs")
	if err != nil {
		return nil, errors.Wrap(err, "partials: load shared templates")
	}
	if fsys != nil && len(patterns) > 0 {
		extra, err := template.Sources(fsys, patterns...)
		if err != nil {
			return nil, err
		}
		for name, source := range extra {
			sources[name] = source
		}
	}
	return template.New(sources)
}
