package comlinkgen

import (
	"io/fs"

	"github.com/goliatone/go-comlinkgen/pkg/renderers/mapdoc"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/partials"
)

// EmbeddedTemplates exposes the built-in map renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return mapdoc.TemplatesFS()
}

// EmbeddedPartials exposes the shared Type, Literal, and Comlink partials.
func EmbeddedPartials() fs.FS {
	return partials.FS()
}
