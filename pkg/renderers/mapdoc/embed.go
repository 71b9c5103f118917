package mapdoc

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.hbs
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
