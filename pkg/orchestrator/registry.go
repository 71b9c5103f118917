package orchestrator

import (
	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/render"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/mapdoc"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/mockmap"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/scaffold"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/snippet"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/testfile"
)

// NewDefaultRegistry registers every built-in renderer with its embedded
// templates.
func NewDefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	constructors := []func() (render.Renderer, error){
		func() (render.Renderer, error) { return mapdoc.New() },
		func() (render.Renderer, error) { return mockmap.New() },
		func() (render.Renderer, error) { return testfile.New() },
		func() (render.Renderer, error) { return snippet.NewJS() },
		func() (render.Renderer, error) { return snippet.NewPython() },
	}
	for _, kind := range scaffold.Kinds() {
		kind := kind
		constructors = append(constructors, func() (render.Renderer, error) { return scaffold.New(kind) })
	}

	for _, build := range constructors {
		renderer, err := build()
		if err != nil {
			return registry, err
		}
		if err := registry.Register(renderer); err != nil {
			return registry, errors.Wrap(err, "register renderer")
		}
	}
	return registry, nil
}
