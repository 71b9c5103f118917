// Package comlinkgen generates Comlink maps, mock maps, tests, and client
// snippets from profile documents. The root package re-exports the common
// entry points so callers can start without importing the pkg/ tree.
package comlinkgen

import (
	"context"

	"github.com/goliatone/go-comlinkgen/pkg/model"
	"github.com/goliatone/go-comlinkgen/pkg/orchestrator"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
	"github.com/goliatone/go-comlinkgen/pkg/render"
)

// RenderOptions carries the provider name, use case subset, dialect, and
// indentation renderers honour.
type RenderOptions = render.RenderOptions

// Profile is the engine output for a whole document.
type Profile = model.Profile

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads source, detects its format, and renders it with the named
// renderer. An empty renderer name selects the Comlink map.
func Generate(ctx context.Context, source profile.Source, rendererName string, renderOptions RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:        source,
		Renderer:      rendererName,
		RenderOptions: renderOptions,
	})
}

// GenerateFromDocument renders a pre-loaded document, bypassing the loader
// stage while still delegating to the orchestrator.
func GenerateFromDocument(ctx context.Context, doc profile.Document, rendererName string, renderOptions RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Renderer:      rendererName,
		RenderOptions: renderOptions,
	})
}
