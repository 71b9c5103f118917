package render

import (
	"context"
	"strings"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/model"
)

// Renderer converts prepared use cases into source text (Comlink maps, tests,
// client snippets).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, input Input, options RenderOptions) ([]byte, error)
}

// Input is what every renderer consumes: the profile header plus one prepared
// use case per definition, in declaration order.
type Input struct {
	Header   ast.Header      `json:"header"`
	UseCases []model.UseCase `json:"useCases"`
}

// NewInput adapts an engine Profile.
func NewInput(profile model.Profile) Input {
	return Input{Header: profile.Header, UseCases: profile.UseCases}
}

// Terminate returns out with exactly one trailing newline.
func Terminate(out string) []byte {
	return []byte(strings.TrimRight(out, "\n") + "\n")
}
