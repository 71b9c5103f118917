// Package mockmap renders a mock provider map that answers every use case
// with the result of its first success example, or with the error of its
// first error example when the use case has no success example.
package mockmap

import (
	"context"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/model"
	"github.com/goliatone/go-comlinkgen/pkg/render"
	rendertemplate "github.com/goliatone/go-comlinkgen/pkg/render/template"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/partials"
)

const entryTemplate = "MockMap"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the mock map renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		set, err := partials.NewSet(cfg.templateFS, "*.hbs")
		if err != nil {
			return nil, errors.Wrap(err, "mock map renderer: configure templates")
		}
		renderer = set
	}
	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "mock-map"
}

func (r *Renderer) ContentType() string {
	return "text/x-comlink-map; charset=utf-8"
}

type mockView struct {
	Profile  string     `json:"profile"`
	Provider string     `json:"provider"`
	UseCases []mockCase `json:"useCases"`
}

type mockCase struct {
	Name   string         `json:"name"`
	Result *model.Example `json:"result"`
	Error  *model.Example `json:"error"`
}

func (r *Renderer) Render(ctx context.Context, input render.Input, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("mock map renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selected, err := render.SelectUseCases(input, options.UseCases)
	if err != nil {
		return nil, err
	}

	view := mockView{
		Profile:  selected.Header.FullID(),
		Provider: options.ProviderName(selected.Header),
		UseCases: make([]mockCase, 0, len(selected.UseCases)),
	}
	for _, uc := range selected.UseCases {
		view.UseCases = append(view.UseCases, cannedResponse(uc))
	}

	out, err := r.templates.Render(entryTemplate, view)
	if err != nil {
		return nil, errors.Wrap(err, "mock map renderer: render template")
	}
	return render.Terminate(out), nil
}

func cannedResponse(uc model.UseCase) mockCase {
	out := mockCase{Name: uc.Name}
	if success, ok := uc.SuccessExample(); ok && success.Result != nil {
		out.Result = success.Result
		return out
	}
	if failure, ok := uc.ErrorExample(); ok && failure.Error != nil {
		out.Error = failure.Error
	}
	return out
}
