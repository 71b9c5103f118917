// Package mapdoc renders Comlink map skeletons: one map block per use case
// with the slot types as comments, request body assignments for the input
// fields and result/error assignments for the output fields.
package mapdoc

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

const entryTemplate = "Map"

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
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
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

// New constructs the map renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		set, err := partials.NewSet(cfg.templateFS, "*.hbs")
		if err != nil {
			return nil, errors.Wrap(err, "map renderer: configure templates")
		}
		renderer = set
	}
	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "map"
}

func (r *Renderer) ContentType() string {
	return "text/x-comlink-map; charset=utf-8"
}

type mapView struct {
	Profile  string        `json:"profile"`
	Provider string        `json:"provider"`
	UseCases []useCaseView `json:"useCases"`
}

type useCaseView struct {
	Name   string       `json:"name"`
	Title  string       `json:"title"`
	Input  *model.Model `json:"input"`
	Result *model.Model `json:"result"`
	Error  *model.Model `json:"error"`
}

func (r *Renderer) Render(ctx context.Context, input render.Input, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("map renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selected, err := render.SelectUseCases(input, options.UseCases)
	if err != nil {
		return nil, err
	}

	view := mapView{
		Profile:  selected.Header.FullID(),
		Provider: options.ProviderName(selected.Header),
		UseCases: make([]useCaseView, 0, len(selected.UseCases)),
	}
	for _, uc := range selected.UseCases {
		view.UseCases = append(view.UseCases, useCaseView{
			Name:   uc.Name,
			Title:  uc.Title,
			Input:  uc.Input,
			Result: uc.Result,
			Error:  uc.Error,
		})
	}

	out, err := r.templates.Render(entryTemplate, view)
	if err != nil {
		return nil, errors.Wrap(err, "map renderer: render template")
	}
	return render.Terminate(out), nil
}
