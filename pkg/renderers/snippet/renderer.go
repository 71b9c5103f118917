// Package snippet renders client code that performs each use case with its
// exemplar input. The JavaScript and Python dialects share one view and
// differ only in the literal syntax the shared partials emit.
package snippet

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

var entryTemplates = map[render.Dialect]string{
	render.DialectJS:     "SnippetJS",
	render.DialectPython: "SnippetPython",
}

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

// Renderer emits snippets for a single dialect.
type Renderer struct {
	dialect   render.Dialect
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a snippet renderer bound to dialect.
func New(dialect render.Dialect, options ...Option) (*Renderer, error) {
	if _, ok := entryTemplates[dialect]; !ok {
		return nil, errors.Newf("snippet renderer: unsupported dialect %q", dialect)
	}

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
			return nil, errors.Wrap(err, "snippet renderer: configure templates")
		}
		renderer = set
	}
	return &Renderer{dialect: dialect, templates: renderer}, nil
}

// NewJS and NewPython are shorthands for the two dialects.
func NewJS(options ...Option) (*Renderer, error) {
	return New(render.DialectJS, options...)
}

func NewPython(options ...Option) (*Renderer, error) {
	return New(render.DialectPython, options...)
}

func (r *Renderer) Name() string {
	return "snippet-" + string(r.dialect)
}

func (r *Renderer) ContentType() string {
	if r.dialect == render.DialectPython {
		return "text/x-python; charset=utf-8"
	}
	return "text/javascript; charset=utf-8"
}

// Dialect reports the language the renderer emits.
func (r *Renderer) Dialect() render.Dialect {
	return r.dialect
}

type snippetView struct {
	Profile  string        `json:"profile"`
	Provider string        `json:"provider"`
	Dialect  string        `json:"dialect"`
	UseCases []snippetCase `json:"useCases"`
}

type snippetCase struct {
	Name  string        `json:"name"`
	Input model.Example `json:"input"`
}

func (r *Renderer) Render(ctx context.Context, input render.Input, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("snippet renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selected, err := render.SelectUseCases(input, options.UseCases)
	if err != nil {
		return nil, err
	}

	view := snippetView{
		Profile:  selected.Header.FullID(),
		Provider: options.ProviderName(selected.Header),
		Dialect:  string(r.dialect),
		UseCases: make([]snippetCase, 0, len(selected.UseCases)),
	}
	for _, uc := range selected.UseCases {
		view.UseCases = append(view.UseCases, snippetCase{Name: uc.Name, Input: exemplarInput(uc)})
	}

	out, err := r.templates.Render(entryTemplates[r.dialect], view)
	if err != nil {
		return nil, errors.Wrapf(err, "snippet renderer: render %s template", r.dialect)
	}
	return render.Terminate(out), nil
}

// exemplarInput prefers the input of the first success block, then the
// first block of any kind, then an empty object.
func exemplarInput(uc model.UseCase) model.Example {
	if success, ok := uc.SuccessExample(); ok && success.Input != nil && !success.Input.IsNone() {
		return *success.Input
	}
	for _, ex := range uc.Examples {
		if ex.Input != nil && !ex.Input.IsNone() {
			return *ex.Input
		}
	}
	return model.Example{Kind: model.ExampleObject}
}
