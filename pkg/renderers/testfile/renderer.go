// Package testfile renders a test suite with one test per example block.
// Success blocks assert an ok result, error blocks assert a failure, and
// both snapshot the outcome.
package testfile

import (
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/model"
	"github.com/goliatone/go-comlinkgen/pkg/render"
	rendertemplate "github.com/goliatone/go-comlinkgen/pkg/render/template"
	"github.com/goliatone/go-comlinkgen/pkg/renderers/partials"
)

const entryTemplate = "TestFile"

const (
	defaultSuccessTitle = "should perform successfully"
	defaultErrorTitle   = "should map error"
)

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

// New constructs the test file renderer.
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
			return nil, errors.Wrap(err, "test renderer: configure templates")
		}
		renderer = set
	}
	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "test"
}

func (r *Renderer) ContentType() string {
	return "text/typescript; charset=utf-8"
}

type suiteView struct {
	Suite    string      `json:"suite"`
	Profile  string      `json:"profile"`
	Provider string      `json:"provider"`
	Dialect  string      `json:"dialect"`
	UseCases []suiteCase `json:"useCases"`
}

type suiteCase struct {
	Name  string     `json:"name"`
	Tests []testView `json:"tests"`
}

type testView struct {
	Title   string        `json:"title"`
	UseCase string        `json:"useCase"`
	Failure bool          `json:"failure"`
	Input   model.Example `json:"input"`
}

func (r *Renderer) Render(ctx context.Context, input render.Input, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("test renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selected, err := render.SelectUseCases(input, options.UseCases)
	if err != nil {
		return nil, err
	}

	provider := options.ProviderName(selected.Header)
	view := suiteView{
		Suite:    selected.Header.ID() + "/" + provider,
		Profile:  selected.Header.ID(),
		Provider: provider,
		Dialect:  string(render.DialectJS),
		UseCases: make([]suiteCase, 0, len(selected.UseCases)),
	}
	for _, uc := range selected.UseCases {
		view.UseCases = append(view.UseCases, buildSuiteCase(uc))
	}

	out, err := r.templates.Render(entryTemplate, view)
	if err != nil {
		return nil, errors.Wrap(err, "test renderer: render template")
	}
	return render.Terminate(out), nil
}

func buildSuiteCase(uc model.UseCase) suiteCase {
	out := suiteCase{Name: uc.Name, Tests: make([]testView, 0, len(uc.Examples))}
	for _, ex := range uc.Examples {
		test := testView{
			Title:   ex.Name,
			UseCase: uc.Name,
			Failure: ex.IsError(),
			Input:   model.Example{Kind: model.ExampleObject},
		}
		if test.Title == "" {
			test.Title = defaultSuccessTitle
			if test.Failure {
				test.Title = defaultErrorTitle
			}
		}
		test.Title = escapeSingleQuotes(test.Title)
		if ex.Input != nil && !ex.Input.IsNone() {
			test.Input = *ex.Input
		}
		out.Tests = append(out.Tests, test)
	}
	return out
}

func escapeSingleQuotes(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
