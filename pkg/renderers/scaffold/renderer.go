// Package scaffold renders empty starting documents for a profile: the
// profile itself with one stub per use case, a provider map with empty map
// blocks, and a provider definition. Templates are pongo2 files.
package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/model"
	"github.com/goliatone/go-comlinkgen/pkg/render"
	rendertemplate "github.com/goliatone/go-comlinkgen/pkg/render/template"
	"github.com/goliatone/go-comlinkgen/pkg/render/template/pongo"
)

// Kind selects which scaffold document a Renderer emits.
type Kind string

const (
	KindProfile  Kind = "profile"
	KindMap      Kind = "map"
	KindProvider Kind = "provider"
)

// Kinds lists the scaffold kinds in the order the CLI writes them.
func Kinds() []Kind {
	return []Kind{KindProfile, KindMap, KindProvider}
}

var contentTypes = map[Kind]string{
	KindProfile:  "text/x-comlink-profile; charset=utf-8",
	KindMap:      "text/x-comlink-map; charset=utf-8",
	KindProvider: "application/json; charset=utf-8",
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
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
		cfg.templateDir = strings.TrimSpace(path)
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
	kind      Kind
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a scaffold renderer for kind.
func New(kind Kind, options ...Option) (*Renderer, error) {
	if _, ok := contentTypes[kind]; !ok {
		return nil, errors.Newf("scaffold renderer: unknown kind %q", kind)
	}

	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		var engineOptions []pongo.Option
		switch {
		case cfg.templateDir != "":
			engineOptions = append(engineOptions, pongo.WithBaseDir(cfg.templateDir))
		case cfg.templateFS != nil:
			engineOptions = append(engineOptions, pongo.WithFS(cfg.templateFS))
		default:
			engineOptions = append(engineOptions, pongo.WithFS(TemplatesFS()))
		}
		engine, err := pongo.New(engineOptions...)
		if err != nil {
			return nil, errors.Wrap(err, "scaffold renderer: configure templates")
		}
		renderer = engine
	}
	return &Renderer{kind: kind, templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "scaffold-" + string(r.kind)
}

func (r *Renderer) ContentType() string {
	return contentTypes[r.kind]
}

// Kind reports the document the renderer emits.
func (r *Renderer) Kind() Kind {
	return r.kind
}

type scaffoldView struct {
	Profile  string         `json:"profile"`
	Version  string         `json:"version"`
	Provider string         `json:"provider"`
	BaseURL  string         `json:"baseURL"`
	UseCases []scaffoldCase `json:"usecases"`
}

type scaffoldCase struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func (r *Renderer) Render(ctx context.Context, input render.Input, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("scaffold renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selected, err := render.SelectUseCases(input, options.UseCases)
	if err != nil {
		return nil, err
	}

	provider := options.ProviderName(selected.Header)
	version := selected.Header.Version
	if version == "" {
		version = "1.0.0"
	}
	profileID := selected.Header.ID()
	if r.kind == KindMap {
		profileID = fmt.Sprintf("%s@%s", selected.Header.ID(), version)
	}

	view := scaffoldView{
		Profile:  profileID,
		Version:  version,
		Provider: provider,
		BaseURL:  fmt.Sprintf("https://api.%s.example", provider),
		UseCases: make([]scaffoldCase, 0, len(selected.UseCases)),
	}
	for _, uc := range selected.UseCases {
		view.UseCases = append(view.UseCases, scaffoldCase{Name: uc.Name, Title: uc.Title})
	}

	out, err := r.templates.Render(string(r.kind), view)
	if err != nil {
		return nil, errors.Wrapf(err, "scaffold renderer: render %s", r.kind)
	}
	return render.Terminate(out), nil
}

// FileName returns the conventional file name for the document.
func (r *Renderer) FileName(header ast.Header, provider string) string {
	base := header.Name
	if base == "" {
		base = "profile"
	}
	if header.Scope != "" {
		base = header.Scope + "." + base
	}
	switch r.kind {
	case KindMap:
		return fmt.Sprintf("%s.%s.suma", base, provider)
	case KindProvider:
		return provider + ".json"
	default:
		return base + ".supr"
	}
}

// InputFromID builds a renderer input from a "scope/name@version" profile id
// and a list of use case names, for scaffolding documents that do not exist
// yet.
func InputFromID(id string, useCases ...string) (render.Input, error) {
	header, err := ParseProfileID(id)
	if err != nil {
		return render.Input{}, err
	}
	input := render.Input{Header: header}
	for _, name := range useCases {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		input.UseCases = append(input.UseCases, model.UseCase{Name: pongo.Pascal(name)})
	}
	return input, nil
}

// ParseProfileID splits "scope/name@version". Scope and version are optional.
func ParseProfileID(id string) (ast.Header, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ast.Header{}, errors.New("scaffold: profile id is required")
	}

	var header ast.Header
	if at := strings.LastIndex(id, "@"); at >= 0 {
		header.Version = strings.TrimSpace(id[at+1:])
		id = id[:at]
	}
	if slash := strings.Index(id, "/"); slash >= 0 {
		header.Scope = strings.TrimSpace(id[:slash])
		id = id[slash+1:]
	}
	header.Name = strings.TrimSpace(id)
	if header.Name == "" || strings.Contains(header.Name, "/") {
		return ast.Header{}, errors.Newf("scaffold: invalid profile id %q", id)
	}
	return header, nil
}
