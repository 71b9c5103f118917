package orchestrator

import (
	"context"

	"github.com/cockroachdb/errors"

	internalopenapi "github.com/goliatone/go-comlinkgen/internal/openapi/parser"
	internalloader "github.com/goliatone/go-comlinkgen/internal/profile/loader"
	internalparser "github.com/goliatone/go-comlinkgen/internal/profile/parser"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-comlinkgen/pkg/openapi"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
	"github.com/goliatone/go-comlinkgen/pkg/render"
)

const defaultRendererName = "map"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader profile.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithAdapterRegistry replaces the built-in format adapters.
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapters = registry
	}
}

// WithDefaultAdapter names the adapter used when detection finds no match.
func WithDefaultAdapter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultAdapter = name
	}
}

// WithPreparer injects a custom document preparer.
func WithPreparer(preparer model.Preparer) Option {
	return func(o *Orchestrator) {
		o.preparer = preparer
	}
}

// WithMaxRefDepth bounds named-model reference chains for the default
// preparer. Ignored when WithPreparer is supplied.
func WithMaxRefDepth(depth int) Option {
	return func(o *Orchestrator) {
		o.maxRefDepth = depth
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can rewrite the profile AST
// after parsing but before the engine runs.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDuplicateHandler receives the names of definitions that were declared
// more than once. The last declaration always wins.
func WithDuplicateHandler(fn func(header ast.Header, duplicates []string)) Option {
	return func(o *Orchestrator) {
		o.onDuplicates = fn
	}
}

// Orchestrator coordinates the full pipeline from profile document to
// rendered output. It applies sensible defaults (map renderer, embedded
// templates, profile and OpenAPI adapters) while remaining open to
// dependency injection for advanced callers.
type Orchestrator struct {
	loader          profile.Loader
	adapters        *AdapterRegistry
	defaultAdapter  string
	preparer        model.Preparer
	maxRefDepth     int
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	onDuplicates    func(ast.Header, []string)
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		defaultAdapter:  AdapterProfile,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a profile.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source profile.Source

	// Document allows callers to bypass the loader when they already hold the
	// raw payload.
	Document *profile.Document

	// Format names the adapter that parses the payload ("profile",
	// "openapi"). Empty means detect.
	Format string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as the provider
	// name or a use case subset.
	RenderOptions render.RenderOptions
}

// Load resolves the request's document and parses it into a profile AST,
// applying the configured transformer.
func (o *Orchestrator) Load(ctx context.Context, req Request) (ast.ProfileDocument, error) {
	if err := o.ready(ctx); err != nil {
		return ast.ProfileDocument{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return ast.ProfileDocument{}, err
	}

	adapter, err := o.adapters.resolve(req.Format, doc.Raw(), o.defaultAdapter)
	if err != nil {
		return ast.ProfileDocument{}, err
	}

	parsed, err := adapter.Parse(ctx, doc)
	if err != nil {
		return ast.ProfileDocument{}, errors.Wrapf(err, "orchestrator: parse %s document", adapter.Name())
	}

	if err := o.applyTransformer(ctx, &parsed); err != nil {
		return ast.ProfileDocument{}, err
	}
	return parsed, nil
}

// Prepare runs the engine over a parsed document.
func (o *Orchestrator) Prepare(ctx context.Context, doc ast.ProfileDocument) (model.Profile, error) {
	if err := o.ready(ctx); err != nil {
		return model.Profile{}, err
	}

	prepared, err := o.preparer.Prepare(doc)
	if err != nil {
		return model.Profile{}, errors.Wrap(err, "orchestrator: prepare profile")
	}
	if len(prepared.Duplicates) > 0 && o.onDuplicates != nil {
		o.onDuplicates(prepared.Header, prepared.Duplicates)
	}
	return prepared, nil
}

// Render hands a prepared profile to the named renderer.
func (o *Orchestrator) Render(ctx context.Context, prepared model.Profile, rendererName string, options render.RenderOptions) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, render.NewInput(prepared), options)
	if err != nil {
		return nil, errors.Wrapf(err, "orchestrator: render %s", renderer.Name())
	}
	return output, nil
}

// Generate executes the loader → adapter → engine → renderer sequence and
// returns the rendered bytes (a Comlink map for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	doc, err := o.Load(ctx, req)
	if err != nil {
		return nil, err
	}

	prepared, err := o.Prepare(ctx, doc)
	if err != nil {
		return nil, err
	}

	return o.Render(ctx, prepared, req.Renderer, req.RenderOptions)
}

// Registry exposes the renderer registry so callers can list names.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Adapters exposes the format adapter registry.
func (o *Orchestrator) Adapters() *AdapterRegistry {
	return o.adapters
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (profile.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return profile.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return profile.Document{}, errors.Wrap(err, "orchestrator: load document")
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, errors.Wrapf(err, "orchestrator: renderer %q", name)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, errors.Wrapf(err, "orchestrator: renderer %q", names[0])
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, doc *ast.ProfileDocument) error {
	if o.transformer == nil || doc == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, doc); err != nil {
		return errors.Wrap(err, "orchestrator: transform profile")
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalloader.New(profile.NewLoaderOptions())
	}
	if o.adapters == nil {
		o.adapters = NewAdapterRegistry()
		o.adapters.MustRegister(NewProfileAdapter(internalparser.New(profile.NewParserOptions())))
		o.adapters.MustRegister(NewOpenAPIAdapter(internalopenapi.New(pkgopenapi.NewImportOptions())))
	}
	if o.defaultAdapter == "" {
		o.defaultAdapter = AdapterProfile
	}
	if o.preparer == nil {
		o.preparer = model.NewPreparer(model.WithMaxRefDepth(o.maxRefDepth))
	}
	if o.registry == nil {
		registry, err := NewDefaultRegistry()
		if err != nil {
			o.initialiseErr = errors.Wrap(err, "orchestrator: default renderers")
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
