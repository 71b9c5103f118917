package model

import (
	internalmodel "github.com/goliatone/go-comlinkgen/internal/model"
	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

// Engine builds Models and Examples for a single document.
type Engine interface {
	BuildModel(node ast.TypeNode, nonNull bool) (Model, error)
	Synthesize(node ast.TypeNode, required bool, literal ast.LiteralNode) (Example, error)
	ParseLiteral(node ast.LiteralNode) Example
	PrepareUseCase(uc *ast.UseCaseDefinition) (UseCase, error)
	Cache() *DefinitionCache
}

// Preparer turns a whole document into per-use-case Models and Examples.
type Preparer interface {
	Prepare(doc ast.ProfileDocument) (Profile, error)
}

// EngineOption configures the engine behaviour.
type EngineOption func(*engineOptions)

type engineOptions struct {
	maxRefDepth int
}

// WithMaxRefDepth overrides the named-model reference depth limit.
func WithMaxRefDepth(depth int) EngineOption {
	return func(opts *engineOptions) {
		opts.maxRefDepth = depth
	}
}

func resolveOptions(options []EngineOption) internalmodel.Options {
	cfg := engineOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return internalmodel.Options{MaxRefDepth: cfg.maxRefDepth}
}

// BuildDefinitionCache indexes a document's named models and fields.
func BuildDefinitionCache(definitions []ast.Definition) *DefinitionCache {
	return internalmodel.BuildDefinitionCache(definitions)
}

// NewEngine returns an Engine resolving against doc's definitions.
func NewEngine(doc ast.ProfileDocument, options ...EngineOption) Engine {
	return internalmodel.NewForDocument(doc, resolveOptions(options))
}

// NewEngineWithCache returns an Engine over a prebuilt cache.
func NewEngineWithCache(cache *DefinitionCache, options ...EngineOption) Engine {
	return internalmodel.New(cache, resolveOptions(options))
}

// NewPreparer returns the default document Preparer.
func NewPreparer(options ...EngineOption) Preparer {
	return preparer{opts: resolveOptions(options)}
}

type preparer struct {
	opts internalmodel.Options
}

func (p preparer) Prepare(doc ast.ProfileDocument) (Profile, error) {
	return internalmodel.Prepare(doc, p.opts)
}

// ParseLiteral translates a literal without type information.
func ParseLiteral(node ast.LiteralNode) Example {
	return internalmodel.ParseLiteral(node)
}

// SynthesizeUseCase synthesizes every example block of uc against cache.
func SynthesizeUseCase(uc *ast.UseCaseDefinition, cache *DefinitionCache) ([]UseCaseExample, error) {
	return internalmodel.SynthesizeUseCase(uc, cache)
}
