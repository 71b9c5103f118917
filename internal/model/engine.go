package model

import "github.com/goliatone/go-comlinkgen/pkg/ast"

// Engine builds Models and Examples against one document's definitions. It
// holds no state besides the read-only cache, so a single Engine may serve
// concurrent calls.
type Engine struct {
	cache *DefinitionCache
	opts  Options
}

// New creates an Engine over a prebuilt cache.
func New(cache *DefinitionCache, options Options) *Engine {
	if cache == nil {
		cache = BuildDefinitionCache(nil)
	}
	return &Engine{cache: cache, opts: options.withDefaults()}
}

// NewForDocument builds the definition cache for doc and returns an Engine
// over it.
func NewForDocument(doc ast.ProfileDocument, options Options) *Engine {
	return New(BuildDefinitionCache(doc.Definitions), options)
}

// Cache exposes the definition cache the engine resolves against.
func (e *Engine) Cache() *DefinitionCache {
	return e.cache
}

// BuildModel converts node into a Model. nonNull seeds the nullability flag of
// the root node.
func (e *Engine) BuildModel(node ast.TypeNode, nonNull bool) (Model, error) {
	return newResolver(e.cache, e.opts.MaxRefDepth).model(node, nonNull)
}

// Synthesize produces an Example for node, overlaying literal where its
// shape matches the declared type.
func (e *Engine) Synthesize(node ast.TypeNode, required bool, literal ast.LiteralNode) (Example, error) {
	return newResolver(e.cache, e.opts.MaxRefDepth).example(node, required, literal)
}

// ParseLiteral translates a literal node without consulting the declared
// types.
func (e *Engine) ParseLiteral(node ast.LiteralNode) Example {
	return ParseLiteral(node)
}

// BuildModel is the package-level form of Engine.BuildModel.
func BuildModel(node ast.TypeNode, nonNull bool, cache *DefinitionCache) (Model, error) {
	return New(cache, Options{}).BuildModel(node, nonNull)
}

// Synthesize is the package-level form of Engine.Synthesize.
func Synthesize(node ast.TypeNode, required bool, cache *DefinitionCache, literal ast.LiteralNode) (Example, error) {
	return New(cache, Options{}).Synthesize(node, required, literal)
}
