package model

import "github.com/goliatone/go-comlinkgen/pkg/ast"

// resolver expands named-model references for a single build or synthesis
// call. The stack holds arena indexes of the references currently being
// expanded.
type resolver struct {
	cache    *DefinitionCache
	maxDepth int
	stack    []int
}

func newResolver(cache *DefinitionCache, maxDepth int) *resolver {
	return &resolver{
		cache:    cache,
		maxDepth: maxDepth,
		stack:    make([]int, 0, 4),
	}
}

// enter resolves name and pushes it on the stack. Callers must pair it with
// leave once the resolved type has been walked.
func (r *resolver) enter(name string) (ast.TypeNode, error) {
	idx, def, ok := r.cache.Model(name)
	if !ok {
		return nil, modelNotFoundError(name)
	}
	if len(r.stack) >= r.maxDepth {
		return nil, refDepthError(r.maxDepth, r.chain(name))
	}
	r.stack = append(r.stack, idx)
	return def.Type, nil
}

func (r *resolver) leave() {
	if len(r.stack) == 0 {
		return
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// chain renders the tail of the reference stack for error messages.
func (r *resolver) chain(next string) []string {
	const tail = 8
	start := 0
	if len(r.stack) > tail {
		start = len(r.stack) - tail
	}
	out := make([]string, 0, tail+1)
	for _, idx := range r.stack[start:] {
		out = append(out, r.cache.modelName(idx))
	}
	return append(out, next)
}

// fieldType picks the type of an object field: inline type, then the named
// field definition, then a string scalar.
func (r *resolver) fieldType(field ast.FieldDecl) ast.TypeNode {
	if field.Type != nil {
		return field.Type
	}
	if named, ok := r.cache.Field(field.Name); ok && named.Type != nil {
		return named.Type
	}
	return ast.String()
}

// isNilNode catches typed nil pointers stored in a TypeNode interface.
func isNilNode(node ast.TypeNode) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *ast.Primitive:
		return n == nil
	case *ast.Object:
		return n == nil
	case *ast.List:
		return n == nil
	case *ast.Enum:
		return n == nil
	case *ast.Union:
		return n == nil
	case *ast.ModelRef:
		return n == nil
	case *ast.NonNull:
		return n == nil
	default:
		return false
	}
}
