package render

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/render/template"
)

// Dialect selects the client language family for snippet renderers.
type Dialect string

const (
	DialectJS     Dialect = template.DialectJS
	DialectPython Dialect = template.DialectPython
)

// ParseDialect accepts the dialect names plus a few common aliases.
func ParseDialect(raw string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "js", "javascript", "ts", "typescript":
		return DialectJS, nil
	case "python", "py":
		return DialectPython, nil
	default:
		return "", errors.Newf("render: unknown dialect %q", raw)
	}
}

// DefaultIndent is used when RenderOptions.Indent is zero.
const DefaultIndent = 2

// RenderOptions carry per-request settings that do not belong to the
// prepared profile.
type RenderOptions struct {
	// Provider names the provider a map or mock map is written for.
	Provider string
	// UseCases restricts output to the named use cases. Empty renders all.
	UseCases []string
	// Dialect picks the snippet language. Renderers bound to a dialect ignore it.
	Dialect Dialect
	// Indent is the number of spaces per nesting level.
	Indent int
}

// IndentWidth returns Indent or DefaultIndent.
func (o RenderOptions) IndentWidth() int {
	if o.Indent > 0 {
		return o.Indent
	}
	return DefaultIndent
}

// ProviderName returns Provider or a placeholder derived from the profile.
func (o RenderOptions) ProviderName(header ast.Header) string {
	if provider := strings.TrimSpace(o.Provider); provider != "" {
		return provider
	}
	return header.Name + "-provider"
}
