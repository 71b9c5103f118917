package profile

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
)

// ErrInvalidDocument marks AST interchange payloads that cannot be decoded.
var ErrInvalidDocument = errors.New("invalid profile document")

// Parser decodes a raw document into a profile AST.
type Parser interface {
	Parse(ctx context.Context, doc Document) (ast.ProfileDocument, error)
}

// ParserOptions tune decoding.
type ParserOptions struct {
	// Format forces the payload serialisation instead of guessing it.
	Format Format
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithFormat forces the payload format.
func WithFormat(format Format) ParserOption {
	return func(opts *ParserOptions) {
		opts.Format = format
	}
}

// NewParserOptions applies ParserOption functions.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
