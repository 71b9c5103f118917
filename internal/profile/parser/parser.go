package parser

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

// Parser implements profile.Parser for the AST interchange format: the JSON
// or YAML serialisation of a parsed profile with "kind" discriminators on
// every node.
type Parser struct {
	options profile.ParserOptions
}

var _ profile.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options profile.ParserOptions) profile.Parser {
	return &Parser{options: options}
}

// Parse decodes doc and converts it into a profile AST.
func (p *Parser) Parse(ctx context.Context, doc profile.Document) (ast.ProfileDocument, error) {
	if err := ctx.Err(); err != nil {
		return ast.ProfileDocument{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return ast.ProfileDocument{}, errors.Mark(
			errors.New("profile parser: document payload is empty"),
			profile.ErrInvalidDocument,
		)
	}

	format := p.options.Format
	if format == profile.FormatUnknown {
		format = doc.Format()
	}

	tree, err := decode(format, raw)
	if err != nil {
		return ast.ProfileDocument{}, errors.Mark(
			errors.Wrapf(err, "profile parser: decode %s", doc.Location()),
			profile.ErrInvalidDocument,
		)
	}

	out, err := convertDocument(tree)
	if err != nil {
		return ast.ProfileDocument{}, errors.Wrapf(err, "profile parser: %s", doc.Location())
	}
	return out, nil
}
