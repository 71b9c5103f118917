package comlinkgen

import (
	internalopenapi "github.com/goliatone/go-comlinkgen/internal/openapi/parser"
	internalloader "github.com/goliatone/go-comlinkgen/internal/profile/loader"
	internalparser "github.com/goliatone/go-comlinkgen/internal/profile/parser"
	pkgopenapi "github.com/goliatone/go-comlinkgen/pkg/openapi"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...profile.LoaderOption) profile.Loader {
	cfg := profile.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// NewParser constructs an AST interchange parser.
func NewParser(options ...profile.ParserOption) profile.Parser {
	cfg := profile.NewParserOptions(options...)
	return internalparser.New(cfg)
}

// NewImporter constructs an OpenAPI importer.
func NewImporter(options ...pkgopenapi.ImportOption) pkgopenapi.Importer {
	cfg := pkgopenapi.NewImportOptions(options...)
	return internalopenapi.New(cfg)
}
