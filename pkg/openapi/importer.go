package openapi

import (
	"context"
	"strings"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

// Importer converts an OpenAPI document into a profile AST: operations become
// use cases and components.schemas become named models.
type Importer interface {
	Import(ctx context.Context, doc profile.Document) (ast.ProfileDocument, error)
}

// ImportOptions tune the conversion.
type ImportOptions struct {
	// Scope and Name override the profile id. Name defaults to a slug of
	// info.title.
	Scope string
	Name  string

	// Version overrides info.version.
	Version string

	// ResolveReferences validates the document and allows external $refs.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents without operations, which
	// import as models only.
	AllowPartialDocuments bool

	// IncludeExamples turns media type examples into example blocks.
	IncludeExamples bool
}

// ImportOption mutates ImportOptions during construction.
type ImportOption func(*ImportOptions)

// WithProfileID sets scope and name from "scope/name" (scope optional).
func WithProfileID(id string) ImportOption {
	return func(opts *ImportOptions) {
		id = strings.TrimSpace(id)
		if id == "" {
			return
		}
		if slash := strings.Index(id, "/"); slash >= 0 {
			opts.Scope = id[:slash]
			id = id[slash+1:]
		}
		opts.Name = id
	}
}

// WithVersion overrides the profile version.
func WithVersion(version string) ImportOption {
	return func(opts *ImportOptions) {
		opts.Version = strings.TrimSpace(version)
	}
}

// WithReferenceResolution toggles validation and external reference loading.
func WithReferenceResolution(enabled bool) ImportOption {
	return func(opts *ImportOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for component-only documents.
func WithPartialDocuments(enabled bool) ImportOption {
	return func(opts *ImportOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// WithExamples toggles example block extraction.
func WithExamples(enabled bool) ImportOption {
	return func(opts *ImportOptions) {
		opts.IncludeExamples = enabled
	}
}

// NewImportOptions applies ImportOption functions over the defaults.
func NewImportOptions(options ...ImportOption) ImportOptions {
	cfg := ImportOptions{
		ResolveReferences: true,
		IncludeExamples:   true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
