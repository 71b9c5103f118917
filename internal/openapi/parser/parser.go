package parser

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	pkgopenapi "github.com/goliatone/go-comlinkgen/pkg/openapi"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

// Parser implements pkgopenapi.Importer using kin-openapi.
type Parser struct {
	options pkgopenapi.ImportOptions
}

var _ pkgopenapi.Importer = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ImportOptions) pkgopenapi.Importer {
	return &Parser{options: options}
}

// methodOrder fixes the order operations of one path are emitted in.
var methodOrder = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE"}

// Import converts doc into a profile document. Use cases follow path order,
// then method order; named models follow component name order.
func (p *Parser) Import(ctx context.Context, doc profile.Document) (ast.ProfileDocument, error) {
	if err := ctx.Err(); err != nil {
		return ast.ProfileDocument{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return ast.ProfileDocument{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return ast.ProfileDocument{}, errors.Wrap(err, "openapi parser: load document")
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return ast.ProfileDocument{}, errors.Wrap(err, "openapi parser: validate")
		}
	}

	out := ast.ProfileDocument{Header: p.header(spec)}
	out.Definitions = append(out.Definitions, namedModels(spec)...)

	useCases := 0
	if spec.Paths != nil {
		paths := spec.Paths.Map()
		keys := make([]string, 0, len(paths))
		for path := range paths {
			keys = append(keys, path)
		}
		sort.Strings(keys)

		seen := make(map[string]int)
		for _, path := range keys {
			item := paths[path]
			if item == nil {
				continue
			}
			for _, method := range methodOrder {
				if err := ctx.Err(); err != nil {
					return ast.ProfileDocument{}, err
				}
				operation := item.GetOperation(method)
				if operation == nil {
					continue
				}
				uc := p.useCase(method, path, item.Parameters, operation)
				seen[uc.Name]++
				if n := seen[uc.Name]; n > 1 {
					uc.Name += strconv.Itoa(n)
				}
				out.Definitions = append(out.Definitions, uc)
				useCases++
			}
		}
	}

	if useCases == 0 && !p.options.AllowPartialDocuments {
		return ast.ProfileDocument{}, errors.New("openapi parser: no operations extracted")
	}
	return out, nil
}

func (p *Parser) header(spec *openapi3.T) ast.Header {
	header := ast.Header{
		Scope:   p.options.Scope,
		Name:    p.options.Name,
		Version: p.options.Version,
	}
	if spec.Info != nil {
		header.Title = plainText(spec.Info.Title)
		header.Description = plainText(spec.Info.Description)
		if header.Version == "" {
			header.Version = strings.TrimSpace(spec.Info.Version)
		}
		if header.Name == "" {
			header.Name = slug(spec.Info.Title)
		}
	}
	if header.Name == "" {
		header.Name = "imported"
	}
	return header
}

func namedModels(spec *openapi3.T) []ast.Definition {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil
	}
	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]ast.Definition, 0, len(names))
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		if ref == nil {
			continue
		}
		var node ast.TypeNode
		if ref.Ref != "" {
			node = convertSchemaRef(ref)
		} else {
			node = convertSchema(ref.Value)
		}
		defs = append(defs, &ast.NamedModelDefinition{Name: name, Type: node})
	}
	return defs
}

func (p *Parser) useCase(method, path string, shared openapi3.Parameters, operation *openapi3.Operation) *ast.UseCaseDefinition {
	uc := &ast.UseCaseDefinition{
		Name:        useCaseName(operation.OperationID, method, path),
		Title:       plainText(operation.Summary),
		Description: plainText(operation.Description),
		Safety:      safety(method),
	}

	input := newInputBuilder()
	input.addParameters(shared)
	input.addParameters(operation.Parameters)
	input.addRequestBody(operation.RequestBody)
	uc.Input = input.node()

	success, failure := pickResponses(operation.Responses)
	if success != nil {
		uc.Result = convertSchemaRef(success.schema)
	}
	if failure != nil {
		uc.Error = convertSchemaRef(failure.schema)
	}

	if p.options.IncludeExamples {
		uc.Examples = examples(input, success, failure)
	}
	return uc
}

// safety maps HTTP method semantics onto use case safety.
func safety(method string) string {
	switch method {
	case "GET", "HEAD", "OPTIONS", "TRACE":
		return "safe"
	case "PUT", "DELETE":
		return "idempotent"
	default:
		return "unsafe"
	}
}

type response struct {
	code   string
	schema *openapi3.SchemaRef
	media  *openapi3.MediaType
}

// pickResponses returns the first 2xx response with a body and the first
// 4xx/5xx (or default) response with a body, in status code order.
func pickResponses(responses *openapi3.Responses) (*response, *response) {
	if responses == nil || responses.Len() == 0 {
		return nil, nil
	}
	all := responses.Map()
	codes := make([]string, 0, len(all))
	for code := range all {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var success, failure *response
	for _, code := range codes {
		ref := all[code]
		if ref == nil || ref.Value == nil {
			continue
		}
		media := jsonMedia(ref.Value.Content)
		if media == nil || media.Schema == nil {
			continue
		}
		current := &response{code: code, schema: media.Schema, media: media}
		switch {
		case strings.HasPrefix(code, "2"):
			if success == nil {
				success = current
			}
		case strings.HasPrefix(code, "4"), strings.HasPrefix(code, "5"), code == "default":
			if failure == nil || (failure.code == "default" && code != "default") {
				failure = current
			}
		}
	}
	return success, failure
}

// jsonMedia prefers application/json, then any +json type, then the first
// media type by name.
func jsonMedia(content openapi3.Content) *openapi3.MediaType {
	if len(content) == 0 {
		return nil
	}
	if mt, ok := content["application/json"]; ok {
		return mt
	}
	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.HasSuffix(name, "+json") {
			return content[name]
		}
	}
	return content[names[0]]
}
