package orchestrator

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-comlinkgen/pkg/ast"
	"github.com/goliatone/go-comlinkgen/pkg/openapi"
	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

// Adapter names registered by default.
const (
	AdapterProfile = "profile"
	AdapterOpenAPI = "openapi"
)

// FormatAdapter turns a raw document of one input format into a profile AST.
type FormatAdapter interface {
	Name() string
	Detect(raw []byte) bool
	Parse(ctx context.Context, doc profile.Document) (ast.ProfileDocument, error)
}

// NewProfileAdapter adapts a profile.Parser. It claims every payload that is
// not an OpenAPI document.
func NewProfileAdapter(parser profile.Parser) FormatAdapter {
	return profileAdapter{parser: parser}
}

type profileAdapter struct {
	parser profile.Parser
}

func (a profileAdapter) Name() string { return AdapterProfile }

func (a profileAdapter) Detect(raw []byte) bool {
	return !openapi.Detect(raw)
}

func (a profileAdapter) Parse(ctx context.Context, doc profile.Document) (ast.ProfileDocument, error) {
	if a.parser == nil {
		return ast.ProfileDocument{}, errors.New("profile adapter: parser is nil")
	}
	return a.parser.Parse(ctx, doc)
}

// NewOpenAPIAdapter adapts an openapi.Importer.
func NewOpenAPIAdapter(importer openapi.Importer) FormatAdapter {
	return openAPIAdapter{importer: importer}
}

type openAPIAdapter struct {
	importer openapi.Importer
}

func (a openAPIAdapter) Name() string { return AdapterOpenAPI }

func (a openAPIAdapter) Detect(raw []byte) bool {
	return openapi.Detect(raw)
}

func (a openAPIAdapter) Parse(ctx context.Context, doc profile.Document) (ast.ProfileDocument, error) {
	if a.importer == nil {
		return ast.ProfileDocument{}, errors.New("openapi adapter: importer is nil")
	}
	return a.importer.Import(ctx, doc)
}

// AdapterRegistry stores format adapters by name.
type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters map[string]FormatAdapter
}

// NewAdapterRegistry creates an empty adapter registry.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{
		adapters: make(map[string]FormatAdapter),
	}
}

// Register adds an adapter by its Name(). Duplicate names return an error.
func (r *AdapterRegistry) Register(adapter FormatAdapter) error {
	if adapter == nil {
		return errors.New("orchestrator: adapter is required")
	}
	name := normalizeAdapterName(adapter.Name())
	if name == "" {
		return errors.New("orchestrator: adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[name]; exists {
		return errors.Newf("orchestrator: adapter %q already registered", name)
	}
	r.adapters[name] = adapter
	return nil
}

// MustRegister panics on registration failure.
func (r *AdapterRegistry) MustRegister(adapter FormatAdapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Get retrieves an adapter by name.
func (r *AdapterRegistry) Get(name string) (FormatAdapter, error) {
	key := normalizeAdapterName(name)
	if key == "" {
		return nil, errors.New("orchestrator: adapter name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, ok := r.adapters[key]
	if !ok {
		return nil, errors.Newf("orchestrator: adapter %q not found", key)
	}
	return adapter, nil
}

// List returns a sorted list of adapter names.
func (r *AdapterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect returns all adapters that claim raw, in name order.
func (r *AdapterRegistry) Detect(raw []byte) []FormatAdapter {
	if r == nil {
		return nil
	}
	var matches []FormatAdapter
	for _, name := range r.List() {
		r.mu.RLock()
		adapter := r.adapters[name]
		r.mu.RUnlock()
		if adapter != nil && adapter.Detect(raw) {
			matches = append(matches, adapter)
		}
	}
	return matches
}

// resolve picks the adapter for raw: an explicit format wins, then a single
// detected adapter, then the fallback.
func (r *AdapterRegistry) resolve(format string, raw []byte, fallback string) (FormatAdapter, error) {
	if strings.TrimSpace(format) != "" {
		return r.Get(format)
	}
	matches := r.Detect(raw)
	switch len(matches) {
	case 0:
		if fallback == "" {
			return nil, errors.New("orchestrator: unable to detect format")
		}
		return r.Get(fallback)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, adapter := range matches {
			names = append(names, adapter.Name())
		}
		return nil, errors.Newf("orchestrator: multiple adapters matched payload (%s), specify format", strings.Join(names, ", "))
	}
}

func normalizeAdapterName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
