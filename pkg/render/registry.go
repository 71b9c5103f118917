package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrRendererNotFound marks lookups of names nothing was registered under.
var ErrRendererNotFound = errors.New("renderer not found")

// Entry describes one registered renderer.
type Entry struct {
	Name        string
	ContentType string
}

// Registry maps renderer names to generators. Names are case-insensitive and
// unique; it is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Renderer
	ordered []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds renderer under its Name(). A second renderer with the same
// name is rejected rather than silently replacing the first.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := normalizeName(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		return errors.Newf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	at := sort.SearchStrings(r.ordered, name)
	r.ordered = append(r.ordered, "")
	copy(r.ordered[at+1:], r.ordered[at:])
	r.ordered[at] = name
	return nil
}

// MustRegister is Register for wiring code where a duplicate is a bug.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get looks a renderer up by name. Misses are marked ErrRendererNotFound and
// list what is available.
func (r *Registry) Get(name string) (Renderer, error) {
	if r == nil {
		return nil, errors.Mark(errors.Newf("render: renderer %q not found", name), ErrRendererNotFound)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.byName[normalizeName(name)]; ok {
		return renderer, nil
	}
	err := errors.Newf("render: renderer %q not found (available: %s)", name, strings.Join(r.ordered, ", "))
	return nil, errors.Mark(err, ErrRendererNotFound)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.ordered...)
}

// Entries returns name and content type of every renderer, sorted by name.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.ordered))
	for _, name := range r.ordered {
		out = append(out, Entry{Name: name, ContentType: r.byName[name].ContentType()})
	}
	return out
}
