package template

import (
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Set is an immutable table of named templates. Every template can be used
// both as an entry point and as a partial of the others.
type Set struct {
	templates map[string]*Template
}

var _ TemplateRenderer = (*Set)(nil)

// New parses every source and checks that all partial references resolve.
func New(sources map[string]string) (*Set, error) {
	set := &Set{templates: make(map[string]*Template, len(sources))}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tmpl, err := Parse(name, sources[name])
		if err != nil {
			return nil, err
		}
		set.templates[name] = tmpl
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// ParseFS loads templates matching patterns from fsys and builds a Set.
func ParseFS(fsys fs.FS, patterns ...string) (*Set, error) {
	sources, err := Sources(fsys, patterns...)
	if err != nil {
		return nil, err
	}
	return New(sources)
}

// Sources reads templates matching patterns from fsys. Each template is named
// after its file base name without extension, and one trailing newline is
// dropped so a file can be embedded inline as a partial.
func Sources(fsys fs.FS, patterns ...string) (map[string]string, error) {
	sources := make(map[string]string)
	for _, pattern := range patterns {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "template: glob %q", pattern)
		}
		for _, match := range matches {
			raw, err := fs.ReadFile(fsys, match)
			if err != nil {
				return nil, errors.Wrapf(err, "template: read %s", match)
			}
			base := path.Base(match)
			content := strings.TrimSuffix(strings.TrimSuffix(string(raw), "\n"), "\r")
			sources[strings.TrimSuffix(base, path.Ext(base))] = content
		}
	}
	if len(sources) == 0 {
		return nil, errors.Newf("template: no templates matched %v", patterns)
	}
	return sources, nil
}

// Must panics when err is non-nil. Intended for package-level template sets.
func Must(set *Set, err error) *Set {
	if err != nil {
		panic(err)
	}
	return set
}

// Names lists the templates in the set, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is defined.
func (s *Set) Has(name string) bool {
	_, ok := s.templates[name]
	return ok
}

// Validate reports the first partial reference that does not resolve.
func (s *Set) Validate() error {
	for _, name := range s.Names() {
		for _, partial := range s.templates[name].partials {
			if _, ok := s.templates[partial]; !ok {
				return unknownPartialError(name, 0, partial)
			}
		}
	}
	return nil
}

// Render executes the named template against data.
func (s *Set) Render(name string, data any, out ...io.Writer) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", unknownPartialError(name, 0, name)
	}
	return s.execute(tmpl, data, out)
}

// RenderString parses content as an ad-hoc entry template that may call the
// set's partials.
func (s *Set) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := Parse("inline", content)
	if err != nil {
		return "", err
	}
	return s.execute(tmpl, data, out)
}

func (s *Set) execute(tmpl *Template, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", errors.Wrapf(err, "template %s: convert context", tmpl.name)
	}
	st := &state{set: s, name: tmpl.name}
	st.push(ctx, nil)
	if err := st.walk(tmpl.nodes); err != nil {
		return "", err
	}
	rendered := st.out.String()
	if err := writeAll(rendered, out); err != nil {
		return "", errors.Wrapf(err, "template %s: write output", tmpl.name)
	}
	return rendered, nil
}

// Render executes entry from set against data.
func Render(set *Set, entry string, data any) (string, error) {
	if set == nil {
		return "", errors.AssertionFailedf("template: nil set")
	}
	return set.Render(entry, data)
}
