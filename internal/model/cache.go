package model

import "github.com/goliatone/go-comlinkgen/pkg/ast"

// DefinitionCache indexes a document's named models and named fields. It is
// built once per document and only read afterwards. Definitions live in
// arenas; the name maps point at arena slots so the resolver can track the
// reference chain by index.
type DefinitionCache struct {
	models     []ast.NamedModelDefinition
	modelIndex map[string]int
	fields     []ast.NamedFieldDefinition
	fieldIndex map[string]int
	duplicates []string
}

// BuildDefinitionCache scans definitions once. A later definition with an
// already indexed name replaces the earlier one; the name is recorded in
// Duplicates but is not an error.
func BuildDefinitionCache(definitions []ast.Definition) *DefinitionCache {
	cache := &DefinitionCache{
		modelIndex: make(map[string]int),
		fieldIndex: make(map[string]int),
	}

	for _, def := range definitions {
		switch d := def.(type) {
		case *ast.NamedModelDefinition:
			if d == nil {
				continue
			}
			if idx, exists := cache.modelIndex[d.Name]; exists {
				cache.models[idx] = *d
				cache.duplicates = append(cache.duplicates, "model "+d.Name)
				continue
			}
			cache.modelIndex[d.Name] = len(cache.models)
			cache.models = append(cache.models, *d)
		case *ast.NamedFieldDefinition:
			if d == nil {
				continue
			}
			if idx, exists := cache.fieldIndex[d.Name]; exists {
				cache.fields[idx] = *d
				cache.duplicates = append(cache.duplicates, "field "+d.Name)
				continue
			}
			cache.fieldIndex[d.Name] = len(cache.fields)
			cache.fields = append(cache.fields, *d)
		}
	}

	return cache
}

// Model returns the arena index and definition of a named model.
func (c *DefinitionCache) Model(name string) (int, ast.NamedModelDefinition, bool) {
	if c == nil {
		return -1, ast.NamedModelDefinition{}, false
	}
	idx, ok := c.modelIndex[name]
	if !ok {
		return -1, ast.NamedModelDefinition{}, false
	}
	return idx, c.models[idx], true
}

// Field returns the named field definition for name.
func (c *DefinitionCache) Field(name string) (ast.NamedFieldDefinition, bool) {
	if c == nil {
		return ast.NamedFieldDefinition{}, false
	}
	idx, ok := c.fieldIndex[name]
	if !ok {
		return ast.NamedFieldDefinition{}, false
	}
	return c.fields[idx], true
}

// ModelCount and FieldCount report how many distinct names are indexed.
func (c *DefinitionCache) ModelCount() int {
	if c == nil {
		return 0
	}
	return len(c.models)
}

func (c *DefinitionCache) FieldCount() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}

// Duplicates lists "model X" / "field Y" entries for every overwritten name,
// in the order they were encountered.
func (c *DefinitionCache) Duplicates() []string {
	if c == nil || len(c.duplicates) == 0 {
		return nil
	}
	return append([]string(nil), c.duplicates...)
}

func (c *DefinitionCache) modelName(idx int) string {
	if c == nil || idx < 0 || idx >= len(c.models) {
		return ""
	}
	return c.models[idx].Name
}
