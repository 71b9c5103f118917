// Package template implements the small logic-less template language the
// generators are written in, plus the TemplateRenderer seam shared with the
// pongo2 adapter used for scaffolding.
//
// Syntax overview:
//
//	{{path}}                       value lookup (a.b, this, ../x, @index, @first, @last, @key, @root)
//	{{! comment }}                 ignored
//	{{~ tag ~}}                    trims whitespace before/after the tag
//	{{#if x}}…{{else}}…{{/if}}     also unless, each, with
//	{{#ifeq a b}}…{{/ifeq}}        structural equality
//	{{#switch x}}{{#case "a" "b"}}…{{/case}}{{else}}…{{/switch}}
//	{{newLine n}} {{inc n 2}} {{quotes dialect}} {{boolean v dialect}} {{string v}} {{key name dialect}}
//	{{> Partial ctx key=(inc indent 2)}}
//
// Helpers form a closed set resolved at parse time; a template naming an
// unknown helper fails to parse. Lookups walk the context stack outwards, so
// values passed to a partial through hash arguments stay visible to nested
// partials.
package template
