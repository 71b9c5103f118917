// Package ast holds the profile document tree consumed by the model engine:
// type nodes describing use-case slots, literal nodes carrying author-written
// examples, and the document-level definitions (named models, named fields,
// use cases) they hang off. The tree is produced by an external DSL parser or
// by the OpenAPI importer; this package only defines its shape.
//
// Each node family is a sealed interface. Consumers switch on the concrete
// type and treat anything else as a contract violation.
package ast
