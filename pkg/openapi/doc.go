// Package openapi exposes the contract for deriving a profile AST from an
// OpenAPI 3 document. The kin-openapi backed implementation lives under
// internal/openapi so consumers never import it directly.
package openapi
