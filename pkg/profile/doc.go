// Package profile exposes the public contracts for loading profile documents
// and decoding the parser's AST interchange into pkg/ast. Implementations live
// under internal/profile.
package profile
