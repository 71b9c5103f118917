package model

import internalmodel "github.com/goliatone/go-comlinkgen/internal/model"

// ModelKind re-exports the internal ModelKind enumeration.
type ModelKind = internalmodel.ModelKind

const (
	ModelObject = internalmodel.ModelObject
	ModelList   = internalmodel.ModelList
	ModelEnum   = internalmodel.ModelEnum
	ModelUnion  = internalmodel.ModelUnion
	ModelScalar = internalmodel.ModelScalar
	ModelNone   = internalmodel.ModelNone
)

// ExampleKind re-exports the internal ExampleKind enumeration.
type ExampleKind = internalmodel.ExampleKind

const (
	ExampleObject  = internalmodel.ExampleObject
	ExampleArray   = internalmodel.ExampleArray
	ExampleString  = internalmodel.ExampleString
	ExampleNumber  = internalmodel.ExampleNumber
	ExampleBoolean = internalmodel.ExampleBoolean
	ExampleNone    = internalmodel.ExampleNone
)

type Model = internalmodel.Model
type ModelField = internalmodel.ModelField
type Example = internalmodel.Example
type ExampleProperty = internalmodel.ExampleProperty
type Profile = internalmodel.Profile
type UseCase = internalmodel.UseCase
type UseCaseExample = internalmodel.UseCaseExample
type DefinitionCache = internalmodel.DefinitionCache

var (
	ErrInvalidKind      = internalmodel.ErrInvalidKind
	ErrModelNotFound    = internalmodel.ErrModelNotFound
	ErrRefDepthExceeded = internalmodel.ErrRefDepthExceeded
)

// IsDeveloperError reports whether err comes from a malformed document tree.
func IsDeveloperError(err error) bool {
	return internalmodel.IsDeveloperError(err)
}
