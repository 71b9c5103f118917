// Package model exposes the type-directed synthesis engine: a Model is the
// resolved structural description of a profile type (shape plus
// nullability), an Example is a concrete value tree conforming to it. The
// implementation lives in internal/model; every generator in this module
// reaches it through the Engine interface defined here.
//
// Engine errors are developer errors: an unresolvable named model, a node
// kind outside the closed grammar, or a reference chain deeper than
// WithMaxRefDepth. Match them with IsDeveloperError or errors.Is against the
// exported sentinels.
package model
