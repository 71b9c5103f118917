package model

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinels for the developer-error class. Every error returned by the engine
// is marked with one of these and flagged as an assertion failure, so callers
// can match with errors.Is and distinguish them from I/O or configuration
// failures.
var (
	ErrInvalidKind      = errors.New("invalid kind")
	ErrModelNotFound    = errors.New("referenced model not found")
	ErrRefDepthExceeded = errors.New("model reference depth exceeded")
)

// IsDeveloperError reports whether err signals a malformed or inconsistent
// document tree rather than a user or environment failure.
func IsDeveloperError(err error) bool {
	if err == nil {
		return false
	}
	return errors.IsAny(err, ErrInvalidKind, ErrModelNotFound, ErrRefDepthExceeded) ||
		errors.IsAssertionFailure(err)
}

func developerError(sentinel error, format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Mark(errors.Newf(format, args...), sentinel))
}

func invalidKindError(node any) error {
	return developerError(ErrInvalidKind, "model: invalid kind %s", fmt.Sprintf("%T", node))
}

func invalidPrimitiveError(kind string) error {
	return developerError(ErrInvalidKind, "model: invalid primitive kind %q", kind)
}

func modelNotFoundError(name string) error {
	return developerError(ErrModelNotFound, "model: referenced model %q not found", name)
}

func refDepthError(limit int, chain []string) error {
	return developerError(ErrRefDepthExceeded, "model: reference depth exceeds %d (%v)", limit, chain)
}
