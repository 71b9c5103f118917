package template

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Template authoring mistakes are developer errors: assertion failures marked
// with one of these sentinels.
var (
	ErrSyntax         = errors.New("template syntax error")
	ErrUnknownHelper  = errors.New("unknown template helper")
	ErrUnknownPartial = errors.New("unresolved template partial")
	ErrRecursionLimit = errors.New("template partial recursion limit")
)

// IsDeveloperError reports whether err comes from a malformed template rather
// than from the data it was rendered with.
func IsDeveloperError(err error) bool {
	if err == nil {
		return false
	}
	return errors.IsAny(err, ErrSyntax, ErrUnknownHelper, ErrUnknownPartial, ErrRecursionLimit) ||
		errors.IsAssertionFailure(err)
}

func developerError(sentinel error, format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Mark(errors.Newf(format, args...), sentinel))
}

func syntaxError(name string, line int, format string, args ...any) error {
	return developerError(ErrSyntax, "template %s:%d: %s", name, line, fmt.Sprintf(format, args...))
}

func unknownHelperError(name string, line int, helper string) error {
	return developerError(ErrUnknownHelper, "template %s:%d: unknown helper %q", name, line, helper)
}

func unknownPartialError(name string, line int, partial string) error {
	return developerError(ErrUnknownPartial, "template %s:%d: partial %q not found", name, line, partial)
}

func recursionError(name string, limit int) error {
	return developerError(ErrRecursionLimit, "template %s: partial nesting exceeds %d", name, limit)
}
