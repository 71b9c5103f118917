package render

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnknownUseCase is returned when a subset names a use case the profile
// does not define.
var ErrUnknownUseCase = errors.New("unknown use case")

// SelectUseCases keeps the use cases named in names, preserving declaration
// order. Matching ignores case and surrounding whitespace. An empty names
// list returns input unchanged.
func SelectUseCases(input Input, names []string) (Input, error) {
	wanted := normaliseTokens(names)
	if len(wanted) == 0 {
		return input, nil
	}

	out := input
	out.UseCases = nil
	for _, uc := range input.UseCases {
		key := normaliseToken(uc.Name)
		if _, ok := wanted[key]; ok {
			out.UseCases = append(out.UseCases, uc)
			delete(wanted, key)
		}
	}
	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for _, name := range names {
			for _, token := range parseTokenList(name) {
				if _, ok := wanted[token]; ok {
					missing = append(missing, token)
					delete(wanted, token)
				}
			}
		}
		return Input{}, errors.Mark(
			errors.Newf("render: use case(s) not defined: %s", strings.Join(missing, ", ")),
			ErrUnknownUseCase,
		)
	}
	return out, nil
}

func normaliseTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(values))
	for _, value := range values {
		for _, token := range parseTokenList(value) {
			out[token] = struct{}{}
		}
	}
	return out
}

// parseTokenList splits comma separated values so "--use-case a,b" works.
func parseTokenList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := normaliseToken(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}

func normaliseToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
