package openapi

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
)

// Detect reports whether raw looks like an OpenAPI or Swagger document rather
// than a profile AST.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			_, openapi := payload["openapi"]
			_, swagger := payload["swagger"]
			return openapi || swagger
		}
	}
	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "openapi:") || strings.HasPrefix(line, "swagger:") {
			return true
		}
	}
	return false
}
