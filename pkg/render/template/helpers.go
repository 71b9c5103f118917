package template

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Helper enumerates every helper the template language understands.
type Helper int

const (
	helperNone Helper = iota
	HelperIf
	HelperUnless
	HelperEach
	HelperWith
	HelperIfEq
	HelperSwitch
	HelperCase
	HelperNewLine
	HelperInc
	HelperQuotes
	HelperBoolean
	HelperString
	HelperKey
)

// Dialects understood by the quotes, boolean and key helpers.
const (
	DialectJS      = "js"
	DialectPython  = "python"
	DialectComlink = "comlink"
)

func lookupHelper(name string) (Helper, bool) {
	switch name {
	case "if":
		return HelperIf, true
	case "unless":
		return HelperUnless, true
	case "each":
		return HelperEach, true
	case "with":
		return HelperWith, true
	case "ifeq":
		return HelperIfEq, true
	case "switch":
		return HelperSwitch, true
	case "case":
		return HelperCase, true
	case "newLine":
		return HelperNewLine, true
	case "inc":
		return HelperInc, true
	case "quotes":
		return HelperQuotes, true
	case "boolean":
		return HelperBoolean, true
	case "string":
		return HelperString, true
	case "key":
		return HelperKey, true
	default:
		return helperNone, false
	}
}

func (h Helper) String() string {
	switch h {
	case HelperIf:
		return "if"
	case HelperUnless:
		return "unless"
	case HelperEach:
		return "each"
	case HelperWith:
		return "with"
	case HelperIfEq:
		return "ifeq"
	case HelperSwitch:
		return "switch"
	case HelperCase:
		return "case"
	case HelperNewLine:
		return "newLine"
	case HelperInc:
		return "inc"
	case HelperQuotes:
		return "quotes"
	case HelperBoolean:
		return "boolean"
	case HelperString:
		return "string"
	case HelperKey:
		return "key"
	default:
		return "none"
	}
}

// IsBlock reports whether the helper wraps a body ({{#name}}…{{/name}}).
func (h Helper) IsBlock() bool {
	switch h {
	case HelperIf, HelperUnless, HelperEach, HelperWith, HelperIfEq, HelperSwitch, HelperCase:
		return true
	default:
		return false
	}
}

// arity returns the accepted argument count range; hi < 0 means unbounded.
func (h Helper) arity() (lo, hi int) {
	switch h {
	case HelperIf, HelperUnless, HelperEach, HelperWith, HelperSwitch, HelperQuotes, HelperString:
		return 1, 1
	case HelperIfEq:
		return 2, 2
	case HelperCase:
		return 1, -1
	case HelperNewLine:
		return 0, 1
	case HelperInc, HelperBoolean, HelperKey:
		return 1, 2
	default:
		return 0, 0
	}
}

// callInline evaluates a non-block helper against evaluated arguments.
func callInline(h Helper, args []any) any {
	switch h {
	case HelperNewLine:
		indent := 0
		if len(args) > 0 {
			indent = toInt(args[0])
		}
		if indent < 0 {
			indent = 0
		}
		return "\n" + strings.Repeat(" ", indent)
	case HelperInc:
		step := 1.0
		if len(args) > 1 {
			step, _ = toNumber(args[1])
		}
		base, _ := toNumber(args[0])
		return base + step
	case HelperQuotes:
		if dialectOf(args[0]) == DialectPython {
			return `"`
		}
		return ""
	case HelperBoolean:
		dialect := DialectJS
		if len(args) > 1 {
			dialect = dialectOf(args[1])
		}
		return booleanToken(truthy(args[0]), dialect)
	case HelperString:
		return quoteString(stringify(args[0]))
	case HelperKey:
		dialect := DialectJS
		if len(args) > 1 {
			dialect = dialectOf(args[1])
		}
		return objectKey(stringify(args[0]), dialect)
	default:
		return nil
	}
}

// objectKey renders an object key for dialect: bare when the target accepts
// it unquoted, a string literal otherwise. Python dict keys are always quoted;
// Comlink also accepts dotted key paths of identifiers.
func objectKey(name, dialect string) string {
	switch dialect {
	case DialectPython:
		return quoteString(name)
	case DialectComlink:
		for _, segment := range strings.Split(name, ".") {
			if !isIdentifier(segment, false) {
				return quoteString(name)
			}
		}
		return name
	default:
		if isIdentifier(name, true) {
			return name
		}
		return quoteString(name)
	}
}

func isIdentifier(s string, dollar bool) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '$' && dollar:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func dialectOf(value any) string {
	s, _ := value.(string)
	return strings.ToLower(strings.TrimSpace(s))
}

func booleanToken(value bool, dialect string) string {
	if dialect == DialectPython {
		if value {
			return "True"
		}
		return "False"
	}
	if value {
		return "true"
	}
	return "false"
}

// quoteString renders s as a double-quoted literal valid in JavaScript,
// Python and Comlink.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteString(strconv.FormatInt(int64(r)>>4, 16))
				b.WriteString(strconv.FormatInt(int64(r)&0xf, 16))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
