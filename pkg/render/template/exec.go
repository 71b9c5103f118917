package template

import (
	"strings"
)

const maxPartialDepth = 256

type frame struct {
	value  any
	locals map[string]any
}

type state struct {
	set   *Set
	name  string
	stack []frame
	depth int
	out   strings.Builder
}

func (s *state) push(value any, locals map[string]any) {
	s.stack = append(s.stack, frame{value: value, locals: locals})
}

func (s *state) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *state) walk(nodes []node) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *textNode:
			s.out.WriteString(n.text)
		case *valueNode:
			value, err := s.eval(n.expr)
			if err != nil {
				return err
			}
			s.out.WriteString(stringify(value))
		case *blockNode:
			if err := s.block(n); err != nil {
				return err
			}
		case *partialNode:
			if err := s.partial(n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *state) eval(e expr) (any, error) {
	switch e := e.(type) {
	case *literalExpr:
		return e.value, nil
	case *pathExpr:
		return s.lookup(e), nil
	case *callExpr:
		args, err := s.evalAll(e.args)
		if err != nil {
			return nil, err
		}
		return callInline(e.helper, args), nil
	default:
		return nil, nil
	}
}

func (s *state) evalAll(exprs []expr) ([]any, error) {
	out := make([]any, 0, len(exprs))
	for _, e := range exprs {
		value, err := s.eval(e)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

// lookup resolves a path. Plain names walk outwards through the context
// stack; this, ../ and @ paths are anchored.
func (s *state) lookup(p *pathExpr) any {
	if p.data {
		if len(p.parts) > 0 && p.parts[0] == "root" {
			return resolve(s.stack[0].value, p.parts[1:])
		}
		key := "@" + p.parts[0]
		for i := len(s.stack) - 1; i >= 0; i-- {
			if value, ok := s.stack[i].locals[key]; ok {
				return resolve(value, p.parts[1:])
			}
		}
		return nil
	}

	idx := len(s.stack) - 1 - p.up
	if idx < 0 {
		return nil
	}
	if p.this || p.up > 0 {
		return resolve(s.stack[idx].value, p.parts)
	}

	head := p.parts[0]
	for i := idx; i >= 0; i-- {
		f := s.stack[i]
		if value, ok := f.locals[head]; ok {
			return resolve(value, p.parts[1:])
		}
		if m, ok := f.value.(map[string]any); ok {
			if value, ok := m[head]; ok {
				return resolve(value, p.parts[1:])
			}
		}
	}
	return nil
}

func resolve(value any, parts []string) any {
	for _, part := range parts {
		switch v := value.(type) {
		case map[string]any:
			value = v[part]
		case []any:
			if part == "length" {
				value = float64(len(v))
				continue
			}
			i := toInt(part)
			if i < 0 || i >= len(v) {
				return nil
			}
			value = v[i]
		default:
			return nil
		}
	}
	return value
}

func (s *state) block(n *blockNode) error {
	args, err := s.evalAll(n.args)
	if err != nil {
		return err
	}

	switch n.helper {
	case HelperIf:
		if truthy(args[0]) {
			return s.walk(n.body)
		}
		return s.walk(n.inverse)
	case HelperUnless:
		if !truthy(args[0]) {
			return s.walk(n.body)
		}
		return s.walk(n.inverse)
	case HelperIfEq:
		if equal(args[0], args[1]) {
			return s.walk(n.body)
		}
		return s.walk(n.inverse)
	case HelperWith:
		if !truthy(args[0]) {
			return s.walk(n.inverse)
		}
		s.push(args[0], nil)
		defer s.pop()
		return s.walk(n.body)
	case HelperEach:
		return s.each(n, args[0])
	case HelperSwitch:
		return s.switchBlock(n, args[0])
	default:
		// case blocks are only reachable through their switch.
		return nil
	}
}

func (s *state) each(n *blockNode, value any) error {
	switch items := value.(type) {
	case []any:
		if len(items) == 0 {
			return s.walk(n.inverse)
		}
		for i, item := range items {
			s.push(item, map[string]any{
				"@index": float64(i),
				"@first": i == 0,
				"@last":  i == len(items)-1,
			})
			err := s.walk(n.body)
			s.pop()
			if err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		if len(items) == 0 {
			return s.walk(n.inverse)
		}
		keys := sortedKeys(items)
		for i, key := range keys {
			s.push(items[key], map[string]any{
				"@key":   key,
				"@index": float64(i),
				"@first": i == 0,
				"@last":  i == len(keys)-1,
			})
			err := s.walk(n.body)
			s.pop()
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return s.walk(n.inverse)
	}
}

func (s *state) switchBlock(n *blockNode, subject any) error {
	for _, child := range n.body {
		c, ok := child.(*blockNode)
		if !ok || c.helper != HelperCase {
			continue
		}
		candidates, err := s.evalAll(c.args)
		if err != nil {
			return err
		}
		for _, candidate := range candidates {
			if equal(subject, candidate) {
				return s.walk(c.body)
			}
		}
	}
	return s.walk(n.inverse)
}

func (s *state) partial(n *partialNode) error {
	tmpl, ok := s.set.templates[n.name]
	if !ok {
		return unknownPartialError(s.name, n.line, n.name)
	}
	if s.depth >= maxPartialDepth {
		return recursionError(n.name, maxPartialDepth)
	}

	value := s.stack[len(s.stack)-1].value
	if n.context != nil {
		v, err := s.eval(n.context)
		if err != nil {
			return err
		}
		value = v
	}
	var locals map[string]any
	if len(n.hash) > 0 {
		locals = make(map[string]any, len(n.hash))
		for _, arg := range n.hash {
			v, err := s.eval(arg.value)
			if err != nil {
				return err
			}
			locals[arg.key] = v
		}
	}

	caller := s.name
	s.name = n.name
	s.depth++
	s.push(value, locals)
	err := s.walk(tmpl.nodes)
	s.pop()
	s.depth--
	s.name = caller
	return err
}
