package template

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenValue
	tokenComment
	tokenPartial
	tokenOpen
	tokenClose
	tokenElse
)

type token struct {
	kind      tokenKind
	text      string
	line      int
	trimLeft  bool
	trimRight bool
}

type node interface{ node() }

type textNode struct {
	text string
}

type valueNode struct {
	expr expr
	line int
}

type blockNode struct {
	helper  Helper
	args    []expr
	body    []node
	inverse []node
	line    int
}

type partialNode struct {
	name    string
	context expr
	hash    []hashArg
	line    int
}

func (*textNode) node()    {}
func (*valueNode) node()   {}
func (*blockNode) node()   {}
func (*partialNode) node() {}

type expr interface{ expr() }

type pathExpr struct {
	up    int
	this  bool
	data  bool
	parts []string
}

type literalExpr struct {
	value any
}

type callExpr struct {
	helper Helper
	args   []expr
}

type hashArg struct {
	key   string
	value expr
}

func (*pathExpr) expr()    {}
func (*literalExpr) expr() {}
func (*callExpr) expr()    {}

// Template is a parsed template body.
type Template struct {
	name     string
	nodes    []node
	partials []string
}

// Name returns the name the template was registered under.
func (t *Template) Name() string {
	return t.name
}

// Parse compiles src into a Template.
func Parse(name, src string) (*Template, error) {
	tokens, err := scan(name, src)
	if err != nil {
		return nil, err
	}
	p := &parser{name: name, tokens: tokens}
	nodes, _, err := p.parseBlock(nil)
	if err != nil {
		return nil, err
	}
	tmpl := &Template{name: name, nodes: nodes}
	tmpl.partials = collectPartials(nodes, nil)
	return tmpl, nil
}

func scan(name, src string) ([]token, error) {
	var tokens []token
	line := 1

	for len(src) > 0 {
		idx := strings.Index(src, "{{")
		if idx < 0 {
			tokens = append(tokens, token{kind: tokenText, text: src, line: line})
			break
		}
		if idx > 0 {
			tokens = append(tokens, token{kind: tokenText, text: src[:idx], line: line})
			line += strings.Count(src[:idx], "\n")
			src = src[idx:]
		}

		openLen, closeDelim := 2, "}}"
		if strings.HasPrefix(src, "{{{") {
			openLen, closeDelim = 3, "}}}"
		}
		body := src[openLen:]

		var end int
		if isLongComment(body) {
			end = strings.Index(body, "--}}")
			if alt := strings.Index(body, "--~}}"); alt >= 0 && (end < 0 || alt < end) {
				end = alt
			}
			if end >= 0 {
				end += strings.Index(body[end:], "}}")
				closeDelim = "}}"
			}
		} else {
			end = strings.Index(body, closeDelim)
		}
		if end < 0 {
			return nil, syntaxError(name, line, "unclosed tag")
		}

		inner := body[:end]
		tok := token{line: line}
		consumed := openLen + end + len(closeDelim)
		line += strings.Count(src[:consumed], "\n")
		src = src[consumed:]

		if strings.HasPrefix(inner, "~") {
			tok.trimLeft = true
			inner = inner[1:]
		}
		if strings.HasSuffix(inner, "~") {
			tok.trimRight = true
			inner = inner[:len(inner)-1]
		}
		inner = strings.TrimSpace(inner)

		switch {
		case strings.HasPrefix(inner, "!"):
			tok.kind = tokenComment
		case strings.HasPrefix(inner, ">"):
			tok.kind = tokenPartial
			tok.text = strings.TrimSpace(inner[1:])
		case strings.HasPrefix(inner, "#"):
			tok.kind = tokenOpen
			tok.text = strings.TrimSpace(inner[1:])
		case strings.HasPrefix(inner, "/"):
			tok.kind = tokenClose
			tok.text = strings.TrimSpace(inner[1:])
		case inner == "else":
			tok.kind = tokenElse
		default:
			tok.kind = tokenValue
			tok.text = inner
		}
		if tok.kind != tokenComment && tok.kind != tokenElse && tok.text == "" {
			return nil, syntaxError(name, tok.line, "empty tag")
		}
		tokens = append(tokens, tok)
	}

	stripStandalone(tokens)

	for i, tok := range tokens {
		if tok.kind == tokenText {
			continue
		}
		if tok.trimLeft && i > 0 && tokens[i-1].kind == tokenText {
			tokens[i-1].text = strings.TrimRightFunc(tokens[i-1].text, unicode.IsSpace)
		}
		if tok.trimRight && i+1 < len(tokens) && tokens[i+1].kind == tokenText {
			tokens[i+1].text = strings.TrimLeftFunc(tokens[i+1].text, unicode.IsSpace)
		}
	}
	return tokens, nil
}

// stripStandalone removes the line of every block, else and comment tag that
// sits alone on its line, so templates can be laid out one tag per line
// without leaking blank lines into the output.
func stripStandalone(tokens []token) {
	standalone := make([]bool, len(tokens))
	for i, tok := range tokens {
		switch tok.kind {
		case tokenOpen, tokenClose, tokenElse, tokenComment:
			standalone[i] = blankBefore(tokens, i) && blankAfter(tokens, i)
		}
	}
	for i, ok := range standalone {
		if !ok {
			continue
		}
		if i > 0 {
			prev := &tokens[i-1]
			prev.text = prev.text[:strings.LastIndex(prev.text, "\n")+1]
		}
		if i+1 < len(tokens) {
			next := &tokens[i+1]
			if idx := strings.Index(next.text, "\n"); idx >= 0 {
				next.text = next.text[idx+1:]
			} else {
				next.text = ""
			}
		}
	}
}

func blankBefore(tokens []token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	if prev.kind != tokenText {
		return false
	}
	idx := strings.LastIndex(prev.text, "\n")
	if idx < 0 {
		return i-1 == 0 && isBlank(prev.text)
	}
	return isBlank(prev.text[idx+1:])
}

func blankAfter(tokens []token, i int) bool {
	last := len(tokens) - 1
	if i == last {
		return true
	}
	next := tokens[i+1]
	if next.kind != tokenText {
		return false
	}
	idx := strings.Index(next.text, "\n")
	if idx < 0 {
		return i+1 == last && isBlank(next.text)
	}
	return isBlank(next.text[:idx])
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isLongComment(body string) bool {
	return strings.HasPrefix(strings.TrimPrefix(body, "~"), "!--")
}

type parser struct {
	name   string
	tokens []token
	pos    int
}

// parseBlock collects nodes until the close tag of open (or EOF at the top
// level). It returns the body and, when an else tag was seen, the inverse.
func (p *parser) parseBlock(open *blockNode) ([]node, []node, error) {
	var body, inverse []node
	target := &body
	inElse := false

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok.kind {
		case tokenText:
			if tok.text != "" {
				*target = append(*target, &textNode{text: tok.text})
			}
		case tokenComment:
		case tokenValue:
			n, err := p.parseValue(tok)
			if err != nil {
				return nil, nil, err
			}
			*target = append(*target, n)
		case tokenPartial:
			n, err := p.parsePartial(tok)
			if err != nil {
				return nil, nil, err
			}
			*target = append(*target, n)
		case tokenOpen:
			n, err := p.parseOpen(tok, open, inElse)
			if err != nil {
				return nil, nil, err
			}
			n.body, n.inverse, err = p.parseBlock(n)
			if err != nil {
				return nil, nil, err
			}
			if n.helper == HelperSwitch {
				if err := p.checkSwitchBody(n); err != nil {
					return nil, nil, err
				}
			}
			*target = append(*target, n)
		case tokenElse:
			if open == nil {
				return nil, nil, syntaxError(p.name, tok.line, "else outside a block")
			}
			if inElse {
				return nil, nil, syntaxError(p.name, tok.line, "duplicate else in %s block", open.helper)
			}
			if open.helper == HelperCase {
				return nil, nil, syntaxError(p.name, tok.line, "else is not allowed in case blocks")
			}
			inElse = true
			target = &inverse
		case tokenClose:
			if open == nil {
				return nil, nil, syntaxError(p.name, tok.line, "unexpected close tag %q", tok.text)
			}
			if tok.text != open.helper.String() {
				return nil, nil, syntaxError(p.name, tok.line, "close tag %q does not match %q", tok.text, open.helper)
			}
			return body, inverse, nil
		}
	}

	if open != nil {
		return nil, nil, syntaxError(p.name, open.line, "unclosed %s block", open.helper)
	}
	return body, inverse, nil
}

func (p *parser) checkSwitchBody(sw *blockNode) error {
	for _, child := range sw.body {
		switch n := child.(type) {
		case *textNode:
			if strings.TrimSpace(n.text) != "" {
				return syntaxError(p.name, sw.line, "switch body may only contain case blocks")
			}
		case *blockNode:
			if n.helper != HelperCase {
				return syntaxError(p.name, n.line, "switch body may only contain case blocks")
			}
		default:
			return syntaxError(p.name, sw.line, "switch body may only contain case blocks")
		}
	}
	return nil
}

func (p *parser) parseOpen(tok token, parent *blockNode, inElse bool) (*blockNode, error) {
	terms, hash, err := p.terms(tok)
	if err != nil {
		return nil, err
	}
	name, ok := simpleName(terms)
	if !ok {
		return nil, syntaxError(p.name, tok.line, "block tag must start with a helper name")
	}
	helper, known := lookupHelper(name)
	if !known {
		return nil, unknownHelperError(p.name, tok.line, name)
	}
	if !helper.IsBlock() {
		return nil, syntaxError(p.name, tok.line, "%s is not a block helper", helper)
	}
	if len(hash) > 0 {
		return nil, syntaxError(p.name, tok.line, "%s does not take hash arguments", helper)
	}
	if helper == HelperCase && (parent == nil || parent.helper != HelperSwitch || inElse) {
		return nil, syntaxError(p.name, tok.line, "case outside a switch block")
	}
	args := terms[1:]
	if err := p.checkArity(tok.line, helper, len(args)); err != nil {
		return nil, err
	}
	return &blockNode{helper: helper, args: args, line: tok.line}, nil
}

func (p *parser) parseValue(tok token) (node, error) {
	terms, hash, err := p.terms(tok)
	if err != nil {
		return nil, err
	}
	if len(hash) > 0 {
		return nil, syntaxError(p.name, tok.line, "hash arguments are only allowed on partials")
	}
	if name, ok := simpleName(terms); ok {
		if helper, known := lookupHelper(name); known {
			if helper.IsBlock() {
				return nil, syntaxError(p.name, tok.line, "%s must be used as a block", helper)
			}
			args := terms[1:]
			if err := p.checkArity(tok.line, helper, len(args)); err != nil {
				return nil, err
			}
			return &valueNode{expr: &callExpr{helper: helper, args: args}, line: tok.line}, nil
		}
		if len(terms) > 1 {
			return nil, unknownHelperError(p.name, tok.line, name)
		}
	}
	if len(terms) != 1 {
		return nil, syntaxError(p.name, tok.line, "unexpected arguments in %q", tok.text)
	}
	return &valueNode{expr: terms[0], line: tok.line}, nil
}

func (p *parser) parsePartial(tok token) (node, error) {
	terms, hash, err := p.terms(tok)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, syntaxError(p.name, tok.line, "partial name is required")
	}
	var name string
	switch first := terms[0].(type) {
	case *literalExpr:
		name, _ = first.value.(string)
	case *pathExpr:
		if !first.this && !first.data && first.up == 0 {
			name = strings.Join(first.parts, ".")
		}
	}
	if name == "" {
		return nil, syntaxError(p.name, tok.line, "invalid partial name in %q", tok.text)
	}
	if len(terms) > 2 {
		return nil, syntaxError(p.name, tok.line, "partial %q takes at most one context argument", name)
	}
	n := &partialNode{name: name, hash: hash, line: tok.line}
	if len(terms) == 2 {
		n.context = terms[1]
	}
	return n, nil
}

func (p *parser) checkArity(line int, helper Helper, got int) error {
	lo, hi := helper.arity()
	if got < lo || (hi >= 0 && got > hi) {
		return syntaxError(p.name, line, "%s takes %d..%d arguments, got %d", helper, lo, hi, got)
	}
	return nil
}

func (p *parser) terms(tok token) ([]expr, []hashArg, error) {
	lx := &exprLexer{src: tok.text, name: p.name, line: tok.line}
	return lx.parseArgs(0)
}

// simpleName returns the bare identifier heading terms, if any.
func simpleName(terms []expr) (string, bool) {
	if len(terms) == 0 {
		return "", false
	}
	path, ok := terms[0].(*pathExpr)
	if !ok || path.this || path.data || path.up > 0 || len(path.parts) != 1 {
		return "", false
	}
	return path.parts[0], true
}

type exprLexer struct {
	src  string
	pos  int
	name string
	line int
}

// parseArgs reads terms until stop (0 for end of input).
func (lx *exprLexer) parseArgs(stop byte) ([]expr, []hashArg, error) {
	var (
		terms []expr
		hash  []hashArg
	)
	for {
		lx.skipSpace()
		if lx.pos >= len(lx.src) {
			if stop != 0 {
				return nil, nil, syntaxError(lx.name, lx.line, "missing %q", string(stop))
			}
			return terms, hash, nil
		}
		if stop != 0 && lx.src[lx.pos] == stop {
			lx.pos++
			return terms, hash, nil
		}

		if key, ok := lx.hashKey(); ok {
			value, err := lx.term()
			if err != nil {
				return nil, nil, err
			}
			hash = append(hash, hashArg{key: key, value: value})
			continue
		}
		if len(hash) > 0 {
			return nil, nil, syntaxError(lx.name, lx.line, "positional argument after hash arguments")
		}
		term, err := lx.term()
		if err != nil {
			return nil, nil, err
		}
		terms = append(terms, term)
	}
}

func (lx *exprLexer) hashKey() (string, bool) {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos > start && lx.pos < len(lx.src) && lx.src[lx.pos] == '=' {
		key := lx.src[start:lx.pos]
		lx.pos++
		return key, true
	}
	lx.pos = start
	return "", false
}

func (lx *exprLexer) term() (expr, error) {
	lx.skipSpace()
	if lx.pos >= len(lx.src) {
		return nil, syntaxError(lx.name, lx.line, "missing argument")
	}

	switch c := lx.src[lx.pos]; {
	case c == '(':
		lx.pos++
		terms, hash, err := lx.parseArgs(')')
		if err != nil {
			return nil, err
		}
		if len(hash) > 0 {
			return nil, syntaxError(lx.name, lx.line, "hash arguments are not allowed in subexpressions")
		}
		name, ok := simpleName(terms)
		if !ok {
			return nil, syntaxError(lx.name, lx.line, "subexpression must start with a helper name")
		}
		helper, known := lookupHelper(name)
		if !known {
			return nil, unknownHelperError(lx.name, lx.line, name)
		}
		if helper.IsBlock() {
			return nil, syntaxError(lx.name, lx.line, "%s cannot be used in a subexpression", helper)
		}
		lo, hi := helper.arity()
		if got := len(terms) - 1; got < lo || (hi >= 0 && got > hi) {
			return nil, syntaxError(lx.name, lx.line, "%s takes %d..%d arguments, got %d", helper, lo, hi, got)
		}
		return &callExpr{helper: helper, args: terms[1:]}, nil
	case c == '"' || c == '\'':
		return lx.stringLiteral(c)
	case c == '-' || (c >= '0' && c <= '9'):
		return lx.number()
	default:
		return lx.path()
	}
}

func (lx *exprLexer) stringLiteral(quote byte) (expr, error) {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
			continue
		case quote:
			lx.pos++
			raw := lx.src[start:lx.pos]
			if quote == '\'' {
				raw = `"` + strings.ReplaceAll(raw[1:len(raw)-1], `"`, `\"`) + `"`
			}
			value, err := strconv.Unquote(raw)
			if err != nil {
				return nil, syntaxError(lx.name, lx.line, "invalid string literal %s", raw)
			}
			return &literalExpr{value: value}, nil
		}
		lx.pos++
	}
	return nil, syntaxError(lx.name, lx.line, "unterminated string literal")
}

func (lx *exprLexer) number() (expr, error) {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) && (lx.src[lx.pos] == '.' || (lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9')) {
		lx.pos++
	}
	value, err := strconv.ParseFloat(lx.src[start:lx.pos], 64)
	if err != nil {
		return nil, syntaxError(lx.name, lx.line, "invalid number %q", lx.src[start:lx.pos])
	}
	return &literalExpr{value: value}, nil
}

func (lx *exprLexer) path() (expr, error) {
	start := lx.pos
	for lx.pos < len(lx.src) && !isSpace(lx.src[lx.pos]) && lx.src[lx.pos] != ')' && lx.src[lx.pos] != '(' {
		lx.pos++
	}
	raw := lx.src[start:lx.pos]
	if raw == "" {
		return nil, syntaxError(lx.name, lx.line, "unexpected character %q", string(lx.src[lx.pos]))
	}

	switch raw {
	case "true":
		return &literalExpr{value: true}, nil
	case "false":
		return &literalExpr{value: false}, nil
	case "null", "undefined":
		return &literalExpr{value: nil}, nil
	}

	out := &pathExpr{}
	for strings.HasPrefix(raw, "../") {
		out.up++
		raw = raw[3:]
	}
	if raw == ".." {
		out.up++
		out.this = true
		return out, nil
	}
	if strings.HasPrefix(raw, "@") {
		out.data = true
		raw = raw[1:]
	}
	switch {
	case raw == "this" || raw == ".":
		out.this = true
		return out, nil
	case strings.HasPrefix(raw, "this."):
		out.this = true
		raw = raw[len("this."):]
	}
	for _, part := range strings.Split(raw, ".") {
		if part == "" {
			return nil, syntaxError(lx.name, lx.line, "invalid path %q", lx.src[start:lx.pos])
		}
		out.parts = append(out.parts, part)
	}
	return out, nil
}

func (lx *exprLexer) skipSpace() {
	for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
		lx.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func collectPartials(nodes []node, into []string) []string {
	for _, n := range nodes {
		switch n := n.(type) {
		case *partialNode:
			into = append(into, n.name)
		case *blockNode:
			into = collectPartials(n.body, into)
			into = collectPartials(n.inverse, into)
		}
	}
	return into
}
