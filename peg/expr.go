package peg

import (
	"regexp"
	"strings"
)

// Values holds what the elements of a sequence matched, in order.
// Terminals produce *Token, optional elements that did not match produce
// nil, repetitions produce Values, rules with an action produce the
// action's result.
type Values []any

func (v Values) Has(i int) bool {
	return i < len(v) && v[i] != nil
}

func (v Values) Token(i int) *Token {
	if i >= len(v) {
		return nil
	}
	t, _ := v[i].(*Token)
	return t
}

func (v Values) Values(i int) Values {
	if i >= len(v) {
		return nil
	}
	vs, _ := v[i].(Values)
	return vs
}

// Expr is a parsing expression.
type Expr interface {
	match(p *parser, pos int) (end int, val any, ok bool)
	render(w *renderer, nested bool)
}

type sequence struct {
	items []Expr
}

// Seq matches all items in order.
func Seq(items ...Expr) Expr {
	return &sequence{items: items}
}

func (s *sequence) match(p *parser, pos int) (int, any, bool) {
	vals := make(Values, len(s.items))
	for i, item := range s.items {
		end, v, ok := item.match(p, pos)
		if !ok {
			return pos, nil, false
		}
		vals[i] = v
		pos = end
	}
	return pos, vals, true
}

type choice struct {
	alts []Expr
}

// FirstOf matches the first alternative that succeeds.
func FirstOf(alts ...Expr) Expr {
	return &choice{alts: alts}
}

func (c *choice) match(p *parser, pos int) (int, any, bool) {
	for _, alt := range c.alts {
		if end, v, ok := alt.match(p, pos); ok {
			return end, v, true
		}
	}
	return pos, nil, false
}

func group(items []Expr) Expr {
	if len(items) == 1 {
		return items[0]
	}
	return Seq(items...)
}

type optional struct {
	body Expr
}

// Optional matches its items as a sequence, or nothing. Several items are
// grouped into a Seq.
func Optional(items ...Expr) Expr {
	return &optional{body: group(items)}
}

func (o *optional) match(p *parser, pos int) (int, any, bool) {
	if end, v, ok := o.body.match(p, pos); ok {
		return end, v, true
	}
	return pos, nil, true
}

type repeat struct {
	body Expr
	min  int
}

// ZeroOrMore matches its items as often as possible.
func ZeroOrMore(items ...Expr) Expr {
	return &repeat{body: group(items)}
}

// OneOrMore is ZeroOrMore that must match at least once.
func OneOrMore(items ...Expr) Expr {
	return &repeat{body: group(items), min: 1}
}

func (r *repeat) match(p *parser, pos int) (int, any, bool) {
	start := pos
	var vals Values
	for {
		end, v, ok := r.body.match(p, pos)
		if !ok {
			break
		}
		vals = append(vals, v)
		if end == pos {
			break
		}
		pos = end
	}
	if len(vals) < r.min {
		return start, nil, false
	}
	return pos, vals, true
}

type lookahead struct {
	body   Expr
	negate bool
}

// Next succeeds when its items match here, without consuming input.
func Next(items ...Expr) Expr {
	return &lookahead{body: group(items)}
}

// Not succeeds when its items do not match here. It consumes nothing.
func Not(items ...Expr) Expr {
	return &lookahead{body: group(items), negate: true}
}

func (l *lookahead) match(p *parser, pos int) (int, any, bool) {
	p.quiet++
	_, _, ok := l.body.match(p, pos)
	p.quiet--
	return pos, nil, ok != l.negate
}

type ref struct {
	name string
	rule *Rule
}

func (r *ref) match(p *parser, pos int) (int, any, bool) {
	return r.rule.match(p, pos)
}

// MatchFunc returns the length of the lexeme starting at pos, or a
// non-positive number when there is none.
type MatchFunc func(text string, pos int) int

// Terminal matches one token.
type Terminal struct {
	name     string
	kind     TokenKind
	fn       MatchFunc
	spelling string
	pattern  string
	raw      bool
	eof      bool
}

// Literal matches exactly text.
func Literal(kind TokenKind, text string) *Terminal {
	return &Terminal{
		name:     `"` + text + `"`,
		kind:     kind,
		spelling: text,
		fn: func(s string, pos int) int {
			if strings.HasPrefix(s[pos:], text) {
				return len(text)
			}
			return -1
		},
	}
}

// IsWordByte reports whether c may continue an identifier-like word.
func IsWordByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Word matches word case-insensitively when it is not immediately followed
// by a word byte.
func Word(kind TokenKind, word string) *Terminal {
	return &Terminal{
		name:     `"` + word + `"`,
		kind:     kind,
		spelling: word,
		fn: func(s string, pos int) int {
			end := pos + len(word)
			if end > len(s) || !strings.EqualFold(s[pos:end], word) {
				return -1
			}
			if end < len(s) && IsWordByte(s[end]) {
				return -1
			}
			return len(word)
		},
	}
}

// Regexp matches pattern anchored at the cursor. name must be a lower-case
// identifier; it names the token in error messages and in EBNF output.
func Regexp(name string, kind TokenKind, pattern string) *Terminal {
	re := regexp.MustCompile(`\A(?:` + pattern + `)`)
	return &Terminal{
		name:    name,
		kind:    kind,
		pattern: pattern,
		fn: func(s string, pos int) int {
			loc := re.FindStringIndex(s[pos:])
			if loc == nil {
				return -1
			}
			return loc[1]
		},
	}
}

// Lexeme matches with a custom function. name follows the rules of Regexp.
func Lexeme(name string, kind TokenKind, fn MatchFunc) *Terminal {
	return &Terminal{name: name, kind: kind, fn: fn}
}

// EOF matches the end of the input, after trailing trivia.
func EOF() *Terminal {
	return &Terminal{name: "eof", kind: KindEOF, eof: true}
}

// Raw returns a copy of t that does not skip trivia before matching.
func (t *Terminal) Raw() *Terminal {
	c := *t
	c.raw = true
	return &c
}

// Spelled returns a copy of t that is rendered and reported as the literal
// text s, for custom matchers of fixed spelling.
func (t *Terminal) Spelled(s string) *Terminal {
	c := *t
	c.spelling = s
	c.name = `"` + s + `"`
	return &c
}

func (t *Terminal) Name() string { return t.name }

func (t *Terminal) match(p *parser, pos int) (int, any, bool) {
	start := pos
	var trivia []Trivia
	if !t.raw {
		start, trivia = p.skipTrivia(pos)
	}
	if t.eof {
		if start != len(p.src.text) {
			p.fail(start, t.name)
			return pos, nil, false
		}
		return start, &Token{Kind: KindEOF, Pos: p.src.position(start), Trivia: trivia, EOF: true}, true
	}
	if start >= len(p.src.text) {
		p.fail(start, t.name)
		return pos, nil, false
	}
	n := t.fn(p.src.text, start)
	if n <= 0 {
		p.fail(start, t.name)
		return pos, nil, false
	}
	tok := &Token{
		Kind:    t.kind,
		Literal: p.src.text[start : start+n],
		Pos:     p.src.position(start),
		Trivia:  trivia,
	}
	return start + n, tok, true
}
