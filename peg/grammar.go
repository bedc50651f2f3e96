package peg

import (
	"errors"
	"fmt"
)

// Action builds the value of a rule from the values of its top-level
// sequence. A rule whose expression is not a Seq receives a single value.
type Action func(c *Context, v Values) (any, error)

// TriviaFunc returns the kind and length of the trivia piece at pos, or a
// non-positive length when there is none.
type TriviaFunc func(text string, pos int) (TriviaKind, int)

type Rule struct {
	name   string
	id     int
	expr   Expr
	action Action
	memo   bool
}

func (r *Rule) Name() string { return r.name }

func (r *Rule) match(p *parser, pos int) (int, any, bool) {
	var key memoKey
	if r.memo {
		key = memoKey{rule: r.id, pos: pos}
		if e, ok := p.memo[key]; ok {
			return e.end, e.val, e.ok
		}
	}
	end, v, ok := r.expr.match(p, pos)
	if ok && r.action != nil {
		vals, isSeq := v.(Values)
		if _, seq := r.expr.(*sequence); !seq || !isSeq {
			vals = Values{v}
		}
		res, err := r.action(&Context{p: p, rule: r, start: pos}, vals)
		if err != nil {
			panic(abort{err: p.locate(err, pos)})
		}
		v = res
	}
	if r.memo {
		p.memo[key] = memoEntry{end: end, val: v, ok: ok}
	}
	return end, v, ok
}

// Context is handed to actions.
type Context struct {
	p     *parser
	rule  *Rule
	start int
}

func (c *Context) Rule() string { return c.rule.name }

func (c *Context) File() string { return c.p.file }

// Errorf returns a SyntaxError located at tok, or at the start of the rule
// when tok is nil.
func (c *Context) Errorf(tok *Token, format string, args ...any) error {
	pos := c.p.startOf(c.start)
	if tok != nil {
		pos = tok.Pos
	}
	return &SyntaxError{
		File:    c.p.file,
		Line:    pos.Line,
		Column:  pos.Column,
		Offset:  pos.Offset,
		Message: fmt.Sprintf(format, args...),
	}
}

// Parse evaluates entry of the same grammar on text, a fragment whose first
// byte sits at base in the enclosing file.
func (c *Context) Parse(entry, text string, base Position) (any, error) {
	return c.p.g.parse(entry, text, config{file: c.p.file, base: base})
}

// Builder collects rules into a Grammar.
type Builder struct {
	rules  []*Rule
	byName map[string]*Rule
	refs   []*ref
	memo   []string
	trivia TriviaFunc
	errs   []error
}

func NewBuilder() *Builder {
	return &Builder{byName: make(map[string]*Rule)}
}

func (b *Builder) Trivia(fn TriviaFunc) {
	b.trivia = fn
}

// Rule defines name. action may be nil, in which case the rule's value is
// the value of its expression.
func (b *Builder) Rule(name string, e Expr, action Action) {
	if _, dup := b.byName[name]; dup {
		b.errs = append(b.errs, fmt.Errorf("peg: rule %q defined twice", name))
		return
	}
	r := &Rule{name: name, id: len(b.rules), expr: e, action: action}
	b.rules = append(b.rules, r)
	b.byName[name] = r
}

// Ref refers to the rule called name, which may be defined later.
func (b *Builder) Ref(name string) Expr {
	r := &ref{name: name}
	b.refs = append(b.refs, r)
	return r
}

// Memo marks rules for memoisation.
func (b *Builder) Memo(names ...string) {
	b.memo = append(b.memo, names...)
}

func (b *Builder) Build() (*Grammar, error) {
	errs := append([]error(nil), b.errs...)
	for _, r := range b.refs {
		rule, ok := b.byName[r.name]
		if !ok {
			errs = append(errs, fmt.Errorf("peg: reference to undefined rule %q", r.name))
			continue
		}
		r.rule = rule
	}
	for _, name := range b.memo {
		rule, ok := b.byName[name]
		if !ok {
			errs = append(errs, fmt.Errorf("peg: memo on undefined rule %q", name))
			continue
		}
		rule.memo = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Grammar{rules: b.byName, order: b.rules, trivia: b.trivia}, nil
}

// Grammar is a compiled, immutable set of rules.
type Grammar struct {
	rules  map[string]*Rule
	order  []*Rule
	trivia TriviaFunc
}

func (g *Grammar) Rule(name string) *Rule {
	return g.rules[name]
}

// Rules returns the rule names in definition order.
func (g *Grammar) Rules() []string {
	names := make([]string, len(g.order))
	for i, r := range g.order {
		names[i] = r.name
	}
	return names
}

type Option func(*config)

type config struct {
	file string
	base Position
}

// WithFile names the input in errors.
func WithFile(name string) Option {
	return func(c *config) {
		c.file = name
	}
}

// WithBase places the first byte of the input at pos of an enclosing file.
func WithBase(pos Position) Option {
	return func(c *config) {
		c.base = pos
	}
}

// Parse matches entry against the whole of text.
func (g *Grammar) Parse(entry, text string, opts ...Option) (any, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return g.parse(entry, text, cfg)
}

func (g *Grammar) parse(entry, text string, cfg config) (result any, err error) {
	rule, ok := g.rules[entry]
	if !ok {
		return nil, fmt.Errorf("peg: unknown entry rule %q", entry)
	}
	p := &parser{
		g:        g,
		src:      newSource(text, cfg.base),
		file:     cfg.file,
		trivia:   make(map[int]triviaSpan),
		memo:     make(map[memoKey]memoEntry),
		furthest: -1,
	}
	defer func() {
		if rec := recover(); rec != nil {
			a, ok := rec.(abort)
			if !ok {
				panic(rec)
			}
			result, err = nil, a.err
		}
	}()
	end, v, ok := rule.match(p, 0)
	if ok && end == len(text) {
		return v, nil
	}
	if ok && p.furthest < end {
		p.fail(end, "end of input")
	}
	return nil, p.syntaxError()
}

type memoKey struct {
	rule int
	pos  int
}

type memoEntry struct {
	end int
	val any
	ok  bool
}

type triviaSpan struct {
	end    int
	pieces []Trivia
}

type parser struct {
	g        *Grammar
	src      *source
	file     string
	trivia   map[int]triviaSpan
	memo     map[memoKey]memoEntry
	furthest int
	expected []string
	quiet    int
}

func (p *parser) skipTrivia(pos int) (int, []Trivia) {
	if p.g.trivia == nil {
		return pos, nil
	}
	if s, ok := p.trivia[pos]; ok {
		return s.end, s.pieces
	}
	start := pos
	text := p.src.text
	var pieces []Trivia
	for pos < len(text) {
		kind, n := p.g.trivia(text, pos)
		if n <= 0 {
			break
		}
		pieces = append(pieces, Trivia{Kind: kind, Literal: text[pos : pos+n], Pos: p.src.position(pos)})
		pos += n
	}
	p.trivia[start] = triviaSpan{end: pos, pieces: pieces}
	return pos, pieces
}

func (p *parser) startOf(pos int) Position {
	start, _ := p.skipTrivia(pos)
	return p.src.position(start)
}

func (p *parser) fail(pos int, name string) {
	if p.quiet > 0 || pos < p.furthest {
		return
	}
	if pos > p.furthest {
		p.furthest = pos
		p.expected = p.expected[:0]
	}
	for _, e := range p.expected {
		if e == name {
			return
		}
	}
	p.expected = append(p.expected, name)
}

func (p *parser) syntaxError() *SyntaxError {
	at := p.furthest
	if at < 0 {
		at = 0
	}
	pos := p.src.position(at)
	return &SyntaxError{
		File:     p.file,
		Line:     pos.Line,
		Column:   pos.Column,
		Offset:   pos.Offset,
		Message:  "unexpected " + describe(p.src.text, at) + expectedList(p.expected),
		Expected: append([]string(nil), p.expected...),
	}
}

func (p *parser) locate(err error, pos int) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return err
	}
	at := p.startOf(pos)
	return &SyntaxError{
		File:    p.file,
		Line:    at.Line,
		Column:  at.Column,
		Offset:  at.Offset,
		Message: err.Error(),
	}
}
