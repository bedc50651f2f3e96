package peg

import (
	"fmt"
	"sort"
	"strings"
)

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

// Advance returns the position reached after reading s starting at p.
// Columns count bytes.
func (p Position) Advance(s string) Position {
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\n':
			p.Line++
			p.Column = 1
		case s[i] == '\r' && (i+1 == len(s) || s[i+1] != '\n'):
			p.Line++
			p.Column = 1
		default:
			p.Column++
		}
	}
	p.Offset += len(s)
	return p
}

// TokenKind is assigned by the grammar that defines a terminal.
type TokenKind int

const KindEOF TokenKind = -1

type TriviaKind int

const (
	TriviaWhitespace TriviaKind = iota
	TriviaComment
)

func (k TriviaKind) String() string {
	if k == TriviaComment {
		return "Comment"
	}
	return "Whitespace"
}

type Trivia struct {
	Kind    TriviaKind
	Literal string
	Pos     Position
}

// Token is an immutable leaf produced by a terminal, together with the
// trivia that preceded it.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
	Trivia  []Trivia
	EOF     bool
}

func (t *Token) Line() int   { return t.Pos.Line }
func (t *Token) Column() int { return t.Pos.Column }
func (t *Token) Offset() int { return t.Pos.Offset }

// End returns the position just after the token's text.
func (t *Token) End() Position {
	return t.Pos.Advance(t.Literal)
}

// FullText returns the token text preceded by its trivia.
func (t *Token) FullText() string {
	if len(t.Trivia) == 0 {
		return t.Literal
	}
	var sb strings.Builder
	for _, tr := range t.Trivia {
		sb.WriteString(tr.Literal)
	}
	sb.WriteString(t.Literal)
	return sb.String()
}

func (t *Token) Comments() []Trivia {
	var out []Trivia
	for _, tr := range t.Trivia {
		if tr.Kind == TriviaComment {
			out = append(out, tr)
		}
	}
	return out
}

func (t *Token) String() string {
	if t.EOF {
		return fmt.Sprintf("%s EOF", t.Pos)
	}
	return fmt.Sprintf("%s %q", t.Pos, t.Literal)
}

const bom = "\ufeff"

// source maps byte offsets of the text being parsed to positions in the
// enclosing file.
type source struct {
	text       string
	base       Position
	lineStarts []int
	bom        bool
}

func newSource(text string, base Position) *source {
	if !base.IsValid() {
		base = Position{Line: 1, Column: 1}
	}
	if base.Column == 0 {
		base.Column = 1
	}
	s := &source{
		text:       text,
		base:       base,
		lineStarts: []int{0},
		bom:        base.Offset == 0 && base.Line == 1 && base.Column == 1 && strings.HasPrefix(text, bom),
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			s.lineStarts = append(s.lineStarts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *source) position(offset int) Position {
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	col := offset - s.lineStarts[line] + 1
	if line == 0 {
		col += s.base.Column - 1
		if s.bom && offset >= len(bom) {
			col -= len(bom)
		}
	}
	return Position{
		Offset: s.base.Offset + offset,
		Line:   s.base.Line + line,
		Column: col,
	}
}
