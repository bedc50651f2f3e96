package parser

import (
	"strings"

	"github.com/dhamidi/phpast/peg"
)

// entryEncapsed parses the inside of a double-quoted string, a heredoc body
// or a backtick command.
const entryEncapsed = "encapsedContent"

func (r *rules) strings() {
	r.def("heredocLiteral", tHeredoc, heredocLiteral)
	r.def("doubleQuotedString", tDoubleQuoted, func(c *peg.Context, v peg.Values) (any, error) {
		tok := v.Token(0)
		prefix := tok.Literal[:strings.IndexByte(tok.Literal, '"')+1]
		inner := tok.Literal[len(prefix) : len(tok.Literal)-1]
		if !hasInterpolation(inner) {
			return leaf(KindStringLiteral, tok), nil
		}
		return delimited(c, KindInterpolatedString, tok, TokenDoubleQuote, prefix, inner, `"`)
	})
	r.def("executionOperator", tBacktick, func(c *peg.Context, v peg.Values) (any, error) {
		tok := v.Token(0)
		return delimited(c, KindExecutionOperator, tok, TokenBacktick, "`", tok.Literal[1:len(tok.Literal)-1], "`")
	})

	r.def(entryEncapsed, peg.Seq(
		peg.ZeroOrMore(peg.FirstOf(r.ref("stringContent"), r.ref("encapsedVariable"))),
		peg.EOF().Raw(),
	), func(c *peg.Context, v peg.Values) (any, error) {
		return v.Values(0), nil
	})
	r.def("stringContent", tStringChars, asLeaf(KindStringContent))
	r.def("encapsedVariable", peg.FirstOf(
		r.ref("encapsedComplexVariable"),
		r.ref("encapsedSemiComplexVariable"),
		r.ref("encapsedSimpleVariable"),
	), nil)

	// {$expr}: the brace must be directly followed by "$".
	r.def("encapsedComplexVariable", peg.Seq(
		p("{").Raw(), peg.Next(p("$").Raw()), r.ref("expression"), p("}"),
	), build(KindEncapsedComplexVariable))
	// ${expr}
	r.def("encapsedSemiComplexVariable", peg.Seq(
		p("$").Raw(), p("{").Raw(), r.ref("expression"), p("}"),
	), build(KindEncapsedSemiComplexVariable))

	// $name, $name[offset], $name->property and $name?->property. Nothing
	// here skips whitespace, which belongs to the string.
	r.def("encapsedSimpleVariable", peg.Seq(
		tVariable.Raw(),
		peg.Optional(peg.FirstOf(r.ref("encapsedOffset"), r.ref("encapsedProperty"))),
	), func(c *peg.Context, v peg.Values) (any, error) {
		head := leaf(KindVariableIdentifier, v.Token(0))
		if !v.Has(1) {
			return head, nil
		}
		return v[1].(*incomplete).complete(head), nil
	})
	r.def("encapsedOffset", peg.Seq(
		p("[").Raw(),
		peg.FirstOf(tOffsetNumber, tWord.Raw(), tVariable.Raw()),
		p("]").Raw(),
	), func(c *peg.Context, v peg.Values) (any, error) {
		offset := v.Token(1)
		var key *Node
		switch offset.Kind {
		case TokenInteger:
			key = leaf(KindIntegerLiteral, offset)
		case TokenVariable:
			key = leaf(KindVariableIdentifier, offset)
		default:
			key = leaf(KindStringLiteral, offset)
		}
		return &incomplete{kind: KindArrayAccess, parts: []any{v[0], key, v[2]}}, nil
	})
	r.def("encapsedProperty", peg.Seq(
		peg.FirstOf(p("->").Raw(), p("?->").Raw()),
		tWord.Raw(),
	), func(c *peg.Context, v peg.Values) (any, error) {
		kind := KindObjectMemberAccess
		if v.Token(0).Literal == "?->" {
			kind = KindNullsafeMemberAccess
		}
		return &incomplete{kind: kind, parts: []any{v[0], leaf(KindName, v.Token(1))}}, nil
	})
}

// hasInterpolation reports whether the inside of a double-quoted string
// holds anything besides literal characters.
func hasInterpolation(inner string) bool {
	return inner != "" && matchStringChars(inner, 0) != len(inner)
}

// delimited splits a quoted token into its delimiters and the parts of its
// content. The content is parsed again with positions relative to the
// enclosing file.
func delimited(c *peg.Context, kind Kind, tok *Token, delim peg.TokenKind, open, inner, closing string) (*Node, error) {
	openTok := &Token{Kind: delim, Literal: open, Pos: tok.Pos, Trivia: tok.Trivia}
	base := tok.Pos.Advance(open)
	parts, err := encapsed(c, inner, base)
	if err != nil {
		return nil, err
	}
	closeTok := &Token{Kind: delim, Literal: closing, Pos: base.Advance(inner)}
	return newNode(kind, openTok, parts, closeTok), nil
}

func encapsed(c *peg.Context, text string, base Position) (any, error) {
	if text == "" {
		return nil, nil
	}
	return c.Parse(entryEncapsed, text, base)
}

func heredocLiteral(c *peg.Context, v peg.Values) (any, error) {
	tok := v.Token(0)
	h, ok := splitHeredoc(tok.Literal)
	if !ok {
		peg.Internalf("heredoc %q does not split at its closing label", tok.Literal)
	}
	start := &Token{Kind: TokenHeredocStart, Literal: h.open, Pos: tok.Pos, Trivia: tok.Trivia}
	base := tok.Pos.Advance(h.open)
	end := &Token{Kind: TokenHeredocEnd, Literal: h.close, Pos: base.Advance(h.body)}
	if h.nowdoc {
		var body *Node
		if h.body != "" {
			body = leaf(KindStringContent, &Token{Kind: TokenStringContent, Literal: h.body, Pos: base})
		}
		return newNode(KindNowdocLiteral, start, body, end), nil
	}
	parts, err := encapsed(c, h.body, base)
	if err != nil {
		return nil, err
	}
	return newNode(KindHeredocLiteral, start, parts, end), nil
}
