package parser

import (
	"sync"

	"github.com/dhamidi/phpast/peg"
)

// Entry names a rule parsing can start from.
type Entry string

const (
	EntryCompilationUnit Entry = "compilationUnit"
	EntryStatement       Entry = "statementFragment"
	EntryExpression      Entry = "expressionFragment"
	EntryClassMember     Entry = "classMemberFragment"
)

var (
	tVariable      = peg.Lexeme("variable", TokenVariable, matchVariable)
	tIdentifier    = peg.Lexeme("identifier", TokenIdentifier, matchIdentifier)
	tWord          = peg.Lexeme("identifierOrKeyword", TokenIdentifier, matchWord)
	tName          = peg.Lexeme("name", TokenName, matchName)
	tDeclaredName  = peg.Lexeme("declaredName", TokenName, matchDeclaredName)
	tCast          = peg.Lexeme("cast", TokenCast, matchCast)
	tSingleQuoted  = peg.Lexeme("singleQuotedString", TokenString, matchSingleQuoted)
	tDoubleQuoted  = peg.Lexeme("doubleQuotedString", TokenString, matchDoubleQuoted)
	tBacktick      = peg.Lexeme("backtickString", TokenString, matchBacktick)
	tHeredoc       = peg.Lexeme("heredoc", TokenString, matchHeredoc)
	tInlineHTML    = peg.Lexeme("inlineHTML", TokenInlineHTML, matchInlineHTML).Raw()
	tOpenTag       = peg.Lexeme("openTag", TokenOpenTag, matchOpenTag).Raw()
	tOpenTagEcho   = peg.Lexeme("openTagWithEcho", TokenOpenTagEcho, matchOpenTagEcho).Raw()
	tCloseTag      = peg.Lexeme("closeTag", TokenCloseTag, matchCloseTag)
	tHaltData      = peg.Lexeme("haltCompilerData", TokenHaltData, matchHaltData).Raw()
	tStringChars   = peg.Lexeme("stringCharacters", TokenStringContent, matchStringChars).Raw()
	tOffsetNumber  = peg.Regexp("encapsedOffsetNumber", TokenInteger, `-?[0-9]+`).Raw()
	tInteger       = peg.Regexp("integer", TokenInteger, `0[xX][0-9a-fA-F]+(?:_[0-9a-fA-F]+)*|0[bB][01]+(?:_[01]+)*|0[oO][0-7]+(?:_[0-7]+)*|[0-9]+(?:_[0-9]+)*`)
	tFloat         = peg.Regexp("float", TokenFloat, floatPattern)
	tStatementStop = peg.FirstOf(p(";"), peg.Next(tCloseTag))
)

const (
	digits       = `[0-9]+(?:_[0-9]+)*`
	exponent     = `[eE][+-]?` + digits
	floatPattern = `(?:` + digits + `)?\.` + digits + `(?:` + exponent + `)?` +
		`|` + digits + `\.(?:` + digits + `)?(?:` + exponent + `)?` +
		`|` + digits + exponent
)

// kw matches a keyword, case-insensitively and on a word boundary.
func kw(word string) *peg.Terminal {
	return peg.Word(TokenKeyword, word)
}

func kws(words ...string) peg.Expr {
	alts := make([]peg.Expr, len(words))
	for i, w := range words {
		alts[i] = kw(w)
	}
	return peg.FirstOf(alts...)
}

// p matches the punctuator s when it is the longest punctuator at the
// cursor, so that "=" does not match the start of "==".
func p(s string) *peg.Terminal {
	return peg.Lexeme("punctuator", TokenPunct, func(text string, pos int) int {
		if longestPunct(text, pos) == s {
			return len(s)
		}
		return -1
	}).Spelled(s)
}

func ps(puncts ...string) peg.Expr {
	alts := make([]peg.Expr, len(puncts))
	for i, s := range puncts {
		alts[i] = p(s)
	}
	return peg.FirstOf(alts...)
}

// rules wraps the builder with shorthands used by the rule definitions.
type rules struct {
	b *peg.Builder
}

func (r *rules) ref(name string) peg.Expr {
	return r.b.Ref(name)
}

func (r *rules) def(name string, e peg.Expr, action peg.Action) {
	r.b.Rule(name, e, action)
}

// list defines name as a separated list of elem, with an optional
// trailing separator when trailing is set.
func (r *rules) list(name string, elem peg.Expr, sep string, trailing bool) {
	if trailing {
		r.def(name, peg.Seq(elem, peg.ZeroOrMore(p(sep), elem), peg.Optional(p(sep))), listAction)
		return
	}
	r.def(name, peg.Seq(elem, peg.ZeroOrMore(p(sep), elem)), listAction)
}

func buildGrammar() (*peg.Grammar, error) {
	r := &rules{b: peg.NewBuilder()}
	r.b.Trivia(phpTrivia)

	r.def(string(EntryCompilationUnit), peg.Seq(
		peg.Optional(tInlineHTML),
		peg.Optional(peg.FirstOf(tOpenTag, tOpenTagEcho)),
		peg.ZeroOrMore(r.ref("topStatement")),
		peg.EOF(),
	), func(c *peg.Context, v peg.Values) (any, error) {
		script := newNode(KindScript, v[0], v[1], v[2])
		return newNode(KindCompilationUnit, script, v[3]), nil
	})
	r.def(string(EntryStatement), peg.Seq(r.ref("topStatement"), peg.EOF()), first)
	r.def(string(EntryExpression), peg.Seq(r.ref("expression"), peg.EOF()), first)
	r.def(string(EntryClassMember), peg.Seq(r.ref("classMember"), peg.EOF()), first)

	r.names()
	r.expressions()
	r.statements()
	r.declarations()
	r.types()
	r.strings()

	r.b.Memo("expression", "assignmentExpression", "memberChain", "postfixExpression", "unary", "type", "attributeGroup")
	return r.b.Build()
}

var grammarOnce = sync.OnceValues(buildGrammar)

// Grammar returns the compiled PHP grammar. It is built once and shared
// by all parses.
func Grammar() *peg.Grammar {
	g, err := grammarOnce()
	if err != nil {
		panic(&peg.InternalError{Message: err.Error()})
	}
	return g
}
