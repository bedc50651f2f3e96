package parser

import (
	"strings"

	"github.com/dhamidi/phpast/peg"
)

// Token kinds of the PHP grammar.
const (
	TokenInlineHTML peg.TokenKind = iota + 1
	TokenOpenTag
	TokenOpenTagEcho
	TokenCloseTag
	TokenKeyword
	TokenPunct
	TokenIdentifier
	TokenName
	TokenVariable
	TokenInteger
	TokenFloat
	TokenString
	TokenDoubleQuote
	TokenBacktick
	TokenStringContent
	TokenHeredocStart
	TokenHeredocEnd
	TokenCast
	TokenHaltData
)

var tokenNames = map[peg.TokenKind]string{
	peg.KindEOF:        "EOF",
	TokenInlineHTML:    "InlineHTML",
	TokenOpenTag:       "OpenTag",
	TokenOpenTagEcho:   "OpenTagWithEcho",
	TokenCloseTag:      "CloseTag",
	TokenKeyword:       "Keyword",
	TokenPunct:         "Punct",
	TokenIdentifier:    "Identifier",
	TokenName:          "Name",
	TokenVariable:      "Variable",
	TokenInteger:       "Integer",
	TokenFloat:         "Float",
	TokenString:        "String",
	TokenDoubleQuote:   "DoubleQuote",
	TokenBacktick:      "Backtick",
	TokenStringContent: "StringContent",
	TokenHeredocStart:  "HeredocStart",
	TokenHeredocEnd:    "HeredocEnd",
	TokenCast:          "Cast",
	TokenHaltData:      "HaltCompilerData",
}

// TokenKindName returns the name of a token kind produced by this package.
func TokenKindName(k peg.TokenKind) string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "Unknown"
}

var reserved = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		abstract and array as break callable case catch class clone const
		continue declare default die do echo else elseif empty enddeclare
		endfor endforeach endif endswitch endwhile eval exit extends final
		finally fn for foreach function global goto if implements include
		include_once instanceof insteadof interface isset list match
		namespace new or print private protected public readonly require
		require_once return static switch throw trait try unset use var
		while xor yield __class__ __dir__ __file__ __function__ __line__
		__method__ __namespace__ __trait__ __property__ __halt_compiler`) {
		reserved[w] = true
	}
}

// IsReserved reports whether word cannot be used as a plain identifier.
func IsReserved(word string) bool {
	return reserved[strings.ToLower(word)]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isWordStart(c byte) bool {
	return peg.IsWordByte(c) && !(c >= '0' && c <= '9')
}

func wordLen(text string, pos int) int {
	if pos >= len(text) || !isWordStart(text[pos]) {
		return 0
	}
	n := 1
	for pos+n < len(text) && peg.IsWordByte(text[pos+n]) {
		n++
	}
	return n
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func phpTrivia(text string, pos int) (peg.TriviaKind, int) {
	c := text[pos]
	switch {
	case isSpace(c):
		n := 1
		for pos+n < len(text) && isSpace(text[pos+n]) {
			n++
		}
		return peg.TriviaWhitespace, n
	case c == '#':
		if pos+1 < len(text) && text[pos+1] == '[' {
			return 0, 0
		}
		return peg.TriviaComment, lineCommentLen(text, pos)
	case c == '/' && pos+1 < len(text) && text[pos+1] == '/':
		return peg.TriviaComment, lineCommentLen(text, pos)
	case c == '/' && pos+1 < len(text) && text[pos+1] == '*':
		end := strings.Index(text[pos+2:], "*/")
		if end < 0 {
			return peg.TriviaComment, len(text) - pos
		}
		return peg.TriviaComment, end + 4
	}
	return 0, 0
}

// lineCommentLen stops before the line terminator or a closing tag.
func lineCommentLen(text string, pos int) int {
	i := pos
	for i < len(text) {
		switch text[i] {
		case '\n', '\r':
			return i - pos
		case '?':
			if i+1 < len(text) && text[i+1] == '>' {
				return i - pos
			}
		}
		i++
	}
	return i - pos
}

// openTagLen returns the length of the opening tag at pos, or 0.
func openTagLen(text string, pos int) (int, peg.TokenKind) {
	rest := text[pos:]
	switch {
	case hasPrefixFold(rest, "<?php") && (len(rest) == 5 || isSpace(rest[5])):
		return 5, TokenOpenTag
	case strings.HasPrefix(rest, "<?="):
		return 3, TokenOpenTagEcho
	case strings.HasPrefix(rest, "<?") && (len(rest) == 2 || isSpace(rest[2])):
		return 2, TokenOpenTag
	}
	return 0, 0
}

func matchOpenTag(text string, pos int) int {
	n, kind := openTagLen(text, pos)
	if kind != TokenOpenTag {
		return -1
	}
	return n
}

func matchOpenTagEcho(text string, pos int) int {
	n, kind := openTagLen(text, pos)
	if kind != TokenOpenTagEcho {
		return -1
	}
	return n
}

// matchCloseTag includes a single directly following line terminator.
func matchCloseTag(text string, pos int) int {
	if !strings.HasPrefix(text[pos:], "?>") {
		return -1
	}
	rest := text[pos+2:]
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		return 4
	case strings.HasPrefix(rest, "\n"), strings.HasPrefix(rest, "\r"):
		return 3
	}
	return 2
}

// matchInlineHTML stops before the next opening tag without consuming it.
func matchInlineHTML(text string, pos int) int {
	for i := pos; i < len(text); i++ {
		if text[i] != '<' {
			continue
		}
		if n, _ := openTagLen(text, i); n > 0 {
			return i - pos
		}
	}
	return len(text) - pos
}

func matchHaltData(text string, pos int) int {
	if pos >= len(text) {
		return -1
	}
	return len(text) - pos
}

func matchWord(text string, pos int) int {
	if n := wordLen(text, pos); n > 0 {
		return n
	}
	return -1
}

// matchIdentifier accepts words that are not reserved. The soft keyword
// match is always accepted, readonly only when directly followed by "(".
func matchIdentifier(text string, pos int) int {
	n := wordLen(text, pos)
	if n == 0 {
		return -1
	}
	word := strings.ToLower(text[pos : pos+n])
	if !reserved[word] {
		return n
	}
	switch word {
	case "match":
		return n
	case "readonly":
		if pos+n < len(text) && text[pos+n] == '(' {
			return n
		}
	}
	return -1
}

// matchName accepts an unqualified identifier or a qualified, fully
// qualified or namespace-relative name. Segments after a separator may be
// reserved words.
func matchName(text string, pos int) int {
	i := pos
	qualified := false
	if i < len(text) && text[i] == '\\' {
		i++
		qualified = true
	} else if hasPrefixFold(text[i:], "namespace\\") && wordLen(text, i+10) > 0 {
		i += 10
		qualified = true
	}
	n := wordLen(text, i)
	if n == 0 {
		return -1
	}
	i += n
	for i+1 < len(text) && text[i] == '\\' {
		m := wordLen(text, i+1)
		if m == 0 {
			break
		}
		i += 1 + m
		qualified = true
	}
	if !qualified {
		return matchIdentifier(text, pos)
	}
	return i - pos
}

// matchDeclaredName is a name without a leading separator, as used by
// namespace declarations.
func matchDeclaredName(text string, pos int) int {
	if pos < len(text) && text[pos] == '\\' {
		return -1
	}
	if hasPrefixFold(text[pos:], "namespace\\") {
		return -1
	}
	return matchName(text, pos)
}

func matchVariable(text string, pos int) int {
	if text[pos] != '$' {
		return -1
	}
	n := wordLen(text, pos+1)
	if n == 0 {
		return -1
	}
	return n + 1
}

var punctuators = []string{
	"<<=", ">>=", "**=", "...", "<=>", "===", "!==", "??=", "?->",
	"<<", ">>", "**", "<=", ">=", "==", "!=", "<>", "+=", "-=", "*=", "/=",
	".=", "%=", "&=", "|=", "^=", "&&", "||", "??", "->", "=>", "::", "++",
	"--", "#[", "?>",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", ".", "&", "|", "^", "~",
	"?", ":", ";", ",", "(", ")", "[", "]", "{", "}", "@", "\\", "$",
}

// longestPunct returns the punctuator a maximal munch scanner would read at
// pos.
func longestPunct(text string, pos int) string {
	rest := text[pos:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p) {
			return p
		}
	}
	return ""
}

func matchCast(text string, pos int) int {
	if text[pos] != '(' {
		return -1
	}
	i := pos + 1
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	n := wordLen(text, i)
	if n == 0 {
		return -1
	}
	switch strings.ToLower(text[i : i+n]) {
	case "int", "integer", "bool", "boolean", "float", "double", "real",
		"string", "binary", "array", "object", "unset":
	default:
		return -1
	}
	i += n
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	if i >= len(text) || text[i] != ')' {
		return -1
	}
	return i + 1 - pos
}

func matchSingleQuoted(text string, pos int) int {
	i := pos
	if text[i] == 'b' || text[i] == 'B' {
		i++
	}
	if i >= len(text) || text[i] != '\'' {
		return -1
	}
	for i++; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '\'':
			return i + 1 - pos
		}
	}
	return -1
}

func matchDoubleQuoted(text string, pos int) int {
	i := pos
	if text[i] == 'b' || text[i] == 'B' {
		i++
	}
	if i >= len(text) || text[i] != '"' {
		return -1
	}
	end := scanInterpolated(text, i+1, '"')
	if end < 0 {
		return -1
	}
	return end - pos
}

func matchBacktick(text string, pos int) int {
	if text[pos] != '`' {
		return -1
	}
	end := scanInterpolated(text, pos+1, '`')
	if end < 0 {
		return -1
	}
	return end - pos
}

// scanInterpolated returns the offset just after the closing quote.
func scanInterpolated(text string, i int, quote byte) int {
	for i < len(text) {
		c := text[i]
		switch {
		case c == '\\':
			i += 2
		case c == quote:
			return i + 1
		case c == '{' && i+1 < len(text) && text[i+1] == '$':
			if i = skipBraces(text, i); i < 0 {
				return -1
			}
		case c == '$' && i+1 < len(text) && text[i+1] == '{':
			if i = skipBraces(text, i+1); i < 0 {
				return -1
			}
		default:
			i++
		}
	}
	return -1
}

// skipBraces skips the balanced braces opening at i, along with any quoted
// strings nested in them.
func skipBraces(text string, i int) int {
	depth := 0
	for i < len(text) {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '\'':
			n := matchSingleQuoted(text, i)
			if n < 0 {
				return -1
			}
			i += n
			continue
		case '"':
			end := scanInterpolated(text, i+1, '"')
			if end < 0 {
				return -1
			}
			i = end
			continue
		}
		i++
	}
	return -1
}

// matchStringChars reads literal characters of an interpolated string up
// to the next variable, "${" or "{$".
func matchStringChars(text string, pos int) int {
	i := pos
	for i < len(text) {
		c := text[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == '$' && i+1 < len(text) && (isWordStart(text[i+1]) || text[i+1] == '{') {
			break
		}
		if c == '{' && i+1 < len(text) && text[i+1] == '$' {
			break
		}
		i++
	}
	if i > len(text) {
		i = len(text)
	}
	if i == pos {
		return -1
	}
	return i - pos
}

type heredoc struct {
	label  string
	nowdoc bool
	open   string
	body   string
	close  string
}

// splitHeredoc takes apart a literal matched by matchHeredoc.
func splitHeredoc(lit string) (heredoc, bool) {
	var h heredoc
	i := 0
	if lit != "" && (lit[0] == 'b' || lit[0] == 'B') {
		i++
	}
	if !strings.HasPrefix(lit[i:], "<<<") {
		return h, false
	}
	i += 3
	for i < len(lit) && (lit[i] == ' ' || lit[i] == '\t') {
		i++
	}
	quote := byte(0)
	if i < len(lit) && (lit[i] == '"' || lit[i] == '\'') {
		quote = lit[i]
		i++
	}
	n := wordLen(lit, i)
	if n == 0 {
		return h, false
	}
	h.label = lit[i : i+n]
	h.nowdoc = quote == '\''
	i += n
	if quote != 0 {
		if i >= len(lit) || lit[i] != quote {
			return h, false
		}
		i++
	}
	switch {
	case strings.HasPrefix(lit[i:], "\r\n"):
		i += 2
	case strings.HasPrefix(lit[i:], "\n"), strings.HasPrefix(lit[i:], "\r"):
		i++
	default:
		return h, false
	}
	h.open = lit[:i]
	end, ok := closingLine(lit, i, h.label)
	if !ok || end != len(lit) {
		return h, false
	}
	closeStart := strings.LastIndexAny(lit[:end], "\r\n") + 1
	if closeStart <= i {
		h.close = lit[i:]
		return h, true
	}
	bodyEnd := closeStart - 1
	if lit[bodyEnd] == '\n' && bodyEnd > i && lit[bodyEnd-1] == '\r' {
		bodyEnd--
	}
	h.body = lit[i:bodyEnd]
	h.close = lit[bodyEnd:]
	return h, true
}

// closingLine finds the first line at or after from that starts, after
// indentation, with label not followed by a word byte. It returns the
// offset just past the label.
func closingLine(text string, from int, label string) (int, bool) {
	line := from
	for line <= len(text) {
		j := line
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		if strings.HasPrefix(text[j:], label) {
			end := j + len(label)
			if end >= len(text) || !peg.IsWordByte(text[end]) {
				return end, true
			}
		}
		next := strings.IndexAny(text[line:], "\r\n")
		if next < 0 {
			return 0, false
		}
		line += next
		if strings.HasPrefix(text[line:], "\r\n") {
			line += 2
		} else {
			line++
		}
	}
	return 0, false
}

func matchHeredoc(text string, pos int) int {
	i := pos
	if text[i] == 'b' || text[i] == 'B' {
		i++
	}
	if !strings.HasPrefix(text[i:], "<<<") {
		return -1
	}
	i += 3
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	quote := byte(0)
	if i < len(text) && (text[i] == '"' || text[i] == '\'') {
		quote = text[i]
		i++
	}
	n := wordLen(text, i)
	if n == 0 {
		return -1
	}
	label := text[i : i+n]
	i += n
	if quote != 0 {
		if i >= len(text) || text[i] != quote {
			return -1
		}
		i++
	}
	switch {
	case strings.HasPrefix(text[i:], "\r\n"):
		i += 2
	case strings.HasPrefix(text[i:], "\n"), strings.HasPrefix(text[i:], "\r"):
		i++
	default:
		return -1
	}
	end, ok := closingLine(text, i, label)
	if !ok {
		return -1
	}
	return end - pos
}
