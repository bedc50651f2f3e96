package phpdoc

import (
	"strings"
	"unicode"
)

// Parser is a recursive-descent parser for PHPDoc comments.
type Parser struct {
	input []rune
	pos   int
	len   int
}

// Parse parses a doc comment, including its /** and */ delimiters.
func Parse(comment string) *DocComment {
	p := &Parser{
		input: []rune(comment),
	}
	p.len = len(p.input)
	return p.parseDocComment()
}

func (p *Parser) parseDocComment() *DocComment {
	p.skipCommentStart()

	doc := &DocComment{}
	doc.Body = p.parseContent(false)
	doc.BlockTags = p.parseBlockTags()

	return doc
}

// skipCommentStart skips the leading /** and the prefix of the first line.
func (p *Parser) skipCommentStart() {
	p.skipWhitespace()
	if p.match("/**") {
		p.advance(3)
	}
	p.skipLinePrefix()
}

// skipLinePrefix skips leading blanks and a single asterisk at the start
// of a line.
func (p *Parser) skipLinePrefix() {
	p.skipHorizontalWhitespace()
	if p.peek() == '*' && p.peekAt(1) != '/' {
		p.advance(1)
		if p.peek() == ' ' {
			p.advance(1)
		}
	}
}

// parseContent parses description text and inline tags. Inside an inline
// tag, parsing stops at the unmatched '}'.
func (p *Parser) parseContent(inInlineTag bool) []Node {
	var nodes []Node
	var textBuf strings.Builder
	depth := 0

	flushText := func() {
		if textBuf.Len() > 0 {
			nodes = append(nodes, Text{Content: textBuf.String()})
			textBuf.Reset()
		}
	}

	for p.pos < p.len {
		ch := p.peek()

		if ch == '*' && p.peekAt(1) == '/' {
			break
		}
		if !inInlineTag && p.isAtBlockTag() {
			break
		}

		switch ch {
		case '\n', '\r':
			textBuf.WriteRune('\n')
			p.advance(1)
			if ch == '\r' && p.peek() == '\n' {
				p.advance(1)
			}
			p.skipLinePrefix()

		case '{':
			if p.peekAt(1) == '@' {
				flushText()
				nodes = append(nodes, p.parseInlineTag())
				continue
			}
			if inInlineTag {
				depth++
			}
			textBuf.WriteRune(ch)
			p.advance(1)

		case '}':
			if inInlineTag {
				if depth == 0 {
					flushText()
					return nodes
				}
				depth--
			}
			textBuf.WriteRune(ch)
			p.advance(1)

		default:
			textBuf.WriteRune(ch)
			p.advance(1)
		}
	}

	flushText()
	return nodes
}

// isAtBlockTag reports whether an @ begins the current line, after the
// line prefix.
func (p *Parser) isAtBlockTag() bool {
	if p.peek() != '@' {
		return false
	}
	for i := p.pos - 1; i >= 0; i-- {
		switch ch := p.input[i]; ch {
		case '\n', '\r':
			return true
		case ' ', '\t':
		case '*':
			j := i - 1
			for j >= 0 && (p.input[j] == ' ' || p.input[j] == '\t') {
				j--
			}
			if j >= 0 && p.input[j] == '*' && j >= 1 && p.input[j-1] == '/' {
				// "/** @tag" on the opening line
				return true
			}
			return j < 0 || p.input[j] == '\n' || p.input[j] == '\r'
		default:
			return false
		}
	}
	return true
}

// parseInlineTag parses {@link ...}, {@see ...}, {@inheritDoc} and
// unknown inline tags.
func (p *Parser) parseInlineTag() Node {
	p.advance(2)

	name := p.readTagName()
	p.skipHorizontalWhitespace()

	switch strings.ToLower(name) {
	case "link", "see":
		ref := p.readReference()
		p.skipHorizontalWhitespace()
		label := p.parseContent(true)
		p.expectCloseBrace()
		return Link{Reference: ref, Label: label, See: strings.EqualFold(name, "see")}
	case "inheritdoc":
		p.readBalancedContent()
		return InheritDoc{}
	default:
		return UnknownInlineTag{Name: name, Content: p.readBalancedContent()}
	}
}

func (p *Parser) expectCloseBrace() {
	if p.peek() == '}' {
		p.advance(1)
	}
}

// parseBlockTags parses block tags until the end of the comment.
func (p *Parser) parseBlockTags() []Node {
	var tags []Node

	for p.pos < p.len {
		p.skipWhitespace()
		p.skipLinePrefix()

		if p.match("*/") || p.pos >= p.len {
			break
		}
		if p.peek() != '@' {
			p.advance(1)
			continue
		}

		p.advance(1)
		name := p.readTagName()
		if name == "" {
			continue
		}
		p.skipHorizontalWhitespace()

		var tag Node
		switch name {
		case "param":
			tag = p.parseParamTag()
		case "return", "returns":
			typ := p.readType()
			tag = Return{Type: typ, Description: p.parseBlockContent()}
		case "var":
			tag = p.parseVarTag()
		case "throws", "throw":
			typ := p.readType()
			tag = Throws{Type: typ, Description: p.parseBlockContent()}
		case "see":
			ref := p.readReference()
			tag = See{Reference: ref, Description: p.parseBlockContent()}
		case "since":
			version := p.readWord()
			tag = Since{Version: version, Description: p.parseBlockContent()}
		case "deprecated":
			tag = Deprecated{Description: p.parseBlockContent()}
		case "author":
			tag = Author{Name: p.parseBlockContent()}
		default:
			tag = UnknownBlockTag{Name: name, Content: p.parseBlockContent()}
		}
		tags = append(tags, tag)
	}

	return tags
}

// parseParamTag parses "@param [type] [&][...]$name [description]".
func (p *Parser) parseParamTag() Node {
	var param Param
	if !p.atVariable() {
		param.Type = p.readType()
		p.skipHorizontalWhitespace()
	}
	if p.peek() == '&' {
		param.ByRef = true
		p.advance(1)
	}
	if p.match("...") {
		param.Variadic = true
		p.advance(3)
	}
	if p.peek() == '$' {
		param.Name = p.readVariable()
	}
	p.skipHorizontalWhitespace()
	param.Description = p.parseBlockContent()
	return param
}

// parseVarTag parses "@var type [$name] [description]".
func (p *Parser) parseVarTag() Node {
	var v Var
	if !p.atVariable() {
		v.Type = p.readType()
		p.skipHorizontalWhitespace()
	}
	if p.peek() == '$' {
		v.Name = p.readVariable()
		p.skipHorizontalWhitespace()
	}
	v.Description = p.parseBlockContent()
	return v
}

func (p *Parser) parseBlockContent() []Node {
	p.skipHorizontalWhitespace()
	return p.parseContent(false)
}

func (p *Parser) atVariable() bool {
	return p.peek() == '$' || p.match("...") || (p.peek() == '&' && (p.peekAt(1) == '$' || p.peekAt(1) == '.'))
}

func (p *Parser) peek() rune {
	if p.pos >= p.len {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	pos := p.pos + offset
	if pos >= p.len || pos < 0 {
		return 0
	}
	return p.input[pos]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) match(s string) bool {
	i := p.pos
	for _, ch := range s {
		if i >= p.len || p.input[i] != ch {
			return false
		}
		i++
	}
	return true
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.len && unicode.IsSpace(p.peek()) {
		p.advance(1)
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

// readTagName reads a tag name such as "param" or "phpstan-return".
func (p *Parser) readTagName() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if !isNamePart(ch) && ch != '-' && ch != ':' && ch != '\\' {
			break
		}
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readVariable() string {
	start := p.pos
	p.advance(1)
	for p.pos < p.len && isNamePart(p.peek()) {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readWord() string {
	start := p.pos
	for p.pos < p.len && !unicode.IsSpace(p.peek()) && !p.match("*/") {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readReference reads an FQSEN like \Foo\Bar::baz() or a URL.
func (p *Parser) readReference() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if unicode.IsSpace(ch) || ch == '}' || p.match("*/") {
			break
		}
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readType reads a type expression. Blanks are allowed inside brackets,
// so "array<int, string>" and "callable(int): void" read as one type, as
// do unions written with blanks around the bar.
func (p *Parser) readType() string {
	var sb strings.Builder
	depth := 0
	for p.pos < p.len && !p.match("*/") {
		ch := p.peek()
		switch {
		case ch == '<' || ch == '(' || ch == '{' || ch == '[':
			depth++
		case ch == '>' || ch == ')' || ch == '}' || ch == ']':
			if depth == 0 {
				return sb.String()
			}
			depth--
		case ch == '\n' || ch == '\r':
			if depth == 0 {
				return sb.String()
			}
			p.advance(1)
			p.skipLinePrefix()
			sb.WriteRune(' ')
			continue
		case ch == ' ' || ch == '\t':
			if depth == 0 && !p.continuesType() {
				return sb.String()
			}
		}
		sb.WriteRune(ch)
		p.advance(1)
	}
	return sb.String()
}

// continuesType reports whether the blanks at pos are followed by a type
// operator, or follow one.
func (p *Parser) continuesType() bool {
	if p.pos > 0 {
		switch p.input[p.pos-1] {
		case '|', '&', ':', ',':
			return true
		}
	}
	i := p.pos
	for i < p.len && (p.input[i] == ' ' || p.input[i] == '\t') {
		i++
	}
	return i < p.len && (p.input[i] == '|' || (p.input[i] == '&' && i+1 < p.len && p.input[i+1] != '$' && p.input[i+1] != '.'))
}

// readBalancedContent reads up to the '}' closing an inline tag.
func (p *Parser) readBalancedContent() string {
	start := p.pos
	depth := 0
	for p.pos < p.len {
		switch p.peek() {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				content := string(p.input[start:p.pos])
				p.advance(1)
				return strings.TrimSpace(content)
			}
			depth--
		}
		p.advance(1)
	}
	return strings.TrimSpace(string(p.input[start:p.pos]))
}

func isNamePart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch >= 0x80
}
