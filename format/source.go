package format

import (
	"io"
	"strings"

	"github.com/dhamidi/phpast/peg"
	"github.com/dhamidi/phpast/php/parser"
)

// SourceEncoder prints a tree back as PHP source. With no options set the
// output is the parsed input, byte for byte. The options only touch
// trivia, so string contents, heredoc bodies and inline HTML are never
// changed.
type SourceEncoder struct {
	w io.Writer

	// TrimTrailingSpace removes blanks at the end of lines.
	TrimTrailingSpace bool
	// MaxBlankLines collapses longer runs of empty lines. Zero keeps them.
	MaxBlankLines int
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w}
}

func (e *SourceEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SourceEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	var sb strings.Builder
	for _, tok := range node.Tokens() {
		for _, tr := range tok.Trivia {
			sb.WriteString(e.trivia(tr))
		}
		sb.WriteString(tok.Literal)
	}
	return []byte(sb.String()), nil
}

func (e *SourceEncoder) trivia(tr parser.Trivia) string {
	text := tr.Literal
	if e.TrimTrailingSpace {
		text = trimLineEnds(text)
		if strings.HasPrefix(text, "//") || strings.HasPrefix(text, "#") {
			text = strings.TrimRight(text, " \t")
		}
	}
	if e.MaxBlankLines > 0 && tr.Kind == peg.TriviaWhitespace {
		text = collapseBlankLines(text, e.MaxBlankLines)
	}
	return text
}

// trimLineEnds drops spaces and tabs that precede a line break.
func trimLineEnds(s string) string {
	if !strings.ContainsAny(s, "\n\r") {
		return s
	}
	var sb strings.Builder
	pending := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t':
			pending++
			continue
		case '\n', '\r':
			pending = 0
			sb.WriteByte(c)
		default:
			sb.WriteString(s[i-pending : i])
			pending = 0
			sb.WriteByte(c)
		}
	}
	sb.WriteString(s[len(s)-pending:])
	return sb.String()
}

// collapseBlankLines keeps at most max empty lines in a run of
// whitespace. The indentation after the last line break is kept.
func collapseBlankLines(s string, max int) string {
	breaks := strings.Count(s, "\n")
	if breaks <= max+1 {
		return s
	}
	lineEnd := "\n"
	if strings.Contains(s, "\r\n") {
		lineEnd = "\r\n"
	}
	indent := s[strings.LastIndexByte(s, '\n')+1:]
	return strings.Repeat(lineEnd, max+1) + indent
}
