package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/phpast/php/parser"
)

// TreeEncoder writes the indented dump of Node.String.
type TreeEncoder struct {
	w         io.Writer
	Positions bool
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	if e.Positions {
		return []byte(node.StringWithPositions()), nil
	}
	return []byte(node.String()), nil
}

// TokenEncoder lists every token of a tree, one per line, preceded by
// the trivia attached to it.
type TokenEncoder struct {
	w io.Writer
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	var sb strings.Builder
	for _, tok := range node.Tokens() {
		for _, tr := range tok.Trivia {
			fmt.Fprintf(&sb, "%s\t%s\t%q\n", tr.Pos, tr.Kind, tr.Literal)
		}
		fmt.Fprintf(&sb, "%s\t%s\t%q\n", tok.Pos, parser.TokenKindName(tok.Kind), tok.Literal)
	}
	return []byte(sb.String()), nil
}
