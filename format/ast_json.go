package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/phpast/php/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToAST(node), "", "  ")
}

// astNode is the shape shared by the JSON and YAML encoders.
type astNode struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Span     *astSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Token    string     `json:"token,omitempty" yaml:"token,omitempty"`
	Comments []string   `json:"comments,omitempty" yaml:"comments,omitempty"`
	Children []*astNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type astSpan struct {
	Start astPosition `json:"start" yaml:"start,flow"`
	End   astPosition `json:"end" yaml:"end,flow"`
}

type astPosition struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

func nodeToAST(n *parser.Node) *astNode {
	an := &astNode{
		Kind: n.Kind.String(),
	}

	if span := n.Span(); span.Start.IsValid() {
		an.Span = &astSpan{
			Start: astPosition{Line: span.Start.Line, Column: span.Start.Column, Offset: span.Start.Offset},
			End:   astPosition{Line: span.End.Line, Column: span.End.Column, Offset: span.End.Offset},
		}
	}

	if n.Token != nil {
		an.Token = n.Token.Literal
		for _, tr := range n.Token.Comments() {
			an.Comments = append(an.Comments, tr.Literal)
		}
	}

	if len(n.Children) > 0 {
		an.Children = make([]*astNode, len(n.Children))
		for i, child := range n.Children {
			an.Children[i] = nodeToAST(child)
		}
	}

	return an
}
