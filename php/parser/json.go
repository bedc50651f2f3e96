package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Comments []string    `json:"comments,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

// toJSON converts the tree without recursing into Parent.
func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
	}

	if span := n.Span(); span.Start.IsValid() {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Line: span.Start.Line, Column: span.Start.Column, Offset: span.Start.Offset},
			End:   jsonPosition{Line: span.End.Line, Column: span.End.Column, Offset: span.End.Offset},
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
		for _, tr := range n.Token.Comments() {
			jn.Comments = append(jn.Comments, tr.Literal)
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
