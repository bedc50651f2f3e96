package parser

import (
	"strings"

	"github.com/dhamidi/phpast/peg"
)

type (
	Token       = peg.Token
	Trivia      = peg.Trivia
	Position    = peg.Position
	SyntaxError = peg.SyntaxError
)

// Node is an element of the tree. Leaves carry a Token and no children;
// every other node lists its tokens and sub-nodes in source order.
type Node struct {
	Kind     Kind
	Children []*Node
	Token    *Token
	Parent   *Node
}

type Span struct {
	Start Position
	End   Position
}

func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Tokens returns the leaf tokens of the subtree in source order.
func (n *Node) Tokens() []*Token {
	var toks []*Token
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Token != nil {
			toks = append(toks, cur.Token)
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return toks
}

// FirstToken returns the leftmost token of the subtree, or nil when it has
// none. Like Tokens it keeps its own stack.
func (n *Node) FirstToken() *Token {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Token != nil {
			return cur.Token
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return nil
}

// LastToken returns the rightmost token of the subtree, or nil.
func (n *Node) LastToken() *Token {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Token != nil {
			return cur.Token
		}
		stack = append(stack, cur.Children...)
	}
	return nil
}

// Span covers the node's tokens, excluding the trivia before the first.
func (n *Node) Span() Span {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return Span{}
	}
	return Span{Start: first.Pos, End: last.End()}
}

func (n *Node) Line() int {
	if tok := n.FirstToken(); tok != nil {
		return tok.Line()
	}
	return 0
}

func (n *Node) Column() int {
	if tok := n.FirstToken(); tok != nil {
		return tok.Column()
	}
	return 0
}

// Text reproduces the source of the subtree, trivia included.
func (n *Node) Text() string {
	var sb strings.Builder
	for _, tok := range n.Tokens() {
		for _, tr := range tok.Trivia {
			sb.WriteString(tr.Literal)
		}
		sb.WriteString(tok.Literal)
	}
	return sb.String()
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Is reports whether n is a token leaf spelled text, ignoring case.
func (n *Node) Is(text string) bool {
	return n != nil && n.Token != nil && strings.EqualFold(n.Token.Literal, text)
}

// Elements returns the elements of a separated list.
func (n *Node) Elements() []*Node {
	if n.Kind != KindSeparatedList {
		return nil
	}
	elems := make([]*Node, 0, (len(n.Children)+1)/2)
	for i := 0; i < len(n.Children); i += 2 {
		elems = append(elems, n.Children[i])
	}
	return elems
}

// Separators returns the separator tokens of a separated list, including a
// trailing one.
func (n *Node) Separators() []*Node {
	if n.Kind != KindSeparatedList {
		return nil
	}
	seps := make([]*Node, 0, len(n.Children)/2)
	for i := 1; i < len(n.Children); i += 2 {
		seps = append(seps, n.Children[i])
	}
	return seps
}

// List returns the first separated list among the node's children.
func (n *Node) List() *Node {
	return n.FirstChildOfKind(KindSeparatedList)
}

func (n *Node) IsBinary() bool {
	_, ok := binaryKinds[n.Kind]
	return ok
}

func (n *Node) IsAssignment() bool {
	_, ok := assignmentKinds[n.Kind]
	return ok
}

// Left, Operator and Right return the parts of a binary or assignment
// expression.
func (n *Node) Left() *Node {
	if !n.IsBinary() && !n.IsAssignment() {
		return nil
	}
	return n.Child(0)
}

func (n *Node) Operator() *Node {
	if !n.IsBinary() && !n.IsAssignment() {
		return nil
	}
	return n.Child(1)
}

func (n *Node) Right() *Node {
	if !n.IsBinary() && !n.IsAssignment() {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	var sb strings.Builder
	n.writeIndent(&sb, indent, showPositions)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		if span := n.Span(); span.Start.IsValid() {
			sb.WriteString(" [" + span.Start.String() + "-" + span.End.String() + "]")
		}
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.writeIndent(sb, indent+1, showPositions)
	}
}
