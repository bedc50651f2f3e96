package parser

import (
	"fmt"
)

// finalize walks the tree breadth first with an explicit queue, setting
// parent references. Expression statements directly after "<?=" become
// echo tag statements. Constructs that only make sense in a context known
// after parsing are rejected here.
func finalize(root *Node, file string) error {
	if err := check(root, file); err != nil {
		return err
	}
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for i, child := range n.Children {
			child.Parent = n
			if child.Kind == KindExpressionStatement && i > 0 && afterEchoTag(n.Children[i-1]) {
				child.Kind = KindEchoTagStatement
			}
			if err := check(child, file); err != nil {
				return err
			}
			queue = append(queue, child)
		}
	}
	return nil
}

func afterEchoTag(prev *Node) bool {
	tok := prev.LastToken()
	return tok != nil && tok.Kind == TokenOpenTagEcho
}

func check(n *Node, file string) error {
	switch n.Kind {
	case KindExpressionStatement:
		if list := n.List(); list != nil {
			return errorAt(file, list.Separators()[0].Token, "unexpected ',', expected ';'")
		}
	case KindArrayLiteral:
		if list := n.List(); list != nil {
			for _, elem := range list.Elements() {
				if elem.Kind == KindEmptyArrayElement {
					return errorAt(file, n.FirstToken(), "cannot use empty array elements in arrays")
				}
			}
		}
	}
	return nil
}

func errorAt(file string, tok *Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		File:    file,
		Line:    tok.Line(),
		Column:  tok.Column(),
		Offset:  tok.Offset(),
		Message: fmt.Sprintf(format, args...),
	}
}
