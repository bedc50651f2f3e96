package phpdoc

import (
	"strings"

	"github.com/dhamidi/phpast/php/parser"
)

// Of returns the doc comment attached to a declaration: the last /** */
// comment before its first token. A property or constant inside a list
// shares the doc of the enclosing declaration. Of returns nil when there
// is none.
func Of(n *parser.Node) *DocComment {
	for ; n != nil; n = n.Parent {
		if tok := n.FirstToken(); tok != nil {
			if text := docTrivia(tok); text != "" {
				return Parse(text)
			}
		}
		switch n.Kind {
		case parser.KindVariableDeclaration, parser.KindConstantDeclaration, parser.KindSeparatedList:
		default:
			return nil
		}
	}
	return nil
}

func docTrivia(tok *parser.Token) string {
	comments := tok.Comments()
	for i := len(comments) - 1; i >= 0; i-- {
		if text := comments[i].Literal; strings.HasPrefix(text, "/**") && text != "/**/" {
			return text
		}
	}
	return ""
}
