package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/phpast/php/parser"
)

// Symbol is a named declaration found in a tree.
type Symbol struct {
	Kind     string
	Name     string
	Node     *parser.Node
	Children []Symbol
}

// Outline returns the declarations of a tree: namespaces, functions,
// class-likes and their members.
func Outline(root *parser.Node) []Symbol {
	var out []Symbol
	for _, child := range root.Children {
		syms := symbolsOf(child)
		if syms == nil {
			out = append(out, Outline(child)...)
			continue
		}
		out = append(out, syms...)
	}
	return out
}

func symbolsOf(n *parser.Node) []Symbol {
	switch n.Kind {
	case parser.KindNamespaceStatement:
		name := n.FirstChildOfKind(parser.KindNamespaceName)
		if name == nil {
			name = n.FirstChildOfKind(parser.KindName)
		}
		return []Symbol{{Kind: "namespace", Name: literal(name), Node: n, Children: Outline(n)}}
	case parser.KindFunctionDeclaration:
		return []Symbol{named("function", n)}
	case parser.KindMethodDeclaration:
		return []Symbol{named("method", n)}
	case parser.KindClassDeclaration:
		return []Symbol{named("class", n)}
	case parser.KindInterfaceDeclaration:
		return []Symbol{named("interface", n)}
	case parser.KindTraitDeclaration:
		return []Symbol{named("trait", n)}
	case parser.KindEnumDeclaration:
		return []Symbol{named("enum", n)}
	case parser.KindAnonymousClass:
		return []Symbol{{Kind: "class", Name: "class@anonymous", Node: n, Children: Outline(n)}}
	case parser.KindEnumCase:
		return []Symbol{{Kind: "case", Name: literal(n.FirstChildOfKind(parser.KindName)), Node: n}}
	case parser.KindPropertyDeclaration:
		var out []Symbol
		for _, decl := range declarations(n, parser.KindVariableDeclaration) {
			name := decl.FirstChildOfKind(parser.KindVariableIdentifier)
			out = append(out, Symbol{Kind: "property", Name: literal(name), Node: decl})
		}
		return out
	case parser.KindClassConstantDeclaration, parser.KindConstantStatement:
		var out []Symbol
		for _, decl := range declarations(n, parser.KindConstantDeclaration) {
			out = append(out, Symbol{Kind: "constant", Name: literal(decl.FirstChildOfKind(parser.KindName)), Node: decl})
		}
		return out
	}
	return nil
}

func named(kind string, n *parser.Node) Symbol {
	return Symbol{Kind: kind, Name: literal(n.FirstChildOfKind(parser.KindName)), Node: n, Children: Outline(n)}
}

// declarations returns the children of kind, looking inside a separated
// list.
func declarations(n *parser.Node, kind parser.Kind) []*parser.Node {
	if decl := n.FirstChildOfKind(kind); decl != nil {
		return []*parser.Node{decl}
	}
	if list := n.FirstChildOfKind(parser.KindSeparatedList); list != nil {
		return list.Elements()
	}
	return nil
}

func literal(n *parser.Node) string {
	if n == nil {
		return ""
	}
	return n.TokenLiteral()
}

// LineEncoder writes the outline of a tree, one declaration per line:
// kind, qualified name and position, separated by tabs.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	var sb strings.Builder
	writeSymbols(&sb, Outline(node), "")
	return []byte(sb.String()), nil
}

func writeSymbols(sb *strings.Builder, syms []Symbol, prefix string) {
	for _, sym := range syms {
		name := prefix + sym.Name
		fmt.Fprintf(sb, "%s\t%s\t%d:%d\n", sym.Kind, name, sym.Node.Line(), sym.Node.Column())

		sep := "::"
		if sym.Kind == "namespace" {
			sep = "\\"
		} else if sym.Kind == "function" || sym.Kind == "method" {
			sep = "/"
		}
		writeSymbols(sb, sym.Children, name+sep)
	}
}
