package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestWalkOrder(t *testing.T) {
	tree := mustExpr(t, "f($a, $b)")
	var vars []string
	Walk(tree, func(n *Node) bool {
		if n.Kind == KindVariableIdentifier {
			vars = append(vars, n.TokenLiteral())
		}
		return true
	})
	assert.DeepEqual(t, vars, []string{"$a", "$b"})
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := mustParse(t, "<?php function f() { $inner; } $outer;")
	var seen []string
	Walk(tree, func(n *Node) bool {
		if n.Kind == KindFunctionDeclaration {
			return false
		}
		if n.Kind == KindVariableIdentifier {
			seen = append(seen, n.TokenLiteral())
		}
		return true
	})
	assert.DeepEqual(t, seen, []string{"$outer"})
}

func TestWalkDeepNesting(t *testing.T) {
	src := strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500)
	tree := mustExpr(t, src)
	assert.Assert(t, is.Len(Inspect(tree, KindParenthesizedExpression), 500))
}

func TestFirstAndLastTokenDeepTree(t *testing.T) {
	first := &Token{Literal: "a"}
	last := &Token{Literal: "b"}
	n := &Node{Kind: KindPlus, Children: []*Node{
		{Kind: KindSeparatedList},
		{Kind: KindToken, Token: first},
		{Kind: KindToken, Token: last},
		{Kind: KindSeparatedList},
	}}
	for i := 0; i < 100000; i++ {
		n = &Node{Kind: KindParenthesizedExpression, Children: []*Node{{Kind: KindSeparatedList}, n, {Kind: KindSeparatedList}}}
	}
	assert.Equal(t, n.FirstToken(), first)
	assert.Equal(t, n.LastToken(), last)
	assert.Assert(t, (&Node{Kind: KindSeparatedList}).FirstToken() == nil)
	assert.Assert(t, (&Node{Kind: KindSeparatedList}).LastToken() == nil)
}

func TestDispatcher(t *testing.T) {
	tree := mustParse(t, "<?php\ninclude 'a.php';\nfoo(bar());\nrequire_once $x;\n")
	var calls, includes []int
	NewDispatcher().
		On(KindFunctionCall, func(n *Node) { calls = append(calls, n.Line()) }).
		On(KindIncludeExpression, func(n *Node) { includes = append(includes, n.Line()) }).
		Dispatch(tree)
	assert.DeepEqual(t, calls, []int{3, 3})
	assert.DeepEqual(t, includes, []int{2, 4})
}

func TestMarshalJSON(t *testing.T) {
	tree := mustExpr(t, "/* c */ $a + 1")
	data, err := json.Marshal(tree)
	assert.NilError(t, err)

	var got struct {
		Kind     string
		Span     struct{ Start struct{ Line, Column int } }
		Children []struct {
			Kind     string
			Token    string
			Comments []string
		}
	}
	assert.NilError(t, json.Unmarshal(data, &got))
	assert.Equal(t, got.Kind, "Plus")
	assert.Equal(t, got.Span.Start.Column, 9)
	assert.Assert(t, is.Len(got.Children, 3))
	assert.Equal(t, got.Children[0].Token, "$a")
	assert.DeepEqual(t, got.Children[0].Comments, []string{"/* c */"})
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		name := k.String()
		back, ok := KindByName(name)
		assert.Assert(t, ok, name)
		assert.Equal(t, back, k)
	}
	_, ok := KindByName("NoSuchKind")
	assert.Assert(t, !ok)
}
