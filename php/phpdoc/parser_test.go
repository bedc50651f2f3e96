package phpdoc

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/dhamidi/phpast/php/parser"
)

func TestParseSimpleText(t *testing.T) {
	doc := Parse("/** Simple text. */")
	assert.DeepEqual(t, doc.Body, []Node{Text{Content: "Simple text. "}})
	assert.Assert(t, is.Len(doc.BlockTags, 0))
}

const addDoc = `/**
 * Adds two numbers.
 *
 * Longer text with a {@link https://php.net manual link}.
 *
 * @param int|float $a The first.
 * @param int ...$rest
 * @return int|float the sum
 * @throws \InvalidArgumentException when empty
 * @phpstan-pure
 */`

func TestParseBlockTags(t *testing.T) {
	doc := Parse(addDoc)

	params := Tags[Param](doc)
	assert.Assert(t, is.Len(params, 2))
	assert.Equal(t, params[0].Type, "int|float")
	assert.Equal(t, params[0].Name, "$a")
	assert.Equal(t, params[1].Name, "$rest")
	assert.Assert(t, params[1].Variadic)

	returns := Tags[Return](doc)
	assert.Assert(t, is.Len(returns, 1))
	assert.Equal(t, returns[0].Type, "int|float")

	throws := Tags[Throws](doc)
	assert.Assert(t, is.Len(throws, 1))
	assert.Equal(t, throws[0].Type, `\InvalidArgumentException`)

	unknown := Tags[UnknownBlockTag](doc)
	assert.Assert(t, is.Len(unknown, 1))
	assert.Equal(t, unknown[0].Name, "phpstan-pure")
}

func TestSummaryAndMarkdown(t *testing.T) {
	doc := Parse(addDoc)
	assert.Equal(t, Summary(doc), "Adds two numbers.")

	expected := "Adds two numbers.\n\n" +
		"Longer text with a [manual link](https://php.net).\n\n" +
		"_@param_ `int|float $a` The first.\n\n" +
		"_@param_ `int ...$rest`\n\n" +
		"_@return_ `int|float` the sum\n\n" +
		"_@throws_ `\\InvalidArgumentException` when empty\n\n" +
		"_@phpstan-pure_"
	assert.Equal(t, Markdown(doc), expected)
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		name     string
		comment  string
		expected Node
	}{
		{
			name:     "generic array",
			comment:  "/** @param array<int, string> $map */",
			expected: Param{Type: "array<int, string>", Name: "$map"},
		},
		{
			name:     "callable",
			comment:  "/** @return callable(int): void */",
			expected: Return{Type: "callable(int): void"},
		},
		{
			name:     "spaced union",
			comment:  "/** @var int | null $x */",
			expected: Var{Type: "int | null", Name: "$x"},
		},
		{
			name:     "array shape",
			comment:  "/** @var array{a: int, b?: string} */",
			expected: Var{Type: "array{a: int, b?: string}"},
		},
		{
			name:     "by reference without type",
			comment:  "/** @param &$out */",
			expected: Param{Name: "$out", ByRef: true},
		},
		{
			name:     "type only",
			comment:  "/** @var Foo */",
			expected: Var{Type: "Foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.comment)
			assert.Assert(t, is.Len(doc.Body, 0))
			assert.DeepEqual(t, doc.BlockTags, []Node{tt.expected})
		})
	}
}

func TestParseInlineTags(t *testing.T) {
	doc := Parse("/** {@inheritDoc} */")
	assert.DeepEqual(t, doc.Body, []Node{InheritDoc{}, Text{Content: " "}})

	doc = Parse("/** See {@see \\Foo::bar()} and {@example x.php}. */")
	assert.DeepEqual(t, doc.Body, []Node{
		Text{Content: "See "},
		Link{Reference: `\Foo::bar()`, See: true},
		Text{Content: " and "},
		UnknownInlineTag{Name: "example", Content: "x.php"},
		Text{Content: ". "},
	})
	assert.Equal(t, Summary(doc), `See \Foo::bar() and x.php.`)
}

func TestOf(t *testing.T) {
	src := `<?php
/** Greets. */
function hello() {}

function bare() {}

class A {
    /** @var int */
    public $a, $b;
    // not a doc
    const C = 1;
}
`
	root, err := parser.ParseString(src)
	assert.NilError(t, err)

	byName := map[string]*parser.Node{}
	parser.Walk(root, func(n *parser.Node) bool {
		switch n.Kind {
		case parser.KindFunctionDeclaration, parser.KindConstantDeclaration:
			byName[n.FirstChildOfKind(parser.KindName).TokenLiteral()] = n
		case parser.KindVariableDeclaration:
			byName[n.FirstChildOfKind(parser.KindVariableIdentifier).TokenLiteral()] = n
		}
		return true
	})

	assert.Equal(t, Summary(Of(byName["hello"])), "Greets.")
	assert.Assert(t, Of(byName["bare"]) == nil)
	assert.Assert(t, Of(byName["C"]) == nil)

	for _, name := range []string{"$a", "$b"} {
		vars := Tags[Var](Of(byName[name]))
		assert.Assert(t, is.Len(vars, 1), name)
		assert.Equal(t, vars[0].Type, "int")
	}
}
