package parser

import (
	"errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func mustParse(t *testing.T, src string, opts ...Option) *Node {
	t.Helper()
	tree, err := ParseString(src, opts...)
	assert.NilError(t, err, "source:\n%s", src)
	return tree
}

func mustExpr(t *testing.T, src string) *Node {
	t.Helper()
	tree, err := ParseExpression(src)
	assert.NilError(t, err, "expression: %s", src)
	return tree
}

func mustStmt(t *testing.T, src string) *Node {
	t.Helper()
	tree, err := ParseStatement(src)
	assert.NilError(t, err, "statement: %s", src)
	return tree
}

func kinds(root *Node) []Kind {
	var out []Kind
	Walk(root, func(n *Node) bool {
		out = append(out, n.Kind)
		return true
	})
	return out
}

func TestPrecedence(t *testing.T) {
	tree := mustExpr(t, "1 + 2 * 3")
	assert.Equal(t, tree.Kind, KindPlus)
	assert.Equal(t, tree.Left().Kind, KindIntegerLiteral)
	assert.Equal(t, tree.Operator().TokenLiteral(), "+")
	assert.Equal(t, tree.Right().Kind, KindMultiply)
}

func TestPrecedenceLadder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 * 2 + 3", "Plus"},
		{"1 + 2 . 'x'", "Concatenation"},
		{"'x' . 1 << 2", "Concatenation"},
		{"1 < 2 == true", "EqualTo"},
		{"$a && $b || $c", "ConditionalOr"},
		{"$a ?? $b ?: $c", "ConditionalExpression"},
		{"$a = 1 and $b = 2", "AlternativeConditionalAnd"},
		{"$a or $b xor $c", "AlternativeConditionalOr"},
		{"!$a instanceof B", "LogicalComplement"},
		{"-2 ** 2", "UnaryMinus"},
		{"$a & $b | $c ^ $d", "BitwiseOr"},
		{"$x = $y += 3", "Assignment"},
		{"$a ?? $b ?? $c", "NullCoalescing"},
		{"(int) $a + 1", "Plus"},
		{"@foo() . 'x'", "Concatenation"},
		{"clone $a->b", "CloneExpression"},
		{"new Foo()->bar()", "FunctionCall"},
		{"print $a . $b", "PrintExpression"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := mustExpr(t, tt.input)
			assert.Equal(t, tree.Kind.String(), tt.want, tree.String())
		})
	}
}

func TestRightAssociativity(t *testing.T) {
	tree := mustExpr(t, "2 ** 3 ** 2")
	assert.Equal(t, tree.Kind, KindPower)
	assert.Equal(t, tree.Left().TokenLiteral(), "2")
	right := tree.Right()
	assert.Equal(t, right.Kind, KindPower)
	assert.Equal(t, right.Left().TokenLiteral(), "3")
	assert.Equal(t, right.Right().TokenLiteral(), "2")

	tree = mustExpr(t, "$a ?? $b ?? $c")
	assert.Equal(t, tree.Left().Kind, KindVariableIdentifier)
	assert.Equal(t, tree.Right().Kind, KindNullCoalescing)
}

func TestNewExpressionHead(t *testing.T) {
	tree := mustExpr(t, "new Foo(1)->bar()")
	assert.Equal(t, tree.Kind, KindFunctionCall)
	access := tree.Children[0]
	assert.Equal(t, access.Kind, KindObjectMemberAccess)

	newExpr := access.Children[0]
	assert.Equal(t, newExpr.Kind, KindNewExpression)
	var kinds []Kind
	for _, child := range newExpr.Children {
		kinds = append(kinds, child.Kind)
	}
	assert.DeepEqual(t, kinds, []Kind{KindToken, KindName, KindArguments})
	assert.Equal(t, newExpr.Text(), "new Foo(1)")

	tree = mustExpr(t, "new $cls")
	assert.Equal(t, tree.Kind, KindNewExpression)
	assert.Equal(t, tree.Span().End.Column, 9)
}

func TestLeftAssociativity(t *testing.T) {
	tree := mustExpr(t, "1 - 2 - 3")
	assert.Equal(t, tree.Kind, KindMinus)
	assert.Equal(t, tree.Left().Kind, KindMinus)
	assert.Equal(t, tree.Right().TokenLiteral(), "3")

	tree = mustExpr(t, "$a ? 1 : ($b ? 2 : 3)")
	assert.Equal(t, tree.Kind, KindConditionalExpression)
}

func TestTrailingComma(t *testing.T) {
	call := mustExpr(t, "f(1, 2,)")
	assert.Equal(t, call.Kind, KindFunctionCall)
	args := call.FirstChildOfKind(KindArguments)
	assert.Assert(t, args != nil)
	list := args.List()
	assert.Assert(t, is.Len(list.Elements(), 2))
	assert.Assert(t, is.Len(list.Separators(), 2))

	call = mustExpr(t, "f()")
	assert.Assert(t, is.Len(call.FirstChildOfKind(KindArguments).List().Elements(), 0))
}

func TestContextualKeyword(t *testing.T) {
	fn := mustStmt(t, "function readonly() {}")
	assert.Equal(t, fn.Kind, KindFunctionDeclaration)
	assert.Equal(t, fn.FirstChildOfKind(KindName).TokenLiteral(), "readonly")

	prop, err := ParseClassMember("public readonly int $x;")
	assert.NilError(t, err)
	assert.Equal(t, prop.Kind, KindPropertyDeclaration)
	modifier := prop.Child(1)
	assert.Equal(t, modifier.Kind, KindToken)
	assert.Equal(t, modifier.Token.Kind, TokenKeyword)
	assert.Equal(t, modifier.TokenLiteral(), "readonly")
	assert.Equal(t, prop.Child(2).Kind, KindType)

	call := mustExpr(t, "match($x)")
	assert.Equal(t, call.Kind, KindFunctionCall)
	m := mustExpr(t, "match($x) { 1, 2 => 'a', default => 'b' }")
	assert.Equal(t, m.Kind, KindMatchExpression)
	assert.Assert(t, is.Len(m.List().Elements(), 2))
}

func TestDestructuringHoles(t *testing.T) {
	stmt := mustStmt(t, "[, $a, , $b] = $arr;")
	assert.Equal(t, stmt.Kind, KindExpressionStatement)
	assign := stmt.Child(0)
	assert.Equal(t, assign.Kind, KindAssignment)
	target := assign.Left()
	assert.Equal(t, target.Kind, KindArrayDestructuring)
	slots := target.List().Elements()
	assert.Assert(t, is.Len(slots, 4))
	assert.Equal(t, slots[0].Kind, KindEmptyArrayElement)
	assert.Equal(t, slots[1].TokenLiteral(), "$a")
	assert.Equal(t, slots[2].Kind, KindEmptyArrayElement)
	assert.Equal(t, slots[3].TokenLiteral(), "$b")
	assert.Equal(t, stmt.Text(), "[, $a, , $b] = $arr;")

	list := mustStmt(t, "list($a, list(, $b)) = $c;").Child(0).Left()
	assert.Equal(t, list.Kind, KindListExpression)
	inner := list.List().Elements()[1]
	assert.Equal(t, inner.Kind, KindListExpression)
	assert.Equal(t, inner.List().Elements()[0].Kind, KindEmptyArrayElement)

	loop := mustStmt(t, "foreach ($rows as $k => [, $v]) {}")
	assert.Equal(t, loop.Kind, KindForeachStatement)
	assert.Assert(t, loop.FirstChildOfKind(KindArrayDestructuring) != nil)
}

func TestHeredocLineAccuracy(t *testing.T) {
	src := "<?php\n" +
		"$a = 1;\n" +
		"$b = 2;\n" +
		"$c = 3;\n" +
		"$x = <<<EOT\n" +
		"first\n" +
		"second {$name}\n" +
		"EOT;\n"
	tree := mustParse(t, src)
	heredocs := Inspect(tree, KindHeredocLiteral)
	assert.Assert(t, is.Len(heredocs, 1))
	assert.Equal(t, heredocs[0].Line(), 5)

	vars := Inspect(tree, KindEncapsedComplexVariable)
	assert.Assert(t, is.Len(vars, 1))
	assert.Equal(t, vars[0].Line(), 7)
	name := vars[0].FirstChildOfKind(KindVariableIdentifier)
	assert.Equal(t, name.TokenLiteral(), "$name")
	assert.Equal(t, name.Line(), 7)
	assert.Equal(t, name.Column(), 9)
	assert.Equal(t, name.Token.Offset(), strings.Index(src, "$name"))
	assert.Equal(t, tree.Text(), src)
}

func TestNowdocIsNotInterpolated(t *testing.T) {
	tree := mustExpr(t, "<<<'EOT'\n  {$a} $b\n  EOT")
	assert.Equal(t, tree.Kind, KindNowdocLiteral)
	body := tree.FirstChildOfKind(KindStringContent)
	assert.Equal(t, body.TokenLiteral(), "  {$a} $b")
	assert.Equal(t, body.Line(), 2)
}

func TestInterpolation(t *testing.T) {
	tests := []struct {
		input string
		parts []Kind
	}{
		{`"plain"`, nil},
		{`"a $b c"`, []Kind{KindStringContent, KindVariableIdentifier, KindStringContent}},
		{`"$a[0]"`, []Kind{KindArrayAccess}},
		{`"$a[key]"`, []Kind{KindArrayAccess}},
		{`"$a[-1]"`, []Kind{KindArrayAccess}},
		{`"$a->b->c"`, []Kind{KindObjectMemberAccess, KindStringContent}},
		{`"$a?->b"`, []Kind{KindNullsafeMemberAccess}},
		{`"${a}"`, []Kind{KindEncapsedSemiComplexVariable}},
		{`"{$a->b['c']}"`, []Kind{KindEncapsedComplexVariable}},
		{`"cost: $ 5 { x }"`, nil},
		{"`ls $dir`", []Kind{KindStringContent, KindVariableIdentifier}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := mustExpr(t, tt.input)
			assert.Equal(t, tree.Text(), tt.input)
			if tt.parts == nil {
				assert.Equal(t, tree.Kind, KindStringLiteral)
				return
			}
			var got []Kind
			for _, child := range tree.Children[1 : len(tree.Children)-1] {
				got = append(got, child.Kind)
			}
			assert.DeepEqual(t, got, tt.parts)
		})
	}
}

func TestEchoTag(t *testing.T) {
	src := "<p><?= $a, $b ?></p>\n<?= $c ?>"
	tree := mustParse(t, src)
	echoes := Inspect(tree, KindEchoTagStatement)
	assert.Assert(t, is.Len(echoes, 2))
	assert.Assert(t, is.Len(echoes[0].List().Elements(), 2))
	assert.Assert(t, is.Len(Inspect(tree, KindExpressionStatement), 0))
	assert.Equal(t, tree.Text(), src)

	for _, src := range []string{"<?= $a, $b; ?>", "<p><?= $a, $b"} {
		tree := mustParse(t, src)
		echoes := Inspect(tree, KindEchoTagStatement)
		assert.Assert(t, is.Len(echoes, 1), src)
		assert.Assert(t, is.Len(echoes[0].List().Elements(), 2), src)
		assert.Equal(t, tree.Text(), src)
	}

	_, err := ParseString("<?php $a, $b;")
	assert.ErrorContains(t, err, "unexpected ','")
}

func TestParents(t *testing.T) {
	tree := mustParse(t, "<?php\nclass A { function f() { return $x + 1; } }\n")
	assert.Assert(t, tree.Parent == nil)
	Walk(tree, func(n *Node) bool {
		for _, child := range n.Children {
			assert.Equal(t, child.Parent, n)
		}
		return true
	})
	plus := Inspect(tree, KindPlus)[0]
	assert.Equal(t, plus.Parent.Kind, KindReturnStatement)
}

func TestPositions(t *testing.T) {
	tree := mustParse(t, "\ufeff<?php $a;")
	v := Inspect(tree, KindVariableIdentifier)[0]
	assert.Equal(t, v.Line(), 1)
	assert.Equal(t, v.Column(), 7)
	assert.Equal(t, v.Token.Offset(), 9)

	tree = mustParse(t, "$b;", WithEntry(EntryStatement), WithStartLine(10), WithStartColumn(5), WithOffset(100))
	v = Inspect(tree, KindVariableIdentifier)[0]
	assert.Equal(t, v.Line(), 10)
	assert.Equal(t, v.Column(), 5)
	assert.Equal(t, v.Token.Offset(), 100)
}

func TestComments(t *testing.T) {
	tree := mustParse(t, "<?php\n// one\n/** two */\n#[A]\nfunction f() {} # three\n")
	fn := Inspect(tree, KindFunctionDeclaration)[0]
	comments := fn.FirstToken().Comments()
	assert.Assert(t, is.Len(comments, 2))
	assert.Equal(t, comments[0].Literal, "// one")
	assert.Equal(t, comments[1].Literal, "/** two */")
	assert.Assert(t, fn.FirstChildOfKind(KindAttributeGroup) != nil)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		message string
	}{
		{"missing semicolon", "<?php\n$a = 1\n$b = 2;", 3, "unexpected"},
		{"unclosed block", "<?php\nif ($a) {\n", 3, "expected"},
		{"promotion outside constructor", "<?php\nclass A {\n  function f(private $x) {}\n}", 3, "promoted property"},
		{"promotion in function", "<?php function f(public int $x) {}", 1, "promoted property"},
		{"nested ternary", "<?php $a ? 1 : $b ? 2 : 3;", 1, "unparenthesized"},
		{"readonly without type", "<?php class A {\n public readonly $x;\n}", 2, "must have a type"},
		{"try without catch", "<?php try {}\n$a;", 1, "without catch or finally"},
		{"array hole", "<?php\n$a = [1, , 2];", 2, "empty array elements"},
		{"comma statement", "<?php $a, $b ?>", 1, "unexpected ','"},
		{"bad interpolation", "<?php\n$a = \"x\n{$b +}\";", 3, "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input, WithFile("test.php"))
			assert.ErrorContains(t, err, tt.message)
			var se *SyntaxError
			assert.Assert(t, errors.As(err, &se))
			assert.Equal(t, se.File, "test.php")
			assert.Equal(t, se.Line, tt.line, err.Error())
		})
	}
}

func TestConstructorPromotion(t *testing.T) {
	src := "<?php class A { public function __CONSTRUCT(private(set) int $x, public readonly ?B $b = null) {} }"
	tree := mustParse(t, src)
	params := Inspect(tree, KindParameter)
	assert.Assert(t, is.Len(params, 2))
	assert.Assert(t, isPromoted(params[0]))
	assert.Assert(t, isPromoted(params[1]))
}

func TestTypes(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"function f(int $a) {}", KindType},
		{"function f(?int $a) {}", KindNullableType},
		{"function f(int|string $a) {}", KindUnionType},
		{"function f(A&B $a) {}", KindIntersectionType},
		{"function f((A&B)|null $a) {}", KindUnionType},
		{"function f(A & $a) {}", KindType},
		{"function f(A &...$a) {}", KindType},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			param := Inspect(mustStmt(t, tt.input), KindParameter)[0]
			assert.Equal(t, param.Child(0).Kind, tt.kind, param.String())
		})
	}

	dnf := Inspect(mustStmt(t, "function f((A&B)|null $a) {}"), KindDNFTypeGroup)
	assert.Assert(t, is.Len(dnf, 1))
}

func TestAlternativeSyntax(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"if ($a): echo 1; elseif ($b): echo 2; else: echo 3; endif;", KindAlternativeIfStatement},
		{"while ($a): $a--; endwhile;", KindAlternativeWhileStatement},
		{"for ($i = 0; $i < 3; $i++): endfor;", KindAlternativeForStatement},
		{"foreach ($a as $b): endforeach;", KindAlternativeForeachStatement},
		{"switch ($a): case 1: break; endswitch;", KindAlternativeSwitchStatement},
		{"declare(ticks=1): enddeclare;", KindAlternativeDeclareStatement},
		{"if ($a) echo 1; else echo 2;", KindIfStatement},
		{"declare(strict_types=1);", KindDeclareStatement},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, mustStmt(t, tt.input).Kind, tt.kind)
		})
	}
}

var corpus = []string{
	"<?php\n\necho 'hello';\n",
	"",
	"just html\n",
	"<html>\n<?php if ($x): ?>\n  <b><?= $y ?></b>\n<?php endif; ?>\n</html>\n",
	`<?php
namespace App\Models;

use Foo\{Bar, Baz as Qux};
use function strlen;
use const PHP_EOL;

#[Attribute(Attribute::TARGET_CLASS)]
final class User extends Model implements JsonSerializable, Countable
{
    use HasName, HasAge {
        HasName::hello insteadof HasAge;
        HasAge::hello as protected ageHello;
    }

    public const int VERSION = 2;
    private static ?array $cache = null;
    public private(set) string $name;
    public string $display {
        get => strtoupper($this->name);
        set(string $value) { $this->name = $value; }
    }

    public function __construct(private readonly int $id, protected ?string $email = null) {}

    public function jsonSerialize(): mixed
    {
        return ['id' => $this->id, ...$this->extra()];
    }

    public function count(): int { return 1; }
}
`,
	`<?php
abstract class Shape {
    abstract protected function area(): float;
    public static function make(string ...$args): static { return new static(...$args); }
}
interface A extends B, C { const X = 1; public function f(); }
trait T { public $x = [1, 2, 3,]; }
enum Suit: string implements HasLabel {
    case Hearts = 'H';
    case Spades = 'S';
    const Wild = self::Spades;
    public function label(): string { return ucfirst($this->name); }
}
`,
	`<?php
declare(strict_types=1);

function &gen(iterable $xs): Generator {
    foreach ($xs as $k => &$v) {
        yield $k => $v;
    }
    yield from other();
    return;
}

$f = static fn(int $x): int => $x * 2;
$g = function ($a) use (&$b, $c) { return $a <=> $b; };
$h = strlen(...);
$obj?->prop?->call(named: 1, other: [1 => 2]);
Foo::{$name}();
$class::$static['k'] ??= 3;
$$var = ${'dyn' . 1};
list('a' => $a, 'b' => [$b, $c]) = $arr;
$x = $cond ? $a : ($b ?: $c);
$r = match (true) { $a > 1, $a < -1 => 'big', default => 'small', };
try { risky(); } catch (A | B $e) { log($e); } catch (C) {} finally { done(); }
switch ($x) { case 1; case 2: break 1; default: continue; }
do { $i++; } while ($i < 10);
for (;;) { break; }
goto end;
end:
static $count = 0, $total;
global $config;
unset($a['b'], $c->d);
echo "Hello {$user->name}, you have $count messages\n", PHP_EOL;
print <<<TXT
  Dear $name,
    total: {$order['total']}
  TXT;
$q = <<<'SQL'
SELECT * FROM t WHERE a = '$b'
SQL;
$out = ` + "`ls -la $dir`" + `;
$n = 0x1F + 0b101 + 0o17 + 1_000_000 + 1.5e3 + .5;
$s = (string) $n . (int)$m . ( float ) $k;
$anon = new class(1) extends Base implements I { public function __construct(public int $v) {} };
throw new Exception('x');
__halt_compiler();
raw data here ?> <?php not parsed
`,
	"<?php\r\n// crlf comment\r\n$a = 1;\r\n?>\r\ntrailing html\r\n",
	"<?php\nnamespace A {\n  function f() {}\n}\nnamespace {\n  f();\n}\n",
}

func TestRoundTrip(t *testing.T) {
	for i, src := range corpus {
		tree, err := ParseString(src)
		assert.NilError(t, err, "corpus[%d]", i)
		assert.Equal(t, tree.Kind, KindCompilationUnit)
		assert.Equal(t, tree.Text(), src, "corpus[%d]", i)
	}
}

func TestIdempotence(t *testing.T) {
	for i, src := range corpus {
		first, err := ParseString(src)
		assert.NilError(t, err, "corpus[%d]", i)
		second, err := ParseString(first.Text())
		assert.NilError(t, err, "corpus[%d]", i)
		assert.DeepEqual(t, kinds(first), kinds(second))
	}
}

func TestConcurrentParses(t *testing.T) {
	done := make(chan error, len(corpus))
	for _, src := range corpus {
		go func(src string) {
			tree, err := ParseString(src)
			if err == nil && tree.Text() != src {
				err = errors.New("round trip mismatch")
			}
			done <- err
		}(src)
	}
	for range corpus {
		assert.NilError(t, <-done)
	}
}

func TestParseReader(t *testing.T) {
	tree, err := ParseReader(strings.NewReader("<?php $a;"), WithFile("r.php"))
	assert.NilError(t, err)
	assert.Assert(t, is.Len(Inspect(tree, KindExpressionStatement), 1))
}
