package parser

import (
	"strings"

	"github.com/dhamidi/phpast/peg"
)

var binaryOperators = map[string]Kind{
	"**":         KindPower,
	"*":          KindMultiply,
	"/":          KindDivide,
	"%":          KindRemainder,
	"+":          KindPlus,
	"-":          KindMinus,
	"<<":         KindLeftShift,
	">>":         KindRightShift,
	".":          KindConcatenation,
	"<":          KindLessThan,
	">":          KindGreaterThan,
	"<=":         KindLessThanOrEqualTo,
	">=":         KindGreaterThanOrEqualTo,
	"==":         KindEqualTo,
	"!=":         KindNotEqualTo,
	"<>":         KindNotEqualTo,
	"===":        KindStrictEqualTo,
	"!==":        KindStrictNotEqualTo,
	"<=>":        KindCompare,
	"&":          KindBitwiseAnd,
	"^":          KindBitwiseXor,
	"|":          KindBitwiseOr,
	"&&":         KindConditionalAnd,
	"||":         KindConditionalOr,
	"??":         KindNullCoalescing,
	"and":        KindAlternativeConditionalAnd,
	"xor":        KindAlternativeConditionalXor,
	"or":         KindAlternativeConditionalOr,
	"instanceof": KindInstanceOf,
}

var assignmentOperators = map[string]Kind{
	"=":   KindAssignment,
	"+=":  KindPlusAssignment,
	"-=":  KindMinusAssignment,
	"*=":  KindMultiplyAssignment,
	"/=":  KindDivideAssignment,
	"%=":  KindRemainderAssignment,
	"**=": KindPowerAssignment,
	".=":  KindConcatenationAssignment,
	"&=":  KindAndAssignment,
	"|=":  KindOrAssignment,
	"^=":  KindXorAssignment,
	"<<=": KindLeftShiftAssignment,
	">>=": KindRightShiftAssignment,
	"??=": KindNullCoalescingAssignment,
}

var prefixOperators = map[string]Kind{
	"!":            KindLogicalComplement,
	"-":            KindUnaryMinus,
	"+":            KindUnaryPlus,
	"~":            KindBitwiseComplement,
	"@":            KindErrorControl,
	"++":           KindPrefixIncrement,
	"--":           KindPrefixDecrement,
	"clone":        KindCloneExpression,
	"print":        KindPrintExpression,
	"throw":        KindThrowExpression,
	"include":      KindIncludeExpression,
	"include_once": KindIncludeExpression,
	"require":      KindIncludeExpression,
	"require_once": KindIncludeExpression,
}

var (
	binaryKinds     = kindSet(binaryOperators)
	assignmentKinds = kindSet(assignmentOperators, map[string]Kind{"=&": KindAssignmentByReference})
)

func kindSet(tables ...map[string]Kind) map[Kind]bool {
	set := make(map[Kind]bool)
	for _, table := range tables {
		for _, k := range table {
			set[k] = true
		}
	}
	return set
}

// operatorKind maps operator text to a Kind. A missing entry means the
// grammar accepts an operator the factory does not know.
func operatorKind(table map[string]Kind, op *Token) Kind {
	if op == nil {
		peg.Internalf("missing operator token")
	}
	k, ok := table[strings.ToLower(op.Literal)]
	if !ok {
		peg.Internalf("no tree kind for operator %q", op.Literal)
	}
	return k
}

func leaf(kind Kind, tok *Token) *Node {
	return &Node{Kind: kind, Token: tok}
}

// newNode builds a node from matched values. Tokens become KindToken
// leaves, nested values are flattened and nils are skipped.
func newNode(kind Kind, parts ...any) *Node {
	return &Node{Kind: kind, Children: appendParts(nil, parts...)}
}

func appendParts(dst []*Node, parts ...any) []*Node {
	for _, part := range parts {
		switch v := part.(type) {
		case nil:
		case *Node:
			if v != nil {
				dst = append(dst, v)
			}
		case *Token:
			if v != nil {
				dst = append(dst, leaf(KindToken, v))
			}
		case peg.Values:
			dst = appendParts(dst, v...)
		case []*Node:
			dst = append(dst, v...)
		default:
			peg.Internalf("cannot place %T in a tree", part)
		}
	}
	return dst
}

func asNode(v any) *Node {
	n, ok := v.(*Node)
	if !ok || n == nil {
		peg.Internalf("expected a tree node, got %T", v)
	}
	return n
}

// build returns an action that wraps everything matched into one node.
func build(kind Kind) peg.Action {
	return func(c *peg.Context, v peg.Values) (any, error) {
		return newNode(kind, v), nil
	}
}

// asLeaf returns an action turning a single matched token into a leaf.
func asLeaf(kind Kind) peg.Action {
	return func(c *peg.Context, v peg.Values) (any, error) {
		return leaf(kind, v.Token(0)), nil
	}
}

func nameLeaf(c *peg.Context, v peg.Values) (any, error) {
	tok := v.Token(0)
	if strings.Contains(tok.Literal, "\\") {
		return leaf(KindNamespaceName, tok), nil
	}
	return leaf(KindName, tok), nil
}

// first passes on the value of the first element.
func first(c *peg.Context, v peg.Values) (any, error) {
	return v[0], nil
}

// incomplete is a node whose leftmost part is not known yet. The rule that
// parses the head completes it.
type incomplete struct {
	kind     Kind
	parts    []any
	validate func(c *peg.Context, head *Node) error
}

func (t *incomplete) complete(head *Node) *Node {
	return newNode(t.kind, append([]any{head}, t.parts...)...)
}

// tail returns an action producing an incomplete node of kind.
func tail(kind Kind) peg.Action {
	return func(c *peg.Context, v peg.Values) (any, error) {
		return &incomplete{kind: kind, parts: []any{v}}, nil
	}
}

// completeChain applies tails left to right; each completed node is the
// head of the next.
func completeChain(c *peg.Context, head *Node, tails peg.Values) (*Node, error) {
	for _, t := range tails {
		inc, ok := t.(*incomplete)
		if !ok {
			peg.Internalf("expected an incomplete node, got %T", t)
		}
		if inc.validate != nil {
			if err := inc.validate(c, head); err != nil {
				return nil, err
			}
		}
		head = inc.complete(head)
	}
	return head, nil
}

// chain completes a head followed by zero or more tails.
func chain(c *peg.Context, v peg.Values) (any, error) {
	return completeChain(c, asNode(v[0]), v.Values(1))
}

// foldLeft combines operand (operator operand)* left-associatively.
func foldLeft(c *peg.Context, v peg.Values) (any, error) {
	left := asNode(v[0])
	for _, pair := range v.Values(1) {
		pv := pair.(peg.Values)
		op := pv.Token(0)
		left = newNode(operatorKind(binaryOperators, op), left, op, asNode(pv[1]))
	}
	return left, nil
}

// foldRight combines operand (operator operand)* right-associatively by
// recursing on the tail of the pair list.
func foldRight(c *peg.Context, v peg.Values) (any, error) {
	return foldPairs(asNode(v[0]), v.Values(1)), nil
}

func foldPairs(left *Node, pairs peg.Values) *Node {
	if len(pairs) == 0 {
		return left
	}
	pv := pairs[0].(peg.Values)
	op := pv.Token(0)
	right := foldPairs(asNode(pv[1]), pairs[1:])
	return newNode(operatorKind(binaryOperators, op), left, op, right)
}

// separatedList accumulates the first element, then each (separator,
// element) pair, then an optional trailing separator.
func separatedList(firstElem any, rest peg.Values, trailing any) *Node {
	list := &Node{Kind: KindSeparatedList}
	if firstElem == nil {
		return list
	}
	list.Children = appendParts(list.Children, firstElem)
	for _, pair := range rest {
		list.Children = appendParts(list.Children, pair)
	}
	list.Children = appendParts(list.Children, trailing)
	return list
}

// listAction builds a separated list from Seq(elem, ZeroOrMore(sep, elem),
// Optional(sep)); the trailing separator is optional in the grammar.
func listAction(c *peg.Context, v peg.Values) (any, error) {
	var trailing any
	if len(v) > 2 {
		trailing = v[2]
	}
	return separatedList(v[0], v.Values(1), trailing), nil
}

// optionalList turns an optional separated list into an empty list when
// absent.
func optionalList(v any) *Node {
	if v == nil {
		return &Node{Kind: KindSeparatedList}
	}
	return asNode(v)
}

// arrayElements accumulates array, list() and destructuring elements. An
// omitted element between two commas is kept as an empty slot; a single
// empty slot after the last comma is a trailing comma.
func arrayElements(firstElem any, rest peg.Values) *Node {
	elems := []any{firstElem}
	var seps []*Token
	for _, pair := range rest {
		pv := pair.(peg.Values)
		seps = append(seps, pv.Token(0))
		elems = append(elems, pv[1])
	}
	list := &Node{Kind: KindSeparatedList}
	if len(seps) == 0 && elems[0] == nil {
		return list
	}
	trailing := len(seps) > 0 && elems[len(elems)-1] == nil
	if trailing {
		elems = elems[:len(elems)-1]
	}
	for i, e := range elems {
		if e == nil {
			list.Children = append(list.Children, &Node{Kind: KindEmptyArrayElement})
		} else {
			list.Children = appendParts(list.Children, e)
		}
		if i < len(seps) {
			list.Children = append(list.Children, leaf(KindToken, seps[i]))
		}
	}
	return list
}

func arrayElementsAction(c *peg.Context, v peg.Values) (any, error) {
	return arrayElements(v[0], v.Values(1)), nil
}

func isTypeKind(k Kind) bool {
	switch k {
	case KindType, KindNullableType, KindUnionType, KindIntersectionType, KindDNFTypeGroup:
		return true
	}
	return false
}

// hasModifier reports whether word is among the leading modifier keywords
// of n. "(set)" stands for any asymmetric visibility.
func hasModifier(n *Node, word string) bool {
	for _, child := range n.Children {
		switch {
		case child.Kind == KindAttributeGroup:
		case child.Kind == KindAsymmetricVisibility:
			if word == "(set)" {
				return true
			}
		case child.Kind == KindToken:
			if child.Is(word) {
				return true
			}
			if child.Token.Kind != TokenKeyword {
				return false
			}
		default:
			return false
		}
	}
	return false
}

func modifierToken(n *Node, word string) *Token {
	for _, child := range n.Children {
		if child.Kind == KindToken && child.Is(word) {
			return child.Token
		}
	}
	return nil
}

func isPromoted(param *Node) bool {
	for _, w := range []string{"public", "protected", "private", "readonly", "(set)"} {
		if hasModifier(param, w) {
			return true
		}
	}
	return false
}

func parameters(decl *Node) []*Node {
	list := decl.FirstChildOfKind(KindParameterList)
	if list == nil {
		return nil
	}
	if sl := list.List(); sl != nil {
		return sl.Elements()
	}
	return nil
}
