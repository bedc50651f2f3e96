package parser

import (
	"github.com/dhamidi/phpast/peg"
)

func (r *rules) names() {
	r.def("name", tName, nameLeaf)
	r.def("declaredName", tDeclaredName, nameLeaf)
	r.def("identifier", tIdentifier, asLeaf(KindName))
	r.def("memberIdentifier", tWord, asLeaf(KindName))
	r.def("variable", tVariable, asLeaf(KindVariableIdentifier))
	r.list("nameList", r.ref("name"), ",", false)

	r.def("variableExpression", peg.FirstOf(
		r.ref("variable"),
		r.ref("variableVariable"),
		r.ref("computedVariableName"),
	), nil)
	r.def("variableVariable", peg.Seq(p("$"), r.ref("variableExpression")), build(KindVariableVariable))
	r.def("computedVariableName", peg.Seq(p("$"), p("{"), r.ref("expression"), p("}")), build(KindComputedVariableName))
}

func (r *rules) expressions() {
	r.def("expression", r.binary(kw("or"), "xorExpression"), foldLeft)
	r.def("xorExpression", r.binary(kw("xor"), "andExpression"), foldLeft)
	r.def("andExpression", r.binary(kw("and"), "assignmentExpression"), foldLeft)

	// Conditional expressions are left-associative; the else branch binds
	// tighter than the conditional itself.
	r.def("assignmentExpression", peg.Seq(r.ref("coalesceExpression"), peg.ZeroOrMore(r.ref("conditionalTail"))), chain)
	r.def("conditionalTail", peg.Seq(
		p("?"), peg.Optional(r.ref("assignmentExpression")), p(":"), r.ref("coalesceExpression"),
	), conditionalTail)

	r.def("coalesceExpression", r.binary(p("??"), "logicalOrExpression"), foldRight)
	r.def("logicalOrExpression", r.binary(p("||"), "logicalAndExpression"), foldLeft)
	r.def("logicalAndExpression", r.binary(p("&&"), "bitwiseOrExpression"), foldLeft)
	r.def("bitwiseOrExpression", r.binary(p("|"), "bitwiseXorExpression"), foldLeft)
	r.def("bitwiseXorExpression", r.binary(p("^"), "bitwiseAndExpression"), foldLeft)
	r.def("bitwiseAndExpression", r.binary(p("&"), "equalityExpression"), foldLeft)
	r.def("equalityExpression", r.binary(ps("===", "!==", "==", "!=", "<>", "<=>"), "relationalExpression"), foldLeft)
	r.def("relationalExpression", r.binary(ps("<=", ">=", "<", ">"), "concatenationExpression"), foldLeft)
	r.def("concatenationExpression", r.binary(p("."), "shiftExpression"), foldLeft)
	r.def("shiftExpression", r.binary(ps("<<", ">>"), "additiveExpression"), foldLeft)
	r.def("additiveExpression", r.binary(ps("+", "-"), "multiplicativeExpression"), foldLeft)
	r.def("multiplicativeExpression", r.binary(ps("*", "/", "%"), "unary"), foldLeft)

	r.def("unary", peg.FirstOf(
		r.ref("assignment"),
		r.ref("yieldExpression"),
		r.ref("prefixExpression"),
		r.ref("instanceofExpression"),
	), nil)

	r.def("assignment", peg.FirstOf(
		r.ref("destructuringAssignment"),
		r.ref("referenceAssignment"),
		r.ref("compoundAssignment"),
	), nil)
	r.def("destructuringAssignment", peg.Seq(r.ref("destructuringTarget"), p("="), r.ref("assignmentExpression")), build(KindAssignment))
	r.def("referenceAssignment", peg.Seq(r.ref("memberChain"), p("="), p("&"), r.ref("unary")), build(KindAssignmentByReference))
	r.def("compoundAssignment", peg.Seq(
		r.ref("memberChain"),
		ps("=", "+=", "-=", "*=", "/=", "%=", "**=", ".=", "&=", "|=", "^=", "<<=", ">>=", "??="),
		r.ref("assignmentExpression"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		return newNode(operatorKind(assignmentOperators, v.Token(1)), v), nil
	})

	r.def("prefixExpression", peg.FirstOf(
		peg.Seq(peg.FirstOf(ps("!", "-", "+", "~", "@"), tCast, kw("clone")), r.ref("unary")),
		peg.Seq(ps("++", "--"), r.ref("memberChain")),
		peg.Seq(kws("print", "throw", "include_once", "include", "require_once", "require"), r.ref("assignmentExpression")),
	), func(c *peg.Context, v peg.Values) (any, error) {
		pair := v[0].(peg.Values)
		op := pair.Token(0)
		if op.Kind == TokenCast {
			return newNode(KindCastExpression, pair), nil
		}
		return newNode(operatorKind(prefixOperators, op), pair), nil
	})

	r.def("yieldExpression", peg.FirstOf(
		peg.Seq(kw("yield"), peg.Word(TokenKeyword, "from"), r.ref("assignmentExpression")),
		peg.Seq(kw("yield"), peg.Optional(r.ref("assignmentExpression"), peg.Optional(p("=>"), r.ref("assignmentExpression")))),
	), func(c *peg.Context, v peg.Values) (any, error) {
		parts := v[0].(peg.Values)
		if len(parts) == 3 {
			return newNode(KindYieldFromExpression, parts), nil
		}
		return newNode(KindYieldExpression, parts), nil
	})

	r.def("instanceofExpression", peg.Seq(r.ref("powerExpression"), peg.ZeroOrMore(r.ref("instanceofTail"))), chain)
	r.def("instanceofTail", peg.Seq(kw("instanceof"), r.ref("classReference")), tail(KindInstanceOf))

	r.def("powerExpression", peg.Seq(r.ref("postfixExpression"), peg.ZeroOrMore(p("**"), r.ref("powerOperand"))), foldRight)
	r.def("powerOperand", peg.FirstOf(r.ref("prefixExpression"), r.ref("postfixExpression")), nil)

	r.def("postfixExpression", peg.Seq(r.ref("memberChain"), peg.ZeroOrMore(r.ref("postfixTail"))), chain)
	r.def("postfixTail", ps("++", "--"), func(c *peg.Context, v peg.Values) (any, error) {
		kind := KindPostfixIncrement
		if v.Token(0).Literal == "--" {
			kind = KindPostfixDecrement
		}
		return &incomplete{kind: kind, parts: []any{v}}, nil
	})

	r.def("memberChain", peg.Seq(r.ref("primary"), peg.ZeroOrMore(r.ref("memberTail"))), chain)
	r.def("memberTail", peg.FirstOf(
		r.ref("objectMemberTail"),
		r.ref("nullsafeMemberTail"),
		r.ref("classMemberTail"),
		r.ref("arrayAccessTail"),
		r.ref("callableConvertTail"),
		r.ref("callTail"),
	), nil)
	r.def("objectMemberTail", peg.Seq(p("->"), r.ref("memberName")), tail(KindObjectMemberAccess))
	r.def("nullsafeMemberTail", peg.Seq(p("?->"), r.ref("memberName")), tail(KindNullsafeMemberAccess))
	r.def("classMemberTail", peg.Seq(p("::"), peg.FirstOf(
		r.ref("variableExpression"),
		r.ref("memberIdentifier"),
		r.ref("bracedMemberName"),
	)), tail(KindClassMemberAccess))
	r.def("arrayAccessTail", peg.Seq(p("["), peg.Optional(r.ref("expression")), p("]")), tail(KindArrayAccess))
	r.def("callableConvertTail", peg.Seq(p("("), p("..."), p(")")), tail(KindCallableConvert))
	r.def("callTail", r.ref("arguments"), func(c *peg.Context, v peg.Values) (any, error) {
		return &incomplete{kind: KindFunctionCall, parts: []any{v[0]}}, nil
	})
	r.def("memberName", peg.FirstOf(
		r.ref("memberIdentifier"),
		r.ref("variableExpression"),
		r.ref("bracedMemberName"),
	), nil)
	r.def("bracedMemberName", peg.Seq(p("{"), r.ref("expression"), p("}")), build(KindComputedVariableName))

	r.def("arguments", peg.Seq(p("("), peg.Optional(r.ref("argumentList")), p(")")), func(c *peg.Context, v peg.Values) (any, error) {
		return newNode(KindArguments, v[0], optionalList(v[1]), v[2]), nil
	})
	r.list("argumentList", r.ref("argument"), ",", true)
	r.def("argument", peg.FirstOf(
		r.ref("namedArgument"),
		r.ref("spreadArgument"),
		r.ref("expression"),
	), nil)
	r.def("namedArgument", peg.Seq(r.ref("memberIdentifier"), p(":"), r.ref("expression")), build(KindNamedArgument))
	r.def("spreadArgument", peg.Seq(p("..."), r.ref("expression")), build(KindSpreadArgument))

	r.def("primary", peg.FirstOf(
		r.ref("variableExpression"),
		r.ref("literal"),
		r.ref("arrayLiteral"),
		r.ref("closure"),
		r.ref("newExpression"),
		r.ref("matchExpression"),
		r.ref("issetExpression"),
		r.ref("emptyExpression"),
		r.ref("evalExpression"),
		r.ref("exitExpression"),
		r.ref("staticReference"),
		r.ref("name"),
		r.ref("parenthesizedExpression"),
	), nil)
	r.def("parenthesizedExpression", peg.Seq(p("("), r.ref("expression"), p(")")), build(KindParenthesizedExpression))
	r.def("staticReference", peg.Seq(kw("static"), peg.Next(p("::"))), asLeaf(KindName))

	r.def("literal", peg.FirstOf(
		r.ref("floatLiteral"),
		r.ref("integerLiteral"),
		r.ref("heredocLiteral"),
		r.ref("singleQuotedString"),
		r.ref("doubleQuotedString"),
		r.ref("executionOperator"),
		r.ref("magicConstant"),
		r.ref("booleanLiteral"),
		r.ref("nullLiteral"),
	), nil)
	r.def("floatLiteral", tFloat, asLeaf(KindFloatLiteral))
	r.def("integerLiteral", tInteger, asLeaf(KindIntegerLiteral))
	r.def("singleQuotedString", tSingleQuoted, asLeaf(KindStringLiteral))
	r.def("magicConstant", kws(
		"__LINE__", "__FILE__", "__DIR__", "__FUNCTION__", "__CLASS__",
		"__TRAIT__", "__METHOD__", "__NAMESPACE__", "__PROPERTY__",
	), asLeaf(KindMagicConstant))
	r.def("booleanLiteral", peg.Seq(kws("true", "false"), peg.Not(p("\\"))), asLeaf(KindBooleanLiteral))
	r.def("nullLiteral", peg.Seq(kw("null"), peg.Not(p("\\"))), asLeaf(KindNullLiteral))

	r.def("arrayLiteral", peg.FirstOf(
		peg.Seq(p("["), r.ref("arrayElementList"), p("]")),
		peg.Seq(kw("array"), p("("), r.ref("arrayElementList"), p(")")),
	), build(KindArrayLiteral))
	r.def("arrayElementList", peg.Seq(
		peg.Optional(r.ref("arrayElement")),
		peg.ZeroOrMore(p(","), peg.Optional(r.ref("arrayElement"))),
	), arrayElementsAction)
	r.def("arrayElement", peg.FirstOf(
		r.ref("arrayPair"),
		r.ref("referenceVariable"),
		r.ref("spreadArgument"),
		r.ref("expression"),
	), nil)
	r.def("arrayPair", peg.Seq(
		r.ref("expression"), p("=>"), peg.FirstOf(r.ref("referenceVariable"), r.ref("expression")),
	), build(KindArrayPair))
	r.def("referenceVariable", peg.Seq(p("&"), r.ref("memberChain")), build(KindReferenceVariable))

	r.def("destructuringTarget", peg.FirstOf(
		peg.Seq(p("["), r.ref("destructuringElements"), p("]")),
		peg.Seq(kw("list"), p("("), r.ref("destructuringElements"), p(")")),
	), func(c *peg.Context, v peg.Values) (any, error) {
		parts := v[0].(peg.Values)
		if parts.Token(0).Literal == "[" {
			return newNode(KindArrayDestructuring, parts), nil
		}
		return newNode(KindListExpression, parts), nil
	})
	r.def("destructuringElements", peg.Seq(
		peg.Optional(r.ref("destructuringElement")),
		peg.ZeroOrMore(p(","), peg.Optional(r.ref("destructuringElement"))),
	), arrayElementsAction)
	r.def("destructuringElement", peg.FirstOf(
		peg.Seq(r.ref("expression"), p("=>"), r.ref("destructuringValue")),
		r.ref("destructuringValue"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		if pair, ok := v[0].(peg.Values); ok {
			return newNode(KindArrayPair, pair), nil
		}
		return v[0], nil
	})
	r.def("destructuringValue", peg.FirstOf(
		r.ref("referenceVariable"),
		r.ref("destructuringTarget"),
		r.ref("memberChain"),
	), nil)

	r.def("newExpression", peg.Seq(kw("new"), peg.FirstOf(
		r.ref("anonymousClass"),
		peg.Seq(r.ref("classReference"), peg.Optional(r.ref("arguments"))),
	)), build(KindNewExpression))
	r.def("classReference", peg.FirstOf(
		r.ref("classReferenceChain"),
		r.ref("staticClassName"),
		r.ref("name"),
		r.ref("parenthesizedExpression"),
	), nil)
	r.def("staticClassName", kw("static"), asLeaf(KindName))
	r.def("classReferenceChain", peg.Seq(r.ref("variableExpression"), peg.ZeroOrMore(peg.FirstOf(
		r.ref("objectMemberTail"),
		r.ref("nullsafeMemberTail"),
		r.ref("staticPropertyTail"),
		r.ref("arrayAccessTail"),
	))), chain)
	r.def("staticPropertyTail", peg.Seq(p("::"), r.ref("variableExpression")), tail(KindClassMemberAccess))

	r.def("closure", peg.FirstOf(r.ref("functionExpression"), r.ref("arrowFunction")), nil)
	r.def("functionExpression", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.Optional(kw("static")),
		kw("function"),
		peg.Optional(p("&")),
		r.ref("parameterList"),
		peg.Optional(r.ref("lexicalVariables")),
		peg.Optional(r.ref("returnType")),
		r.ref("block"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		n := newNode(KindFunctionExpression, v)
		return n, checkNoPromotion(c, n)
	})
	r.def("lexicalVariables", peg.Seq(kw("use"), p("("), r.ref("lexicalVariableList"), p(")")), build(KindLexicalVariables))
	r.list("lexicalVariableList", r.ref("lexicalVariable"), ",", true)
	r.def("lexicalVariable", peg.FirstOf(
		peg.Seq(p("&"), r.ref("variable")),
		r.ref("variable"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		if ref, ok := v[0].(peg.Values); ok {
			return newNode(KindReferenceVariable, ref), nil
		}
		return v[0], nil
	})
	r.def("arrowFunction", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.Optional(kw("static")),
		kw("fn"),
		peg.Optional(p("&")),
		r.ref("parameterList"),
		peg.Optional(r.ref("returnType")),
		p("=>"),
		r.ref("expression"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		n := newNode(KindArrowFunction, v)
		return n, checkNoPromotion(c, n)
	})

	r.def("matchExpression", peg.Seq(
		kw("match"), p("("), r.ref("expression"), p(")"),
		p("{"), peg.Optional(r.ref("matchArmList")), p("}"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		return newNode(KindMatchExpression, v[:5], optionalList(v[5]), v[6]), nil
	})
	r.list("matchArmList", r.ref("matchArm"), ",", true)
	r.def("matchArm", peg.FirstOf(
		r.ref("matchDefaultClause"),
		r.ref("matchConditionClause"),
	), nil)
	r.def("matchDefaultClause", peg.Seq(kw("default"), peg.Optional(p(",")), p("=>"), r.ref("expression")), build(KindMatchDefaultClause))
	r.def("matchConditionClause", peg.Seq(r.ref("matchConditionList"), p("=>"), r.ref("expression")), build(KindMatchConditionClause))
	r.list("matchConditionList", r.ref("expression"), ",", true)

	r.def("issetExpression", peg.Seq(kw("isset"), p("("), r.ref("issetList"), p(")")), build(KindIssetExpression))
	r.list("issetList", r.ref("expression"), ",", true)
	r.def("emptyExpression", peg.Seq(kw("empty"), p("("), r.ref("expression"), p(")")), build(KindEmptyExpression))
	r.def("evalExpression", peg.Seq(kw("eval"), p("("), r.ref("expression"), p(")")), build(KindEvalExpression))
	r.def("exitExpression", peg.Seq(
		kws("exit", "die"), peg.Optional(p("("), peg.Optional(r.ref("expression")), p(")")),
	), build(KindExitExpression))
}

// binary is operand (operator operand)* for one precedence level.
func (r *rules) binary(op peg.Expr, operand string) peg.Expr {
	return peg.Seq(r.ref(operand), peg.ZeroOrMore(op, r.ref(operand)))
}

func conditionalTail(c *peg.Context, v peg.Values) (any, error) {
	question := v.Token(0)
	short := !v.Has(1)
	return &incomplete{
		kind:  KindConditionalExpression,
		parts: []any{v},
		validate: func(c *peg.Context, head *Node) error {
			if head.Kind != KindConditionalExpression {
				return nil
			}
			if short && len(head.Children) == 4 {
				return nil
			}
			return c.Errorf(question, "unparenthesized `a ? b : c ? d : e` is not supported, use either `(a ? b : c) ? d : e` or `a ? b : (c ? d : e)`")
		},
	}, nil
}

// checkNoPromotion rejects promoted parameters outside constructors.
func checkNoPromotion(c *peg.Context, decl *Node) error {
	for _, param := range parameters(decl) {
		if isPromoted(param) {
			return c.Errorf(param.FirstToken(), "cannot declare promoted property outside a constructor")
		}
	}
	return nil
}
