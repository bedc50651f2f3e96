package parser

import (
	"github.com/dhamidi/phpast/peg"
)

func (r *rules) statements() {
	r.def("topStatement", peg.FirstOf(
		r.ref("namespaceStatement"),
		r.ref("useStatement"),
		r.ref("constantStatement"),
		r.ref("haltCompilerStatement"),
		r.ref("statement"),
	), nil)

	r.def("statement", peg.FirstOf(
		r.ref("block"),
		r.ref("ifStatement"),
		r.ref("whileStatement"),
		r.ref("doWhileStatement"),
		r.ref("forStatement"),
		r.ref("foreachStatement"),
		r.ref("switchStatement"),
		r.ref("breakStatement"),
		r.ref("continueStatement"),
		r.ref("returnStatement"),
		r.ref("globalStatement"),
		r.ref("staticStatement"),
		r.ref("echoStatement"),
		r.ref("unsetStatement"),
		r.ref("tryStatement"),
		r.ref("throwStatement"),
		r.ref("gotoStatement"),
		r.ref("declareStatement"),
		r.ref("inlineHTMLStatement"),
		r.ref("emptyStatement"),
		r.ref("functionDeclaration"),
		r.ref("classDeclaration"),
		r.ref("interfaceDeclaration"),
		r.ref("traitDeclaration"),
		r.ref("enumDeclaration"),
		r.ref("labelStatement"),
		r.ref("expressionStatement"),
	), nil)

	r.def("block", peg.Seq(p("{"), peg.ZeroOrMore(r.ref("topStatement")), p("}")), build(KindBlock))
	r.def("statementList", peg.ZeroOrMore(r.ref("topStatement")), nil)

	r.def("ifStatement", peg.FirstOf(
		peg.Seq(
			kw("if"), r.ref("parenthesizedExpression"), r.ref("statement"),
			peg.ZeroOrMore(r.ref("elseifClause")), peg.Optional(r.ref("elseClause")),
		),
		peg.Seq(
			kw("if"), r.ref("parenthesizedExpression"), p(":"), r.ref("statementList"),
			peg.ZeroOrMore(r.ref("alternativeElseifClause")), peg.Optional(r.ref("alternativeElseClause")),
			kw("endif"), tStatementStop,
		),
	), alternative(KindIfStatement, KindAlternativeIfStatement))
	r.def("elseifClause", peg.Seq(kw("elseif"), r.ref("parenthesizedExpression"), r.ref("statement")), build(KindElseifClause))
	r.def("elseClause", peg.Seq(kw("else"), r.ref("statement")), build(KindElseClause))
	r.def("alternativeElseifClause", peg.Seq(
		kw("elseif"), r.ref("parenthesizedExpression"), p(":"), r.ref("statementList"),
	), build(KindAlternativeElseifClause))
	r.def("alternativeElseClause", peg.Seq(kw("else"), p(":"), r.ref("statementList")), build(KindAlternativeElseClause))

	r.def("whileStatement", peg.FirstOf(
		peg.Seq(kw("while"), r.ref("parenthesizedExpression"), r.ref("statement")),
		peg.Seq(kw("while"), r.ref("parenthesizedExpression"), p(":"), r.ref("statementList"), kw("endwhile"), tStatementStop),
	), alternative(KindWhileStatement, KindAlternativeWhileStatement))
	r.def("doWhileStatement", peg.Seq(
		kw("do"), r.ref("statement"), kw("while"), r.ref("parenthesizedExpression"), tStatementStop,
	), build(KindDoWhileStatement))

	forHeader := peg.Seq(
		kw("for"), p("("),
		r.ref("forExpressions"), p(";"),
		r.ref("forExpressions"), p(";"),
		r.ref("forExpressions"), p(")"),
	)
	r.def("forStatement", peg.FirstOf(
		peg.Seq(forHeader, r.ref("statement")),
		peg.Seq(forHeader, p(":"), r.ref("statementList"), kw("endfor"), tStatementStop),
	), alternative(KindForStatement, KindAlternativeForStatement))
	r.def("forExpressions", peg.Optional(r.ref("expressionList")), func(c *peg.Context, v peg.Values) (any, error) {
		return optionalList(v[0]), nil
	})
	r.list("expressionList", r.ref("expression"), ",", false)

	foreachHeader := peg.Seq(
		kw("foreach"), p("("), r.ref("expression"), kw("as"),
		peg.FirstOf(
			peg.Seq(r.ref("expression"), p("=>"), r.ref("foreachValue")),
			r.ref("foreachValue"),
		),
		p(")"),
	)
	r.def("foreachStatement", peg.FirstOf(
		peg.Seq(foreachHeader, r.ref("statement")),
		peg.Seq(foreachHeader, p(":"), r.ref("statementList"), kw("endforeach"), tStatementStop),
	), alternative(KindForeachStatement, KindAlternativeForeachStatement))
	r.def("foreachValue", peg.FirstOf(
		r.ref("referenceVariable"),
		r.ref("destructuringTarget"),
		r.ref("memberChain"),
	), nil)

	r.def("switchStatement", peg.FirstOf(
		peg.Seq(
			kw("switch"), r.ref("parenthesizedExpression"),
			p("{"), peg.Optional(p(";")), peg.ZeroOrMore(r.ref("switchCase")), p("}"),
		),
		peg.Seq(
			kw("switch"), r.ref("parenthesizedExpression"),
			p(":"), peg.Optional(p(";")), peg.ZeroOrMore(r.ref("switchCase")), kw("endswitch"), tStatementStop,
		),
	), alternative(KindSwitchStatement, KindAlternativeSwitchStatement))
	r.def("switchCase", peg.FirstOf(r.ref("caseClause"), r.ref("defaultClause")), nil)
	r.def("caseClause", peg.Seq(kw("case"), r.ref("expression"), ps(":", ";"), r.ref("statementList")), build(KindCaseClause))
	r.def("defaultClause", peg.Seq(kw("default"), ps(":", ";"), r.ref("statementList")), build(KindDefaultClause))

	r.def("breakStatement", peg.Seq(kw("break"), peg.Optional(r.ref("expression")), tStatementStop), build(KindBreakStatement))
	r.def("continueStatement", peg.Seq(kw("continue"), peg.Optional(r.ref("expression")), tStatementStop), build(KindContinueStatement))
	r.def("returnStatement", peg.Seq(kw("return"), peg.Optional(r.ref("expression")), tStatementStop), build(KindReturnStatement))

	r.def("globalStatement", peg.Seq(kw("global"), r.ref("globalVariableList"), tStatementStop), build(KindGlobalStatement))
	r.list("globalVariableList", r.ref("variableExpression"), ",", false)

	r.def("staticStatement", peg.Seq(kw("static"), r.ref("staticVariableList"), tStatementStop), build(KindStaticStatement))
	r.list("staticVariableList", r.ref("variableDeclaration"), ",", false)
	r.def("variableDeclaration", peg.Seq(r.ref("variable"), peg.Optional(p("="), r.ref("expression"))), build(KindVariableDeclaration))

	r.def("echoStatement", peg.Seq(kw("echo"), r.ref("expressionList"), tStatementStop), build(KindEchoStatement))
	r.def("unsetStatement", peg.Seq(
		kw("unset"), p("("), r.ref("unsetList"), p(")"), tStatementStop,
	), build(KindUnsetVariableStatement))
	r.list("unsetList", r.ref("expression"), ",", true)

	r.def("tryStatement", peg.Seq(
		kw("try"), r.ref("block"), peg.ZeroOrMore(r.ref("catchBlock")), peg.Optional(r.ref("finallyBlock")),
	), func(c *peg.Context, v peg.Values) (any, error) {
		if len(v.Values(2)) == 0 && v[3] == nil {
			return nil, c.Errorf(v.Token(0), "cannot use try without catch or finally")
		}
		return newNode(KindTryStatement, v), nil
	})
	r.def("catchBlock", peg.Seq(
		kw("catch"), p("("), r.ref("catchTypes"), peg.Optional(r.ref("variable")), p(")"), r.ref("block"),
	), build(KindCatchBlock))
	r.list("catchTypes", r.ref("name"), "|", false)
	r.def("finallyBlock", peg.Seq(kw("finally"), r.ref("block")), build(KindFinallyBlock))

	r.def("throwStatement", peg.Seq(kw("throw"), r.ref("expression"), tStatementStop), build(KindThrowStatement))
	r.def("gotoStatement", peg.Seq(kw("goto"), r.ref("identifier"), tStatementStop), build(KindGotoStatement))
	r.def("labelStatement", peg.Seq(r.ref("identifier"), p(":")), build(KindLabelStatement))

	declareHeader := peg.Seq(kw("declare"), p("("), r.ref("declareDirectiveList"), p(")"))
	r.def("declareStatement", peg.FirstOf(
		peg.Seq(declareHeader, p(":"), r.ref("statementList"), kw("enddeclare"), tStatementStop),
		peg.Seq(declareHeader, r.ref("statement")),
	), func(c *peg.Context, v peg.Values) (any, error) {
		parts := v[0].(peg.Values)
		if len(parts) == 2 {
			return newNode(KindDeclareStatement, parts), nil
		}
		return newNode(KindAlternativeDeclareStatement, parts), nil
	})
	r.list("declareDirectiveList", r.ref("declareDirective"), ",", false)
	r.def("declareDirective", peg.Seq(r.ref("memberIdentifier"), p("="), r.ref("expression")), build(KindDeclareDirective))

	r.def("inlineHTMLStatement", peg.Seq(
		tCloseTag, peg.Optional(tInlineHTML), peg.Optional(peg.FirstOf(tOpenTag, tOpenTagEcho)),
	), build(KindInlineHTML))
	r.def("emptyStatement", p(";"), build(KindEmptyStatement))

	// A comma separated list is only valid after "<?=", which the
	// finalization pass checks.
	r.def("expressionStatement", peg.FirstOf(
		peg.Seq(r.ref("expression"), tStatementStop),
		peg.Seq(r.ref("echoTagExpressions"), peg.FirstOf(p(";"), peg.Next(tCloseTag), peg.Next(peg.EOF()))),
	), build(KindExpressionStatement))
	r.def("echoTagExpressions", peg.Seq(
		r.ref("expression"), peg.OneOrMore(p(","), r.ref("expression")),
	), listAction)

	r.def("haltCompilerStatement", peg.Seq(
		kw("__halt_compiler"), p("("), p(")"), peg.FirstOf(p(";"), tCloseTag), peg.Optional(tHaltData),
	), build(KindHaltCompilerStatement))
}

// alternative picks kind for the first form of a statement and alt for
// its colon form.
func alternative(kind, alt Kind) peg.Action {
	return func(c *peg.Context, v peg.Values) (any, error) {
		parts := v[0].(peg.Values)
		for _, part := range parts {
			if tok, ok := part.(*Token); ok && tok.Literal == ":" {
				return newNode(alt, parts), nil
			}
		}
		return newNode(kind, parts), nil
	}
}
