package parser

import (
	"strings"

	"github.com/dhamidi/phpast/peg"
)

func (r *rules) declarations() {
	r.def("namespaceStatement", peg.FirstOf(
		peg.Seq(kw("namespace"), r.ref("declaredName"), tStatementStop),
		peg.Seq(kw("namespace"), peg.Optional(r.ref("declaredName")), p("{"), r.ref("statementList"), p("}")),
	), build(KindNamespaceStatement))

	useKind := peg.Optional(kws("function", "const"))
	r.def("useStatement", peg.FirstOf(
		peg.Seq(kw("use"), useKind, r.ref("name"), p("\\"), p("{"), r.ref("groupUseClauseList"), p("}"), tStatementStop),
		peg.Seq(kw("use"), useKind, r.ref("useClauseList"), tStatementStop),
	), func(c *peg.Context, v peg.Values) (any, error) {
		parts := v[0].(peg.Values)
		if len(parts) == 8 {
			return newNode(KindGroupUseStatement, parts), nil
		}
		return newNode(KindUseStatement, parts), nil
	})
	r.list("useClauseList", r.ref("useClause"), ",", false)
	r.list("groupUseClauseList", r.ref("groupUseClause"), ",", true)
	r.def("useClause", peg.Seq(r.ref("name"), peg.Optional(kw("as"), r.ref("identifier"))), build(KindUseClause))
	r.def("groupUseClause", peg.Seq(
		peg.Optional(kws("function", "const")), r.ref("name"), peg.Optional(kw("as"), r.ref("identifier")),
	), build(KindUseClause))

	r.def("constantStatement", peg.Seq(kw("const"), r.ref("constantDeclarationList"), tStatementStop), build(KindConstantStatement))
	r.list("constantDeclarationList", r.ref("constantDeclaration"), ",", false)
	r.def("constantDeclaration", peg.Seq(r.ref("memberIdentifier"), p("="), r.ref("expression")), build(KindConstantDeclaration))

	r.def("functionDeclaration", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		kw("function"),
		peg.Optional(p("&")),
		r.ref("identifier"),
		r.ref("parameterList"),
		peg.Optional(r.ref("returnType")),
		r.ref("block"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		n := newNode(KindFunctionDeclaration, v)
		return n, checkNoPromotion(c, n)
	})

	r.def("classDeclaration", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.ZeroOrMore(kws("abstract", "final", "readonly")),
		kw("class"),
		r.ref("identifier"),
		peg.Optional(r.ref("extendsClause")),
		peg.Optional(r.ref("implementsClause")),
		r.ref("classBody"),
	), build(KindClassDeclaration))
	r.def("interfaceDeclaration", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		kw("interface"),
		r.ref("identifier"),
		peg.Optional(r.ref("interfaceExtendsClause")),
		r.ref("classBody"),
	), build(KindInterfaceDeclaration))
	r.def("traitDeclaration", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		kw("trait"),
		r.ref("identifier"),
		r.ref("classBody"),
	), build(KindTraitDeclaration))
	r.def("enumDeclaration", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.Word(TokenKeyword, "enum"),
		r.ref("identifier"),
		peg.Optional(p(":"), r.ref("type")),
		peg.Optional(r.ref("implementsClause")),
		r.ref("classBody"),
	), build(KindEnumDeclaration))
	r.def("anonymousClass", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.ZeroOrMore(kws("final", "readonly")),
		kw("class"),
		peg.Optional(r.ref("arguments")),
		peg.Optional(r.ref("extendsClause")),
		peg.Optional(r.ref("implementsClause")),
		r.ref("classBody"),
	), build(KindAnonymousClass))

	r.def("extendsClause", peg.Seq(kw("extends"), r.ref("name")), build(KindExtendsClause))
	r.def("interfaceExtendsClause", peg.Seq(kw("extends"), r.ref("nameList")), build(KindExtendsClause))
	r.def("implementsClause", peg.Seq(kw("implements"), r.ref("nameList")), build(KindImplementsClause))
	r.def("classBody", peg.Seq(p("{"), peg.ZeroOrMore(r.ref("classMember")), p("}")), nil)

	r.def("classMember", peg.FirstOf(
		r.ref("useTraitDeclaration"),
		r.ref("enumCase"),
		r.ref("classConstantDeclaration"),
		r.ref("methodDeclaration"),
		r.ref("propertyDeclaration"),
	), nil)

	r.def("memberModifier", peg.FirstOf(
		r.ref("asymmetricVisibility"),
		kws("public", "protected", "private", "static", "abstract", "final", "readonly", "var"),
	), nil)
	r.def("asymmetricVisibility", peg.Seq(
		kws("public", "protected", "private"), p("("), peg.Word(TokenKeyword, "set"), p(")"),
	), build(KindAsymmetricVisibility))

	r.def("enumCase", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		kw("case"), r.ref("memberIdentifier"), peg.Optional(p("="), r.ref("expression")), p(";"),
	), build(KindEnumCase))

	r.def("classConstantDeclaration", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.ZeroOrMore(r.ref("memberModifier")),
		kw("const"),
		peg.Optional(r.ref("type"), peg.Next(r.ref("memberIdentifier"))),
		r.ref("constantDeclarationList"),
		p(";"),
	), build(KindClassConstantDeclaration))

	r.def("methodDeclaration", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.ZeroOrMore(r.ref("memberModifier")),
		kw("function"),
		peg.Optional(p("&")),
		r.ref("memberIdentifier"),
		r.ref("parameterList"),
		peg.Optional(r.ref("returnType")),
		peg.FirstOf(r.ref("block"), p(";")),
	), func(c *peg.Context, v peg.Values) (any, error) {
		n := newNode(KindMethodDeclaration, v)
		name := n.FirstChildOfKind(KindName)
		if name != nil && strings.EqualFold(name.TokenLiteral(), "__construct") {
			return n, nil
		}
		return n, checkNoPromotion(c, n)
	})

	r.def("propertyDeclaration", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.OneOrMore(r.ref("memberModifier")),
		peg.Optional(r.ref("type")),
		peg.FirstOf(
			peg.Seq(r.ref("variableDeclaration"), r.ref("propertyHookList")),
			peg.Seq(r.ref("propertyList"), p(";")),
		),
	), func(c *peg.Context, v peg.Values) (any, error) {
		n := newNode(KindPropertyDeclaration, v)
		if v[2] == nil && hasModifier(n, "readonly") {
			return nil, c.Errorf(modifierToken(n, "readonly"), "readonly property must have a type")
		}
		return n, nil
	})
	r.list("propertyList", r.ref("variableDeclaration"), ",", false)

	r.def("propertyHookList", peg.Seq(p("{"), peg.ZeroOrMore(r.ref("propertyHook")), p("}")), build(KindPropertyHookList))
	r.def("propertyHook", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.ZeroOrMore(kw("final")),
		peg.Optional(p("&")),
		r.ref("memberIdentifier"),
		peg.Optional(r.ref("parameterList")),
		peg.FirstOf(
			peg.Seq(p("=>"), r.ref("expression"), p(";")),
			r.ref("block"),
			p(";"),
		),
	), build(KindPropertyHook))

	r.def("useTraitDeclaration", peg.Seq(
		kw("use"), r.ref("nameList"), peg.FirstOf(p(";"), r.ref("traitAdaptations")),
	), build(KindUseTraitDeclaration))
	r.def("traitAdaptations", peg.Seq(p("{"), peg.ZeroOrMore(r.ref("traitAdaptation")), p("}")), build(KindTraitAdaptations))
	r.def("traitAdaptation", peg.FirstOf(r.ref("traitPrecedence"), r.ref("traitAlias")), nil)
	r.def("traitPrecedence", peg.Seq(
		r.ref("traitMethodReference"), kw("insteadof"), r.ref("nameList"), p(";"),
	), build(KindTraitPrecedence))
	r.def("traitAlias", peg.Seq(
		r.ref("traitMethodReference"), kw("as"),
		peg.FirstOf(
			peg.Seq(kws("public", "protected", "private"), peg.Optional(r.ref("memberIdentifier"))),
			r.ref("memberIdentifier"),
		),
		p(";"),
	), build(KindTraitAlias))
	r.def("traitMethodReference", peg.FirstOf(
		peg.Seq(r.ref("name"), p("::"), r.ref("memberIdentifier")),
		r.ref("memberIdentifier"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		if parts, ok := v[0].(peg.Values); ok {
			return newNode(KindTraitMethodReference, parts), nil
		}
		return v[0], nil
	})

	r.def("parameterList", peg.Seq(p("("), peg.Optional(r.ref("parameters")), p(")")), func(c *peg.Context, v peg.Values) (any, error) {
		return newNode(KindParameterList, v[0], optionalList(v[1]), v[2]), nil
	})
	r.list("parameters", r.ref("parameter"), ",", true)
	r.def("parameter", peg.Seq(
		peg.ZeroOrMore(r.ref("attributeGroup")),
		peg.ZeroOrMore(peg.FirstOf(r.ref("asymmetricVisibility"), kws("public", "protected", "private", "readonly"))),
		peg.Optional(r.ref("type")),
		peg.Optional(p("&")),
		peg.Optional(p("...")),
		r.ref("variable"),
		peg.Optional(p("="), r.ref("expression")),
		peg.Optional(r.ref("propertyHookList")),
	), build(KindParameter))
	r.def("returnType", peg.Seq(p(":"), r.ref("type")), build(KindReturnTypeClause))

	r.def("attributeGroup", peg.Seq(p("#["), r.ref("attributeList"), p("]")), build(KindAttributeGroup))
	r.list("attributeList", r.ref("attribute"), ",", true)
	r.def("attribute", peg.Seq(r.ref("name"), peg.Optional(r.ref("arguments"))), build(KindAttribute))
}

func (r *rules) types() {
	r.def("type", peg.FirstOf(r.ref("nullableType"), r.ref("unionType")), nil)
	r.def("nullableType", peg.Seq(p("?"), r.ref("singleType")), build(KindNullableType))
	r.def("unionType", peg.Seq(
		r.ref("intersectionType"), peg.ZeroOrMore(p("|"), r.ref("intersectionType")),
	), func(c *peg.Context, v peg.Values) (any, error) {
		if len(v.Values(1)) == 0 {
			return v[0], nil
		}
		return newNode(KindUnionType, separatedList(v[0], v.Values(1), nil)), nil
	})
	r.def("intersectionType", peg.FirstOf(
		r.ref("dnfTypeGroup"),
		peg.Seq(r.ref("singleType"), peg.ZeroOrMore(r.ref("intersectionSeparator"), r.ref("singleType"))),
	), func(c *peg.Context, v peg.Values) (any, error) {
		parts, ok := v[0].(peg.Values)
		if !ok {
			return v[0], nil
		}
		if len(parts.Values(1)) == 0 {
			return parts[0], nil
		}
		return newNode(KindIntersectionType, separatedList(parts[0], parts.Values(1), nil)), nil
	})
	// "&" before a variable or "..." marks a by-reference parameter.
	r.def("intersectionSeparator", peg.Seq(p("&"), peg.Not(peg.FirstOf(tVariable, p("..."), p("&")))), first)
	r.def("dnfTypeGroup", peg.Seq(
		p("("), r.ref("singleType"), peg.OneOrMore(r.ref("intersectionSeparator"), r.ref("singleType")), p(")"),
	), func(c *peg.Context, v peg.Values) (any, error) {
		inner := newNode(KindIntersectionType, separatedList(v[1], v.Values(2), nil))
		return newNode(KindDNFTypeGroup, v[0], inner, v[3]), nil
	})
	r.def("singleType", peg.FirstOf(kws("array", "callable", "static"), r.ref("name")), func(c *peg.Context, v peg.Values) (any, error) {
		if tok, ok := v[0].(*Token); ok {
			return newNode(KindType, leaf(KindName, tok)), nil
		}
		return newNode(KindType, v[0]), nil
	})
}
