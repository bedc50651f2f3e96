package parser

// Kind identifies the syntactic construct a Node represents.
type Kind int

const (
	KindError Kind = iota
	KindToken

	// Files and statements
	KindCompilationUnit
	KindScript
	KindInlineHTML
	KindEchoTagStatement
	KindHaltCompilerStatement
	KindBlock
	KindEmptyStatement
	KindExpressionStatement
	KindEchoStatement
	KindIfStatement
	KindAlternativeIfStatement
	KindElseifClause
	KindAlternativeElseifClause
	KindElseClause
	KindAlternativeElseClause
	KindWhileStatement
	KindAlternativeWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindAlternativeForStatement
	KindForeachStatement
	KindAlternativeForeachStatement
	KindSwitchStatement
	KindAlternativeSwitchStatement
	KindCaseClause
	KindDefaultClause
	KindBreakStatement
	KindContinueStatement
	KindReturnStatement
	KindGlobalStatement
	KindStaticStatement
	KindVariableDeclaration
	KindUnsetVariableStatement
	KindTryStatement
	KindCatchBlock
	KindFinallyBlock
	KindThrowStatement
	KindGotoStatement
	KindLabelStatement
	KindDeclareStatement
	KindAlternativeDeclareStatement
	KindDeclareDirective

	// Declarations
	KindNamespaceStatement
	KindUseStatement
	KindGroupUseStatement
	KindUseClause
	KindConstantStatement
	KindConstantDeclaration
	KindFunctionDeclaration
	KindClassDeclaration
	KindInterfaceDeclaration
	KindTraitDeclaration
	KindEnumDeclaration
	KindEnumCase
	KindExtendsClause
	KindImplementsClause
	KindClassConstantDeclaration
	KindPropertyDeclaration
	KindPropertyHookList
	KindPropertyHook
	KindMethodDeclaration
	KindUseTraitDeclaration
	KindTraitAdaptations
	KindTraitPrecedence
	KindTraitAlias
	KindTraitMethodReference
	KindAsymmetricVisibility
	KindParameterList
	KindParameter
	KindReturnTypeClause
	KindAttributeGroup
	KindAttribute

	// Types
	KindType
	KindNullableType
	KindUnionType
	KindIntersectionType
	KindDNFTypeGroup

	// Names and variables
	KindName
	KindNamespaceName
	KindVariableIdentifier
	KindVariableVariable
	KindComputedVariableName

	// Literals and strings
	KindIntegerLiteral
	KindFloatLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindMagicConstant
	KindInterpolatedString
	KindStringContent
	KindHeredocLiteral
	KindNowdocLiteral
	KindExecutionOperator
	KindEncapsedComplexVariable
	KindEncapsedSemiComplexVariable

	// Expressions
	KindParenthesizedExpression
	KindArrayLiteral
	KindArrayPair
	KindEmptyArrayElement
	KindReferenceVariable
	KindSpreadArgument
	KindListExpression
	KindArrayDestructuring
	KindSeparatedList
	KindObjectMemberAccess
	KindNullsafeMemberAccess
	KindClassMemberAccess
	KindArrayAccess
	KindFunctionCall
	KindCallableConvert
	KindArguments
	KindNamedArgument
	KindNewExpression
	KindAnonymousClass
	KindFunctionExpression
	KindLexicalVariables
	KindArrowFunction
	KindMatchExpression
	KindMatchConditionClause
	KindMatchDefaultClause
	KindIssetExpression
	KindEmptyExpression
	KindEvalExpression
	KindExitExpression
	KindCloneExpression
	KindPrintExpression
	KindYieldExpression
	KindYieldFromExpression
	KindThrowExpression
	KindIncludeExpression
	KindCastExpression
	KindErrorControl
	KindPrefixIncrement
	KindPrefixDecrement
	KindPostfixIncrement
	KindPostfixDecrement
	KindUnaryPlus
	KindUnaryMinus
	KindLogicalComplement
	KindBitwiseComplement
	KindConditionalExpression
	KindInstanceOf

	// Binary operators
	KindPower
	KindMultiply
	KindDivide
	KindRemainder
	KindPlus
	KindMinus
	KindLeftShift
	KindRightShift
	KindConcatenation
	KindLessThan
	KindGreaterThan
	KindLessThanOrEqualTo
	KindGreaterThanOrEqualTo
	KindEqualTo
	KindNotEqualTo
	KindStrictEqualTo
	KindStrictNotEqualTo
	KindCompare
	KindBitwiseAnd
	KindBitwiseXor
	KindBitwiseOr
	KindConditionalAnd
	KindConditionalOr
	KindNullCoalescing
	KindAlternativeConditionalAnd
	KindAlternativeConditionalXor
	KindAlternativeConditionalOr

	// Assignments
	KindAssignment
	KindAssignmentByReference
	KindPlusAssignment
	KindMinusAssignment
	KindMultiplyAssignment
	KindDivideAssignment
	KindRemainderAssignment
	KindPowerAssignment
	KindConcatenationAssignment
	KindAndAssignment
	KindOrAssignment
	KindXorAssignment
	KindLeftShiftAssignment
	KindRightShiftAssignment
	KindNullCoalescingAssignment
)

var kindNames = map[Kind]string{
	KindError:                       "Error",
	KindToken:                       "Token",
	KindCompilationUnit:             "CompilationUnit",
	KindScript:                      "Script",
	KindInlineHTML:                  "InlineHTML",
	KindEchoTagStatement:            "EchoTagStatement",
	KindHaltCompilerStatement:       "HaltCompilerStatement",
	KindBlock:                       "Block",
	KindEmptyStatement:              "EmptyStatement",
	KindExpressionStatement:         "ExpressionStatement",
	KindEchoStatement:               "EchoStatement",
	KindIfStatement:                 "IfStatement",
	KindAlternativeIfStatement:      "AlternativeIfStatement",
	KindElseifClause:                "ElseifClause",
	KindAlternativeElseifClause:     "AlternativeElseifClause",
	KindElseClause:                  "ElseClause",
	KindAlternativeElseClause:       "AlternativeElseClause",
	KindWhileStatement:              "WhileStatement",
	KindAlternativeWhileStatement:   "AlternativeWhileStatement",
	KindDoWhileStatement:            "DoWhileStatement",
	KindForStatement:                "ForStatement",
	KindAlternativeForStatement:     "AlternativeForStatement",
	KindForeachStatement:            "ForeachStatement",
	KindAlternativeForeachStatement: "AlternativeForeachStatement",
	KindSwitchStatement:             "SwitchStatement",
	KindAlternativeSwitchStatement:  "AlternativeSwitchStatement",
	KindCaseClause:                  "CaseClause",
	KindDefaultClause:               "DefaultClause",
	KindBreakStatement:              "BreakStatement",
	KindContinueStatement:           "ContinueStatement",
	KindReturnStatement:             "ReturnStatement",
	KindGlobalStatement:             "GlobalStatement",
	KindStaticStatement:             "StaticStatement",
	KindVariableDeclaration:         "VariableDeclaration",
	KindUnsetVariableStatement:      "UnsetVariableStatement",
	KindTryStatement:                "TryStatement",
	KindCatchBlock:                  "CatchBlock",
	KindFinallyBlock:                "FinallyBlock",
	KindThrowStatement:              "ThrowStatement",
	KindGotoStatement:               "GotoStatement",
	KindLabelStatement:              "LabelStatement",
	KindDeclareStatement:            "DeclareStatement",
	KindAlternativeDeclareStatement: "AlternativeDeclareStatement",
	KindDeclareDirective:            "DeclareDirective",
	KindNamespaceStatement:          "NamespaceStatement",
	KindUseStatement:                "UseStatement",
	KindGroupUseStatement:           "GroupUseStatement",
	KindUseClause:                   "UseClause",
	KindConstantStatement:           "ConstantStatement",
	KindConstantDeclaration:         "ConstantDeclaration",
	KindFunctionDeclaration:         "FunctionDeclaration",
	KindClassDeclaration:            "ClassDeclaration",
	KindInterfaceDeclaration:        "InterfaceDeclaration",
	KindTraitDeclaration:            "TraitDeclaration",
	KindEnumDeclaration:             "EnumDeclaration",
	KindEnumCase:                    "EnumCase",
	KindExtendsClause:               "ExtendsClause",
	KindImplementsClause:            "ImplementsClause",
	KindClassConstantDeclaration:    "ClassConstantDeclaration",
	KindPropertyDeclaration:         "PropertyDeclaration",
	KindPropertyHookList:            "PropertyHookList",
	KindPropertyHook:                "PropertyHook",
	KindMethodDeclaration:           "MethodDeclaration",
	KindUseTraitDeclaration:         "UseTraitDeclaration",
	KindTraitAdaptations:            "TraitAdaptations",
	KindTraitPrecedence:             "TraitPrecedence",
	KindTraitAlias:                  "TraitAlias",
	KindTraitMethodReference:        "TraitMethodReference",
	KindAsymmetricVisibility:        "AsymmetricVisibility",
	KindParameterList:               "ParameterList",
	KindParameter:                   "Parameter",
	KindReturnTypeClause:            "ReturnTypeClause",
	KindAttributeGroup:              "AttributeGroup",
	KindAttribute:                   "Attribute",
	KindType:                        "Type",
	KindNullableType:                "NullableType",
	KindUnionType:                   "UnionType",
	KindIntersectionType:            "IntersectionType",
	KindDNFTypeGroup:                "DNFTypeGroup",
	KindName:                        "Name",
	KindNamespaceName:               "NamespaceName",
	KindVariableIdentifier:          "VariableIdentifier",
	KindVariableVariable:            "VariableVariable",
	KindComputedVariableName:        "ComputedVariableName",
	KindIntegerLiteral:              "IntegerLiteral",
	KindFloatLiteral:                "FloatLiteral",
	KindStringLiteral:               "StringLiteral",
	KindBooleanLiteral:              "BooleanLiteral",
	KindNullLiteral:                 "NullLiteral",
	KindMagicConstant:               "MagicConstant",
	KindInterpolatedString:          "InterpolatedString",
	KindStringContent:               "StringContent",
	KindHeredocLiteral:              "HeredocLiteral",
	KindNowdocLiteral:               "NowdocLiteral",
	KindExecutionOperator:           "ExecutionOperator",
	KindEncapsedComplexVariable:     "EncapsedComplexVariable",
	KindEncapsedSemiComplexVariable: "EncapsedSemiComplexVariable",
	KindParenthesizedExpression:     "ParenthesizedExpression",
	KindArrayLiteral:                "ArrayLiteral",
	KindArrayPair:                   "ArrayPair",
	KindEmptyArrayElement:           "EmptyArrayElement",
	KindReferenceVariable:           "ReferenceVariable",
	KindSpreadArgument:              "SpreadArgument",
	KindListExpression:              "ListExpression",
	KindArrayDestructuring:          "ArrayDestructuring",
	KindSeparatedList:               "SeparatedList",
	KindObjectMemberAccess:          "ObjectMemberAccess",
	KindNullsafeMemberAccess:        "NullsafeMemberAccess",
	KindClassMemberAccess:           "ClassMemberAccess",
	KindArrayAccess:                 "ArrayAccess",
	KindFunctionCall:                "FunctionCall",
	KindCallableConvert:             "CallableConvert",
	KindArguments:                   "Arguments",
	KindNamedArgument:               "NamedArgument",
	KindNewExpression:               "NewExpression",
	KindAnonymousClass:              "AnonymousClass",
	KindFunctionExpression:          "FunctionExpression",
	KindLexicalVariables:            "LexicalVariables",
	KindArrowFunction:               "ArrowFunction",
	KindMatchExpression:             "MatchExpression",
	KindMatchConditionClause:        "MatchConditionClause",
	KindMatchDefaultClause:          "MatchDefaultClause",
	KindIssetExpression:             "IssetExpression",
	KindEmptyExpression:             "EmptyExpression",
	KindEvalExpression:              "EvalExpression",
	KindExitExpression:              "ExitExpression",
	KindCloneExpression:             "CloneExpression",
	KindPrintExpression:             "PrintExpression",
	KindYieldExpression:             "YieldExpression",
	KindYieldFromExpression:         "YieldFromExpression",
	KindThrowExpression:             "ThrowExpression",
	KindIncludeExpression:           "IncludeExpression",
	KindCastExpression:              "CastExpression",
	KindErrorControl:                "ErrorControl",
	KindPrefixIncrement:             "PrefixIncrement",
	KindPrefixDecrement:             "PrefixDecrement",
	KindPostfixIncrement:            "PostfixIncrement",
	KindPostfixDecrement:            "PostfixDecrement",
	KindUnaryPlus:                   "UnaryPlus",
	KindUnaryMinus:                  "UnaryMinus",
	KindLogicalComplement:           "LogicalComplement",
	KindBitwiseComplement:           "BitwiseComplement",
	KindConditionalExpression:       "ConditionalExpression",
	KindInstanceOf:                  "InstanceOf",
	KindPower:                       "Power",
	KindMultiply:                    "Multiply",
	KindDivide:                      "Divide",
	KindRemainder:                   "Remainder",
	KindPlus:                        "Plus",
	KindMinus:                       "Minus",
	KindLeftShift:                   "LeftShift",
	KindRightShift:                  "RightShift",
	KindConcatenation:               "Concatenation",
	KindLessThan:                    "LessThan",
	KindGreaterThan:                 "GreaterThan",
	KindLessThanOrEqualTo:           "LessThanOrEqualTo",
	KindGreaterThanOrEqualTo:        "GreaterThanOrEqualTo",
	KindEqualTo:                     "EqualTo",
	KindNotEqualTo:                  "NotEqualTo",
	KindStrictEqualTo:               "StrictEqualTo",
	KindStrictNotEqualTo:            "StrictNotEqualTo",
	KindCompare:                     "Compare",
	KindBitwiseAnd:                  "BitwiseAnd",
	KindBitwiseXor:                  "BitwiseXor",
	KindBitwiseOr:                   "BitwiseOr",
	KindConditionalAnd:              "ConditionalAnd",
	KindConditionalOr:               "ConditionalOr",
	KindNullCoalescing:              "NullCoalescing",
	KindAlternativeConditionalAnd:   "AlternativeConditionalAnd",
	KindAlternativeConditionalXor:   "AlternativeConditionalXor",
	KindAlternativeConditionalOr:    "AlternativeConditionalOr",
	KindAssignment:                  "Assignment",
	KindAssignmentByReference:       "AssignmentByReference",
	KindPlusAssignment:              "PlusAssignment",
	KindMinusAssignment:             "MinusAssignment",
	KindMultiplyAssignment:          "MultiplyAssignment",
	KindDivideAssignment:            "DivideAssignment",
	KindRemainderAssignment:         "RemainderAssignment",
	KindPowerAssignment:             "PowerAssignment",
	KindConcatenationAssignment:     "ConcatenationAssignment",
	KindAndAssignment:               "AndAssignment",
	KindOrAssignment:                "OrAssignment",
	KindXorAssignment:               "XorAssignment",
	KindLeftShiftAssignment:         "LeftShiftAssignment",
	KindRightShiftAssignment:        "RightShiftAssignment",
	KindNullCoalescingAssignment:    "NullCoalescingAssignment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KindByName returns the Kind called name.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindError, false
}

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindError; int(k) < len(kindNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
