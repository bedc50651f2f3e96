// Package parser turns PHP source into a lossless, fully positioned tree.
//
// # Overview
//
// The PHP grammar is a set of named rules for the engine in package peg.
// There is no separate lexer: terminals match directly against the source
// and whitespace and comments are attached, as trivia, to the token that
// follows them. Concatenating the trivia and text of every token of a
// CompilationUnit reproduces the input byte for byte.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│  PEG rules  │────▶│   Actions   │────▶│  Finalize   │
//	│  (string)   │     │  (peg pkg)  │     │ (tree nodes)│     │  (parents)  │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//	                           │
//	                           ▼
//	                    ┌─────────────┐
//	                    │  Sub-parse  │  strings, heredocs, backticks
//	                    └─────────────┘
//
// # Entry Points
//
//	// Parse parses a whole file.
//	tree, err := parser.Parse(src, parser.WithFile("index.php"))
//
//	// Fragments, without an open tag.
//	expr, err := parser.ParseExpression("1 + 2 * 3")
//	stmt, err := parser.ParseStatement("foreach ($a as [, $b]) {}")
//	member, err := parser.ParseClassMember("public readonly int $x;")
//
// The compiled grammar is built once and shared; parses may run
// concurrently.
//
// # Nodes
//
// Every Node has a Kind. Leaves carry a Token; punctuation and keywords
// are KindToken leaves kept among the children in source order, so the
// tree is a concrete syntax tree with abstract kinds:
//
//	1 + 2 * 3
//
//	Plus
//	  IntegerLiteral 1
//	  Token +
//	  Multiply
//	    IntegerLiteral 2
//	    Token *
//	    IntegerLiteral 3
//
// Comma separated constructs use a SeparatedList child whose elements sit
// at even indices and separators at odd ones. A trailing comma is a
// trailing separator; omitted slots of list() and [...] destructuring are
// EmptyArrayElement nodes.
//
// # Strings
//
// Double quoted strings without interpolation, single quoted strings and
// nowdoc bodies are plain literals. Interpolated strings, heredocs and
// backtick commands are parsed a second time from their content, with
// positions relative to the enclosing file, into StringContent leaves and
// the three variable forms: $name (with one [offset] or ->property),
// ${expr} and {$expr}.
//
// # Errors
//
// A parse either produces a complete tree or a *SyntaxError carrying the
// 1-based line and column of the failure. Some checks a PHP compiler makes
// without a symbol table are part of parsing: promoted parameters outside
// a constructor, nested ternaries without parentheses, readonly properties
// without a type, empty array elements outside destructuring and comma
// separated statements outside "<?=".
//
// # Traversal
//
// Walk and Inspect traverse a tree with an explicit stack. A Dispatcher
// runs callbacks registered per Kind:
//
//	parser.NewDispatcher().
//		On(parser.KindFunctionCall, checkCall).
//		On(parser.KindIncludeExpression, checkInclude).
//		Dispatch(tree)
package parser
