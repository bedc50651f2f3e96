// Package peg provides a lexerless parsing-expression-grammar engine.
//
// # Overview
//
// A grammar is an ordered set of named rules. Each rule is an expression
// built from combinators over terminals and references to other rules:
//
//	Seq(a, b, c)       all of a, b and c, in order
//	FirstOf(a, b)      the first alternative that matches (ordered choice)
//	Optional(a)        a, or nothing
//	ZeroOrMore(a)      a repeated, possibly zero times
//	OneOrMore(a)       a repeated at least once
//	Next(a), Not(a)    positive and negative lookahead; consume nothing
//	b.Ref("name")      back-reference to another rule, resolved by Build
//
// Terminals are matched directly against the source text at the cursor:
//
//	Literal(kind, "->")            exact spelling
//	Word(kind, "function")         case-insensitive word, not followed by a word byte
//	Regexp(name, kind, `[0-9]+`)   anchored regular expression
//	Lexeme(name, kind, fn)         custom matcher for what regular expressions cannot express
//
// Before every terminal the engine skips trivia (whitespace and comments,
// as defined by the grammar's TriviaFunc) and attaches the skipped pieces to
// the token it produces. Raw terminals skip nothing; they are used where
// whitespace is content, such as inside string literals.
//
// # Evaluation
//
// Evaluation is recursive descent with ordered choice. A failing expression
// rewinds to its entry position. Once an alternative of FirstOf has matched,
// the choice is committed: if an enclosing sequence fails later, the
// enclosing sequence rewinds as a whole, but the other alternatives of the
// inner choice are never retried.
//
// Rules may carry an Action that turns the values matched by the rule's
// top-level sequence into a result value (for example a tree node). Actions
// may return an error; such errors abort the whole parse instead of
// triggering backtracking. Rules registered with Memo are memoised per
// input position (packrat parsing); their results must not be mutated.
//
// # Concurrency
//
// A Grammar is immutable once built and can be shared by any number of
// concurrent Parse calls. Each call owns its own state.
package peg
