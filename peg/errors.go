package peg

import (
	"fmt"
	"strings"
)

// SyntaxError is the single failure type of a parse: the input does not
// match the grammar, or an action rejected a construct that matched.
type SyntaxError struct {
	File     string
	Line     int
	Column   int
	Offset   int
	Message  string
	Expected []string
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// InternalError reports a grammar that is out of sync with its actions.
// It is raised with panic and is never turned into a SyntaxError.
type InternalError struct {
	Rule    string
	Message string
}

func (e *InternalError) Error() string {
	if e.Rule == "" {
		return "peg: internal error: " + e.Message
	}
	return fmt.Sprintf("peg: internal error in rule %s: %s", e.Rule, e.Message)
}

// Internalf panics with an InternalError.
func Internalf(format string, args ...any) {
	panic(&InternalError{Message: fmt.Sprintf(format, args...)})
}

// abort carries an action error out of the evaluation.
type abort struct {
	err error
}

func describe(text string, offset int) string {
	if offset >= len(text) {
		return "end of input"
	}
	rest := text[offset:]
	if i := strings.IndexAny(rest, " \t\r\n"); i > 0 {
		rest = rest[:i]
	} else if i == 0 {
		rest = rest[:1]
	}
	if len(rest) > 20 {
		rest = rest[:20]
	}
	return fmt.Sprintf("%q", rest)
}

func expectedList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return ", expected " + names[0]
	}
	if len(names) > 12 {
		names = append(names[:12:12], "...")
	}
	return ", expected one of " + strings.Join(names, " ")
}
