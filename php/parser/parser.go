package parser

import (
	"fmt"
	"io"

	"github.com/dhamidi/phpast/peg"
)

type Option func(*config)

type config struct {
	file  string
	start Position
	entry Entry
}

// WithFile sets the file name reported in positions and errors.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
	}
}

// WithStartLine sets the line of the first byte (default 1). Use it when
// the input is a fragment of a larger file.
func WithStartLine(line int) Option {
	return func(c *config) {
		c.start.Line = line
	}
}

func WithStartColumn(column int) Option {
	return func(c *config) {
		c.start.Column = column
	}
}

// WithOffset sets the byte offset of the first byte in the enclosing file.
func WithOffset(offset int) Option {
	return func(c *config) {
		c.start.Offset = offset
	}
}

// WithEntry parses the input as a fragment instead of a whole file.
func WithEntry(entry Entry) Option {
	return func(c *config) {
		c.entry = entry
	}
}

func newConfig(opts []Option) config {
	c := config{
		start: Position{Line: 1, Column: 1},
		entry: EntryCompilationUnit,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Parse parses PHP source. Unless WithEntry says otherwise the input is a
// whole file and the root is a CompilationUnit. A failure is returned as a
// *SyntaxError; nothing is returned alongside it.
func Parse(src []byte, opts ...Option) (*Node, error) {
	return ParseString(string(src), opts...)
}

func ParseString(src string, opts ...Option) (*Node, error) {
	cfg := newConfig(opts)
	v, err := Grammar().Parse(string(cfg.entry), src, peg.WithFile(cfg.file), peg.WithBase(cfg.start))
	if err != nil {
		return nil, err
	}
	root, ok := v.(*Node)
	if !ok {
		return nil, fmt.Errorf("parse %s: entry %s produced %T", cfg.file, cfg.entry, v)
	}
	if err := finalize(root, cfg.file); err != nil {
		return nil, err
	}
	return root, nil
}

func ParseReader(r io.Reader, opts ...Option) (*Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read php source: %w", err)
	}
	return Parse(src, opts...)
}

// ParseExpression parses a single expression without an open tag.
func ParseExpression(src string, opts ...Option) (*Node, error) {
	return ParseString(src, append(opts, WithEntry(EntryExpression))...)
}

// ParseStatement parses a single statement without an open tag.
func ParseStatement(src string, opts ...Option) (*Node, error) {
	return ParseString(src, append(opts, WithEntry(EntryStatement))...)
}

// ParseClassMember parses a single class member declaration.
func ParseClassMember(src string, opts ...Option) (*Node, error) {
	return ParseString(src, append(opts, WithEntry(EntryClassMember))...)
}
