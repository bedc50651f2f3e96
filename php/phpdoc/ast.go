// Package phpdoc parses PHPDoc comments: the /** ... */ blocks that
// document PHP declarations.
package phpdoc

// Node is the interface implemented by all PHPDoc nodes.
type Node interface {
	node()
}

// DocComment is a parsed doc block.
type DocComment struct {
	Body      []Node // description before the first block tag
	BlockTags []Node
}

func (DocComment) node() {}

// Tags returns the block tags of the given type, in order.
func Tags[T Node](doc *DocComment) []T {
	if doc == nil {
		return nil
	}
	var out []T
	for _, tag := range doc.BlockTags {
		if t, ok := tag.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Text is plain description text.
type Text struct {
	Content string
}

func (Text) node() {}

// Link is an {@link ...} or {@see ...} inline tag.
type Link struct {
	Reference string // FQSEN or URL
	Label     []Node
	See       bool
}

func (Link) node() {}

// InheritDoc is an {@inheritDoc} inline tag.
type InheritDoc struct{}

func (InheritDoc) node() {}

// UnknownInlineTag is any other {@name ...} inline tag.
type UnknownInlineTag struct {
	Name    string
	Content string
}

func (UnknownInlineTag) node() {}

// Param is a @param block tag. Type is empty when the tag names only the
// variable.
type Param struct {
	Type        string
	Name        string // with the leading $
	Variadic    bool
	ByRef       bool
	Description []Node
}

func (Param) node() {}

// Return is a @return block tag.
type Return struct {
	Type        string
	Description []Node
}

func (Return) node() {}

// Var is a @var block tag. Name is empty on a property or constant doc.
type Var struct {
	Type        string
	Name        string
	Description []Node
}

func (Var) node() {}

// Throws is a @throws block tag.
type Throws struct {
	Type        string
	Description []Node
}

func (Throws) node() {}

// See is a @see block tag.
type See struct {
	Reference   string
	Description []Node
}

func (See) node() {}

// Since is a @since block tag.
type Since struct {
	Version     string
	Description []Node
}

func (Since) node() {}

// Deprecated is a @deprecated block tag.
type Deprecated struct {
	Description []Node
}

func (Deprecated) node() {}

// Author is an @author block tag.
type Author struct {
	Name []Node
}

func (Author) node() {}

// UnknownBlockTag is any other block tag, including tool specific ones
// like @phpstan-param.
type UnknownBlockTag struct {
	Name    string
	Content []Node
}

func (UnknownBlockTag) node() {}
