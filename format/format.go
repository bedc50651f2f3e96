package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/phpast/php/parser"
)

type Encoder interface {
	Encode(node *parser.Node) error
	MarshalText(node *parser.Node) ([]byte, error)
}

var encoders = map[string]func(w io.Writer) Encoder{
	"json":   func(w io.Writer) Encoder { return NewASTJSONEncoder(w) },
	"yaml":   func(w io.Writer) Encoder { return NewYAMLEncoder(w) },
	"tree":   func(w io.Writer) Encoder { return NewTreeEncoder(w) },
	"line":   func(w io.Writer) Encoder { return NewLineEncoder(w) },
	"tokens": func(w io.Writer) Encoder { return NewTokenEncoder(w) },
	"source": func(w io.Writer) Encoder { return NewSourceEncoder(w) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, Names())
	}
	return mk(w), nil
}

func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
