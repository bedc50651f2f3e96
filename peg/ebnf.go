package peg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// EBNF renders the rules reachable from entry in the notation read by
// golang.org/x/exp/ebnf. Rule names are capitalised. Terminals with a
// fixed spelling become quoted tokens; the others become lexical
// productions named after the terminal. Lookaheads have no EBNF form and
// are left out.
func (g *Grammar) EBNF(entry string) (string, error) {
	rule, ok := g.rules[entry]
	if !ok {
		return "", fmt.Errorf("peg: unknown entry rule %q", entry)
	}
	w := &renderer{seen: map[string]bool{}, lexical: map[string]*Terminal{}}
	w.enqueue(rule)

	var out strings.Builder
	for i := 0; i < len(w.queue); i++ {
		r := w.queue[i]
		body := w.text(r.expr, false)
		fmt.Fprintf(&out, "%s = %s .\n", production(r.name), body)
	}

	names := make([]string, 0, len(w.lexical))
	for name := range w.lexical {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		out.WriteString("\n")
	}
	for _, name := range names {
		t := w.lexical[name]
		if t.pattern != "" {
			fmt.Fprintf(&out, "// %s matches %s\n", name, strconv.Quote(t.pattern))
		}
		fmt.Fprintf(&out, "%s = %s .\n", name, strconv.Quote(name))
	}
	return out.String(), nil
}

// VerifyEBNF renders the grammar from entry and checks the result with
// ebnf.Verify.
func (g *Grammar) VerifyEBNF(entry string) error {
	src, err := g.EBNF(entry)
	if err != nil {
		return err
	}
	parsed, err := ebnf.Parse(entry+".ebnf", strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("parse rendered grammar: %w", err)
	}
	if err := ebnf.Verify(parsed, production(entry)); err != nil {
		return fmt.Errorf("verify rendered grammar: %w", err)
	}
	return nil
}

func production(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

type renderer struct {
	sb      *strings.Builder
	queue   []*Rule
	seen    map[string]bool
	lexical map[string]*Terminal
}

func (w *renderer) enqueue(r *Rule) {
	if w.seen[r.name] {
		return
	}
	w.seen[r.name] = true
	w.queue = append(w.queue, r)
}

// text renders e on its own and returns the result, which is empty when
// e has no EBNF form.
func (w *renderer) text(e Expr, nested bool) string {
	saved := w.sb
	w.sb = new(strings.Builder)
	e.render(w, nested)
	s := w.sb.String()
	w.sb = saved
	return s
}

func (s *sequence) render(w *renderer, nested bool) {
	var parts []string
	for _, item := range s.items {
		if t := w.text(item, true); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return
	}
	w.sb.WriteString(strings.Join(parts, " "))
}

func (c *choice) render(w *renderer, nested bool) {
	var parts []string
	for _, alt := range c.alts {
		t := w.text(alt, false)
		if t == "" {
			t = `""`
		}
		parts = append(parts, t)
	}
	if nested && len(parts) > 1 {
		w.sb.WriteString("( " + strings.Join(parts, " | ") + " )")
		return
	}
	w.sb.WriteString(strings.Join(parts, " | "))
}

func (o *optional) render(w *renderer, nested bool) {
	if t := w.text(o.body, false); t != "" {
		w.sb.WriteString("[ " + t + " ]")
	}
}

func (r *repeat) render(w *renderer, nested bool) {
	t := w.text(r.body, false)
	if t == "" {
		return
	}
	if r.min > 0 {
		w.sb.WriteString(w.text(r.body, true) + " { " + t + " }")
		return
	}
	w.sb.WriteString("{ " + t + " }")
}

func (l *lookahead) render(w *renderer, nested bool) {}

func (r *ref) render(w *renderer, nested bool) {
	w.enqueue(r.rule)
	w.sb.WriteString(production(r.name))
}

func (t *Terminal) render(w *renderer, nested bool) {
	switch {
	case t.eof:
	case t.spelling != "":
		w.sb.WriteString(strconv.Quote(t.spelling))
	default:
		w.lexical[t.name] = t
		w.sb.WriteString(t.name)
	}
}
