package phpdoc

import (
	"strings"
)

// Markdown renders a doc comment for display, as in an editor hover.
func Markdown(doc *DocComment) string {
	if doc == nil {
		return ""
	}

	var parts []string
	if body := normalizeWhitespace(formatNodes(doc.Body)); body != "" {
		parts = append(parts, body)
	}
	for _, tag := range doc.BlockTags {
		if s := formatBlockTag(tag); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Summary returns the first paragraph of the description on one line.
func Summary(doc *DocComment) string {
	if doc == nil {
		return ""
	}
	body := normalizeWhitespace(formatNodesPlain(doc.Body))
	if i := strings.Index(body, "\n\n"); i >= 0 {
		body = body[:i]
	}
	return strings.Join(strings.Fields(body), " ")
}

func formatNodes(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case Text:
			sb.WriteString(n.Content)
		case Link:
			label := strings.TrimSpace(formatNodesPlain(n.Label))
			if label == "" {
				sb.WriteString("`" + n.Reference + "`")
			} else if isURL(n.Reference) {
				sb.WriteString("[" + label + "](" + n.Reference + ")")
			} else {
				sb.WriteString(label)
			}
		case InheritDoc:
			sb.WriteString("{@inheritDoc}")
		case UnknownInlineTag:
			sb.WriteString(n.Content)
		}
	}
	return sb.String()
}

func formatNodesPlain(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case Text:
			sb.WriteString(n.Content)
		case Link:
			if label := strings.TrimSpace(formatNodesPlain(n.Label)); label != "" {
				sb.WriteString(label)
			} else {
				sb.WriteString(n.Reference)
			}
		case UnknownInlineTag:
			sb.WriteString(n.Content)
		}
	}
	return sb.String()
}

func formatBlockTag(node Node) string {
	switch n := node.(type) {
	case Param:
		name := n.Name
		if n.Variadic {
			name = "..." + name
		}
		if n.ByRef {
			name = "&" + name
		}
		return tagLine("param", join(n.Type, name), n.Description)
	case Return:
		return tagLine("return", n.Type, n.Description)
	case Var:
		return tagLine("var", join(n.Type, n.Name), n.Description)
	case Throws:
		return tagLine("throws", n.Type, n.Description)
	case See:
		return tagLine("see", n.Reference, n.Description)
	case Since:
		return tagLine("since", n.Version, n.Description)
	case Deprecated:
		return tagLine("deprecated", "", n.Description)
	case Author:
		return tagLine("author", "", n.Name)
	case UnknownBlockTag:
		return tagLine(n.Name, "", n.Content)
	default:
		return ""
	}
}

// tagLine renders "_@name_ `code` description".
func tagLine(name, code string, desc []Node) string {
	parts := []string{"_@" + name + "_"}
	if code != "" {
		parts = append(parts, "`"+code+"`")
	}
	if d := strings.Join(strings.Fields(formatNodes(desc)), " "); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " ")
}

func join(a, b string) string {
	return strings.TrimSpace(a + " " + b)
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// normalizeWhitespace trims every line and keeps at most one empty line
// between paragraphs.
func normalizeWhitespace(s string) string {
	var result []string
	prevEmpty := true

	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if !prevEmpty {
				result = append(result, "")
				prevEmpty = true
			}
			continue
		}
		result = append(result, trimmed)
		prevEmpty = false
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
