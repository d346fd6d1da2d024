package generator

import (
	"strings"
)

// Indent prefixes every non-empty line of text with prefix.
func Indent(text, prefix string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// JoinNonEmpty joins the non-empty parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Block renders "header\n{\n<indented body>\n}" with the given indent unit.
func Block(header, body, indent string) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n{\n")
	if body != "" {
		sb.WriteString(Indent(body, indent))
		sb.WriteByte('\n')
	}
	sb.WriteString("}")
	return sb.String()
}
