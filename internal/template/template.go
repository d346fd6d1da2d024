// Package template expands static file skeletons with token tables.
//
// Substitution is permissive: a placeholder whose key is absent from the table is
// left verbatim. Use Missing to find such holes.
package template

import (
	"regexp"

	"github.com/origadmin/syngen/internal/naming"
)

// placeholder matches {{key}} and {{ key }}.
var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.\-]*)\s*\}\}`)

// Process substitutes placeholders line by line. Line count, whitespace and
// unresolved placeholders are preserved. The input slice is not modified.
func Process(lines []string, tokens naming.Tokens) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = processLine(line, tokens)
	}
	return out
}

func processLine(line string, tokens naming.Tokens) string {
	return placeholder.ReplaceAllStringFunc(line, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := tokens.Lookup(key); ok {
			return v
		}
		return m
	})
}

// Missing returns the distinct placeholder keys in lines that tokens cannot
// resolve, in order of first appearance.
func Missing(lines []string, tokens naming.Tokens) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, m := range placeholder.FindAllStringSubmatch(line, -1) {
			key := m[1]
			if seen[key] {
				continue
			}
			seen[key] = true
			if _, ok := tokens.Lookup(key); !ok {
				missing = append(missing, key)
			}
		}
	}
	return missing
}

// Keys returns the distinct placeholder keys in lines, in order of first appearance.
func Keys(lines []string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, m := range placeholder.FindAllStringSubmatch(line, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				keys = append(keys, m[1])
			}
		}
	}
	return keys
}
