// Package naming derives the casing and pluralization variants of an identifier and
// assembles them into substitution tables for the generators.
package naming

import (
	"strings"
	"unicode"
)

// Names holds every variant derived from a single raw identifier.
// A Names value is computed once by Derive and never mutated afterwards.
type Names struct {
	Value        string // the raw input, as given
	Pascal       string // OrderItem
	PascalPlural string // OrderItems
	Camel        string // orderItem
	CamelPlural  string // orderItems
	Snake        string // order_item
	SnakePlural  string // order_items
	Title        string // Order Item
}

// String returns the raw value so that Names can be placed directly in a token table.
func (n Names) String() string {
	return n.Value
}

// IsZero reports whether the identifier produced no words.
func (n Names) IsZero() bool {
	return n.Pascal == ""
}

// Derive converts a raw identifier into its canonical set of variants.
//
// The input is split on casing boundaries, '-', '_' and any other non-alphanumeric
// rune. Derive is pure: the same input always yields the same Names. Empty or
// whitespace-only input yields the zero Names rather than an error.
func Derive(name string) Names {
	words := splitWords(name)
	if len(words) == 0 {
		return Names{}
	}

	plural := make([]string, len(words))
	copy(plural, words)
	plural[len(plural)-1] = pluralizeWord(words[len(words)-1])

	return Names{
		Value:        name,
		Pascal:       toPascal(words),
		PascalPlural: toPascal(plural),
		Camel:        toCamel(words),
		CamelPlural:  toCamel(plural),
		Snake:        toSnake(words),
		SnakePlural:  toSnake(plural),
		Title:        toTitle(words),
	}
}

// Pascal is shorthand for Derive(name).Pascal.
func Pascal(name string) string {
	return Derive(name).Pascal
}

// Camel is shorthand for Derive(name).Camel.
func Camel(name string) string {
	return Derive(name).Camel
}

// Plural pluralizes the last word of name and keeps the original casing of the rest.
func Plural(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}
	last := words[len(words)-1]
	i := strings.LastIndex(name, last)
	return name[:i] + pluralizeWord(last) + name[i+len(last):]
}

// splitWords tokenizes s on separators and casing boundaries.
// "HTTPServer" -> [HTTP Server], "order_item" -> [order item], "v2Api" -> [v2 Api],
// "UserIDs" -> [User IDs].
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1]) && !acronymPluralAt(runes, i+1)
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// acronymPluralAt reports whether runes[i] is the 's' closing an acronym plural,
// as in "IDs" or "URLs".
func acronymPluralAt(runes []rune, i int) bool {
	if runes[i] != 's' {
		return false
	}
	return i+1 == len(runes) || !unicode.IsLetter(runes[i+1]) || unicode.IsUpper(runes[i+1])
}

// upperFirst capitalizes the first rune and keeps the rest as-is, so acronyms survive.
func upperFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if unicode.IsUpper(runes[0]) {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func toPascal(words []string) string {
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(upperFirst(w))
	}
	return sb.String()
}

func toCamel(words []string) string {
	var sb strings.Builder
	for i, w := range words {
		if i == 0 {
			sb.WriteString(strings.ToLower(w))
			continue
		}
		sb.WriteString(upperFirst(w))
	}
	return sb.String()
}

func toSnake(words []string) string {
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	return strings.Join(lower, "_")
}

func toTitle(words []string) string {
	titled := make([]string, len(words))
	for i, w := range words {
		titled[i] = upperFirst(w)
	}
	return strings.Join(titled, " ")
}
