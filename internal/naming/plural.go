package naming

import (
	"strings"
	"unicode"
)

// uncountable words are returned unchanged by the pluralizer.
var uncountable = map[string]bool{
	"data":        true,
	"deer":        true,
	"equipment":   true,
	"feedback":    true,
	"fish":        true,
	"information": true,
	"metadata":    true,
	"money":       true,
	"moose":       true,
	"news":        true,
	"rice":        true,
	"series":      true,
	"sheep":       true,
	"software":    true,
	"species":     true,
}

// irregular maps a lower-case singular to its lower-case plural. The table is the
// complete set of exceptions; anything else goes through the suffix rules.
var irregular = map[string]string{
	"analysis":  "analyses",
	"axis":      "axes",
	"basis":     "bases",
	"cactus":    "cacti",
	"calf":      "calves",
	"child":     "children",
	"crisis":    "crises",
	"criterion": "criteria",
	"datum":     "data",
	"echo":      "echoes",
	"foot":      "feet",
	"goose":     "geese",
	"half":      "halves",
	"hero":      "heroes",
	"knife":     "knives",
	"leaf":      "leaves",
	"life":      "lives",
	"loaf":      "loaves",
	"man":       "men",
	"matrix":    "matrices",
	"medium":    "media",
	"mouse":     "mice",
	"ox":        "oxen",
	"person":    "people",
	"potato":    "potatoes",
	"quiz":      "quizzes",
	"radius":    "radii",
	"shelf":     "shelves",
	"thesis":    "theses",
	"thief":     "thieves",
	"tomato":    "tomatoes",
	"tooth":     "teeth",
	"vertex":    "vertices",
	"wife":      "wives",
	"wolf":      "wolves",
	"woman":     "women",
}

// IrregularPlurals returns a copy of the irregular table, keyed by singular.
func IrregularPlurals() map[string]string {
	out := make(map[string]string, len(irregular))
	for k, v := range irregular {
		out[k] = v
	}
	return out
}

// pluralizeWord pluralizes a single word, keeping the casing of the shared stem.
// "Category" -> "Categories", "API" -> "APIs", "Person" -> "People".
func pluralizeWord(word string) string {
	if isAcronymPlural(word) {
		return word
	}
	lower := strings.ToLower(word)
	plural := pluralLower(lower)
	if plural == lower {
		return word
	}

	wr, lr, pr := []rune(word), []rune(lower), []rune(plural)
	common := 0
	for common < len(wr) && common < len(lr) && common < len(pr) && lr[common] == pr[common] {
		common++
	}

	suffix := string(pr[common:])
	if len(wr) > 1 && word == strings.ToUpper(word) && common < len(lr) {
		suffix = strings.ToUpper(suffix)
	}
	if common == 0 {
		// Nothing shared with the stem: carry over the leading capital only.
		return upperFirstIf(suffix, unicode.IsUpper(wr[0]))
	}
	return string(wr[:common]) + suffix
}

func pluralLower(lower string) string {
	if lower == "" || uncountable[lower] {
		return lower
	}
	if p, ok := irregular[lower]; ok {
		return p
	}

	switch {
	case strings.HasSuffix(lower, "s"),
		strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return lower + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return lower[:len(lower)-1] + "ies"
	default:
		return lower + "s"
	}
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func upperFirstIf(s string, upper bool) string {
	if !upper {
		return s
	}
	return upperFirst(s)
}

// isAcronymPlural reports whether word is an upper-case run followed by a single
// 's', such as "IDs". Such a word is already plural.
func isAcronymPlural(word string) bool {
	runes := []rune(word)
	if len(runes) < 3 || runes[len(runes)-1] != 's' {
		return false
	}
	for _, r := range runes[:len(runes)-1] {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
