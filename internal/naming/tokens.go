package naming

import (
	"fmt"
	"strings"
)

// Key suffixes used by TokensBuilder.WithDerived. A prefix of "entityName" yields
// "entityName", "entityNamePascalCase", "entityNamePascalCasePlural" and so on.
const (
	SuffixPascal       = "PascalCase"
	SuffixPascalPlural = "PascalCasePlural"
	SuffixCamel        = "CamelCase"
	SuffixCamelPlural  = "CamelCasePlural"
	SuffixSnake        = "SnakeCase"
	SuffixSnakePlural  = "SnakeCasePlural"
	SuffixTitle        = "TitleCase"
)

// Tokens is an immutable, insertion-ordered table of substitution values.
// Keys are case-sensitive. The zero value is an empty table.
type Tokens struct {
	keys   []string
	values map[string]any
}

// Len returns the number of keys in the table.
func (t Tokens) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t Tokens) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Value returns the raw value stored under key.
func (t Tokens) Value(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Lookup returns the string form of the value stored under key.
func (t Tokens) Lookup(key string) (string, bool) {
	v, ok := t.values[key]
	if !ok {
		return "", false
	}
	return FormatValue(v), true
}

// Get returns the string form of key, or "" when the key is absent.
func (t Tokens) Get(key string) string {
	s, _ := t.Lookup(key)
	return s
}

// FormatValue renders a token value as text. Lists are joined with ", ".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// TokensBuilder builds a Tokens table incrementally.
type TokensBuilder struct {
	keys   []string
	values map[string]any
}

// NewTokens returns an empty builder.
func NewTokens() *TokensBuilder {
	return &TokensBuilder{values: make(map[string]any)}
}

// With sets key to value. A later call for the same key overwrites the value but
// keeps the key's original position.
func (b *TokensBuilder) With(key string, value any) *TokensBuilder {
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
	return b
}

// WithDerived derives name and inserts all eight variants under prefix.
func (b *TokensBuilder) WithDerived(prefix, name string) *TokensBuilder {
	n := Derive(name)
	return b.WithNames(prefix, n)
}

// WithNames inserts an already derived variant set under prefix.
func (b *TokensBuilder) WithNames(prefix string, n Names) *TokensBuilder {
	return b.
		With(prefix, n.Value).
		With(prefix+SuffixPascal, n.Pascal).
		With(prefix+SuffixPascalPlural, n.PascalPlural).
		With(prefix+SuffixCamel, n.Camel).
		With(prefix+SuffixCamelPlural, n.CamelPlural).
		With(prefix+SuffixSnake, n.Snake).
		With(prefix+SuffixSnakePlural, n.SnakePlural).
		With(prefix+SuffixTitle, n.Title)
}

// WithTokens merges every entry of t into the builder, in t's order.
func (b *TokensBuilder) WithTokens(t Tokens) *TokensBuilder {
	for _, k := range t.keys {
		b.With(k, t.values[k])
	}
	return b
}

// Build returns a snapshot of the builder. Later builder mutations do not affect it.
func (b *TokensBuilder) Build() Tokens {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	values := make(map[string]any, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return Tokens{keys: keys, values: values}
}
