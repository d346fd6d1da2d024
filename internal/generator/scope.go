package generator

import (
	"github.com/origadmin/syngen/internal/naming"
)

// Well-known scope keys.
const (
	KeyNamespace = "namespace"
	KeyDbContext = "dbContext"
	KeyDirectory = "directory"
	KeyModule    = "module"
)

// Scope is an immutable bag of ambient values handed down a generation call.
// Strategies read it; With returns a new Scope and never changes the receiver, so
// sibling strategies cannot talk to each other through it. The zero value is empty.
type Scope struct {
	head *scopeEntry
}

type scopeEntry struct {
	next  *scopeEntry
	key   string
	value any
}

// NewScope builds a scope from alternating key/value pairs.
func NewScope(pairs ...any) Scope {
	var s Scope
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		s = s.With(key, pairs[i+1])
	}
	return s
}

// With returns a scope in which key maps to value.
func (s Scope) With(key string, value any) Scope {
	return Scope{head: &scopeEntry{next: s.head, key: key, value: value}}
}

// Value returns the innermost value bound to key.
func (s Scope) Value(key string) (any, bool) {
	for e := s.head; e != nil; e = e.next {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// String returns the string form of key, or "" when unbound.
func (s Scope) String(key string) string {
	v, ok := s.Value(key)
	if !ok {
		return ""
	}
	return naming.FormatValue(v)
}

// StringOr returns the string form of key, or fallback when it is unbound or empty.
func (s Scope) StringOr(key, fallback string) string {
	if v := s.String(key); v != "" {
		return v
	}
	return fallback
}
