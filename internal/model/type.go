package model

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Well-known neutral type names. Backends map them to their own spelling.
const (
	TypeVoid     = "void"
	TypeString   = "string"
	TypeBool     = "bool"
	TypeInt      = "int"
	TypeLong     = "long"
	TypeDecimal  = "decimal"
	TypeDouble   = "double"
	TypeGuid     = "Guid"
	TypeDateTime = "DateTime"
	TypeList     = "List"
	TypeDict     = "Dictionary"
	TypeTask     = "Task"
	TypeObject   = "object"
)

// TypeRef is a reference to a type by name, optionally generic.
type TypeRef struct {
	// Name is the type name without type arguments, e.g. "List".
	Name string
	// Args are the ordered type arguments, e.g. [Order] for List<Order>.
	Args []*TypeRef
	// Nullable marks an optional value (Order?, *Order).
	Nullable bool
}

// Ref builds a type reference.
func Ref(name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Name: name, Args: args}
}

// ListOf is shorthand for Ref(TypeList, elem).
func ListOf(elem *TypeRef) *TypeRef {
	return Ref(TypeList, elem)
}

// IsGeneric reports whether the reference carries type arguments.
func (t *TypeRef) IsGeneric() bool {
	return t != nil && len(t.Args) > 0
}

// IsVoid reports whether t is nil or names void.
func (t *TypeRef) IsVoid() bool {
	return t == nil || t.Name == TypeVoid
}

// Optional returns a nullable copy of t.
func (t *TypeRef) Optional() *TypeRef {
	c := *t
	c.Nullable = true
	return &c
}

// Equals compares two references structurally.
func (t *TypeRef) Equals(other *TypeRef) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Name != other.Name || t.Nullable != other.Nullable || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(other.Args[i]) {
			return false
		}
	}
	return true
}

// String renders the neutral form, e.g. "Dictionary<string, List<Order>>?".
func (t *TypeRef) String() string {
	if t == nil {
		return TypeVoid
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeRef) write(sb *strings.Builder) {
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			a.write(sb)
		}
		sb.WriteByte('>')
	}
	if t.Nullable {
		sb.WriteByte('?')
	}
}

// ParseRef parses the neutral form produced by String.
func ParseRef(s string) (*TypeRef, error) {
	p := &refParser{src: s}
	ref, err := p.parse()
	if err != nil {
		return nil, errors.Wrapf(err, "parse type %q", s)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errors.Newf("parse type %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}
	return ref, nil
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *refParser) parse() (*TypeRef, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("<>,? ", rune(p.src[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		return nil, errors.Newf("missing type name at offset %d", start)
	}
	ref := &TypeRef{Name: p.src[start:p.pos]}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '<' {
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return nil, err
			}
			ref.Args = append(ref.Args, arg)
			p.skipSpace()
			if p.pos >= len(p.src) {
				return nil, errors.New("unterminated type argument list")
			}
			if p.src[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.src[p.pos] == '>' {
				p.pos++
				break
			}
			return nil, errors.Newf("unexpected %q at offset %d", p.src[p.pos], p.pos)
		}
	}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '?' {
		p.pos++
		ref.Nullable = true
	}
	return ref, nil
}
