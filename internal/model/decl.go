package model

import (
	"github.com/cockroachdb/errors"
)

// Access is a declaration's access level.
type Access int

const (
	Public Access = iota
	Private
	Protected
	Internal
	ProtectedInternal
)

func (a Access) String() string {
	switch a {
	case Private:
		return "private"
	case Protected:
		return "protected"
	case Internal:
		return "internal"
	case ProtectedInternal:
		return "protected internal"
	default:
		return "public"
	}
}

// DeclKind tells the member strategies which container they render inside.
type DeclKind int

const (
	Class DeclKind = iota
	Interface
)

func (k DeclKind) String() string {
	if k == Interface {
		return "interface"
	}
	return "class"
}

// Member is a node that may be placed in a TypeDecl's member list.
type Member interface {
	Node
	MemberName() string
}

// TypeDecl declares a class or an interface.
type TypeDecl struct {
	Base

	Name      string
	Namespace string
	Access    Access
	Kind      DeclKind
	Partial   bool
	Static    bool
	// Abstract marks a class that cannot be instantiated. A class holding an
	// abstract method is abstract whether or not the flag is set.
	Abstract bool
	// BaseType is the class this declaration extends. Ignored for interfaces.
	BaseType *TypeRef

	implements []*TypeRef
	attributes []*Attribute
	members    []Member
}

// NewClass creates an empty public class.
func NewClass(name string) *TypeDecl {
	return &TypeDecl{Name: name, Kind: Class}
}

// NewInterface creates an empty public interface.
func NewInterface(name string) *TypeDecl {
	return &TypeDecl{Name: name, Kind: Interface}
}

// Add appends members in order. The order of Add calls is the order of emission.
//
// An interface only accepts properties and methods; adding a field or a constructor
// to one panics, as does adding to a frozen declaration.
func (d *TypeDecl) Add(members ...Member) *TypeDecl {
	d.mustBeMutable("member")
	for _, m := range members {
		if m == nil {
			panic(errors.AssertionFailedf("nil member added to %s", errors.Safe(d.Name)))
		}
		if d.Kind == Interface {
			switch m.(type) {
			case *Field, *Constructor:
				panic(errors.AssertionFailedf("interface %s cannot declare %T", errors.Safe(d.Name), m))
			}
		}
		adopt(d, m)
		d.members = append(d.members, m)
	}
	return d
}

// AddAttribute attaches attributes to the declaration itself.
func (d *TypeDecl) AddAttribute(attrs ...*Attribute) *TypeDecl {
	d.mustBeMutable("attribute")
	for _, a := range attrs {
		adopt(d, a)
		d.attributes = append(d.attributes, a)
	}
	return d
}

// Implement records implemented interfaces, in order.
func (d *TypeDecl) Implement(refs ...*TypeRef) *TypeDecl {
	d.mustBeMutable("interface reference")
	d.implements = append(d.implements, refs...)
	return d
}

// Members returns the member list in insertion order.
func (d *TypeDecl) Members() []Member {
	out := make([]Member, len(d.members))
	copy(out, d.members)
	return out
}

// Attributes returns the declaration's attributes.
func (d *TypeDecl) Attributes() []*Attribute {
	out := make([]*Attribute, len(d.attributes))
	copy(out, d.attributes)
	return out
}

// Implements returns the implemented interface references.
func (d *TypeDecl) Implements() []*TypeRef {
	out := make([]*TypeRef, len(d.implements))
	copy(out, d.implements)
	return out
}

// Fields returns the field members in insertion order.
func (d *TypeDecl) Fields() []*Field {
	return membersOf[*Field](d)
}

// Properties returns the property members in insertion order.
func (d *TypeDecl) Properties() []*Property {
	return membersOf[*Property](d)
}

// Methods returns the method members in insertion order.
func (d *TypeDecl) Methods() []*Method {
	return membersOf[*Method](d)
}

// Constructors returns the constructor members in insertion order.
func (d *TypeDecl) Constructors() []*Constructor {
	return membersOf[*Constructor](d)
}

// IsAbstract reports whether d is an abstract class.
func (d *TypeDecl) IsAbstract() bool {
	if d.Kind != Class {
		return false
	}
	if d.Abstract {
		return true
	}
	for _, m := range d.Methods() {
		if m.Abstract {
			return true
		}
	}
	return false
}

// Children lists attributes first, then members.
func (d *TypeDecl) Children() []Node {
	out := make([]Node, 0, len(d.attributes)+len(d.members))
	for _, a := range d.attributes {
		out = append(out, a)
	}
	for _, m := range d.members {
		out = append(out, m)
	}
	return out
}

func membersOf[T Member](d *TypeDecl) []T {
	var out []T
	for _, m := range d.members {
		if t, ok := m.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
