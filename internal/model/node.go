// Package model defines the semantic model the generators render: type declarations,
// their members, and the free-standing artifact descriptors (projects, routes, files,
// settings, db contexts) that are generated through the same protocol.
package model

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Node is an element of the semantic model.
type Node interface {
	// Parent returns the structural parent, or nil for a top-level node.
	Parent() Node
	// Usings returns the import/using references declared on this node, in insertion order.
	Usings() []string
	// Children returns the direct child nodes, in insertion order. It is for read-only
	// inspection and never drives generation order.
	Children() []Node

	base() *Base
}

// Base carries the structural state shared by every node. Node types embed it.
//
// The parent link is set once, when the node is attached to its container, and is
// never reassigned. That keeps the graph acyclic by construction.
type Base struct {
	parent Node
	usings []string
	frozen atomic.Bool
}

func (b *Base) base() *Base {
	return b
}

// Parent returns the structural parent, or nil.
func (b *Base) Parent() Node {
	return b.parent
}

// Usings returns a copy of the using list.
func (b *Base) Usings() []string {
	out := make([]string, len(b.usings))
	copy(out, b.usings)
	return out
}

// HasUsing reports whether name was declared directly on this node.
func (b *Base) HasUsing(name string) bool {
	for _, u := range b.usings {
		if u == name {
			return true
		}
	}
	return false
}

// AddUsing appends names that are not already present, preserving first-insertion order.
func (b *Base) AddUsing(names ...string) {
	b.mustBeMutable("using")
	for _, name := range names {
		if name == "" || b.HasUsing(name) {
			continue
		}
		b.usings = append(b.usings, name)
	}
}

// Frozen reports whether the node rejects further structural changes.
func (b *Base) Frozen() bool {
	return b.frozen.Load()
}

func (b *Base) mustBeMutable(what string) {
	if b.frozen.Load() {
		panic(errors.AssertionFailedf("cannot add %s to a frozen node", errors.Safe(what)))
	}
}

// adopt attaches child to parent. Attaching a node that already belongs to another
// parent is a programming error.
func adopt(parent, child Node) {
	cb := child.base()
	if cb.parent != nil && cb.parent != parent {
		panic(errors.AssertionFailedf("%T is already attached to %T", child, cb.parent))
	}
	cb.parent = parent
}

// Freeze marks n and every descendant as frozen. Subsequent Add* calls on any of
// them panic. Freezing is idempotent.
func Freeze(n Node) {
	n.base().frozen.Store(true)
	for _, d := range Descendants(n) {
		d.base().frozen.Store(true)
	}
}
