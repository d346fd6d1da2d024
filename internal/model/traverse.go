package model

// Descendants returns every node below n, depth-first, each parent before its
// children. n itself is not included.
//
// This is for read-only inspection. Generation order is governed by member lists
// alone and must not be derived from this traversal.
func Descendants(n Node) []Node {
	var out []Node
	var walk func(Node)
	walk = func(cur Node) {
		for _, c := range cur.Children() {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// Imports reports whether n or any of its descendants declares the using name.
func Imports(n Node, name string) bool {
	if n.base().HasUsing(name) {
		return true
	}
	for _, d := range Descendants(n) {
		if d.base().HasUsing(name) {
			return true
		}
	}
	return false
}

// AllUsings collects the usings of n and its descendants, first occurrence wins.
func AllUsings(n Node) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(node Node) {
		for _, u := range node.Usings() {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}
	}
	add(n)
	for _, d := range Descendants(n) {
		add(d)
	}
	return out
}

// Root follows parent links to the top-level node.
func Root(n Node) Node {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

// Enclosing returns the nearest ancestor of n with type T.
func Enclosing[T Node](n Node) (T, bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
