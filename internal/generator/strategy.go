package generator

import (
	"github.com/origadmin/syngen/internal/model"
)

// Strategy renders one concrete node type.
//
// Among the strategies registered for a node's exact runtime type, the dispatcher
// picks the highest Priority whose CanHandle accepts the node. Equal priorities are
// tried in registration order.
type Strategy[T model.Node] interface {
	Priority() int
	CanHandle(node T) bool
	Generate(g *Generator, scope Scope, node T) (string, error)
}

// Default provides priority 0 and an always-true CanHandle. Embed it in strategies
// that do not filter.
type Default[T model.Node] struct{}

func (Default[T]) Priority() int { return 0 }

func (Default[T]) CanHandle(T) bool { return true }

// Func adapts plain functions to a Strategy.
type Func[T model.Node] struct {
	Prio int
	// Match filters nodes; nil accepts every node.
	Match  func(T) bool
	Render func(g *Generator, scope Scope, node T) (string, error)
}

func (f Func[T]) Priority() int { return f.Prio }

func (f Func[T]) CanHandle(node T) bool {
	return f.Match == nil || f.Match(node)
}

func (f Func[T]) Generate(g *Generator, scope Scope, node T) (string, error) {
	return f.Render(g, scope, node)
}
