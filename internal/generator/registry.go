package generator

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/origadmin/syngen/internal/model"
)

// entry is a registered strategy with its type parameter erased.
type entry struct {
	name      string
	priority  int
	order     int
	canHandle func(model.Node) bool
	generate  func(*Generator, Scope, model.Node) (string, error)
}

// Registry holds the strategies of one target language, keyed by exact node type.
//
// Resolution is exact-type: a node type without registrations of its own never falls
// back to the strategies of a type it embeds. The sorted candidate list of each type
// is computed once and cached; registering a new strategy invalidates that type's
// cache entry. A Registry is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	strategies map[reflect.Type][]*entry
	next       int
	resolved   sync.Map // reflect.Type -> []*entry, sorted
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[reflect.Type][]*entry)}
}

// Register adds s as a candidate for nodes whose runtime type is exactly T.
// T must be a concrete type; registering for an interface panics.
func Register[T model.Node](r *Registry, s Strategy[T]) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Interface {
		panic(errors.AssertionFailedf("strategy %T must bind a concrete node type, not %s", s, t))
	}
	e := &entry{
		name:     fmt.Sprintf("%T", s),
		priority: s.Priority(),
		canHandle: func(n model.Node) bool {
			return s.CanHandle(n.(T))
		},
		generate: func(g *Generator, scope Scope, n model.Node) (string, error) {
			return s.Generate(g, scope, n.(T))
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e.order = r.next
	r.next++
	r.strategies[t] = append(r.strategies[t], e)
	r.resolved.Delete(t)
}

// Len returns the number of strategies registered for t.
func (r *Registry) Len(t reflect.Type) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.strategies[t])
}

// candidates returns the strategies for t, highest priority first, ties in
// registration order.
func (r *Registry) candidates(t reflect.Type) []*entry {
	if v, ok := r.resolved.Load(t); ok {
		return v.([]*entry)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entry, len(r.strategies[t]))
	copy(list, r.strategies[t])
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority > list[j].priority
		}
		return list[i].order < list[j].order
	})
	// Stored under the read lock so a concurrent Register cannot be overtaken by a
	// stale list.
	r.resolved.Store(t, list)
	return list
}

// resolve picks the strategy for node.
func (r *Registry) resolve(node model.Node) (*entry, error) {
	t := reflect.TypeOf(node)
	list := r.candidates(t)
	for _, e := range list {
		if e.canHandle(node) {
			return e, nil
		}
	}
	return nil, errors.WithHint(
		&ResolutionError{Type: t, Candidates: len(list)},
		"register a strategy for this node type with generator.Register",
	)
}
