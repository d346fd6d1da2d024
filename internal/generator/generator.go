// Package generator dispatches semantic nodes to the generation strategies
// registered for their runtime type and drives recursive generation.
package generator

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/origadmin/syngen/internal/model"
)

// ErrNoStrategy is the cause of every resolution failure.
var ErrNoStrategy = errors.New("no strategy")

// ResolutionError reports that no registered strategy accepted a node.
type ResolutionError struct {
	// Type is the node's exact runtime type.
	Type reflect.Type
	// Candidates is the number of strategies registered for Type that declined it.
	Candidates int
}

func (e *ResolutionError) Error() string {
	if e.Candidates == 0 {
		return fmt.Sprintf("no strategy for type %s", e.Type)
	}
	return fmt.Sprintf("no strategy for type %s: %d candidates declined", e.Type, e.Candidates)
}

func (e *ResolutionError) Unwrap() error {
	return ErrNoStrategy
}

// Generator turns semantic nodes into text using the strategies of one Registry.
// It holds no per-call state and may be shared by concurrent callers as long as
// they do not share nodes.
type Generator struct {
	registry *Registry
}

// New creates a generator over registry.
func New(registry *Registry) *Generator {
	return &Generator{registry: registry}
}

// Registry returns the registry the generator dispatches through.
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Generate renders a top-level node with an empty scope.
func (g *Generator) Generate(node model.Node) (string, error) {
	return g.GenerateScoped(Scope{}, node)
}

// GenerateScoped renders a top-level node. The node and its descendants are frozen
// first: once generation begins they can no longer be modified.
//
// A resolution failure anywhere in the tree fails the whole call; partial output is
// never returned.
func (g *Generator) GenerateScoped(scope Scope, node model.Node) (string, error) {
	if isNil(node) {
		return "", errors.AssertionFailedf("generate: nil node")
	}
	model.Freeze(node)
	return g.Render(scope, node)
}

// Render dispatches node without freezing it. Strategies call it for child nodes and
// for nodes they build themselves.
func (g *Generator) Render(scope Scope, node model.Node) (string, error) {
	if isNil(node) {
		return "", errors.AssertionFailedf("render: nil node")
	}
	e, err := g.registry.resolve(node)
	if err != nil {
		return "", err
	}
	slog.Debug("Resolved strategy", "type", reflect.TypeOf(node).String(), "strategy", e.name, "priority", e.priority)

	out, err := e.generate(g, scope, node)
	if err != nil {
		return "", errors.Wrapf(err, "generate %s", reflect.TypeOf(node))
	}
	return out, nil
}

// RenderAll renders nodes in order and returns one result per node.
func (g *Generator) RenderAll(scope Scope, nodes ...model.Node) ([]string, error) {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s, err := g.Render(scope, n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// RenderMembers renders a declaration's members in insertion order.
func RenderMembers(g *Generator, scope Scope, decl *model.TypeDecl) ([]string, error) {
	members := decl.Members()
	nodes := make([]model.Node, len(members))
	for i, m := range members {
		nodes[i] = m
	}
	return g.RenderAll(scope, nodes...)
}

func isNil(node model.Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
