// Package planning adapts the formula/world machinery and grounded
// action templates to the search driver's graph interface (spec.md
// §4.4 "Planning node"), and implements the relaxed-plan heuristic
// (§4.6) and the top-level Plan orchestration (§6 in-process API).
package planning

import (
	"github.com/ucr-ai-planner/goplanner/internal/formula"
	"github.com/ucr-ai-planner/goplanner/internal/graph"
	"github.com/ucr-ai-planner/goplanner/internal/ground"
)

// Node wraps a world, the shared (read-only) list of ground templates,
// and a relaxed-mode flag. Its neighbors are computed lazily, one per
// ground template whose precondition currently holds (spec.md §4.4).
type Node struct {
	World     *formula.World
	Templates []*ground.Template
	Relaxed   bool
}

// NewNode constructs the search-start node for a world over templates,
// using ordinary (non-relaxed) effect application.
func NewNode(world *formula.World, templates []*ground.Template) *Node {
	return &Node{World: world, Templates: templates}
}

// ID returns the world's atom-set fingerprint: two planning nodes with
// the same true atoms are the same state for closed-set purposes
// (spec.md §4.4 "a canonical hash of the frozen atom-set is required").
func (n *Node) ID() string { return n.World.Fingerprint() }

// Neighbors filters the shared template list by precondition and
// applies each satisfied one (spec.md §4.4). Traversal follows the
// templates slice's order, which the grounder produced in schema
// declaration / parameter / domain-value order — the source of the
// system's overall determinism (spec.md §5).
func (n *Node) Neighbors() []graph.Edge {
	var edges []graph.Edge
	for _, t := range n.Templates {
		if !t.Precondition.Models(n.World) {
			continue
		}
		var next *formula.World
		if n.Relaxed {
			next = n.World.ApplyRelaxed(t.Formula())
		} else {
			next = n.World.Apply(t.Formula())
		}
		edges = append(edges, &edge{
			name:   t.Name,
			target: &Node{World: next, Templates: n.Templates, Relaxed: n.Relaxed},
		})
	}
	return edges
}

// edge is the unit-cost (spec.md §6 "step-cost-1") transition produced
// by applying one ground action template.
type edge struct {
	name   string
	target *Node
}

func (e *edge) Name() string       { return e.name }
func (e *edge) Cost() float64      { return 1 }
func (e *edge) Target() graph.Node { return e.target }
