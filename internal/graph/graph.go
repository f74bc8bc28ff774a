// Package graph defines the uniform node/edge interface the A* search
// driver (internal/search) consumes. It is deliberately minimal: a Node
// need only be able to produce its outgoing edges and report a stable
// identity, which the driver uses for its closed set and open-list
// overlay (spec.md §4.4, §9 "closed-set containment").
package graph

// Node is anything A* can search over: a plain static graph fixture (for
// tests) or a planning.Node wrapping a World and its ground action
// templates.
type Node interface {
	// ID returns a value that uniquely identifies this node's state: a
	// name for static test graphs, or the frozen atom-set fingerprint
	// for planning nodes. Two nodes with equal ID are the same state
	// for closed-set purposes.
	ID() string
	// Neighbors returns the node's outgoing edges, computed lazily.
	Neighbors() []Edge
}

// Edge connects a node to a successor at some cost, under some display
// name (for planning nodes, the ground action's name).
type Edge interface {
	Name() string
	Cost() float64
	Target() Node
}

// StaticNode/StaticEdge are plain, eagerly-specified graph fixtures used
// by tests and by anything that isn't a grounded planning problem (e.g.
// the pathfinding scenarios in spec.md §8).
type StaticNode struct {
	Name  string
	edges []Edge
}

func NewStaticNode(name string) *StaticNode { return &StaticNode{Name: name} }

func (n *StaticNode) ID() string          { return n.Name }
func (n *StaticNode) Neighbors() []Edge   { return n.edges }
func (n *StaticNode) AddEdge(e Edge)      { n.edges = append(n.edges, e) }
func (n *StaticNode) Link(name string, cost float64, target *StaticNode) {
	n.AddEdge(&StaticEdge{name: name, cost: cost, target: target})
}

type StaticEdge struct {
	name   string
	cost   float64
	target Node
}

func NewStaticEdge(name string, cost float64, target Node) *StaticEdge {
	return &StaticEdge{name: name, cost: cost, target: target}
}

func (e *StaticEdge) Name() string   { return e.name }
func (e *StaticEdge) Cost() float64  { return e.cost }
func (e *StaticEdge) Target() Node   { return e.target }
