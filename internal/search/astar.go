// Package search implements a generic best-first (A*) graph search over
// an implicitly-generated successor graph, parameterized by a
// caller-supplied heuristic and goal predicate (spec.md §4.5). It knows
// nothing about planning, PDDL, or worlds — it operates purely in terms
// of internal/graph's Node/Edge interface, so it serves both plain
// static graphs and the grounded planning graph.
package search

import (
	"container/heap"

	"github.com/rs/zerolog/log"

	"github.com/ucr-ai-planner/goplanner/internal/graph"
)

// Heuristic estimates the cost from n to a goal, given the edge used to
// reach it. Unlike classical A*, the edge is available to the
// heuristic so it can account for the specific action that produced the
// node (useful when edges represent complex actions, as in planning).
type Heuristic func(n graph.Node, edge graph.Edge) float64

// Zero is the admissible constant-zero heuristic (spec.md's
// "default_heuristic" / the CLI's "-d" flag), which degrades A* to
// uniform-cost search.
func Zero(graph.Node, graph.Edge) float64 { return 0 }

// GoalFunc reports whether n satisfies the search goal.
type GoalFunc func(n graph.Node) bool

// Result is the outcome of an AStar run.
type Result struct {
	// Path is the ordered sequence of edges from start to a goal node,
	// or nil if no goal was reached.
	Path []graph.Edge
	// Cost is the sum of Path's edge costs, or 0 if Path is nil.
	Cost float64
	// Found reports whether a goal node was reached; Path/Cost are only
	// meaningful when true (spec.md §7: "path = nil, cost = nil").
	Found bool
	// Visited is the number of nodes inserted into the frontier
	// (pushed + popped) over the run.
	Visited int
	// Expanded is the number of nodes popped off the frontier and
	// expanded.
	Expanded int
}

// entry is one frontier slot: (priority, tiebreak, node, g, parent,
// incoming edge), per spec.md §3 "Search frontier entry".
type entry struct {
	f, g     float64
	tiebreak int
	node     graph.Node
	edge     graph.Edge
	parent   *entry
	index    int // heap.Interface bookkeeping
}

// frontier is a binary min-heap ordered by (f, tiebreak), with a
// side-table from node ID to its current entry so replacing an open
// node's priority doesn't require the O(n) linear scan spec.md §4.5
// calls merely "acceptable" (the hash-indexed overlay is the permitted
// optimization it names).
type frontier struct {
	entries []*entry
	byID    map[string]*entry
}

func (f *frontier) Len() int { return len(f.entries) }

func (f *frontier) Less(i, j int) bool {
	a, b := f.entries[i], f.entries[j]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.tiebreak < b.tiebreak
}

func (f *frontier) Swap(i, j int) {
	f.entries[i], f.entries[j] = f.entries[j], f.entries[i]
	f.entries[i].index = i
	f.entries[j].index = j
}

func (f *frontier) Push(x any) {
	e := x.(*entry)
	e.index = len(f.entries)
	f.entries = append(f.entries, e)
}

func (f *frontier) Pop() any {
	old := f.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	f.entries = old[:n-1]
	return e
}

// AStar searches from start for any node satisfying goal, using h to
// order the frontier. See spec.md §4.5 for the full algorithm and
// §3/§9 for the data structures.
func AStar(start graph.Node, h Heuristic, goal GoalFunc) Result {
	fr := &frontier{byID: make(map[string]*entry)}
	heap.Init(fr)

	closed := make(map[string]struct{})
	tiebreak := 0

	startEntry := &entry{f: h(start, nil), g: 0, tiebreak: tiebreak, node: start}
	heap.Push(fr, startEntry)
	fr.byID[start.ID()] = startEntry
	visited := 1

	for fr.Len() > 0 {
		current := heap.Pop(fr).(*entry)
		delete(fr.byID, current.node.ID())
		closed[current.node.ID()] = struct{}{}

		log.Debug().
			Str("node", current.node.ID()).
			Str("incoming_edge", edgeName(current.edge)).
			Float64("g", current.g).
			Msg("search: expand node")

		if goal(current.node) {
			return Result{
				Path:     reconstruct(current),
				Cost:     current.g,
				Found:    true,
				Visited:  visited,
				Expanded: len(closed),
			}
		}

		for _, e := range current.node.Neighbors() {
			tiebreak++
			target := e.Target()
			g := current.g + e.Cost()
			f := g + h(target, e)

			log.Debug().
				Str("edge", e.Name()).
				Float64("cost", e.Cost()).
				Float64("g", g).
				Float64("h", f-g).
				Float64("f", f).
				Int("tiebreak", tiebreak).
				Msg("search: consider neighbor")

			if _, done := closed[target.ID()]; done {
				continue
			}

			if existing, open := fr.byID[target.ID()]; open {
				if f < existing.f {
					existing.f = f
					existing.g = g
					existing.tiebreak = tiebreak
					existing.edge = e
					existing.parent = current
					heap.Fix(fr, existing.index)
				}
				continue
			}

			ne := &entry{f: f, g: g, tiebreak: tiebreak, node: target, edge: e, parent: current}
			heap.Push(fr, ne)
			fr.byID[target.ID()] = ne
			visited++
		}
	}

	return Result{Found: false, Visited: visited, Expanded: len(closed)}
}

func edgeName(e graph.Edge) string {
	if e == nil {
		return "-"
	}
	return e.Name()
}

// reconstruct walks parent pointers from a goal entry back to the start
// and returns the edges in forward (start-to-goal) order.
func reconstruct(e *entry) []graph.Edge {
	var path []graph.Edge
	for cur := e; cur != nil && cur.edge != nil; cur = cur.parent {
		path = append(path, cur.edge)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
