package planning

import (
	"github.com/rs/zerolog/log"

	"github.com/ucr-ai-planner/goplanner/internal/formula"
	"github.com/ucr-ai-planner/goplanner/internal/graph"
	"github.com/ucr-ai-planner/goplanner/internal/ground"
	"github.com/ucr-ai-planner/goplanner/internal/search"
)

// unreachableSentinel is returned when the relaxed planning graph
// reaches a fixpoint without covering the goal (spec.md §4.6, §9: "the
// heuristic's sentinel value (1000) is arbitrary and not provably an
// upper bound; treat as a tuning constant").
const unreachableSentinel = 1000

// NewRelaxedHeuristic returns a search.Heuristic estimating steps to
// goal via the Fast-Forward-style delete-relaxation described in
// spec.md §4.6. It only understands *Node values; any other graph.Node
// (e.g. a static test graph) gets a heuristic of 0.
func NewRelaxedHeuristic(goal formula.Formula) search.Heuristic {
	goalAtoms := flattenConjuncts(goal)
	return func(n graph.Node, _ graph.Edge) float64 {
		pn, ok := n.(*Node)
		if !ok {
			return 0
		}
		return relaxedPlanDistance(pn.World, pn.Templates, goalAtoms)
	}
}

// flattenConjuncts recovers an effect or goal's atom conjuncts,
// recursing into And and otherwise treating a bare Atom as a
// single-element conjunction (spec.md §4.6 "an Atom goal is promoted
// to And([atom])"). Non-atom, non-and children (Or, Not, Imply, ...)
// contribute nothing: the relaxed heuristic only reasons about
// positive atom requirements.
func flattenConjuncts(f formula.Formula) []*formula.Atom {
	switch v := f.(type) {
	case *formula.And:
		var out []*formula.Atom
		for _, c := range v.Children {
			out = append(out, flattenConjuncts(c)...)
		}
		return out
	case *formula.Atom:
		return []*formula.Atom{v}
	default:
		return nil
	}
}

// relaxedPlanDistance builds the relaxed planning graph forward from
// start, then extracts a supporting-action count backward from the
// goal layer (spec.md §4.6).
func relaxedPlanDistance(start *formula.World, templates []*ground.Template, goalAtoms []*formula.Atom) float64 {
	var propsLayers []*formula.AtomSet
	var actionLayers [][]*ground.Template

	current := start.Atoms
	propsLayers = append(propsLayers, current)

	for {
		layerWorld := formula.NewWorld(current, start.Sets)
		var fired []*ground.Template
		next := current.Clone()
		for _, t := range templates {
			if !t.Precondition.Models(layerWorld) {
				continue
			}
			fired = append(fired, t)
			adds, _ := t.Effect.Changes(layerWorld)
			next.UnionInPlace(adds)
		}
		actionLayers = append(actionLayers, fired)
		propsLayers = append(propsLayers, next)

		if next.ContainsAll(formula.NewAtomSet(goalAtoms...)) {
			break
		}
		if next.Equal(current) {
			log.Debug().Msg("heuristic: relaxed planning graph reached a fixpoint short of the goal")
			return unreachableSentinel
		}
		current = next
	}

	maxK := len(propsLayers) - 1

	firstLayer := func(a *formula.Atom) int {
		for i, p := range propsLayers {
			if p.Contains(a) {
				return i
			}
		}
		return 0
	}

	needed := make(map[int][]*formula.Atom)
	for _, g := range goalAtoms {
		if k := firstLayer(g); k > 0 {
			needed[k] = append(needed[k], g)
		}
	}

	achieved := formula.NewAtomSet()
	count := 0
	for k := maxK; k >= 1; k-- {
		layerWorld := formula.NewWorld(propsLayers[k-1], start.Sets)
		for _, g := range needed[k] {
			if achieved.Contains(g) {
				continue
			}
			achieved.Add(g)

			var supporter *ground.Template
			for _, t := range actionLayers[k-1] {
				adds, _ := t.Effect.Changes(layerWorld)
				if adds.Contains(g) {
					supporter = t
					break
				}
			}
			if supporter == nil {
				continue
			}
			count++
			for _, p := range flattenConjuncts(supporter.Precondition) {
				if j := firstLayer(p); j > 0 {
					needed[j] = append(needed[j], p)
				}
			}
		}
	}
	return float64(count)
}
