package planning

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ucr-ai-planner/goplanner/internal/formula"
	"github.com/ucr-ai-planner/goplanner/internal/graph"
	"github.com/ucr-ai-planner/goplanner/internal/ground"
	"github.com/ucr-ai-planner/goplanner/internal/pddl"
	"github.com/ucr-ai-planner/goplanner/internal/search"
)

// Plan grounds domain/problem and runs A* from the initial state to any
// world satisfying the goal (spec.md §6 "plan(domain, problem,
// use_heuristic)"). When useHeuristic is false the search falls back to
// search.Zero, degrading to uniform-cost search.
func Plan(domain *pddl.Domain, problem *pddl.Problem, useHeuristic bool) (search.Result, error) {
	sets := ground.BuildUniverse(domain, problem)
	templates, err := ground.Domain(domain, sets)
	if err != nil {
		return search.Result{}, fmt.Errorf("planning: %w", err)
	}

	start := NewNode(formula.NewWorld(problem.Init, sets), templates)

	h := search.Zero
	if useHeuristic {
		h = NewRelaxedHeuristic(problem.Goal)
	}

	log.Debug().
		Int("templates", len(templates)).
		Bool("use_heuristic", useHeuristic).
		Msg("planning: starting search")

	goalFunc := func(n graph.Node) bool {
		return problem.Goal.Models(n.(*Node).World)
	}

	return search.AStar(start, h, goalFunc), nil
}
