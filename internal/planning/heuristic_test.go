package planning

import (
	"testing"

	"github.com/ucr-ai-planner/goplanner/internal/formula"
	"github.com/ucr-ai-planner/goplanner/internal/ground"
)

func blockTemplate(name string, pre, eff formula.Formula) *ground.Template {
	return &ground.Template{Name: name, Precondition: pre, Effect: eff}
}

// a single-action, single-step scenario: goal reachable in exactly one
// ground action, so the relaxed heuristic must report 1.
func TestRelaxedPlanDistanceOneStep(t *testing.T) {
	atA := formula.NewAtom("on", formula.NewConst("a"), formula.NewConst("table"))
	clearA := formula.NewAtom("clear", formula.NewConst("a"))
	holding := formula.NewAtom("holding", formula.NewConst("a"))

	pickup := blockTemplate("pickup(a)", formula.NewAnd(clearA, atA), holding)

	start := formula.NewWorld(formula.NewAtomSet(atA, clearA), map[string][]string{})
	goal := formula.NewAtom("holding", formula.NewConst("a"))

	got := relaxedPlanDistance(start, []*ground.Template{pickup}, flattenConjuncts(goal))
	if got != 1 {
		t.Fatalf("expected distance 1, got %v", got)
	}
}

// a two-step chain: pickup then stack, so the relaxed heuristic must
// count both supporting actions.
func TestRelaxedPlanDistanceTwoStep(t *testing.T) {
	a, b, table := formula.NewConst("a"), formula.NewConst("b"), formula.NewConst("table")
	onATable := formula.NewAtom("on", a, table)
	clearA := formula.NewAtom("clear", a)
	clearB := formula.NewAtom("clear", b)
	holdingA := formula.NewAtom("holding", a)
	onAB := formula.NewAtom("on", a, b)

	pickup := blockTemplate("pickup(a)", formula.NewAnd(clearA, onATable), holdingA)
	stack := blockTemplate("stack(a,b)", formula.NewAnd(holdingA, clearB), onAB)

	start := formula.NewWorld(formula.NewAtomSet(onATable, clearA, clearB), map[string][]string{})
	goal := onAB

	got := relaxedPlanDistance(start, []*ground.Template{pickup, stack}, flattenConjuncts(goal))
	if got != 2 {
		t.Fatalf("expected distance 2, got %v", got)
	}
}

// no action in the template set can ever produce the goal atom, so the
// forward fixpoint saturates short of the goal and the sentinel applies.
func TestRelaxedPlanDistanceUnreachableSentinel(t *testing.T) {
	a := formula.NewConst("a")
	clearA := formula.NewAtom("clear", a)
	unreachable := formula.NewAtom("flying", a)

	start := formula.NewWorld(formula.NewAtomSet(clearA), map[string][]string{})

	got := relaxedPlanDistance(start, nil, flattenConjuncts(unreachable))
	if got != unreachableSentinel {
		t.Fatalf("expected sentinel %v, got %v", float64(unreachableSentinel), got)
	}
}

func TestFlattenConjunctsRecursesAnd(t *testing.T) {
	a := formula.NewAtom("p", formula.NewConst("x"))
	b := formula.NewAtom("q", formula.NewConst("y"))
	nested := formula.NewAnd(a, formula.NewAnd(b))

	got := flattenConjuncts(nested)
	if len(got) != 2 {
		t.Fatalf("expected 2 atoms, got %d", len(got))
	}
}

func TestFlattenConjunctsIgnoresOr(t *testing.T) {
	or := formula.NewOr(formula.NewAtom("p", formula.NewConst("x")))
	if got := flattenConjuncts(or); got != nil {
		t.Fatalf("expected nil for a non-atom/and formula, got %v", got)
	}
}
