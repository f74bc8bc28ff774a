package pddl

import "github.com/ucr-ai-planner/goplanner/internal/formula"

// Param is one element of an ordered parameter list: a name (e.g.
// "?x") and its declared type, empty when the parameter is untyped.
type Param struct {
	Name string
	Type string
}

// ActionSchema is a lifted action: a name, its parameters in the order
// they were declared (grounding substitutes them positionally, per
// spec.md §4.3), and its precondition/effect formulas, still
// containing free variables.
type ActionSchema struct {
	Name         string
	Parameters   []Param
	Precondition formula.Formula
	Effect       formula.Formula
}

// Domain is the parsed intermediate form of a PDDL domain file.
type Domain struct {
	Name string
	// Types maps a declared supertype name to the subtype names declared
	// under it (e.g. ":types car truck - vehicle" yields
	// Types["vehicle"] = ["car","truck"]); Types[""] holds any types
	// declared with no supertype at all.
	Types map[string][]string
	// Constants maps a type name to the constant object names declared
	// of that type; Constants[""] holds untyped constants.
	Constants map[string][]string
	// Predicates maps a predicate name to its declared signature, for
	// documentation/validation; grounding does not consult it.
	Predicates map[string][]Param
	Actions    []*ActionSchema
}

// Problem is the parsed intermediate form of a PDDL problem file.
type Problem struct {
	Name   string
	Domain string
	// Objects maps a type name to the object names declared of that
	// type; Objects[""] holds untyped objects.
	Objects map[string][]string
	Init    *formula.AtomSet
	Goal    formula.Formula
}
