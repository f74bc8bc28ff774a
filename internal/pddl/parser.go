package pddl

import (
	"fmt"

	"github.com/ucr-ai-planner/goplanner/internal/formula"
)

// ParseDomain parses a PDDL domain document (spec.md §4.7 surface:
// :types, :constants, :predicates, one or more :action blocks each
// with :parameters/:precondition/:effect).
func ParseDomain(src string) (*Domain, error) {
	form, err := topLevelForm(src)
	if err != nil {
		return nil, err
	}
	d := &Domain{
		Types:      map[string][]string{},
		Constants:  map[string][]string{},
		Predicates: map[string][]Param{},
	}
	for _, el := range form[1:] {
		section, err := asList(el)
		if err != nil || len(section) == 0 {
			continue
		}
		head, err := asAtom(section[0])
		if err != nil {
			continue
		}
		switch head {
		case "domain":
			if len(section) > 1 {
				d.Name, _ = asAtom(section[1])
			}
		case ":types":
			d.Types, err = parseTypedGroups(section[1:])
		case ":constants":
			d.Constants, err = parseTypedGroups(section[1:])
		case ":predicates":
			err = parsePredicates(d, section[1:])
		case ":action":
			var action *ActionSchema
			action, err = parseAction(section)
			if err == nil {
				d.Actions = append(d.Actions, action)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ParseProblem parses a PDDL problem document (spec.md §4.7 surface:
// :objects, :init, :goal).
func ParseProblem(src string) (*Problem, error) {
	form, err := topLevelForm(src)
	if err != nil {
		return nil, err
	}
	p := &Problem{
		Objects: map[string][]string{},
		Init:    formula.NewAtomSet(),
	}
	for _, el := range form[1:] {
		section, err := asList(el)
		if err != nil || len(section) == 0 {
			continue
		}
		head, err := asAtom(section[0])
		if err != nil {
			continue
		}
		switch head {
		case "problem":
			if len(section) > 1 {
				p.Name, _ = asAtom(section[1])
			}
		case ":domain":
			if len(section) > 1 {
				p.Domain, _ = asAtom(section[1])
			}
		case ":objects":
			p.Objects, err = parseTypedGroups(section[1:])
		case ":init":
			err = parseInit(p, section[1:])
		case ":goal":
			if len(section) != 2 {
				err = fmt.Errorf("pddl: :goal expects exactly one expression")
			} else {
				p.Goal, err = buildFormula(section[1])
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// topLevelForm parses src and returns the single "(define ...)" form's
// elements, mirroring pddl.py's get_stack_from_pddl/parse_domain: a
// well-formed document reduces to exactly one top-level list.
func topLevelForm(src string) ([]sexpr, error) {
	stack, err := parse(src)
	if err != nil {
		return nil, err
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("pddl: expected exactly one top-level form, found %d", len(stack))
	}
	form, err := asList(stack[0])
	if err != nil {
		return nil, err
	}
	if len(form) == 0 {
		return nil, fmt.Errorf("pddl: empty document")
	}
	if head, _ := asAtom(form[0]); head != "define" {
		return nil, fmt.Errorf("pddl: expected (define ...), got %q", head)
	}
	return form, nil
}

// parseTypedGroups parses a flat "name name - type name - type name"
// token run into a map from type to the names declared under it,
// exactly the shape process_parameters produces for :types/:constants/
// :objects sections. Names with no trailing "- type" land under "".
func parseTypedGroups(tokens []sexpr) (map[string][]string, error) {
	groups := map[string][]string{}
	var pending []string
	dashFound := false
	for _, t := range tokens {
		tok, err := asAtom(t)
		if err != nil {
			return nil, err
		}
		if dashFound {
			groups[tok] = append(groups[tok], pending...)
			pending = nil
			dashFound = false
			continue
		}
		if tok == "-" {
			dashFound = true
			continue
		}
		pending = append(pending, tok)
	}
	if dashFound {
		return nil, fmt.Errorf("pddl: dangling '-' with no following type")
	}
	if len(pending) > 0 {
		groups[""] = append(groups[""], pending...)
	}
	return groups, nil
}

// parseOrderedParams is parseTypedGroups's counterpart for parameter
// lists, where declared order must survive (grounding substitutes
// positionally; spec.md §4.3's display name is in declared order).
func parseOrderedParams(tokens []sexpr) ([]Param, error) {
	var params []Param
	var pending []int // indices into params awaiting a type
	dashFound := false
	for _, t := range tokens {
		tok, err := asAtom(t)
		if err != nil {
			return nil, err
		}
		if dashFound {
			for _, i := range pending {
				params[i].Type = tok
			}
			pending = nil
			dashFound = false
			continue
		}
		if tok == "-" {
			dashFound = true
			continue
		}
		pending = append(pending, len(params))
		params = append(params, Param{Name: tok})
	}
	if dashFound {
		return nil, fmt.Errorf("pddl: dangling '-' with no following type")
	}
	return params, nil
}

func parsePredicates(d *Domain, decls []sexpr) error {
	for _, decl := range decls {
		sig, err := asList(decl)
		if err != nil || len(sig) == 0 {
			return fmt.Errorf("pddl: malformed predicate declaration")
		}
		name, err := asAtom(sig[0])
		if err != nil {
			return err
		}
		params, err := parseOrderedParams(sig[1:])
		if err != nil {
			return err
		}
		d.Predicates[name] = params
	}
	return nil
}

func parseInit(p *Problem, atoms []sexpr) error {
	for _, a := range atoms {
		f, err := buildFormula(a)
		if err != nil {
			return err
		}
		atom, ok := f.(*formula.Atom)
		if !ok {
			return fmt.Errorf("pddl: :init entries must be atoms, got %s", f)
		}
		p.Init.Add(atom)
	}
	return nil
}

// parseAction parses one (:action name :parameters (...) :precondition
// (...) :effect (...)) form. The named sections may appear in any
// order, matching pddl.py's flag-driven scan.
func parseAction(section []sexpr) (*ActionSchema, error) {
	if len(section) < 2 {
		return nil, fmt.Errorf("pddl: :action missing a name")
	}
	name, err := asAtom(section[1])
	if err != nil {
		return nil, fmt.Errorf("pddl: :action name must be an atom")
	}
	action := &ActionSchema{Name: name}

	const (
		none = iota
		wantParameters
		wantPrecondition
		wantEffect
	)
	expecting := none
	for _, part := range section[2:] {
		if expecting != none {
			switch expecting {
			case wantParameters:
				params, err := asList(part)
				if err != nil {
					return nil, fmt.Errorf("pddl: action %s: %w", name, err)
				}
				action.Parameters, err = parseOrderedParams(params)
				if err != nil {
					return nil, fmt.Errorf("pddl: action %s: %w", name, err)
				}
			case wantPrecondition:
				action.Precondition, err = buildFormula(part)
				if err != nil {
					return nil, fmt.Errorf("pddl: action %s precondition: %w", name, err)
				}
			case wantEffect:
				action.Effect, err = buildFormula(part)
				if err != nil {
					return nil, fmt.Errorf("pddl: action %s effect: %w", name, err)
				}
			}
			expecting = none
			continue
		}
		if tok, ok := part.(string); ok {
			switch tok {
			case ":parameters":
				expecting = wantParameters
			case ":precondition":
				expecting = wantPrecondition
			case ":effect":
				expecting = wantEffect
			}
		}
	}
	if action.Precondition == nil {
		action.Precondition = formula.NewAnd()
	}
	if action.Effect == nil {
		return nil, fmt.Errorf("pddl: action %s has no :effect", name)
	}
	return action, nil
}

// buildFormula turns a parsed s-expression into a formula.Formula,
// recognizing the keyword set and, otherwise equal to make_expression.
func buildFormula(s sexpr) (formula.Formula, error) {
	if atom, ok := s.(string); ok {
		return formula.NewConst(atom), nil
	}
	list, err := asList(s)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("pddl: empty expression")
	}
	head, err := asAtom(list[0])
	if err != nil {
		return nil, fmt.Errorf("pddl: expected an operator or predicate name")
	}

	switch head {
	case "and":
		children, err := buildFormulaList(list[1:])
		if err != nil {
			return nil, err
		}
		return formula.NewAnd(children...), nil
	case "or":
		children, err := buildFormulaList(list[1:])
		if err != nil {
			return nil, err
		}
		return formula.NewOr(children...), nil
	case "not":
		if len(list) != 2 {
			return nil, fmt.Errorf("pddl: not takes exactly one operand")
		}
		child, err := buildFormula(list[1])
		if err != nil {
			return nil, err
		}
		return formula.NewNot(child), nil
	case "imply":
		if len(list) != 3 {
			return nil, fmt.Errorf("pddl: imply takes exactly two operands")
		}
		a, err := buildFormula(list[1])
		if err != nil {
			return nil, err
		}
		b, err := buildFormula(list[2])
		if err != nil {
			return nil, err
		}
		return formula.NewImply(a, b), nil
	case "=":
		if len(list) != 3 {
			return nil, fmt.Errorf("pddl: = takes exactly two operands")
		}
		a, err := buildFormula(list[1])
		if err != nil {
			return nil, err
		}
		b, err := buildFormula(list[2])
		if err != nil {
			return nil, err
		}
		return formula.NewEquals(a, b), nil
	case "when":
		if len(list) != 3 {
			return nil, fmt.Errorf("pddl: when takes exactly two operands")
		}
		cond, err := buildFormula(list[1])
		if err != nil {
			return nil, err
		}
		eff, err := buildFormula(list[2])
		if err != nil {
			return nil, err
		}
		return formula.NewWhen(cond, eff), nil
	case "forall", "exists":
		if len(list) != 3 {
			return nil, fmt.Errorf("pddl: %s takes a variable spec and a body", head)
		}
		spec, err := parseVarSpec(list[1])
		if err != nil {
			return nil, err
		}
		body, err := buildFormula(list[2])
		if err != nil {
			return nil, err
		}
		if head == "forall" {
			return formula.NewForAll(spec, body), nil
		}
		return formula.NewExists(spec, body), nil
	default:
		args, err := buildFormulaList(list[1:])
		if err != nil {
			return nil, err
		}
		return formula.NewAtom(head, args...), nil
	}
}

func buildFormulaList(items []sexpr) ([]formula.Formula, error) {
	out := make([]formula.Formula, len(items))
	for i, it := range items {
		f, err := buildFormula(it)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// parseVarSpec parses a quantifier's bound-variable spec: ("?l" "-"
// "Locations") for a typed variable, or ("?l") for an untyped one.
func parseVarSpec(s sexpr) (*formula.VarSpec, error) {
	list, err := asList(s)
	if err != nil {
		return nil, fmt.Errorf("pddl: expected a variable specification")
	}
	switch len(list) {
	case 1:
		name, err := asAtom(list[0])
		if err != nil {
			return nil, err
		}
		return formula.NewVarSpec(name), nil
	case 3:
		name, err := asAtom(list[0])
		if err != nil {
			return nil, err
		}
		dash, err := asAtom(list[1])
		if err != nil || dash != "-" {
			return nil, fmt.Errorf("pddl: malformed typed variable specification")
		}
		typ, err := asAtom(list[2])
		if err != nil {
			return nil, err
		}
		return formula.NewTypedVarSpec(name, typ), nil
	default:
		return nil, fmt.Errorf("pddl: variable specification must have 1 or 3 elements")
	}
}
