package ground

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ucr-ai-planner/goplanner/internal/formula"
	"github.com/ucr-ai-planner/goplanner/internal/pddl"
)

// Template is a ground action template (schema-name, bound-arg-list,
// formula), spec.md §4.3: Precondition and Effect are fully ground (no
// free variables remain), and Name is the deterministic display name
// schema-name(v_0,v_1,...) in declared parameter order.
type Template struct {
	Name         string
	Precondition formula.Formula
	Effect       formula.Formula
}

// Formula returns the combined when(precondition, effect) form spec.md
// names as the template's canonical representation. Applying it via
// World.Apply or World.ApplyRelaxed is a no-op when the precondition
// doesn't hold in the given world. The relaxed-plan heuristic does not
// use it: it checks Precondition itself and reads Effect's changes.
func (t *Template) Formula() formula.Formula {
	return formula.NewWhen(t.Precondition, t.Effect)
}

func (t *Template) String() string { return t.Name }

// Schema grounds a single action schema over the universe sets,
// expanding one declared parameter at a time (spec.md §4.3): each
// partially-bound template is multiplied out by the parameter's type
// domain, substituting that parameter's name throughout the remaining
// precondition/effect and appending its value to the argument list.
func Schema(schema *pddl.ActionSchema, sets map[string][]string) ([]*Template, error) {
	type partial struct {
		args []string
		pre  formula.Formula
		eff  formula.Formula
	}

	templates := []partial{{args: make([]string, 0, len(schema.Parameters)), pre: schema.Precondition, eff: schema.Effect}}

	for _, p := range schema.Parameters {
		domain, ok := sets[p.Type]
		if !ok {
			return nil, fmt.Errorf("ground: schema %s: unknown type %q for parameter %s", schema.Name, p.Type, p.Name)
		}
		next := make([]partial, 0, len(templates)*len(domain))
		for _, t := range templates {
			for _, value := range domain {
				args := make([]string, len(t.args), len(t.args)+1)
				copy(args, t.args)
				args = append(args, value)
				next = append(next, partial{
					args: args,
					pre:  t.pre.Substitute(p.Name, value),
					eff:  t.eff.Substitute(p.Name, value),
				})
			}
		}
		templates = next
	}

	out := make([]*Template, len(templates))
	for i, t := range templates {
		out[i] = &Template{Name: displayName(schema.Name, t.args), Precondition: t.pre, Effect: t.eff}
	}
	log.Debug().Str("schema", schema.Name).Int("count", len(out)).Msg("ground: instantiated schema")
	return out, nil
}

// Domain grounds every action schema in d over sets, concatenating the
// results in schema-declaration order (spec.md §9 determinism:
// "traversal of neighbor sets follows the insertion order of the
// ground-template list").
func Domain(d *pddl.Domain, sets map[string][]string) ([]*Template, error) {
	var all []*Template
	for _, schema := range d.Actions {
		templates, err := Schema(schema, sets)
		if err != nil {
			return nil, err
		}
		all = append(all, templates...)
	}
	return all, nil
}

func displayName(name string, args []string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(strings.Join(args, ","))
	b.WriteByte(')')
	return b.String()
}
