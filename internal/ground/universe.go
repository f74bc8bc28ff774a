// Package ground builds the typed object universe from a parsed
// Domain/Problem and instantiates lifted action schemas into ground
// action templates over it (spec.md §4.3, §4.4).
package ground

import "github.com/ucr-ai-planner/goplanner/internal/pddl"

// BuildUniverse merges domain constants and problem objects (duplicate
// type keys union rather than overwrite) into the per-type object
// sets, then closes the type hierarchy transitively so a non-leaf
// type's set contains every leaf object declared under it (spec.md
// §4.4 "type universe construction"). sets[""] is finally set to the
// deduplicated union of every other entry.
func BuildUniverse(d *pddl.Domain, p *pddl.Problem) map[string][]string {
	leaf := mergeGroups(d.Constants, p.Objects)

	names := map[string]struct{}{}
	for t := range leaf {
		names[t] = struct{}{}
	}
	for t, children := range d.Types {
		names[t] = struct{}{}
		for _, c := range children {
			names[c] = struct{}{}
		}
	}

	sets := make(map[string][]string, len(names)+1)
	for t := range names {
		sets[t] = dedupe(closure(t, leaf, d.Types, map[string]bool{}))
	}

	var all []string
	for _, vals := range leaf {
		all = append(all, vals...)
	}
	sets[""] = dedupe(all)
	return sets
}

// closure collects every leaf object belonging to type t: those
// declared directly as t, plus (recursively) every object belonging to
// a type the hierarchy declares as a child of t.
func closure(t string, leaf map[string][]string, hierarchy map[string][]string, visiting map[string]bool) []string {
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	out := append([]string{}, leaf[t]...)
	for _, child := range hierarchy[t] {
		out = append(out, closure(child, leaf, hierarchy, visiting)...)
	}
	return out
}

// mergeGroups unions two type->names maps, concatenating (not
// overwriting) when both declare the same type, per spec.md's
// supplemented merge semantics for domain constants and problem
// objects of the same type.
func mergeGroups(a, b map[string][]string) map[string][]string {
	out := make(map[string][]string, len(a)+len(b))
	for t, names := range a {
		out[t] = append(out[t], names...)
	}
	for t, names := range b {
		out[t] = append(out[t], names...)
	}
	return out
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
