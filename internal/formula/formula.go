// Package formula implements the logical expression algebra: a small,
// immutable, first-order-logic-with-quantifiers AST that supports truth
// evaluation against a World, variable substitution, and add/delete
// change-set computation for effect application.
package formula

import (
	"fmt"
	"sort"
	"strings"
)

// Formula is the common interface every AST node implements. Values are
// immutable: every operation returns a new Formula rather than mutating
// the receiver.
type Formula interface {
	// Models reports whether f holds in w under the closed-world
	// assumption. Variants with no modeling semantics (When) always
	// return false.
	Models(w *World) bool
	// Substitute returns a new Formula with every occurrence of the
	// named variable replaced by value. value is always a ground
	// constant name.
	Substitute(variable, value string) Formula
	// Changes returns the (adds, dels) ground-atom change-set f
	// produces when applied as an effect against w. Variants with no
	// effect semantics (Or, Equals, Exists) return two empty sets.
	Changes(w *World) (adds, dels *AtomSet)
	// String renders f in a small s-expression-like notation, used for
	// display and ground-action naming.
	String() string
}

// Const is a bare symbol: an object/constant name, or (prior to
// grounding) a variable marker such as "?x".
type Const struct {
	Value string
}

func NewConst(value string) *Const { return &Const{Value: value} }

func (c *Const) Models(*World) bool { return false }

func (c *Const) Substitute(variable, value string) Formula {
	if c.Value == variable {
		return NewConst(value)
	}
	return c
}

func (c *Const) Changes(*World) (*AtomSet, *AtomSet) { return NewAtomSet(), NewAtomSet() }

func (c *Const) String() string { return c.Value }

// VarSpec describes the variable bound by a ForAll/Exists quantifier: a
// name, and an optional type restricting the domain it ranges over. An
// untyped spec ranges over the world's "" (universal) set.
type VarSpec struct {
	Name  string
	Type  string
	Typed bool
}

func NewVarSpec(name string) *VarSpec { return &VarSpec{Name: name} }

func NewTypedVarSpec(name, typ string) *VarSpec { return &VarSpec{Name: name, Type: typ, Typed: true} }

func (v *VarSpec) String() string {
	if v.Typed {
		return fmt.Sprintf("%s - %s", v.Name, v.Type)
	}
	return v.Name
}

// domain returns the set of values spec ranges over, given a world.
func (v *VarSpec) domain(w *World) []string {
	if v.Typed {
		return w.Sets[v.Type]
	}
	return w.Sets[""]
}

// Atom is a ground or partially-ground predicate application, e.g.
// on(a,b). Args are themselves Formula values (Const before and after
// grounding; substitution recurses into them).
type Atom struct {
	Pred string
	Args []Formula
}

func NewAtom(pred string, args ...Formula) *Atom { return &Atom{Pred: pred, Args: args} }

// Key returns a canonical hashable string for the atom, used as the
// AtomSet map key. Only meaningful for fully-ground atoms.
func (a *Atom) Key() string {
	var b strings.Builder
	b.WriteString(a.Pred)
	b.WriteByte('(')
	for i, arg := range a.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (a *Atom) Models(w *World) bool { return w.Atoms.Contains(a) }

func (a *Atom) Substitute(variable, value string) Formula {
	newArgs := make([]Formula, len(a.Args))
	for i, arg := range a.Args {
		newArgs[i] = arg.Substitute(variable, value)
	}
	return NewAtom(a.Pred, newArgs...)
}

func (a *Atom) Changes(w *World) (adds, dels *AtomSet) {
	adds, dels = NewAtomSet(), NewAtomSet()
	if !a.Models(w) {
		adds.Add(a)
	}
	return
}

func (a *Atom) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Pred, strings.Join(parts, ","))
}

// Not is logical negation. As an effect it deletes the operand atom when
// it currently holds, or (per the source's unhygienic "add-then-delete"
// behavior, see spec.md §9 open questions) adds it when it doesn't —
// either way World.Apply's delete-wins conflict rule makes the net
// effect of Not(atom) a deletion, never a spurious addition.
type Not struct {
	Child Formula
}

func NewNot(child Formula) *Not { return &Not{Child: child} }

func (n *Not) Models(w *World) bool { return !n.Child.Models(w) }

func (n *Not) Substitute(variable, value string) Formula {
	return NewNot(n.Child.Substitute(variable, value))
}

func (n *Not) Changes(w *World) (adds, dels *AtomSet) {
	adds, dels = NewAtomSet(), NewAtomSet()
	if n.Child.Models(w) {
		dels.Add(n.Child)
	} else {
		adds.Add(n.Child)
		dels.Add(n.Child)
	}
	return
}

func (n *Not) String() string { return fmt.Sprintf("not(%s)", n.Child) }

// And is arbitrary-arity ordered conjunction.
type And struct {
	Children []Formula
}

func NewAnd(children ...Formula) *And { return &And{Children: children} }

func (a *And) Models(w *World) bool {
	for _, c := range a.Children {
		if !c.Models(w) {
			return false
		}
	}
	return true
}

func (a *And) Substitute(variable, value string) Formula {
	out := make([]Formula, len(a.Children))
	for i, c := range a.Children {
		out[i] = c.Substitute(variable, value)
	}
	return NewAnd(out...)
}

func (a *And) Changes(w *World) (adds, dels *AtomSet) {
	adds, dels = NewAtomSet(), NewAtomSet()
	for _, c := range a.Children {
		a2, d2 := c.Changes(w)
		adds.UnionInPlace(a2)
		dels.UnionInPlace(d2)
	}
	return
}

func (a *And) String() string {
	parts := make([]string, len(a.Children))
	for i, c := range a.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("and(%s)", strings.Join(parts, ","))
}

// Or is arbitrary-arity ordered disjunction. It has no effect semantics.
type Or struct {
	Children []Formula
}

func NewOr(children ...Formula) *Or { return &Or{Children: children} }

func (o *Or) Models(w *World) bool {
	for _, c := range o.Children {
		if c.Models(w) {
			return true
		}
	}
	return false
}

func (o *Or) Substitute(variable, value string) Formula {
	out := make([]Formula, len(o.Children))
	for i, c := range o.Children {
		out[i] = c.Substitute(variable, value)
	}
	return NewOr(out...)
}

func (o *Or) Changes(*World) (*AtomSet, *AtomSet) { return NewAtomSet(), NewAtomSet() }

func (o *Or) String() string {
	parts := make([]string, len(o.Children))
	for i, c := range o.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("or(%s)", strings.Join(parts, ","))
}

// Imply is material implication: antecedent -> consequent.
type Imply struct {
	Antecedent, Consequent Formula
}

func NewImply(antecedent, consequent Formula) *Imply {
	return &Imply{Antecedent: antecedent, Consequent: consequent}
}

func (i *Imply) Models(w *World) bool {
	return !i.Antecedent.Models(w) || i.Consequent.Models(w)
}

func (i *Imply) Substitute(variable, value string) Formula {
	return NewImply(i.Antecedent.Substitute(variable, value), i.Consequent.Substitute(variable, value))
}

func (i *Imply) Changes(*World) (*AtomSet, *AtomSet) { return NewAtomSet(), NewAtomSet() }

func (i *Imply) String() string { return fmt.Sprintf("imply(%s,%s)", i.Antecedent, i.Consequent) }

// Equals tests structural equality of its two subterms (after
// substitution), comparing Atom.Key() for atoms and Value for consts.
type Equals struct {
	Lhs, Rhs Formula
}

func NewEquals(lhs, rhs Formula) *Equals { return &Equals{Lhs: lhs, Rhs: rhs} }

func (e *Equals) Models(*World) bool { return structurallyEqual(e.Lhs, e.Rhs) }

func structurallyEqual(a, b Formula) bool {
	switch av := a.(type) {
	case *Const:
		bv, ok := b.(*Const)
		return ok && av.Value == bv.Value
	case *Atom:
		bv, ok := b.(*Atom)
		return ok && av.Key() == bv.Key()
	default:
		return a.String() == b.String()
	}
}

func (e *Equals) Substitute(variable, value string) Formula {
	return NewEquals(e.Lhs.Substitute(variable, value), e.Rhs.Substitute(variable, value))
}

func (e *Equals) Changes(*World) (*AtomSet, *AtomSet) { return NewAtomSet(), NewAtomSet() }

func (e *Equals) String() string { return fmt.Sprintf("equals(%s,%s)", e.Lhs, e.Rhs) }

// When is a conditional effect: never modeled, and its Changes are the
// effect's changes when the condition holds in the pre-state, otherwise
// empty.
type When struct {
	Condition, Effect Formula
}

func NewWhen(condition, effect Formula) *When { return &When{Condition: condition, Effect: effect} }

func (w *When) Models(*World) bool { return false }

func (w *When) Substitute(variable, value string) Formula {
	return NewWhen(w.Condition.Substitute(variable, value), w.Effect.Substitute(variable, value))
}

func (w *When) Changes(world *World) (adds, dels *AtomSet) {
	if w.Condition.Models(world) {
		return w.Effect.Changes(world)
	}
	return NewAtomSet(), NewAtomSet()
}

func (w *When) String() string { return fmt.Sprintf("when(%s,%s)", w.Condition, w.Effect) }

// ForAll is universal quantification: expanded, at evaluation time,
// into a macro And over the bound variable's domain in the given world.
type ForAll struct {
	Spec *VarSpec
	Body Formula
}

func NewForAll(spec *VarSpec, body Formula) *ForAll { return &ForAll{Spec: spec, Body: body} }

func (f *ForAll) expand(w *World) *And {
	domain := f.Spec.domain(w)
	children := make([]Formula, len(domain))
	for i, value := range domain {
		children[i] = f.Body.Substitute(f.Spec.Name, value)
	}
	return NewAnd(children...)
}

func (f *ForAll) Models(w *World) bool { return f.expand(w).Models(w) }

func (f *ForAll) Substitute(variable, value string) Formula {
	if variable == f.Spec.Name {
		// the quantifier re-binds this name; the body's own occurrences
		// of it are not free, so nothing under it should change.
		return f
	}
	return NewForAll(f.Spec, f.Body.Substitute(variable, value))
}

func (f *ForAll) Changes(w *World) (adds, dels *AtomSet) { return f.expand(w).Changes(w) }

func (f *ForAll) String() string { return fmt.Sprintf("forall(%s,%s)", f.Spec, f.Body) }

// Exists is existential quantification: expanded, at modeling time, into
// a macro Or over the bound variable's domain. It has no effect
// semantics (spec.md §4.1).
type Exists struct {
	Spec *VarSpec
	Body Formula
}

func NewExists(spec *VarSpec, body Formula) *Exists { return &Exists{Spec: spec, Body: body} }

func (e *Exists) expand(w *World) *Or {
	domain := e.Spec.domain(w)
	children := make([]Formula, len(domain))
	for i, value := range domain {
		children[i] = e.Body.Substitute(e.Spec.Name, value)
	}
	return NewOr(children...)
}

func (e *Exists) Models(w *World) bool { return e.expand(w).Models(w) }

func (e *Exists) Substitute(variable, value string) Formula {
	if variable == e.Spec.Name {
		return e
	}
	return NewExists(e.Spec, e.Body.Substitute(variable, value))
}

func (e *Exists) Changes(*World) (*AtomSet, *AtomSet) { return NewAtomSet(), NewAtomSet() }

func (e *Exists) String() string { return fmt.Sprintf("exists(%s,%s)", e.Spec, e.Body) }

// sortedKeys is a small helper used by AtomSet.String and AtomSet.Atoms
// for deterministic output.
func sortedKeys(m map[string]*Atom) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
