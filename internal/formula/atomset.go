package formula

import "strings"

// AtomSet is a set of ground atoms, keyed by Atom.Key() so equal atoms
// (same predicate, same argument sequence) collapse to one entry
// regardless of which *Atom value produced them. Hashable per spec.md
// §3/§9: identical atoms always compare equal.
type AtomSet struct {
	m map[string]*Atom
}

func NewAtomSet(atoms ...*Atom) *AtomSet {
	s := &AtomSet{m: make(map[string]*Atom, len(atoms))}
	for _, a := range atoms {
		s.Add(a)
	}
	return s
}

// Add inserts f, which must be an *Atom (it is typed Formula so callers
// can pass Not's operand etc. without an extra assertion at call sites).
func (s *AtomSet) Add(f Formula) {
	a, ok := f.(*Atom)
	if !ok {
		return
	}
	s.m[a.Key()] = a
}

func (s *AtomSet) Contains(a *Atom) bool {
	_, ok := s.m[a.Key()]
	return ok
}

func (s *AtomSet) Len() int { return len(s.m) }

// Atoms returns the set's members in a deterministic (sorted-key) order.
func (s *AtomSet) Atoms() []*Atom {
	keys := sortedKeys(s.m)
	out := make([]*Atom, len(keys))
	for i, k := range keys {
		out[i] = s.m[k]
	}
	return out
}

// Union returns a new set containing the members of both s and other.
func (s *AtomSet) Union(other *AtomSet) *AtomSet {
	out := s.Clone()
	out.UnionInPlace(other)
	return out
}

// UnionInPlace adds every member of other into s.
func (s *AtomSet) UnionInPlace(other *AtomSet) {
	for k, a := range other.m {
		s.m[k] = a
	}
}

// Difference returns a new set containing s's members not present in other.
func (s *AtomSet) Difference(other *AtomSet) *AtomSet {
	out := NewAtomSet()
	for k, a := range s.m {
		if _, ok := other.m[k]; !ok {
			out.m[k] = a
		}
	}
	return out
}

// Clone returns a shallow copy (the underlying *Atom values are
// immutable, so sharing them across clones is safe).
func (s *AtomSet) Clone() *AtomSet {
	out := &AtomSet{m: make(map[string]*Atom, len(s.m))}
	for k, a := range s.m {
		out.m[k] = a
	}
	return out
}

// ContainsAll reports whether every member of other is present in s —
// used by the relaxed-plan heuristic's RPG fixpoint/goal tests.
func (s *AtomSet) ContainsAll(other *AtomSet) bool {
	for k := range other.m {
		if _, ok := s.m[k]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether s and other contain exactly the same atoms.
func (s *AtomSet) Equal(other *AtomSet) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for k := range s.m {
		if _, ok := other.m[k]; !ok {
			return false
		}
	}
	return true
}

func (s *AtomSet) String() string {
	keys := sortedKeys(s.m)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = s.m[k].String()
	}
	return strings.Join(parts, ", ")
}
