package formula

// World is an immutable snapshot of which ground atoms are true (under
// the closed-world assumption) plus the typed object universe used to
// resolve quantifier domains. Every mutating-looking operation returns
// a new World; Sets is shared unchanged across successors, only Atoms
// diverges (spec.md §4.2, §9).
type World struct {
	Atoms *AtomSet
	// Sets maps a type name to its ordered, deduplicated member objects.
	// Sets[""] is the union of every other entry and is the default
	// domain for untyped quantifiers.
	Sets map[string][]string
}

func NewWorld(atoms *AtomSet, sets map[string][]string) *World {
	return &World{Atoms: atoms, Sets: sets}
}

// Models reports whether f holds in w.
func (w *World) Models(f Formula) bool { return f.Models(w) }

// Apply returns the successor world obtained by applying effect: atoms
// are (atoms ∪ adds) \ dels — deletions win when an atom is in both
// sets (spec.md §4.2 "Conflict rule").
func (w *World) Apply(effect Formula) *World {
	adds, dels := effect.Changes(w)
	next := w.Atoms.Union(adds)
	next = next.Difference(dels)
	return NewWorld(next, w.Sets)
}

// ApplyRelaxed returns the successor world obtained by applying effect
// with deletions ignored (atoms ∪ adds only). Used exclusively by the
// relaxed-plan heuristic's forward RPG construction.
func (w *World) ApplyRelaxed(effect Formula) *World {
	adds, _ := effect.Changes(w)
	return NewWorld(w.Atoms.Union(adds), w.Sets)
}

// Fingerprint returns a canonical string identifying w's atom set,
// suitable as a closed-set / search-node key (spec.md §9 "closed-set
// containment"). Two worlds with the same true atoms always produce the
// same fingerprint regardless of insertion history.
func (w *World) Fingerprint() string { return w.Atoms.String() }

func (w *World) String() string { return w.Atoms.String() }
