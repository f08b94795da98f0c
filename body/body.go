package body

import (
	"sync/atomic"

	"github.com/AUSAXS/AUSAXS-sub011/idgen"
)

// idGenerator mints stable Body IDs for the process, per spec.md §3's
// "bodies carry a stable id".
var idGenerator = idgen.New()

// Body is an ordered sequence of solute atoms plus an optional attached
// hydration shell, per spec.md §3. It carries a stable id and a
// change-signal bit the owning grid watches to know when to
// deflate/re-inflate only the affected atoms.
type Body struct {
	id      idgen.BodyID
	atoms   []Atom
	waters  []Atom
	changed atomic.Bool
}

// NewBody constructs a Body from a slice of solute atoms (copied, so the
// caller's slice may be reused). The change-signal bit starts set, since
// a fresh body has never been seen by a grid yet.
func NewBody(atoms []Atom) *Body {
	b := &Body{id: idGenerator.NextBodyID(), atoms: append([]Atom(nil), atoms...)}
	b.changed.Store(true)
	return b
}

// ID returns the body's stable identifier.
func (b *Body) ID() idgen.BodyID { return b.id }

// Atoms returns the body's solute atoms. The returned slice must not be
// mutated by the caller; use SetAtoms/Transform to change positions.
func (b *Body) Atoms() []Atom { return b.atoms }

// Waters returns the body's attached hydration shell, if any.
func (b *Body) Waters() []Atom { return b.waters }

// SetWaters replaces the body's hydration shell and flips the
// change-signal bit, per spec.md §3's "mutated only by rigid-body
// transforms and by hydration".
func (b *Body) SetWaters(waters []Atom) {
	b.waters = append([]Atom(nil), waters...)
	b.changed.Store(true)
}

// Transform applies f to every solute atom's position in place and
// flips the change-signal bit.
func (b *Body) Transform(f func(Atom) Atom) {
	for i := range b.atoms {
		b.atoms[i] = f(b.atoms[i])
	}
	b.changed.Store(true)
}

// Dirty reports whether the body has changed since the last
// AcknowledgeChange, per spec.md §3's change-signal bit.
func (b *Body) Dirty() bool { return b.changed.Load() }

// AcknowledgeChange clears the change-signal bit; called by the owning
// grid once it has reacted to a change.
func (b *Body) AcknowledgeChange() { b.changed.Store(false) }

// NumAtoms returns the count of solute atoms, excluding any hydration.
func (b *Body) NumAtoms() int { return len(b.atoms) }
