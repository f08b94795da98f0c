package body

import (
	"fmt"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
	"github.com/AUSAXS/AUSAXS-sub011/idgen"
)

// Molecule is an ordered sequence of bodies, per spec.md §3. It owns its
// bodies exclusively: no Body is ever shared between two Molecules.
// Grid and hydration ownership (also molecule-exclusive) are added by
// the grid and hydration packages, which hold a *Molecule rather than
// duplicating this slice.
type Molecule struct {
	bodies []*Body
	byID   map[idgen.BodyID]*Body
}

// NewMolecule constructs a Molecule owning the given bodies, in the
// order supplied. Body ordering is stable thereafter per spec.md §3.
func NewMolecule(bodies ...*Body) *Molecule {
	m := &Molecule{bodies: append([]*Body(nil), bodies...), byID: make(map[idgen.BodyID]*Body, len(bodies))}
	for _, b := range bodies {
		m.byID[b.ID()] = b
	}
	return m
}

// Bodies returns the molecule's bodies in stable order.
func (m *Molecule) Bodies() []*Body { return m.bodies }

// NumAtoms returns the total solute-atom count across all bodies.
func (m *Molecule) NumAtoms() int {
	n := 0
	for _, b := range m.bodies {
		n += b.NumAtoms()
	}
	return n
}

// Body looks up a body by its stable id, returning ErrInvalidInput if no
// such body belongs to this molecule (every atom belongs to exactly one
// body per spec.md §3, so lookups outside that set are a caller error).
func (m *Molecule) Body(id idgen.BodyID) (*Body, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("body: unknown body id %d: %w", id, ausaxserr.ErrInvalidInput)
	}
	return b, nil
}

// AnyDirty reports whether any owned body has an unacknowledged
// structural change, the trigger the grid and histogram manager both
// watch for incremental repair.
func (m *Molecule) AnyDirty() bool {
	for _, b := range m.bodies {
		if b.Dirty() {
			return true
		}
	}
	return false
}
