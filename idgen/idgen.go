// Package idgen hands out stable, process-local handle IDs.
//
// Bodies and grid members are referenced by these small
// integer handles rather than by pointer, the same way the teacher's grid
// cells are addressed by position in a slice (see
// internal/inmapref/vargrid.go's addCells/InsertCell) instead of by
// pointer identity shared across goroutines.
package idgen

import "sync/atomic"

// BodyID identifies a Body within a Molecule for the lifetime of the process.
type BodyID uint64

// MemberID identifies a live atom's occupancy record within a Grid.
type MemberID uint64

// Generator hands out monotonically increasing IDs. The zero value is
// ready to use and never returns 0 (0 is reserved as "unset").
type Generator struct {
	next uint64
}

// New returns a Generator ready to mint IDs starting at 1.
func New() *Generator {
	return &Generator{}
}

// NextBodyID returns the next unused BodyID.
func (g *Generator) NextBodyID() BodyID {
	return BodyID(atomic.AddUint64(&g.next, 1))
}

// NextMemberID returns the next unused MemberID.
func (g *Generator) NextMemberID() MemberID {
	return MemberID(atomic.AddUint64(&g.next, 1))
}
