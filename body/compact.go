package body

import (
	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

// CompactCoordinates is a packed, immutable-after-construction snapshot
// of a body's atoms, laid out as parallel arrays for stride-1 SIMD-
// friendly access, per spec.md §4.1. No field aliases the source Body:
// every slice here is freshly allocated.
type CompactCoordinates struct {
	x, y, z, w []geometry.Scalar
	ffType     []formfactor.Type
}

// FromBody copies positions, weights, and ff-types out of a body's
// solute atoms (and, if includeWaters is set, its attached hydration
// shell too — waters are always ff-type Water regardless of any charge
// set on the source Atom, per spec.md §4.1). useCharge selects
// occupancy×effective_charge vs. bare occupancy as the weight.
func FromBody(b *Body, includeWaters, useCharge bool) *CompactCoordinates {
	n := b.NumAtoms()
	if includeWaters {
		n += len(b.Waters())
	}
	cc := &CompactCoordinates{
		x: make([]geometry.Scalar, 0, n), y: make([]geometry.Scalar, 0, n), z: make([]geometry.Scalar, 0, n),
		w: make([]geometry.Scalar, 0, n), ffType: make([]formfactor.Type, 0, n),
	}
	for _, a := range b.Atoms() {
		cc.append(a, useCharge)
	}
	if includeWaters {
		for _, a := range b.Waters() {
			a.FFType = formfactor.Water
			cc.append(a, useCharge)
		}
	}
	return cc
}

// FromAtoms builds a CompactCoordinates snapshot directly from a slice
// of atoms (e.g. a molecule-wide subset spanning several bodies), rather
// than from a single Body.
func FromAtoms(atoms []Atom, useCharge bool) *CompactCoordinates {
	cc := &CompactCoordinates{
		x: make([]geometry.Scalar, 0, len(atoms)), y: make([]geometry.Scalar, 0, len(atoms)), z: make([]geometry.Scalar, 0, len(atoms)),
		w: make([]geometry.Scalar, 0, len(atoms)), ffType: make([]formfactor.Type, 0, len(atoms)),
	}
	for _, a := range atoms {
		cc.append(a, useCharge)
	}
	return cc
}

func (cc *CompactCoordinates) append(a Atom, useCharge bool) {
	cc.x = append(cc.x, a.Position.X)
	cc.y = append(cc.y, a.Position.Y)
	cc.z = append(cc.z, a.Position.Z)
	cc.w = append(cc.w, a.Weight(useCharge))
	cc.ffType = append(cc.ffType, a.FFType)
}

// ImplicitEXV subtracts a constant per-atom excluded-volume weight from
// every weight, per spec.md §4.1. Idempotent only when called once per
// snapshot — a second call double-subtracts, matching the contract
// spec.md documents rather than guarding against it (CompactCoordinates
// is a one-shot snapshot discarded after use, so there is no
// legitimate second call to defend against).
func (cc *CompactCoordinates) ImplicitEXV(vPerAtom geometry.Scalar) {
	for i := range cc.w {
		cc.w[i] -= vPerAtom
	}
}

// Len returns the number of packed atoms.
func (cc *CompactCoordinates) Len() int { return len(cc.x) }

// At returns the position, weight, and form-factor type of the i-th
// packed atom.
func (cc *CompactCoordinates) At(i int) (pos geometry.Vector3, w geometry.Scalar, ff formfactor.Type) {
	return geometry.Vector3{X: cc.x[i], Y: cc.y[i], Z: cc.z[i]}, cc.w[i], cc.ffType[i]
}

// X, Y, Z, and Weights expose the raw parallel arrays for hot
// accumulation loops (the histogram manager's inner distance loop)
// that want direct stride-1 access rather than going through At's
// struct-building indirection per atom.
func (cc *CompactCoordinates) X() []geometry.Scalar { return cc.x }
func (cc *CompactCoordinates) Y() []geometry.Scalar { return cc.y }
func (cc *CompactCoordinates) Z() []geometry.Scalar { return cc.z }
func (cc *CompactCoordinates) Weights() []geometry.Scalar { return cc.w }
func (cc *CompactCoordinates) FFTypes() []formfactor.Type { return cc.ffType }
