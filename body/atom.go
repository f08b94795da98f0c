// Package body models the atomic structures that feed the scattering
// pipeline: Atom, Body, Molecule, and the packed CompactCoordinates
// snapshot distance accumulation runs against, per spec.md §3/§4.1.
package body

import (
	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

// Atom is a single scattering center: a position, a weight (occupancy
// times effective charge when enabled, else bare occupancy), a
// form-factor type, and an optional Debye-Waller temperature factor.
type Atom struct {
	Position       geometry.Vector3
	Occupancy      float64
	EffectiveCharge float64
	FFType         formfactor.Type
	TemperatureFactor float64
	HasTemperatureFactor bool
}

// Weight returns occupancy×effective_charge when useCharge is set, else
// the bare occupancy, matching CompactCoordinates.from_body's weight
// rule in spec.md §4.1.
func (a Atom) Weight(useCharge bool) float64 {
	if useCharge {
		return a.Occupancy * a.EffectiveCharge
	}
	return a.Occupancy
}

// Water constructs a hydration-shell atom: ff-type is always "water" per
// spec.md §4.1 regardless of any charge the caller supplies.
func Water(pos geometry.Vector3, occupancy float64) Atom {
	return Atom{Position: pos, Occupancy: occupancy, EffectiveCharge: 1, FFType: formfactor.Water}
}
