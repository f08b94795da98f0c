package hydration

import (
	"github.com/AUSAXS/AUSAXS-sub011/body"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/grid"
)

// ExplicitHydration is a vector of water atoms owned by the molecule,
// the result of the pipeline in spec.md §4.4.
type ExplicitHydration struct {
	Waters []body.Atom
}

// Generate runs the hydration pipeline: build/refresh the grid (done by
// the caller, which owns it), invoke a placement strategy to propose
// candidates, invoke a culling strategy to reduce to the target count,
// and return the resulting ExplicitHydration, per spec.md §4.4.
func Generate(g *grid.Grid, atoms []AtomRef, placement Placement, culling Culling, target int) *ExplicitHydration {
	candidates := placement.Place(g, atoms)
	culled := culling.Cull(candidates, target)
	waters := make([]body.Atom, len(culled))
	for i, c := range culled {
		waters[i] = body.Water(c.Position, 1.0)
	}
	return &ExplicitHydration{Waters: waters}
}

// AtomRefsFromMolecule flattens a molecule's solute atoms into the
// AtomRef view placement strategies consume, tagging each with its
// owning body's index in m.Bodies() for BodyCounterCulling.
func AtomRefsFromMolecule(m *body.Molecule) []AtomRef {
	var out []AtomRef
	for bi, b := range m.Bodies() {
		for _, a := range b.Atoms() {
			out = append(out, AtomRef{Position: a.Position, BodyIdx: bi, Type: a.FFType})
		}
	}
	return out
}

// SolutePositions extracts bare positions from a slice of AtomRef, the
// shape OutlierCulling's scoring needs.
func SolutePositions(atoms []AtomRef) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(atoms))
	for i, a := range atoms {
		out[i] = a.Position
	}
	return out
}
