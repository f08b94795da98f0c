// Package hydration implements the hydration-shell generator pipeline
// of spec.md §4.4: grid-driven placement strategies that propose
// candidate waters, culling strategies that reduce them to a target
// count, and the resulting ExplicitHydration owned by the molecule.
package hydration

import (
	"math"

	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/grid"
)

// Candidate is a proposed hydration site before culling, carrying
// enough context (owning body, position) for the culling strategies of
// spec.md §4.4 to score and filter it.
type Candidate struct {
	Position geometry.Vector3
	BodyIdx  int // index into the placement call's body list, for BodyCounterCulling
}

// Placement proposes candidate waters by probing around each solute
// atom or each atom-volume voxel, per spec.md §4.4. The four variants
// (axes/radial/Jan/Pepsi) are tagged implementations behind this single
// interface rather than a polymorphic hierarchy, per §9.
type Placement interface {
	Place(g *grid.Grid, atoms []AtomRef) []Candidate
}

// AtomRef is a solute atom position plus the index of its owning body,
// the minimal view the placement strategies need from a molecule.
type AtomRef struct {
	Position geometry.Vector3
	BodyIdx  int
	Type     formfactor.Type
}

const waterRadius = 1.4 // Å, rh in the original source's "ra + rh" radius sum

// axesDirections are the 6 cardinal probe directions axes/Jan placement
// cast from each candidate site.
var axesDirections = []geometry.Vector3{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
}

func radiusFor(t formfactor.Type) float64 {
	return grid.RadiusOf(t) + waterRadius
}

func validSite(g *grid.Grid, pos geometry.Vector3) bool {
	v := g.VoxelOf(pos)
	if !g.InBounds(v) {
		return false
	}
	return g.StateAt(v) == grid.Empty
}

// AxesPlacement probes x±r, y±r, z±r from each solute atom at a single
// fixed global radius, per spec.md §4.4's "axes" variant.
type AxesPlacement struct {
	Radius float64
}

func (p AxesPlacement) Place(g *grid.Grid, atoms []AtomRef) []Candidate {
	r := p.Radius
	if r == 0 {
		r = 1.4
	}
	var out []Candidate
	for _, a := range atoms {
		for _, d := range axesDirections {
			pos := a.Position.Add(d.Scale(r))
			if validSite(g, pos) {
				out = append(out, Candidate{Position: pos, BodyIdx: a.BodyIdx})
			}
		}
	}
	return out
}

// JanPlacement probes x±r, y±r, z±r from each solute atom, with the
// probe radius r = ra+rh (atom radius plus water radius) computed
// per-atom-type, per the original source's JanPlacement.
type JanPlacement struct{}

func (JanPlacement) Place(g *grid.Grid, atoms []AtomRef) []Candidate {
	var out []Candidate
	for _, a := range atoms {
		r := radiusFor(a.Type)
		for _, d := range axesDirections {
			pos := a.Position.Add(d.Scale(r))
			if validSite(g, pos) {
				out = append(out, Candidate{Position: pos, BodyIdx: a.BodyIdx})
			}
		}
	}
	return out
}

// RadialPlacement probes a Fibonacci-distributed set of directions
// around each solute atom at radius ra+rh, a denser variant of axes/Jan
// placement that samples the whole sphere rather than just 6 axes.
type RadialPlacement struct {
	Probes int
}

func (p RadialPlacement) Place(g *grid.Grid, atoms []AtomRef) []Candidate {
	n := p.Probes
	if n <= 0 {
		n = 20
	}
	directions := fibonacciDirections(n)
	var out []Candidate
	for _, a := range atoms {
		r := radiusFor(a.Type)
		for _, d := range directions {
			pos := a.Position.Add(d.Scale(r))
			if validSite(g, pos) {
				out = append(out, Candidate{Position: pos, BodyIdx: a.BodyIdx})
			}
		}
	}
	return out
}

// PepsiPlacement places one candidate water just outside every
// atom-volume voxel's outward-facing empty neighbor, mirroring the
// PepsiSAXS-style model of generating sites directly from the grid's
// occupied/empty boundary rather than per-atom radial probing.
type PepsiPlacement struct{}

func (PepsiPlacement) Place(g *grid.Grid, atoms []AtomRef) []Candidate {
	var out []Candidate
	bodyOf := make(map[geometry.Vector3I]int, len(atoms))
	for _, a := range atoms {
		bodyOf[g.VoxelOf(a.Position)] = a.BodyIdx
	}
	ob := g.ComputeObjectBounds()
	ob.Each(func(x, y, z int) {
		v := geometry.Vector3I{X: x, Y: y, Z: z}
		s := g.StateAt(v)
		if s != grid.AtomVolume && s != grid.AtomCenter {
			return
		}
		for _, d := range axesDirections {
			n := geometry.Vector3I{X: v.X + int(d.X), Y: v.Y + int(d.Y), Z: v.Z + int(d.Z)}
			if !g.InBounds(n) || g.StateAt(n) != grid.Empty {
				continue
			}
			out = append(out, Candidate{Position: g.WorldPosition(n), BodyIdx: bodyOf[v]})
		}
	})
	return out
}

func fibonacciDirections(n int) []geometry.Vector3 {
	pts := make([]geometry.Vector3, n)
	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - 2*float64(i)/float64(max(n-1, 1))
		radius := math.Sqrt(math.Max(0, 1-y*y))
		theta := goldenAngle * float64(i)
		pts[i] = geometry.Vector3{X: math.Cos(theta) * radius, Y: y, Z: math.Sin(theta) * radius}
	}
	return pts
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
