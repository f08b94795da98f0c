package grid

import (
	"fmt"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"

	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/idgen"
)

// ExpandStrategy selects how far an atom-center marking spreads when
// inflated into atom-volume voxels, per spec.md §4.3. Chosen once per
// grid instance — the "tagged variant dispatched behind a Strategy
// interface" pattern §9 asks for in place of a polymorphic hierarchy.
type ExpandStrategy int

const (
	// Minimal marks only the 6 axis neighbors of each occupied voxel.
	Minimal ExpandStrategy = iota
	// Full marks the complete voxelized ball of the type's radius.
	Full
)

// member records exactly the voxels an add_atom call touched, so
// remove_atom can deflate precisely that footprint and restore the
// grid's prior state, per spec.md §4.3's invariant "after a deflate of
// the last-added atom, the grid returns to its state before that atom
// was added".
type member struct {
	center geometry.Vector3I
	voxels []geometry.Vector3I
	center_state, volume_state State
}

// Grid is the dense 3-D voxel lattice of spec.md §4.3.
type Grid struct {
	origin     geometry.Vector3
	cellWidth  float64
	nx, ny, nz int
	state      *geometry.Distribution3D
	strategy   ExpandStrategy
	strict     bool
	idGen      *idgen.Generator
	members    map[idgen.MemberID]*member
}

// Options configures grid construction.
type Options struct {
	Strategy ExpandStrategy
	Strict   bool
	// MaxGrowthAttempts bounds the bounds-auto-growth retry loop New
	// performs when the initial inflated bounds cannot hold any atom.
	MaxGrowthAttempts uint64
}

// New constructs a Grid covering [min,max] inflated by margin (Å) on
// each side, with the given cell width, retrying with a geometrically
// growing margin via github.com/cenkalti/backoff if the requested
// bounds turn out too small to hold even a single voxel along any axis
// — the "fallible constructor with bounds auto-growth" shape named in
// SPEC_FULL.md's domain-stack wiring for this dependency.
func New(min, max geometry.Vector3, margin, cellWidth float64, opts Options) (*Grid, error) {
	if opts.MaxGrowthAttempts == 0 {
		opts.MaxGrowthAttempts = 5
	}
	var g *Grid
	attempt := 0
	op := func() error {
		attempt++
		candidate, err := buildGrid(min, max, margin, cellWidth, opts)
		if err != nil {
			logrus.WithField("attempt", attempt).WithField("margin", margin).Warn("grid: bounds too small, growing margin")
			margin *= 2
			return err
		}
		g = candidate
		return nil
	}
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(0), opts.MaxGrowthAttempts)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return g, nil
}

func buildGrid(min, max geometry.Vector3, margin, cellWidth float64, opts Options) (*Grid, error) {
	lo := geometry.Vector3{X: min.X - margin, Y: min.Y - margin, Z: min.Z - margin}
	hi := geometry.Vector3{X: max.X + margin, Y: max.Y + margin, Z: max.Z + margin}
	nx := int((hi.X-lo.X)/cellWidth) + 1
	ny := int((hi.Y-lo.Y)/cellWidth) + 1
	nz := int((hi.Z-lo.Z)/cellWidth) + 1
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, &BoundsTooSmallError{Requested: 1, Available: 0}
	}
	return &Grid{
		origin:    lo,
		cellWidth: cellWidth,
		nx:        nx, ny: ny, nz: nz,
		state:    geometry.NewDistribution3D(nz, ny, nx),
		strategy: opts.Strategy,
		strict:   opts.Strict,
		idGen:    idgen.New(),
		members:  make(map[idgen.MemberID]*member),
	}, nil
}

// Dims returns the grid's (nz, ny, nx) voxel extents.
func (g *Grid) Dims() (nz, ny, nx int) { return g.nz, g.ny, g.nx }

// CellWidth returns the grid's voxel edge length.
func (g *Grid) CellWidth() float64 { return g.cellWidth }

// voxelOf returns the integer voxel coordinate containing a world
// position.
func (g *Grid) voxelOf(p geometry.Vector3) geometry.Vector3I {
	return geometry.Vector3I{
		X: int((p.X - g.origin.X) / g.cellWidth),
		Y: int((p.Y - g.origin.Y) / g.cellWidth),
		Z: int((p.Z - g.origin.Z) / g.cellWidth),
	}
}

func (g *Grid) inBounds(v geometry.Vector3I) bool {
	return v.X >= 0 && v.X < g.nx && v.Y >= 0 && v.Y < g.ny && v.Z >= 0 && v.Z < g.nz
}

// VoxelOf returns the integer voxel coordinate containing a world
// position, for callers outside this package (e.g. hydration placement
// strategies) that need to probe grid occupancy directly.
func (g *Grid) VoxelOf(p geometry.Vector3) geometry.Vector3I { return g.voxelOf(p) }

// InBounds reports whether v addresses a valid voxel in this grid.
func (g *Grid) InBounds(v geometry.Vector3I) bool { return g.inBounds(v) }

// WorldPosition returns the world-space center of voxel v, the inverse
// of VoxelOf (up to the within-voxel rounding VoxelOf performs).
func (g *Grid) WorldPosition(v geometry.Vector3I) geometry.Vector3 {
	return geometry.Vector3{
		X: g.origin.X + (float64(v.X)+0.5)*g.cellWidth,
		Y: g.origin.Y + (float64(v.Y)+0.5)*g.cellWidth,
		Z: g.origin.Z + (float64(v.Z)+0.5)*g.cellWidth,
	}
}

func (g *Grid) clamp(v geometry.Vector3I) geometry.Vector3I {
	clampOne := func(x, n int) int {
		if x < 0 {
			return 0
		}
		if x >= n {
			return n - 1
		}
		return x
	}
	return geometry.Vector3I{X: clampOne(v.X, g.nx), Y: clampOne(v.Y, g.ny), Z: clampOne(v.Z, g.nz)}
}

// StateAt returns the marking at voxel v.
func (g *Grid) StateAt(v geometry.Vector3I) State {
	return State(g.state.Get(v.Z, v.Y, v.X))
}

func (g *Grid) setState(v geometry.Vector3I, s State) {
	g.state.Set(v.Z, v.Y, v.X, float64(s))
}

// AddAtom assigns a grid-member id to an atom at pos with form-factor
// type t, marking its owning voxel atom-center (or water-center if
// isWater) and inflating its footprint into atom-volume/water-volume
// voxels per the grid's ExpandStrategy, per spec.md §4.3.
func (g *Grid) AddAtom(pos geometry.Vector3, t formfactor.Type, isWater bool) (idgen.MemberID, error) {
	center := g.voxelOf(pos)
	if !g.inBounds(center) {
		if g.strict {
			return 0, &OutOfBoundsError{X: center.X, Y: center.Y, Z: center.Z}
		}
		logrus.WithField("voxel", center).Warn("grid: clamping out-of-bounds atom")
		center = g.clamp(center)
	}

	centerState, volumeState := AtomCenter, AtomVolume
	if isWater {
		centerState, volumeState = WaterCenter, WaterVolume
	}

	id := g.idGen.NextMemberID()
	mem := &member{center: center, center_state: centerState, volume_state: volumeState}

	if stronger(centerState, g.StateAt(center)) {
		g.setState(center, centerState)
	}
	mem.voxels = append(mem.voxels, center)

	radius := RadiusOf(t)
	for _, v := range footprint(center, radius, g.cellWidth, g.strategy) {
		if !g.inBounds(v) {
			continue
		}
		if v == center {
			continue
		}
		if stronger(volumeState, g.StateAt(v)) {
			g.setState(v, volumeState)
		}
		mem.voxels = append(mem.voxels, v)
	}

	g.members[id] = mem
	return id, nil
}

// RemoveAtom deflates exactly the voxels AddAtom touched for id and
// restores the grid to its state before that atom was added, per
// spec.md §4.3. Since two atoms' footprints can overlap, deflation only
// clears a voxel down to Empty if no other live member still claims a
// stronger or equal marking there.
func (g *Grid) RemoveAtom(id idgen.MemberID) error {
	mem, ok := g.members[id]
	if !ok {
		return fmt.Errorf("grid: unknown member id %d", id)
	}
	delete(g.members, id)
	for _, v := range mem.voxels {
		g.recomputeVoxel(v)
	}
	return nil
}

// recomputeVoxel sets v to the strongest marking any remaining live
// member still claims there, or Empty if none do.
func (g *Grid) recomputeVoxel(v geometry.Vector3I) {
	strongest := Empty
	for _, mem := range g.members {
		for _, owned := range mem.voxels {
			if owned != v {
				continue
			}
			s := mem.volume_state
			if owned == mem.center {
				s = mem.center_state
			}
			if stronger(s, strongest) {
				strongest = s
			}
		}
	}
	g.setState(v, strongest)
}

// ExpandAll is the bulk variant of AddAtom, adding every supplied atom
// in one call.
func (g *Grid) ExpandAll(atoms []struct {
	Pos     geometry.Vector3
	Type    formfactor.Type
	IsWater bool
}) ([]idgen.MemberID, error) {
	ids := make([]idgen.MemberID, 0, len(atoms))
	for _, a := range atoms {
		id, err := g.AddAtom(a.Pos, a.Type, a.IsWater)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DeflateAll is the bulk variant of RemoveAtom, removing every member
// currently tracked by the grid.
func (g *Grid) DeflateAll() {
	for id := range g.members {
		delete(g.members, id)
	}
	for z := 0; z < g.nz; z++ {
		for y := 0; y < g.ny; y++ {
			for x := 0; x < g.nx; x++ {
				g.state.Set(z, y, x, float64(Empty))
			}
		}
	}
}

// NumMembers returns the count of atoms currently tracked by the grid.
func (g *Grid) NumMembers() int { return len(g.members) }
