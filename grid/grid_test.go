package grid

import (
	"testing"

	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

func newTestGrid(t *testing.T, strategy ExpandStrategy) *Grid {
	t.Helper()
	min := geometry.Vector3{X: -2, Y: -2, Z: -2}
	max := geometry.Vector3{X: 2, Y: 2, Z: 2}
	g, err := New(min, max, 3, 1.0, Options{Strategy: strategy})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestAddAtomMarksCenterAndVolume(t *testing.T) {
	g := newTestGrid(t, Minimal)
	id, err := g.AddAtom(geometry.Vector3{}, formfactor.NeutralCarbon, false)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatal("expected nonzero member id")
	}
	if g.NumMembers() != 1 {
		t.Fatalf("NumMembers() = %v, want 1", g.NumMembers())
	}
	center := g.voxelOf(geometry.Vector3{})
	if got := g.StateAt(center); got != AtomCenter {
		t.Fatalf("StateAt(center) = %v, want AtomCenter", got)
	}
	neighbor := geometry.Vector3I{X: center.X + 1, Y: center.Y, Z: center.Z}
	if got := g.StateAt(neighbor); got != AtomVolume {
		t.Fatalf("StateAt(center+x) = %v, want AtomVolume", got)
	}
}

func TestRemoveAtomRestoresEmptyGrid(t *testing.T) {
	g := newTestGrid(t, Full)
	nz, ny, nx := g.Dims()
	snapshot := captureState(g, nz, ny, nx)

	id, err := g.AddAtom(geometry.Vector3{}, formfactor.NeutralCarbon, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.RemoveAtom(id); err != nil {
		t.Fatal(err)
	}

	after := captureState(g, nz, ny, nx)
	for i := range snapshot {
		if snapshot[i] != after[i] {
			t.Fatalf("grid state at flat index %d did not return to pre-add state: %v vs %v", i, snapshot[i], after[i])
		}
	}
	if g.NumMembers() != 0 {
		t.Fatalf("NumMembers() after remove = %v, want 0", g.NumMembers())
	}
}

func captureState(g *Grid, nz, ny, nx int) []State {
	out := make([]State, 0, nz*ny*nx)
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				out = append(out, g.StateAt(geometry.Vector3I{X: x, Y: y, Z: z}))
			}
		}
	}
	return out
}

func TestCenterOutranksVolumeOnOverlap(t *testing.T) {
	g := newTestGrid(t, Full)
	if _, err := g.AddAtom(geometry.Vector3{}, formfactor.NeutralCarbon, false); err != nil {
		t.Fatal(err)
	}
	center := g.voxelOf(geometry.Vector3{})
	if got := g.StateAt(center); got != AtomCenter {
		t.Fatalf("StateAt(center) = %v, want AtomCenter", got)
	}
}

func TestDeflateAllClearsAllMembers(t *testing.T) {
	g := newTestGrid(t, Minimal)
	if _, err := g.AddAtom(geometry.Vector3{X: -1}, formfactor.NeutralCarbon, false); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddAtom(geometry.Vector3{X: 1}, formfactor.NeutralOxygen, false); err != nil {
		t.Fatal(err)
	}
	g.DeflateAll()
	if g.NumMembers() != 0 {
		t.Fatalf("NumMembers() = %v, want 0", g.NumMembers())
	}
}

func TestNewBoundsTooSmallRetriesThenFails(t *testing.T) {
	min := geometry.Vector3{}
	max := geometry.Vector3{}
	_, err := New(min, max, -10, 1.0, Options{MaxGrowthAttempts: 1})
	if err == nil {
		t.Fatal("expected BoundsTooSmall-style failure for a negative-margin grid")
	}
}

func TestObjectBoundsRowInterval(t *testing.T) {
	g := newTestGrid(t, Minimal)
	if _, err := g.AddAtom(geometry.Vector3{X: -1}, formfactor.NeutralCarbon, false); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddAtom(geometry.Vector3{X: 1}, formfactor.NeutralCarbon, false); err != nil {
		t.Fatal(err)
	}
	ob := g.ComputeObjectBounds()
	center := g.voxelOf(geometry.Vector3{})
	min, max, ok := ob.RowInterval(center.Z, center.Y)
	if !ok {
		t.Fatal("expected occupied row at the atoms' z,y")
	}
	if min > max {
		t.Fatalf("invalid interval [%d,%d]", min, max)
	}
}
