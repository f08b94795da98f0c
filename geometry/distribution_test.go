package geometry

import "testing"

func TestDistribution1DUnweightedAccumulates(t *testing.T) {
	d := NewDistribution1D(4, false)
	d.Add(1, 2.0, 0)
	d.Add(1, 3.0, 0)
	if got := d.Get(1); got != 5.0 {
		t.Fatalf("Get(1) = %v, want 5", got)
	}
	if d.Get(0) != 0 {
		t.Fatalf("expected untouched bin to be zero")
	}
	if d.Weighted() {
		t.Fatal("expected unweighted")
	}
	if d.Len() != 4 {
		t.Fatalf("Len() = %v, want 4", d.Len())
	}
}

func TestDistribution1DWeightedBinCenter(t *testing.T) {
	d := NewDistribution1D(4, true)
	d.Add(2, 1.0, 5.0)
	d.Add(2, 1.0, 7.0)
	axis, err := NewAxis(0, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.BinCenter(2, axis); got != 6.0 {
		t.Fatalf("BinCenter = %v, want 6", got)
	}
	if !d.Weighted() {
		t.Fatal("expected weighted")
	}
}

func TestDistribution1DWeightedEmptyBinFallsBackToAxis(t *testing.T) {
	d := NewDistribution1D(4, true)
	axis, err := NewAxis(0, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.BinCenter(3, axis); got != axis.ValueOf(3) {
		t.Fatalf("BinCenter on empty bin = %v, want axis default %v", got, axis.ValueOf(3))
	}
}

func TestDistribution2DSymmetricPairsShareStorage(t *testing.T) {
	d := NewDistribution2D(3, 10, false)
	d.Add(0, 2, 5, 4.0, 0)
	if got := d.Get(2, 0, 5); got != 4.0 {
		t.Fatalf("Get(2,0,5) = %v, want 4 (symmetric with Add(0,2,5))", got)
	}
}

func TestDistribution2DDiagonalAndOffDiagonalDistinct(t *testing.T) {
	d := NewDistribution2D(3, 10, false)
	d.Add(0, 0, 1, 1.0, 0)
	d.Add(1, 1, 1, 2.0, 0)
	d.Add(0, 1, 1, 3.0, 0)
	if got := d.Get(0, 0, 1); got != 1.0 {
		t.Fatalf("Get(0,0,1) = %v, want 1", got)
	}
	if got := d.Get(1, 1, 1); got != 2.0 {
		t.Fatalf("Get(1,1,1) = %v, want 2", got)
	}
	if got := d.Get(0, 1, 1); got != 3.0 {
		t.Fatalf("Get(0,1,1) = %v, want 3", got)
	}
}

func TestDistribution2DAllPairsInBounds(t *testing.T) {
	const ntypes = 5
	d := NewDistribution2D(ntypes, 2, true)
	for i := 0; i < ntypes; i++ {
		for j := i; j < ntypes; j++ {
			d.Add(i, j, 0, 1.0, 3.5)
			if got := d.Get(i, j, 0); got != 1.0 {
				t.Fatalf("Get(%d,%d,0) = %v, want 1", i, j, got)
			}
		}
	}
	if got := d.NumTypes(); got != ntypes {
		t.Fatalf("NumTypes() = %v, want %v", got, ntypes)
	}
	if got := d.Bins(); got != 2 {
		t.Fatalf("Bins() = %v, want 2", got)
	}
}

func TestDistribution2DWeightedBinCenter(t *testing.T) {
	d := NewDistribution2D(2, 4, true)
	d.Add(0, 1, 2, 1.0, 4.0)
	d.Add(1, 0, 2, 1.0, 6.0)
	axis, err := NewAxis(0, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.BinCenter(0, 1, 2, axis); got != 5.0 {
		t.Fatalf("BinCenter = %v, want 5 (average of 4 and 6)", got)
	}
}

func TestDistribution3DGetSet(t *testing.T) {
	d := NewDistribution3D(2, 3, 4)
	d.Set(1, 2, 3, 9.5)
	if got := d.Get(1, 2, 3); got != 9.5 {
		t.Fatalf("Get(1,2,3) = %v, want 9.5", got)
	}
	if d.Get(0, 0, 0) != 0 {
		t.Fatal("expected untouched voxel to be zero")
	}
	nz, ny, nx := d.Shape()
	if nz != 2 || ny != 3 || nx != 4 {
		t.Fatalf("Shape() = (%d,%d,%d), want (2,3,4)", nz, ny, nx)
	}
}
