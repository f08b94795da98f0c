package histogram

import (
	"math"
	"testing"

	"github.com/AUSAXS/AUSAXS-sub011/body"
	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

func bodySnapshots(ids []int, xs []float64, dirty []bool) []BodySnapshot {
	out := make([]BodySnapshot, len(ids))
	for i := range ids {
		atoms := []body.Atom{{Position: geometry.Vector3{X: xs[i]}, Occupancy: 1, FFType: formfactor.NeutralCarbon}}
		out[i] = BodySnapshot{ID: ids[i], CC: body.FromAtoms(atoms, false), Dirty: dirty[i]}
	}
	return out
}

func totalOf(p *PartialHistogram, axis geometry.Axis) float64 {
	var total float64
	for d := 0; d < axis.Bins; d++ {
		total += p.At(formfactor.NeutralCarbon, formfactor.NeutralCarbon, d)
	}
	return total
}

func TestIncrementalMatchesFullRecomputeOnFirstCall(t *testing.T) {
	axis := testDAxis(t)
	incr := NewIncrementalPartialHistogramManager(axis, false, 0)
	bodies := bodySnapshots([]int{0, 1, 2}, []float64{0, 5, 10}, []bool{true, true, true})
	p, err := incr.Calculate(bodies, formfactor.NumTypes())
	if err != nil {
		t.Fatal(err)
	}

	full := NewPartialHistogramManager(axis, false, 0)
	var all []body.Atom
	for _, x := range []float64{0, 5, 10} {
		all = append(all, body.Atom{Position: geometry.Vector3{X: x}, Occupancy: 1, FFType: formfactor.NeutralCarbon})
	}
	cc := body.FromAtoms(all, false)
	want, err := full.Calculate(cc, formfactor.NumTypes())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(totalOf(p, axis)-totalOf(want, axis)) > 1e-9 {
		t.Fatalf("incremental total %v, want %v", totalOf(p, axis), totalOf(want, axis))
	}
}

func TestIncrementalReusesCleanBodiesOnSubsequentCall(t *testing.T) {
	axis := testDAxis(t)
	incr := NewIncrementalPartialHistogramManager(axis, false, 0)
	ntypes := formfactor.NumTypes()

	first := bodySnapshots([]int{0, 1}, []float64{0, 5}, []bool{true, true})
	if _, err := incr.Calculate(first, ntypes); err != nil {
		t.Fatal(err)
	}

	// Move body 1 and mark it dirty; body 0 stays clean and should be
	// served entirely from cache (self- and cross-partial alike).
	second := bodySnapshots([]int{0, 1}, []float64{0, 8}, []bool{false, true})
	p, err := incr.Calculate(second, ntypes)
	if err != nil {
		t.Fatal(err)
	}

	full := NewPartialHistogramManager(axis, false, 0)
	all := []body.Atom{
		{Position: geometry.Vector3{X: 0}, Occupancy: 1, FFType: formfactor.NeutralCarbon},
		{Position: geometry.Vector3{X: 8}, Occupancy: 1, FFType: formfactor.NeutralCarbon},
	}
	cc := body.FromAtoms(all, false)
	want, err := full.Calculate(cc, ntypes)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(totalOf(p, axis)-totalOf(want, axis)) > 1e-9 {
		t.Fatalf("incremental total after move %v, want %v", totalOf(p, axis), totalOf(want, axis))
	}
}

func TestIncrementalPrunesRemovedBodies(t *testing.T) {
	axis := testDAxis(t)
	incr := NewIncrementalPartialHistogramManager(axis, false, 0)
	ntypes := formfactor.NumTypes()

	first := bodySnapshots([]int{0, 1, 2}, []float64{0, 5, 10}, []bool{true, true, true})
	if _, err := incr.Calculate(first, ntypes); err != nil {
		t.Fatal(err)
	}
	second := bodySnapshots([]int{0, 1}, []float64{0, 5}, []bool{false, false})
	p, err := incr.Calculate(second, ntypes)
	if err != nil {
		t.Fatal(err)
	}
	if len(incr.selfCache) != 2 || len(incr.crossCache) != 1 {
		t.Fatalf("expected pruned cache of 2 self + 1 cross entries, got %d self, %d cross", len(incr.selfCache), len(incr.crossCache))
	}

	full := NewPartialHistogramManager(axis, false, 0)
	all := []body.Atom{
		{Position: geometry.Vector3{X: 0}, Occupancy: 1, FFType: formfactor.NeutralCarbon},
		{Position: geometry.Vector3{X: 5}, Occupancy: 1, FFType: formfactor.NeutralCarbon},
	}
	cc := body.FromAtoms(all, false)
	want, err := full.Calculate(cc, ntypes)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(totalOf(p, axis)-totalOf(want, axis)) > 1e-9 {
		t.Fatalf("pruned total %v, want %v", totalOf(p, axis), totalOf(want, axis))
	}
}

func TestIncrementalShapeMismatchClearsCache(t *testing.T) {
	axis := testDAxis(t)
	incr := NewIncrementalPartialHistogramManager(axis, false, 0)
	bodies := bodySnapshots([]int{0}, []float64{0}, []bool{true})
	if _, err := incr.Calculate(bodies, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := incr.Calculate(bodies, 5); err == nil {
		t.Fatal("expected a ShapeMismatch error when ntypes grows between calls")
	}
	if len(incr.selfCache) != 0 || len(incr.crossCache) != 0 {
		t.Fatal("expected cache to be cleared after a shape mismatch")
	}
}
