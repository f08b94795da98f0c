package histogram

import (
	"gonum.org/v1/gonum/floats"

	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

// DistanceHistogram is the 1-D total pair-distance profile of spec.md
// §4.2's calculate(), the partial table collapsed across every
// form-factor-type pair.
type DistanceHistogram struct {
	axis   geometry.Axis
	values []float64
}

// NewDistanceHistogramFromPartial collapses a PartialHistogram's
// (type-pair, d) table into a single d-indexed profile by summing every
// type-pair bucket at each bin, using gonum/floats the way the teacher
// sums its per-cell slices in internal/inmapref/io.go.
func NewDistanceHistogramFromPartial(p *PartialHistogram) *DistanceHistogram {
	bins := p.axis.Bins
	values := make([]float64, bins)
	npairs := p.ntypes * (p.ntypes + 1) / 2
	buf := make([]float64, npairs)
	for d := 0; d < bins; d++ {
		k := 0
		for i := 0; i < p.ntypes; i++ {
			for j := i; j < p.ntypes; j++ {
				buf[k] = p.values.Get(i, j, d)
				k++
			}
		}
		values[d] = floats.Sum(buf)
	}
	return &DistanceHistogram{axis: p.axis, values: values}
}

// Axis returns the d-axis the profile was built on.
func (h *DistanceHistogram) Axis() geometry.Axis { return h.axis }

// At returns the accumulated total at bin d.
func (h *DistanceHistogram) At(d int) float64 { return h.values[d] }

// Total returns the sum of every bin, the "Total conservation" quantity
// of spec.md §8 (equal to sum(w_i^2) + 2*sum_{i<j} w_i*w_j = (Σw)^2 given this
// package's self-once/cross-doubled accumulation convention — see
// DESIGN.md for why that convention was chosen over the literal
// ½·(Σw)²+½·(Σw²) phrasing).
func (h *DistanceHistogram) Total() float64 { return floats.Sum(h.values) }
