package formfactor

import (
	"fmt"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

// ProductTable is the symmetric PrecalculatedProduct table of spec.md
// §4.5: PrecalculatedProduct(i,j).at(k) = f_i(q_k)·f_j(q_k), materialized
// once per process on the shared q-axis.
type ProductTable struct {
	axis    geometry.Axis
	ntypes  int
	values  geometry.Distribution2D // unweighted, (pair, q-bin)
	neutron bool
}

// NewXRayProductTable builds the product table from the normalized
// five-Gaussian X-ray form factors over qAxis.
func NewXRayProductTable(qAxis geometry.Axis) *ProductTable {
	return newProductTable(qAxis, func(t Type) func(float64) float64 {
		ff := Normalized(t)
		return ff.Evaluate
	})
}

// NewNeutronProductTable builds the product table from the
// q-independent neutron scattering-length table, per SPEC_FULL.md §6.2.
func NewNeutronProductTable(qAxis geometry.Axis) *ProductTable {
	pt := newProductTable(qAxis, func(t Type) func(float64) float64 {
		length := NeutronLength(t)
		return func(float64) float64 { return length }
	})
	pt.neutron = true
	return pt
}

func newProductTable(qAxis geometry.Axis, evalFor func(Type) func(float64) float64) *ProductTable {
	n := NumTypes()
	pt := &ProductTable{
		axis:   qAxis,
		ntypes: n,
		values: geometry.NewDistribution2D(n, qAxis.Bins, false),
	}
	fns := make([]func(float64) float64, n)
	for t := 0; t < n; t++ {
		fns[t] = evalFor(Type(t))
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			for k := 0; k < qAxis.Bins; k++ {
				q := qAxis.ValueOf(k)
				v := fns[i](q) * fns[j](q)
				pt.values.Add(i, j, k, v, 0)
			}
		}
	}
	return pt
}

// At returns f_i(q_k)·f_j(q_k) for the unordered pair (i,j) at q-bin k.
func (pt *ProductTable) At(i, j Type, k int) (float64, error) {
	if k < 0 || k >= pt.axis.Bins {
		return 0, fmt.Errorf("formfactor: q-index %d out of range: %w", k, ausaxserr.ErrOutOfBounds)
	}
	return pt.values.Get(int(i), int(j), k), nil
}

// Axis returns the q-axis the table was built on.
func (pt *ProductTable) Axis() geometry.Axis { return pt.axis }

// NumTypes returns the form-factor-type cardinality baked into the table,
// used by callers to check ShapeMismatch against a partial-histogram
// table per spec.md §4.7.
func (pt *ProductTable) NumTypes() int { return pt.ntypes }

// Neutron reports whether this table was built from q-independent
// neutron scattering lengths rather than the X-ray Gaussian model.
func (pt *ProductTable) Neutron() bool { return pt.neutron }
