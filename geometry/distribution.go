package geometry

import "github.com/ctessum/sparse"

// Distribution1D is a dense, contiguous counter indexed by integer bin,
// per spec.md §3. Two concrete implementations exist — unweighted and
// weighted — selected at construction time and hidden behind this
// interface, which is the "runtime façade that picks the specialization"
// spec.md §9 asks for in place of a compile-time template switch.
//
// Invariants common to both: indices are non-negative, all arithmetic is
// pure addition, an empty histogram equals zero, and the shape is fixed
// at construction.
type Distribution1D interface {
	// Add adds weight to the bin containing distance d, recording d
	// itself for weighted implementations so a bin-center correction can
	// later be recovered.
	Add(bin int, weight Scalar, distance Scalar)
	// Get returns the accumulated value at bin.
	Get(bin int) Scalar
	// BinCenter returns the distance to use when evaluating this bin:
	// the axis bin-center for unweighted distributions, or the
	// weight-averaged accumulated distance for weighted ones.
	BinCenter(bin int, axis Axis) Scalar
	// Len returns the number of bins.
	Len() int
	// Weighted reports which specialization this is.
	Weighted() bool
}

// NewDistribution1D constructs a Distribution1D with the given number of
// bins, in either the weighted or unweighted specialization.
func NewDistribution1D(bins int, weighted bool) Distribution1D {
	if weighted {
		return &weightedDist1D{values: sparse.ZerosDense(bins), entries: sparse.ZerosDense(bins)}
	}
	return &unweightedDist1D{values: sparse.ZerosDense(bins)}
}

type unweightedDist1D struct {
	values *sparse.DenseArray
}

func (d *unweightedDist1D) Add(bin int, weight, _ Scalar) { d.values.AddVal(weight, bin) }
func (d *unweightedDist1D) Get(bin int) Scalar            { return d.values.Get(bin) }
func (d *unweightedDist1D) BinCenter(bin int, axis Axis) Scalar {
	return axis.ValueOf(bin)
}
func (d *unweightedDist1D) Len() int      { return d.values.Shape[0] }
func (d *unweightedDist1D) Weighted() bool { return false }

type weightedDist1D struct {
	values  *sparse.DenseArray // accumulated weight per bin
	entries *sparse.DenseArray // accumulated weight*distance per bin
}

func (d *weightedDist1D) Add(bin int, weight, distance Scalar) {
	d.values.AddVal(weight, bin)
	d.entries.AddVal(weight*distance, bin)
}
func (d *weightedDist1D) Get(bin int) Scalar { return d.values.Get(bin) }
func (d *weightedDist1D) BinCenter(bin int, axis Axis) Scalar {
	v := d.values.Get(bin)
	if v == 0 {
		return axis.ValueOf(bin)
	}
	return d.entries.Get(bin) / v
}
func (d *weightedDist1D) Len() int       { return d.values.Shape[0] }
func (d *weightedDist1D) Weighted() bool { return true }

// Distribution2D is the (ff-type pair) x (distance bin) partial
// histogram table of spec.md §3/§4.2: a Distribution2D over the pair
// index with the d-axis as the inner dimension. It is symmetric in the
// ff-type pair by contract: Add/Get canonicalize (i,j) and (j,i) onto the
// same triangular row, so the Histogram-symmetry invariant of spec.md §8
// holds by construction rather than by a post-hoc symmetrization pass.
type Distribution2D interface {
	Add(i, j, bin int, weight, distance Scalar)
	Get(i, j, bin int) Scalar
	BinCenter(i, j, bin int, axis Axis) Scalar
	NumTypes() int
	Bins() int
	Weighted() bool
}

// NewDistribution2D constructs a Distribution2D over ntypes form-factor
// types and the given number of distance bins.
func NewDistribution2D(ntypes, bins int, weighted bool) Distribution2D {
	pairs := ntypes * (ntypes + 1) / 2
	if weighted {
		return &weightedDist2D{ntypes: ntypes, values: sparse.ZerosDense(pairs, bins), entries: sparse.ZerosDense(pairs, bins)}
	}
	return &unweightedDist2D{ntypes: ntypes, values: sparse.ZerosDense(pairs, bins)}
}

// triangularIndex maps an unordered (i,j) pair over [0,ntypes) to a
// unique row in [0, ntypes*(ntypes+1)/2).
func triangularIndex(ntypes, i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*ntypes - i*(i-1)/2 + (j - i)
}

type unweightedDist2D struct {
	ntypes int
	values *sparse.DenseArray
}

func (d *unweightedDist2D) Add(i, j, bin int, weight, _ Scalar) {
	d.values.AddVal(weight, triangularIndex(d.ntypes, i, j), bin)
}
func (d *unweightedDist2D) Get(i, j, bin int) Scalar {
	return d.values.Get(triangularIndex(d.ntypes, i, j), bin)
}
func (d *unweightedDist2D) BinCenter(_, _, bin int, axis Axis) Scalar { return axis.ValueOf(bin) }
func (d *unweightedDist2D) NumTypes() int                             { return d.ntypes }
func (d *unweightedDist2D) Bins() int                                 { return d.values.Shape[1] }
func (d *unweightedDist2D) Weighted() bool                            { return false }

type weightedDist2D struct {
	ntypes         int
	values, entries *sparse.DenseArray
}

func (d *weightedDist2D) Add(i, j, bin int, weight, distance Scalar) {
	p := triangularIndex(d.ntypes, i, j)
	d.values.AddVal(weight, p, bin)
	d.entries.AddVal(weight*distance, p, bin)
}
func (d *weightedDist2D) Get(i, j, bin int) Scalar {
	return d.values.Get(triangularIndex(d.ntypes, i, j), bin)
}
func (d *weightedDist2D) BinCenter(i, j, bin int, axis Axis) Scalar {
	p := triangularIndex(d.ntypes, i, j)
	v := d.values.Get(p, bin)
	if v == 0 {
		return axis.ValueOf(bin)
	}
	return d.entries.Get(p, bin) / v
}
func (d *weightedDist2D) NumTypes() int  { return d.ntypes }
func (d *weightedDist2D) Bins() int      { return d.values.Shape[1] }
func (d *weightedDist2D) Weighted() bool { return true }

// Distribution3D backs the voxel occupancy grid of spec.md §4.3: a dense
// (z,y,x)-shaped array of small state values, addressed exactly the way
// the teacher addresses its own (z,y,x)-shaped concentration arrays (see
// internal/inmapref/aqm.go, geoschem.go).
type Distribution3D struct {
	values *sparse.DenseArray
}

// NewDistribution3D constructs a zeroed nz x ny x nx array.
func NewDistribution3D(nz, ny, nx int) *Distribution3D {
	return &Distribution3D{values: sparse.ZerosDense(nz, ny, nx)}
}

func (d *Distribution3D) Get(z, y, x int) Scalar        { return d.values.Get(z, y, x) }
func (d *Distribution3D) Set(z, y, x int, v Scalar)      { d.values.Set(v, z, y, x) }
func (d *Distribution3D) Shape() (nz, ny, nx int) {
	return d.values.Shape[0], d.values.Shape[1], d.values.Shape[2]
}
