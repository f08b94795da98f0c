package geometry

import "gonum.org/v1/gonum/mat"

// Matrix wraps a gonum dense matrix for the rotation/transform operations
// bodies apply to their atoms. Wiring gonum.org/v1/gonum/mat here mirrors
// how the teacher leans on the same gonum module for every piece of
// nontrivial numerics (see internal/inmapref/io.go, vargrid.go use of
// gonum's floats package from the same module).
type Matrix struct {
	dense *mat.Dense
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix {
	d := mat.NewDense(3, 3, nil)
	d.Set(0, 0, 1)
	d.Set(1, 1, 1)
	d.Set(2, 2, 1)
	return Matrix{dense: d}
}

// NewMatrix3 builds a 3x3 matrix from row-major values.
func NewMatrix3(values [9]Scalar) Matrix {
	return Matrix{dense: mat.NewDense(3, 3, values[:])}
}

// At returns the value at (row, col).
func (m Matrix) At(row, col int) Scalar {
	return m.dense.At(row, col)
}

// Apply returns m*v, treating v as a column vector.
func (m Matrix) Apply(v Vector3) Vector3 {
	var out mat.VecDense
	in := mat.NewVecDense(3, []Scalar{v.X, v.Y, v.Z})
	out.MulVec(m.dense, in)
	return Vector3{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}

// Mul returns m*o.
func (m Matrix) Mul(o Matrix) Matrix {
	var out mat.Dense
	out.Mul(m.dense, o.dense)
	return Matrix{dense: &out}
}

// Dense exposes the underlying gonum matrix for components (e.g. fit)
// that need general linear-algebra operations gonum provides directly.
func (m Matrix) Dense() *mat.Dense { return m.dense }
