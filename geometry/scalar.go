// Package geometry provides the dense, contiguous containers and basic
// linear-algebra types shared by every other component of the scattering
// pipeline: Vector3, Matrix, Axis, Limit, and the weighted/unweighted
// Distribution1D/2D/3D counters.
package geometry

// Scalar is the single coordinate precision fixed at build time, per
// spec.md §3. The teacher never parameterizes over numeric width either
// (sparse.DenseArray is hard-coded float64), so this is a plain alias
// rather than a generic type parameter threaded through every component.
type Scalar = float64
