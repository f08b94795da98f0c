// Package fit implements the least-squares fitter of spec.md §4.8:
// residuals against experimental data after a closed-form linear
// scale/background step, chi-squared, and a bounded nonlinear
// minimizer over the enabled subset of cw/cx/cr/Ba/Bx.
package fit

// Point is one experimental observation (q_k, I_obs_k, sigma_k).
type Point struct {
	Q     float64
	I     float64
	Sigma float64
}

// Data is an experimental SAXS curve, D = {(q_k, I_obs_k, sigma_k)} of
// spec.md §4.8.
type Data []Point

// XY is a plain, external-collaborator-facing (x,y) pair — the shape
// profiles, residuals, and auxiliary datasets are emitted in, per
// spec.md §6's "plain (x,y) datasets" requirement that explicitly
// excludes any plotting library.
type XY struct {
	X, Y float64
}
