package fit

import "github.com/AUSAXS/AUSAXS-sub011/geometry"

// ParamName identifies one of the five nonlinear/scaling parameters a
// Fitter may enable, matching the short names SPEC_FULL.md §6.1 carries
// over from the original source's Parameters enum.
type ParamName string

const (
	ParamCw ParamName = "cw"
	ParamCx ParamName = "cx"
	ParamCr ParamName = "cr"
	ParamBa ParamName = "Ba"
	ParamBx ParamName = "Bx"
)

// DefaultLimits is the declared parameter bracket table of spec.md
// §4.8: "cx ∈ [0.92, 1.08]; cr ∈ [0.5, 2]; Ba, Bx ∈ [0, 5]". cw has no
// stated bracket in spec.md; original_source's ConstantsFitParameters.h
// leaves its limit effectively unconstrained for the hydration scale, so
// it is given a generous non-negative bracket here rather than left
// unchecked, since the minimizer needs *some* bracket to clamp against.
func DefaultLimits() map[ParamName]geometry.Limit {
	return map[ParamName]geometry.Limit{
		ParamCw: {Min: 0, Max: 5},
		ParamCx: {Min: 0.92, Max: 1.08},
		ParamCr: {Min: 0.5, Max: 2},
		ParamBa: {Min: 0, Max: 5},
		ParamBx: {Min: 0, Max: 5},
	}
}
