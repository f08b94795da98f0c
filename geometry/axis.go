package geometry

import (
	"fmt"
	"math"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
)

// Axis is a fixed, evenly spaced partition of [Min, Max) into Bins
// buckets, per spec.md §3: "Width = (max-min)/bins;
// value_of(i) = min + (i+0.5)*width".
type Axis struct {
	Min, Max Scalar
	Bins     int
}

// NewAxis validates and constructs an Axis. Bins must be positive and Max
// must exceed Min, or ErrConfigurationError is returned.
func NewAxis(min, max Scalar, bins int) (Axis, error) {
	if bins <= 0 {
		return Axis{}, fmt.Errorf("geometry: axis bins must be positive: %w", ausaxserr.ErrConfigurationError)
	}
	if !(max > min) {
		return Axis{}, fmt.Errorf("geometry: axis max must exceed min: %w", ausaxserr.ErrConfigurationError)
	}
	return Axis{Min: min, Max: max, Bins: bins}, nil
}

// Width returns (Max-Min)/Bins. Axes-consistency (spec.md §8) requires
// Bins*Width == Max-Min at all times; since Width is always derived, not
// stored, the invariant holds by construction.
func (a Axis) Width() Scalar {
	return (a.Max - a.Min) / Scalar(a.Bins)
}

// ValueOf returns the center of bin i.
func (a Axis) ValueOf(i int) Scalar {
	return a.Min + (Scalar(i)+0.5)*a.Width()
}

// IndexOf returns the index of the bin whose [lower, upper) range
// contains v, which is also the bin whose center (ValueOf) is nearest.
func (a Axis) IndexOf(v Scalar) int {
	return int(math.Floor((v - a.Min) / a.Width()))
}

// InBounds reports whether index i addresses a valid bin.
func (a Axis) InBounds(i int) bool {
	return i >= 0 && i < a.Bins
}

// InvWidth returns 1/Width(), precomputed for hot accumulation loops that
// multiply rather than divide per spec.md §4.2.
func (a Axis) InvWidth() Scalar {
	return 1 / a.Width()
}

// Limit is an inclusive [Min, Max] bracket, used for fitter parameter
// bounds (spec.md §4.8, e.g. cx ∈ [0.92, 1.08]).
type Limit struct {
	Min, Max Scalar
}

// Contains reports whether v lies within the inclusive bracket.
func (l Limit) Contains(v Scalar) bool {
	return v >= l.Min && v <= l.Max
}

// Clamp returns v restricted to [Min, Max].
func (l Limit) Clamp(v Scalar) Scalar {
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}
