// Package ausaxserr defines the typed error-kind vocabulary shared by every
// component of the scattering pipeline.
//
// Every kind is a package-level sentinel, matched with errors.Is and never
// string-compared. Callers that need to add context wrap with fmt.Errorf
// and the %w verb; the sentinel survives the wrap.
package ausaxserr

import "errors"

var (
	// ErrInvalidInput marks malformed or missing external data.
	ErrInvalidInput = errors.New("ausaxs: invalid input")

	// ErrOutOfBounds marks an index or grid violation.
	ErrOutOfBounds = errors.New("ausaxs: out of bounds")

	// ErrShapeMismatch marks an axis or form-factor-type cardinality
	// disagreement between collaborating objects.
	ErrShapeMismatch = errors.New("ausaxs: shape mismatch")

	// ErrNoData marks a fitter invoked without experimental data.
	ErrNoData = errors.New("ausaxs: no data")

	// ErrSingularNormalEquations marks a degenerate linear pre-fit step.
	ErrSingularNormalEquations = errors.New("ausaxs: singular normal equations")

	// ErrMinimizerDidNotConverge marks an exhausted iteration budget.
	ErrMinimizerDidNotConverge = errors.New("ausaxs: minimizer did not converge")

	// ErrConfigurationError marks an invalid settings combination.
	ErrConfigurationError = errors.New("ausaxs: configuration error")

	// ErrInternal marks a violated invariant that should be unreachable.
	ErrInternal = errors.New("ausaxs: internal error")
)
