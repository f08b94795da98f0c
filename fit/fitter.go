package fit

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/histogram"
)

// Fitter drives the nonlinear minimization of spec.md §4.8 against one
// experimental curve, reusing a single CompositeDistanceHistogram (and
// therefore its per-bucket cache) across every residual evaluation.
type Fitter struct {
	Composite *histogram.CompositeDistanceHistogram
	Product   *formfactor.ProductTable
	Debye     *formfactor.DebyeTable
	Data      Data

	// Base supplies the fixed value for every parameter not in Enabled.
	Base histogram.Params
	// Enabled lists the nonlinear parameters the minimizer is allowed to
	// move, per spec.md §4.8's "nonlinear parameter subset currently
	// enabled by settings".
	Enabled []ParamName
	Limits  map[ParamName]geometry.Limit

	MaxIterations int
}

// NewFitter constructs a Fitter with the declared default limits and a
// 200-iteration budget, matching original_source's default convergence
// cap for Levenberg-Marquardt style fits.
func NewFitter(composite *histogram.CompositeDistanceHistogram, pt *formfactor.ProductTable, dt *formfactor.DebyeTable, data Data, enabled []ParamName) *Fitter {
	return &Fitter{
		Composite:     composite,
		Product:       pt,
		Debye:         dt,
		Data:          data,
		Base:          histogram.DefaultParams(),
		Enabled:       enabled,
		Limits:        DefaultLimits(),
		MaxIterations: 200,
	}
}

func paramGet(p histogram.Params, name ParamName) float64 {
	switch name {
	case ParamCw:
		return p.Cw
	case ParamCx:
		return p.Cx
	case ParamCr:
		return p.Cr
	case ParamBa:
		return p.Ba
	case ParamBx:
		return p.Bx
	}
	return 0
}

func paramSet(p *histogram.Params, name ParamName, v float64) {
	switch name {
	case ParamCw:
		p.Cw = v
	case ParamCx:
		p.Cx = v
	case ParamCr:
		p.Cr = v
	case ParamBa:
		p.Ba = v
	case ParamBx:
		p.Bx = v
	}
}

// fromVector builds the full parameter set from the minimizer's free
// vector x (one entry per f.Enabled, in order), clamped to each
// parameter's declared bracket.
func (f *Fitter) fromVector(x []float64) histogram.Params {
	p := f.Base
	for i, name := range f.Enabled {
		v := x[i]
		if lim, ok := f.Limits[name]; ok {
			v = lim.Clamp(v)
		}
		paramSet(&p, name, v)
	}
	return p
}

func (f *Fitter) toVector() []float64 {
	x := make([]float64, len(f.Enabled))
	for i, name := range f.Enabled {
		x[i] = paramGet(f.Base, name)
	}
	return x
}

// modelAtData evaluates the composite histogram at params, after
// invalidating the buckets every enabled parameter touches, and samples
// it at each data point's nearest q-axis bin.
func (f *Fitter) modelAtData(params histogram.Params) ([]float64, error) {
	for _, name := range f.Enabled {
		f.Composite.MarkParamDirty(string(name))
	}
	model, err := f.Composite.Evaluate(f.Product, f.Debye, params)
	if err != nil {
		return nil, err
	}
	qAxis := f.Product.Axis()
	out := make([]float64, len(f.Data))
	for i, d := range f.Data {
		k := qAxis.IndexOf(d.Q)
		if k < 0 {
			k = 0
		}
		if k >= qAxis.Bins {
			k = qAxis.Bins - 1
		}
		out[i] = model[k]
	}
	return out, nil
}

// linearStep solves the closed-form weighted least-squares scale and
// background step of spec.md §4.8 via gonum/mat's QR-backed VecDense
// solve: minimize Σ((scale*model_k+background−I_k)/σ_k)².
func linearStep(model []float64, data Data) (scale, background float64, err error) {
	n := len(data)
	a := mat.NewDense(n, 2, nil)
	b := mat.NewVecDense(n, nil)
	for i, d := range data {
		if d.Sigma == 0 {
			return 0, 0, fmt.Errorf("fit: zero sigma at data point %d: %w", i, ausaxserr.ErrSingularNormalEquations)
		}
		a.Set(i, 0, model[i]/d.Sigma)
		a.Set(i, 1, 1/d.Sigma)
		b.SetVec(i, d.I/d.Sigma)
	}
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return 0, 0, fmt.Errorf("fit: linear scale/background solve degenerated: %w", ausaxserr.ErrSingularNormalEquations)
	}
	return x.AtVec(0), x.AtVec(1), nil
}

// Residuals returns [(I_model(q_k;params)−I_obs_k)/σ_k] after fitting
// the linear scale and background by the closed-form step, per spec.md
// §4.8.
func (f *Fitter) Residuals(params histogram.Params) ([]float64, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("fit: no experimental data: %w", ausaxserr.ErrNoData)
	}
	model, err := f.modelAtData(params)
	if err != nil {
		return nil, err
	}
	scale, background, err := linearStep(model, f.Data)
	if err != nil {
		return nil, err
	}
	residuals := make([]float64, len(f.Data))
	for i, d := range f.Data {
		residuals[i] = (scale*model[i] + background - d.I) / d.Sigma
	}
	return residuals, nil
}

// Chi2 returns Σ residuals².
func (f *Fitter) Chi2(params histogram.Params) (float64, error) {
	r, err := f.Residuals(params)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range r {
		sum += v * v
	}
	return sum, nil
}

// FitResult carries the outcome of a converged Fit() call. A fit that
// exhausts its budget returns no FitResult, only an
// ErrMinimizerDidNotConverge error.
type FitResult struct {
	Params     histogram.Params
	Errors     histogram.Params // symmetric 1-sigma error per free parameter; zero for fixed ones
	Chi2       float64
	Dof        int
	Iterations int
	Profile    []XY
	Residuals  []XY
	ResidualMean,
	ResidualVariance float64
}

// Fit drives a Levenberg-Marquardt minimizer over f.Enabled, bracketed
// by f.Limits, using a finite-difference Jacobian of the residual
// vector (gonum.org/v1/gonum/diff/fd), per spec.md §4.8.
func (f *Fitter) Fit() (*FitResult, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("fit: no experimental data: %w", ausaxserr.ErrNoData)
	}

	x := f.toVector()
	if len(x) == 0 {
		return f.finalize(f.Base, 0, nil)
	}

	residualFn := func(xv []float64) ([]float64, error) {
		return f.Residuals(f.fromVector(xv))
	}

	r0, err := residualFn(x)
	if err != nil {
		return nil, err
	}
	chi2 := sumSquares(r0)
	lambda := 1e-3
	n := len(f.Data)
	m := len(x)

	for iter := 0; iter < f.MaxIterations; iter++ {
		jac := mat.NewDense(n, m, nil)
		fd.Jacobian(jac, func(y, xv []float64) {
			res, err := residualFn(xv)
			if err != nil {
				for i := range y {
					y[i] = math.Inf(1)
				}
				return
			}
			copy(y, res)
		}, x, &fd.JacobianSettings{Formula: fd.Central})

		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		for i := 0; i < m; i++ {
			jtj.Set(i, i, jtj.At(i, i)*(1+lambda))
		}

		rVec := mat.NewVecDense(n, append([]float64(nil), r0...))
		var jtr mat.VecDense
		jtr.MulVec(jac.T(), rVec)
		jtr.ScaleVec(-1, &jtr)

		var step mat.VecDense
		if err := step.SolveVec(&jtj, &jtr); err != nil {
			lambda *= 10
			continue
		}

		xNew := make([]float64, m)
		for i := range xNew {
			xNew[i] = x[i] + step.AtVec(i)
		}
		rNew, err := residualFn(xNew)
		if err != nil {
			lambda *= 10
			continue
		}
		chi2New := sumSquares(rNew)

		if chi2New < chi2 {
			x = xNew
			r0 = rNew
			chi2 = chi2New
			lambda = math.Max(lambda/10, 1e-12)
			if stepConverged(step) {
				return f.finalize(f.fromVector(x), iter+1, jac)
			}
		} else {
			lambda *= 10
			if lambda > 1e12 {
				return nil, convergenceFailure(f.fromVector(x), chi2, f.MaxIterations)
			}
		}
	}
	return nil, convergenceFailure(f.fromVector(x), chi2, f.MaxIterations)
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}

func stepConverged(step mat.VecDense) bool {
	var norm float64
	for i := 0; i < step.Len(); i++ {
		norm += step.AtVec(i) * step.AtVec(i)
	}
	return math.Sqrt(norm) < 1e-10
}

func convergenceFailure(last histogram.Params, chi2 float64, iters int) error {
	logrus.WithField("iterations", iters).WithField("chi2", chi2).WithField("component", "fit").
		Warn("minimizer exhausted its iteration budget without converging")
	return ausaxserr.NotConverged(
		fmt.Sprintf("minimizer exhausted %d iterations", iters),
		[]float64{last.Cw, last.Cx, last.Cr, last.Ba, last.Bx},
		chi2,
	)
}

func (f *Fitter) finalize(params histogram.Params, iters int, jac *mat.Dense) (*FitResult, error) {
	model, err := f.modelAtData(params)
	if err != nil {
		return nil, err
	}
	scale, background, err := linearStep(model, f.Data)
	if err != nil {
		return nil, err
	}
	residuals := make([]float64, len(f.Data))
	residualXY := make([]XY, len(f.Data))
	profile := make([]XY, len(f.Data))
	for i, d := range f.Data {
		fitted := scale*model[i] + background
		residuals[i] = (fitted - d.I) / d.Sigma
		residualXY[i] = XY{X: d.Q, Y: residuals[i]}
		profile[i] = XY{X: d.Q, Y: fitted}
	}
	mean, variance := stat.MeanVariance(residuals, nil)
	dof := len(f.Data) - len(f.Enabled)
	chi2 := sumSquares(residuals)

	result := &FitResult{
		Params:           params,
		Errors:           f.paramErrors(jac, chi2, dof),
		Chi2:             chi2,
		Dof:              dof,
		Iterations:       iters,
		Profile:          profile,
		Residuals:        residualXY,
		ResidualMean:     mean,
		ResidualVariance: variance,
	}
	return result, nil
}

// paramErrors derives symmetric 1-sigma errors from the minimizer's
// final curvature, per spec.md §4.8: the diagonal of
// (chi2/dof)·(J^T J)^-1, mapped back onto the full parameter set (zero
// for any parameter that was held fixed).
func (f *Fitter) paramErrors(jac *mat.Dense, chi2 float64, dof int) histogram.Params {
	var errs histogram.Params
	if jac == nil || dof <= 0 {
		return errs
	}
	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)
	var cov mat.Dense
	if err := cov.Inverse(&jtj); err != nil {
		return errs
	}
	reducedChi2 := chi2 / float64(dof)
	for i, name := range f.Enabled {
		variance := reducedChi2 * cov.At(i, i)
		if variance < 0 {
			variance = 0
		}
		paramSet(&errs, name, math.Sqrt(variance))
	}
	return errs
}
