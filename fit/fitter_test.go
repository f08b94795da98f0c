package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
	"github.com/AUSAXS/AUSAXS-sub011/body"
	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/histogram"
)

func twoPointFitter(t *testing.T) *Fitter {
	t.Helper()
	dAxis, err := geometry.NewAxis(0, 20, 400)
	if err != nil {
		t.Fatal(err)
	}
	qAxis, err := geometry.NewAxis(0.01, 0.5, 50)
	if err != nil {
		t.Fatal(err)
	}
	atoms := []body.Atom{
		{Position: geometry.Vector3{Z: 0}, Occupancy: 1, FFType: formfactor.NeutralCarbon},
		{Position: geometry.Vector3{Z: 10}, Occupancy: 1, FFType: formfactor.NeutralCarbon},
	}
	cc := body.FromAtoms(atoms, false)
	mgr := histogram.NewPartialHistogramManager(dAxis, false, 0)
	p, err := mgr.Calculate(cc, formfactor.NumTypes())
	if err != nil {
		t.Fatal(err)
	}
	pt := formfactor.NewXRayProductTable(qAxis)
	dt := formfactor.NewDebyeTable(qAxis, dAxis)
	composite := histogram.NewCompositeDistanceHistogram(p, qAxis)

	model, err := composite.Evaluate(pt, dt, histogram.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	data := make(Data, qAxis.Bins)
	for k := 0; k < qAxis.Bins; k++ {
		data[k] = Point{Q: qAxis.ValueOf(k), I: model[k], Sigma: 1}
	}

	return NewFitter(composite, pt, dt, data, nil)
}

func TestResidualsZeroAgainstOwnReference(t *testing.T) {
	f := twoPointFitter(t)
	chi2, err := f.Chi2(histogram.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(chi2) > 1e-6 {
		t.Fatalf("chi2 = %v, want ~0 against the synthetic reference curve", chi2)
	}
}

func TestFitNoFreeParamsReturnsReferenceChi2(t *testing.T) {
	f := twoPointFitter(t)
	result, err := f.Fit()
	if err != nil {
		t.Fatal(err)
	}
	if result.Chi2 > 1e-6 {
		t.Fatalf("Chi2 = %v, want ~0", result.Chi2)
	}
	if result.Dof != len(f.Data) {
		t.Fatalf("Dof = %v, want %v (no free nonlinear params)", result.Dof, len(f.Data))
	}
}

func TestResidualsNoDataReturnsErrNoData(t *testing.T) {
	f := twoPointFitter(t)
	f.Data = nil
	_, err := f.Residuals(histogram.DefaultParams())
	if !errors.Is(err, ausaxserr.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestFitNoDataReturnsErrNoData(t *testing.T) {
	f := twoPointFitter(t)
	f.Data = nil
	_, err := f.Fit()
	if !errors.Is(err, ausaxserr.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestDefaultLimitsBracketsCxCrBaBx(t *testing.T) {
	limits := DefaultLimits()
	if limits[ParamCx].Min != 0.92 || limits[ParamCx].Max != 1.08 {
		t.Fatalf("cx limits = %+v, want [0.92, 1.08]", limits[ParamCx])
	}
	if limits[ParamCr].Min != 0.5 || limits[ParamCr].Max != 2 {
		t.Fatalf("cr limits = %+v, want [0.5, 2]", limits[ParamCr])
	}
	if limits[ParamBa].Min != 0 || limits[ParamBa].Max != 5 {
		t.Fatalf("Ba limits = %+v, want [0, 5]", limits[ParamBa])
	}
	if limits[ParamBx].Min != 0 || limits[ParamBx].Max != 5 {
		t.Fatalf("Bx limits = %+v, want [0, 5]", limits[ParamBx])
	}
}
