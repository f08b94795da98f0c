// Package settings is the single validated configuration record of
// spec.md §9's "keep the global conceptually, gate mutation behind one
// record": every recognized option of §6's table lives here, backed by
// github.com/spf13/viper the way the teacher's inmaputil.Cfg wraps
// *viper.Viper for its own command configuration, with compiled-in
// defaults matching original_source's ConstantsAxes.h /
// ConstantsFitParameters.h.
package settings

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
)

// Settings is a single mutable configuration record. The zero value is
// not usable; construct with New.
type Settings struct {
	v *viper.Viper
}

// New returns a Settings populated with the compiled-in defaults of
// §6.1: q-axis [1e-4, 1, 200 bins], d-axis [0, 2000, 8000 bins], the
// original source's parameter short names, and every other recognized
// option at a conservative default.
func New() *Settings {
	v := viper.New()
	v.SetEnvPrefix("AUSAXS")
	v.AutomaticEnv()

	v.SetDefault("threads", 1)

	v.SetDefault("qmin", 1e-4)
	v.SetDefault("qmax", 1.0)
	v.SetDefault("bins", 200)

	v.SetDefault("max_distance", 2000.0)
	v.SetDefault("distance_bin_width", 0.25)
	v.SetDefault("weighted_bins", true)

	v.SetDefault("fit_excluded_volume", false)
	v.SetDefault("fit_solvent_density", false)
	v.SetDefault("fit_hydration", true)
	v.SetDefault("fit_atomic_debye_waller", false)
	v.SetDefault("fit_exv_debye_waller", false)

	v.SetDefault("cw", 1.0)
	v.SetDefault("cx", 1.0)
	v.SetDefault("cr", 1.0)
	v.SetDefault("Ba", 0.0)
	v.SetDefault("Bx", 0.0)

	v.SetDefault("exv_method", "Grid")
	v.SetDefault("hydration_strategy", "axes")
	v.SetDefault("culling_strategy", "none")
	v.SetDefault("placement_strategy", "axes")
	v.SetDefault("expansion_strategy", "minimal")

	v.SetDefault("min_exv_radius", 1.0)
	v.SetDefault("grid_width", 1.0)
	v.SetDefault("grid_margin", 3.0)

	v.SetDefault("use_effective_charge", true)
	v.SetDefault("center", true)

	v.SetDefault("max_iterations", 200)
	v.SetDefault("verbose", false)

	v.SetDefault("radiation", "xray")

	return &Settings{v: v}
}

var recognizedExvMethods = map[string]bool{
	"Grid": true, "GridSurface": true, "GridScalable": true,
	"WAXSiS": true, "Pepsi": true, "CRYSOL": true,
}

var recognizedHydrationStrategies = map[string]bool{
	"axes": true, "jan": true, "radial": true, "pepsi": true,
}

var recognizedCullingStrategies = map[string]bool{
	"none": true, "counter": true, "body_counter": true, "outlier": true, "random": true,
}

var recognizedExpansionStrategies = map[string]bool{
	"minimal": true, "full": true,
}

var recognizedRadiations = map[string]bool{
	"xray": true, "neutron": true,
}

func configErr(option, value string) error {
	logrus.WithField("option", option).WithField("value", value).WithField("component", "settings").
		Warn("rejected unrecognized configuration value")
	return fmt.Errorf("settings: %q is not a recognized value for %s: %w", value, option, ausaxserr.ErrConfigurationError)
}

// Threads is the size of the global worker pool.
func (s *Settings) Threads() int { return s.v.GetInt("threads") }

// SetThreads validates n > 0 before committing.
func (s *Settings) SetThreads(n int) error {
	if n <= 0 {
		return fmt.Errorf("settings: threads must be positive, got %d: %w", n, ausaxserr.ErrConfigurationError)
	}
	s.v.Set("threads", n)
	return nil
}

// QAxis returns the fixed q-axis parameters (qmin, qmax, bins).
func (s *Settings) QAxis() (qmin, qmax float64, bins int) {
	return s.v.GetFloat64("qmin"), s.v.GetFloat64("qmax"), s.v.GetInt("bins")
}

// SetQAxis validates qmin < qmax and bins > 0 before committing.
func (s *Settings) SetQAxis(qmin, qmax float64, bins int) error {
	if qmin >= qmax {
		return fmt.Errorf("settings: qmin (%v) must be less than qmax (%v): %w", qmin, qmax, ausaxserr.ErrConfigurationError)
	}
	if bins <= 0 {
		return fmt.Errorf("settings: bins must be positive, got %d: %w", bins, ausaxserr.ErrConfigurationError)
	}
	s.v.Set("qmin", qmin)
	s.v.Set("qmax", qmax)
	s.v.Set("bins", bins)
	return nil
}

// DAxis returns the fixed d-axis parameters (max_distance, distance_bin_width).
func (s *Settings) DAxis() (maxDistance, binWidth float64) {
	return s.v.GetFloat64("max_distance"), s.v.GetFloat64("distance_bin_width")
}

// SetDAxis validates both values are positive before committing.
func (s *Settings) SetDAxis(maxDistance, binWidth float64) error {
	if maxDistance <= 0 || binWidth <= 0 {
		return fmt.Errorf("settings: max_distance and distance_bin_width must be positive, got (%v, %v): %w", maxDistance, binWidth, ausaxserr.ErrConfigurationError)
	}
	if binWidth > maxDistance {
		return fmt.Errorf("settings: distance_bin_width (%v) exceeds max_distance (%v): %w", binWidth, maxDistance, ausaxserr.ErrConfigurationError)
	}
	s.v.Set("max_distance", maxDistance)
	s.v.Set("distance_bin_width", binWidth)
	return nil
}

// WeightedBins reports whether bin-center reweighting is enabled.
func (s *Settings) WeightedBins() bool { return s.v.GetBool("weighted_bins") }

// SetWeightedBins commits the flag unconditionally; there is no invalid value.
func (s *Settings) SetWeightedBins(v bool) { s.v.Set("weighted_bins", v) }

// FitEnabled reports which of the five nonlinear/scaling parameters are
// toggled on for fitting, per §6's fit_* table row.
func (s *Settings) FitEnabled() (excludedVolume, solventDensity, hydration, atomicDW, exvDW bool) {
	return s.v.GetBool("fit_excluded_volume"),
		s.v.GetBool("fit_solvent_density"),
		s.v.GetBool("fit_hydration"),
		s.v.GetBool("fit_atomic_debye_waller"),
		s.v.GetBool("fit_exv_debye_waller")
}

// SetFitEnabled commits the five toggles. fit_exv_debye_waller requires
// fit_excluded_volume, since the excluded-volume Debye-Waller factor Bx
// has no meaning without an excluded-volume contribution to modulate.
func (s *Settings) SetFitEnabled(excludedVolume, solventDensity, hydration, atomicDW, exvDW bool) error {
	if exvDW && !excludedVolume {
		return fmt.Errorf("settings: fit_exv_debye_waller requires fit_excluded_volume: %w", ausaxserr.ErrConfigurationError)
	}
	s.v.Set("fit_excluded_volume", excludedVolume)
	s.v.Set("fit_solvent_density", solventDensity)
	s.v.Set("fit_hydration", hydration)
	s.v.Set("fit_atomic_debye_waller", atomicDW)
	s.v.Set("fit_exv_debye_waller", exvDW)
	return nil
}

// ParamValue returns the fixed numeric value for one of the original
// source's short parameter names (cw, cx, cr, Ba, Bx), used as the
// starting/fixed value when the corresponding fit_* toggle is off.
func (s *Settings) ParamValue(name string) float64 { return s.v.GetFloat64(name) }

// SetParamValue validates name is a recognized short parameter name.
func (s *Settings) SetParamValue(name string, value float64) error {
	switch name {
	case "cw", "cx", "cr", "Ba", "Bx":
		s.v.Set(name, value)
		return nil
	default:
		return configErr("parameter name", name)
	}
}

// ExvMethod is the selected excluded-volume model, one of
// {Grid, GridSurface, GridScalable, WAXSiS, Pepsi, CRYSOL}.
func (s *Settings) ExvMethod() string { return s.v.GetString("exv_method") }

// SetExvMethod validates method against the recognized set.
func (s *Settings) SetExvMethod(method string) error {
	if !recognizedExvMethods[method] {
		return configErr("exv_method", method)
	}
	s.v.Set("exv_method", method)
	return nil
}

// HydrationStrategy / CullingStrategy select the hydration shell
// pipeline's placement and culling stage implementations.
func (s *Settings) HydrationStrategy() string { return s.v.GetString("hydration_strategy") }
func (s *Settings) CullingStrategy() string   { return s.v.GetString("culling_strategy") }

// SetHydrationStrategy validates strategy against the recognized set.
func (s *Settings) SetHydrationStrategy(strategy string) error {
	if !recognizedHydrationStrategies[strategy] {
		return configErr("hydration_strategy", strategy)
	}
	s.v.Set("hydration_strategy", strategy)
	return nil
}

// SetCullingStrategy validates strategy against the recognized set.
func (s *Settings) SetCullingStrategy(strategy string) error {
	if !recognizedCullingStrategies[strategy] {
		return configErr("culling_strategy", strategy)
	}
	s.v.Set("culling_strategy", strategy)
	return nil
}

// PlacementStrategy / ExpansionStrategy select the grid construction
// choices of §6's table.
func (s *Settings) PlacementStrategy() string { return s.v.GetString("placement_strategy") }
func (s *Settings) ExpansionStrategy() string { return s.v.GetString("expansion_strategy") }

// SetPlacementStrategy validates strategy against the recognized set.
func (s *Settings) SetPlacementStrategy(strategy string) error {
	if !recognizedHydrationStrategies[strategy] {
		return configErr("placement_strategy", strategy)
	}
	s.v.Set("placement_strategy", strategy)
	return nil
}

// SetExpansionStrategy validates strategy against the recognized set.
func (s *Settings) SetExpansionStrategy(strategy string) error {
	if !recognizedExpansionStrategies[strategy] {
		return configErr("expansion_strategy", strategy)
	}
	s.v.Set("expansion_strategy", strategy)
	return nil
}

// GridParams returns the grid construction parameters of §6's table.
func (s *Settings) GridParams() (minExvRadius, gridWidth, gridMargin float64) {
	return s.v.GetFloat64("min_exv_radius"), s.v.GetFloat64("grid_width"), s.v.GetFloat64("grid_margin")
}

// SetGridParams validates all three are positive before committing.
func (s *Settings) SetGridParams(minExvRadius, gridWidth, gridMargin float64) error {
	if minExvRadius <= 0 || gridWidth <= 0 || gridMargin <= 0 {
		return fmt.Errorf("settings: grid parameters must be positive, got (%v, %v, %v): %w", minExvRadius, gridWidth, gridMargin, ausaxserr.ErrConfigurationError)
	}
	s.v.Set("min_exv_radius", minExvRadius)
	s.v.Set("grid_width", gridWidth)
	s.v.Set("grid_margin", gridMargin)
	return nil
}

// UseEffectiveCharge / Center are preprocessing switches on the
// molecule, per §6's table.
func (s *Settings) UseEffectiveCharge() bool { return s.v.GetBool("use_effective_charge") }
func (s *Settings) Center() bool             { return s.v.GetBool("center") }

// SetUseEffectiveCharge / SetCenter commit unconditionally; neither has an invalid value.
func (s *Settings) SetUseEffectiveCharge(v bool) { s.v.Set("use_effective_charge", v) }
func (s *Settings) SetCenter(v bool)             { s.v.Set("center", v) }

// MaxIterations / Verbose are the fit loop controls of §6's table.
func (s *Settings) MaxIterations() int { return s.v.GetInt("max_iterations") }
func (s *Settings) Verbose() bool      { return s.v.GetBool("verbose") }

// SetMaxIterations validates n > 0 before committing.
func (s *Settings) SetMaxIterations(n int) error {
	if n <= 0 {
		return fmt.Errorf("settings: max_iterations must be positive, got %d: %w", n, ausaxserr.ErrConfigurationError)
	}
	s.v.Set("max_iterations", n)
	return nil
}

// SetVerbose commits unconditionally.
func (s *Settings) SetVerbose(v bool) { s.v.Set("verbose", v) }

// Radiation selects between the X-ray and neutron form-factor tables of
// §6.2.
func (s *Settings) Radiation() string { return s.v.GetString("radiation") }

// SetRadiation validates radiation against the recognized set.
func (s *Settings) SetRadiation(radiation string) error {
	if !recognizedRadiations[radiation] {
		return configErr("radiation", radiation)
	}
	s.v.Set("radiation", radiation)
	return nil
}
