package grid

import "github.com/AUSAXS/AUSAXS-sub011/formfactor"

// vdwRadius is the per-form-factor-type inflation radius (Å) used to
// determine the sphere an atom-center marking inflates into
// atom-volume voxels, per spec.md §4.3's "radius r (per-type radius
// table)". Values are standard van-der-Waals radii for the neutral
// elements; water uses the oxygen radius since its scattering mass is
// oxygen-dominated (matching formfactor's treatment of Water).
var vdwRadius = map[formfactor.Type]float64{
	formfactor.NeutralHydrogen: 1.10,
	formfactor.NeutralCarbon:   1.70,
	formfactor.NeutralNitrogen: 1.55,
	formfactor.NeutralOxygen:   1.52,
	formfactor.Other:           1.80,
	formfactor.ExcludedVolume:  1.70,
	formfactor.Water:           1.52,
}

// RadiusOf returns the inflation radius for t, defaulting to the
// "Other" radius for any type not explicitly tabulated.
func RadiusOf(t formfactor.Type) float64 {
	if r, ok := vdwRadius[t]; ok {
		return r
	}
	return vdwRadius[formfactor.Other]
}

// SetRadius overrides the inflation radius for t, used by settings to
// apply a user-configured per-type radius table.
func SetRadius(t formfactor.Type, r float64) {
	vdwRadius[t] = r
}
