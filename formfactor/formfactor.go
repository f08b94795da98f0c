package formfactor

import "math"

// FormFactor is a five-Gaussian analytic approximation f(q) = Σ_k
// a_k·exp(−b_k·(q/4π)²) + c, per spec.md §4.5.
type FormFactor struct {
	a [5]float64
	b [5]float64
	c float64
}

// sToQFactor converts the Cromer-Mann tables (tabulated in terms of
// s = q/4π) into b coefficients usable directly against q, matching the
// original source's s_to_q helper.
const sToQFactor = 1.0 / (16 * math.Pi * math.Pi)

// newRaw builds an unnormalized FormFactor from literature Cromer-Mann
// coefficients (a, b in s-space, c as the constant term).
func newRaw(a, b [5]float64, c float64) FormFactor {
	var bq [5]float64
	for i := range b {
		bq[i] = b[i] * sToQFactor
	}
	return FormFactor{a: a, b: bq, c: c}
}

// Evaluate returns f(q), unnormalized.
func (f FormFactor) Evaluate(q float64) float64 {
	sum := f.c
	for k := 0; k < 5; k++ {
		sum += f.a[k] * math.Exp(-f.b[k]*q*q)
	}
	return sum
}

// Normalize returns a copy of f scaled so that Evaluate(0) == 1, per the
// normalized(type).evaluate(0) = 1 invariant of spec.md §4.5.
func (f FormFactor) Normalize() FormFactor {
	f0 := f.Evaluate(0)
	if f0 == 0 {
		return f
	}
	out := f
	out.c /= f0
	for k := range out.a {
		out.a[k] /= f0
	}
	return out
}

// rawTable holds one unnormalized FormFactor per Type, built once at
// package init from literature Cromer-Mann coefficients for the neutral
// atomic species spec.md §4.5 names, plus a generic "other" entry and an
// excluded-volume Gaussian whose b is derived from the displaced-solvent
// volume (set via SetExcludedVolumeRadius, since the volume is a
// structure-dependent quantity rather than a compile-time constant).
var rawTable = buildRawTable()

func buildRawTable() map[Type]FormFactor {
	m := make(map[Type]FormFactor, int(numTypes))
	// Cromer-Mann four-Gaussian-plus-constant coefficients (a1..a4, b1..b4, c);
	// a5/b5 unused (set to zero) since these elements are well described by
	// four Gaussians, matching standard tabulations.
	m[NeutralHydrogen] = newRaw(
		[5]float64{0.489918, 0.262003, 0.196767, 0.049879, 0},
		[5]float64{20.6593, 7.74039, 49.5519, 2.20159, 0},
		0.001305,
	)
	m[NeutralCarbon] = newRaw(
		[5]float64{2.31000, 1.02000, 1.58860, 0.865000, 0},
		[5]float64{20.8439, 10.2075, 0.568700, 51.6512, 0},
		0.215600,
	)
	m[NeutralNitrogen] = newRaw(
		[5]float64{12.2126, 3.13220, 2.01250, 1.16630, 0},
		[5]float64{0.005700, 9.89330, 28.9975, 0.582600, 0},
		-11.5290,
	)
	m[NeutralOxygen] = newRaw(
		[5]float64{3.04850, 2.28680, 1.54630, 0.867000, 0},
		[5]float64{13.2771, 5.70110, 0.323900, 32.9089, 0},
		0.250800,
	)
	// Other lumps any heavier/unlisted atomic species (S, P, metals, ...)
	// under a single sulfur-like envelope, matching the original source's
	// catch-all "OTHER" bucket.
	m[Other] = newRaw(
		[5]float64{6.90530, 5.20340, 1.43790, 1.58630, 0},
		[5]float64{1.46790, 22.2151, 0.253600, 56.1720, 0},
		0.866900,
	)
	// Water's form factor is the neutral-oxygen envelope: the hydration
	// shell is treated as oxygen-dominated scattering mass, per spec.md
	// §4.3's "hydration shell ... treated as a distinct form-factor type".
	m[Water] = m[NeutralOxygen]
	// ExcludedVolume starts as a pure-Gaussian placeholder (a single term,
	// volume-derived b per the invariant in spec.md §4.5); callers supply
	// the actual volume via SetExcludedVolumeRadius once the dummy atom
	// radius is known.
	m[ExcludedVolume] = excludedVolumeGaussian(1.0)
	return m
}

// excludedVolumeGaussian returns the single-term Gaussian form factor for
// a dummy excluded-volume sphere of the given radius (Å), f(q) =
// V·exp(-b·q²) with b = (4π/3)^(2/3)·r²/(4π) chosen so the Gaussian's
// second moment matches a sphere of that radius, and V its volume — this
// is the "Gaussian with volume-derived b" invariant of spec.md §4.5.
func excludedVolumeGaussian(radius float64) FormFactor {
	volume := 4.0 / 3.0 * math.Pi * radius * radius * radius
	b := math.Pow(volume, 2.0/3.0) / (4 * math.Pi)
	return FormFactor{a: [5]float64{volume, 0, 0, 0, 0}, b: [5]float64{b, 0, 0, 0, 0}, c: 0}
}

// SetExcludedVolumeRadius rebinds the ExcludedVolume raw form factor to a
// dummy-atom radius derived from the solvent/structure being fit. It must
// be called before any Table is constructed that needs the updated value.
func SetExcludedVolumeRadius(radius float64) {
	rawTable[ExcludedVolume] = excludedVolumeGaussian(radius)
}

// Raw returns the unnormalized form factor for t.
func Raw(t Type) FormFactor {
	return rawTable[t]
}

// Normalized returns the normalized form factor for t (Evaluate(0) == 1).
func Normalized(t Type) FormFactor {
	return rawTable[t].Normalize()
}
