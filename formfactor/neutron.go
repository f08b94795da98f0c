package formfactor

// NeutronLength returns the q-independent coherent neutron scattering
// length (in fm) for t, per SPEC_FULL.md §6.2's supplement of the
// original source's FormFactorTableNeutron.h. Unlike the X-ray table
// this is a constant rather than a function of q; ProductTable wraps it
// in a closure that ignores its argument so the two radiations share the
// same "q -> amplitude" shape.
func NeutronLength(t Type) float64 {
	switch t {
	case NeutralHydrogen:
		return -3.7406
	case NeutralCarbon:
		return 6.6460
	case NeutralNitrogen:
		return 9.3600
	case NeutralOxygen:
		return 5.8030
	case Other:
		// Sulfur, the most common "other" heavy atom in biomolecules.
		return 2.8470
	case Water:
		// Oxygen-dominated hydration shell, mirroring the X-ray table's
		// treatment of Water as the neutral-oxygen envelope.
		return 5.8030
	case ExcludedVolume:
		return 0
	default:
		return 0
	}
}
