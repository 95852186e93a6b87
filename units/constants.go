package units

// Physical constants used to bridge between the HEP quantities (energy,
// momentum, mass all expressed in eV) and SI quantities (length, time,
// mass), mirroring original_source/src/Framework/Units/PhysicalConstants.h.
const (
	// SpeedOfLight is c, in m/s.
	SpeedOfLight Speed = 299792458.0

	// HBar is the reduced Planck constant, in eV*s.
	HBar HEPEnergy = 6.582119569e-16 // eV*s, abused as HEPEnergy*Time product scale

	// HBarC is hbar*c, in eV*m. Used to convert an inverse HEP-energy into a
	// length (e.g. a cross section's natural reach) and back.
	HBarC = 1.97326980e-7 // eV*m

	// AtomicMassUnit is 1u expressed in kilograms.
	AtomicMassUnit Mass = 1.66053906660e-27

	// ElectronVoltInJoules converts an eV-denominated HEPEnergy into Joules.
	ElectronVoltInJoules = 1.602176634e-19
)

// ConvertHEPEnergyToMass reinterprets an energy (eV) as a rest mass (kg) via
// E = m c^2, the HEP->SI bridge spec section 4.1 requires for turning "an
// energy inverse" into a mass/length/time.
func ConvertHEPEnergyToMass(e HEPEnergy) Mass {
	joules := float64(e) * ElectronVoltInJoules
	c := float64(SpeedOfLight)
	return Mass(joules / (c * c))
}

// ConvertHEPMomentumToSIMomentum converts an eV-denominated momentum into an
// SI momentum (kg*m/s), via p[SI] = p[eV]*eV_to_J / c.
func ConvertHEPMomentumToSIMomentum(p HEPMomentum) float64 {
	return float64(p) * ElectronVoltInJoules / float64(SpeedOfLight)
}

// ConvertHEPEnergyToInverseLength reinterprets an energy as an inverse
// length via E = hbar*c/lambda, i.e. InverseLength = E / (hbar*c).
func ConvertHEPEnergyToInverseLength(e HEPEnergy) float64 {
	return float64(e) / HBarC
}
