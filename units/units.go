/*
Package units provides compile-time dimensional safety for the physical
quantities used throughout the cascade engine.

Go has no template metaprogramming, so each physical dimension is given its
own named float64 type instead of a single generic Quantity[Dim] type. Adding
two quantities of different dimension is a compile error because the
operand types differ; there is no implicit conversion between dimensions.
Internally every quantity is stored in SI base units (meters, kilograms,
seconds, ...) except HEPEnergy/HEPMomentum, which are stored in
electron-volts, matching the "natural units" convention of the physics this
engine simulates.
*/
package units

import "math"

// Length is a distance, stored in meters.
type Length float64

// Time is a duration, stored in seconds.
type Time float64

// Mass is stored in kilograms.
type Mass float64

// HEPEnergy is a particle energy, stored in electron-volts.
type HEPEnergy float64

// HEPMomentum is a particle momentum magnitude, stored in eV (c = 1 convention
// broken only at the SI/HEP boundary functions below).
type HEPMomentum float64

// Grammage is column mass density (mass per area), stored in kg/m^2.
type Grammage float64

// CrossSection is an area, stored in m^2.
type CrossSection float64

// InverseGrammage is stored in m^2/kg.
type InverseGrammage float64

// InverseTime is a rate, stored in 1/s.
type InverseTime float64

// MassDensity is stored in kg/m^3.
type MassDensity float64

// Frequency is stored in Hz (1/s), kept distinct from InverseTime so that a
// decay rate and an oscillation frequency are not accidentally interchanged.
type Frequency float64

// ElectricCharge is stored in Coulombs.
type ElectricCharge float64

// Speed is stored in m/s.
type Speed float64

// Dimensionless wraps a bare scalar so that functions which genuinely take no
// dimension (ratios, fractions) don't take a naked float64.
type Dimensionless float64

// Infinite lengths/times/grammages/lifetimes represent "this process does not
// apply" per spec section 4.9: a physics-range guard reports "out of range"
// by returning an effectively infinite length/lifetime, which always loses
// step-length arbitration against any finite competitor.
var (
	InfiniteLength          = Length(math.Inf(1))
	InfiniteTime            = Time(math.Inf(1))
	InfiniteGrammage        = Grammage(math.Inf(1))
	InfiniteInverseGrammage = InverseGrammage(0)
	InfiniteInverseTime     = InverseTime(0)
)

// Value unwraps a quantity to its raw SI-base-unit float64. Transcendental
// math (exp, sqrt, ...) is always applied on the bare float64 via Value, not
// inside the dimensional type, keeping the dimensional boundary at the API
// surface.
func (l Length) Value() float64    { return float64(l) }
func (t Time) Value() float64      { return float64(t) }
func (g Grammage) Value() float64  { return float64(g) }
func (e HEPEnergy) Value() float64 { return float64(e) }

// MinLength returns the smaller of two Lengths. Used by the cascade's per-step
// arbitration between geometric, interaction, decay, and continuous-process
// step bounds (spec section 4.7, step 6).
func MinLength(a, b Length) Length {
	if a < b {
		return a
	}
	return b
}

// MinLengths returns the smallest of the given Lengths; used when
// arbitrating over exactly the four competing step bounds.
func MinLengths(lengths ...Length) Length {
	m := InfiniteLength
	for _, l := range lengths {
		if l < m {
			m = l
		}
	}
	return m
}
