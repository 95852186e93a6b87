package geometry

import (
	"math"

	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/spatial/r3"
)

// FourVector pairs a HEP energy with a momentum in the same c=1 convention
// (spec section 2's supplemented FourVector, grounded on
// original_source/src/Framework/Geometry/FourVector.h). Components are raw,
// not tied to a CoordinateSystem, since the only consumer (Boost) only ever
// needs their algebra, not their frame.
type FourVector struct {
	Energy   units.HEPEnergy
	Momentum r3.Vec
}

// NewFourVector builds a FourVector from an energy and a momentum.
func NewFourVector(energy units.HEPEnergy, momentum r3.Vec) FourVector {
	return FourVector{Energy: energy, Momentum: momentum}
}

// NormSqr is E^2 - |p|^2, the squared invariant mass up to sign.
func (f FourVector) NormSqr() float64 {
	e := float64(f.Energy)
	return e*e - r3.Dot(f.Momentum, f.Momentum)
}

// InvariantMass returns sqrt(|NormSqr|), matching the original's GetNorm
// (the struct otherwise leaves signed normSqr callers to decide timelike vs
// spacelike themselves).
func (f FourVector) InvariantMass() units.HEPEnergy {
	return units.HEPEnergy(math.Sqrt(math.Abs(f.NormSqr())))
}

// IsTimelike reports whether the four-vector's norm is positive.
func (f FourVector) IsTimelike() bool { return f.NormSqr() > 0 }

// IsSpacelike reports whether the four-vector's norm is negative.
func (f FourVector) IsSpacelike() bool { return f.NormSqr() < 0 }

// Add returns the component-wise sum of two four-vectors.
func (f FourVector) Add(o FourVector) FourVector {
	return FourVector{Energy: f.Energy + o.Energy, Momentum: r3.Add(f.Momentum, o.Momentum)}
}

// Sub returns the component-wise difference of two four-vectors.
func (f FourVector) Sub(o FourVector) FourVector {
	return FourVector{Energy: f.Energy - o.Energy, Momentum: r3.Sub(f.Momentum, o.Momentum)}
}

// Boost carries a boost velocity, computed once from a projectile
// four-vector and a target rest energy, and applies it to any four-vector
// expressed in the original (lab) frame (spec section 2's supplemented
// COM-boost helper, grounded on
// original_source/src/Framework/Utilities/COMBoost.cc). Unlike the
// original, which rotates the projectile onto the z-axis before boosting
// and rotates back afterward, Boost decomposes each vector directly into
// components parallel and perpendicular to the projectile's own momentum
// axis: algebraically the same Lorentz transformation, without needing an
// explicit rotation matrix.
type Boost struct {
	axis             r3.Vec
	coshEta, sinhEta float64
}

// NewBoost computes the boost that takes the lab frame to the rest frame of
// (projectile + a target at rest with the given rest energy), moving along
// the projectile's momentum direction.
func NewBoost(projectile FourVector, targetRestEnergy units.HEPEnergy) Boost {
	pNorm := r3.Norm(projectile.Momentum)
	axis := r3.Unit(projectile.Momentum)

	beta := pNorm / (float64(projectile.Energy) + float64(targetRestEnergy))
	coshEta := 1 / math.Sqrt((1+beta)*(1-beta))
	sinhEta := -beta * coshEta
	return Boost{axis: axis, coshEta: coshEta, sinhEta: sinhEta}
}

// Apply boosts v from the lab frame into the Boost's rest frame.
func (b Boost) Apply(v FourVector) FourVector {
	parallel := r3.Dot(v.Momentum, b.axis)
	perp := r3.Sub(v.Momentum, r3.Scale(parallel, b.axis))

	e := float64(v.Energy)
	newParallel := b.coshEta*parallel + b.sinhEta*e
	newEnergy := b.sinhEta*parallel + b.coshEta*e

	return FourVector{
		Energy:   units.HEPEnergy(newEnergy),
		Momentum: r3.Add(r3.Scale(newParallel, b.axis), perp),
	}
}

// Inverse returns the boost that undoes b, taking the rest frame back to
// the lab frame.
func (b Boost) Inverse() Boost {
	return Boost{axis: b.axis, coshEta: b.coshEta, sinhEta: -b.sinhEta}
}
