package environment

import "github.com/corsika-go/gocascade/geometry"
import "github.com/corsika-go/gocascade/units"

// DensityField is an arbitrary, differentiable mass density distribution,
// matching the TDerivableRho functor original_source's DensityFunction.h
// wraps. FirstDerivative returns the directional derivative of density
// along dir (a unit vector) at p, used by LinearApproximationIntegrator's
// Taylor-expansion grammage integral.
type DensityField interface {
	Evaluate(p geometry.Point) (units.MassDensity, error)
	FirstDerivative(p geometry.Point, dir geometry.Vector) (float64, error)
}

// LinearApproximationIntegrator approximates a trajectory's density profile
// to first order around its own starting point, giving a closed-form
// grammage integral and its inverse for any DensityField, matching
// original_source/src/Environment/LinearApproximationIntegrator.h. It trades
// accuracy over long, highly-curved density profiles for a general integrator
// that needs nothing more from its field than its value and first
// directional derivative at the start point.
type LinearApproximationIntegrator struct {
	Field DensityField
}

// NewLinearApproximationIntegrator builds an integrator over field.
func NewLinearApproximationIntegrator(field DensityField) *LinearApproximationIntegrator {
	return &LinearApproximationIntegrator{Field: field}
}

// IntegrateGrammage approximates the grammage along line for the given
// length as (c0 + c1*length/2)*length, where c0 is the density at the
// line's start and c1 its first derivative along the line's direction.
func (lai *LinearApproximationIntegrator) IntegrateGrammage(line geometry.Line, length units.Length) (units.Grammage, error) {
	p0 := line.R0()
	dir := line.NormalizedDirection()
	c0, err := lai.Field.Evaluate(p0)
	if err != nil {
		return 0, err
	}
	c1, err := lai.Field.FirstDerivative(p0, dir)
	if err != nil {
		return 0, err
	}
	L := float64(length)
	return units.Grammage((float64(c0) + 0.5*c1*L) * L), nil
}

// ArclengthFromGrammage inverts IntegrateGrammage's linear approximation.
func (lai *LinearApproximationIntegrator) ArclengthFromGrammage(line geometry.Line, grammage units.Grammage) (units.Length, error) {
	p0 := line.R0()
	dir := line.NormalizedDirection()
	c0, err := lai.Field.Evaluate(p0)
	if err != nil {
		return 0, err
	}
	c1, err := lai.Field.FirstDerivative(p0, dir)
	if err != nil {
		return 0, err
	}
	X := float64(grammage)
	rho0 := float64(c0)
	return units.Length((1 - 0.5*X*c1/(rho0*rho0)) * X / rho0), nil
}
