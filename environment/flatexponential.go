package environment

import (
	"math"

	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/units"
)

// baseExponential factors out the grammage/length conversion shared by every
// locally-flat exponential atmosphere model, matching
// original_source/src/Environment/BaseExponential.h. TDerived's own
// GetMassDensity supplies rho at any point; this struct only needs rho0,
// lambda and the reference point p0 that parametrize it.
type baseExponential struct {
	rho0      units.MassDensity
	lambda    units.Length
	invLambda float64 // 1/lambda
	p0        geometry.Point
}

func newBaseExponential(p0 geometry.Point, rho0 units.MassDensity, lambda units.Length) baseExponential {
	return baseExponential{rho0: rho0, lambda: lambda, invLambda: 1 / float64(lambda), p0: p0}
}

// integratedGrammage implements BaseExponential::IntegratedGrammage: rhoStart
// is the density at the line's own starting point (not rho0), and axis is
// the (normalized) direction the density grows along.
func (b *baseExponential) integratedGrammage(line geometry.Line, length units.Length, rhoStart units.MassDensity, axis geometry.Vector) (units.Grammage, error) {
	uDotA, err := line.NormalizedDirection().Dot(axis)
	if err != nil {
		return 0, err
	}
	L := float64(length)
	rho := float64(rhoStart)
	if uDotA == 0 {
		return units.Grammage(L * rho), nil
	}
	return units.Grammage(rho * (float64(b.lambda) / uDotA) * (math.Exp(uDotA*L*b.invLambda) - 1)), nil
}

// arclengthFromGrammage implements BaseExponential::ArclengthFromGrammage.
func (b *baseExponential) arclengthFromGrammage(line geometry.Line, grammage units.Grammage, rhoStart units.MassDensity, axis geometry.Vector) (units.Length, error) {
	uDotA, err := line.NormalizedDirection().Dot(axis)
	if err != nil {
		return 0, err
	}
	X := float64(grammage)
	rho := float64(rhoStart)
	if uDotA == 0 {
		return units.Length(X / rho), nil
	}
	logArg := X*b.invLambda*uDotA/rho + 1
	if logArg > 0 {
		return units.Length(float64(b.lambda) / uDotA * math.Log(logArg)), nil
	}
	return units.InfiniteLength, nil
}

// FlatExponentialMedium models a density that grows exponentially along a
// fixed (normalized) axis from a reference point:
// rho(r) = rho0 * exp((r-p0)·axis / lambda), matching
// original_source/src/Environment/FlatExponential.h.
type FlatExponentialMedium struct {
	base        baseExponential
	Axis        geometry.Vector
	Composition *NuclearComposition
}

// NewFlatExponentialMedium builds a FlatExponentialMedium. axis is
// normalized on construction to avoid degeneracy with lambda, per the
// original's doc comment.
func NewFlatExponentialMedium(p0 geometry.Point, axis geometry.Vector, rho0 units.MassDensity, lambda units.Length, composition *NuclearComposition) *FlatExponentialMedium {
	return &FlatExponentialMedium{
		base:        newBaseExponential(p0, rho0, lambda),
		Axis:        axis.Normalized(),
		Composition: composition,
	}
}

// MassDensity evaluates rho0*exp((p-p0)·axis/lambda).
func (m *FlatExponentialMedium) MassDensity(p geometry.Point) (units.MassDensity, error) {
	d, err := p.Sub(m.base.p0)
	if err != nil {
		return 0, err
	}
	h, err := d.Dot(m.Axis)
	if err != nil {
		return 0, err
	}
	return units.MassDensity(float64(m.base.rho0) * math.Exp(m.base.invLambda*h)), nil
}

// NuclearComposition returns the medium's fixed composition.
func (m *FlatExponentialMedium) NuclearComposition() *NuclearComposition { return m.Composition }

// IntegratedGrammage integrates the density analytically along the line.
func (m *FlatExponentialMedium) IntegratedGrammage(line geometry.Line, length units.Length) (units.Grammage, error) {
	rhoStart, err := m.MassDensity(line.R0())
	if err != nil {
		return 0, err
	}
	return m.base.integratedGrammage(line, length, rhoStart, m.Axis)
}

// ArclengthFromGrammage inverts IntegratedGrammage.
func (m *FlatExponentialMedium) ArclengthFromGrammage(line geometry.Line, grammage units.Grammage) (units.Length, error) {
	rhoStart, err := m.MassDensity(line.R0())
	if err != nil {
		return 0, err
	}
	return m.base.arclengthFromGrammage(line, grammage, rhoStart, m.Axis)
}
