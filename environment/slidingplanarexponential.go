package environment

import (
	"math"

	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/units"
)

// SlidingPlanarExponentialMedium models mass density as a function of radial
// distance from a fixed point p0: rho(r) = rho0 * exp(|p0-r|/lambda). For
// grammage/length conversion the density is approximated as locally flat at
// the trajectory's own starting point, with the axis pointing from p0
// towards that starting point -- hence "sliding": each query re-derives its
// own flat axis, matching
// original_source/src/Environment/SlidingPlanarExponential.h. This is the
// medium used to approximate a spherical atmosphere around an observer
// placed far from the coordinate origin.
type SlidingPlanarExponentialMedium struct {
	base        baseExponential
	Composition *NuclearComposition
}

// NewSlidingPlanarExponentialMedium builds a SlidingPlanarExponentialMedium
// centered on p0.
func NewSlidingPlanarExponentialMedium(p0 geometry.Point, rho0 units.MassDensity, lambda units.Length, composition *NuclearComposition) *SlidingPlanarExponentialMedium {
	return &SlidingPlanarExponentialMedium{
		base:        newBaseExponential(p0, rho0, lambda),
		Composition: composition,
	}
}

// MassDensity evaluates rho0*exp(|p0-p|/lambda).
func (m *SlidingPlanarExponentialMedium) MassDensity(p geometry.Point) (units.MassDensity, error) {
	d, err := p.Sub(m.base.p0)
	if err != nil {
		return 0, err
	}
	return units.MassDensity(float64(m.base.rho0) * math.Exp(m.base.invLambda*float64(d.Norm()))), nil
}

// NuclearComposition returns the medium's fixed composition.
func (m *SlidingPlanarExponentialMedium) NuclearComposition() *NuclearComposition {
	return m.Composition
}

// slidingAxis derives the locally-flat axis for a given line: the direction
// from p0 to the line's own starting point.
func (m *SlidingPlanarExponentialMedium) slidingAxis(line geometry.Line) (geometry.Vector, error) {
	d, err := line.R0().Sub(m.base.p0)
	if err != nil {
		return geometry.Vector{}, err
	}
	return d.Normalized(), nil
}

// IntegratedGrammage integrates the density along the line, using the
// locally-flat approximation anchored at the line's starting point.
func (m *SlidingPlanarExponentialMedium) IntegratedGrammage(line geometry.Line, length units.Length) (units.Grammage, error) {
	axis, err := m.slidingAxis(line)
	if err != nil {
		return 0, err
	}
	rhoStart, err := m.MassDensity(line.R0())
	if err != nil {
		return 0, err
	}
	return m.base.integratedGrammage(line, length, rhoStart, axis)
}

// ArclengthFromGrammage inverts IntegratedGrammage, using the same
// locally-flat approximation.
func (m *SlidingPlanarExponentialMedium) ArclengthFromGrammage(line geometry.Line, grammage units.Grammage) (units.Length, error) {
	axis, err := m.slidingAxis(line)
	if err != nil {
		return 0, err
	}
	rhoStart, err := m.MassDensity(line.R0())
	if err != nil {
		return 0, err
	}
	return m.base.arclengthFromGrammage(line, grammage, rhoStart, axis)
}
