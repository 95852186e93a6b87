package environment

import (
	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/units"
)

// HomogeneousMedium is a MediumModel with a constant mass density
// everywhere, matching original_source/src/Environment/HomogeneousMedium.h.
// Its grammage conversions are trivial (grammage = density * length).
type HomogeneousMedium struct {
	Density     units.MassDensity
	Composition *NuclearComposition
}

// NewHomogeneousMedium builds a HomogeneousMedium.
func NewHomogeneousMedium(density units.MassDensity, composition *NuclearComposition) *HomogeneousMedium {
	return &HomogeneousMedium{Density: density, Composition: composition}
}

// MassDensity is constant, independent of p.
func (m *HomogeneousMedium) MassDensity(p geometry.Point) (units.MassDensity, error) {
	return m.Density, nil
}

// NuclearComposition returns the medium's fixed composition.
func (m *HomogeneousMedium) NuclearComposition() *NuclearComposition { return m.Composition }

// IntegratedGrammage is density*length for a homogeneous medium.
func (m *HomogeneousMedium) IntegratedGrammage(line geometry.Line, length units.Length) (units.Grammage, error) {
	return units.Grammage(float64(m.Density) * float64(length)), nil
}

// ArclengthFromGrammage is the inverse of IntegratedGrammage.
func (m *HomogeneousMedium) ArclengthFromGrammage(line geometry.Line, grammage units.Grammage) (units.Length, error) {
	if m.Density == 0 {
		return units.InfiniteLength, nil
	}
	return units.Length(float64(grammage) / float64(m.Density)), nil
}
