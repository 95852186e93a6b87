package environment

import (
	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/units"
)

// InhomogeneousMedium is a MediumModel over an arbitrary DensityField,
// delegating grammage conversion to a LinearApproximationIntegrator, for
// density profiles with no closed-form line integral (matching
// original_source/src/Environment/InhomogeneousMedium.h).
type InhomogeneousMedium struct {
	Composition *NuclearComposition
	integrator  *LinearApproximationIntegrator
}

// NewInhomogeneousMedium builds an InhomogeneousMedium over field.
func NewInhomogeneousMedium(composition *NuclearComposition, field DensityField) *InhomogeneousMedium {
	return &InhomogeneousMedium{
		Composition: composition,
		integrator:  NewLinearApproximationIntegrator(field),
	}
}

// MassDensity delegates to the underlying field.
func (m *InhomogeneousMedium) MassDensity(p geometry.Point) (units.MassDensity, error) {
	return m.integrator.Field.Evaluate(p)
}

// NuclearComposition returns the medium's fixed composition.
func (m *InhomogeneousMedium) NuclearComposition() *NuclearComposition { return m.Composition }

// IntegratedGrammage delegates to the linear-approximation integrator.
func (m *InhomogeneousMedium) IntegratedGrammage(line geometry.Line, length units.Length) (units.Grammage, error) {
	return m.integrator.IntegrateGrammage(line, length)
}

// ArclengthFromGrammage delegates to the linear-approximation integrator.
func (m *InhomogeneousMedium) ArclengthFromGrammage(line geometry.Line, grammage units.Grammage) (units.Length, error) {
	return m.integrator.ArclengthFromGrammage(line, grammage)
}
