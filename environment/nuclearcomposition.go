package environment

import (
	"fmt"
	"math/rand"

	"github.com/corsika-go/gocascade/particle"
	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/stat/distuv"
)

// fractionTolerance is the maximum deviation from 1 the number fractions of
// a NuclearComposition may sum to, per spec section 3.
const fractionTolerance = 1e-3

// NuclearComposition describes the elemental makeup of a material: an
// ordered list of species codes and a matched list of number fractions,
// summing to 1 within fractionTolerance (spec section 3).
type NuclearComposition struct {
	components      []particle.Code
	numberFractions []float64
	avgMassNumber   float64
}

// NewNuclearComposition validates and builds a NuclearComposition, caching
// the average mass number at construction as spec section 3 requires.
func NewNuclearComposition(components []particle.Code, numberFractions []float64) (*NuclearComposition, error) {
	if len(components) != len(numberFractions) {
		return nil, fmt.Errorf("environment: NuclearComposition: got %d components and %d fractions, want equal counts", len(components), len(numberFractions))
	}
	var sum float64
	for _, f := range numberFractions {
		sum += f
	}
	if sum < 1-fractionTolerance || sum > 1+fractionTolerance {
		return nil, fmt.Errorf("environment: NuclearComposition: number fractions sum to %.6f, want 1 within %.1e", sum, fractionTolerance)
	}

	var avg float64
	for i, code := range components {
		if code.IsNucleus() {
			avg += float64(code.NucleusA()) * numberFractions[i]
		} else {
			avg += code.Mass() / float64(units.AtomicMassUnit) * numberFractions[i]
		}
	}

	return &NuclearComposition{
		components:      append([]particle.Code(nil), components...),
		numberFractions: append([]float64(nil), numberFractions...),
		avgMassNumber:   avg,
	}, nil
}

// Size returns the number of elemental components.
func (nc *NuclearComposition) Size() int { return len(nc.components) }

// Components returns the ordered species codes.
func (nc *NuclearComposition) Components() []particle.Code { return nc.components }

// Fractions returns the matched number fractions.
func (nc *NuclearComposition) Fractions() []float64 { return nc.numberFractions }

// AverageMassNumber returns the fraction-weighted average mass number cached
// at construction.
func (nc *NuclearComposition) AverageMassNumber() float64 { return nc.avgMassNumber }

// WeightedSum computes sum_i func(component_i) * fraction_i, per spec
// section 3.
func (nc *NuclearComposition) WeightedSum(f func(particle.Code) float64) float64 {
	var sum float64
	for i, code := range nc.components {
		sum += f(code) * nc.numberFractions[i]
	}
	return sum
}

// SampleTarget picks one of the composition's species weighted by
// fraction*crossSection, matching NuclearComposition::SampleTarget in
// original_source/src/Environment/NuclearComposition.h. Implemented with
// gonum's stat/distuv.Categorical rather than a hand-rolled discrete
// sampler, as a real-library replacement for std::discrete_distribution.
func (nc *NuclearComposition) SampleTarget(crossSections []units.CrossSection, rng *rand.Rand) (particle.Code, error) {
	if len(crossSections) != len(nc.components) {
		return 0, fmt.Errorf("environment: SampleTarget: got %d cross sections, want %d", len(crossSections), len(nc.components))
	}
	weights := make([]float64, len(nc.components))
	for i := range nc.components {
		weights[i] = nc.numberFractions[i] * float64(crossSections[i])
	}
	dist := distuv.NewCategorical(weights, rng)
	idx := int(dist.Rand())
	return nc.components[idx], nil
}
