package process

import (
	"github.com/corsika-go/gocascade/environment"
	"github.com/corsika-go/gocascade/stack"
	"github.com/corsika-go/gocascade/units"
)

// SwitchProcess is an energy-based switch between two sub-sequences,
// matching original_source/src/Processes/SwitchProcess/SwitchProcess.h: for
// particle energies strictly below Threshold, every capability call
// delegates to Low; at or above, to High. Composed into an enclosing
// Sequence, it is always treated as a single opaque leaf (spec section
// 4.6's "switch process" paragraph) -- its own totalInverseInteractionLength
// and totalInverseLifetime report the active subtree's combined total, not
// per-leaf contributions, so the parent sees one interaction/decay site.
type SwitchProcess struct {
	Threshold units.HEPEnergy
	Low, High *Sequence
}

// NewSwitchProcess builds a SwitchProcess over the given sub-sequences.
func NewSwitchProcess(threshold units.HEPEnergy, low, high *Sequence) *SwitchProcess {
	return &SwitchProcess{Threshold: threshold, Low: low, High: high}
}

func (sw *SwitchProcess) active(p stack.Particle) *Sequence {
	if p.Energy < sw.Threshold {
		return sw.Low
	}
	return sw.High
}

// totalInverseInteractionLength satisfies interactor: it is the active
// subtree's own total, so the parent sequence sums it as a single term.
func (sw *SwitchProcess) totalInverseInteractionLength(p stack.Particle) (units.InverseGrammage, error) {
	return sw.active(p).TotalInverseInteractionLength(p)
}

// selectInteraction forwards the shared sample and running accumulator into
// whichever subtree is active, rather than re-sampling -- the original's
// SwitchProcess::SelectInteraction forwards the same lambda_select and
// lambda_inv_count by reference into the active branch.
func (sw *SwitchProcess) selectInteraction(p stack.Particle, view *stack.SecondaryView, sample units.InverseGrammage, accum *units.InverseGrammage) (bool, error) {
	return sw.active(p).selectInteraction(p, view, sample, accum)
}

// totalInverseLifetime mirrors totalInverseInteractionLength for decay.
func (sw *SwitchProcess) totalInverseLifetime(p stack.Particle) (units.InverseTime, error) {
	return sw.active(p).TotalInverseLifetime(p)
}

func (sw *SwitchProcess) selectDecay(p stack.Particle, view *stack.SecondaryView, sample units.InverseTime, accum *units.InverseTime) (bool, error) {
	return sw.active(p).selectDecay(p, view, sample, accum)
}

// DoContinuous delegates to the active subtree.
func (sw *SwitchProcess) DoContinuous(p *stack.Particle, track Line) (Status, error) {
	return sw.active(*p).DoContinuous(p, track)
}

// MaxStepLength delegates to the active subtree.
func (sw *SwitchProcess) MaxStepLength(p stack.Particle, track Line) (units.Length, error) {
	return sw.active(p).MaxStepLength(p, track)
}

// DoBoundaryCrossing delegates to the active subtree.
func (sw *SwitchProcess) DoBoundaryCrossing(p *stack.Particle, from, to *environment.Node) (Status, error) {
	return sw.active(*p).DoBoundaryCrossing(p, from, to)
}

// DoSecondaries delegates to the active subtree, keyed on the projectile's
// energy (the view's index-0 particle).
func (sw *SwitchProcess) DoSecondaries(view *stack.SecondaryView) (Status, error) {
	return sw.active(view.GetProjectile()).DoSecondaries(view)
}
