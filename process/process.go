/*
Package process implements the process-role interfaces and the compiled
ProcessSequence, matching spec section 4.6.

Each physics process declares which of six roles it plays by implementing
one or more small interfaces, rather than through the original's
CRTP/template-trait dispatch (`BaseProcess<TDerived>`,
`is_process_sequence_v<T>`): Go has no template metaprogramming, so
NewSequence inspects each process once at composition time with a type
assertion per role and builds a cached, straight-line dispatch table (spec
section 9, Design Notes: "six optional function pointers behind a small
dispatch table" alternative to CRTP), rather than re-type-switching on every
step.
*/
package process

import (
	"github.com/corsika-go/gocascade/environment"
	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/stack"
	"github.com/corsika-go/gocascade/units"
)

// Status is a bit-flag set accumulated across a sequence's leaves, matching
// original_source/src/Framework/ProcessSequence/ProcessReturn.h's
// EProcessReturn: every role that returns a status combines results with
// bitwise OR (spec section 4.6).
type Status uint8

const (
	StatusOK       Status = 0
	StatusAbsorbed Status = 1 << iota
)

// Absorbed reports whether the accumulated status marks the particle
// absorbed.
func (s Status) Absorbed() bool { return s&StatusAbsorbed != 0 }

// Line is shorthand for the trajectory type continuous processes operate on:
// a straight-line segment limited to the current step.
type Line = geometry.Trajectory[geometry.Line]

// ContinuousProcess applies energy loss (or other continuous effects) over
// a step, and bounds how far a step may run before its own model breaks
// down.
type ContinuousProcess interface {
	DoContinuous(p *stack.Particle, track Line) (Status, error)
	MaxStepLength(p stack.Particle, track Line) (units.Length, error)
}

// InteractionProcess competes a stochastic interaction in grammage.
// InteractionLength returns the mean free path (infinite if inapplicable to
// p, spec section 4.6's table).
type InteractionProcess interface {
	InteractionLength(p stack.Particle) (units.Grammage, error)
	DoInteraction(view *stack.SecondaryView) error
}

// DecayProcess competes a stochastic decay in lab-frame proper time.
// Lifetime returns infinite for a particle this process does not decay.
type DecayProcess interface {
	Lifetime(p stack.Particle) (units.Time, error)
	DoDecay(view *stack.SecondaryView) error
}

// BoundaryCrossingProcess runs when a particle crosses from one volume-tree
// node to another without having interacted or decayed first.
type BoundaryCrossingProcess interface {
	DoBoundaryCrossing(p *stack.Particle, from, to *environment.Node) (Status, error)
}

// StackProcess runs bulk operations over the whole stack on a scheduled
// stride of steps.
type StackProcess interface {
	Stride() int
	DoStack(s *stack.Stack) (Status, error)
}

// SecondariesProcess inspects (and may filter/cut/relabel) a freshly
// populated SecondaryView before the projectile is removed.
type SecondariesProcess interface {
	DoSecondaries(view *stack.SecondaryView) (Status, error)
}

// interactor is the internal dispatch unit interaction selection threads a
// single running inverse-grammage accumulator through: a plain leaf, a
// nested *Sequence, or a *SwitchProcess all implement it the same way, so
// SelectInteraction doesn't care how deep the tree goes.
type interactor interface {
	totalInverseInteractionLength(p stack.Particle) (units.InverseGrammage, error)
	selectInteraction(p stack.Particle, view *stack.SecondaryView, sample units.InverseGrammage, accum *units.InverseGrammage) (bool, error)
}

type interactionLeaf struct{ proc InteractionProcess }

func (l interactionLeaf) totalInverseInteractionLength(p stack.Particle) (units.InverseGrammage, error) {
	lambda, err := l.proc.InteractionLength(p)
	if err != nil {
		return 0, err
	}
	if lambda <= 0 {
		return 0, nil
	}
	return units.InverseGrammage(1 / float64(lambda)), nil
}

func (l interactionLeaf) selectInteraction(p stack.Particle, view *stack.SecondaryView, sample units.InverseGrammage, accum *units.InverseGrammage) (bool, error) {
	inv, err := l.totalInverseInteractionLength(p)
	if err != nil {
		return false, err
	}
	*accum += inv
	if sample < *accum {
		return true, l.proc.DoInteraction(view)
	}
	return false, nil
}

// decayor is interactor's decay-domain twin, accumulating inverse lifetime
// instead of inverse grammage.
type decayor interface {
	totalInverseLifetime(p stack.Particle) (units.InverseTime, error)
	selectDecay(p stack.Particle, view *stack.SecondaryView, sample units.InverseTime, accum *units.InverseTime) (bool, error)
}

type decayLeaf struct{ proc DecayProcess }

func (l decayLeaf) totalInverseLifetime(p stack.Particle) (units.InverseTime, error) {
	tau, err := l.proc.Lifetime(p)
	if err != nil {
		return 0, err
	}
	if tau <= 0 {
		return 0, nil
	}
	return units.InverseTime(1 / float64(tau)), nil
}

func (l decayLeaf) selectDecay(p stack.Particle, view *stack.SecondaryView, sample units.InverseTime, accum *units.InverseTime) (bool, error) {
	inv, err := l.totalInverseLifetime(p)
	if err != nil {
		return false, err
	}
	*accum += inv
	if sample < *accum {
		return true, l.proc.DoDecay(view)
	}
	return false, nil
}

type stackEntry struct {
	proc   StackProcess
	stride int
}

// Sequence is a compiled composition of processes: the left-to-right order
// given to NewSequence/Join is preserved in every per-role dispatch list,
// matching spec section 4.6's "Composition rules".
type Sequence struct {
	continuous  []ContinuousProcess
	interaction []interactor
	decay       []decayor
	boundary    []BoundaryCrossingProcess
	stacks      []stackEntry
	secondaries []SecondariesProcess
}

// NewSequence composes processes (which may themselves be *Sequence or
// *SwitchProcess values, nesting arbitrarily) into a single compiled
// Sequence. Each process is classified once here, per every role interface
// it satisfies (a process may play more than one role).
func NewSequence(processes ...any) *Sequence {
	s := &Sequence{}
	for _, proc := range processes {
		s.absorb(proc)
	}
	return s
}

// Join concatenates sequences left to right (spec section 4.6: "sequence =
// left | right"); the result's per-role totals are exactly the sum of the
// inputs' totals (spec section 8, property 5).
func Join(seqs ...*Sequence) *Sequence {
	s := &Sequence{}
	for _, other := range seqs {
		s.continuous = append(s.continuous, other.continuous...)
		s.interaction = append(s.interaction, other.interaction...)
		s.decay = append(s.decay, other.decay...)
		s.boundary = append(s.boundary, other.boundary...)
		s.stacks = append(s.stacks, other.stacks...)
		s.secondaries = append(s.secondaries, other.secondaries...)
	}
	return s
}

func (s *Sequence) absorb(proc any) {
	if c, ok := proc.(ContinuousProcess); ok {
		s.continuous = append(s.continuous, c)
	}
	switch v := proc.(type) {
	case interactor:
		s.interaction = append(s.interaction, v)
	case InteractionProcess:
		s.interaction = append(s.interaction, interactionLeaf{v})
	}
	switch v := proc.(type) {
	case decayor:
		s.decay = append(s.decay, v)
	case DecayProcess:
		s.decay = append(s.decay, decayLeaf{v})
	}
	if b, ok := proc.(BoundaryCrossingProcess); ok {
		s.boundary = append(s.boundary, b)
	}
	if st, ok := proc.(StackProcess); ok {
		s.stacks = append(s.stacks, stackEntry{proc: st, stride: st.Stride()})
	}
	if sec, ok := proc.(SecondariesProcess); ok {
		s.secondaries = append(s.secondaries, sec)
	}
}

// TotalInverseInteractionLength is Sum_i(lambda_i^-1(p)) over every
// interaction leaf (spec section 4.6).
func (s *Sequence) TotalInverseInteractionLength(p stack.Particle) (units.InverseGrammage, error) {
	var total units.InverseGrammage
	for _, leaf := range s.interaction {
		inv, err := leaf.totalInverseInteractionLength(p)
		if err != nil {
			return 0, err
		}
		total += inv
	}
	return total, nil
}

func (s *Sequence) totalInverseInteractionLength(p stack.Particle) (units.InverseGrammage, error) {
	return s.TotalInverseInteractionLength(p)
}

// TotalInverseLifetime is Sum_i(tau_i^-1(p)) over every decay leaf.
func (s *Sequence) TotalInverseLifetime(p stack.Particle) (units.InverseTime, error) {
	var total units.InverseTime
	for _, leaf := range s.decay {
		inv, err := leaf.totalInverseLifetime(p)
		if err != nil {
			return 0, err
		}
		total += inv
	}
	return total, nil
}

func (s *Sequence) totalInverseLifetime(p stack.Particle) (units.InverseTime, error) {
	return s.TotalInverseLifetime(p)
}

// MaxStepLength is the minimum continuous-process bound, defaulting to
// infinite when the sequence has no continuous leaves.
func (s *Sequence) MaxStepLength(p stack.Particle, track Line) (units.Length, error) {
	result := units.InfiniteLength
	for _, proc := range s.continuous {
		l, err := proc.MaxStepLength(p, track)
		if err != nil {
			return 0, err
		}
		result = units.MinLength(result, l)
	}
	return result, nil
}

// DoContinuous runs every continuous leaf in order, OR-ing their status.
func (s *Sequence) DoContinuous(p *stack.Particle, track Line) (Status, error) {
	var total Status
	for _, proc := range s.continuous {
		st, err := proc.DoContinuous(p, track)
		if err != nil {
			return total, err
		}
		total |= st
	}
	return total, nil
}

// SelectInteraction traverses interaction leaves, accumulating each leaf's
// contribution into a running total starting at 0, firing the first leaf
// whose accumulated share exceeds sample (spec section 4.7 step 8b).
func (s *Sequence) SelectInteraction(p stack.Particle, view *stack.SecondaryView, sample units.InverseGrammage) (bool, error) {
	var accum units.InverseGrammage
	return s.selectInteraction(p, view, sample, &accum)
}

func (s *Sequence) selectInteraction(p stack.Particle, view *stack.SecondaryView, sample units.InverseGrammage, accum *units.InverseGrammage) (bool, error) {
	for _, leaf := range s.interaction {
		fired, err := leaf.selectInteraction(p, view, sample, accum)
		if err != nil || fired {
			return fired, err
		}
	}
	return false, nil
}

// SelectDecay is SelectInteraction's decay-domain twin.
func (s *Sequence) SelectDecay(p stack.Particle, view *stack.SecondaryView, sample units.InverseTime) (bool, error) {
	var accum units.InverseTime
	return s.selectDecay(p, view, sample, &accum)
}

func (s *Sequence) selectDecay(p stack.Particle, view *stack.SecondaryView, sample units.InverseTime, accum *units.InverseTime) (bool, error) {
	for _, leaf := range s.decay {
		fired, err := leaf.selectDecay(p, view, sample, accum)
		if err != nil || fired {
			return fired, err
		}
	}
	return false, nil
}

// DoBoundaryCrossing runs every boundary leaf in order, OR-ing their status.
func (s *Sequence) DoBoundaryCrossing(p *stack.Particle, from, to *environment.Node) (Status, error) {
	var total Status
	for _, proc := range s.boundary {
		st, err := proc.DoBoundaryCrossing(p, from, to)
		if err != nil {
			return total, err
		}
		total |= st
	}
	return total, nil
}

// DoSecondaries runs every secondaries leaf in order, OR-ing their status.
func (s *Sequence) DoSecondaries(view *stack.SecondaryView) (Status, error) {
	var total Status
	for _, proc := range s.secondaries {
		st, err := proc.DoSecondaries(view)
		if err != nil {
			return total, err
		}
		total |= st
	}
	return total, nil
}

// DoStack runs every stack leaf whose stride divides stepCount (stride<=0
// means "every step"), OR-ing their status.
func (s *Sequence) DoStack(stk *stack.Stack, stepCount int) (Status, error) {
	var total Status
	for _, e := range s.stacks {
		if e.stride <= 0 || stepCount%e.stride == 0 {
			st, err := e.proc.DoStack(stk)
			if err != nil {
				return total, err
			}
			total |= st
		}
	}
	return total, nil
}
