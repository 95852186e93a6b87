/*
Package cascade implements the single-threaded stepping engine described in
spec section 4.7: pop the next particle LIFO, track it to its next
geometric boundary, compete an interaction-grammage sample, a decay-time
sample, and the continuous-process bound against that boundary, apply
whichever wins, and repeat until the stack is empty.
*/
package cascade

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/corsika-go/gocascade/config"
	"github.com/corsika-go/gocascade/environment"
	"github.com/corsika-go/gocascade/logging"
	"github.com/corsika-go/gocascade/process"
	"github.com/corsika-go/gocascade/random"
	"github.com/corsika-go/gocascade/stack"
	"github.com/corsika-go/gocascade/tracking"
	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/spatial/r3"
)

// InvariantError reports a runtime invariant failure the engine itself
// detects (spec section 4.9): missing material, a particle outside the
// universe or without an owning node, an interaction or decay step in which
// no leaf fired, or a decay that produced only the projectile. Empty-stack
// deletion and a tracker with no candidate volume are returned as the
// stack.ErrEmptyStack and tracking.ErrNoIntersection errors instead.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string { return "cascade: invariant failure: " + e.Reason }

func invariantf(format string, args ...any) error {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}

// Engine owns the stack, the volume tree, the compiled process sequence,
// and the named random streams for one cascade run -- the single owner
// spec section 5 describes ("a single cascade engine owns the stack, the
// environment tree, the tracker, the sequence, and the random streams").
type Engine struct {
	Universe *environment.Node
	Stack    *stack.Stack
	Sequence *process.Sequence
	Random   *random.Registry
	Config   config.Engine
	Log      *slog.Logger

	stepCount int
}

// NewEngine wires together a volume tree, a stack, a compiled process
// sequence, and a configuration into a ready-to-run Engine. If cfg.LogLevel
// is empty, logging.New defaults it to info.
func NewEngine(universe *environment.Node, stk *stack.Stack, seq *process.Sequence, cfg config.Engine, logWriter io.Writer) *Engine {
	reg := random.NewRegistry(cfg.MasterSeed)
	return &Engine{
		Universe: universe,
		Stack:    stk,
		Sequence: seq,
		Random:   reg,
		Config:   cfg,
		Log:      logging.New(cfg.LogLevel, logWriter),
	}
}

// Init assigns containing_node to every particle already on the stack, per
// spec section 4.7's initialization step.
func (e *Engine) Init() error {
	for i := 0; i < e.Stack.Size(); i++ {
		p := e.Stack.Get(i)
		node, err := e.Universe.ContainingNode(p.Position)
		if err != nil {
			return err
		}
		if node == nil {
			return invariantf("particle at index %d is not contained in the universe", i)
		}
		p.Node = node
		e.Stack.Set(i, p)
	}
	return nil
}

// Run drains the stack, stepping one particle at a time until it is empty
// or ctx is cancelled. Cancellation is only observed once per outer-stack
// iteration (spec section 5: "no suspension points inside the step").
func (e *Engine) Run(ctx context.Context) error {
	for !e.Stack.IsEmpty() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.step(); err != nil {
			return err
		}
		e.stepCount++
		if _, err := e.Sequence.DoStack(e.Stack, e.stepCount); err != nil {
			return err
		}
	}
	return nil
}

// step implements one iteration of the main loop in spec section 4.7,
// steps 1-9.
func (e *Engine) step() error {
	idx, err := e.Stack.GetNextParticle()
	if err != nil {
		return err
	}
	p := e.Stack.Get(idx)
	oldNode := p.Node
	if oldNode == nil {
		return invariantf("particle at index %d has no owning node", idx)
	}

	velocity := tracking.Velocity(p.Position.System(), p.Momentum, p.Energy)
	trackResult, err := tracking.Track(oldNode, p.Position, velocity, e.Config.TrackingEpsilon)
	if err != nil {
		return err
	}

	geometricMax := trackResult.Arclength

	invInteraction, err := e.Sequence.TotalInverseInteractionLength(p)
	if err != nil {
		return err
	}
	material := oldNode.ModelProperties()
	if material == nil {
		if oldNode != e.Universe {
			return invariantf("node %q has no material", oldNode.Name)
		}
		if invInteraction > 0 {
			return invariantf("universe node has no material but a finite interaction length was sampled")
		}
	}
	interactionStream := e.Random.Stream("interaction")
	xInteraction := random.ExponentialSample(interactionStream, invInteraction)
	var lInteraction units.Length
	if random.IsInfinite(float64(xInteraction)) || material == nil {
		lInteraction = units.InfiniteLength
	} else {
		lInteraction, err = material.ArclengthFromGrammage(trackResult.Trajectory.Curve(), xInteraction)
		if err != nil {
			return err
		}
	}

	invLifetime, err := e.Sequence.TotalInverseLifetime(p)
	if err != nil {
		return err
	}
	decayStream := e.Random.Stream("decay")
	deltaT := random.ExponentialSampleTime(decayStream, invLifetime)
	var lDecay units.Length
	if random.IsInfinite(float64(deltaT)) {
		lDecay = units.InfiniteLength
	} else {
		momentumNorm := r3.Norm(p.Momentum)
		lDecay = units.Length(float64(deltaT) * momentumNorm * float64(units.SpeedOfLight) / float64(p.Energy))
	}

	lCont, err := e.Sequence.MaxStepLength(p, trackResult.Trajectory)
	if err != nil {
		return err
	}
	lCont = units.Length(float64(lCont) * e.Config.StepSafetyFactor)

	lStep := units.MinLengths(lInteraction, lDecay, lCont, geometricMax)

	newPosition, err := trackResult.Trajectory.PositionFromArclength(lStep)
	if err != nil {
		return err
	}
	p.Position = newPosition
	p.Time += units.Time(float64(lStep) / float64(units.SpeedOfLight))
	trackResult.Trajectory.LimitEndTo(lStep)
	e.Stack.Set(idx, p)

	status, err := e.Sequence.DoContinuous(&p, trackResult.Trajectory)
	if err != nil {
		return err
	}
	e.Stack.Set(idx, p)
	if status.Absorbed() {
		e.Log.Debug("particle absorbed", "species", p.Code.Name(), "node", oldNode.Name)
		return e.Stack.Delete(idx)
	}

	if lStep < geometricMax {
		view := stack.NewSecondaryView(e.Stack, idx)
		selectionStream := e.Random.Stream("selection")

		switch {
		case lStep == lInteraction:
			sample := units.InverseGrammage(random.UniformSample(selectionStream, float64(invInteraction)))
			fired, err := e.Sequence.SelectInteraction(p, view, sample)
			if err != nil {
				return err
			}
			if !fired {
				return invariantf("interaction step won arbitration but no leaf fired")
			}
			if _, err := e.Sequence.DoSecondaries(view); err != nil {
				return err
			}
			return e.Stack.Delete(view.ProjectileIndex())
		case lStep == lDecay:
			sample := units.InverseTime(random.UniformSample(selectionStream, float64(invLifetime)))
			fired, err := e.Sequence.SelectDecay(p, view, sample)
			if err != nil {
				return err
			}
			if !fired {
				return invariantf("decay step won arbitration but no leaf fired")
			}
			if view.Size() == 1 && view.Secondary(0).Code == p.Code {
				return invariantf("particle decayed into itself: species %v produced a single identical secondary", p.Code.Name())
			}
			if _, err := e.Sequence.DoSecondaries(view); err != nil {
				return err
			}
			return e.Stack.Delete(view.ProjectileIndex())
		default:
			// continuous-imposed step (spec section 4.7 step 8d): secondaries
			// still run (a process may want to react to the step), but the
			// projectile is not removed -- only a successful interaction or
			// decay deletes it (step 8f's own parenthetical). The particle
			// stays in its current node and continues stepping next iteration.
			if _, err := e.Sequence.DoSecondaries(view); err != nil {
				return err
			}
			return nil
		}
	}

	// the geometric boundary was the limit: cross into the next node.
	p.Node = trackResult.NextNode
	e.Stack.Set(idx, p)
	if _, err := e.Sequence.DoBoundaryCrossing(&p, oldNode, trackResult.NextNode); err != nil {
		return err
	}
	e.Stack.Set(idx, p)
	return nil
}
