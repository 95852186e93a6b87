package cascade

import (
	"context"
	"io"
	"testing"

	"github.com/corsika-go/gocascade/config"
	"github.com/corsika-go/gocascade/environment"
	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/particle"
	"github.com/corsika-go/gocascade/process"
	"github.com/corsika-go/gocascade/stack"
	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/spatial/r3"
)

// alwaysDecays is a DecayProcess with a fixed, very short lifetime that
// replaces the projectile with two photons, exercising the decay branch of
// Engine.step.
type alwaysDecays struct{}

func (alwaysDecays) Lifetime(p stack.Particle) (units.Time, error) {
	return units.Time(1e-30), nil
}

func (alwaysDecays) DoDecay(view *stack.SecondaryView) error {
	if _, err := view.AddSecondary(stack.Particle{
		Code:     particle.Photon,
		Energy:   units.HEPEnergy(5e8),
		Momentum: r3.Vec{Z: 5e8},
		Position: view.GetProjectile().Position,
	}); err != nil {
		return err
	}
	_, err := view.AddSecondary(stack.Particle{
		Code:     particle.Photon,
		Energy:   units.HEPEnergy(5e8),
		Momentum: r3.Vec{Z: -5e8},
		Position: view.GetProjectile().Position,
	})
	return err
}

func buildUniverse(root *geometry.CoordinateSystem, composition *environment.NuclearComposition) *environment.Node {
	universe := environment.NewNode("universe", geometry.NewSphere(geometry.NewPoint(root, 0, 0, 0), units.InfiniteLength))
	universe.SetModelProperties(environment.NewHomogeneousMedium(units.MassDensity(1.2), composition))
	return universe
}

func TestEngineDecaysPionIntoPhotons(t *testing.T) {
	root := geometry.NewRoot("root")
	composition, err := environment.NewNuclearComposition([]particle.Code{particle.Nitrogen14}, []float64{1.0})
	if err != nil {
		t.Fatal(err)
	}
	universe := buildUniverse(root, composition)
	// A distant bounding child gives the tracker a candidate volume to
	// aim at; the pion decays long before reaching it.
	farBoundary := environment.NewNode("farBoundary", geometry.NewSphere(geometry.NewPoint(root, 0, 0, 1e10), units.Length(1e9)))
	universe.AddChild(farBoundary)

	stk := stack.New()
	if _, err := stk.AddParticle(stack.Particle{
		Code:     particle.PiZero,
		Energy:   units.HEPEnergy(1e9),
		Momentum: r3.Vec{Z: 1e9},
		Position: geometry.NewPoint(root, 0, 0, 0),
	}); err != nil {
		t.Fatal(err)
	}

	seq := process.NewSequence(alwaysDecays{})
	cfg := config.Default()
	engine := NewEngine(universe, stk, seq, cfg, io.Discard)

	if err := engine.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// A single step: the pion decays before reaching any boundary, so one
	// call to step (rather than draining the whole stack via Run) is
	// enough to observe the decay. The resulting photons would otherwise
	// free-stream straight out of this minimal test universe.
	if err := engine.step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	if stk.Size() != 2 {
		t.Fatalf("stack.Size() after decay = %d, want 2 (both photons)", stk.Size())
	}
	for i := 0; i < stk.Size(); i++ {
		if got := stk.Get(i).Code; got != particle.Photon {
			t.Errorf("secondary %d species = %v, want Photon", i, got)
		}
	}
}

func TestEngineCrossesIntoChildNode(t *testing.T) {
	root := geometry.NewRoot("root")
	composition, err := environment.NewNuclearComposition([]particle.Code{particle.Nitrogen14}, []float64{1.0})
	if err != nil {
		t.Fatal(err)
	}
	universe := buildUniverse(root, composition)
	atmosphere := environment.NewNode("atmosphere", geometry.NewSphere(geometry.NewPoint(root, 0, 0, 1000), units.Length(100)))
	atmosphere.SetModelProperties(environment.NewHomogeneousMedium(units.MassDensity(0.001), composition))
	universe.AddChild(atmosphere)

	stk := stack.New()
	if _, err := stk.AddParticle(stack.Particle{
		Code:     particle.Photon,
		Energy:   units.HEPEnergy(1e9),
		Momentum: r3.Vec{Z: 1e9},
		Position: geometry.NewPoint(root, 0, 0, 0),
	}); err != nil {
		t.Fatal(err)
	}

	seq := process.NewSequence() // no processes: the photon just free-streams to the boundary
	cfg := config.Default()
	engine := NewEngine(universe, stk, seq, cfg, io.Discard)

	if err := engine.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Take exactly one step rather than calling Run: a photon with no
	// interaction/decay process free-streams forever, and one step is
	// enough to carry it across the boundary into "atmosphere".
	if err := engine.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if stk.IsEmpty() {
		t.Fatal("particle should remain on stack after a boundary crossing")
	}
	got := stk.Get(0).Node
	if got != atmosphere {
		t.Errorf("particle.Node after boundary crossing = %v, want atmosphere", got.Name)
	}
}

func TestEngineInitAssignsContainingNode(t *testing.T) {
	root := geometry.NewRoot("root")
	composition, err := environment.NewNuclearComposition([]particle.Code{particle.Nitrogen14}, []float64{1.0})
	if err != nil {
		t.Fatal(err)
	}
	universe := buildUniverse(root, composition)

	stk := stack.New()
	if _, err := stk.AddParticle(stack.Particle{
		Code:     particle.Proton,
		Energy:   units.HEPEnergy(1e9),
		Momentum: r3.Vec{Z: 1e9},
		Position: geometry.NewPoint(root, 0, 0, 0),
	}); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(universe, stk, process.NewSequence(), config.Default(), io.Discard)
	if err := engine.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if stk.Get(0).Node != universe {
		t.Errorf("Init did not assign the universe as the containing node")
	}
}

// cappedStep imposes a fixed, finite MaxStepLength well short of any
// geometric boundary, and counts DoSecondaries calls, to exercise the
// continuous-imposed branch of Engine.step (spec section 4.7 step 8d): the
// projectile must survive this branch, unlike the interaction/decay
// branches, which always delete it.
type cappedStep struct {
	length           units.Length
	secondariesCalls int
}

func (c *cappedStep) MaxStepLength(p stack.Particle, track process.Line) (units.Length, error) {
	return c.length, nil
}

func (c *cappedStep) DoContinuous(p *stack.Particle, track process.Line) (process.Status, error) {
	return process.StatusOK, nil
}

func (c *cappedStep) DoSecondaries(view *stack.SecondaryView) (process.Status, error) {
	c.secondariesCalls++
	return process.StatusOK, nil
}

func TestEngineSurvivesContinuousImposedStep(t *testing.T) {
	root := geometry.NewRoot("root")
	composition, err := environment.NewNuclearComposition([]particle.Code{particle.Nitrogen14}, []float64{1.0})
	if err != nil {
		t.Fatal(err)
	}
	universe := buildUniverse(root, composition)
	// a distant boundary, far beyond the capped step, so lStep is set by
	// cappedStep's MaxStepLength rather than geometry.
	farBoundary := environment.NewNode("farBoundary", geometry.NewSphere(geometry.NewPoint(root, 0, 0, 1e10), units.Length(1e9)))
	universe.AddChild(farBoundary)

	stk := stack.New()
	if _, err := stk.AddParticle(stack.Particle{
		Code:     particle.Photon,
		Energy:   units.HEPEnergy(1e9),
		Momentum: r3.Vec{Z: 1e9},
		Position: geometry.NewPoint(root, 0, 0, 0),
	}); err != nil {
		t.Fatal(err)
	}

	cap := &cappedStep{length: units.Length(10)}
	seq := process.NewSequence(cap)
	engine := NewEngine(universe, stk, seq, config.Default(), io.Discard)

	if err := engine.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := engine.step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	if stk.IsEmpty() {
		t.Fatal("a continuous-imposed step must not delete the projectile")
	}
	if cap.secondariesCalls != 1 {
		t.Errorf("DoSecondaries calls = %d, want 1 (still run on a continuous-imposed step)", cap.secondariesCalls)
	}
	_, _, z := stk.Get(0).Position.XYZ()
	if float64(z) != 10 {
		t.Errorf("particle z after capped step = %v, want 10", z)
	}
	if stk.Get(0).Node != universe {
		t.Errorf("particle.Node after a continuous-imposed step = %v, want unchanged (universe)", stk.Get(0).Node.Name)
	}
}

func TestEngineRunRejectsEmptyStackGracefully(t *testing.T) {
	root := geometry.NewRoot("root")
	composition, err := environment.NewNuclearComposition([]particle.Code{particle.Nitrogen14}, []float64{1.0})
	if err != nil {
		t.Fatal(err)
	}
	universe := buildUniverse(root, composition)
	stk := stack.New()
	engine := NewEngine(universe, stk, process.NewSequence(), config.Default(), io.Discard)
	if err := engine.Init(); err != nil {
		t.Fatalf("Init on empty stack: %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Errorf("Run on empty stack: %v, want nil", err)
	}
}
