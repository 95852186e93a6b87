package observation

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/particle"
	"github.com/corsika-go/gocascade/stack"
	"github.com/corsika-go/gocascade/units"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertGolden(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	t.Errorf("output does not match golden text:\n%s", dmp.DiffPrettyText(diffs))
}

func TestTrackWriterRecordsOneLinePerStep(t *testing.T) {
	RegisterPDGCode(int(particle.Electron), 11)

	root := geometry.NewRoot("root")
	var buf bytes.Buffer
	tw := NewTrackWriter(&buf)

	p := stack.Particle{
		Code:     particle.Electron,
		Energy:   units.HEPEnergy(1e9),
		Momentum: r3.Vec{Z: 1e9},
		Position: geometry.NewPoint(root, 0, 1, 10),
	}
	line := geometry.NewLine(p.Position, geometry.NewVector(root, 0, 0, 1))
	track := geometry.NewTrajectory[geometry.Line](line, units.Time(1))

	if _, err := tw.DoContinuous(&p, track); err != nil {
		t.Fatalf("DoContinuous: %v", err)
	}

	want := fmt.Sprintf("11 %.6e %.6e %.6e %.6e %.6e %.6e %.6e\n", 1e9, 0.0, 1.0, 10.0, 0.0, 0.0, 1.0)
	assertGolden(t, buf.String(), want)
}

func TestObservationPlaneMaxStepLengthMatchesIntersection(t *testing.T) {
	root := geometry.NewRoot("root")
	normal := geometry.NewVector(root, 1, 1, 0.5).Normalized()
	plane := geometry.NewPlane(geometry.NewPoint(root, 0, 0, 0), normal)

	var buf bytes.Buffer
	op := NewObservationPlane(plane, &buf)

	p := stack.Particle{
		Code:     particle.ElectronNeutrino,
		Energy:   units.HEPEnergy(1e9),
		Momentum: r3.Vec{Y: -1, Z: -1},
		Position: geometry.NewPoint(root, 0, 1, 10),
	}
	// direction straight down: the velocity is (0,0,-1), so the particle
	// heads toward the tilted plane through the origin.
	line := geometry.NewLine(p.Position, geometry.NewVector(root, 0, 0, -1))
	track := geometry.NewTrajectory[geometry.Line](line, units.Time(1))

	maxStep, err := op.MaxStepLength(p, track)
	if err != nil {
		t.Fatalf("MaxStepLength: %v", err)
	}
	// the tilted plane's intersection along a pure -z line from (0,1,10)
	// with normal (1,1,0.5)/||.|| and center origin: t solves
	// normal.(r0+t*v0) = 0 -> (1*0+1*1+0.5*10)/0.5 = 12.
	want := units.Length(12)
	if diff := float64(maxStep) - float64(want); diff < -1e-9 || diff > 1e-9 {
		t.Errorf("MaxStepLength() = %v, want %v", maxStep, want)
	}
}

func TestObservationPlaneRecordsCrossingOnPlane(t *testing.T) {
	RegisterPDGCode(int(particle.ElectronNeutrino), 12)
	root := geometry.NewRoot("root")
	plane := geometry.NewPlane(geometry.NewPoint(root, 0, 0, 0), geometry.NewVector(root, 0, 0, 1))

	var buf bytes.Buffer
	op := NewObservationPlane(plane, &buf)

	p := stack.Particle{
		Code:     particle.ElectronNeutrino,
		Energy:   units.HEPEnergy(1e9),
		Momentum: r3.Vec{Z: -1e9},
		Position: geometry.NewPoint(root, 0, 1, 0), // sitting exactly on the plane
	}
	line := geometry.NewLine(p.Position, geometry.NewVector(root, 0, 0, -1))
	track := geometry.NewTrajectory[geometry.Line](line, units.Time(1))

	if _, err := op.DoContinuous(&p, track); err != nil {
		t.Fatalf("DoContinuous: %v", err)
	}

	want := fmt.Sprintf("12 %.6e %.6e %.6e %.6e %.6e\n", 1e9, 0.0, 1.0, 0.0, 0.0)
	assertGolden(t, buf.String(), want)
}

func TestObservationPlaneSkipsParticleNotOnPlane(t *testing.T) {
	root := geometry.NewRoot("root")
	plane := geometry.NewPlane(geometry.NewPoint(root, 0, 0, 0), geometry.NewVector(root, 0, 0, 1))
	var buf bytes.Buffer
	op := NewObservationPlane(plane, &buf)

	p := stack.Particle{
		Code:     particle.ElectronNeutrino,
		Position: geometry.NewPoint(root, 0, 1, 10),
	}
	line := geometry.NewLine(p.Position, geometry.NewVector(root, 0, 0, -1))
	track := geometry.NewTrajectory[geometry.Line](line, units.Time(1))

	if _, err := op.DoContinuous(&p, track); err != nil {
		t.Fatalf("DoContinuous: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("DoContinuous wrote a record for a particle off the plane: %q", buf.String())
	}
}

