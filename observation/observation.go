/*
Package observation implements the two plain-text output writers spec
section 6 commits to as the core's only user-visible persistence format:
TrackWriter records every particle's position each step; ObservationPlane
records a particle the instant it crosses a fixed plane. Both satisfy
process.ContinuousProcess so they compose into a sequence like any other
collaborator (spec section 10: these are the only non-core components built
here, since the continuous role is otherwise untestable end-to-end without
a real implementation).
*/
package observation

import (
	"fmt"
	"io"

	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/process"
	"github.com/corsika-go/gocascade/stack"
	"github.com/corsika-go/gocascade/units"
)

// pdgCode maps a species to the integer code a record line names it by.
// The particle package doesn't itself carry PDG numbering (spec section 1
// keeps physics tables out of scope), so this is a local table that starts
// empty and is filled through RegisterPDGCode; species not registered
// record 0.
var pdgCode = map[int]int{}

// RegisterPDGCode associates a species with the PDG numbering scheme used
// in record lines, so callers assembling a cascade can extend the table
// for whatever species their generators produce.
func RegisterPDGCode(code, pdg int) { pdgCode[code] = pdg }

func pdgFor(c int) int {
	if pdg, ok := pdgCode[c]; ok {
		return pdg
	}
	return 0
}

// writeRecord writes one "pdg_code energy_ev x y z [dx dy dz]" line (spec
// section 6), converting position to meters and energy to electron-volts
// (both already the storage units, so this is a pure formatting step).
func writeRecord(w io.Writer, p stack.Particle, withDirection bool) error {
	x, y, z := p.Position.XYZ()
	if !withDirection {
		_, err := fmt.Fprintf(w, "%d %.6e %.6e %.6e %.6e\n", pdgFor(int(p.Code)), float64(p.Energy), float64(x), float64(y), float64(z))
		return err
	}
	d := p.Direction()
	_, err := fmt.Fprintf(w, "%d %.6e %.6e %.6e %.6e %.6e %.6e %.6e\n",
		pdgFor(int(p.Code)), float64(p.Energy), float64(x), float64(y), float64(z), d.X, d.Y, d.Z)
	return err
}

// TrackWriter records a line for every particle on every continuous step,
// regardless of position -- a trajectory dump rather than a boundary
// detector.
type TrackWriter struct {
	W io.Writer
}

// NewTrackWriter builds a TrackWriter writing to w.
func NewTrackWriter(w io.Writer) *TrackWriter { return &TrackWriter{W: w} }

// DoContinuous writes one record per step; it never absorbs.
func (t *TrackWriter) DoContinuous(p *stack.Particle, track process.Line) (process.Status, error) {
	if err := writeRecord(t.W, *p, true); err != nil {
		return process.StatusOK, err
	}
	return process.StatusOK, nil
}

// MaxStepLength imposes no bound: a track writer observes whatever step
// another process already decided on.
func (t *TrackWriter) MaxStepLength(p stack.Particle, track process.Line) (units.Length, error) {
	return units.InfiniteLength, nil
}

// ObservationPlane records a particle the step its track crosses a fixed
// plane, and caps the step length at the plane intersection so the crossing
// is never overshot (spec section 8's "Observation plane" scenario: "the
// maximum step length to plane intersection equals 12 m").
type ObservationPlane struct {
	Plane geometry.Plane
	W     io.Writer
}

// NewObservationPlane builds an ObservationPlane bound to the given plane,
// writing crossing records to w.
func NewObservationPlane(plane geometry.Plane, w io.Writer) *ObservationPlane {
	return &ObservationPlane{Plane: plane, W: w}
}

// MaxStepLength bounds the step at the plane intersection, or infinite if
// the track's direction never meets the plane.
func (o *ObservationPlane) MaxStepLength(p stack.Particle, track process.Line) (units.Length, error) {
	line := track.Curve()
	t, ok := o.Plane.IntersectLine(line)
	if !ok || t <= 0 {
		return units.InfiniteLength, nil
	}
	return line.Arclength(0, t), nil
}

// DoContinuous records the particle once its position has reached the
// plane (within the step tracking already bounded via MaxStepLength), along
// with the plane's signed distance at that position.
func (o *ObservationPlane) DoContinuous(p *stack.Particle, track process.Line) (process.Status, error) {
	dist, err := o.Plane.DistanceTo(p.Position)
	if err != nil {
		return process.StatusOK, err
	}
	const onPlaneTolerance = 1e-6
	if dist < -onPlaneTolerance || dist > onPlaneTolerance {
		return process.StatusOK, nil
	}
	x, y, z := p.Position.XYZ()
	if _, err := fmt.Fprintf(o.W, "%d %.6e %.6e %.6e %.6e %.6e\n",
		pdgFor(int(p.Code)), float64(p.Energy), float64(x), float64(y), float64(z), float64(dist)); err != nil {
		return process.StatusOK, err
	}
	return process.StatusOK, nil
}
