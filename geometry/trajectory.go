package geometry

import (
	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/spatial/r3"
)

// Line is a straight-line trajectory: position(t) = r0 + v0*t, matching
// original_source/src/Framework/Geometry/Line.h.
type Line struct {
	r0 Point
	v0 Vector // velocity, meters/second components
}

// NewLine builds a Line anchored at r0 with velocity v0.
func NewLine(r0 Point, v0 Vector) Line { return Line{r0: r0, v0: v0} }

// R0 returns the anchor point.
func (l Line) R0() Point { return l.r0 }

// V0 returns the velocity vector.
func (l Line) V0() Vector { return l.v0 }

// Position returns the point on the line at time t after the anchor.
func (l Line) Position(t units.Time) (Point, error) {
	return l.r0.Add(l.v0.Scale(float64(t)))
}

// PositionFromArclength returns the point reached after traveling length l
// along the line's direction from the anchor.
func (l Line) PositionFromArclength(length units.Length) (Point, error) {
	dir := l.v0.Normalized()
	return l.r0.Add(dir.Scale(float64(length)))
}

// Arclength returns the distance traveled between times t1 and t2.
func (l Line) Arclength(t1, t2 units.Time) units.Length {
	return units.Length(float64(l.v0.Norm()) * float64(t2-t1))
}

// TimeFromArclength returns the time needed to travel the given length.
func (l Line) TimeFromArclength(length units.Length) units.Time {
	speed := float64(l.v0.Norm())
	if speed == 0 {
		return units.InfiniteTime
	}
	return units.Time(float64(length) / speed)
}

// NormalizedDirection returns the line's unit direction vector.
func (l Line) NormalizedDirection() Vector { return l.v0.Normalized() }

// straightLineLike is satisfied by Line and Helix — the
// minimal interface a Trajectory[T] needs to restrict to a finite duration.
type straightLineLike interface {
	Position(t units.Time) (Point, error)
	Arclength(t1, t2 units.Time) units.Length
	TimeFromArclength(length units.Length) units.Time
}

// Trajectory restricts an underlying curve T (a Line or a Helix)
// to a finite proper-time duration, matching
// original_source/src/Framework/Geometry/Trajectory.h and BaseTrajectory.h.
type Trajectory[T straightLineLike] struct {
	curve    T
	duration units.Time
}

// NewTrajectory wraps curve, restricted to the given proper-time duration.
func NewTrajectory[T straightLineLike](curve T, duration units.Time) Trajectory[T] {
	return Trajectory[T]{curve: curve, duration: duration}
}

// Curve returns the underlying unrestricted curve.
func (tr Trajectory[T]) Curve() T { return tr.curve }

// Duration returns the trajectory's finite proper-time extent.
func (tr Trajectory[T]) Duration() units.Time { return tr.duration }

// PositionAtTime returns the position at an absolute time offset t from the
// trajectory's start (0 <= t <= Duration()).
func (tr Trajectory[T]) PositionAtTime(t units.Time) (Point, error) {
	return tr.curve.Position(t)
}

// Position returns the position at normalized parameter u in [0,1], scaling
// the duration, as spec section 3 requires.
func (tr Trajectory[T]) Position(u float64) (Point, error) {
	return tr.curve.Position(units.Time(float64(tr.duration) * u))
}

// Arclength returns the distance traveled between two absolute times.
func (tr Trajectory[T]) Arclength(t1, t2 units.Time) units.Length {
	return tr.curve.Arclength(t1, t2)
}

// PositionFromArclength returns the point at a given distance from the start
// of the trajectory (only meaningful for curves exposing it, like Line).
func (tr Trajectory[T]) PositionFromArclength(length units.Length) (Point, error) {
	if line, ok := any(tr.curve).(Line); ok {
		return line.PositionFromArclength(length)
	}
	t := tr.curve.TimeFromArclength(length)
	return tr.curve.Position(t)
}

// TimeFromArclength returns the absolute time at which the given distance
// has been traveled from the trajectory's start.
func (tr Trajectory[T]) TimeFromArclength(length units.Length) units.Time {
	return tr.curve.TimeFromArclength(length)
}

// LimitEndTo shortens the trajectory's duration so it covers exactly the
// given arclength, per spec section 4.3 ("limit_end_to").
func (tr *Trajectory[T]) LimitEndTo(length units.Length) {
	tr.duration = tr.curve.TimeFromArclength(length)
}

// Helix is a circular-helical trajectory around a fixed axis, specified for
// future magnetic-field work (spec section 2 item 2, section 4.3) but not
// exercised by the straight-line tracker. It mirrors
// original_source/src/Framework/Geometry/Helix.h: a particle of charge q and
// momentum p gyrates around a uniform magnetic field B with angular
// frequency omega = q*|B|/(gamma*m).
type Helix struct {
	origin     Point
	axis       Vector // unit vector along the field direction
	radius     units.Length
	omega      units.Frequency // angular gyration frequency
	driftSpeed units.Speed     // velocity component parallel to axis
	phase0     float64
}

// NewHelix builds a Helix trajectory.
func NewHelix(origin Point, axis Vector, radius units.Length, omega units.Frequency, driftSpeed units.Speed, phase0 float64) Helix {
	return Helix{origin: origin, axis: axis.Normalized(), radius: radius, omega: omega, driftSpeed: driftSpeed, phase0: phase0}
}

// Position returns the helix position at time t.
func (h Helix) Position(t units.Time) (Point, error) {
	angle := h.phase0 + float64(h.omega)*float64(t)
	cs := h.origin.System()
	// build two vectors perpendicular to axis via an arbitrary helper vector
	helper := r3.Vec{X: 0, Y: 0, Z: 1}
	if abs(h.axis.raw.Z) > 0.9 {
		helper = r3.Vec{X: 1, Y: 0, Z: 0}
	}
	e1 := r3.Unit(r3.Cross(h.axis.raw, helper))
	e2 := r3.Cross(h.axis.raw, e1)
	radial := r3.Add(r3.Scale(float64(h.radius)*cosf(angle), e1), r3.Scale(float64(h.radius)*sinf(angle), e2))
	drift := r3.Scale(float64(h.driftSpeed)*float64(t), h.axis.raw)
	offset := Vector{system: cs, raw: r3.Add(radial, drift)}
	return h.origin.Add(offset)
}

// Arclength returns the distance traveled along the helix between t1 and t2.
func (h Helix) Arclength(t1, t2 units.Time) units.Length {
	speed := sqrtf(float64(h.radius)*float64(h.radius)*float64(h.omega)*float64(h.omega) + float64(h.driftSpeed)*float64(h.driftSpeed))
	return units.Length(speed * float64(t2-t1))
}

// TimeFromArclength returns the time needed to cover the given arclength.
func (h Helix) TimeFromArclength(length units.Length) units.Time {
	speed := sqrtf(float64(h.radius)*float64(h.radius)*float64(h.omega)*float64(h.omega) + float64(h.driftSpeed)*float64(h.driftSpeed))
	if speed == 0 {
		return units.InfiniteTime
	}
	return units.Time(float64(length) / speed)
}
