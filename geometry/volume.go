package geometry

import (
	"math"

	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/spatial/r3"
)

// Volume answers whether a Point lies within it, matching spec section 3's
// "a volume answers contains(point) -> bool".
type Volume interface {
	Contains(p Point) (bool, error)
}

// Sphere is a volume bounded by a center and a radius. An infinite radius
// models the universe node, which must contain every point (spec section
// 3's VolumeTreeNode invariants).
type Sphere struct {
	Center Point
	Radius units.Length
}

// NewSphere builds a Sphere.
func NewSphere(center Point, radius units.Length) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Contains reports whether p lies within the sphere.
func (s Sphere) Contains(p Point) (bool, error) {
	if math.IsInf(float64(s.Radius), 1) {
		return true, nil
	}
	d, err := p.Sub(s.Center)
	if err != nil {
		return false, err
	}
	return d.Norm() <= s.Radius, nil
}

// IntersectLine computes the two times (possibly negative, possibly equal)
// at which the given line intersects the sphere's boundary, matching the
// quadratic-formula intersection CORSIKA's tracker performs against
// candidate volumes (spec section 4.8). ok is false if the line misses the
// sphere entirely.
func (s Sphere) IntersectLine(l Line) (t1, t2 units.Time, ok bool) {
	centerInLineSystem, err := s.Center.Components(l.r0.System())
	if err != nil {
		return 0, 0, false
	}
	oc, err := l.r0.Sub(centerInLineSystem)
	if err != nil {
		return 0, 0, false
	}
	v0raw := r3.Vec{X: float64(mustX(l.v0)), Y: float64(mustY(l.v0)), Z: float64(mustZ(l.v0))}
	ocRaw := r3.Vec{X: float64(mustX(oc)), Y: float64(mustY(oc)), Z: float64(mustZ(oc))}

	a := r3.Dot(v0raw, v0raw)
	b := 2 * r3.Dot(v0raw, ocRaw)
	c := r3.Dot(ocRaw, ocRaw) - float64(s.Radius)*float64(s.Radius)

	if a == 0 {
		return 0, 0, false
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return units.Time(r1), units.Time(r2), true
}

func mustX(v Vector) units.Length { x, _, _ := v.XYZ(); return x }
func mustY(v Vector) units.Length { _, y, _ := v.XYZ(); return y }
func mustZ(v Vector) units.Length { _, _, z := v.XYZ(); return z }

// Plane is a half-space boundary defined by a center point and unit normal.
type Plane struct {
	Center Point
	Normal Vector // dimensionless unit vector
}

// NewPlane builds a Plane.
func NewPlane(center Point, normal Vector) Plane {
	return Plane{Center: center, Normal: normal.Normalized()}
}

// IsAbove reports whether p is on the side of the plane the normal points
// toward, per spec section 3.
func (pl Plane) IsAbove(p Point) (bool, error) {
	d, err := p.Sub(pl.Center)
	if err != nil {
		return false, err
	}
	dot, err := pl.Normal.Dot(d)
	if err != nil {
		return false, err
	}
	return dot > 0, nil
}

// Contains always reports false for a Plane: a plane bounds nothing on its
// own, it is only ever used as an observation boundary, not a volume-tree
// node's region.
func (pl Plane) Contains(p Point) (bool, error) { return false, nil }

// DistanceTo returns the signed distance from p to the plane along the
// normal, used by ObservationPlane to report the absorbing plane's distance
// metric (spec section 6).
func (pl Plane) DistanceTo(p Point) (units.Length, error) {
	d, err := p.Sub(pl.Center)
	if err != nil {
		return 0, err
	}
	dot, err := pl.Normal.Dot(d)
	if err != nil {
		return 0, err
	}
	return units.Length(dot), nil
}

// IntersectLine returns the time at which l crosses the plane, or ok=false
// if the line is parallel to the plane.
func (pl Plane) IntersectLine(l Line) (t units.Time, ok bool) {
	nDotV, err := pl.Normal.Dot(l.v0)
	if err != nil || nDotV == 0 {
		return 0, false
	}
	toCenter, err := pl.Center.Sub(l.r0)
	if err != nil {
		return 0, false
	}
	nDotToCenter, err := pl.Normal.Dot(toCenter)
	if err != nil {
		return 0, false
	}
	return units.Time(nDotToCenter / nDotV), true
}
