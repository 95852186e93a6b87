package geometry

import (
	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position tagged with the coordinate system it was expressed in.
// Components are stored internally in meters; Components(cs) re-expresses
// the point in a different system by walking to the least common ancestor
// (spec section 4.2).
type Point struct {
	system *CoordinateSystem
	raw    r3.Vec // meters, in system's frame
}

// NewPoint builds a Point from meter components in the given system.
func NewPoint(cs *CoordinateSystem, x, y, z units.Length) Point {
	return Point{system: cs, raw: r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}}
}

// System returns the point's home coordinate system.
func (p Point) System() *CoordinateSystem { return p.system }

// Components re-expresses p in the given coordinate system.
func (p Point) Components(cs *CoordinateSystem) (Point, error) {
	tr, err := transformBetween(p.system, cs)
	if err != nil {
		return Point{}, err
	}
	return Point{system: cs, raw: tr.applyToPoint(p.raw)}, nil
}

// XYZ returns the raw (x, y, z) meter components in the point's own system.
func (p Point) XYZ() (units.Length, units.Length, units.Length) {
	return units.Length(p.raw.X), units.Length(p.raw.Y), units.Length(p.raw.Z)
}

// Sub returns the Vector from q to p (p - q), expressed in p's system.
// Subtraction of two Points is a Vector<length> per spec section 3.
func (p Point) Sub(q Point) (Vector, error) {
	qInP, err := q.Components(p.system)
	if err != nil {
		return Vector{}, err
	}
	return Vector{system: p.system, raw: r3.Sub(p.raw, qInP.raw)}, nil
}

// Add returns the Point obtained by displacing p by v (p + v); addition of a
// Point and a Vector<length> is a Point per spec section 3.
func (p Point) Add(v Vector) (Point, error) {
	vInP, err := v.Components(p.system)
	if err != nil {
		return Point{}, err
	}
	return Point{system: p.system, raw: r3.Add(p.raw, vInP.raw)}, nil
}

// Vector is a direction/displacement quantity attached to a home coordinate
// system. Unlike Point, a Vector transforms only under rotation, never
// translation (spec section 3).
type Vector struct {
	system *CoordinateSystem
	raw    r3.Vec
}

// NewVector builds a Vector from meter components in the given system.
func NewVector(cs *CoordinateSystem, x, y, z units.Length) Vector {
	return Vector{system: cs, raw: r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}}
}

// System returns the vector's home coordinate system.
func (v Vector) System() *CoordinateSystem { return v.system }

// Components re-expresses v in the given coordinate system, applying only
// the rotational part of every transform along the way.
func (v Vector) Components(cs *CoordinateSystem) (Vector, error) {
	tr, err := transformBetween(v.system, cs)
	if err != nil {
		return Vector{}, err
	}
	return Vector{system: cs, raw: tr.applyToVector(v.raw)}, nil
}

// XYZ returns the raw (x, y, z) meter components in the vector's own system.
func (v Vector) XYZ() (units.Length, units.Length, units.Length) {
	return units.Length(v.raw.X), units.Length(v.raw.Y), units.Length(v.raw.Z)
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() units.Length { return units.Length(r3.Norm(v.raw)) }

// SquaredNorm returns the squared Euclidean length of v.
func (v Vector) SquaredNorm() float64 { return r3.Dot(v.raw, v.raw) }

// Normalized returns v scaled to unit length.
func (v Vector) Normalized() Vector { return Vector{system: v.system, raw: r3.Unit(v.raw)} }

// Scale returns v scaled by a dimensionless factor.
func (v Vector) Scale(f float64) Vector { return Vector{system: v.system, raw: r3.Scale(f, v.raw)} }

// Add returns v+w, converting w into v's system first.
func (v Vector) Add(w Vector) (Vector, error) {
	wInV, err := w.Components(v.system)
	if err != nil {
		return Vector{}, err
	}
	return Vector{system: v.system, raw: r3.Add(v.raw, wInV.raw)}, nil
}

// Dot returns the dot product of v and w (converting w into v's system).
func (v Vector) Dot(w Vector) (float64, error) {
	wInV, err := w.Components(v.system)
	if err != nil {
		return 0, err
	}
	return r3.Dot(v.raw, wInV.raw), nil
}

// Cross returns the cross product v x w, expressed in v's system.
func (v Vector) Cross(w Vector) (Vector, error) {
	wInV, err := w.Components(v.system)
	if err != nil {
		return Vector{}, err
	}
	return Vector{system: v.system, raw: r3.Cross(v.raw, wInV.raw)}, nil
}

// ParallelProjectionOnto returns (v.w_hat) w_hat, the projection of v onto w.
func (v Vector) ParallelProjectionOnto(w Vector) (Vector, error) {
	wHat := w.Normalized()
	d, err := v.Dot(wHat)
	if err != nil {
		return Vector{}, err
	}
	return wHat.Scale(d), nil
}
