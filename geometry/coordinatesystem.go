/*
Package geometry implements the coordinate-system tree and the geometric
primitives (points, vectors, lines, helices, trajectories, planes, spheres,
volumes) the cascade engine tracks particles through.

Vector arithmetic is built on gonum.org/v1/gonum/spatial/r3 rather than a
hand-rolled 3-vector type: none of the teacher repository's own packages do
3D linear algebra, so this adopts the closest single-purpose library the
wider example pack reaches for (ccnlab-lvis's sims pull in gonum and
goki/mat32 for the same purpose).
*/
package geometry

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoCommonRoot is returned by TransformTo when two coordinate systems do
// not share a common ancestor, per spec section 4.2.
var ErrNoCommonRoot = errors.New("geometry: coordinate systems share no common root")

// Transform is a rigid-body transform: a rotation followed by a translation.
type Transform struct {
	Rotation    r3.Rotation
	Translation r3.Vec
}

// Identity is the transform that changes nothing.
func Identity() Transform {
	return Transform{Rotation: r3.NewRotation(0, r3.Vec{X: 0, Y: 0, Z: 1})}
}

// applyToPoint applies the transform to a point (rotation + translation).
func (tr Transform) applyToPoint(p r3.Vec) r3.Vec {
	return r3.Add(tr.Rotation.Rotate(p), tr.Translation)
}

// applyToVector applies only the rotation (vectors don't translate).
func (tr Transform) applyToVector(v r3.Vec) r3.Vec {
	return tr.Rotation.Rotate(v)
}

// inverse returns the transform that undoes tr.
func (tr Transform) inverse() Transform {
	invRot := tr.Rotation.Inverse()
	return Transform{
		Rotation:    invRot,
		Translation: r3.Scale(-1, invRot.Rotate(tr.Translation)),
	}
}

// compose returns the transform equivalent to first applying tr, then
// applying next: compose(next, tr).
func compose(next, tr Transform) Transform {
	var rot r3.Rotation
	return Transform{
		Rotation:    rot.Mul(next.Rotation, tr.Rotation),
		Translation: r3.Add(next.applyToVector(tr.Translation), next.Translation),
	}
}

// CoordinateSystem is a node in the coordinate-system tree: either the
// unique root, or a child defined by a rigid transform relative to its
// parent. The tree is program-wide and never torn down while any Point or
// Vector referring to it is live (spec section 3), so parent is a plain
// non-owning back-reference.
type CoordinateSystem struct {
	parent    *CoordinateSystem
	toParent  Transform // transform taking a point/vector in this system into the parent system
	name      string
}

// NewRoot creates a new, unique root coordinate system.
func NewRoot(name string) *CoordinateSystem {
	return &CoordinateSystem{name: name}
}

// Translate creates a child system offset from cs by the given translation.
func (cs *CoordinateSystem) Translate(offset r3.Vec) *CoordinateSystem {
	return &CoordinateSystem{
		parent:   cs,
		toParent: Transform{Rotation: r3.NewRotation(0, r3.Vec{X: 0, Y: 0, Z: 1}), Translation: offset},
	}
}

// Rotate creates a child system rotated by angle (radians) around axis.
func (cs *CoordinateSystem) Rotate(axis r3.Vec, angle float64) *CoordinateSystem {
	return &CoordinateSystem{
		parent:   cs,
		toParent: Transform{Rotation: r3.NewRotation(angle, axis)},
	}
}

// RotateToZ creates a child system whose +Z axis points along direction.
func (cs *CoordinateSystem) RotateToZ(direction r3.Vec) *CoordinateSystem {
	z := r3.Vec{X: 0, Y: 0, Z: 1}
	dir := r3.Unit(direction)
	axis := r3.Cross(z, dir)
	cosAngle := r3.Dot(z, dir)
	if r3.Norm(axis) < 1e-12 {
		// direction is parallel (or anti-parallel) to z already
		if cosAngle > 0 {
			return cs.Translate(r3.Vec{})
		}
		return cs.Rotate(r3.Vec{X: 1, Y: 0, Z: 0}, pi)
	}
	angle := angleBetween(cosAngle)
	return cs.Rotate(axis, angle)
}

// Parent returns the (non-owning) parent system, or nil for the root.
func (cs *CoordinateSystem) Parent() *CoordinateSystem { return cs.parent }

// ancestors returns the chain [cs, cs.parent, ..., root].
func (cs *CoordinateSystem) ancestors() []*CoordinateSystem {
	chain := []*CoordinateSystem{cs}
	for n := cs.parent; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	return chain
}

// transformToAncestor composes the toParent transforms from cs up to (and
// including) ancestor, which must appear in cs.ancestors().
func transformToAncestor(cs, ancestor *CoordinateSystem) Transform {
	result := Identity()
	for n := cs; n != ancestor; n = n.parent {
		result = compose(n.toParent, result)
	}
	return result
}

// transformBetween returns the transform taking coordinates in src into
// coordinates in dst, by walking both ancestor chains to their least common
// ancestor (spec section 4.2).
func transformBetween(src, dst *CoordinateSystem) (Transform, error) {
	if src == dst {
		return Identity(), nil
	}
	dstAncestors := dst.ancestors()
	dstIndex := make(map[*CoordinateSystem]int, len(dstAncestors))
	for i, n := range dstAncestors {
		dstIndex[n] = i
	}
	var lca *CoordinateSystem
	for _, n := range src.ancestors() {
		if _, ok := dstIndex[n]; ok {
			lca = n
			break
		}
	}
	if lca == nil {
		return Transform{}, ErrNoCommonRoot
	}
	srcToLCA := transformToAncestor(src, lca)
	dstToLCA := transformToAncestor(dst, lca)
	return compose(dstToLCA.inverse(), srcToLCA), nil
}

const pi = math.Pi

func angleBetween(cosAngle float64) float64 {
	if cosAngle > 1 {
		cosAngle = 1
	}
	if cosAngle < -1 {
		cosAngle = -1
	}
	return math.Acos(cosAngle)
}
