/*
Package tracking implements the straight-line tracker: given a particle in a
volume-tree node, it builds the line trajectory to the nearest candidate
boundary crossing, matching spec section 4.8.
*/
package tracking

import (
	"errors"

	"github.com/corsika-go/gocascade/environment"
	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoIntersection is returned when no candidate volume intersects the
// line -- a modeling bug, since the universe is infinite (spec section
// 4.8).
var ErrNoIntersection = errors.New("tracking: no intersection with any candidate volume; the universe should always bound the line")

// sphereVolume is satisfied by geometry.Sphere; candidates are enumerated as
// (node, sphere) pairs since only spheres are intersected analytically here.
type sphereVolume interface {
	IntersectLine(l geometry.Line) (t1, t2 units.Time, ok bool)
}

// Result is the outcome of Track: a trajectory limited to the step, its
// arclength, and the node the particle will enter if it reaches the end of
// the trajectory unobstructed by an earlier physics process.
type Result struct {
	Trajectory geometry.Trajectory[geometry.Line]
	Arclength  units.Length
	NextNode   *environment.Node
}

// Track builds the straight-line trajectory from a particle's position and
// velocity within its owning node N, enumerating N's children, N's
// exclusion list, and N's own bounding volume (as an exit candidate toward
// the parent), and returns the candidate with the smallest positive
// intersection time (spec section 4.8). epsilon is the minimum positive
// intersection time treated as real, guarding against re-triggering the
// boundary a step just crossed due to floating-point residue.
func Track(node *environment.Node, position geometry.Point, velocity geometry.Vector, epsilon units.Time) (Result, error) {
	line := geometry.NewLine(position, velocity)

	type candidate struct {
		node *environment.Node
		t    units.Time
	}
	var best *candidate

	consider := func(n *environment.Node, t units.Time) {
		if t <= epsilon {
			return
		}
		if best == nil || t < best.t {
			best = &candidate{node: n, t: t}
		}
	}

	for _, child := range node.Children() {
		if sv, ok := child.Volume().(sphereVolume); ok {
			t1, t2, ok := sv.IntersectLine(line)
			if !ok {
				continue
			}
			// entering a child: the smaller positive root is the entry time.
			if t1 > 0 {
				consider(child, t1)
			} else if t2 > 0 {
				consider(child, t2)
			}
		}
	}

	for _, excluded := range node.ExcludedNodes() {
		if sv, ok := excluded.Volume().(sphereVolume); ok {
			t1, t2, ok := sv.IntersectLine(line)
			if !ok {
				continue
			}
			if t1 > 0 {
				consider(excluded, t1)
			} else if t2 > 0 {
				consider(excluded, t2)
			}
		}
	}

	// n's own bounding volume: only the exit event matters here, yielding
	// the parent as the successor (spec section 4.8). The universe node has
	// no parent and an infinite radius, so it never offers an exit.
	if node.Parent() != nil {
		if sv, ok := node.Volume().(sphereVolume); ok {
			_, t2, ok := sv.IntersectLine(line)
			if ok {
				consider(node.Parent(), t2)
			}
		}
	}

	if best == nil {
		return Result{}, ErrNoIntersection
	}

	arclength := line.Arclength(0, best.t)
	duration := best.t
	traj := geometry.NewTrajectory[geometry.Line](line, duration)

	return Result{
		Trajectory: traj,
		Arclength:  arclength,
		NextNode:   best.node,
	}, nil
}

// Velocity computes the velocity vector (momentum/energy)*c used to seed
// Track, in the given momentum's home coordinate system.
func Velocity(cs *geometry.CoordinateSystem, momentum r3.Vec, energy units.HEPEnergy) geometry.Vector {
	if energy == 0 {
		return geometry.NewVector(cs, 0, 0, 0)
	}
	c := float64(units.SpeedOfLight)
	scale := c / float64(energy)
	v := r3.Scale(scale, momentum)
	return geometry.NewVector(cs, units.Length(v.X), units.Length(v.Y), units.Length(v.Z))
}
