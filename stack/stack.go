/*
Package stack implements the particle stack and its non-owning
SecondaryView, matching spec section 3's "Particle record"/"Stack"/
"SecondaryView" entities and spec section 4.5's operations.

Storage is a slice of Particle values (one struct per row) plus a nuclear
side-table keyed by dense stack index, rather than a slice of heap-allocated
particle pointers; the fields are not split into separate per-field
columns. It gives O(1) append and tail-swap delete without per-particle
allocation.
*/
package stack

import (
	"errors"
	"fmt"

	"github.com/corsika-go/gocascade/environment"
	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/particle"
	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrEmptyStack is returned by operations that require at least one
// particle when the stack holds none (spec section 4.9).
var ErrEmptyStack = errors.New("stack: operation on empty stack")

// NuclearData holds the mass/atomic numbers for a generic-nucleus entry,
// stored in the side-table rather than inline on every Particle so
// non-nuclei consume no nuclear storage (spec section 4.5).
type NuclearData struct {
	A, Z int
}

// Particle is one row of the stack: species code, energy, momentum vector,
// position, emission time, and the owning volume-tree leaf (spec section 3's
// "Particle record"). Momentum components are in HEP-momentum units,
// expressed in Position's coordinate system.
type Particle struct {
	Code     particle.Code
	Energy   units.HEPEnergy
	Momentum r3.Vec
	Position geometry.Point
	Time     units.Time
	Node     *environment.Node
}

// Mass returns the particle's rest mass: from the species table, or, for a
// generic nucleus, computed from its (A,Z) nuclear data.
func (p Particle) Mass(nuclear NuclearData) units.Mass {
	if p.Code == particle.CodeNucleus {
		return particle.NucleusMass(nuclear.A)
	}
	return units.Mass(p.Code.Mass())
}

// Charge returns the particle's charge number.
func (p Particle) Charge(nuclear NuclearData) int {
	if p.Code == particle.CodeNucleus {
		return nuclear.Z
	}
	return p.Code.Charge()
}

// Direction returns the normalized momentum direction, i.e. momentum/energy
// up to the magnitude (spec section 3: "direction = momentum/energy").
func (p Particle) Direction() r3.Vec {
	return r3.Unit(p.Momentum)
}

// Stack is the particle stack, a slice of Particle rows plus the nuclear
// side-table. The zero value is not usable; build one with New.
type Stack struct {
	particles []Particle
	nuclear   map[int]NuclearData
}

// New creates an empty Stack.
func New() *Stack {
	return &Stack{nuclear: make(map[int]NuclearData)}
}

// Size returns the number of live particles.
func (s *Stack) Size() int { return len(s.particles) }

// IsEmpty reports whether the stack holds no particles.
func (s *Stack) IsEmpty() bool { return len(s.particles) == 0 }

// AddParticle appends a non-nucleus particle, returning its new index.
func (s *Stack) AddParticle(p Particle) (int, error) {
	if p.Code == particle.CodeNucleus {
		return 0, fmt.Errorf("stack: AddParticle: species is CodeNucleus, use AddNucleus")
	}
	s.particles = append(s.particles, p)
	return len(s.particles) - 1, nil
}

// AddNucleus appends a generic-nucleus particle together with its (A,Z),
// returning its new index. The nuclear fields are required exactly when the
// species is CodeNucleus and forbidden otherwise (spec section 6).
func (s *Stack) AddNucleus(p Particle, a, z int) (int, error) {
	if p.Code != particle.CodeNucleus {
		return 0, fmt.Errorf("stack: AddNucleus: species %v is not CodeNucleus", p.Code)
	}
	idx := len(s.particles)
	s.particles = append(s.particles, p)
	s.nuclear[idx] = NuclearData{A: a, Z: z}
	return idx, nil
}

// Get returns the particle at index i.
func (s *Stack) Get(i int) Particle { return s.particles[i] }

// Set overwrites the particle at index i, e.g. when a boundary-crossing
// process mutates a particle in place.
func (s *Stack) Set(i int, p Particle) { s.particles[i] = p }

// NuclearDataAt returns the (A,Z) for a generic-nucleus entry at index i, if
// any.
func (s *Stack) NuclearDataAt(i int) (NuclearData, bool) {
	nd, ok := s.nuclear[i]
	return nd, ok
}

// GetNextParticle returns the index of the particle that would be drained
// next: the last entry, giving LIFO order (spec section 4.5).
func (s *Stack) GetNextParticle() (int, error) {
	if s.IsEmpty() {
		return 0, ErrEmptyStack
	}
	return len(s.particles) - 1, nil
}

// Delete removes the particle at index i by tail-swap: the last entry
// overwrites slot i (unless i is already the last), and the nuclear
// side-table is compacted and re-indexed to match (spec section 4.5).
func (s *Stack) Delete(i int) error {
	n := len(s.particles)
	if n == 0 {
		return ErrEmptyStack
	}
	if i < 0 || i >= n {
		return fmt.Errorf("stack: Delete: index %d out of range [0,%d)", i, n)
	}
	last := n - 1
	if i != last {
		s.particles[i] = s.particles[last]
		if nd, ok := s.nuclear[last]; ok {
			s.nuclear[i] = nd
			delete(s.nuclear, last)
		} else {
			delete(s.nuclear, i)
		}
	} else {
		delete(s.nuclear, i)
	}
	s.particles = s.particles[:last]
	return nil
}

// SecondaryView is a non-owning view over a parent Stack, remembering the
// projectile's index and the indices of secondaries added through this view
// (spec section 4.5's "SecondaryView"). Index 0 of the conceptual view is
// the projectile; Secondary(k) for k>=0 are the secondaries in insertion
// order, tracked separately from the projectile so Size() counts only
// secondaries.
type SecondaryView struct {
	stack            *Stack
	projectileIndex  int
	secondaryIndices []int
}

// NewSecondaryView constructs a view bound to the live particle at
// projectileIndex in s.
func NewSecondaryView(s *Stack, projectileIndex int) *SecondaryView {
	return &SecondaryView{stack: s, projectileIndex: projectileIndex}
}

// GetProjectile returns the projectile particle.
func (v *SecondaryView) GetProjectile() Particle { return v.stack.Get(v.projectileIndex) }

// ProjectileIndex returns the projectile's index in the underlying stack.
func (v *SecondaryView) ProjectileIndex() int { return v.projectileIndex }

// SetProjectile overwrites the projectile in the underlying stack, e.g. to
// replace it with a decay product in place.
func (v *SecondaryView) SetProjectile(p Particle) { v.stack.Set(v.projectileIndex, p) }

// Size returns the number of secondaries added through this view.
func (v *SecondaryView) Size() int { return len(v.secondaryIndices) }

// Secondary returns the secondary at view index k.
func (v *SecondaryView) Secondary(k int) Particle {
	return v.stack.Get(v.secondaryIndices[k])
}

// defaultSecondary fills in the projectile-inherited defaults (node, time)
// spec section 4.5 specifies a freshly-added secondary should start from,
// unless the caller has already set them.
func (v *SecondaryView) defaultSecondary(p Particle) Particle {
	projectile := v.GetProjectile()
	if p.Node == nil {
		p.Node = projectile.Node
	}
	if p.Time == 0 {
		p.Time = projectile.Time
	}
	return p
}

// AddSecondary appends a non-nucleus secondary to the underlying stack,
// inheriting the projectile's node and time by default.
func (v *SecondaryView) AddSecondary(p Particle) (int, error) {
	idx, err := v.stack.AddParticle(v.defaultSecondary(p))
	if err != nil {
		return 0, err
	}
	v.secondaryIndices = append(v.secondaryIndices, idx)
	return idx, nil
}

// AddNuclearSecondary appends a generic-nucleus secondary.
func (v *SecondaryView) AddNuclearSecondary(p Particle, a, z int) (int, error) {
	idx, err := v.stack.AddNucleus(v.defaultSecondary(p), a, z)
	if err != nil {
		return 0, err
	}
	v.secondaryIndices = append(v.secondaryIndices, idx)
	return idx, nil
}

// Delete removes the secondary at view index k (not a stack index): the
// underlying stack's tail-swap delete may move some other live particle
// into the deleted slot, so this view's own bookkeeping (and the
// projectile's tracked index) is fixed up to follow it, then the view's own
// index list shrinks by one (spec section 4.5).
func (v *SecondaryView) Delete(k int) error {
	stackIndex := v.secondaryIndices[k]
	lastStackIndex := v.stack.Size() - 1

	if err := v.stack.Delete(stackIndex); err != nil {
		return err
	}

	if stackIndex != lastStackIndex {
		if v.projectileIndex == lastStackIndex {
			v.projectileIndex = stackIndex
		}
		for i, si := range v.secondaryIndices {
			if i != k && si == lastStackIndex {
				v.secondaryIndices[i] = stackIndex
			}
		}
	}

	lastView := len(v.secondaryIndices) - 1
	v.secondaryIndices[k] = v.secondaryIndices[lastView]
	v.secondaryIndices = v.secondaryIndices[:lastView]
	return nil
}
