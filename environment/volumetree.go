/*
Package environment implements the nested volume tree and material models
the cascade engine queries to determine "which node am I in" and "how much
grammage does this segment correspond to" (spec sections 3 and 4.4).
*/
package environment

import (
	"github.com/corsika-go/gocascade/geometry"
	"github.com/corsika-go/gocascade/units"
)

// MediumModel is the interface a node's material model implements, matching
// spec section 3's MediumModel contract.
type MediumModel interface {
	MassDensity(p geometry.Point) (units.MassDensity, error)
	NuclearComposition() *NuclearComposition
	IntegratedGrammage(line geometry.Line, length units.Length) (units.Grammage, error)
	ArclengthFromGrammage(line geometry.Line, grammage units.Grammage) (units.Length, error)
}

// Node is a node in the volume tree: it owns a Volume and optionally a
// MediumModel, owns child nodes, and holds non-owning exclusion
// back-references to sibling nodes whose interiors are carved out of this
// node's logical interior (spec section 3's VolumeTreeNode).
type Node struct {
	Name     string
	volume   geometry.Volume
	model    MediumModel
	parent   *Node
	children []*Node
	excluded []*Node
}

// NewNode creates a node owning the given volume. The model may be nil.
func NewNode(name string, volume geometry.Volume) *Node {
	return &Node{Name: name, volume: volume}
}

// Volume returns the node's owned volume.
func (n *Node) Volume() geometry.Volume { return n.volume }

// Parent returns the node's non-owning parent back-pointer, nil for the
// universe (root) node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's owned child nodes.
func (n *Node) Children() []*Node { return n.children }

// ExcludedNodes returns the node's non-owning exclusion references.
func (n *Node) ExcludedNodes() []*Node { return n.excluded }

// HasModelProperties reports whether a material model has been set.
func (n *Node) HasModelProperties() bool { return n.model != nil }

// ModelProperties returns the node's material model, or nil.
func (n *Node) ModelProperties() MediumModel { return n.model }

// SetModelProperties assigns (possibly shares) a material model.
func (n *Node) SetModelProperties(m MediumModel) { n.model = m }

// AddChild transfers ownership of child to n, setting child's parent
// back-pointer (spec section 4.4).
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// ExcludeOverlapWith records a non-owning exclusion reference to another
// node already present in the tree (spec section 4.4).
func (n *Node) ExcludeOverlapWith(excluded *Node) {
	n.excluded = append(n.excluded, excluded)
}

// Contains delegates to the owned volume.
func (n *Node) Contains(p geometry.Point) (bool, error) {
	return n.volume.Contains(p)
}

// Excludes returns the first excluded child whose volume contains p, or nil.
func (n *Node) Excludes(p geometry.Point) (*Node, error) {
	for _, ex := range n.excluded {
		ok, err := ex.Contains(p)
		if err != nil {
			return nil, err
		}
		if ok {
			return ex, nil
		}
	}
	return nil, nil
}

// ContainingNode implements the recursive lookup of spec section 3: the
// first child containing p owns the recursion; failing that, an excluded
// node containing p recurses into its own lookup; failing that, n itself is
// the answer. Returns nil if p is not contained in n at all.
func (n *Node) ContainingNode(p geometry.Point) (*Node, error) {
	ok, err := n.Contains(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	for _, child := range n.children {
		childOk, err := child.Contains(p)
		if err != nil {
			return nil, err
		}
		if childOk {
			return child.ContainingNode(p)
		}
	}
	excluded, err := n.Excludes(p)
	if err != nil {
		return nil, err
	}
	if excluded != nil {
		return excluded.ContainingNode(p)
	}
	return n, nil
}

// WalkOrder selects preorder or postorder traversal for Walk.
type WalkOrder int

const (
	Preorder WalkOrder = iota
	Postorder
)

// Walk visits every node in the subtree rooted at n, calling fn for each,
// per spec section 4.4 (used e.g. to enumerate all element species needed
// to precompute cross-section tables).
func (n *Node) Walk(order WalkOrder, fn func(*Node)) {
	if order == Preorder {
		fn(n)
	}
	for _, child := range n.children {
		child.Walk(order, fn)
	}
	if order == Postorder {
		fn(n)
	}
}
