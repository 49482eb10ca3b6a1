// Package subsplit provides the bipartition primitives of a subsplit DAG:
// fixed-universe taxon clades and subsplits, with the total orders and the
// parent/child relation the DAG and its algorithms are built on.
package subsplit

import "fmt"

// Subsplit is an ordered pair of disjoint clades over the same taxon
// universe. The canonical form keeps the greater clade (under Clade.Compare)
// on the left, so structurally equal subsplits are representationally equal.
type Subsplit struct {
	left  Clade
	right Clade
}

// New creates a subsplit from two disjoint clades, canonicalizing their
// order. It panics if the clades overlap or belong to different universes.
func New(a, b Clade) Subsplit {
	a.checkUniverse(b)
	if a.Intersects(b) {
		panic(fmt.Sprintf("subsplit: clades overlap: %s and %s", a, b))
	}
	if a.Compare(b) < 0 {
		a, b = b, a
	}
	return Subsplit{left: a, right: b}
}

// Leaf creates the subsplit of a single taxon: ({taxon}, ∅).
func Leaf(n, taxon int) Subsplit {
	return Subsplit{
		left:  CladeOf(n, taxon),
		right: NewClade(n),
	}
}

// UniversalAncestor creates the subsplit of the DAG root node: (full, ∅).
// Every rootsplit attaches beneath it on the left side.
func UniversalAncestor(n int) Subsplit {
	return Subsplit{
		left:  FullClade(n),
		right: NewClade(n),
	}
}

// Left returns the greater clade.
func (s Subsplit) Left() Clade { return s.left }

// Right returns the lesser clade.
func (s Subsplit) Right() Clade { return s.right }

// Clade returns the clade on the given side.
func (s Subsplit) Clade(side Side) Clade {
	if side == Left {
		return s.left
	}
	return s.right
}

// Union returns the union of the two clades, i.e. the taxa below the
// subsplit.
func (s Subsplit) Union() Clade {
	return s.left.Union(s.right)
}

// Size returns the universe size.
func (s Subsplit) Size() int { return s.left.Size() }

// IsLeaf reports whether the subsplit is a single-taxon leaf subsplit.
func (s Subsplit) IsLeaf() bool {
	return s.right.IsEmpty() && s.left.Count() == 1
}

// IsUniversalAncestor reports whether the subsplit is the DAG root subsplit.
func (s Subsplit) IsUniversalAncestor() bool {
	return s.right.IsEmpty() && s.left.Count() == s.left.Size()
}

// Equal reports structural equality.
func (s Subsplit) Equal(o Subsplit) bool {
	return s.left.Equal(o.left) && s.right.Equal(o.right)
}

// Compare orders subsplits by taxon count of their union, then by union,
// then by left and right clade. The order is total over a universe.
func (s Subsplit) Compare(o Subsplit) int {
	su, ou := s.Union(), o.Union()
	if d := su.Count() - ou.Count(); d != 0 {
		return d
	}
	if d := su.Compare(ou); d != 0 {
		return d
	}
	if d := s.left.Compare(o.left); d != 0 {
		return d
	}
	return s.right.Compare(o.right)
}

// Key returns a byte-stable representation usable as a map key.
func (s Subsplit) Key() string {
	return s.left.Key() + s.right.Key()
}

// String renders the subsplit as two bitstrings separated by a bar.
func (s Subsplit) String() string {
	return s.left.String() + "|" + s.right.String()
}

// Pretty renders the subsplit with taxon names, e.g. "A,B|C,D".
func (s Subsplit) Pretty(names []string) string {
	return s.left.Pretty(names) + "|" + s.right.Pretty(names)
}

// ChildSide reports which clade of the parent the child descends through,
// i.e. which parent clade equals the child's union. The second return is
// false when child is not a child subsplit of parent.
func ChildSide(parent, child Subsplit) (Side, bool) {
	u := child.Union()
	if u.Equal(parent.left) {
		return Left, true
	}
	if u.Equal(parent.right) {
		return Right, true
	}
	return Left, false
}

// IsChildOf reports whether child's union fills one of parent's clades.
func IsChildOf(parent, child Subsplit) bool {
	_, ok := ChildSide(parent, child)
	return ok
}
