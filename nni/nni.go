// Package nni implements nearest-neighbor interchange operations on
// parent-child subsplit pairs. An NNI swaps the sister clade of the parent
// with one of the child's clades, producing the neighboring pair that a
// topology rearrangement would create.
package nni

import (
	"fmt"
	"slices"

	"github.com/phylogo/sdag/subsplit"
)

// Operation is a parent-child subsplit pair, the unit an NNI acts on. The
// zero value is not meaningful; build operations from literal subsplits or
// with FromSubsplits.
type Operation struct {
	Parent subsplit.Subsplit
	Child  subsplit.Subsplit
}

// FromSubsplits builds the neighboring operation obtained by swapping the
// parent's sister clade with one of the child's clades: the right clade when
// swapWithRight is true, the left clade otherwise. It panics if child is not
// a child subsplit of parent.
func FromSubsplits(parent, child subsplit.Subsplit, swapWithRight bool) Operation {
	side, ok := subsplit.ChildSide(parent, child)
	if !ok {
		panic(fmt.Sprintf("nni: %s is not a child subsplit of %s", child, parent))
	}
	sister := parent.Clade(side.Opposite())
	swapSide := subsplit.Left
	if swapWithRight {
		swapSide = subsplit.Right
	}
	swapped := child.Clade(swapSide)
	kept := child.Clade(swapSide.Opposite())
	return Operation{
		Parent: subsplit.New(swapped, sister.Union(kept)),
		Child:  subsplit.New(sister, kept),
	}
}

// Neighbor returns the operation obtained by swapping o's sister clade with
// o's right child clade (true) or left child clade (false).
func (o Operation) Neighbor(swapWithRight bool) Operation {
	return FromSubsplits(o.Parent, o.Child, swapWithRight)
}

// IsValid reports whether parent and child form a parent-child subsplit
// pair, i.e. whether the child's union fills one of the parent's clades.
func (o Operation) IsValid() bool {
	return subsplit.IsChildOf(o.Parent, o.Child)
}

// FocalSide returns the side of the parent clade the child attaches to. It
// panics if the operation is not valid.
func (o Operation) FocalSide() subsplit.Side {
	side, ok := subsplit.ChildSide(o.Parent, o.Child)
	if !ok {
		panic(fmt.Sprintf("nni: %s is not a child subsplit of %s", o.Child, o.Parent))
	}
	return side
}

// SisterClade returns the parent clade the child does not attach to.
func (o Operation) SisterClade() subsplit.Clade {
	return o.Parent.Clade(o.FocalSide().Opposite())
}

// Clade returns the clade holding the given role in the operation.
func (o Operation) Clade(role Role) subsplit.Clade {
	switch role {
	case ParentFocal:
		return o.Parent.Clade(o.FocalSide())
	case ParentSister:
		return o.SisterClade()
	case ChildLeft:
		return o.Child.Left()
	case ChildRight:
		return o.Child.Right()
	default:
		panic(fmt.Sprintf("nni: unknown clade role %d", role))
	}
}

// Compare orders operations by parent subsplit, then by child subsplit,
// under subsplit.Compare. The order is total over a universe.
func (o Operation) Compare(other Operation) int {
	if d := o.Parent.Compare(other.Parent); d != 0 {
		return d
	}
	return o.Child.Compare(other.Child)
}

// Equal reports structural equality of the two subsplit pairs.
func (o Operation) Equal(other Operation) bool {
	return o.Parent.Equal(other.Parent) && o.Child.Equal(other.Child)
}

func (o Operation) String() string {
	return fmt.Sprintf("{parent:%s child:%s}", o.Parent, o.Child)
}

// Pretty renders the operation with taxon names.
func (o Operation) Pretty(names []string) string {
	return fmt.Sprintf("{parent:%s child:%s}", o.Parent.Pretty(names), o.Child.Pretty(names))
}

// AreNeighbors reports whether one operation can be produced from the other
// by a single sister-child swap. That holds exactly when both split the same
// three clades across sister, left child and right child, but with different
// sister clades. An operation is never a neighbor of itself.
func AreNeighbors(a, b Operation) bool {
	if a.SisterClade().Equal(b.SisterClade()) {
		return false
	}
	ta := []subsplit.Clade{a.SisterClade(), a.Child.Left(), a.Child.Right()}
	tb := []subsplit.Clade{b.SisterClade(), b.Child.Left(), b.Child.Right()}
	slices.SortFunc(ta, subsplit.Clade.Compare)
	slices.SortFunc(tb, subsplit.Clade.Compare)
	for i := range ta {
		if !ta[i].Equal(tb[i]) {
			return false
		}
	}
	return true
}

// SwapDirection reports which of pre's child clades was swapped with pre's
// sister clade to produce post: true for the right child clade, false for
// the left. The swapped clade is exactly the one serving as post's sister.
// Feeding the result back into pre.Neighbor reproduces post. It panics if
// the operations are not neighbors.
func SwapDirection(pre, post Operation) bool {
	if !AreNeighbors(pre, post) {
		panic(fmt.Sprintf("nni: %s and %s are not neighbors", pre, post))
	}
	return post.SisterClade().Equal(pre.Child.Right())
}

// BuildCladeMap maps each clade role of pre to the role the same clade
// occupies in the neighboring operation post. The two focal clades differ in
// content but correspond by position, so ParentFocal always maps to
// ParentFocal; the three remaining clades are matched by equality, each post
// role consumed at most once. It panics if the operations are not neighbors.
func BuildCladeMap(pre, post Operation) CladeMap {
	if !AreNeighbors(pre, post) {
		panic(fmt.Sprintf("nni: %s and %s are not neighbors", pre, post))
	}
	var m CladeMap
	var used [4]bool
	m[ParentFocal] = ParentFocal
	used[ParentFocal] = true
	movable := [3]Role{ParentSister, ChildLeft, ChildRight}
	for _, from := range movable {
		found := false
		for _, to := range movable {
			if used[to] || !pre.Clade(from).Equal(post.Clade(to)) {
				continue
			}
			m[from] = to
			used[to] = true
			found = true
			break
		}
		if !found {
			panic(fmt.Sprintf("nni: %s clade of %s has no counterpart in %s", from, pre, post))
		}
	}
	return m
}
