package choicemap

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/phylogo/sdag/dag"
)

// TreeMask is the set of edge ids forming one spanning tree through the
// DAG. It wraps a roaring bitmap.
type TreeMask struct {
	rb *roaring.Bitmap
}

// NewTreeMask creates an empty mask.
func NewTreeMask() *TreeMask {
	return &TreeMask{
		rb: roaring.New(),
	}
}

// Add adds an edge id to the mask.
func (t *TreeMask) Add(id dag.EdgeID) {
	t.rb.Add(uint32(id))
}

// Contains checks if an edge id is in the mask.
func (t *TreeMask) Contains(id dag.EdgeID) bool {
	return t.rb.Contains(uint32(id))
}

// IsEmpty returns true if the mask holds no edges.
func (t *TreeMask) IsEmpty() bool {
	return t.rb.IsEmpty()
}

// Cardinality returns the number of edges in the mask.
func (t *TreeMask) Cardinality() int {
	return int(t.rb.GetCardinality())
}

// Equal reports whether two masks hold the same edges.
func (t *TreeMask) Equal(o *TreeMask) bool {
	return t.rb.Equals(o.rb)
}

// Clone returns a deep copy of the mask.
func (t *TreeMask) Clone() *TreeMask {
	return &TreeMask{
		rb: t.rb.Clone(),
	}
}

// Edges iterates the mask's edge ids in ascending order.
func (t *TreeMask) Edges() iter.Seq[dag.EdgeID] {
	return func(yield func(dag.EdgeID) bool) {
		it := t.rb.Iterator()
		for it.HasNext() {
			if !yield(dag.EdgeID(it.Next())) {
				return
			}
		}
	}
}

// String renders the mask as an ascending edge id list.
func (t *TreeMask) String() string {
	parts := make([]string, 0, t.Cardinality())
	for id := range t.Edges() {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// AdjacentNode enumerates the three node slots of an expanded mask entry.
type AdjacentNode uint8

const (
	// NodeParent is the node's parent in the spanning tree.
	NodeParent AdjacentNode = iota
	// NodeLeftChild is the node resolving the left clade.
	NodeLeftChild
	// NodeRightChild is the node resolving the right clade.
	NodeRightChild
)

func (a AdjacentNode) String() string {
	switch a {
	case NodeParent:
		return "parent"
	case NodeLeftChild:
		return "left child"
	case NodeRightChild:
		return "right child"
	default:
		return "unknown"
	}
}

// AdjacentNodes holds a node's tree neighbors, indexed by AdjacentNode.
// Unset slots hold NoNode.
type AdjacentNodes [3]dag.NodeID

func emptyAdjacentNodes() AdjacentNodes {
	return AdjacentNodes{dag.NoNode, dag.NoNode, dag.NoNode}
}

// Get returns the node in the given slot.
func (a AdjacentNodes) Get(slot AdjacentNode) dag.NodeID {
	return a[slot]
}

func nodeString(id dag.NodeID) string {
	if id == dag.NoNode {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}

func (a AdjacentNodes) String() string {
	return fmt.Sprintf("{parent:%s left:%s right:%s}",
		nodeString(a[NodeParent]), nodeString(a[NodeLeftChild]), nodeString(a[NodeRightChild]))
}

// ExpandedTreeMask maps each node spanned by a tree mask to its neighbors
// in the spanning tree.
type ExpandedTreeMask map[dag.NodeID]AdjacentNodes

// String renders the expanded mask, one node per line in ascending id order.
func (x ExpandedTreeMask) String() string {
	ids := make([]dag.NodeID, 0, len(x))
	for id := range x {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "%d: %s\n", id, x[id])
	}
	return sb.String()
}
