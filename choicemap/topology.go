package choicemap

import (
	"fmt"

	"github.com/phylogo/sdag/dag"
	"github.com/phylogo/sdag/tree"
)

const (
	unvisited = iota
	leftVisited
	rightVisited
)

// TopologyFromMask builds the rooted binary topology spanned by a tree
// mask. The returned tree is rooted at the rootsplit below the
// universal ancestor. Leaf ids are taxon ids and internal ids are
// assigned in postorder starting at the taxon count, so two masks over
// the same taxa yield comparable trees.
func (m *Map) TopologyFromMask(mask *TreeMask) *tree.Node {
	return m.TopologyFromExpanded(m.ExtractExpandedTreeMask(mask))
}

// TopologyFromExpanded builds the topology directly from per-node tree
// neighbors, walking an explicit cursor instead of recursing so the
// depth of the tree never threatens the stack.
func (m *Map) TopologyFromExpanded(expanded ExpandedTreeMask) *tree.Node {
	adjacent := func(id dag.NodeID) AdjacentNodes {
		a, ok := expanded[id]
		if !ok {
			panic(fmt.Sprintf("choicemap: expanded mask is missing node %d", id))
		}
		return a
	}

	ua, ok := expanded[m.d.RootNodeID()]
	if !ok {
		panic("choicemap: expanded mask does not reach the universal ancestor")
	}
	rootsplit := ua.Get(NodeLeftChild)
	if rootsplit == dag.NoNode {
		panic("choicemap: expanded mask has no rootsplit")
	}

	state := make(map[dag.NodeID]int, len(expanded))
	nodes := make(map[dag.NodeID]*tree.Node, len(expanded))
	nextID := uint32(m.d.TaxonCount())

	current := rootsplit
	for steps := 0; nodes[rootsplit] == nil; steps++ {
		if steps > 4*len(expanded) {
			panic(fmt.Sprintf("choicemap: topology walk from node %d does not terminate", rootsplit))
		}
		var next dag.NodeID
		switch {
		case m.d.IsNodeLeaf(current):
			nodes[current] = tree.Leaf(uint32(current))
			next = adjacent(current).Get(NodeParent)
		case state[current] == rightVisited:
			left := nodes[adjacent(current).Get(NodeLeftChild)]
			right := nodes[adjacent(current).Get(NodeRightChild)]
			nodes[current] = tree.Join(left, right, nextID)
			nextID++
			next = adjacent(current).Get(NodeParent)
		case state[current] == leftVisited:
			state[current] = rightVisited
			next = adjacent(current).Get(NodeRightChild)
		default:
			state[current] = leftVisited
			next = adjacent(current).Get(NodeLeftChild)
		}
		if next == current {
			panic(fmt.Sprintf("choicemap: expanded mask loops at node %d", current))
		}
		current = next
	}

	if len(nodes) != len(expanded)-1 {
		panic(fmt.Sprintf("choicemap: topology spans %d nodes, expanded mask %d", len(nodes), len(expanded)))
	}
	return nodes[rootsplit]
}

// ExtractTopology extracts the rooted topology of the spanning tree
// selected around a central edge.
func (m *Map) ExtractTopology(central dag.EdgeID) *tree.Node {
	return m.TopologyFromMask(m.ExtractTreeMask(central))
}
