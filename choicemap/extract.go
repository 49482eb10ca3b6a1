package choicemap

import (
	"fmt"
	"slices"

	"github.com/phylogo/sdag/dag"
	"github.com/phylogo/sdag/subsplit"
)

// ExtractTreeMask returns the spanning tree selected around a central
// edge. The walk records the central edge and follows parent choices
// rootward until a root edge is reached, queuing each sister on the way
// along with the central edge's own children, then expands the queued
// subtrees leafward through the child choices. Unset child choices are
// skipped; any other followed id outside the edge range panics.
func (m *Map) ExtractTreeMask(central dag.EdgeID) *TreeMask {
	m.checkSync()
	m.checkEdge(central)

	mask := NewTreeMask()
	pending := make([]dag.EdgeID, 0, len(m.choices))
	pushChildren := func(c EdgeChoice) {
		for _, id := range []dag.EdgeID{c.LeftChild, c.RightChild} {
			if id == dag.NoEdge {
				continue
			}
			m.checkFollowed(id)
			pending = append(pending, id)
		}
	}

	pushChildren(m.choices[central])

	focal := central
	for steps := 0; ; steps++ {
		if steps > len(m.choices) {
			panic(fmt.Sprintf("choicemap: rootward walk from edge %d does not terminate", central))
		}
		m.checkFollowed(focal)
		mask.Add(focal)
		if m.d.IsEdgeRoot(focal) {
			break
		}
		c := m.choices[focal]
		m.checkFollowed(c.Sister)
		pending = append(pending, c.Sister)
		focal = c.Parent
	}

	for pops := 0; len(pending) > 0; pops++ {
		if pops > len(m.choices) {
			panic(fmt.Sprintf("choicemap: leafward walk from edge %d does not terminate", central))
		}
		e := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		mask.Add(e)
		pushChildren(m.choices[e])
	}

	return mask
}

func slotWrite(x ExpandedTreeMask, id dag.NodeID, slot AdjacentNode, to dag.NodeID) {
	nodes, ok := x[id]
	if !ok {
		nodes = emptyAdjacentNodes()
	}
	if nodes[slot] != dag.NoNode {
		panic(fmt.Sprintf("choicemap: node %d already has a %s in the expanded mask", id, slot))
	}
	nodes[slot] = to
	x[id] = nodes
}

// ExtractExpandedTreeMask converts a tree mask from edge ids into
// per-node tree neighbors. It panics if the mask writes any neighbor
// slot twice.
func (m *Map) ExtractExpandedTreeMask(mask *TreeMask) ExpandedTreeMask {
	expanded := make(ExpandedTreeMask, mask.Cardinality()+1)
	for e := range mask.Edges() {
		edge := m.d.Edge(e)
		slotWrite(expanded, edge.Child(), NodeParent, edge.Parent())
		slot := NodeLeftChild
		if edge.Side() == subsplit.Right {
			slot = NodeRightChild
		}
		slotWrite(expanded, edge.Parent(), slot, edge.Child())
	}
	return expanded
}

// ExtractExpandedTreeMaskAt extracts the tree mask around a central
// edge and expands it into per-node tree neighbors.
func (m *Map) ExtractExpandedTreeMaskAt(central dag.EdgeID) ExpandedTreeMask {
	return m.ExtractExpandedTreeMask(m.ExtractTreeMask(central))
}

// TreeMaskIsValid checks that a mask spans a single complete rooted
// tree: one root edge, every taxon covered exactly once, no node with
// two parents or a doubly filled child side, and every spanned node
// fully resolved. Failures are reported through the logger unless quiet
// is set.
func (m *Map) TreeMaskIsValid(mask *TreeMask, quiet bool) bool {
	type slots struct {
		parent, left, right bool
	}
	occupied := make(map[dag.NodeID]*slots, mask.Cardinality()+1)
	at := func(id dag.NodeID) *slots {
		s, ok := occupied[id]
		if !ok {
			s = &slots{}
			occupied[id] = s
		}
		return s
	}

	limit := dag.EdgeID(m.d.EdgeCount())
	rootCount := 0
	covered := make([]int, m.d.TaxonCount())
	for e := range mask.Edges() {
		if e >= limit {
			m.warn(quiet, "tree mask names an edge outside the graph", "edge", e)
			return false
		}
		edge := m.d.Edge(e)
		if m.d.IsEdgeRoot(e) {
			rootCount++
			if rootCount > 1 {
				m.warn(quiet, "tree mask holds more than one root edge", "edge", e)
				return false
			}
		}
		if m.d.IsEdgeLeaf(e) {
			taxon := int(edge.Child())
			covered[taxon]++
			if covered[taxon] > 1 {
				m.warn(quiet, "tree mask covers a taxon more than once", "taxon", taxon)
				return false
			}
		}
		child := at(edge.Child())
		if child.parent {
			m.warn(quiet, "tree mask gives a node more than one parent", "node", edge.Child())
			return false
		}
		child.parent = true
		parent := at(edge.Parent())
		side := &parent.left
		if edge.Side() == subsplit.Right {
			side = &parent.right
		}
		if *side {
			m.warn(quiet, "tree mask fills a child side twice", "node", edge.Parent(), "side", edge.Side())
			return false
		}
		*side = true
	}

	if rootCount == 0 {
		m.warn(quiet, "tree mask holds no root edge")
		return false
	}
	for taxon, n := range covered {
		if n == 0 {
			m.warn(quiet, "tree mask does not cover a taxon", "taxon", taxon)
			return false
		}
	}

	ids := make([]dag.NodeID, 0, len(occupied))
	for id := range occupied {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		// The universal ancestor is spanned through its single root edge.
		if m.d.IsNodeRoot(id) {
			continue
		}
		s := occupied[id]
		if !s.parent {
			m.warn(quiet, "spanned node has no parent", "node", id)
			return false
		}
		if m.d.IsNodeLeaf(id) {
			continue
		}
		if !s.left && !s.right {
			m.warn(quiet, "spanned node has no children", "node", id)
			return false
		}
		if s.left != s.right {
			m.warn(quiet, "spanned node has only one child", "node", id)
			return false
		}
	}
	return true
}
