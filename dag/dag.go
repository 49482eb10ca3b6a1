// Package dag implements an in-memory subsplit DAG: nodes are subsplits of
// a fixed taxon set, edges connect parents to the children resolving one of
// their clades. The DAG is built from rooted binary topologies and presents
// the neighbor queries the choice map and NNI machinery run on.
//
// Ids are dense and deterministic: leaves sit at 0..TaxonCount-1, non-leaf
// nodes follow in subsplit order with the universal ancestor last, and edges
// are numbered by (parent, side, child). Growing the DAG renumbers ids; each
// growth returns a Delta carrying the edge Reindexer so per-edge data can
// follow.
package dag

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/phylogo/sdag/subsplit"
	"github.com/phylogo/sdag/tree"
)

type pcsp struct {
	parent subsplit.Subsplit
	child  subsplit.Subsplit
}

func (p pcsp) key() string {
	return p.parent.Key() + p.child.Key()
}

// DAG is a subsplit DAG over a fixed taxon set. The zero value is not
// usable; construct with New. A DAG is not safe for concurrent mutation;
// any number of readers may query it between mutations.
type DAG struct {
	taxa      []string
	subsplits map[string]subsplit.Subsplit
	pcsps     map[string]pcsp

	nodes      []*Node
	edges      []Edge
	nodeOf     map[string]NodeID
	edgeOf     map[string]EdgeID
	edgeByPair map[uint64]EdgeID
	version    uint64
}

// New creates a DAG over the given taxa. Leaf nodes and the universal
// ancestor exist from the start; edges appear as topologies are added.
func New(taxa []string) (*DAG, error) {
	if len(taxa) < 2 {
		return nil, ErrTooFewTaxa
	}
	seen := make(map[string]struct{}, len(taxa))
	for _, name := range taxa {
		if _, ok := seen[name]; ok {
			return nil, &ErrDuplicateTaxon{Name: name}
		}
		seen[name] = struct{}{}
	}

	n := len(taxa)
	d := &DAG{
		taxa:      slices.Clone(taxa),
		subsplits: make(map[string]subsplit.Subsplit, n+1),
		pcsps:     make(map[string]pcsp),
	}
	for i := 0; i < n; i++ {
		ss := subsplit.Leaf(n, i)
		d.subsplits[ss.Key()] = ss
	}
	ua := subsplit.UniversalAncestor(n)
	d.subsplits[ua.Key()] = ua
	d.rebuild()
	return d, nil
}

// AddTopology inserts every subsplit and parent-child pair of a rooted
// binary topology spanning the full taxon set. The returned Delta describes
// the growth; adding an already-known topology yields an identity delta and
// does not bump the version.
func (d *DAG) AddTopology(t *tree.Node) (*Delta, error) {
	if t == nil {
		return nil, ErrNilTopology
	}
	n := len(d.taxa)

	clades := make(map[*tree.Node]subsplit.Clade)
	splits := make(map[*tree.Node]subsplit.Subsplit)
	visited := make(map[uint32]struct{})
	for v := range t.PostOrder() {
		if v.IsLeaf() {
			id := v.ID()
			if int(id) >= n {
				return nil, &ErrTaxonOutOfRange{ID: id, Count: n}
			}
			if _, dup := visited[id]; dup {
				return nil, &ErrRepeatedTaxon{ID: id}
			}
			visited[id] = struct{}{}
			clades[v] = subsplit.CladeOf(n, int(id))
			splits[v] = subsplit.Leaf(n, int(id))
			continue
		}
		left, right := clades[v.Left()], clades[v.Right()]
		clades[v] = left.Union(right)
		splits[v] = subsplit.New(left, right)
	}
	if got := clades[t].Count(); got != n {
		return nil, &ErrIncompleteTopology{Got: got, Want: n}
	}

	pairs := []pcsp{{parent: subsplit.UniversalAncestor(n), child: splits[t]}}
	for v := range t.PostOrder() {
		if v.IsLeaf() {
			continue
		}
		pairs = append(pairs,
			pcsp{parent: splits[v], child: splits[v.Left()]},
			pcsp{parent: splits[v], child: splits[v.Right()]},
		)
	}

	added := false
	for _, pc := range pairs {
		key := pc.key()
		if _, ok := d.pcsps[key]; ok {
			continue
		}
		d.pcsps[key] = pc
		d.subsplits[pc.parent.Key()] = pc.parent
		d.subsplits[pc.child.Key()] = pc.child
		added = true
	}

	prev := len(d.edges)
	if !added {
		return &Delta{
			PrevEdgeCount: prev,
			EdgeCount:     prev,
			Reindexer:     IdentityReindexer(prev),
		}, nil
	}

	// Snapshot the old numbering by stable pair key, then renumber.
	oldKeys := make([]string, prev)
	for key, id := range d.edgeOf {
		oldKeys[id] = key
	}
	oldSet := make(map[string]struct{}, prev)
	for _, key := range oldKeys {
		oldSet[key] = struct{}{}
	}

	d.rebuild()
	d.version++

	delta := &Delta{
		PrevEdgeCount: prev,
		EdgeCount:     len(d.edges),
		Reindexer:     make(Reindexer, prev),
	}
	for oldID, key := range oldKeys {
		delta.Reindexer[oldID] = d.edgeOf[key]
	}
	for i, e := range d.edges {
		key := d.nodes[e.parent].subsplit.Key() + d.nodes[e.child].subsplit.Key()
		if _, ok := oldSet[key]; !ok {
			delta.NewEdges = append(delta.NewEdges, EdgeID(i))
		}
	}
	return delta, nil
}

// rebuild derives the canonical numbering and all lookup structures from the
// subsplit and pair sets.
func (d *DAG) rebuild() {
	n := len(d.taxa)

	var internals []subsplit.Subsplit
	for _, ss := range d.subsplits {
		if !ss.IsLeaf() {
			internals = append(internals, ss)
		}
	}
	slices.SortFunc(internals, func(a, b subsplit.Subsplit) int { return a.Compare(b) })

	d.nodes = make([]*Node, 0, n+len(internals))
	d.nodeOf = make(map[string]NodeID, n+len(internals))
	for i := 0; i < n; i++ {
		ss := subsplit.Leaf(n, i)
		d.nodes = append(d.nodes, &Node{id: NodeID(i), subsplit: ss})
		d.nodeOf[ss.Key()] = NodeID(i)
	}
	for k, ss := range internals {
		id := NodeID(n + k)
		d.nodes = append(d.nodes, &Node{id: id, subsplit: ss})
		d.nodeOf[ss.Key()] = id
	}

	type edgeRec struct {
		parent NodeID
		child  NodeID
		side   subsplit.Side
		key    string
	}
	recs := make([]edgeRec, 0, len(d.pcsps))
	for key, pc := range d.pcsps {
		side, ok := subsplit.ChildSide(pc.parent, pc.child)
		if !ok {
			panic(fmt.Sprintf("dag: pair %s -> %s is not parent and child", pc.parent, pc.child))
		}
		recs = append(recs, edgeRec{
			parent: d.nodeOf[pc.parent.Key()],
			child:  d.nodeOf[pc.child.Key()],
			side:   side,
			key:    key,
		})
	}
	slices.SortFunc(recs, func(a, b edgeRec) int {
		if c := cmp.Compare(a.parent, b.parent); c != 0 {
			return c
		}
		if c := cmp.Compare(a.side, b.side); c != 0 {
			return c
		}
		return cmp.Compare(a.child, b.child)
	})

	d.edges = make([]Edge, len(recs))
	d.edgeOf = make(map[string]EdgeID, len(recs))
	d.edgeByPair = make(map[uint64]EdgeID, len(recs))
	for i, rec := range recs {
		id := EdgeID(i)
		d.edges[i] = Edge{id: id, parent: rec.parent, child: rec.child, side: rec.side}
		d.edgeOf[rec.key] = id
		d.edgeByPair[pairKey(rec.parent, rec.child)] = id
		d.nodes[rec.parent].addNeighbor(Leafward, rec.side, rec.child)
		d.nodes[rec.child].addNeighbor(Rootward, rec.side, rec.parent)
	}
}

func pairKey(parent, child NodeID) uint64 {
	return uint64(parent)<<32 | uint64(child)
}

// TaxonCount returns the number of taxa.
func (d *DAG) TaxonCount() int { return len(d.taxa) }

// Taxa returns a copy of the taxon names in index order.
func (d *DAG) Taxa() []string { return slices.Clone(d.taxa) }

// NodeCount returns the number of nodes, leaves and root included.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges, leaf edges included.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Version counts effective mutations. Per-edge data structures record it to
// detect going stale.
func (d *DAG) Version() uint64 { return d.version }

// RootNodeID returns the id of the universal ancestor node.
func (d *DAG) RootNodeID() NodeID { return NodeID(len(d.nodes) - 1) }

// Node returns the node with the given id. The node is owned by the DAG and
// valid until the next mutation. Panics on an out-of-range id.
func (d *DAG) Node(id NodeID) *Node {
	if int(id) >= len(d.nodes) {
		panic(fmt.Sprintf("dag: node %d outside range %d", id, len(d.nodes)))
	}
	return d.nodes[id]
}

// Edge returns the edge with the given id. Panics on an out-of-range id.
func (d *DAG) Edge(id EdgeID) Edge {
	if int(id) >= len(d.edges) {
		panic(fmt.Sprintf("dag: edge %d outside range %d", id, len(d.edges)))
	}
	return d.edges[id]
}

// Neighbors returns the neighbor node ids of a node for the given direction
// and edge side, ascending by id.
func (d *DAG) Neighbors(id NodeID, dir Direction, side subsplit.Side) []NodeID {
	return d.Node(id).Neighbors(dir, side)
}

// EdgeBetween returns the edge connecting a parent node to a child node.
func (d *DAG) EdgeBetween(parent, child NodeID) (EdgeID, bool) {
	id, ok := d.edgeByPair[pairKey(parent, child)]
	return id, ok
}

// FindNode returns the id of the node carrying the given subsplit.
func (d *DAG) FindNode(ss subsplit.Subsplit) (NodeID, bool) {
	id, ok := d.nodeOf[ss.Key()]
	return id, ok
}

// ContainsNode reports whether a node carries the given subsplit.
func (d *DAG) ContainsNode(ss subsplit.Subsplit) bool {
	_, ok := d.nodeOf[ss.Key()]
	return ok
}

// ContainsEdge reports whether the parent-child subsplit pair is a DAG edge.
func (d *DAG) ContainsEdge(parent, child subsplit.Subsplit) bool {
	_, ok := d.edgeOf[parent.Key()+child.Key()]
	return ok
}

// IsNodeLeaf reports whether the node is a leaf (taxon) node.
func (d *DAG) IsNodeLeaf(id NodeID) bool {
	return int(id) < len(d.taxa)
}

// IsNodeRoot reports whether the node is the universal ancestor.
func (d *DAG) IsNodeRoot(id NodeID) bool {
	return id == d.RootNodeID()
}

// IsEdgeRoot reports whether the edge descends from the universal ancestor.
func (d *DAG) IsEdgeRoot(id EdgeID) bool {
	return d.Edge(id).parent == d.RootNodeID()
}

// IsEdgeLeaf reports whether the edge ends at a leaf node.
func (d *DAG) IsEdgeLeaf(id EdgeID) bool {
	return int(d.Edge(id).child) < len(d.taxa)
}

// Edges iterates all edges in id order.
func (d *DAG) Edges() iter.Seq2[EdgeID, Edge] {
	return func(yield func(EdgeID, Edge) bool) {
		for i, e := range d.edges {
			if !yield(EdgeID(i), e) {
				return
			}
		}
	}
}
