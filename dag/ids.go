package dag

// NodeID is a dense, internal identifier of a subsplit DAG node. Leaf nodes
// occupy ids 0..TaxonCount-1 in taxon order; the universal ancestor holds
// the highest id. Ids are renumbered when the DAG grows.
type NodeID uint32

// EdgeID is a dense, internal identifier of a subsplit DAG edge. Ids are
// renumbered when the DAG grows; the accompanying Reindexer maps old to new.
type EdgeID uint32

const (
	// NoNode marks the absence of a node. It compares greater than every
	// valid id, so a single upper-bound test rejects both.
	NoNode = ^NodeID(0)

	// NoEdge marks the absence of an edge.
	NoEdge = ^EdgeID(0)
)

// Direction partitions a node's neighbors into those toward the root and
// those toward the leaves.
type Direction uint8

const (
	// Rootward selects parent neighbors.
	Rootward Direction = iota
	// Leafward selects child neighbors.
	Leafward
)

func (d Direction) String() string {
	switch d {
	case Rootward:
		return "rootward"
	case Leafward:
		return "leafward"
	default:
		return "unknown"
	}
}
