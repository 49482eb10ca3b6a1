package dag

import "github.com/phylogo/sdag/subsplit"

// Node is a subsplit DAG node: a subsplit plus its neighbors partitioned by
// direction and by the side of the connecting edge. A rootward-left neighbor
// is a parent whose left clade this node's union fills; a leafward-left
// neighbor is a child filling this node's left clade.
//
// Nodes are owned by the DAG. A borrowed *Node stays valid until the next
// DAG mutation.
type Node struct {
	id        NodeID
	subsplit  subsplit.Subsplit
	neighbors [2][2][]NodeID
}

// ID returns the node id.
func (n *Node) ID() NodeID { return n.id }

// Subsplit returns the node's subsplit.
func (n *Node) Subsplit() subsplit.Subsplit { return n.subsplit }

// Neighbors returns the neighbor node ids for the given direction and edge
// side, ascending by id. The slice is owned by the DAG; callers must not
// modify it.
func (n *Node) Neighbors(d Direction, s subsplit.Side) []NodeID {
	return n.neighbors[d][s]
}

func (n *Node) addNeighbor(d Direction, s subsplit.Side, id NodeID) {
	n.neighbors[d][s] = append(n.neighbors[d][s], id)
}

// Edge is a directed subsplit DAG edge from a parent node down to a child
// node, tagged with the side of the parent clade the child fills.
type Edge struct {
	id     EdgeID
	parent NodeID
	child  NodeID
	side   subsplit.Side
}

// ID returns the edge id.
func (e Edge) ID() EdgeID { return e.id }

// Parent returns the parent node id.
func (e Edge) Parent() NodeID { return e.parent }

// Child returns the child node id.
func (e Edge) Child() NodeID { return e.child }

// Side returns which parent clade the child descends through.
func (e Edge) Side() subsplit.Side { return e.side }
