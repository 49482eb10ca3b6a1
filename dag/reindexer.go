package dag

import "fmt"

// Reindexer maps old edge ids to new ones after a DAG growth renumbered the
// edges. Index i holds the new id of old edge i; the mapping is injective
// into the grown id range.
type Reindexer []EdgeID

// IdentityReindexer creates a reindexer mapping every id to itself.
func IdentityReindexer(n int) Reindexer {
	r := make(Reindexer, n)
	for i := range r {
		r[i] = EdgeID(i)
	}
	return r
}

// NewIndexOf returns the new id of an old edge id.
func (r Reindexer) NewIndexOf(old EdgeID) EdgeID {
	if int(old) >= len(r) {
		panic(fmt.Sprintf("dag: reindex of edge %d outside range %d", old, len(r)))
	}
	return r[old]
}

// IsIdentity reports whether every id maps to itself.
func (r Reindexer) IsIdentity() bool {
	for i, id := range r {
		if EdgeID(i) != id {
			return false
		}
	}
	return true
}

// Delta describes one DAG growth: the edge count before and after, the
// reindexer carrying surviving edges to their new ids, and the edges that
// did not exist before, in new numbering.
type Delta struct {
	PrevEdgeCount int
	EdgeCount     int
	Reindexer     Reindexer
	NewEdges      []EdgeID
}

// Grew reports whether the growth added any edges.
func (d *Delta) Grew() bool {
	return d.EdgeCount > d.PrevEdgeCount
}
