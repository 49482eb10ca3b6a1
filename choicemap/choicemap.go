package choicemap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phylogo/sdag/dag"
	"github.com/phylogo/sdag/subsplit"
)

// AdjacentEdge enumerates the four roles an edge choice assigns.
type AdjacentEdge uint8

const (
	// EdgeParent is the chosen edge above the focal edge's parent node.
	EdgeParent AdjacentEdge = iota
	// EdgeSister is the chosen edge to the parent node's other child.
	EdgeSister
	// EdgeLeftChild is the chosen edge resolving the child node's left clade.
	EdgeLeftChild
	// EdgeRightChild is the chosen edge resolving the child node's right clade.
	EdgeRightChild
)

func (a AdjacentEdge) String() string {
	switch a {
	case EdgeParent:
		return "parent"
	case EdgeSister:
		return "sister"
	case EdgeLeftChild:
		return "left child"
	case EdgeRightChild:
		return "right child"
	default:
		return "unknown"
	}
}

// EdgeChoice holds the four adjacent edges chosen for one focal edge.
// The zero value is not an empty choice; use EmptyEdgeChoice.
type EdgeChoice struct {
	Parent     dag.EdgeID
	Sister     dag.EdgeID
	LeftChild  dag.EdgeID
	RightChild dag.EdgeID
}

// EmptyEdgeChoice returns a choice with every role unset.
func EmptyEdgeChoice() EdgeChoice {
	return EdgeChoice{
		Parent:     dag.NoEdge,
		Sister:     dag.NoEdge,
		LeftChild:  dag.NoEdge,
		RightChild: dag.NoEdge,
	}
}

// IsEmpty reports whether every role is unset.
func (c EdgeChoice) IsEmpty() bool {
	return c.Parent == dag.NoEdge && c.Sister == dag.NoEdge &&
		c.LeftChild == dag.NoEdge && c.RightChild == dag.NoEdge
}

// Get returns the edge chosen for the given role.
func (c EdgeChoice) Get(a AdjacentEdge) dag.EdgeID {
	switch a {
	case EdgeParent:
		return c.Parent
	case EdgeSister:
		return c.Sister
	case EdgeLeftChild:
		return c.LeftChild
	case EdgeRightChild:
		return c.RightChild
	default:
		panic(fmt.Sprintf("choicemap: unknown adjacent edge role %d", a))
	}
}

func idString(id dag.EdgeID) string {
	if id == dag.NoEdge {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}

func (c EdgeChoice) String() string {
	return fmt.Sprintf("{parent:%s sister:%s left:%s right:%s}",
		idString(c.Parent), idString(c.Sister), idString(c.LeftChild), idString(c.RightChild))
}

func (c EdgeChoice) remap(r dag.Reindexer) EdgeChoice {
	return EdgeChoice{
		Parent:     remapID(c.Parent, r),
		Sister:     remapID(c.Sister, r),
		LeftChild:  remapID(c.LeftChild, r),
		RightChild: remapID(c.RightChild, r),
	}
}

func remapID(id dag.EdgeID, r dag.Reindexer) dag.EdgeID {
	if id == dag.NoEdge {
		return dag.NoEdge
	}
	return r.NewIndexOf(id)
}

// Map is a choice map over a borrowed DAG. One EdgeChoice per DAG edge,
// indexed by edge id.
type Map struct {
	d       *dag.DAG
	choices []EdgeChoice
	version uint64
	logger  *slog.Logger
}

// New creates a choice map sized to the DAG's current edge count, with
// every choice empty.
func New(d *dag.DAG, optFns ...func(o *Options)) *Map {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := &Map{
		d:       d,
		choices: emptyChoices(d.EdgeCount()),
		version: d.Version(),
		logger:  opts.Logger,
	}
	return m
}

func emptyChoices(n int) []EdgeChoice {
	out := make([]EdgeChoice, n)
	for i := range out {
		out[i] = EmptyEdgeChoice()
	}
	return out
}

// DAG returns the borrowed DAG.
func (m *Map) DAG() *dag.DAG { return m.d }

// Size returns the number of edges the map covers.
func (m *Map) Size() int { return len(m.choices) }

// Choice returns the choice stored for an edge. Panics on an out-of-range id.
func (m *Map) Choice(e dag.EdgeID) EdgeChoice {
	m.checkEdge(e)
	return m.choices[e]
}

// SelectFirst runs first-edge selection on every edge.
func (m *Map) SelectFirst() {
	m.checkSync()
	for e := range m.choices {
		m.SelectFirstAt(dag.EdgeID(e))
	}
}

// SelectFirstAt resets the edge's choice and assigns the first neighbor in
// each role. Parents are taken from the parent node's rootward lists, the
// right side overriding the left when both exist. The sister comes from the
// parent node's children on the opposite side of the focal edge, the
// children from the child node's leafward lists. Roles with no neighbors
// stay unset, which is legal only for root and leaf edges.
func (m *Map) SelectFirstAt(e dag.EdgeID) {
	m.checkSync()
	m.checkEdge(e)

	edge := m.d.Edge(e)
	parentNode := m.d.Node(edge.Parent())
	childNode := m.d.Node(edge.Child())

	choice := EmptyEdgeChoice()
	if ps := parentNode.Neighbors(dag.Rootward, subsplit.Left); len(ps) > 0 {
		choice.Parent = m.edgeBetween(ps[0], edge.Parent())
	}
	if ps := parentNode.Neighbors(dag.Rootward, subsplit.Right); len(ps) > 0 {
		choice.Parent = m.edgeBetween(ps[0], edge.Parent())
	}
	if ss := parentNode.Neighbors(dag.Leafward, edge.Side().Opposite()); len(ss) > 0 {
		choice.Sister = m.edgeBetween(edge.Parent(), ss[0])
	}
	if cs := childNode.Neighbors(dag.Leafward, subsplit.Left); len(cs) > 0 {
		choice.LeftChild = m.edgeBetween(edge.Child(), cs[0])
	}
	if cs := childNode.Neighbors(dag.Leafward, subsplit.Right); len(cs) > 0 {
		choice.RightChild = m.edgeBetween(edge.Child(), cs[0])
	}
	m.choices[e] = choice
}

// Grow resizes the map to the DAG's new edge count. A non-nil reindexer
// carries every stored choice to its new id: ids inside choices are
// remapped, then the choices land at their reindexed positions. New slots
// start empty; callers reselect them. Shrinking is a no-op.
func (m *Map) Grow(newEdgeCount int, r dag.Reindexer) {
	old := len(m.choices)
	if newEdgeCount < old {
		return
	}

	if r == nil {
		m.choices = append(m.choices, emptyChoices(newEdgeCount-old)...)
		m.version = m.d.Version()
		return
	}
	if len(r) != old {
		panic(fmt.Sprintf("choicemap: reindexer covers %d edges, map has %d", len(r), old))
	}

	next := emptyChoices(newEdgeCount)
	for i, c := range m.choices {
		next[r.NewIndexOf(dag.EdgeID(i))] = c.remap(r)
	}
	m.choices = next
	m.version = m.d.Version()
}

// SelectionIsValid checks every edge choice against the DAG. An empty
// choice is invalid; parent and sister must be both valid or both absent,
// absence being legal only on root edges; each child must be valid unless
// the edge is a leaf edge. The check stops at the first invalid edge,
// logging a diagnostic unless quiet.
func (m *Map) SelectionIsValid(quiet bool) bool {
	m.checkSync()
	limit := dag.EdgeID(len(m.choices))
	for i, c := range m.choices {
		e := dag.EdgeID(i)
		if c.IsEmpty() {
			m.warn(quiet, "edge choice is empty", "edge", e)
			return false
		}
		if c.Parent >= limit || c.Sister >= limit {
			if c.Parent != dag.NoEdge || c.Sister != dag.NoEdge {
				m.warn(quiet, "parent and sister must be both valid or both absent",
					"edge", e, "choice", c.String())
				return false
			}
			if !m.d.IsEdgeRoot(e) {
				m.warn(quiet, "parent and sister absent on a non-root edge",
					"edge", e, "choice", c.String())
				return false
			}
		}
		for _, role := range []AdjacentEdge{EdgeLeftChild, EdgeRightChild} {
			id := c.Get(role)
			if id < limit {
				continue
			}
			if id != dag.NoEdge {
				m.warn(quiet, "child choice outside valid range",
					"edge", e, "role", role.String(), "choice", c.String())
				return false
			}
			if !m.d.IsEdgeLeaf(e) {
				m.warn(quiet, "child choice absent on a non-leaf edge",
					"edge", e, "role", role.String(), "choice", c.String())
				return false
			}
		}
	}
	return true
}

// String renders the whole map, one edge per line.
func (m *Map) String() string {
	var sb strings.Builder
	for i, c := range m.choices {
		fmt.Fprintf(&sb, "%d: %s\n", i, c)
	}
	return sb.String()
}

func (m *Map) warn(quiet bool, msg string, args ...any) {
	if quiet {
		return
	}
	m.logger.Warn(msg, args...)
}

func (m *Map) edgeBetween(parent, child dag.NodeID) dag.EdgeID {
	id, ok := m.d.EdgeBetween(parent, child)
	if !ok {
		panic(fmt.Sprintf("choicemap: no edge between nodes %d and %d", parent, child))
	}
	return id
}

func (m *Map) checkEdge(e dag.EdgeID) {
	if int(e) >= len(m.choices) {
		panic(fmt.Sprintf("choicemap: edge %d outside range %d", e, len(m.choices)))
	}
}

func (m *Map) checkFollowed(e dag.EdgeID) {
	if int(e) >= len(m.choices) {
		panic(fmt.Sprintf("choicemap: followed edge %d outside range %d", e, len(m.choices)))
	}
}

func (m *Map) checkSync() {
	if m.version != m.d.Version() {
		panic(fmt.Sprintf("choicemap: map at DAG version %d, DAG at %d; grow the map after DAG mutations",
			m.version, m.d.Version()))
	}
}
