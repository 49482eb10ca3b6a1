// Package choicemap implements per-edge adjacency selections over a
// subsplit DAG and the tree extraction built on them.
//
// A choice map assigns every DAG edge up to four adjacent edges: the chosen
// parent edge, sister edge, left child edge and right child edge. Once every
// edge carries a valid selection, any central edge determines a single
// spanning tree through the DAG, which the map extracts as a TreeMask (the
// edge set), an ExpandedTreeMask (per-node adjacencies) or a rooted binary
// topology.
//
// The map sizes itself to the DAG's edge count and records the DAG version.
// After the DAG grows, call Grow with the delta's reindexer before touching
// the map again; operations on a stale map panic. The map itself is not
// safe for concurrent mutation, but any number of goroutines may run
// extractions concurrently between mutations.
package choicemap
