// Package sdag maintains a subsplit DAG together with a per-edge choice map
// and derives trees and candidate rearrangements from it.
//
// A subsplit DAG compactly encodes a collection of rooted binary tree
// topologies over a fixed taxon set. The choice map picks, for every DAG
// edge, the adjacent edges to follow when a single tree containing that
// edge is needed; nearest-neighbor interchange (NNI) operations describe
// the rearrangements one swap away from the encoded collection.
//
// # Quick Start
//
//	space, _ := sdag.NewSpace([]string{"A", "B", "C", "D"})
//	_ = space.AddNewick("((A,B),(C,D));")
//
//	// Every edge selects a tree through the choice map.
//	topology, _ := space.Topology(0)
//	text, _ := space.Newick(0)
//
//	// Rearrangements one NNI away from the encoded trees.
//	for op := range space.CandidateNNIs().All() {
//	    fmt.Println(op.Pretty(space.Taxa()))
//	}
//
// # Packages
//
//   - subsplit: fixed-universe clades and canonical subsplit pairs
//   - dag: the subsplit DAG with canonical renumbering and growth deltas
//   - choicemap: per-edge adjacent-edge selection, tree masks, extraction
//   - nni: nearest-neighbor interchange operations and ordered sets
//   - tree: rooted binary topologies and newick text
//
// The facade in this package keeps the DAG and its choice map synchronized
// and guards them for concurrent use; the subpackages are single-threaded
// values the caller may use directly.
package sdag
