// Package testutil provides testing utilities for sdag.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random and structured rooted
// binary topologies over synthetic taxon sets.
//
// # Random Topologies
//
//	rng := testutil.NewRNG(seed)
//	taxa := testutil.TaxonNames(16)
//	top := testutil.RandomTopology(rng, len(taxa))
//
// # Structured Topologies
//
//	ladder := testutil.CaterpillarTopology(8)
//	bushy := testutil.BalancedTopology(8)
package testutil
