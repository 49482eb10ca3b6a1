package sdag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phylogo/sdag/dag"
	"github.com/phylogo/sdag/testutil"
	"github.com/phylogo/sdag/tree"
)

func newRandomSpace(t *testing.T, taxa []string, trees int) *Space {
	t.Helper()
	rng := testutil.NewRNG(4711)
	s, err := NewSpace(taxa)
	require.NoError(t, err)
	for _, top := range testutil.RandomTopologies(rng, len(taxa), trees) {
		require.NoError(t, s.AddTree(top))
	}
	require.NoError(t, s.Validate())
	return s
}

func rootEdges(s *Space) []dag.EdgeID {
	var roots []dag.EdgeID
	for id := range s.DAG().Edges() {
		if s.DAG().IsEdgeRoot(id) {
			roots = append(roots, id)
		}
	}
	return roots
}

func TestRandomTreesRoundTrip(t *testing.T) {
	taxa := testutil.TaxonNames(8)
	s := newRandomSpace(t, taxa, 5)

	roots := rootEdges(s)
	require.NotEmpty(t, roots)

	before := s.Stats()
	for _, root := range roots {
		top, err := s.Topology(root)
		require.NoError(t, err)
		text, err := s.Newick(root)
		require.NoError(t, err)

		parsed, err := tree.ParseNewick(text)
		require.NoError(t, err)
		reparsed, err := parsed.Binary(taxa)
		require.NoError(t, err)
		assert.True(t, top.Equal(reparsed), "edge %d", root)

		// Extracted trees are already known, re-adding changes nothing.
		require.NoError(t, s.AddNewick(text))
		assert.Equal(t, before, s.Stats())
	}
}

func TestRandomTreesEveryEdgeSpans(t *testing.T) {
	taxa := testutil.TaxonNames(8)
	s := newRandomSpace(t, taxa, 5)

	for id := range s.DAG().Edges() {
		top, err := s.Topology(id)
		require.NoError(t, err)
		assert.Equal(t, len(taxa), top.LeafCount(), "edge %d", id)
	}
}

func TestRandomTreesBatchExtract(t *testing.T) {
	taxa := testutil.TaxonNames(8)
	s := newRandomSpace(t, taxa, 5)

	roots := rootEdges(s)
	got, err := s.Topologies(context.Background(), roots)
	require.NoError(t, err)
	require.Len(t, got, len(roots))

	for i, root := range roots {
		want, err := s.Topology(root)
		require.NoError(t, err)
		assert.True(t, got[i].Equal(want), "edge %d", root)
	}
}

func TestRandomTreesCandidates(t *testing.T) {
	taxa := testutil.TaxonNames(8)
	s := newRandomSpace(t, taxa, 5)

	ops := s.CandidateNNIs().Operations()
	require.NotEmpty(t, ops)

	for i, op := range ops {
		assert.True(t, op.IsValid(), "operation %s", op)
		assert.False(t, s.DAG().ContainsEdge(op.Parent, op.Child), "operation %s", op)
		if i > 0 {
			assert.Negative(t, ops[i-1].Compare(op))
		}
	}
}
