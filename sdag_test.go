package sdag

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phylogo/sdag/dag"
	"github.com/phylogo/sdag/nni"
	"github.com/phylogo/sdag/subsplit"
	"github.com/phylogo/sdag/tree"
)

var quartetTaxa = []string{"A", "B", "C", "D"}

func newSpace(t *testing.T, newicks ...string) *Space {
	t.Helper()
	s, err := NewSpace(quartetTaxa)
	require.NoError(t, err)
	for _, text := range newicks {
		require.NoError(t, s.AddNewick(text))
	}
	return s
}

func parseTopology(t *testing.T, text string) *tree.Node {
	t.Helper()
	parsed, err := tree.ParseNewick(text)
	require.NoError(t, err)
	top, err := parsed.Binary(quartetTaxa)
	require.NoError(t, err)
	return top
}

func TestNewSpace(t *testing.T) {
	t.Run("empty space", func(t *testing.T) {
		s := newSpace(t)
		assert.Equal(t, quartetTaxa, s.Taxa())
		assert.Equal(t, Stats{Taxa: 4, Nodes: 5, Edges: 0, Version: 0}, s.Stats())
		assert.Equal(t, 0, s.CandidateNNIs().Len())
		assert.NoError(t, s.Validate())
	})

	t.Run("too few taxa", func(t *testing.T) {
		_, err := NewSpace([]string{"A"})
		assert.ErrorIs(t, err, dag.ErrTooFewTaxa)
	})

	t.Run("duplicate taxon", func(t *testing.T) {
		_, err := NewSpace([]string{"A", "B", "A"})
		var dup *dag.ErrDuplicateTaxon
		assert.ErrorAs(t, err, &dup)
	})
}

func TestAddNewickAndTopology(t *testing.T) {
	s := newSpace(t, "((A,B),(C,D));")
	assert.Equal(t, Stats{Taxa: 4, Nodes: 8, Edges: 7, Version: 1}, s.Stats())
	require.NoError(t, s.Validate())

	want := parseTopology(t, "((A,B),(C,D));")
	edges := s.Stats().Edges
	for e := dag.EdgeID(0); int(e) < edges; e++ {
		got, err := s.Topology(e)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "edge %d", e)
	}

	text, err := s.Newick(6)
	require.NoError(t, err)
	assert.Equal(t, "((A,B),(C,D));", text)

	_, err = s.Topology(99)
	var oor *ErrEdgeOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, dag.EdgeID(99), oor.Edge)
	assert.Equal(t, 7, oor.Count)
}

func TestAddNewickErrors(t *testing.T) {
	tests := []struct {
		name   string
		newick string
	}{
		{name: "unbalanced parens", newick: "((A,B),(C,D)"},
		{name: "unknown taxon", newick: "((A,B),(C,E));"},
		{name: "not binary", newick: "((A,B,C),D);"},
		{name: "unlabeled leaf", newick: "((A,),(C,D));"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpace(t)
			err := s.AddNewick(tt.newick)
			assert.ErrorIs(t, err, ErrBadNewick)
			assert.Equal(t, 0, s.Stats().Edges)
		})
	}

	t.Run("nil topology", func(t *testing.T) {
		s := newSpace(t)
		assert.ErrorIs(t, s.AddTree(nil), ErrBadTopology)
	})

	t.Run("incomplete topology", func(t *testing.T) {
		s := newSpace(t)
		top := tree.Join(tree.Leaf(0), tree.Leaf(1), 4)
		assert.ErrorIs(t, s.AddTree(top), ErrBadTopology)
	})
}

func TestAddNewickIdempotent(t *testing.T) {
	s := newSpace(t, "((A,B),(C,D));", "((A,B),(C,D));")
	assert.Equal(t, Stats{Taxa: 4, Nodes: 8, Edges: 7, Version: 1}, s.Stats())
	assert.NoError(t, s.Validate())
}

func TestTwoTrees(t *testing.T) {
	s := newSpace(t, "((A,B),(C,D));", "((A,C),(B,D));")
	assert.Equal(t, Stats{Taxa: 4, Nodes: 11, Edges: 14, Version: 2}, s.Stats())
	require.NoError(t, s.Validate())

	first, err := s.Newick(13)
	require.NoError(t, err)
	assert.Equal(t, "((A,B),(C,D));", first)

	second, err := s.Newick(12)
	require.NoError(t, err)
	assert.Equal(t, "((A,C),(B,D));", second)
}

func TestTopologies(t *testing.T) {
	s := newSpace(t, "((A,B),(C,D));", "((A,C),(B,D));")

	t.Run("index aligned", func(t *testing.T) {
		got, err := s.Topologies(context.Background(), []dag.EdgeID{12, 13, 6})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, got[0].Equal(parseTopology(t, "((A,C),(B,D));")))
		assert.True(t, got[1].Equal(parseTopology(t, "((A,B),(C,D));")))
		assert.True(t, got[2].Equal(got[1]))
	})

	t.Run("empty request", func(t *testing.T) {
		got, err := s.Topologies(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("out of range edge", func(t *testing.T) {
		_, err := s.Topologies(context.Background(), []dag.EdgeID{0, 99})
		var oor *ErrEdgeOutOfRange
		assert.ErrorAs(t, err, &oor)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Topologies(ctx, []dag.EdgeID{12, 13})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCandidateNNIs(t *testing.T) {
	cl := func(taxa ...int) subsplit.Clade { return subsplit.CladeOf(4, taxa...) }
	ss := subsplit.New

	s := newSpace(t, "((A,B),(C,D));")
	set := s.CandidateNNIs()

	// Two internal edges, two rearrangements each.
	want := []nni.Operation{
		{Parent: ss(cl(0), cl(1, 2, 3)), Child: ss(cl(1), cl(2, 3))},
		{Parent: ss(cl(0, 2, 3), cl(1)), Child: ss(cl(0), cl(2, 3))},
		{Parent: ss(cl(0, 1, 3), cl(2)), Child: ss(cl(0, 1), cl(3))},
		{Parent: ss(cl(0, 1, 2), cl(3)), Child: ss(cl(0, 1), cl(2))},
	}
	got := set.Operations()
	require.Len(t, got, len(want))
	for i, op := range got {
		assert.True(t, op.Equal(want[i]), "operation %d: got %s want %s", i, op, want[i])
		assert.True(t, op.IsValid())
		assert.False(t, s.DAG().ContainsEdge(op.Parent, op.Child))
	}

	t.Run("known edges excluded", func(t *testing.T) {
		s := newSpace(t, "((A,B),(C,D));", "(((A,B),C),D);")
		set := s.CandidateNNIs()
		assert.True(t, set.Contains(nni.Operation{
			Parent: ss(cl(0, 1, 3), cl(2)),
			Child:  ss(cl(0, 1), cl(3)),
		}))
		// The caterpillar tree already realizes this rearrangement.
		assert.False(t, set.Contains(nni.Operation{
			Parent: ss(cl(0, 1, 2), cl(3)),
			Child:  ss(cl(0, 1), cl(2)),
		}))
	})
}

func TestValidateDetectsBrokenSelection(t *testing.T) {
	s := newSpace(t, "((A,B),(C,D));")
	require.NoError(t, s.Validate())

	s.ChoiceMap().Grow(s.DAG().EdgeCount()+1, nil)
	assert.ErrorIs(t, s.Validate(), ErrInvalidSelection)
}

func TestSpaceLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := NewSpace(quartetTaxa, WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, s.AddNewick("((A,B),(C,D));"))
	_, err = s.Topology(6)
	require.NoError(t, err)
	require.Error(t, s.AddNewick("not a tree ("))

	out := buf.String()
	assert.Contains(t, out, "tree added")
	assert.Contains(t, out, "topology extracted")
	assert.Contains(t, out, "add tree failed")
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "empty leaf label", in: tree.ErrEmptyLeafLabel, want: ErrBadNewick},
		{name: "unknown taxon", in: &tree.ErrUnknownTaxon{Label: "X"}, want: ErrBadNewick},
		{name: "not binary", in: &tree.ErrNotBinary{Children: 3}, want: ErrBadNewick},
		{name: "nil topology", in: dag.ErrNilTopology, want: ErrBadTopology},
		{name: "taxon out of range", in: &dag.ErrTaxonOutOfRange{ID: 9, Count: 4}, want: ErrBadTopology},
		{name: "repeated taxon", in: &dag.ErrRepeatedTaxon{ID: 1}, want: ErrBadTopology},
		{name: "incomplete topology", in: &dag.ErrIncompleteTopology{Got: 3, Want: 4}, want: ErrBadTopology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.in)
		})
	}

	t.Run("unrelated errors pass through", func(t *testing.T) {
		err := errors.New("disk on fire")
		assert.Equal(t, err, translateError(err))
	})
}
