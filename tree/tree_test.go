package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nameOf(names []string) func(id uint32) string {
	return func(id uint32) string { return names[id] }
}

func TestParseNewickLeaves(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Cherry", "(A,B);", []string{"A", "B"}},
		{"Balanced", "((A,B),(C,D));", []string{"A", "B", "C", "D"}},
		{"Caterpillar", "(((A,B),C),D);", []string{"A", "B", "C", "D"}},
		{"BranchLengths", "((A:0.5,B:1),(C:2.5,D:1e-2):0.1);", []string{"A", "B", "C", "D"}},
		{"NegativeLength", "(A:-0.5,B:0.5);", []string{"A", "B"}},
		{"InternalLabels", "((A,B)ab,(C,D)cd)root;", []string{"A", "B", "C", "D"}},
		{"Whitespace", " ( A , B ) ;\n", []string{"A", "B"}},
		{"NumericLabels", "(1,(2,3));", []string{"1", "2", "3"}},
		{"SingleLeaf", "A;", []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseNewick(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l.Leaves())
		})
	}
}

func TestParseNewickErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"MissingSemicolon", "(A,B)"},
		{"UnbalancedParen", "((A,B);"},
		{"TrailingGarbage", "(A,B);x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNewick(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestLabeledBinary(t *testing.T) {
	taxa := []string{"A", "B", "C", "D"}

	l, err := ParseNewick("((A,B),(C,D));")
	require.NoError(t, err)

	n, err := l.Binary(taxa)
	require.NoError(t, err)

	// Leaves carry taxon indices, internal ids count up from len(taxa) in
	// post order.
	expected := Join(
		Join(Leaf(0), Leaf(1), 4),
		Join(Leaf(2), Leaf(3), 5),
		6,
	)
	assert.True(t, n.Equal(expected))
	assert.Equal(t, 4, n.LeafCount())
}

func TestLabeledBinaryErrors(t *testing.T) {
	taxa := []string{"A", "B", "C", "D"}

	l, err := ParseNewick("(A,B,C);")
	require.NoError(t, err)
	_, err = l.Binary(taxa)
	var nb *ErrNotBinary
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, 3, nb.Children)

	l, err = ParseNewick("((A,B),(C,X));")
	require.NoError(t, err)
	_, err = l.Binary(taxa)
	var ut *ErrUnknownTaxon
	require.ErrorAs(t, err, &ut)
	assert.Equal(t, "X", ut.Label)
}

func TestNewickRoundTrip(t *testing.T) {
	taxa := []string{"A", "B", "C", "D", "E"}

	tests := []string{
		"((A,B),(C,D));",
		"(((A,B),C),(D,E));",
		"(A,B);",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			l, err := ParseNewick(input)
			require.NoError(t, err)
			n, err := l.Binary(taxa)
			require.NoError(t, err)
			assert.Equal(t, input, n.Newick(nameOf(taxa)))
		})
	}
}

func TestPostOrder(t *testing.T) {
	n := Join(
		Join(Leaf(0), Leaf(1), 4),
		Join(Leaf(2), Leaf(3), 5),
		6,
	)

	var ids []uint32
	for v := range n.PostOrder() {
		ids = append(ids, v.ID())
	}
	assert.Equal(t, []uint32{0, 1, 4, 2, 3, 5, 6}, ids)
}

func TestNodeEqual(t *testing.T) {
	a := Join(Leaf(0), Leaf(1), 2)
	b := Join(Leaf(0), Leaf(1), 2)
	c := Join(Leaf(1), Leaf(0), 2)
	d := Leaf(0)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(Join(Leaf(0), Leaf(1), 9)))
}

func TestJoinPanicsOnNil(t *testing.T) {
	require.Panics(t, func() { Join(Leaf(0), nil, 1) })
}
