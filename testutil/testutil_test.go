package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phylogo/sdag/tree"
)

func names(id uint32) string {
	return TaxonNames(32)[id]
}

func leafIDs(top *tree.Node) []uint32 {
	var ids []uint32
	for v := range top.PostOrder() {
		if v.IsLeaf() {
			ids = append(ids, v.ID())
		}
	}
	slices.Sort(ids)
	return ids
}

func TestTaxonNames(t *testing.T) {
	got := TaxonNames(4)
	assert.Equal(t, []string{"t0", "t1", "t2", "t3"}, got)
}

func TestRandomTopology(t *testing.T) {
	rng := NewRNG(4711)

	top := RandomTopology(rng, 8)

	assert.Equal(t, 8, top.LeafCount())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, leafIDs(top))
}

func TestRandomTopologyDeterministic(t *testing.T) {
	a := RandomTopology(NewRNG(4711), 8)
	b := RandomTopology(NewRNG(4711), 8)
	assert.True(t, a.Equal(b))
}

func TestRandomTopologies(t *testing.T) {
	rng := NewRNG(4711)

	tops := RandomTopologies(rng, 8, 5)

	assert.Len(t, tops, 5)
	for _, top := range tops {
		assert.Equal(t, 8, top.LeafCount())
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := RandomTopology(rng, 8)

	rng.Reset()
	b := RandomTopology(rng, 8)

	assert.True(t, a.Equal(b))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestPerm(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.Perm(6)

	assert.Len(t, p, 6)
	sorted := slices.Clone(p)
	slices.Sort(sorted)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, sorted)
}

func TestCaterpillarTopology(t *testing.T) {
	top := CaterpillarTopology(4)
	assert.Equal(t, "(((t0,t1),t2),t3);", top.Newick(names))
	assert.Equal(t, []uint32{0, 1, 2, 3}, leafIDs(top))
}

func TestBalancedTopology(t *testing.T) {
	top := BalancedTopology(4)
	assert.Equal(t, "((t0,t1),(t2,t3));", top.Newick(names))

	odd := BalancedTopology(5)
	assert.Equal(t, "(((t0,t1),t2),(t3,t4));", odd.Newick(names))
}

func TestTopologyPanics(t *testing.T) {
	assert.Panics(t, func() { RandomTopology(NewRNG(1), 1) })
	assert.Panics(t, func() { CaterpillarTopology(0) })
	assert.Panics(t, func() { BalancedTopology(1) })
}
