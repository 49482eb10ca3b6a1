package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/phylogo/sdag/tree"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// TaxonNames returns n distinct taxon names t0..t(n-1).
func TaxonNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("t%d", i)
	}
	return names
}

// RandomTopology generates a random rooted binary topology over the
// given number of taxa by repeatedly joining two random subtrees. Leaf
// ids are taxon indices; internal ids count up from the taxon count in
// join order. The same seed yields the same topology.
func RandomTopology(rng *RNG, taxa int) *tree.Node {
	if taxa < 2 {
		panic("testutil: topology needs at least two taxa")
	}

	pool := make([]*tree.Node, taxa)
	for i := range pool {
		pool[i] = tree.Leaf(uint32(i))
	}

	next := uint32(taxa)
	for len(pool) > 1 {
		i := rng.Intn(len(pool))
		j := rng.Intn(len(pool) - 1)
		if j >= i {
			j++
		}
		lo, hi := i, j
		if hi < lo {
			lo, hi = hi, lo
		}

		joined := tree.Join(pool[lo], pool[hi], next)
		next++

		pool[hi] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		pool[lo] = joined
	}
	return pool[0]
}

// RandomTopologies generates count independent random topologies over
// the same taxon set. Duplicates are possible and left in.
func RandomTopologies(rng *RNG, taxa, count int) []*tree.Node {
	out := make([]*tree.Node, count)
	for i := range out {
		out[i] = RandomTopology(rng, taxa)
	}
	return out
}

// CaterpillarTopology builds the ladder topology
// (...((t0,t1),t2)...,t(n-1)) over the given number of taxa.
func CaterpillarTopology(taxa int) *tree.Node {
	if taxa < 2 {
		panic("testutil: topology needs at least two taxa")
	}
	next := uint32(taxa)
	top := tree.Join(tree.Leaf(0), tree.Leaf(1), next)
	for i := 2; i < taxa; i++ {
		next++
		top = tree.Join(top, tree.Leaf(uint32(i)), next)
	}
	return top
}

// BalancedTopology builds a topology that splits the taxon range in
// half at every level, the bushiest shape for a given size.
func BalancedTopology(taxa int) *tree.Node {
	if taxa < 2 {
		panic("testutil: topology needs at least two taxa")
	}
	next := uint32(taxa)
	var build func(lo, hi int) *tree.Node
	build = func(lo, hi int) *tree.Node {
		if hi-lo == 1 {
			return tree.Leaf(uint32(lo))
		}
		mid := lo + (hi-lo+1)/2
		left := build(lo, mid)
		right := build(mid, hi)
		node := tree.Join(left, right, next)
		next++
		return node
	}
	return build(0, taxa)
}
