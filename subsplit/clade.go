package subsplit

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// Clade is a fixed-universe set of taxa, backed by a word array.
// A clade created for a universe of n taxa addresses taxon indices 0..n-1.
// All operations are pure; a Clade never mutates after construction.
type Clade struct {
	words []uint64
	n     int
}

// NewClade creates an empty clade over a universe of n taxa.
func NewClade(n int) Clade {
	return Clade{
		words: make([]uint64, (n+63)/64),
		n:     n,
	}
}

// CladeOf creates a clade over a universe of n taxa containing the given taxa.
func CladeOf(n int, taxa ...int) Clade {
	c := NewClade(n)
	for _, t := range taxa {
		c.checkTaxon(t)
		c.words[t>>6] |= 1 << (t & 63)
	}
	return c
}

// FullClade creates the clade containing every taxon of the universe.
func FullClade(n int) Clade {
	c := NewClade(n)
	for i := range c.words {
		c.words[i] = ^uint64(0)
	}
	if rem := n & 63; rem != 0 && len(c.words) > 0 {
		c.words[len(c.words)-1] = (1 << rem) - 1
	}
	return c
}

// Size returns the universe size (number of addressable taxa).
func (c Clade) Size() int { return c.n }

// Count returns the number of taxa in the clade.
func (c Clade) Count() int {
	count := 0
	for _, w := range c.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// IsEmpty returns true if the clade contains no taxa.
func (c Clade) IsEmpty() bool {
	for _, w := range c.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Test reports whether the clade contains the given taxon.
func (c Clade) Test(taxon int) bool {
	c.checkTaxon(taxon)
	return c.words[taxon>>6]&(1<<(taxon&63)) != 0
}

// Add returns a copy of the clade with the given taxon included.
func (c Clade) Add(taxon int) Clade {
	c.checkTaxon(taxon)
	out := c.Clone()
	out.words[taxon>>6] |= 1 << (taxon & 63)
	return out
}

// Union returns the union of two clades over the same universe.
func (c Clade) Union(o Clade) Clade {
	c.checkUniverse(o)
	out := c.Clone()
	for i, w := range o.words {
		out.words[i] |= w
	}
	return out
}

// Intersects reports whether the two clades share at least one taxon.
func (c Clade) Intersects(o Clade) bool {
	c.checkUniverse(o)
	for i, w := range c.words {
		if w&o.words[i] != 0 {
			return true
		}
	}
	return false
}

// Disjoint reports whether the two clades share no taxa.
func (c Clade) Disjoint(o Clade) bool {
	return !c.Intersects(o)
}

// SubsetOf reports whether every taxon of c is also in o.
func (c Clade) SubsetOf(o Clade) bool {
	c.checkUniverse(o)
	for i, w := range c.words {
		if w&^o.words[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether the two clades contain exactly the same taxa.
func (c Clade) Equal(o Clade) bool {
	c.checkUniverse(o)
	for i, w := range c.words {
		if w != o.words[i] {
			return false
		}
	}
	return true
}

// Compare orders clades lexicographically by taxon membership, with taxon 0
// most significant and a set bit ordering above an unset one. It returns a
// negative value if c < o, zero if equal and a positive value if c > o.
// Under this order the full clade is the maximum and the empty clade the
// minimum of a universe.
func (c Clade) Compare(o Clade) int {
	c.checkUniverse(o)
	for i, w := range c.words {
		if w == o.words[i] {
			continue
		}
		// The lowest differing bit is the smallest, most significant taxon.
		low := (w ^ o.words[i]) & -(w ^ o.words[i])
		if w&low != 0 {
			return 1
		}
		return -1
	}
	return 0
}

// Taxa iterates the taxa of the clade in ascending index order.
func (c Clade) Taxa() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, w := range c.words {
			for w != 0 {
				t := i<<6 + bits.TrailingZeros64(w)
				if !yield(t) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Singleton returns the sole taxon of a one-taxon clade.
func (c Clade) Singleton() (int, bool) {
	if c.Count() != 1 {
		return 0, false
	}
	for t := range c.Taxa() {
		return t, true
	}
	return 0, false
}

// Clone returns a deep copy of the clade.
func (c Clade) Clone() Clade {
	out := Clade{
		words: make([]uint64, len(c.words)),
		n:     c.n,
	}
	copy(out.words, c.words)
	return out
}

// Key returns a byte-stable representation usable as a map key.
// Keys are only comparable between clades of the same universe.
func (c Clade) Key() string {
	b := make([]byte, 8*len(c.words))
	for i, w := range c.words {
		binary.LittleEndian.PutUint64(b[i*8:], w)
	}
	return string(b)
}

// String renders the clade as a bitstring with taxon 0 leftmost.
func (c Clade) String() string {
	var sb strings.Builder
	sb.Grow(c.n)
	for t := 0; t < c.n; t++ {
		if c.Test(t) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Pretty renders the clade as a comma-joined list of taxon names.
func (c Clade) Pretty(names []string) string {
	parts := make([]string, 0, c.Count())
	for t := range c.Taxa() {
		if t < len(names) {
			parts = append(parts, names[t])
		} else {
			parts = append(parts, fmt.Sprintf("t%d", t))
		}
	}
	return strings.Join(parts, ",")
}

func (c Clade) checkTaxon(taxon int) {
	if taxon < 0 || taxon >= c.n {
		panic(fmt.Sprintf("subsplit: taxon %d outside universe of size %d", taxon, c.n))
	}
}

func (c Clade) checkUniverse(o Clade) {
	if c.n != o.n {
		panic(fmt.Sprintf("subsplit: universe mismatch: %d vs %d taxa", c.n, o.n))
	}
}
