package nni

import (
	"iter"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Set is a sorted set of operations ordered by Operation.Compare. It is not
// safe for concurrent use.
type Set struct {
	tree *redblacktree.Tree
}

// NewSet creates a set holding the given operations.
func NewSet(ops ...Operation) *Set {
	s := &Set{
		tree: &redblacktree.Tree{
			Comparator: func(a, b interface{}) int {
				return a.(Operation).Compare(b.(Operation))
			},
		},
	}
	for _, op := range ops {
		s.Insert(op)
	}
	return s
}

// Insert adds op to the set and reports whether it was absent before.
func (s *Set) Insert(op Operation) bool {
	if s.Contains(op) {
		return false
	}
	s.tree.Put(op, nil)
	return true
}

// Contains reports whether op is in the set.
func (s *Set) Contains(op Operation) bool {
	_, found := s.tree.Get(op)
	return found
}

// Remove deletes op from the set and reports whether it was present.
func (s *Set) Remove(op Operation) bool {
	if !s.Contains(op) {
		return false
	}
	s.tree.Remove(op)
	return true
}

// Len returns the number of operations in the set.
func (s *Set) Len() int {
	return s.tree.Size()
}

// Operations returns the operations in ascending order.
func (s *Set) Operations() []Operation {
	ops := make([]Operation, 0, s.tree.Size())
	it := s.tree.Iterator()
	for it.Next() {
		ops = append(ops, it.Key().(Operation))
	}
	return ops
}

// All iterates over the operations in ascending order.
func (s *Set) All() iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		it := s.tree.Iterator()
		for it.Next() {
			if !yield(it.Key().(Operation)) {
				return
			}
		}
	}
}
