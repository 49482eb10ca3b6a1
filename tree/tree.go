// Package tree provides rooted binary topology values and newick text
// handling. Topologies carry numeric node ids only; leaf ids are taxon
// indices and internal ids are synthetic, counted up from the taxon count.
package tree

import (
	"fmt"
	"iter"
	"strings"
)

// Node is a node of a rooted binary topology. Leaves have no children;
// internal nodes always have exactly two. Nodes are immutable after
// construction.
type Node struct {
	id    uint32
	left  *Node
	right *Node
}

// Leaf creates a leaf node with the given taxon id.
func Leaf(id uint32) *Node {
	return &Node{id: id}
}

// Join creates an internal node over two subtrees.
func Join(left, right *Node, id uint32) *Node {
	if left == nil || right == nil {
		panic("tree: join of nil subtree")
	}
	return &Node{id: id, left: left, right: right}
}

// ID returns the node id.
func (n *Node) ID() uint32 { return n.id }

// Left returns the left subtree, nil for leaves.
func (n *Node) Left() *Node { return n.left }

// Right returns the right subtree, nil for leaves.
func (n *Node) Right() *Node { return n.right }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return n.left == nil && n.right == nil }

// LeafCount returns the number of leaves below and including the node.
func (n *Node) LeafCount() int {
	count := 0
	for v := range n.PostOrder() {
		if v.IsLeaf() {
			count++
		}
	}
	return count
}

// PostOrder iterates the subtree in post order (children before parents)
// using an explicit stack.
func (n *Node) PostOrder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil {
			return
		}
		type frame struct {
			node     *Node
			expanded bool
		}
		stack := []frame{{node: n}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.expanded || f.node.IsLeaf() {
				if !yield(f.node) {
					return
				}
				continue
			}
			stack = append(stack,
				frame{node: f.node, expanded: true},
				frame{node: f.node.right},
				frame{node: f.node.left},
			)
		}
	}
}

// Equal reports structural equality including node ids.
func (n *Node) Equal(o *Node) bool {
	type pair struct{ a, b *Node }
	stack := []pair{{n, o}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a == nil || p.b == nil {
			if p.a != p.b {
				return false
			}
			continue
		}
		if p.a.id != p.b.id {
			return false
		}
		stack = append(stack, pair{p.a.left, p.b.left}, pair{p.a.right, p.b.right})
	}
	return true
}

// Newick renders the topology as a newick string with a trailing semicolon.
// Leaf names come from the name function; internal nodes stay unlabeled.
func (n *Node) Newick(name func(id uint32) string) string {
	var sb strings.Builder
	n.writeNewick(&sb, name)
	sb.WriteByte(';')
	return sb.String()
}

func (n *Node) writeNewick(sb *strings.Builder, name func(id uint32) string) {
	if n.IsLeaf() {
		sb.WriteString(name(n.id))
		return
	}
	sb.WriteByte('(')
	n.left.writeNewick(sb, name)
	sb.WriteByte(',')
	n.right.writeNewick(sb, name)
	sb.WriteByte(')')
}

// String renders the topology with bare node ids as leaf names.
func (n *Node) String() string {
	return n.Newick(func(id uint32) string { return fmt.Sprintf("%d", id) })
}
