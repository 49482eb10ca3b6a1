package tree

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var (
	// ErrEmptyLeafLabel is returned when a parsed tree has an unlabeled leaf.
	ErrEmptyLeafLabel = errors.New("newick: leaf without label")
)

// ErrUnknownTaxon indicates a leaf label missing from the taxon set.
type ErrUnknownTaxon struct {
	Label string
}

func (e *ErrUnknownTaxon) Error() string {
	return fmt.Sprintf("newick: unknown taxon %q", e.Label)
}

// ErrNotBinary indicates a node whose child count is not zero or two.
type ErrNotBinary struct {
	Children int
}

func (e *ErrNotBinary) Error() string {
	return fmt.Sprintf("newick: node with %d children, want 0 or 2", e.Children)
}

// Grammar for rooted newick trees. Branch lengths and internal labels are
// accepted and discarded; quoting is not supported.
type newickDoc struct {
	Root *newickNode `parser:"@@ ';'"`
}

type newickNode struct {
	Children []*newickNode `parser:"( '(' @@ ( ',' @@ )* ')' )?"`
	Label    string        `parser:"@( Ident | Int )?"`
	Length   *string       `parser:"( ':' '-'? @( Float | Int ) )?"`
}

var newickParser = participle.MustBuild[newickDoc]()

// Labeled is a parsed tree with string labels, the intermediate form between
// newick text and an id-bearing topology.
type Labeled struct {
	Label    string
	Children []*Labeled
}

// ParseNewick parses one newick tree.
func ParseNewick(s string) (*Labeled, error) {
	doc, err := newickParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("newick: parse: %w", err)
	}
	return toLabeled(doc.Root)
}

func toLabeled(n *newickNode) (*Labeled, error) {
	if len(n.Children) == 0 && n.Label == "" {
		return nil, ErrEmptyLeafLabel
	}
	out := &Labeled{Label: n.Label}
	for _, c := range n.Children {
		lc, err := toLabeled(c)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, lc)
	}
	return out, nil
}

// IsLeaf reports whether the node has no children.
func (l *Labeled) IsLeaf() bool { return len(l.Children) == 0 }

// Leaves returns the leaf labels in tree order.
func (l *Labeled) Leaves() []string {
	var out []string
	stack := []*Labeled{l}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsLeaf() {
			out = append(out, n.Label)
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}

// Binary converts the labeled tree into a topology over the given taxa.
// Leaf ids are taxon indices; internal ids count up from len(taxa) in post
// order. Nodes with a child count other than zero or two are rejected.
func (l *Labeled) Binary(taxa []string) (*Node, error) {
	index := make(map[string]uint32, len(taxa))
	for i, name := range taxa {
		index[name] = uint32(i)
	}
	next := uint32(len(taxa))
	return l.binary(index, &next)
}

func (l *Labeled) binary(index map[string]uint32, next *uint32) (*Node, error) {
	if l.IsLeaf() {
		id, ok := index[l.Label]
		if !ok {
			return nil, &ErrUnknownTaxon{Label: l.Label}
		}
		return Leaf(id), nil
	}
	if len(l.Children) != 2 {
		return nil, &ErrNotBinary{Children: len(l.Children)}
	}
	left, err := l.Children[0].binary(index, next)
	if err != nil {
		return nil, err
	}
	right, err := l.Children[1].binary(index, next)
	if err != nil {
		return nil, err
	}
	id := *next
	*next++
	return Join(left, right, id), nil
}
