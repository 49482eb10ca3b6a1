package sdag

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/phylogo/sdag/choicemap"
	"github.com/phylogo/sdag/dag"
	"github.com/phylogo/sdag/nni"
	"github.com/phylogo/sdag/tree"
)

// Space owns a subsplit DAG and the choice map selected over it, keeping the
// two synchronized across growth. Methods are safe for concurrent use;
// growth takes the write lock, extraction and enumeration share a read lock.
type Space struct {
	mu     sync.RWMutex
	d      *dag.DAG
	m      *choicemap.Map
	logger *Logger
}

// NewSpace creates an empty space over the given taxon names.
func NewSpace(taxa []string, optFns ...Option) (*Space, error) {
	opts := applyOptions(optFns)

	d, err := dag.New(taxa)
	if err != nil {
		return nil, translateError(err)
	}

	return &Space{
		d:      d,
		m:      choicemap.New(d, choicemap.WithLogger(opts.logger.Logger)),
		logger: opts.logger.WithTaxa(d.TaxonCount()),
	}, nil
}

// Taxa returns the taxon names, fixed at construction.
func (s *Space) Taxa() []string {
	return s.d.Taxa()
}

// DAG returns the underlying DAG. The reference is shared, not a copy:
// callers must not mutate it, and ids observed from it may be renumbered by
// a concurrent AddTree.
func (s *Space) DAG() *dag.DAG {
	return s.d
}

// ChoiceMap returns the underlying choice map, under the same sharing
// contract as DAG.
func (s *Space) ChoiceMap() *choicemap.Map {
	return s.m
}

// Stats summarizes a space.
type Stats struct {
	Taxa    int
	Nodes   int
	Edges   int
	Version uint64
}

// Stats returns the current DAG dimensions and mutation version.
func (s *Space) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Taxa:    s.d.TaxonCount(),
		Nodes:   s.d.NodeCount(),
		Edges:   s.d.EdgeCount(),
		Version: s.d.Version(),
	}
}

// AddTree grows the DAG with a rooted binary topology over the space's taxa
// and re-synchronizes the choice map: surviving choices are carried through
// the delta's reindexer and the delta's new edges get first-edge selection.
func (s *Space) AddTree(t *tree.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delta, err := s.d.AddTopology(t)
	if err != nil {
		err = translateError(err)
		s.logger.LogAddTree(0, s.d.EdgeCount(), err)
		return err
	}

	s.m.Grow(delta.EdgeCount, delta.Reindexer)
	for _, e := range delta.NewEdges {
		s.m.SelectFirstAt(e)
	}

	s.logger.LogAddTree(len(delta.NewEdges), delta.EdgeCount, nil)
	return nil
}

// AddNewick parses a rooted binary newick string, binds its leaf labels to
// the space's taxa, and adds the topology.
func (s *Space) AddNewick(text string) error {
	parsed, err := tree.ParseNewick(text)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrBadNewick, err)
		s.logger.LogAddTree(0, 0, err)
		return err
	}

	t, err := parsed.Binary(s.d.Taxa())
	if err != nil {
		err = translateError(err)
		s.logger.LogAddTree(0, 0, err)
		return err
	}

	return s.AddTree(t)
}

// Topology extracts the tree selected around the given central edge.
func (s *Space) Topology(e dag.EdgeID) (*tree.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.topologyLocked(e)
	s.logger.LogExtract(e, err)
	return t, err
}

func (s *Space) topologyLocked(e dag.EdgeID) (*tree.Node, error) {
	if int(e) >= s.d.EdgeCount() {
		return nil, &ErrEdgeOutOfRange{Edge: e, Count: s.d.EdgeCount()}
	}
	return s.m.ExtractTopology(e), nil
}

// Topologies extracts the trees selected around several central edges in
// parallel. The result is index-aligned with edges; the first failure
// cancels the remaining work.
func (s *Space) Topologies(ctx context.Context, edges []dag.EdgeID) ([]*tree.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*tree.Node, len(edges))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, e := range edges {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := s.topologyLocked(e)
			if err != nil {
				return err
			}
			out[i] = t
			return nil
		})
	}

	err := g.Wait()
	s.logger.LogExtractBatch(ctx, len(edges), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Newick extracts the tree selected around the given central edge and
// renders it with the space's taxon names.
func (s *Space) Newick(e dag.EdgeID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.topologyLocked(e)
	s.logger.LogExtract(e, err)
	if err != nil {
		return "", err
	}

	taxa := s.d.Taxa()
	return t.Newick(func(id uint32) string {
		if int(id) < len(taxa) {
			return taxa[id]
		}
		return ""
	}), nil
}

// CandidateNNIs enumerates the rearrangements adjacent to the space: for
// every edge with a non-root parent and a non-leaf child, both swap
// directions, skipping operations already present as DAG edges.
func (s *Space) CandidateNNIs() *nni.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := nni.NewSet()
	for id, edge := range s.d.Edges() {
		if s.d.IsEdgeRoot(id) || s.d.IsEdgeLeaf(id) {
			continue
		}
		parent := s.d.Node(edge.Parent()).Subsplit()
		child := s.d.Node(edge.Child()).Subsplit()
		for _, swapRight := range []bool{false, true} {
			op := nni.FromSubsplits(parent, child, swapRight)
			if s.d.ContainsEdge(op.Parent, op.Child) {
				continue
			}
			set.Insert(op)
		}
	}

	s.logger.LogCandidates(s.d.EdgeCount(), set.Len())
	return set
}

// Validate checks the full selection and the tree mask of every root edge,
// returning the first failure. Diagnostics go to the configured logger.
func (s *Space) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err := s.validateLocked()
	s.logger.LogValidate(err)
	return err
}

func (s *Space) validateLocked() error {
	if !s.m.SelectionIsValid(false) {
		return fmt.Errorf("%w: selection over %d edges", ErrInvalidSelection, s.d.EdgeCount())
	}
	for id := range s.d.Edges() {
		if !s.d.IsEdgeRoot(id) {
			continue
		}
		mask := s.m.ExtractTreeMask(id)
		if !s.m.TreeMaskIsValid(mask, false) {
			return fmt.Errorf("%w: root edge %d", ErrInvalidTreeMask, id)
		}
	}
	return nil
}
