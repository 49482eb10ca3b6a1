package sdag

import (
	"errors"
	"fmt"

	"github.com/phylogo/sdag/dag"
	"github.com/phylogo/sdag/tree"
)

var (
	// ErrInvalidSelection is returned when the choice map fails validation.
	ErrInvalidSelection = errors.New("invalid edge selection")

	// ErrInvalidTreeMask is returned when an extracted tree mask fails
	// validation.
	ErrInvalidTreeMask = errors.New("invalid tree mask")

	// ErrBadNewick is returned when newick text cannot be parsed or bound to
	// the taxon set.
	ErrBadNewick = errors.New("bad newick")

	// ErrBadTopology is returned when a topology does not fit the taxon set.
	ErrBadTopology = errors.New("bad topology")
)

// ErrEdgeOutOfRange indicates an edge id outside the DAG's edge range.
type ErrEdgeOutOfRange struct {
	Edge  dag.EdgeID
	Count int
}

func (e *ErrEdgeOutOfRange) Error() string {
	return fmt.Sprintf("edge %d outside range of %d edges", e.Edge, e.Count)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Newick unification.
	if errors.Is(err, tree.ErrEmptyLeafLabel) {
		return fmt.Errorf("%w: %w", ErrBadNewick, err)
	}
	var ut *tree.ErrUnknownTaxon
	if errors.As(err, &ut) {
		return fmt.Errorf("%w: %w", ErrBadNewick, err)
	}
	var nb *tree.ErrNotBinary
	if errors.As(err, &nb) {
		return fmt.Errorf("%w: %w", ErrBadNewick, err)
	}

	// Topology normalization.
	if errors.Is(err, dag.ErrNilTopology) {
		return fmt.Errorf("%w: %w", ErrBadTopology, err)
	}
	var tor *dag.ErrTaxonOutOfRange
	if errors.As(err, &tor) {
		return fmt.Errorf("%w: %w", ErrBadTopology, err)
	}
	var rt *dag.ErrRepeatedTaxon
	if errors.As(err, &rt) {
		return fmt.Errorf("%w: %w", ErrBadTopology, err)
	}
	var it *dag.ErrIncompleteTopology
	if errors.As(err, &it) {
		return fmt.Errorf("%w: %w", ErrBadTopology, err)
	}

	return err
}
