package dag

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewTaxa is returned when a DAG is created over fewer than two taxa.
	ErrTooFewTaxa = errors.New("at least two taxa required")

	// ErrNilTopology is returned when a nil topology is added.
	ErrNilTopology = errors.New("nil topology")
)

// ErrDuplicateTaxon indicates a repeated name in the taxon set.
type ErrDuplicateTaxon struct {
	Name string
}

func (e *ErrDuplicateTaxon) Error() string {
	return fmt.Sprintf("duplicate taxon %q", e.Name)
}

// ErrTaxonOutOfRange indicates a topology leaf id outside the taxon set.
type ErrTaxonOutOfRange struct {
	ID    uint32
	Count int
}

func (e *ErrTaxonOutOfRange) Error() string {
	return fmt.Sprintf("leaf id %d outside taxon set of size %d", e.ID, e.Count)
}

// ErrRepeatedTaxon indicates a topology visiting the same taxon twice.
type ErrRepeatedTaxon struct {
	ID uint32
}

func (e *ErrRepeatedTaxon) Error() string {
	return fmt.Sprintf("taxon %d appears more than once", e.ID)
}

// ErrIncompleteTopology indicates a topology that does not span the taxon set.
type ErrIncompleteTopology struct {
	Got  int
	Want int
}

func (e *ErrIncompleteTopology) Error() string {
	return fmt.Sprintf("topology spans %d of %d taxa", e.Got, e.Want)
}
