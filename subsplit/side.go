package subsplit

// Side identifies one of the two clades of a subsplit, or equivalently which
// parent clade a DAG edge descends through.
type Side uint8

const (
	// Left is the side of the greater clade under Clade.Compare.
	Left Side = iota
	// Right is the side of the lesser clade.
	Right
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}
