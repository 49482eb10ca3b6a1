package nni

// Role identifies one of the four clades an operation is made of: the two
// clades of the parent subsplit and the two clades of the child subsplit.
// The focal clade is the parent clade the child attaches to.
type Role uint8

const (
	ParentFocal Role = iota
	ParentSister
	ChildLeft
	ChildRight
)

func (r Role) String() string {
	switch r {
	case ParentFocal:
		return "parent focal"
	case ParentSister:
		return "parent sister"
	case ChildLeft:
		return "left child"
	case ChildRight:
		return "right child"
	default:
		return "unknown"
	}
}

// CladeMap records, for each clade role of a pre-NNI operation, the role its
// clade occupies in a neighboring post-NNI operation. It is indexed by the
// pre-NNI role.
type CladeMap [4]Role
