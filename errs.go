package conform

import "fmt"

// ErrorKind discriminates the ways a candidate can fail to reproduce its
// reference.
type ErrorKind int

const (
	// TypeMismatch: the two nodes classify as different kinds.
	TypeMismatch ErrorKind = iota
	// VariantMismatch: both object-like, but their variant tags differ.
	VariantMismatch
	// ValueMismatch: primitives of the same kind with different values.
	ValueMismatch
	// MissingField: a reference key with no counterpart in the candidate.
	MissingField
)

func (k ErrorKind) String() string {
	s, ok := map[ErrorKind]string{
		TypeMismatch:    "type mismatch",
		VariantMismatch: "variant mismatch",
		ValueMismatch:   "value mismatch",
		MissingField:    "missing field",
	}[k]
	if ok {
		return s
	}
	return "<unknown error kind>"
}

// Error records a single failed comparison. Path is the dotted keypath
// from the root to the failing node ("" at the root itself) and Depth is
// the number of path segments plus one, bounding how much of the offending
// subtree a diagnostic renderer should expand.
//
// Exactly one Error is produced per failing Check; the comparison aborts
// as soon as it is constructed.
type Error struct {
	Kind  ErrorKind
	Path  string
	Depth int
	Msg   string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s at root: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Msg)
}
