package bench

import "github.com/pkg/errors"

var (
	// ErrInvalidOption is returned when the runner options are out of range.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnknownPattern is returned when a dataset pattern name is not recognized.
	ErrUnknownPattern = errors.New("unknown dataset pattern")

	// ErrUnknownFormat is returned when a report format name is not recognized.
	ErrUnknownFormat = errors.New("unknown report format")

	// ErrTraversalMismatch is returned when a tree's in-order keys differ from
	// the sorted dataset.
	ErrTraversalMismatch = errors.New("in-order traversal mismatch")

	// ErrInvariantBroken is returned when a tree fails its balance or heap check.
	ErrInvariantBroken = errors.New("tree invariant broken")
)
