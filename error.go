package ordtree

import "github.com/pkg/errors"

var (
	// ErrUnknownKind is returned when a tree kind name is not recognized.
	ErrUnknownKind = errors.New("unknown tree kind")
)
