package board

import "github.com/pkg/errors"

var (
	// ErrCapacity is returned when a dimension or coordinate can't be
	// represented by the grid's index type.
	ErrCapacity = errors.New("board: value exceeds index capacity")
	// ErrOutOfBounds is returned when a coordinate falls outside the grid.
	ErrOutOfBounds = errors.New("board: coordinate out of bounds")
)

// IsCapacity reports whether err was caused by ErrCapacity.
func IsCapacity(err error) bool { return errors.Cause(err) == ErrCapacity }

// IsOutOfBounds reports whether err was caused by ErrOutOfBounds.
func IsOutOfBounds(err error) bool { return errors.Cause(err) == ErrOutOfBounds }
