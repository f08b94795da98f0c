package grid

import (
	"fmt"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
)

// BoundsTooSmallError reports that the inflated molecule bounding box
// could not hold any atom, per spec.md §4.3.
type BoundsTooSmallError struct {
	Requested, Available int
}

func (e *BoundsTooSmallError) Error() string {
	return fmt.Sprintf("grid: bounds too small: requested %d voxels along an axis, grid has %d", e.Requested, e.Available)
}

func (e *BoundsTooSmallError) Unwrap() error { return ausaxserr.ErrConfigurationError }

// OutOfBoundsError reports atom placement outside the grid under strict
// mode, per spec.md §4.3.
type OutOfBoundsError struct {
	X, Y, Z int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("grid: voxel (%d,%d,%d) out of bounds", e.X, e.Y, e.Z)
}

func (e *OutOfBoundsError) Unwrap() error { return ausaxserr.ErrOutOfBounds }
