// Package compose implements multi-panel figure composition: a grid
// planner that tiles subplots into a near-square layout, and a Composer
// that accumulates draw instructions into per-subplot buckets and
// replays them against a Renderer.
package compose

import (
	"math"

	"github.com/ec-intl/chartly/pkg/errors"
)

// GridShape is the row/column tiling of a multi-panel figure.
type GridShape struct {
	Rows int
	Cols int
}

// Cells returns the number of grid cells.
func (s GridShape) Cells() int {
	return s.Rows * s.Cols
}

// PlanGrid computes the tiling for count subplots. The grid is as
// square as possible while always providing at least count cells.
//
// Counts below five stay on a single row. Larger counts start from the
// integer square root: a perfect square tiles exactly, anything else
// takes one extra column and sheds whole rows the overflow leaves
// unused. All arithmetic is integer floor division; the exact shapes
// are part of the contract (plan(10) is 3x4, not 4x3).
//
// A negative count is a configuration error.
func PlanGrid(count int) (GridShape, error) {
	if count < 0 {
		return GridShape{}, errors.New(errors.ErrCodeInvalidLayout, "subplot count cannot be negative: %d", count)
	}

	if count < 5 {
		return GridShape{Rows: 1, Cols: count}, nil
	}

	root := isqrt(count)
	if root*root == count {
		return GridShape{Rows: root, Cols: root}, nil
	}

	cols := root + 1
	rows := cols - (cols*cols-count)/cols
	return GridShape{Rows: rows, Cols: cols}, nil
}

// isqrt returns the integer square root of n.
func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	// Guard against floating point rounding on exact squares.
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
