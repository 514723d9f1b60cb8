package chart

import (
	"github.com/ec-intl/chartly/pkg/errors"
)

// Matrix is a dense row-major grid of values, as used by contour plots.
type Matrix [][]float64

// Dims returns the number of rows and columns.
// A ragged matrix reports the first row's length; Uniform catches those.
func (m Matrix) Dims() (rows, cols int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// Uniform reports whether every row has the same length.
func (m Matrix) Uniform() bool {
	if len(m) == 0 {
		return true
	}
	w := len(m[0])
	for _, row := range m[1:] {
		if len(row) != w {
			return false
		}
	}
	return true
}

// Dataset is the data payload of a draw instruction. It replaces the
// original duck-typed "list or list of lists" convention with a tagged
// union: either one or more value series, or a grid triplet (X, Y, Z)
// for contour plots. Exactly one representation is populated.
type Dataset struct {
	series [][]float64
	grids  []Matrix
}

// Series builds a dataset holding a single value series.
func Series(xs []float64) Dataset {
	return Dataset{series: [][]float64{xs}}
}

// SeriesPair builds a dataset holding paired x/y series.
func SeriesPair(xs, ys []float64) Dataset {
	return Dataset{series: [][]float64{xs, ys}}
}

// MultiSeries builds a dataset holding any number of series.
func MultiSeries(series ...[]float64) Dataset {
	return Dataset{series: series}
}

// Grid builds a dataset holding the X, Y, Z matrices of a contour plot.
func Grid(x, y, z Matrix) Dataset {
	return Dataset{grids: []Matrix{x, y, z}}
}

// Grids builds a dataset from an arbitrary number of matrices.
// Shape validation happens at draw time, so a wrong count here still
// surfaces as a DATA_SHAPE error rather than a construction failure.
func Grids(ms ...Matrix) Dataset {
	return Dataset{grids: ms}
}

// IsGrid reports whether the dataset holds grid matrices.
func (d Dataset) IsGrid() bool {
	return len(d.grids) > 0
}

// NumSeries returns the number of value series (0 for grid datasets).
func (d Dataset) NumSeries() int {
	return len(d.series)
}

// SeriesAt returns the i'th value series.
func (d Dataset) SeriesAt(i int) []float64 {
	return d.series[i]
}

// AllSeries returns every value series.
func (d Dataset) AllSeries() [][]float64 {
	return d.series
}

// NumGrids returns the number of grid matrices (0 for series datasets).
func (d Dataset) NumGrids() int {
	return len(d.grids)
}

// GridAt returns the i'th grid matrix.
func (d Dataset) GridAt(i int) Matrix {
	return d.grids[i]
}

// Empty reports whether the dataset holds no data at all.
func (d Dataset) Empty() bool {
	return len(d.series) == 0 && len(d.grids) == 0
}

// CheckShape validates the dataset against a chart kind's arity and
// dimension requirements. Violations are DATA_SHAPE errors; they are
// surfaced to the caller and never recovered locally.
func (d Dataset) CheckShape(kind Kind) error {
	switch kind {
	case KindLine:
		// One bare series, or exactly x and y of equal length.
		if d.IsGrid() {
			return shapeErr("line plot takes value series, not grids")
		}
		switch d.NumSeries() {
		case 1:
			return nonEmptySeries(kind, d, 1)
		case 2:
			if len(d.SeriesAt(0)) != len(d.SeriesAt(1)) {
				return shapeErr("x and y series must have equal length (%d != %d)",
					len(d.SeriesAt(0)), len(d.SeriesAt(1)))
			}
			return nonEmptySeries(kind, d, 2)
		default:
			return shapeErr("line plot requires 1 series or an x/y pair, got %d", d.NumSeries())
		}

	case KindCDF, KindDensity, KindHistogram, KindProbability:
		if d.IsGrid() {
			return shapeErr("%s takes a single value series, not grids", kind)
		}
		if d.NumSeries() != 1 {
			return shapeErr("%s requires exactly 1 series, got %d", kind, d.NumSeries())
		}
		return nonEmptySeries(kind, d, 1)

	case KindBoxPlot, KindNormalCDF:
		if d.IsGrid() {
			return shapeErr("%s takes value series, not grids", kind)
		}
		if d.NumSeries() == 0 {
			return shapeErr("%s requires at least 1 series", kind)
		}
		return nonEmptySeries(kind, d, d.NumSeries())

	case KindContour:
		if !d.IsGrid() {
			return shapeErr("contour requires grid matrices")
		}
		if d.NumGrids() != 3 {
			return shapeErr("contour requires exactly 3 datasets, got %d", d.NumGrids())
		}
		r0, c0 := d.GridAt(0).Dims()
		if r0 < 2 || c0 < 2 {
			return shapeErr("contour grids must be at least 2x2, got %dx%d", r0, c0)
		}
		for i := 0; i < 3; i++ {
			g := d.GridAt(i)
			if !g.Uniform() {
				return shapeErr("contour dataset %d is ragged", i)
			}
			if r, c := g.Dims(); r != r0 || c != c0 {
				return shapeErr("contour dataset %d is %dx%d, want %dx%d", i, r, c, r0, c0)
			}
		}
		return nil

	default:
		return errors.New(errors.ErrCodeInvalidKind, "unknown chart kind: %q", kind)
	}
}

func nonEmptySeries(kind Kind, d Dataset, n int) error {
	for i := 0; i < n; i++ {
		if len(d.SeriesAt(i)) == 0 {
			return shapeErr("%s series %d is empty", kind, i)
		}
	}
	return nil
}

func shapeErr(format string, args ...any) error {
	return errors.New(errors.ErrCodeDataShape, format, args...)
}
