package render

import (
	"image/color"

	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/ec-intl/chartly/pkg/chart"
	"github.com/ec-intl/chartly/pkg/errors"
)

// grid adapts the X/Y/Z matrix triplet of a contour dataset to the
// plotter.GridXYZ interface. Coordinates come from the first row of X
// and the first column of Y, matching the meshgrid convention the
// matrices are built with.
type grid struct {
	x, y, z chart.Matrix
}

func (g grid) Dims() (c, r int) {
	rows, cols := g.z.Dims()
	return cols, rows
}

func (g grid) Z(c, r int) float64 { return g.z[r][c] }
func (g grid) X(c int) float64    { return g.x[0][c] }
func (g grid) Y(r int) float64    { return g.y[r][0] }

// uniformPalette colors every contour level the same.
type uniformPalette struct {
	col color.Color
	n   int
}

func (p uniformPalette) Colors() []color.Color {
	cs := make([]color.Color, p.n)
	for i := range cs {
		cs[i] = p.col
	}
	return cs
}

// levelsBetween returns n contour levels strictly inside [lo, hi].
func levelsBetween(lo, hi float64, n int) []float64 {
	return vec.Linspace(lo, hi, n+2)[1 : n+1]
}

func drawContour(s *surface, inst chart.Instruction) error {
	cfg := inst.Config.Contour.WithDefaults()
	if cfg.Levels < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "contour levels must be positive, got %d", cfg.Levels)
	}

	g := grid{x: inst.Data.GridAt(0), y: inst.Data.GridAt(1), z: inst.Data.GridAt(2)}

	zLo, zHi := g.z[0][0], g.z[0][0]
	for _, row := range g.z {
		for _, v := range row {
			if v < zLo {
				zLo = v
			}
			if v > zHi {
				zHi = v
			}
		}
	}
	if zHi == zLo {
		zHi = zLo + 1
	}

	col, err := ParseColor(cfg.LineColor)
	if err != nil {
		return err
	}
	levels := levelsBetween(zLo, zHi, cfg.Levels)

	// Filled adds a heat map under the contour lines.
	if cfg.Filled {
		s.plot.Add(plotter.NewHeatMap(g, palette.Heat(cfg.Levels, 1)))
	}
	s.plot.Add(plotter.NewContour(g, levels, uniformPalette{col: col, n: cfg.Levels}))
	return nil
}
