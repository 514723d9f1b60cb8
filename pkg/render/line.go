package render

import (
	"image/color"
	"sort"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ec-intl/chartly/pkg/chart"
	"github.com/ec-intl/chartly/pkg/errors"
	"github.com/ec-intl/chartly/pkg/stats"
)

// curveSamples is the resolution of computed curves (density, reference
// normal CDF).
const curveSamples = 200

// dashesFor maps a line style name to a vg dash pattern. Solid is nil.
func dashesFor(style string) ([]vg.Length, error) {
	switch style {
	case chart.LineSolid:
		return nil, nil
	case chart.LineDashed:
		return []vg.Length{vg.Points(6), vg.Points(3)}, nil
	case chart.LineDotted:
		return []vg.Length{vg.Points(1), vg.Points(2)}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown line style: %q", style)
	}
}

// pairXY zips two equal-length series into plot points.
func pairXY(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// indexXY pairs a bare series against its indices, the convention for a
// one-series line plot.
func indexXY(ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i].X = float64(i)
		pts[i].Y = y
	}
	return pts
}

func drawLine(s *surface, inst chart.Instruction) error {
	cfg := inst.Config.Line.WithDefaults()
	col, err := ParseColor(cfg.Color)
	if err != nil {
		return err
	}
	dashes, err := dashesFor(cfg.Style)
	if err != nil {
		return err
	}

	var pts plotter.XYs
	if inst.Data.NumSeries() == 1 {
		pts = indexXY(inst.Data.SeriesAt(0))
	} else {
		pts = pairXY(inst.Data.SeriesAt(0), inst.Data.SeriesAt(1))
	}

	ln, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "line plotter")
	}
	ln.Color = col
	ln.Dashes = dashes

	s.plot.Add(ln)
	addLegend(s, inst.Labels, inst.Labels.LineLabel, ln)
	return nil
}

// cdfReferenceLevels are the horizontal guide lines drawn across every
// empirical CDF plot.
var cdfReferenceLevels = []float64{0.1, 0.5, 0.9}

func drawCDF(s *surface, inst chart.Instruction) error {
	cfg := inst.Config.CDF.WithDefaults()
	col, err := ParseColor(cfg.Color)
	if err != nil {
		return err
	}

	xs, ys := stats.EmpiricalCDF(inst.Data.SeriesAt(0))
	ln, err := plotter.NewLine(pairXY(xs, ys))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "cdf plotter")
	}
	ln.Color = col
	s.plot.Add(ln)
	addLegend(s, inst.Labels, inst.Labels.LineLabel, ln)

	lo, hi := xs[0], xs[len(xs)-1]
	for _, level := range cdfReferenceLevels {
		ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: level}, {X: hi, Y: level}})
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "cdf reference line")
		}
		ref.Color = color.Gray{Y: 0x80}
		ref.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		s.plot.Add(ref)
	}
	return nil
}

func drawNormalCDF(s *surface, inst chart.Instruction) error {
	cfg := inst.Config.NormalCDF.WithDefaults()
	col, err := ParseColor(cfg.Color)
	if err != nil {
		return err
	}

	// Each sample is standardized and plotted as its empirical CDF in
	// z space, so every series lands on the same axis as the reference.
	for i := 0; i < inst.Data.NumSeries(); i++ {
		zs := stats.Standardize(inst.Data.SeriesAt(i))
		sort.Float64s(zs)
		ps := stats.PlottingPositions(len(zs))

		ln, err := plotter.NewLine(pairXY(zs, ps))
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "sample cdf plotter")
		}
		ln.Color = col
		s.plot.Add(ln)
		if i == 0 {
			addLegend(s, inst.Labels, inst.Labels.LineLabel, ln)
		}
	}

	zs, ps := stats.StandardNormalCurve(curveSamples)
	ref, err := plotter.NewLine(pairXY(zs, ps))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "normal reference plotter")
	}
	ref.Color = color.Black
	ref.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	s.plot.Add(ref)
	addLegend(s, inst.Labels, "standard normal", ref)
	return nil
}
