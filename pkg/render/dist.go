package render

import (
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ec-intl/chartly/pkg/chart"
	"github.com/ec-intl/chartly/pkg/errors"
	"github.com/ec-intl/chartly/pkg/stats"
)

// fillAlpha is the opacity of shaded density regions.
const fillAlpha = 0x59

// withAlpha returns the color with its opacity replaced.
func withAlpha(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func drawDensity(s *surface, inst chart.Instruction) error {
	cfg := inst.Config.Density.WithDefaults()
	col, err := ParseColor(cfg.Color)
	if err != nil {
		return err
	}

	xs, ds := stats.DensityCurve(inst.Data.SeriesAt(0), curveSamples)
	ln, err := plotter.NewLine(pairXY(xs, ds))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "density plotter")
	}
	ln.Color = col
	s.plot.Add(ln)
	addLegend(s, inst.Labels, cfg.Label, ln)

	if cfg.Fill {
		// Close the curve along the baseline to shade under it.
		pts := pairXY(xs, ds)
		pts = append(pts, plotter.XY{X: xs[len(xs)-1]}, plotter.XY{X: xs[0]})
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "density fill")
		}
		poly.Color = withAlpha(col, fillAlpha)
		poly.LineStyle.Color = color.Transparent
		s.plot.Add(poly)
	}
	return nil
}

func drawHistogram(s *surface, inst chart.Instruction) error {
	cfg := inst.Config.Histogram.WithDefaults()
	col, err := ParseColor(cfg.Color)
	if err != nil {
		return err
	}
	if cfg.Bins < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "histogram bins must be positive, got %d", cfg.Bins)
	}

	vals := inst.Data.SeriesAt(0)
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if cfg.HasRange {
		lo, hi = cfg.Min, cfg.Max
		if hi <= lo {
			return errors.New(errors.ErrCodeInvalidConfig,
				"histogram range max %v must exceed min %v", cfg.Max, cfg.Min)
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	// Bins carry the fraction of the sample, so bar heights sum to 1
	// regardless of sample size. Values outside an explicit range are
	// dropped, not clamped.
	bins := make([]plotter.HistogramBin, cfg.Bins)
	width := (hi - lo) / float64(cfg.Bins)
	for i := range bins {
		bins[i].Min = lo + float64(i)*width
		bins[i].Max = lo + float64(i+1)*width
	}
	frac := 1 / float64(len(vals))
	for _, v := range vals {
		if v < lo || v > hi {
			continue
		}
		idx := int((v - lo) / width)
		if idx == len(bins) {
			idx--
		}
		bins[idx].Weight += frac
	}

	h := &plotter.Histogram{
		Bins:      bins,
		Width:     hi - lo,
		FillColor: col,
		LineStyle: draw.LineStyle{Color: col, Width: vg.Points(0.5)},
	}
	s.plot.Add(h)
	return nil
}

// boxWidth is the on-canvas width of each box in a box plot.
var boxWidth = vg.Points(25)

func drawBoxPlot(s *surface, inst chart.Instruction) error {
	n := inst.Data.NumSeries()
	cfg := inst.Config.BoxPlot.WithDefaultLabels(n)
	if len(cfg.BoxLabels) != n {
		return errors.New(errors.ErrCodeInvalidConfig,
			"boxplot has %d labels for %d series", len(cfg.BoxLabels), n)
	}

	for i := 0; i < n; i++ {
		box, err := plotter.NewBoxPlot(boxWidth, float64(i), plotter.Values(inst.Data.SeriesAt(i)))
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "box plotter")
		}
		if cfg.HideOutliers {
			box.GlyphStyle.Radius = 0
		}
		s.plot.Add(box)
	}
	s.plot.NominalX(cfg.BoxLabels...)
	return nil
}

func drawProbability(s *surface, inst chart.Instruction) error {
	cfg := inst.Config.Probability.WithDefaults()
	col, err := ParseColor(cfg.Color)
	if err != nil {
		return err
	}

	obs := append([]float64(nil), inst.Data.SeriesAt(0)...)
	sort.Float64s(obs)
	zs := stats.NormalQuantiles(len(obs))

	sc, err := plotter.NewScatter(pairXY(zs, obs))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "probability scatter")
	}
	sc.GlyphStyle.Color = col
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	s.plot.Add(sc)
	addLegend(s, inst.Labels, inst.Labels.LineLabel, sc)

	// Normal fit through the quantile span: y = mu + sigma*z.
	mu, sigma := stats.MeanStdDev(obs)
	zLo, zHi := zs[0], zs[len(zs)-1]
	fit, err := plotter.NewLine(plotter.XYs{
		{X: zLo, Y: mu + sigma*zLo},
		{X: zHi, Y: mu + sigma*zHi},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "probability fit line")
	}
	fit.Color = color.Gray{Y: 0x50}
	fit.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	s.plot.Add(fit)

	if inst.Labels.XLabel == "" {
		s.plot.X.Label.Text = "Theoretical Quantiles"
	}
	if inst.Labels.YLabel == "" {
		s.plot.Y.Label.Text = "Ordered Values"
	}
	return nil
}
