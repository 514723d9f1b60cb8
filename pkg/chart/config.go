package chart

import "fmt"

// Default customization values per chart kind. These mirror the
// documented defaults of every kind's config struct below.
const (
	DefaultLineColor        = "navy"
	DefaultLineStyle        = "solid"
	DefaultCDFColor         = "dodgerblue"
	DefaultDensityColor     = "red"
	DefaultHistogramColor   = "plum"
	DefaultHistogramBins    = 20
	DefaultProbabilityColor = "orangered"
	DefaultNormalCDFColor   = "green"
	DefaultContourColor     = "black"
	DefaultContourLevels    = 10
)

// Line styles.
const (
	LineSolid  = "solid"
	LineDashed = "dashed"
	LineDotted = "dotted"
)

// LineConfig customizes a line plot.
//
// Defaults: Color "navy", Style "solid".
type LineConfig struct {
	Color string // line color
	Style string // line style: solid, dashed, dotted
}

// WithDefaults returns the config with zero fields replaced by defaults.
func (c LineConfig) WithDefaults() LineConfig {
	if c.Color == "" {
		c.Color = DefaultLineColor
	}
	if c.Style == "" {
		c.Style = DefaultLineStyle
	}
	return c
}

// CDFConfig customizes a CDF plot.
//
// Defaults: Color "dodgerblue".
type CDFConfig struct {
	Color string
}

// WithDefaults returns the config with zero fields replaced by defaults.
func (c CDFConfig) WithDefaults() CDFConfig {
	if c.Color == "" {
		c.Color = DefaultCDFColor
	}
	return c
}

// DensityConfig customizes a kernel density plot.
//
// Defaults: Color "red", no fill, empty label.
type DensityConfig struct {
	Color string
	Fill  bool   // shade the area under the density curve
	Label string // legend entry
}

// WithDefaults returns the config with zero fields replaced by defaults.
func (c DensityConfig) WithDefaults() DensityConfig {
	if c.Color == "" {
		c.Color = DefaultDensityColor
	}
	return c
}

// BoxPlotConfig customizes a box plot.
//
// Defaults: outliers shown, box labels "Dataset 1".."Dataset n".
type BoxPlotConfig struct {
	HideOutliers bool     // suppress outlier fliers
	BoxLabels    []string // one label per series
}

// WithDefaultLabels returns the config with BoxLabels filled for n series.
func (c BoxPlotConfig) WithDefaultLabels(n int) BoxPlotConfig {
	if len(c.BoxLabels) == 0 {
		labels := make([]string, n)
		for i := range labels {
			labels[i] = fmt.Sprintf("Dataset %d", i+1)
		}
		c.BoxLabels = labels
	}
	return c
}

// HistogramConfig customizes a histogram.
//
// Defaults: 20 bins, Color "plum", range derived from the data.
// Counts are weighted to fractions of the sample so bar heights sum to 1.
type HistogramConfig struct {
	Bins     int    // number of bins
	Color    string // bar fill color
	Min, Max float64
	HasRange bool // clamp binning to [Min, Max]
}

// WithDefaults returns the config with zero fields replaced by defaults.
func (c HistogramConfig) WithDefaults() HistogramConfig {
	if c.Bins == 0 {
		c.Bins = DefaultHistogramBins
	}
	if c.Color == "" {
		c.Color = DefaultHistogramColor
	}
	return c
}

// ProbabilityConfig customizes a normal probability plot.
//
// Defaults: Color "orangered" for the scatter markers.
type ProbabilityConfig struct {
	Color string
}

// WithDefaults returns the config with zero fields replaced by defaults.
func (c ProbabilityConfig) WithDefaults() ProbabilityConfig {
	if c.Color == "" {
		c.Color = DefaultProbabilityColor
	}
	return c
}

// NormalCDFConfig customizes a normal-CDF overlay plot.
//
// Defaults: Color "green" for the sample curves.
type NormalCDFConfig struct {
	Color string
}

// WithDefaults returns the config with zero fields replaced by defaults.
func (c NormalCDFConfig) WithDefaults() NormalCDFConfig {
	if c.Color == "" {
		c.Color = DefaultNormalCDFColor
	}
	return c
}

// ContourConfig customizes a contour plot.
//
// Defaults: unfilled, LineColor "black", 10 levels, level labels drawn.
type ContourConfig struct {
	Filled    bool   // fill between levels instead of drawing lines
	LineColor string // contour line color (unfilled mode)
	Levels    int    // number of contour levels
	NoLabels  bool   // suppress level labels
}

// WithDefaults returns the config with zero fields replaced by defaults.
func (c ContourConfig) WithDefaults() ContourConfig {
	if c.LineColor == "" {
		c.LineColor = DefaultContourColor
	}
	if c.Levels == 0 {
		c.Levels = DefaultContourLevels
	}
	return c
}

// Config is the customization envelope of a draw instruction. Only the
// member matching the instruction's kind is consulted; the rest are
// ignored. The zero Config yields every kind's documented defaults.
type Config struct {
	Line        LineConfig
	CDF         CDFConfig
	Density     DensityConfig
	BoxPlot     BoxPlotConfig
	Histogram   HistogramConfig
	Probability ProbabilityConfig
	NormalCDF   NormalCDFConfig
	Contour     ContourConfig
}
