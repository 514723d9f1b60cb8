// Package figure loads figure documents: TOML files declaring the
// subplots, overlays, and figure-level labeling of one render. A
// document is the declarative mirror of the composer protocol; its
// subplot tables become buckets replayed in order.
package figure

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ec-intl/chartly/pkg/chart"
	"github.com/ec-intl/chartly/pkg/errors"
)

// Document is a parsed figure document.
type Document struct {
	Title     string   `toml:"title"`
	XLabel    string   `toml:"x_label"`
	YLabel    string   `toml:"y_label"`
	ShareAxes bool     `toml:"share_axes"`
	Formats   []string `toml:"formats"`
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	DPI       int      `toml:"dpi"`

	Subplots []Subplot `toml:"subplot"`

	raw []byte // original document bytes, for cache keys
	dir string // directory data_file paths resolve against
}

// Subplot is one ordered bucket of overlays.
type Subplot struct {
	Overlays []Overlay `toml:"overlay"`
}

// Overlay declares one draw instruction. Data comes inline (rows of
// series values, or x/y/z matrices for contour) or from a CSV file
// whose columns become series.
type Overlay struct {
	Kind     string      `toml:"kind"`
	Data     [][]float64 `toml:"data"`
	DataFile string      `toml:"data_file"`
	X        [][]float64 `toml:"x"`
	Y        [][]float64 `toml:"y"`
	Z        [][]float64 `toml:"z"`

	Labels Labels `toml:"labels"`
	Config Config `toml:"config"`
}

// Labels is the per-overlay labeling table.
type Labels struct {
	Title      string `toml:"title"`
	XLabel     string `toml:"x_label"`
	YLabel     string `toml:"y_label"`
	LineLabel  string `toml:"line_label"`
	HideLegend bool   `toml:"hide_legend"`
	Scale      string `toml:"scale"`
	LogBase    int    `toml:"log_base"`
}

// Config is the flattened per-overlay customization table. Only the
// fields meaningful for the overlay's kind are consulted.
type Config struct {
	Color        string   `toml:"color"`
	Style        string   `toml:"style"`
	Fill         bool     `toml:"fill"`
	Label        string   `toml:"label"`
	Bins         int      `toml:"bins"`
	Min          float64  `toml:"min"`
	Max          float64  `toml:"max"`
	HasRange     bool     `toml:"has_range"`
	HideOutliers bool     `toml:"hide_outliers"`
	BoxLabels    []string `toml:"box_labels"`
	Filled       bool     `toml:"filled"`
	LineColor    string   `toml:"line_color"`
	Levels       int      `toml:"levels"`
	NoLabels     bool     `toml:"no_labels"`
}

// Load reads and parses a figure document from disk. data_file paths
// inside the document resolve relative to the document's directory.
func Load(path string) (*Document, error) {
	if err := errors.ValidateFigurePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure document %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "read figure document %s", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.dir = filepath.Dir(path)
	return doc, nil
}

// Parse parses a figure document from raw TOML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "parse figure document")
	}
	doc.raw = data
	doc.dir = "."
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Raw returns the original document bytes, for content-hash cache keys.
func (d *Document) Raw() []byte {
	return d.raw
}

// Super returns the figure-level labels declared by the document.
func (d *Document) Super() chart.SuperLabels {
	return chart.SuperLabels{
		Title:     d.Title,
		XLabel:    d.XLabel,
		YLabel:    d.YLabel,
		ShareAxes: d.ShareAxes,
	}
}

// OverlayCount returns the total number of overlays across subplots.
func (d *Document) OverlayCount() int {
	n := 0
	for _, sp := range d.Subplots {
		n += len(sp.Overlays)
	}
	return n
}

func (d *Document) validate() error {
	if len(d.Subplots) == 0 {
		return errors.New(errors.ErrCodeInvalidFigure, "figure document declares no subplots")
	}
	for i, sp := range d.Subplots {
		for j, ov := range sp.Overlays {
			if _, err := chart.ParseKind(ov.Kind); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFigure, err,
					"subplot %d overlay %d", i+1, j+1)
			}
			sources := 0
			if len(ov.Data) > 0 {
				sources++
			}
			if ov.DataFile != "" {
				sources++
			}
			if len(ov.X) > 0 || len(ov.Y) > 0 || len(ov.Z) > 0 {
				sources++
			}
			if sources != 1 {
				return errors.New(errors.ErrCodeInvalidFigure,
					"subplot %d overlay %d needs exactly one of data, data_file, or x/y/z", i+1, j+1)
			}
		}
	}
	return nil
}

// Buckets materializes the document's subplots as instruction buckets,
// loading any referenced data files. The result feeds the composer in
// order: one bucket per subplot.
func (d *Document) Buckets() ([][]chart.Instruction, error) {
	buckets := make([][]chart.Instruction, len(d.Subplots))
	for i, sp := range d.Subplots {
		bucket := make([]chart.Instruction, 0, len(sp.Overlays))
		for j, ov := range sp.Overlays {
			inst, err := d.instruction(ov)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "subplot %d overlay %d", i+1, j+1)
			}
			bucket = append(bucket, inst)
		}
		buckets[i] = bucket
	}
	return buckets, nil
}

func (d *Document) instruction(ov Overlay) (chart.Instruction, error) {
	kind, err := chart.ParseKind(ov.Kind)
	if err != nil {
		return chart.Instruction{}, err
	}

	var data chart.Dataset
	switch {
	case ov.DataFile != "":
		series, err := loadCSV(filepath.Join(d.dir, ov.DataFile))
		if err != nil {
			return chart.Instruction{}, err
		}
		data = chart.MultiSeries(series...)
	case len(ov.X) > 0 || len(ov.Y) > 0 || len(ov.Z) > 0:
		data = chart.Grid(chart.Matrix(ov.X), chart.Matrix(ov.Y), chart.Matrix(ov.Z))
	default:
		data = chart.MultiSeries(ov.Data...)
	}

	inst := chart.Instruction{
		Kind: kind,
		Data: data,
		Labels: chart.Labels{
			Title:      ov.Labels.Title,
			XLabel:     ov.Labels.XLabel,
			YLabel:     ov.Labels.YLabel,
			LineLabel:  ov.Labels.LineLabel,
			HideLegend: ov.Labels.HideLegend,
			Scale:      ov.Labels.Scale,
			LogBase:    ov.Labels.LogBase,
		},
		Config: ov.Config.chartConfig(kind),
	}
	if err := inst.Validate(); err != nil {
		return chart.Instruction{}, err
	}
	return inst, nil
}

// chartConfig maps the flattened document table onto the typed config
// member for the overlay's kind.
func (c Config) chartConfig(kind chart.Kind) chart.Config {
	var out chart.Config
	switch kind {
	case chart.KindLine:
		out.Line = chart.LineConfig{Color: c.Color, Style: c.Style}
	case chart.KindCDF:
		out.CDF = chart.CDFConfig{Color: c.Color}
	case chart.KindDensity:
		out.Density = chart.DensityConfig{Color: c.Color, Fill: c.Fill, Label: c.Label}
	case chart.KindBoxPlot:
		out.BoxPlot = chart.BoxPlotConfig{HideOutliers: c.HideOutliers, BoxLabels: c.BoxLabels}
	case chart.KindHistogram:
		out.Histogram = chart.HistogramConfig{
			Bins: c.Bins, Color: c.Color,
			Min: c.Min, Max: c.Max, HasRange: c.HasRange,
		}
	case chart.KindProbability:
		out.Probability = chart.ProbabilityConfig{Color: c.Color}
	case chart.KindNormalCDF:
		out.NormalCDF = chart.NormalCDFConfig{Color: c.Color}
	case chart.KindContour:
		out.Contour = chart.ContourConfig{
			Filled: c.Filled, LineColor: c.LineColor,
			Levels: c.Levels, NoLabels: c.NoLabels,
		}
	}
	return out
}
