// Package render implements the drawing side of figure composition on
// top of gonum.org/v1/plot. It provides the Renderer used by the
// composer: surfaces are per-cell plots, each chart kind resolves to a
// draw routine through a static dispatch table, and Finalize assembles
// the grid, applies figure-level labels, and encodes the requested
// output formats.
//
// The renderer owns the active figure explicitly. Nothing here is
// process-global: every surface handle is passed into each draw call,
// and a Renderer instance holds exactly one figure at a time.
package render

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ec-intl/chartly/pkg/chart"
	"github.com/ec-intl/chartly/pkg/compose"
	"github.com/ec-intl/chartly/pkg/errors"
	"github.com/ec-intl/chartly/pkg/render/sink"
)

// Default figure dimensions in points.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 400.0
)

// surface is one drawing region of the figure grid.
type surface struct {
	plot      *plot.Plot
	pos       int      // row-major grid position
	shareWith *surface // adopt this surface's value-axis range, or nil
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the overall figure dimensions in points.
func WithSize(width, height float64) Option {
	return func(r *Renderer) {
		r.width = vg.Length(width)
		r.height = vg.Length(height)
	}
}

// WithFormats sets the output formats encoded by Finalize.
// Defaults to SVG only.
func WithFormats(formats ...string) Option {
	return func(r *Renderer) { r.formats = formats }
}

// WithDPI sets the raster resolution for PNG output.
func WithDPI(dpi int) Option {
	return func(r *Renderer) { r.dpi = dpi }
}

// Renderer draws chart instructions onto gonum plots and assembles the
// final multi-panel figure. It implements compose.Renderer.
//
// A Renderer holds one figure at a time and is not safe for concurrent
// use; create one per render.
type Renderer struct {
	width, height vg.Length
	formats       []string
	dpi           int

	shape     compose.GridShape
	surfaces  []*surface
	artifacts map[string][]byte
}

// New creates a renderer with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:   vg.Length(DefaultWidth),
		height:  vg.Length(DefaultHeight),
		formats: []string{sink.FormatSVG},
		dpi:     sink.DefaultDPI,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewSurface allocates the drawing region at the given row-major grid
// position. Implements compose.Renderer.
func (r *Renderer) NewSurface(shape compose.GridShape, pos int, shareWith compose.Surface) (compose.Surface, error) {
	if pos >= shape.Cells() {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"grid position %d outside %dx%d grid", pos, shape.Rows, shape.Cols)
	}

	s := &surface{plot: plot.New(), pos: pos}
	if shareWith != nil {
		prev, ok := shareWith.(*surface)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "foreign surface handle")
		}
		s.shareWith = prev
	}

	r.shape = shape
	r.surfaces = append(r.surfaces, s)
	return s, nil
}

// Draw renders one instruction onto a surface. The dataset is validated
// against the chart kind's shape contract first; violations surface as
// DATA_SHAPE errors. Implements compose.Renderer.
func (r *Renderer) Draw(sfc compose.Surface, inst chart.Instruction) error {
	s, ok := sfc.(*surface)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "foreign surface handle")
	}

	fn, ok := drawFuncs[inst.Kind]
	if !ok {
		return errors.New(errors.ErrCodeInvalidKind, "unknown chart kind: %q", inst.Kind)
	}

	if err := inst.Data.CheckShape(inst.Kind); err != nil {
		return err
	}

	if err := fn(s, inst); err != nil {
		return err
	}

	return applyLabels(s, inst.Labels)
}

// drawFunc renders one chart kind onto a surface.
type drawFunc func(*surface, chart.Instruction) error

// drawFuncs is the static dispatch table from chart kind to draw
// routine. Kind validation in chart.ParseKind keeps this the only
// string-keyed lookup in the render path.
var drawFuncs = map[chart.Kind]drawFunc{
	chart.KindLine:        drawLine,
	chart.KindCDF:         drawCDF,
	chart.KindDensity:     drawDensity,
	chart.KindBoxPlot:     drawBoxPlot,
	chart.KindHistogram:   drawHistogram,
	chart.KindProbability: drawProbability,
	chart.KindNormalCDF:   drawNormalCDF,
	chart.KindContour:     drawContour,
}

// applyLabels transfers a label set onto the surface's plot.
func applyLabels(s *surface, l chart.Labels) error {
	if err := l.Validate(); err != nil {
		return err
	}

	p := s.plot
	if l.Title != "" {
		p.Title.Text = l.Title
	}
	if l.XLabel != "" {
		p.X.Label.Text = l.XLabel
	}
	if l.YLabel != "" {
		p.Y.Label.Text = l.YLabel
	}
	if l.Scale == chart.ScaleLog {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = logTickerFor(l.LogBase)
	}
	return nil
}

// logTickerFor picks the tick marker for a log-scaled axis. Base 10 (and
// the unset zero value) uses gonum's subdivided log ticks; any other base
// gets major ticks at its integer powers.
func logTickerFor(base int) plot.Ticker {
	if base == 0 || base == 10 {
		return plot.LogTicks{Prec: -1}
	}
	return logTicks{base: float64(base)}
}

// logTicks places ticks at integer powers of an arbitrary base.
type logTicks struct {
	base float64
}

// Ticks implements plot.Ticker for axes spanning [min, max] in data
// coordinates.
func (t logTicks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max <= min {
		return nil
	}
	lo := int(math.Floor(math.Log(min) / math.Log(t.base)))
	hi := int(math.Ceil(math.Log(max) / math.Log(t.base)))

	var ticks []plot.Tick
	for e := lo; e <= hi; e++ {
		v := math.Pow(t.base, float64(e))
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: strconv.FormatFloat(v, 'g', -1, 64),
		})
	}
	return ticks
}

// addLegend registers a legend entry on the surface unless legends are
// suppressed or the label is empty.
func addLegend(s *surface, l chart.Labels, name string, thumb plot.Thumbnailer) {
	if l.HideLegend || name == "" {
		return
	}
	s.plot.Legend.Add(name, thumb)
	s.plot.Legend.Top = true
}

// Finalize assembles every surface into the figure grid, applies the
// super labels, and encodes the requested formats. Implements
// compose.Renderer. The encoded artifacts are available from Artifacts
// afterwards.
func (r *Renderer) Finalize(super chart.SuperLabels) error {
	if super.ShareAxes {
		r.shareValueAxes()
	}

	fig := &figure{
		width:  r.width,
		height: r.height,
		shape:  r.shape,
		sfcs:   r.surfaces,
		super:  super,
	}

	artifacts := make(map[string][]byte, len(r.formats))
	for _, format := range r.formats {
		data, err := sink.Encode(fig, format, r.dpi)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "encode %s", format)
		}
		artifacts[format] = data
	}

	r.artifacts = artifacts
	return nil
}

// Artifacts returns the encoded outputs keyed by format.
// Valid only after a successful Finalize.
func (r *Renderer) Artifacts() map[string][]byte {
	return r.artifacts
}

// shareValueAxes forces every shared surface onto the first surface's
// value-axis range. gonum autoscales at draw time, but Plot.Add keeps
// running min/max, so the ranges here are final.
func (r *Renderer) shareValueAxes() {
	var first *surface
	for _, s := range r.surfaces {
		if s.pos == 0 {
			first = s
			break
		}
	}
	if first == nil {
		return
	}
	for _, s := range r.surfaces {
		if s.shareWith != nil {
			s.plot.Y.Min = first.plot.Y.Min
			s.plot.Y.Max = first.plot.Y.Max
		}
	}
}

// Super-label layout constants, in points.
const (
	superTitleSize = 16
	superLabelSize = 12
	superPad       = 24
	tilePad        = vg.Length(8)
)

// figure is the assembled multi-panel drawing passed to the sinks.
// Drawing is repeatable: each output format renders onto a fresh
// canvas.
type figure struct {
	width, height vg.Length
	shape         compose.GridShape
	sfcs          []*surface
	super         chart.SuperLabels
}

// Size implements sink.Figure.
func (f *figure) Size() (w, h vg.Length) {
	return f.width, f.height
}

// Draw implements sink.Figure. It tiles the surfaces into the grid,
// reserving margin space for whichever super labels are present, then
// draws each label centered in its margin.
func (f *figure) Draw(dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows: f.shape.Rows,
		Cols: f.shape.Cols,
		PadX: tilePad,
		PadY: tilePad,
	}
	if f.super.Title != "" {
		tiles.PadTop = superPad
	}
	if f.super.XLabel != "" {
		tiles.PadBottom = superPad
	}
	if f.super.YLabel != "" {
		tiles.PadLeft = superPad
	}

	// plot.Align wants a dense rows x cols matrix; cells without a
	// surface stay nil and are skipped.
	grid := make([][]*plot.Plot, f.shape.Rows)
	for row := range grid {
		grid[row] = make([]*plot.Plot, f.shape.Cols)
	}
	for _, s := range f.sfcs {
		row := s.pos / f.shape.Cols
		col := s.pos % f.shape.Cols
		grid[row][col] = s.plot
	}

	canvases := plot.Align(grid, tiles, dc)
	for row := range grid {
		for col := range grid[row] {
			if grid[row][col] != nil {
				grid[row][col].Draw(canvases[row][col])
			}
		}
	}

	f.drawSuperLabels(dc)
}

// drawSuperLabels writes the overall title and axis super-labels into
// the canvas margins reserved by Draw.
func (f *figure) drawSuperLabels(dc draw.Canvas) {
	if f.super.Title != "" {
		sty := superStyle(superTitleSize)
		sty.XAlign = text.XCenter
		sty.YAlign = text.YTop
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y}, f.super.Title)
	}
	if f.super.XLabel != "" {
		sty := superStyle(superLabelSize)
		sty.XAlign = text.XCenter
		sty.YAlign = text.YBottom
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Min.Y}, f.super.XLabel)
	}
	if f.super.YLabel != "" {
		sty := superStyle(superLabelSize)
		sty.XAlign = text.XCenter
		sty.YAlign = text.YTop
		sty.Rotation = math.Pi / 2
		dc.FillText(sty, vg.Point{X: dc.Min.X, Y: (dc.Min.Y + dc.Max.Y) / 2}, f.super.YLabel)
	}
}

// superStyle builds the text style for figure-level labels.
func superStyle(size float64) text.Style {
	fnt := plot.DefaultFont
	fnt.Size = vg.Points(size)
	return text.Style{
		Color:   color.Black,
		Font:    fnt,
		Handler: plot.DefaultTextHandler,
	}
}
