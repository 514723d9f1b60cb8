// Package sink encodes assembled figures into output formats. Each
// encoder renders the figure onto a fresh vg canvas, so a single
// figure can be written in several formats.
package sink

import (
	"bytes"
	"sort"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/ec-intl/chartly/pkg/errors"
)

// Supported output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// DefaultDPI is the raster resolution used for PNG output when none is
// configured.
const DefaultDPI = 96

var validFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidFormat reports whether format names a supported encoder.
func ValidFormat(format string) bool {
	return validFormats[format]
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(validFormats))
	for f := range validFormats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Figure is a drawable multi-panel figure.
type Figure interface {
	// Size returns the figure dimensions in points.
	Size() (w, h vg.Length)
	// Draw renders the figure onto the canvas. Draw must be
	// repeatable: it is called once per output format.
	Draw(dc draw.Canvas)
}

// Encode renders the figure into the named format and returns the
// encoded bytes. Unknown formats return an INVALID_FORMAT error.
func Encode(fig Figure, format string, dpi int) ([]byte, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	switch format {
	case FormatSVG:
		return encodeSVG(fig)
	case FormatPNG:
		return encodePNG(fig, dpi)
	case FormatPDF:
		return encodePDF(fig)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported output format: %q (valid: %v)", format, Formats())
	}
}

func encodeSVG(fig Figure) ([]byte, error) {
	w, h := fig.Size()
	c := vgsvg.New(w, h)
	fig.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write svg")
	}
	return buf.Bytes(), nil
}

func encodePNG(fig Figure, dpi int) ([]byte, error) {
	w, h := fig.Size()
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	fig.Draw(draw.New(c))

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write png")
	}
	return buf.Bytes(), nil
}

func encodePDF(fig Figure) ([]byte, error) {
	w, h := fig.Size()
	c := vgpdf.New(w, h)
	fig.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write pdf")
	}
	return buf.Bytes(), nil
}
