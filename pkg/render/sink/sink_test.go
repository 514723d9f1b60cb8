package sink

import (
	"bytes"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ec-intl/chartly/pkg/errors"
)

// stubFigure draws a single empty plot.
type stubFigure struct{}

func (stubFigure) Size() (w, h vg.Length) { return vg.Points(200), vg.Points(100) }

func (stubFigure) Draw(dc draw.Canvas) {
	p := plot.New()
	p.Title.Text = "stub"
	p.Draw(dc)
}

func TestEncodeFormats(t *testing.T) {
	tests := []struct {
		format string
		magic  []byte
	}{
		{format: FormatSVG, magic: []byte("<?xml")},
		{format: FormatPNG, magic: []byte("\x89PNG")},
		{format: FormatPDF, magic: []byte("%PDF")},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Encode(stubFigure{}, tt.format, 0)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Contains(data[:minInt(len(data), 64)], tt.magic) {
				t.Errorf("%s output missing %q header", tt.format, tt.magic)
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode(stubFigure{}, "bmp", 96)
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Fatalf("Encode error = %v, want INVALID_FORMAT", err)
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats() {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false", f)
		}
	}
	if ValidFormat("bmp") {
		t.Error("ValidFormat(bmp) = true")
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
