package render

import (
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ec-intl/chartly/pkg/compose"
	"github.com/ec-intl/chartly/pkg/errors"
)

// HatchRegion marks a rectangular area of a surface with diagonal
// hatching, in data coordinates. Spacing is the distance between hatch
// lines along the value axis; zero picks a spacing that yields about
// ten lines.
type HatchRegion struct {
	XMin, XMax float64
	YMin, YMax float64
	Spacing    float64
	Color      string
}

// Hatch draws a hatched rectangle decoration on a surface. It is not a
// chart kind: hatching annotates whatever the surface already shows,
// so it participates in axis autoscaling like any other overlay.
func (r *Renderer) Hatch(sfc compose.Surface, region HatchRegion) error {
	s, ok := sfc.(*surface)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "foreign surface handle")
	}
	if region.XMax <= region.XMin || region.YMax <= region.YMin {
		return errors.New(errors.ErrCodeInvalidConfig,
			"hatch region must have positive extent, got x [%v, %v] y [%v, %v]",
			region.XMin, region.XMax, region.YMin, region.YMax)
	}

	name := region.Color
	if name == "" {
		name = "gray"
	}
	col, err := ParseColor(name)
	if err != nil {
		return err
	}

	spacing := region.Spacing
	if spacing <= 0 {
		spacing = (region.YMax - region.YMin) / 10
	}

	outline, err := plotter.NewLine(plotter.XYs{
		{X: region.XMin, Y: region.YMin},
		{X: region.XMax, Y: region.YMin},
		{X: region.XMax, Y: region.YMax},
		{X: region.XMin, Y: region.YMax},
		{X: region.XMin, Y: region.YMin},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "hatch outline")
	}
	outline.Color = col
	s.plot.Add(outline)

	// Diagonal lines y = x + c, clipped to the rectangle. The offset c
	// sweeps far enough below YMin that the first diagonals enter
	// through the bottom edge.
	w := region.XMax - region.XMin
	for c := region.YMin - region.XMin - w; c <= region.YMax-region.XMin; c += spacing {
		x0, y0 := region.XMin, region.XMin+c
		if y0 < region.YMin {
			x0, y0 = region.YMin-c, region.YMin
		}
		x1, y1 := region.YMax-c, region.YMax
		if x1 > region.XMax {
			x1, y1 = region.XMax, region.XMax+c
		}
		if x0 >= x1 {
			continue
		}
		seg, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "hatch line")
		}
		seg.Color = col
		seg.Width = vg.Points(0.5)
		s.plot.Add(seg)
	}
	return nil
}
