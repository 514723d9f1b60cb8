package chart

import (
	"github.com/ec-intl/chartly/pkg/errors"
)

// Axis scales.
const (
	ScaleLinear = "linear"
	ScaleLog    = "log"
)

// Labels carries the per-subplot axis labeling for one draw instruction.
// Zero values mean "leave unset"; ShowLegend defaults to on and is
// therefore inverted (HideLegend) so the zero value is useful.
type Labels struct {
	Title      string // subplot title
	XLabel     string // x-axis label
	YLabel     string // y-axis label
	LineLabel  string // legend entry for line-style plots
	HideLegend bool   // suppress the legend even when line labels exist
	Scale      string // y-axis scale: "linear" (default) or "log"
	LogBase    int    // base for log scale, default 10
}

// Validate checks the label set for invalid combinations.
func (l Labels) Validate() error {
	switch l.Scale {
	case "", ScaleLinear:
	case ScaleLog:
		if l.LogBase < 0 || l.LogBase == 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid log base: %d", l.LogBase)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown axis scale: %q", l.Scale)
	}
	return nil
}

// SuperLabels carries the figure-level labeling applied after all
// subplots are drawn: the overall title and axis super-labels, plus the
// share-axes mode that links every subplot's value axis to the first.
type SuperLabels struct {
	Title     string
	XLabel    string
	YLabel    string
	ShareAxes bool
}
