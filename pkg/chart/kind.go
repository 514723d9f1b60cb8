// Package chart defines the chart model shared by the composer, the
// renderer, and the outer surfaces: chart kinds, datasets, axis labels,
// and per-kind customization structs with documented defaults.
//
// A draw request is an immutable Instruction pairing a Kind with a
// Dataset, a label set, and a Config of style overrides. Instructions
// carry no rendering logic; the renderer resolves each Kind through a
// static dispatch table.
package chart

import (
	"github.com/ec-intl/chartly/pkg/errors"
)

// Kind identifies a chart type.
type Kind string

// Supported chart kinds.
const (
	KindLine        Kind = "line_plot"
	KindCDF         Kind = "cdf"
	KindDensity     Kind = "density"
	KindBoxPlot     Kind = "boxplot"
	KindHistogram   Kind = "histogram"
	KindProbability Kind = "probability_plot"
	KindNormalCDF   Kind = "normal_cdf"
	KindContour     Kind = "contour"
)

// Kinds lists all supported chart kinds in a stable order.
var Kinds = []Kind{
	KindLine,
	KindCDF,
	KindDensity,
	KindBoxPlot,
	KindHistogram,
	KindProbability,
	KindNormalCDF,
	KindContour,
}

// validKinds is the set of supported chart kinds.
var validKinds = func() map[Kind]bool {
	m := make(map[Kind]bool, len(Kinds))
	for _, k := range Kinds {
		m[k] = true
	}
	return m
}()

// Valid reports whether k is a supported chart kind.
func (k Kind) Valid() bool {
	return validKinds[k]
}

// String returns the kind's wire name.
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a name into a Kind.
// Returns an INVALID_KIND error for unknown names.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if !k.Valid() {
		return "", errors.New(errors.ErrCodeInvalidKind, "unknown chart kind: %q", name)
	}
	return k, nil
}
