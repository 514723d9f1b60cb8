package chart

import (
	"testing"

	"github.com/ec-intl/chartly/pkg/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"line_plot", KindLine, false},
		{"cdf", KindCDF, false},
		{"density", KindDensity, false},
		{"boxplot", KindBoxPlot, false},
		{"histogram", KindHistogram, false},
		{"probability_plot", KindProbability, false},
		{"normal_cdf", KindNormalCDF, false},
		{"contour", KindContour, false},
		{"pie", "", true},
		{"", "", true},
		{"CDF", "", true}, // case-sensitive
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidKind) {
			t.Errorf("ParseKind(%q) error code = %v", tt.name, errors.GetCode(err))
		}
	}
}

func TestCheckShapeSeries(t *testing.T) {
	one := []float64{1, 2, 3}
	two := []float64{4, 5, 6}
	short := []float64{7, 8}

	tests := []struct {
		name    string
		kind    Kind
		data    Dataset
		wantErr bool
	}{
		{"line 1d", KindLine, Series(one), false},
		{"line xy pair", KindLine, SeriesPair(one, two), false},
		{"line unequal pair", KindLine, SeriesPair(one, short), true},
		{"line three series", KindLine, MultiSeries(one, two, short), true},
		{"line empty", KindLine, Series(nil), true},
		{"line grid", KindLine, Grid(Matrix{{1, 2}, {3, 4}}, Matrix{{1, 2}, {3, 4}}, Matrix{{1, 2}, {3, 4}}), true},
		{"cdf single", KindCDF, Series(one), false},
		{"cdf multi", KindCDF, MultiSeries(one, two), true},
		{"density single", KindDensity, Series(one), false},
		{"histogram single", KindHistogram, Series(one), false},
		{"probability single", KindProbability, Series(one), false},
		{"boxplot single", KindBoxPlot, Series(one), false},
		{"boxplot multi", KindBoxPlot, MultiSeries(one, two), false},
		{"boxplot empty", KindBoxPlot, MultiSeries(), true},
		{"normal cdf multi", KindNormalCDF, MultiSeries(one, two), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.CheckShape(tt.kind)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckShape() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsShape(err) {
				t.Errorf("error code = %v, want DATA_SHAPE", errors.GetCode(err))
			}
		})
	}
}

func TestCheckShapeContour(t *testing.T) {
	sq := Matrix{{1, 2}, {3, 4}}
	wide := Matrix{{1, 2, 3}, {4, 5, 6}}
	ragged := Matrix{{1, 2}, {3}}

	tests := []struct {
		name    string
		data    Dataset
		wantErr bool
	}{
		{"three matching grids", Grid(sq, sq, sq), false},
		{"two grids", Grids(sq, sq), true},
		{"four grids", Grids(sq, sq, sq, sq), true},
		{"mismatched dims", Grids(sq, sq, wide), true},
		{"ragged grid", Grids(sq, sq, ragged), true},
		{"series instead of grids", Series([]float64{1, 2}), true},
		{"too small", Grids(Matrix{{1}}, Matrix{{1}}, Matrix{{1}}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.CheckShape(KindContour)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckShape(contour) error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	if got := (LineConfig{}).WithDefaults(); got.Color != "navy" || got.Style != "solid" {
		t.Errorf("LineConfig defaults = %+v", got)
	}
	if got := (LineConfig{Color: "pink"}).WithDefaults(); got.Color != "pink" || got.Style != "solid" {
		t.Errorf("LineConfig override should keep defaults for other fields: %+v", got)
	}
	if got := (CDFConfig{}).WithDefaults(); got.Color != "dodgerblue" {
		t.Errorf("CDFConfig defaults = %+v", got)
	}
	if got := (HistogramConfig{}).WithDefaults(); got.Bins != 20 || got.Color != "plum" {
		t.Errorf("HistogramConfig defaults = %+v", got)
	}
	if got := (ContourConfig{}).WithDefaults(); got.LineColor != "black" || got.Levels != 10 || got.Filled {
		t.Errorf("ContourConfig defaults = %+v", got)
	}
}

func TestBoxPlotDefaultLabels(t *testing.T) {
	got := (BoxPlotConfig{}).WithDefaultLabels(3)
	want := []string{"Dataset 1", "Dataset 2", "Dataset 3"}
	if len(got.BoxLabels) != len(want) {
		t.Fatalf("BoxLabels = %v, want %v", got.BoxLabels, want)
	}
	for i := range want {
		if got.BoxLabels[i] != want[i] {
			t.Errorf("BoxLabels[%d] = %q, want %q", i, got.BoxLabels[i], want[i])
		}
	}

	// Explicit labels are preserved.
	got = (BoxPlotConfig{BoxLabels: []string{"a"}}).WithDefaultLabels(3)
	if len(got.BoxLabels) != 1 || got.BoxLabels[0] != "a" {
		t.Errorf("explicit BoxLabels overridden: %v", got.BoxLabels)
	}
}

func TestLabelsValidate(t *testing.T) {
	tests := []struct {
		name    string
		labels  Labels
		wantErr bool
	}{
		{"zero value", Labels{}, false},
		{"linear", Labels{Scale: ScaleLinear}, false},
		{"log default base", Labels{Scale: ScaleLog}, false},
		{"log base 2", Labels{Scale: ScaleLog, LogBase: 2}, false},
		{"log base 1", Labels{Scale: ScaleLog, LogBase: 1}, true},
		{"negative base", Labels{Scale: ScaleLog, LogBase: -2}, true},
		{"unknown scale", Labels{Scale: "sqrt"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.labels.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInstructionValidate(t *testing.T) {
	ok := Instruction{Kind: KindCDF, Data: Series([]float64{1})}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid instruction rejected: %v", err)
	}

	bad := Instruction{Kind: "sparkline", Data: Series([]float64{1})}
	if err := bad.Validate(); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("invalid kind error = %v", err)
	}
}
