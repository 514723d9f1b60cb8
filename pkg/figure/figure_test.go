package figure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ec-intl/chartly/pkg/chart"
	"github.com/ec-intl/chartly/pkg/errors"
)

const sampleDoc = `
title = "Quarterly Report"
x_label = "quarter"
y_label = "value"
share_axes = true
formats = ["svg", "png"]
width = 640.0
height = 480.0

[[subplot]]

  [[subplot.overlay]]
  kind = "line_plot"
  data = [[1.0, 2.0, 4.0, 8.0]]

    [subplot.overlay.labels]
    title = "growth"
    line_label = "revenue"

    [subplot.overlay.config]
    color = "crimson"
    style = "dashed"

[[subplot]]

  [[subplot.overlay]]
  kind = "histogram"
  data = [[1.0, 1.5, 2.0, 2.5, 3.0]]

    [subplot.overlay.config]
    bins = 4

  [[subplot.overlay]]
  kind = "density"
  data = [[1.0, 1.5, 2.0, 2.5, 3.0]]
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	super := doc.Super()
	if super.Title != "Quarterly Report" || !super.ShareAxes {
		t.Errorf("Super = %+v", super)
	}
	if len(doc.Formats) != 2 || doc.Formats[0] != "svg" {
		t.Errorf("Formats = %v", doc.Formats)
	}
	if doc.OverlayCount() != 3 {
		t.Errorf("OverlayCount = %d, want 3", doc.OverlayCount())
	}

	buckets, err := doc.Buckets()
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if len(buckets[0]) != 1 || buckets[0][0].Kind != chart.KindLine {
		t.Errorf("bucket 0 = %v", buckets[0])
	}
	if len(buckets[1]) != 2 || buckets[1][0].Kind != chart.KindHistogram || buckets[1][1].Kind != chart.KindDensity {
		t.Errorf("bucket 1 kinds wrong")
	}

	line := buckets[0][0]
	if line.Labels.LineLabel != "revenue" {
		t.Errorf("line label = %q", line.Labels.LineLabel)
	}
	if line.Config.Line.Color != "crimson" || line.Config.Line.Style != "dashed" {
		t.Errorf("line config = %+v", line.Config.Line)
	}
	if buckets[1][0].Config.Histogram.Bins != 4 {
		t.Errorf("histogram bins = %d", buckets[1][0].Config.Histogram.Bins)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not toml", doc: "= [[["},
		{name: "no subplots", doc: `title = "empty"`},
		{name: "unknown kind", doc: `
[[subplot]]
  [[subplot.overlay]]
  kind = "pie"
  data = [[1.0]]
`},
		{name: "no data source", doc: `
[[subplot]]
  [[subplot.overlay]]
  kind = "line_plot"
`},
		{name: "two data sources", doc: `
[[subplot]]
  [[subplot.overlay]]
  kind = "line_plot"
  data = [[1.0]]
  data_file = "extra.csv"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, errors.ErrCodeInvalidFigure) {
				t.Fatalf("Parse error = %v, want INVALID_FIGURE", err)
			}
		})
	}
}

func TestContourDocument(t *testing.T) {
	doc, err := Parse([]byte(`
[[subplot]]
  [[subplot.overlay]]
  kind = "contour"
  x = [[0.0, 1.0], [0.0, 1.0]]
  y = [[0.0, 0.0], [1.0, 1.0]]
  z = [[1.0, 2.0], [3.0, 4.0]]

    [subplot.overlay.config]
    levels = 5
    line_color = "teal"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	buckets, err := doc.Buckets()
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	inst := buckets[0][0]
	if inst.Kind != chart.KindContour {
		t.Fatalf("kind = %v", inst.Kind)
	}
	if !inst.Data.IsGrid() || inst.Data.NumGrids() != 3 {
		t.Error("contour dataset should hold 3 grids")
	}
	if inst.Config.Contour.Levels != 5 || inst.Config.Contour.LineColor != "teal" {
		t.Errorf("contour config = %+v", inst.Config.Contour)
	}
}

func TestLoadWithDataFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "samples.csv")
	if err := os.WriteFile(csvPath, []byte("a,b\n1,10\n2,20\n3,30\n"), 0644); err != nil {
		t.Fatal(err)
	}

	docPath := filepath.Join(dir, "figure.toml")
	docBody := `
[[subplot]]
  [[subplot.overlay]]
  kind = "boxplot"
  data_file = "samples.csv"
`
	if err := os.WriteFile(docPath, []byte(docBody), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(docPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	buckets, err := doc.Buckets()
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}

	inst := buckets[0][0]
	if inst.Data.NumSeries() != 2 {
		t.Fatalf("series = %d, want 2 (one per column)", inst.Data.NumSeries())
	}
	if got := inst.Data.SeriesAt(1); len(got) != 3 || got[2] != 30 {
		t.Errorf("column b = %v", got)
	}
}

func TestLoadMissingDocument(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("Load error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadMissingDataFile(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "figure.toml")
	docBody := `
[[subplot]]
  [[subplot.overlay]]
  kind = "cdf"
  data_file = "absent.csv"
`
	if err := os.WriteFile(docPath, []byte(docBody), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(docPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := doc.Buckets(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("Buckets error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadCSVRagged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ragged.csv")
	if err := os.WriteFile(path, []byte("1,2\n3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadCSV(path); err == nil {
		t.Fatal("ragged csv should fail")
	}
}
