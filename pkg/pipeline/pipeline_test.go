package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/ec-intl/chartly/pkg/cache"
	"github.com/ec-intl/chartly/pkg/errors"
)

const testDoc = `
title = "Test Figure"
formats = ["svg"]

[[subplot]]
  [[subplot.overlay]]
  kind = "line_plot"
  data = [[1.0, 2.0, 4.0, 8.0]]

[[subplot]]
  [[subplot.overlay]]
  kind = "cdf"
  data = [[3.0, 1.0, 2.0, 5.0, 4.0]]

  [[subplot.overlay]]
  kind = "density"
  data = [[3.0, 1.0, 2.0, 5.0, 4.0]]
`

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "no source",
			opts:     Options{},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "both sources",
			opts:     Options{FigurePath: "a.toml", Document: []byte("x")},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "bad format",
			opts:     Options{Document: []byte(testDoc), Formats: []string{"bmp"}},
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name:     "negative width",
			opts:     Options{Document: []byte(testDoc), Width: -1},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "path traversal",
			opts:     Options{FigurePath: "../../etc/passwd"},
			wantCode: errors.ErrCodeInvalidPath,
		},
		{
			name: "valid",
			opts: Options{Document: []byte(testDoc)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults: %v", err)
				}
				return
			}
			if errors.GetCode(err) != tt.wantCode {
				t.Fatalf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Document: []byte(testDoc)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default not applied")
	}
}

func TestExecuteInlineDocument(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Document: []byte(testDoc)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.SubplotCount != 2 {
		t.Errorf("SubplotCount = %d, want 2", result.Stats.SubplotCount)
	}
	if result.Stats.OverlayCount != 3 {
		t.Errorf("OverlayCount = %d, want 3", result.Stats.OverlayCount)
	}
	if result.DocHash == "" {
		t.Error("DocHash should be set")
	}
	if result.CacheInfo.ArtifactHit {
		t.Error("first render should not hit the cache")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || len(svg) == 0 {
		t.Fatal("missing svg artifact")
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("artifact does not look like SVG")
	}
}

func TestExecuteArtifactCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Document: []byte(testDoc)}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ArtifactHit {
		t.Fatal("first run must miss")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ArtifactHit {
		t.Fatal("second run should hit the artifact cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.ArtifactHit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestExecuteDocumentFormats(t *testing.T) {
	// Formats come from the document when the options leave them empty.
	doc := `
formats = ["svg", "png"]

[[subplot]]
  [[subplot.overlay]]
  kind = "histogram"
  data = [[1.0, 2.0, 2.5, 3.0, 3.5, 4.0]]
`
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Document: []byte(doc)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(result.Artifacts))
	}
	for _, format := range []string{FormatSVG, FormatPNG} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
}

func TestExecuteParseFailure(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{Document: []byte("not toml at all = [")})
	if !errors.Is(err, errors.ErrCodeInvalidFigure) {
		t.Fatalf("Execute error = %v, want INVALID_FIGURE", err)
	}
}
