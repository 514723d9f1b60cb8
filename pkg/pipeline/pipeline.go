// Package pipeline provides the core figure pipeline for Chartly.
//
// This package implements the complete parse → compose → render pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Load the figure document and materialize instruction buckets
//  2. Compose: Replay the buckets through the overlay composer
//  3. Render: Encode the assembled figure in various formats (SVG, PNG, PDF)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    FigurePath: "figure.toml",
//	    Formats:    []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ec-intl/chartly/pkg/cache"
	"github.com/ec-intl/chartly/pkg/errors"
	"github.com/ec-intl/chartly/pkg/render"
	"github.com/ec-intl/chartly/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default figure width in points.
	DefaultWidth = render.DefaultWidth

	// DefaultHeight is the default figure height in points.
	DefaultHeight = render.DefaultHeight

	// DefaultDPI is the default raster resolution for PNG output.
	DefaultDPI = sink.DefaultDPI
)

// Format constants for output formats.
const (
	FormatSVG = sink.FormatSVG
	FormatPNG = sink.FormatPNG
	FormatPDF = sink.FormatPDF
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the figure pipeline.
// This struct supports JSON serialization for API requests.
//
// Exactly one of FigurePath and Document must be set. Zero-valued
// render options defer to the figure document's declarations, which in
// turn defer to the package defaults.
type Options struct {
	// Parse options
	FigurePath string `json:"figure_path,omitempty"`
	Document   []byte `json:"document,omitempty"` // raw TOML figure document

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	DPI       int      `json:"dpi,omitempty"`
	ShareAxes bool     `json:"share_axes,omitempty"` // force shared value axes
	Refresh   bool     `json:"refresh,omitempty"`    // bypass the artifact cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocHash is the content hash of the figure document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SubplotCount int
	OverlayCount int
	ParseTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ArtifactHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !sink.ValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %v)", format, sink.Formats())
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.FigurePath == "" && len(o.Document) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "figure_path or document is required")
	}
	if o.FigurePath != "" && len(o.Document) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "figure_path and document are mutually exclusive")
	}
	if o.FigurePath != "" {
		if err := errors.ValidateFigurePath(o.FigurePath); err != nil {
			return err
		}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "figure dimensions must be positive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// renderKeyOpts returns the cache key options for one output format.
func (o *Options) renderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		DPI:       o.DPI,
		ShareAxes: o.ShareAxes,
	}
}
