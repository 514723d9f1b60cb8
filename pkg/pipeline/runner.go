package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ec-intl/chartly/pkg/cache"
	"github.com/ec-intl/chartly/pkg/compose"
	"github.com/ec-intl/chartly/pkg/errors"
	"github.com/ec-intl/chartly/pkg/figure"
	"github.com/ec-intl/chartly/pkg/observability"
	"github.com/ec-intl/chartly/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; each Execute builds its own composer
// and renderer.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → compose → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "invalid options")
	}
	r.applyLogger(&opts)
	logger := opts.Logger.With("run_id", uuid.NewString())

	// Stage 1: Parse
	parseStart := time.Now()
	doc, err := r.parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	r.applyDocumentDefaults(&opts, doc)

	result := &Result{
		DocHash: cache.Hash(doc.Raw()),
		Stats: Stats{
			SubplotCount: len(doc.Subplots),
			OverlayCount: doc.OverlayCount(),
			ParseTime:    time.Since(parseStart),
		},
	}
	logger.Info("parsed figure document",
		"subplots", result.Stats.SubplotCount,
		"overlays", result.Stats.OverlayCount,
		"duration", result.Stats.ParseTime)

	// Try the artifact cache before composing anything.
	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.DocHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.ArtifactHit = true
			logger.Info("artifacts served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2+3: Compose and render
	renderStart := time.Now()
	artifacts, err := r.renderDocument(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(result.DocHash, opts.renderKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	logger.Info("rendered figure",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// parse loads the figure document from whichever source the options
// carry.
func (r *Runner) parse(ctx context.Context, opts Options) (*figure.Document, error) {
	source := opts.FigurePath
	if source == "" {
		source = "inline"
	}
	observability.Figure().OnParseStart(ctx, source)

	start := time.Now()
	var (
		doc *figure.Document
		err error
	)
	if opts.FigurePath != "" {
		doc, err = figure.Load(opts.FigurePath)
	} else {
		doc, err = figure.Parse(opts.Document)
	}

	count := 0
	if doc != nil {
		count = doc.OverlayCount()
	}
	observability.Figure().OnParseComplete(ctx, source, count, time.Since(start), err)
	return doc, err
}

// applyDocumentDefaults fills zero-valued render options from the
// document, then from package defaults. Explicit options win.
func (r *Runner) applyDocumentDefaults(opts *Options, doc *figure.Document) {
	if len(opts.Formats) == 0 {
		opts.Formats = doc.Formats
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	if opts.Width == 0 {
		opts.Width = doc.Width
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = doc.Height
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.DPI == 0 {
		opts.DPI = doc.DPI
	}
	if opts.DPI == 0 {
		opts.DPI = DefaultDPI
	}
	if doc.ShareAxes {
		opts.ShareAxes = true
	}
}

// cachedArtifacts returns every requested format from the cache, or
// reports false if any format is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, docHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.renderKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// renderDocument replays the document's buckets through a fresh
// composer and renderer.
func (r *Runner) renderDocument(ctx context.Context, doc *figure.Document, opts Options) (map[string][]byte, error) {
	buckets, err := doc.Buckets()
	if err != nil {
		return nil, err
	}

	composeStart := time.Now()
	observability.Figure().OnComposeStart(ctx, len(buckets), doc.OverlayCount())

	c := compose.NewComposer()
	for i, bucket := range buckets {
		if i > 0 {
			c.NewSubplot()
		}
		for _, inst := range bucket {
			c.Overlay(inst)
		}
	}

	super := doc.Super()
	if opts.ShareAxes {
		super.ShareAxes = true
	}

	rend := render.New(
		render.WithSize(opts.Width, opts.Height),
		render.WithFormats(opts.Formats...),
		render.WithDPI(opts.DPI),
	)

	observability.Figure().OnRenderStart(ctx, opts.Formats)
	err = c.Render(ctx, rend, super)
	duration := time.Since(composeStart)
	observability.Figure().OnComposeComplete(ctx, len(buckets), duration, err)
	observability.Figure().OnRenderComplete(ctx, opts.Formats, duration, err)
	if err != nil {
		return nil, err
	}
	return rend.Artifacts(), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
