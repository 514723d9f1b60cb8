package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ec-intl/chartly/pkg/errors"
	"github.com/ec-intl/chartly/pkg/observability"
	"github.com/ec-intl/chartly/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (single format) or base path (multiple)
	formats   []string // output formats: "svg", "png", "pdf"
	width     float64  // figure width in points
	height    float64  // figure height in points
	dpi       int      // raster resolution for PNG output
	shareAxes bool     // share the value axis across subplots
	refresh   bool     // bypass the artifact cache
	noCache   bool     // disable the cache entirely
}

// renderCommand creates the render command for generating chart artifacts.
// It parses a figure document, renders every subplot, and writes one file
// per requested format.
//
// Format resolution: --format wins, then the document's formats list, then
// SVG. Width, height, and DPI follow the same flag > document > default
// precedence inside the pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [figure.toml]",
		Short: "Render a figure document to chart files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "figure width in points")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "figure height in points")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "raster resolution for PNG output")
	cmd.Flags().BoolVar(&opts.shareAxes, "share-axes", false, "share the value axis across subplots")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached artifacts exist")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runRender executes the pipeline for a figure document and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	base, err := outputBase(opts.output, input)
	if err != nil {
		return err
	}

	ctx = withLogger(ctx, c.Logger)
	prog := newProgress(loggerFromContext(ctx))

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spin.Start()

	observability.SetFigureHooks(spinnerHooks{spin: spin})
	defer observability.Reset()

	result, err := runner.Execute(ctx, pipeline.Options{
		FigurePath: input,
		Formats:    opts.formats,
		Width:      opts.width,
		Height:     opts.height,
		DPI:        opts.dpi,
		ShareAxes:  opts.shareAxes,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		spin.Stop()
		if spin.Cancelled() {
			return ctx.Err()
		}
		printError("%s", errors.UserMessage(err))
		return err
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Rendered %d subplots", result.Stats.SubplotCount))

	printSuccess("Rendered %s", input)
	printStats(result.Stats.SubplotCount, result.Stats.OverlayCount, result.CacheInfo.ArtifactHit)

	for _, format := range artifactFormats(result.Artifacts) {
		path := base + "." + format
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// spinnerHooks drives the spinner message through the pipeline stages so the
// indicator says what the renderer is actually doing.
type spinnerHooks struct {
	observability.NoopFigureHooks
	spin *Spinner
}

func (h spinnerHooks) OnParseStart(_ context.Context, source string) {
	h.spin.Update(fmt.Sprintf("Parsing %s...", source))
}

func (h spinnerHooks) OnComposeStart(_ context.Context, subplots, overlays int) {
	h.spin.Update(fmt.Sprintf("Composing %d subplots (%d overlays)...", subplots, overlays))
}

func (h spinnerHooks) OnRenderStart(_ context.Context, formats []string) {
	h.spin.Update(fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
}

// outputBase derives the extension-free base output path.
// An empty output falls back to the input path with its extension stripped.
func outputBase(output, input string) (string, error) {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		ext := strings.TrimPrefix(filepath.Ext(base), ".")
		if pipeline.ValidateFormat(ext) == nil {
			base = strings.TrimSuffix(base, "."+ext)
		}
	}
	if err := errors.ValidateOutputBase(filepath.Base(base)); err != nil {
		return "", err
	}
	return base, nil
}

// artifactFormats returns the artifact map's formats in a stable order.
func artifactFormats(artifacts map[string][]byte) []string {
	formats := make([]string, 0, len(artifacts))
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF} {
		if _, ok := artifacts[f]; ok {
			formats = append(formats, f)
		}
	}
	return formats
}

// writeArtifact writes one rendered artifact to disk.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
