// Package pkg provides the core libraries for chartly figure rendering.
//
// # Overview
//
// Chartly turns declarative figure documents into rendered charts: grids
// of subplots where each cell stacks one or more chart overlays. The pkg
// directory is organized into five main areas:
//
//  1. [chart] - Chart model (kinds, datasets, labels, per-kind config)
//  2. [compose] - Overlay accumulation and subplot grid planning
//  3. [render] - Drawing charts onto surfaces and encoding artifacts
//  4. [figure] - TOML figure document parsing and data loading
//  5. [pipeline] - Orchestration (parse → compose → render) with caching
//
// # Architecture
//
// The typical data flow through chartly:
//
//	Figure Document (TOML)
//	         ↓
//	    [figure] package (parse, load data files)
//	         ↓
//	    [compose] package (bucket overlays, plan the subplot grid)
//	         ↓
//	    [render] package (draw each chart kind, encode SVG/PNG/PDF)
//	         ↓
//	    SVG/PNG/PDF output
//
// # Quick Start
//
// Render a figure document through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    FigurePath: "figure.toml",
//	    Formats:    []string{pipeline.FormatSVG},
//	})
//
// Or compose charts programmatically:
//
//	c := compose.NewComposer()
//	c.Overlay(chart.Instruction{Kind: chart.KindLine, Data: chart.Series(ys)})
//	c.NewSubplot()
//	c.Overlay(chart.Instruction{Kind: chart.KindCDF, Data: chart.Series(ys)})
//	err := c.Render(ctx, renderer, super)
//
// Supporting packages: [cache] stores rendered artifacts (file, Redis, or
// null backends), [stats] implements the statistical transforms behind the
// distribution charts, [errors] defines coded errors shared across the
// module, and [observability] carries lifecycle hooks for instrumentation.
package pkg
