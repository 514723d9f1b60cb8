package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ec-intl/chartly/pkg/chart"
	"github.com/ec-intl/chartly/pkg/render"
)

// kindDescriptions maps each chart kind to a one-line summary shown by
// the kinds command.
var kindDescriptions = map[chart.Kind]string{
	chart.KindLine:        "line plot of a series, or of x against y",
	chart.KindCDF:         "empirical cumulative distribution with reference levels",
	chart.KindDensity:     "kernel density estimate curve",
	chart.KindBoxPlot:     "box-and-whisker summary per series",
	chart.KindHistogram:   "fraction-weighted histogram",
	chart.KindProbability: "normal probability plot with fitted line",
	chart.KindNormalCDF:   "standardized CDF against the standard normal",
	chart.KindContour:     "contour or filled heat map of a grid",
}

// kindDefaults maps each chart kind to its default color description.
var kindDefaults = map[chart.Kind]string{
	chart.KindLine:        chart.DefaultLineColor,
	chart.KindCDF:         chart.DefaultCDFColor,
	chart.KindDensity:     chart.DefaultDensityColor,
	chart.KindBoxPlot:     "per-plot default",
	chart.KindHistogram:   chart.DefaultHistogramColor,
	chart.KindProbability: chart.DefaultProbabilityColor,
	chart.KindNormalCDF:   chart.DefaultNormalCDFColor,
	chart.KindContour:     chart.DefaultContourColor,
}

// kindsCommand creates the kinds command listing supported chart kinds.
func (c *CLI) kindsCommand() *cobra.Command {
	var showColors bool

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List supported chart kinds and named colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Chart kinds"))
			for _, k := range chart.Kinds {
				line := StyleHighlight.Render(fmt.Sprintf("%-18s", k.String())) +
					StyleDim.Render(kindDescriptions[k]) +
					StyleDim.Render("  (default color: ") +
					StyleValue.Render(kindDefaults[k]) +
					StyleDim.Render(")")
				fmt.Println("  " + line)
			}

			if showColors {
				printNewline()
				fmt.Println(StyleTitle.Render("Named colors"))
				printDetail("%s", strings.Join(render.ColorNames(), ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showColors, "colors", false, "also list the named color palette")

	return cmd
}
