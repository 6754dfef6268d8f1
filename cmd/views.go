package cmd

import (
	"github.com/huangsam/trendline/core"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/spf13/cobra"
)

// seriesCmd prints the stacked chart datasets of a metric.
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Show the month-by-month chart series of the top groups.",
	Long: `Bucket a metric into calendar months and chart the largest groups.

The window covers the last --window months ending at the anchor month. The
--top largest groups by total are charted individually and every other group
is merged into a single "Other" dataset at the bottom of the stack. Months with
events are emphasized and list the events in their tooltip.

Examples:
  # Sales of the last 13 months, top 8 customers
  trendline series

  # Purchases in 2024 with the 5 largest suppliers
  trendline series --metric purchases --anchor 2024-12-31 --window 12 --top 5

  # Render an interactive stacked bar chart
  trendline series --output html --output-file sales.html`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build series", err)
		}
	},
}

// tableCmd prints the table summary over every group.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show totals, shares and monthly averages for every group.",
	Long: `Summarize a metric over the window for every group, not only the charted ones.

Each row shows the group's total, its share of the grand total of the window
and its monthly average. Auxiliary fields given with --aux are averaged over
the group's records.

Examples:
  # Full sales table with average quantity and unit price
  trendline table --aux quantity,unit_price

  # Only groups whose key starts with "EU-"
  trendline table --group-filter EU-

  # Export for spreadsheets
  trendline table --output xlsx --output-file sales.xlsx`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTable(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build table", err)
		}
	},
}

// viewCmd prints both the chart series and the table.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the chart series and the table summary together.",
	Long: `Build the complete view of a metric: chart datasets, event annotations and table.

Examples:
  # Margin view for the last 6 months
  trendline view --metric margin --window 6

  # Full view as JSON for another tool
  trendline view --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteView(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build view", err)
		}
	},
}
