package cmd

import (
	"github.com/huangsam/trendline/core"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/spf13/cobra"
)

// importCmd groups the CSV importers.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load records or events from CSV files into the record store",
	Long: `Import dated records or events into the configured record store.

Subcommands:
  records - Import metric records (date,group_key,group_name,value[,aux...])
  events  - Import events (date,entity,title)`,
}

// importRecordsCmd imports metric records.
var importRecordsCmd = &cobra.Command{
	Use:   "records <csv-path>",
	Short: "Import dated metric records for the selected metric",
	Long: `Read a CSV file and store every row under the metric given by --metric.

The header must start with date,group_key,group_name,value. Any extra columns
are auxiliary numeric fields such as quantity or unit_price. Dates are either
YYYY-MM-DD or YYYY-MM. Empty numeric cells are treated as absent.

Examples:
  # Import sales records
  trendline import records sales-2024.csv

  # Import purchases into PostgreSQL
  TRENDLINE_STORE_BACKEND=postgresql TRENDLINE_STORE_DB_CONNECT="..." trendline import records --metric purchases purchases.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteImportRecords(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot import records", err)
		}
	},
}

// importEventsCmd imports chart events.
var importEventsCmd = &cobra.Command{
	Use:   "events <csv-path>",
	Short: "Import dated events shown as chart annotations",
	Long: `Read a CSV file with the header date,entity,title and store every event.

Examples:
  # Import price changes and campaigns
  trendline import events events.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteImportEvents(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot import events", err)
		}
	},
}
