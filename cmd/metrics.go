package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/outwriter"
	"github.com/huangsam/trendline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// metricsCmd lists the supported metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List the metrics records can be imported and charted for",
	Long: `Show every supported metric with a short description.

No database access is performed - this is purely informational.

Examples:
  # List metrics
  trendline metrics

  # As JSON
  trendline metrics --output json`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		setConfigSource()
		if err := readConfigFile(); err != nil {
			return err
		}
		output := schema.OutputMode(strings.ToLower(viper.GetString("output")))
		if _, ok := schema.ValidOutputModes[output]; !ok {
			return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, html, xlsx", output)
		}
		cfg.Output = output
		cfg.OutputFile = viper.GetString("output-file")
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.NewOutWriter().WriteMetrics(cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
