// Package cmd defines the command-line interface for trendline.
package cmd

import (
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the import subcommands to the parent import command
	importCmd.AddCommand(importRecordsCmd)
	importCmd.AddCommand(importEventsCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("metric", "m", string(contract.DefaultMetric), "Metric: sales, purchases, consumption, manufacture, material_cost, handling_cost, total_cost, margin")
	rootCmd.PersistentFlags().IntP("window", "w", contract.DefaultWindow, "Number of calendar months ending at the anchor month")
	rootCmd.PersistentFlags().IntP("top", "t", contract.DefaultTopK, "Number of groups charted individually; the rest merge into Other")
	rootCmd.PersistentFlags().String("anchor", "", "Anchor date in ISO8601 or time ago (default today)")
	rootCmd.PersistentFlags().String("aux", "", "Comma-separated auxiliary fields averaged in the table (e.g. quantity,unit_price)")
	rootCmd.PersistentFlags().String("entity", "", "Only overlay events of this entity")
	rootCmd.PersistentFlags().StringP("group-filter", "f", "", "Only include groups whose key starts with this prefix")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or html or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for the record store (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "View cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for the view cache (must differ from store-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
