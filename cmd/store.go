package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/iocache"
	"github.com/huangsam/trendline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadStoreConfig reads the record store backend and connection string without the full setup.
func loadStoreConfig() (schema.DatabaseBackend, string, error) {
	setConfigSource()
	if err := readConfigFile(); err != nil {
		return "", "", err
	}
	connStr := viper.GetString("store-db-connect")
	backend, err := contract.ValidateStoreBackend(viper.GetString("store-backend"), connStr)
	if err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// storeSetup initializes only the record store.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	backend, connStr, err := loadStoreConfig()
	if err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads the store config without opening the store,
// allowing migrations to run on a fresh database or towards an older version.
func storeMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := loadStoreConfig()
	if err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeCmd focused on record store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the record store that holds metric records and events",
	Long: `Manage the database holding imported records and events.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show record counts, covered months and table sizes
  migrate - Run database schema migrations

Examples:
  # Check what has been imported
  trendline store status

  # Upgrade the schema after installing a new release
  trendline store migrate`,
}

// storeStatusCmd shows record store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record store statistics and connection details",
	Long: `Show detailed information about the record store.

Displays:
- Backend type and schema version
- Total records and the months they cover
- Records per metric and total events
- Database table sizes

Examples:
  # Check record store status
  trendline store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetRecordStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}

// storeMigrateCmd runs database migrations for the record store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the record store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  trendline store migrate

  # Migrate to specific version
  trendline store migrate --target-version 2

  # Rollback to initial state
  trendline store migrate --target-version 0`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
