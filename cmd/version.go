package cmd

import (
	"runtime"

	"github.com/huangsam/trendline/internal/iocache"
	"github.com/huangsam/trendline/schema"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of trendline.",
	Long: `Display version information including build details.

Shows:
- Release version
- Git commit hash
- Build timestamp
- Go runtime version
- Record store schema version shipped with this binary`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("trendline CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
		if v, err := iocache.LatestSchemaVersion(schema.SQLiteBackend); err == nil {
			cmd.Printf("  Schema:  %d\n", v)
		}
	},
}
