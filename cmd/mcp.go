package cmd

import (
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Trendline MCP server",
	Long:  `Launch an MCP server that allows AI agents to query chart series and tables via standard tools.`,
	Args:  cobra.NoArgs,
	// Headers are suppressed per request since stdio carries the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager, contract.SystemClock{})
	},
}
