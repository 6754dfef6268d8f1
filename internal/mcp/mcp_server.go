// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// queryParams are shared by the view tools.
func queryParams() []mcp.ToolOption {
	metrics := make([]string, len(schema.AllMetrics))
	for i, m := range schema.AllMetrics {
		metrics[i] = string(m)
	}
	return []mcp.ToolOption{
		mcp.WithString("metric", mcp.Description("Metric to aggregate. Defaults to the configured metric."), mcp.Enum(metrics...)),
		mcp.WithNumber("window", mcp.Description("Number of calendar months ending at the anchor month.")),
		mcp.WithNumber("top", mcp.Description("Number of groups charted individually; the rest merge into 'Other'.")),
		mcp.WithString("anchor", mcp.Description("Anchor date (YYYY-MM-DD, RFC3339 or 'N months ago'). Defaults to today.")),
		mcp.WithString("entity", mcp.Description("Only overlay events of this entity.")),
		mcp.WithString("group_filter", mcp.Description("Only include groups whose key starts with this prefix.")),
	}
}

// NewMCPServer initializes and configures the trendline MCP server without starting it.
// This is exposed for unit testing. Requests without an anchor resolve it against clock
// unless the base config pins one.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, clock contract.Clock) *server.MCPServer {
	s := server.NewMCPServer(
		"Trendline Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		clock:   clock,
	}

	// --- 1. Tool: get_series ---
	s.AddTool(mcp.NewTool("get_series", append([]mcp.ToolOption{
		mcp.WithDescription("Build the month-by-month stacked chart series of a metric: top groups in stacking order, an 'Other' bucket and event annotations."),
	}, queryParams()...)...), h.handleGetSeries)

	// --- 2. Tool: get_table ---
	s.AddTool(mcp.NewTool("get_table", append([]mcp.ToolOption{
		mcp.WithDescription("Summarize every group of a metric over the window: total, share of the grand total and monthly average."),
	}, queryParams()...)...), h.handleGetTable)

	// --- 3. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List the metrics that can be queried."),
	), h.handleListMetrics)

	return s
}

// StartMCPServer starts the trendline MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager, clock contract.Clock) error {
	s := NewMCPServer(baseCfg, mgr, clock)
	return server.ServeStdio(s)
}
