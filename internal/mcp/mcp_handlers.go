package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/trendline/core"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/outwriter"
	"github.com/huangsam/trendline/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	clock   contract.Clock
}

// seriesResult is the get_series payload.
type seriesResult struct {
	Metric schema.Metric       `json:"metric"`
	TopK   int                 `json:"top_k"`
	Series schema.RenderSeries `json:"series"`
	Empty  bool                `json:"empty"`
}

// tableResult is the get_table payload.
type tableResult struct {
	Metric schema.Metric       `json:"metric"`
	Window []string            `json:"window"`
	Table  schema.TableSummary `json:"table"`
}

// configFor clones the base config and applies the request's query overrides.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	metric := request.GetString("metric", string(cfg.Metric))
	window := request.GetInt("window", cfg.Window)
	top := request.GetInt("top", cfg.TopK)
	anchor := request.GetString("anchor", "")

	if err := contract.RevalidateQuery(cfg, metric, window, top, anchor, h.clock); err != nil {
		return nil, err
	}
	if e := request.GetString("entity", ""); e != "" {
		cfg.Entity = e
	}
	if g := request.GetString("group_filter", ""); g != "" {
		cfg.GroupFilter = g
	}
	return cfg, nil
}

func (h *toolHandler) handleGetSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid query parameters: %v", err)), nil
	}

	view, _, err := core.GetViewResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(seriesResult{
		Metric: view.Metric,
		TopK:   view.TopK,
		Series: view.Series,
		Empty:  view.Series.IsEmpty(),
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid query parameters: %v", err)), nil
	}

	view, _, err := core.GetViewResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("table query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(tableResult{
		Metric: view.Metric,
		Window: view.Window,
		Table:  view.Table,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(outwriter.BuildMetricDefinitions(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
