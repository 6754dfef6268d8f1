package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/iocache"
	mcp_internal "github.com/huangsam/trendline/internal/mcp"
	"github.com/huangsam/trendline/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Metric:       schema.SalesMetric,
		Window:       3,
		TopK:         1,
		Precision:    2,
		Output:       schema.TextOut,
		StoreBackend: schema.SQLiteBackend,
		CacheBackend: schema.NoneBackend,
	}
}

func testManager() (*iocache.MockCacheManager, *iocache.MockRecordStore) {
	store := &iocache.MockRecordStore{}
	store.On("LoadRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]schema.DatedRecord{
		{Year: 2024, Month: 5, Value: 100, GroupKey: "alpha", GroupName: "Alpha"},
		{Year: 2024, Month: 6, Value: 50, GroupKey: "bravo", GroupName: "Bravo"},
		{Year: 2024, Month: 6, Value: 25, GroupKey: "charlie"},
	}, nil)
	store.On("LoadEvents", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]schema.Event{}, nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetRecordStore").Return(store)
	mgr.On("GetViewStore").Return(nil)
	return mgr, store
}

func callTool(t *testing.T, name string, args map[string]any, mgr contract.CacheManager) *mcp.CallToolResult {
	t.Helper()
	return callToolWith(t, baseConfig(), contract.SystemClock{}, name, args, mgr)
}

func callToolWith(t *testing.T, cfg *contract.Config, clock contract.Clock, name string, args map[string]any, mgr contract.CacheManager) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, mgr, clock)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	// The manager is never reached because validation fails first
	var mgr contract.CacheManager

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		wantErr string
	}{
		{"unknown metric", "get_series", map[string]any{"metric": "revenue"}, "invalid metric"},
		{"zero window", "get_table", map[string]any{"window": 0.0}, "window must be between"},
		{"negative top", "get_series", map[string]any{"top": -2.0}, "top must be between"},
		{"bad anchor", "get_table", map[string]any{"anchor": "someday"}, "invalid anchor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, tt.tool, tt.args, mgr)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.wantErr)
		})
	}
}

func TestMCPServerHandlers_GetSeries(t *testing.T) {
	mgr, store := testManager()
	res := callTool(t, "get_series", map[string]any{"anchor": "2024-06-30", "top": 1.0}, mgr)
	require.False(t, res.IsError, resultText(t, res))

	var payload struct {
		Metric schema.Metric       `json:"metric"`
		TopK   int                 `json:"top_k"`
		Series schema.RenderSeries `json:"series"`
		Empty  bool                `json:"empty"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	assert.Equal(t, schema.SalesMetric, payload.Metric)
	assert.Equal(t, 1, payload.TopK)
	assert.False(t, payload.Empty)
	require.Len(t, payload.Series.Datasets, 2)
	assert.True(t, payload.Series.Datasets[0].IsOther)
	assert.Equal(t, "alpha", payload.Series.Datasets[1].Key)
	assert.Equal(t, []string{"2024-04", "2024-05", "2024-06"}, payload.Series.Labels)

	store.AssertExpectations(t)
}

func TestMCPServerHandlers_GetTable(t *testing.T) {
	mgr, _ := testManager()
	res := callTool(t, "get_table", map[string]any{"anchor": "2024-06-30", "metric": "sales"}, mgr)
	require.False(t, res.IsError, resultText(t, res))

	var payload struct {
		Window []string            `json:"window"`
		Table  schema.TableSummary `json:"table"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	require.Len(t, payload.Table.Rows, 3, "the table covers every group, not only the top-K")
	assert.InDelta(t, 175, payload.Table.GrandTotal, 1e-9)
	assert.Equal(t, "charlie", payload.Table.Rows[2].Name)
}

func TestMCPServerHandlers_DefaultAnchorFollowsClock(t *testing.T) {
	startup := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	later := contract.FixedClock{T: time.Date(2024, time.August, 2, 9, 30, 0, 0, time.UTC)}

	windowOf := func(t *testing.T, cfg *contract.Config, args map[string]any) []string {
		t.Helper()
		mgr, _ := testManager()
		res := callToolWith(t, cfg, later, "get_table", args, mgr)
		require.False(t, res.IsError, resultText(t, res))
		var payload struct {
			Window []string `json:"window"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
		return payload.Window
	}

	t.Run("unset anchor resolves per request", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Anchor = startup
		assert.Equal(t, []string{"2024-06", "2024-07", "2024-08"}, windowOf(t, cfg, nil))
	})

	t.Run("configured anchor is kept", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Anchor = startup
		cfg.AnchorSet = true
		assert.Equal(t, []string{"2024-04", "2024-05", "2024-06"}, windowOf(t, cfg, nil))
	})

	t.Run("request anchor wins", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Anchor = startup
		cfg.AnchorSet = true
		assert.Equal(t, []string{"2024-03", "2024-04", "2024-05"}, windowOf(t, cfg, map[string]any{"anchor": "2024-05-01"}))
	})
}

func TestMCPServerHandlers_ListMetrics(t *testing.T) {
	res := callTool(t, "list_metrics", nil, nil)
	require.False(t, res.IsError)

	var defs []struct {
		Name    string `json:"name"`
		Default bool   `json:"default"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &defs))
	require.Len(t, defs, len(schema.AllMetrics))
	assert.Equal(t, "sales", defs[0].Name)
	assert.True(t, defs[0].Default)
}
