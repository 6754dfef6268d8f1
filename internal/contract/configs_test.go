package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Metric:       string(schema.SalesMetric),
		Window:       DefaultWindow,
		Top:          DefaultTopK,
		Precision:    DefaultPrecision,
		Output:       "text",
		Color:        "yes",
		StoreBackend: string(schema.SQLiteBackend),
		CacheBackend: string(schema.NoneBackend),
	}
}

func TestProcessAndValidate(t *testing.T) {
	clock := FixedClock{T: fixedNow}

	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid defaults", mutate: func(*ConfigRawInput) {}},
		{name: "invalid metric", mutate: func(in *ConfigRawInput) { in.Metric = "profit" }, expectError: true},
		{name: "metric is case insensitive", mutate: func(in *ConfigRawInput) { in.Metric = "MARGIN" }},
		{name: "zero window", mutate: func(in *ConfigRawInput) { in.Window = 0 }, expectError: true},
		{name: "window too large", mutate: func(in *ConfigRawInput) { in.Window = MaxWindow + 1 }, expectError: true},
		{name: "negative top", mutate: func(in *ConfigRawInput) { in.Top = -1 }, expectError: true},
		{name: "zero top is allowed", mutate: func(in *ConfigRawInput) { in.Top = 0 }},
		{name: "top too large", mutate: func(in *ConfigRawInput) { in.Top = MaxTopK + 1 }, expectError: true},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 7 }, expectError: true},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "pdf" }, expectError: true},
		{name: "html output", mutate: func(in *ConfigRawInput) { in.Output = "HTML" }},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "bad anchor", mutate: func(in *ConfigRawInput) { in.Anchor = "next tuesday" }, expectError: true},
		{name: "store cannot be none", mutate: func(in *ConfigRawInput) { in.StoreBackend = "none" }, expectError: true},
		{name: "bad cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: true},
		{
			name: "mysql store without connection",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.MySQLBackend)
			},
			expectError: true,
		},
		{
			name: "postgres store with connection",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.PostgreSQLBackend)
				in.StoreDBConnect = "host=localhost dbname=trendline"
			},
		},
		{
			name: "store and cache share sqlite file",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.SQLiteBackend)
				in.CacheDBConnect = "shared.db"
				in.StoreDBConnect = "shared.db"
			},
			expectError: true,
		},
		{
			name: "store and cache use distinct sqlite files",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.SQLiteBackend)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input, clock)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, input.Window, cfg.Window)
			assert.Equal(t, input.Top, cfg.TopK)
		})
	}
}

func TestProcessAndValidateAnchorAndAux(t *testing.T) {
	input := validInput()
	input.Anchor = "2024-06-15"
	input.Aux = "Unit_Price, quantity,,unit_price"
	input.Entity = "  SKU-1 "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, FixedClock{T: fixedNow}))

	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), cfg.Anchor)
	assert.True(t, cfg.AnchorSet)
	assert.Equal(t, []string{"unit_price", "quantity"}, cfg.AuxFields)
	assert.Equal(t, "SKU-1", cfg.Entity)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateDefaultAnchorUsesClock(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(), FixedClock{T: fixedNow}))
	assert.Equal(t, time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC), cfg.Anchor)
	assert.False(t, cfg.AnchorSet)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Metric: schema.MarginMetric, AuxFields: []string{"quantity"}}
	clone := cfg.Clone()
	clone.AuxFields[0] = "changed"
	clone.Metric = schema.SalesMetric
	assert.Equal(t, "quantity", cfg.AuxFields[0])
	assert.Equal(t, schema.MarginMetric, cfg.Metric)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql ok", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/trendline", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/trendline", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres ok", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=trendline", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseAuxList(t *testing.T) {
	assert.Nil(t, ParseAuxList(""))
	assert.Equal(t, []string{"a", "b"}, ParseAuxList(" a ,B,a"))
}

func TestResolveSQLitePath(t *testing.T) {
	abs, err := filepath.Abs("x.db")
	require.NoError(t, err)
	assert.Equal(t, abs, ResolveSQLitePath("x.db", "ignored.db"))
	assert.True(t, filepath.IsAbs(ResolveSQLitePath("", "fallback.db")))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)
	require.NoError(t, ProcessProfilingConfig(profile, "trendline"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "trendline", profile.Prefix)
}

func TestRevalidateQuery(t *testing.T) {
	clock := FixedClock{T: fixedNow}
	base := &Config{Metric: schema.SalesMetric, Window: 13, TopK: 8, Anchor: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), AnchorSet: true}

	t.Run("valid overrides", func(t *testing.T) {
		cfg := base.Clone()
		require.NoError(t, RevalidateQuery(cfg, "Margin", 6, 0, "2024-06-15", clock))
		assert.Equal(t, schema.MarginMetric, cfg.Metric)
		assert.Equal(t, 6, cfg.Window)
		assert.Equal(t, 0, cfg.TopK)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), cfg.Anchor)
	})

	t.Run("empty anchor keeps configured", func(t *testing.T) {
		cfg := base.Clone()
		require.NoError(t, RevalidateQuery(cfg, "sales", 13, 8, "", clock))
		assert.Equal(t, base.Anchor, cfg.Anchor)
	})

	t.Run("empty anchor follows the clock when unset", func(t *testing.T) {
		cfg := base.Clone()
		cfg.AnchorSet = false
		require.NoError(t, RevalidateQuery(cfg, "sales", 13, 8, "", clock))
		assert.Equal(t, time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC), cfg.Anchor)

		later := FixedClock{T: fixedNow.AddDate(0, 2, 0)}
		require.NoError(t, RevalidateQuery(cfg, "sales", 13, 8, "", later))
		assert.Equal(t, time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC), cfg.Anchor)
	})

	tests := []struct {
		name    string
		metric  string
		window  int
		top     int
		anchor  string
		wantErr string
	}{
		{"bad metric", "revenue", 13, 8, "", "invalid metric"},
		{"zero window", "sales", 0, 8, "", "window must be between"},
		{"huge window", "sales", MaxWindow + 1, 8, "", "window must be between"},
		{"negative top", "sales", 13, -1, "", "top must be between"},
		{"bad anchor", "sales", 13, 8, "yesterday-ish", "anchor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base.Clone()
			err := RevalidateQuery(cfg, tt.metric, tt.window, tt.top, tt.anchor, clock)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, base.Metric, cfg.Metric, "config must be untouched on error")
		})
	}
}
