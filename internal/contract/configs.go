package contract

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/trendline/schema"
)

// Default values for configuration.
const (
	DefaultMetric    = schema.SalesMetric
	DefaultWindow    = 13
	MaxWindow        = 120
	DefaultTopK      = 8
	MaxTopK          = 100
	DefaultPrecision = 2
	MaxPrecision     = 6
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a query or import.
// This struct remains the "final, validated" config.
type Config struct {
	Metric      schema.Metric
	Window      int
	TopK        int
	Anchor      time.Time
	AnchorSet   bool // Anchor came from the user rather than the clock
	AuxFields   []string
	Entity      string
	GroupFilter string

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	ImportPath string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ImportPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Metric         string `mapstructure:"metric"`
	Window         int    `mapstructure:"window"`
	Top            int    `mapstructure:"top"`
	Anchor         string `mapstructure:"anchor"`
	Aux            string `mapstructure:"aux"`
	Entity         string `mapstructure:"entity"`
	GroupFilter    string `mapstructure:"group-filter"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.AuxFields = slices.Clone(c.AuxFields)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, clock Clock) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processWindow(cfg, input, clock); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateStoreBackend parses and checks the record store backend and its connection string.
func ValidateStoreBackend(backend, connStr string) (schema.DatabaseBackend, error) {
	b := schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidStoreBackends[b]; !ok {
		return "", fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql", backend)
	}
	if err := ValidateDatabaseConnectionString(b, connStr); err != nil {
		return "", err
	}
	return b, nil
}

// validateBackendConfigs validates record store and cache backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Store Backend Validation ---
	storeBackend, err := ValidateStoreBackend(input.StoreBackend, input.StoreDBConnect)
	if err != nil {
		return err
	}
	cfg.StoreBackend = storeBackend
	cfg.StoreDBConnect = input.StoreDBConnect

	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// Validate that cache and store use different SQLite files
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.StoreBackend == schema.SQLiteBackend {
		cachePath := ResolveSQLitePath(cfg.CacheDBConnect, GetCacheDBFilePath())
		storePath := ResolveSQLitePath(cfg.StoreDBConnect, GetStoreDBFilePath())
		if cachePath == storePath {
			return fmt.Errorf("cache and record storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-time fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Entity = strings.TrimSpace(input.Entity)
	cfg.GroupFilter = strings.TrimSpace(input.GroupFilter)
	cfg.ImportPath = input.ImportPathStr

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Metric Validation ---
	cfg.Metric = schema.Metric(strings.ToLower(strings.TrimSpace(input.Metric)))
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be one of %s", input.Metric, metricList())
	}

	// --- 2. TopK Validation ---
	if input.Top < 0 || input.Top > MaxTopK {
		return fmt.Errorf("top must be between 0 and %d (received %d)", MaxTopK, input.Top)
	}
	cfg.TopK = input.Top

	// --- 3. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, html, xlsx", input.Output)
	}

	// --- 4. Aux Processing ---
	cfg.AuxFields = ParseAuxList(input.Aux)

	return nil
}

// processWindow validates the window length and resolves the anchor day.
func processWindow(cfg *Config, input *ConfigRawInput, clock Clock) error {
	if input.Window < 1 || input.Window > MaxWindow {
		return fmt.Errorf("window must be between 1 and %d months (received %d)", MaxWindow, input.Window)
	}
	cfg.Window = input.Window

	anchor, err := ParseAnchor(input.Anchor, clock.Now())
	if err != nil {
		return err
	}
	cfg.Anchor = anchor
	cfg.AnchorSet = strings.TrimSpace(input.Anchor) != ""
	return nil
}

// RevalidateQuery applies per-request query overrides on top of an already validated
// config. An empty anchor keeps a user-supplied anchor and otherwise resolves to
// the clock's current day.
func RevalidateQuery(cfg *Config, metric string, window, top int, anchor string, clock Clock) error {
	m := schema.Metric(strings.ToLower(strings.TrimSpace(metric)))
	if _, ok := schema.ValidMetrics[m]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be one of %s", metric, metricList())
	}
	if window < 1 || window > MaxWindow {
		return fmt.Errorf("window must be between 1 and %d months (received %d)", MaxWindow, window)
	}
	if top < 0 || top > MaxTopK {
		return fmt.Errorf("top must be between 0 and %d (received %d)", MaxTopK, top)
	}
	if anchor != "" || !cfg.AnchorSet {
		parsed, err := ParseAnchor(anchor, clock.Now())
		if err != nil {
			return err
		}
		cfg.Anchor = parsed
	}
	cfg.Metric = m
	cfg.Window = window
	cfg.TopK = top
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ParseAuxList splits a comma-separated aux list, dropping blanks and duplicates.
func ParseAuxList(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// ResolveSQLitePath returns the absolute SQLite path for a connection string,
// falling back to the given default when it is empty.
func ResolveSQLitePath(connStr, fallback string) string {
	path := connStr
	if path == "" {
		path = fallback
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func metricList() string {
	names := make([]string, len(schema.AllMetrics))
	for i, m := range schema.AllMetrics {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
