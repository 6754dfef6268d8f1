package schema

import "time"

// CacheStatus represents the status of the view cache.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// StoreStatus represents the status of the record store.
type StoreStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	SchemaVersion    int              `json:"schema_version"`
	TotalRecords     int              `json:"total_records"`
	TotalEvents      int              `json:"total_events"`
	RecordsPerMetric map[Metric]int   `json:"records_per_metric"`
	OldestRecord     time.Time        `json:"oldest_record"`
	NewestRecord     time.Time        `json:"newest_record"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}
