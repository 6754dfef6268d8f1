// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/trendline/schema"
)

// RecordStore defines the operations for reading and writing dated records and events.
// This allows the aggregation logic to be tested without a real database.
type RecordStore interface {
	// LoadRecords returns the records of a metric dated in [from, to).
	LoadRecords(ctx context.Context, metric schema.Metric, from, to time.Time) ([]schema.DatedRecord, error)

	// LoadEvents returns the events dated in [from, to). An empty entity matches every entity.
	LoadEvents(ctx context.Context, entity string, from, to time.Time) ([]schema.Event, error)

	// InsertRecords stores records for a metric and returns the number of rows written.
	InsertRecords(ctx context.Context, metric schema.Metric, records []schema.DatedRecord) (int, error)

	// InsertEvents stores events and returns the number of rows written.
	InsertEvents(ctx context.Context, events []schema.Event) (int, error)

	// Fingerprint summarizes the stored state of a metric so cached views can be invalidated.
	Fingerprint(ctx context.Context, metric schema.Metric) (string, error)

	// GetStatus returns status information about the record store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// CacheManager defines the interface for managing stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetViewStore() CacheStore
	GetRecordStore() RecordStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// Clock supplies the current time. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}
