package iocache

import (
	"context"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetViewStore implements the CacheManager interface.
func (m *MockCacheManager) GetViewStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetRecordStore implements the CacheManager interface.
func (m *MockCacheManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RecordStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// LoadRecords implements the RecordStore interface.
func (m *MockRecordStore) LoadRecords(ctx context.Context, metric schema.Metric, from, to time.Time) ([]schema.DatedRecord, error) {
	args := m.Called(ctx, metric, from, to)
	records, _ := args.Get(0).([]schema.DatedRecord)
	return records, args.Error(1)
}

// LoadEvents implements the RecordStore interface.
func (m *MockRecordStore) LoadEvents(ctx context.Context, entity string, from, to time.Time) ([]schema.Event, error) {
	args := m.Called(ctx, entity, from, to)
	events, _ := args.Get(0).([]schema.Event)
	return events, args.Error(1)
}

// InsertRecords implements the RecordStore interface.
func (m *MockRecordStore) InsertRecords(ctx context.Context, metric schema.Metric, records []schema.DatedRecord) (int, error) {
	args := m.Called(ctx, metric, records)
	return args.Int(0), args.Error(1)
}

// InsertEvents implements the RecordStore interface.
func (m *MockRecordStore) InsertEvents(ctx context.Context, events []schema.Event) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

// Fingerprint implements the RecordStore interface.
func (m *MockRecordStore) Fingerprint(ctx context.Context, metric schema.Metric) (string, error) {
	args := m.Called(ctx, metric)
	return args.String(0), args.Error(1)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
