package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
)

// viewTable is the name of the table for view caching.
const viewTable = "trendline_view_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager with the record store and the view cache.
// storeBackend and cacheBackend can be empty to skip the corresponding store.
func InitStores(storeBackend schema.DatabaseBackend, storeConnStr string, cacheBackend schema.DatabaseBackend, cacheConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var err error

		var records contract.RecordStore
		if storeBackend != "" {
			records, err = NewRecordStore(storeBackend, storeConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize record store: %w", err)
				return
			}
		}

		var views contract.CacheStore
		if cacheBackend != "" {
			views, err = NewCacheStore(viewTable, cacheBackend, cacheConnStr)
			if err != nil {
				if records != nil {
					_ = records.Close()
				}
				initErr = fmt.Errorf("failed to initialize view cache: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.records = records
		Manager.views = views
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.views != nil {
			_ = Manager.views.Close()
		}
		if Manager.records != nil {
			_ = Manager.records.Close()
		}
	})
}

// ClearCache clears the view cache for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTable(backend, connStr, viewTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}
