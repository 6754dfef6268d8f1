// Package iocache owns the SQL-backed record store and view cache.
package iocache

import (
	"sync"

	"github.com/huangsam/trendline/internal/contract"
)

// CacheStoreManager manages the view cache and the record store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	views        contract.CacheStore
	records      contract.RecordStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetViewStore returns the view CacheStore.
func (mgr *CacheStoreManager) GetViewStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.views
}

// GetRecordStore returns the RecordStore.
func (mgr *CacheStoreManager) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}
