package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
)

// currentCacheVersion defines the version of the cached view schema
const currentCacheVersion = 1

// cacheTTL bounds how long a cached view is served.
const cacheTTL = 7 * 24 * time.Hour

// cachedView returns the view from the cache when possible and computes it otherwise.
func cachedView(ctx context.Context, cfg *contract.Config, records contract.RecordStore, views contract.CacheStore) (*schema.View, error) {
	if views == nil {
		return buildViewFromStore(ctx, cfg, records)
	}

	fingerprint, err := records.Fingerprint(ctx, cfg.Metric)
	if err != nil {
		contract.LogWarn("Skipping view cache", err)
		return buildViewFromStore(ctx, cfg, records)
	}
	key := generateCacheKey(cfg, fingerprint)

	if result := checkCacheHit(views, key); result != nil {
		return result, nil
	}
	return computeAndStore(ctx, cfg, records, views, key)
}

// checkCacheHit attempts to retrieve and validate a cached view
func checkCacheHit(views contract.CacheStore, key string) *schema.View {
	data, version, ts, err := views.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion && time.Since(time.Unix(ts, 0)) <= cacheTTL {
		var result schema.View
		if err := json.Unmarshal(data, &result); err == nil {
			return &result // Cache hit
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the view and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, records contract.RecordStore, views contract.CacheStore, key string) (*schema.View, error) {
	result, err := buildViewFromStore(ctx, cfg, records)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := views.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to cache view", err)
		}
	}

	return result, nil
}

// generateCacheKey creates a unique key based on the query parameters and the store state
func generateCacheKey(cfg *contract.Config, fingerprint string) string {
	key := fmt.Sprintf("%s:%s:%d:%d:%s:%s:%s:%s",
		cfg.Metric,
		cfg.Anchor.Format("2006-01"),
		cfg.Window,
		cfg.TopK,
		strings.Join(cfg.AuxFields, ","),
		cfg.GroupFilter,
		cfg.Entity,
		fingerprint,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
