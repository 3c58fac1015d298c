package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL is how long a cached result stays valid.
const cacheTTL = 7 * 24 * time.Hour

// cachedCfd returns the cumulative flow of the snapshot, reusing a stored
// result when the same snapshot and window were computed before.
func cachedCfd(cfg *contract.Config, snap *schema.Snapshot, mgr contract.CacheManager) (schema.CfdResult, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetResultStore()
	}
	if store == nil {
		// Fallback to direct computation
		return computeCfd(cfg, snap), nil
	}

	key, err := generateCacheKey(cfg, snap)
	if err != nil {
		return schema.CfdResult{}, err
	}

	// Check for cache hit
	if result := checkCacheHit(store, key, cfg.Now); result != nil {
		return *result, nil
	}

	// Cache miss: compute and store
	return computeAndStore(cfg, snap, store, key), nil
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string, now time.Time) *schema.CfdResult {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion && now.Sub(time.Unix(ts, 0)) <= cacheTTL {
		var result schema.CfdResult
		if err := json.Unmarshal(data, &result); err == nil {
			return &result // Cache hit
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(cfg *contract.Config, snap *schema.Snapshot, store contract.CacheStore, key string) schema.CfdResult {
	result := computeCfd(cfg, snap)
	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, cfg.Now.Unix()); err != nil {
			contract.LogWarn("Failed to cache result", err)
		}
	}
	return result
}

// computeCfd runs the aggregator and wraps the points with their window.
func computeCfd(cfg *contract.Config, snap *schema.Snapshot) schema.CfdResult {
	result := schema.CfdResult{Days: cfg.WindowDays, Points: []schema.CfdPoint{}}
	if start, end, ok := CfdWindow(snap.Issues, cfg.WindowEnd, cfg.WindowDays); ok {
		result.Start, result.End = start, end
		result.Points = BuildCfd(snap.Issues, cfg.WindowEnd, cfg.WindowDays)
	}
	return result
}

// generateCacheKey creates a unique key from the snapshot content and the window.
func generateCacheKey(cfg *contract.Config, snap *schema.Snapshot) (string, error) {
	digest, err := snapshot.Digest(snap)
	if err != nil {
		return "", err
	}
	// Truncate so reruns within the same hour share an entry
	endHour := cfg.WindowEnd.Truncate(contract.CacheGranularity)

	key := fmt.Sprintf("cfd:%s:%d:%s:%d",
		digest,
		endHour.Unix(),
		endHour.Location(),
		cfg.WindowDays,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), nil
}
