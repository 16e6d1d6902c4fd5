// Package cache stores search provider responses so repeated claims in a
// document (or repeated checks of the same document) do not burn API quota.
// Entries are TTL-bound; nothing here persists verification runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SearchKey generates a cache key for a search provider query
func SearchKey(provider, query string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + query))
	return "veridoc:search:v1:" + hex.EncodeToString(hash[:])
}
