// Package cache provides the TTL key/value stores used in front of
// third-party API calls.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Store is a byte-oriented cache with per-entry TTL.
type Store interface {
	// Get returns the cached value and true, or false on a miss or expiry.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// GenerateKey derives a compact cache key from a prefix and the request
// parameters.
func GenerateKey(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}
