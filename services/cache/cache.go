package cache

import "time"

// CacheService defines the interface for short-lived key storage. The
// fetcher uses it to remember hosts that asked us to back off.
type CacheService interface {
	// Get retrieves a value by key
	Get(key string) ([]byte, error)

	// Set stores a value with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value by key
	Delete(key string) error
}
