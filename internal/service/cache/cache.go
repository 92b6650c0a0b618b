package cache

import (
	"encoding/json"
	"time"
)

// BytesCache is a minimal hot-cache API storing raw bytes with TTL. It sits
// in front of the durable cache store for high-churn reads such as the
// market overview.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// GetJSON reads and unmarshals a cached value.
func GetJSON[T any](c BytesCache, key string) (*T, bool, error) {
	b, ok, err := c.GetBytes(key)
	if err != nil || !ok {
		return nil, false, err
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false, nil // treat corrupt entry as a miss
	}
	return &v, true, nil
}

// SetJSON marshals and caches a value.
func SetJSON[T any](c BytesCache, key string, v *T, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.SetBytes(key, b, ttl)
}
