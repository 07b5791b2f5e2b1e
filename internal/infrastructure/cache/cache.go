package cache

import (
	"context"
	"time"
)

// Cache is a small key/value cache for serialized read models.
// Values are opaque strings (typically JSON); a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
