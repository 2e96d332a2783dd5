// Package cache stores JSON-encoded values under string keys with a TTL.
//
// Two drivers share the Store interface: Redis for deployments where carts
// must survive a restart or be shared by several replicas, and an in-process
// map for single-node and test use.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key/value cache of JSON values.
type Store interface {
	// Get decodes the value under key into dest. ok is false on a miss.
	Get(ctx context.Context, key string, dest any) (ok bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Driver() string
}
