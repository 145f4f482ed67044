package ports

import (
	"context"
	"time"
)

// SessionStorage is the durable key-value slot the session store writes to.
// Each write is atomic at the key level; Delete removes all given keys in a
// single operation.
type SessionStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
