package ports

import "context"

// KeyValueStore persists opaque string values by key. Get returns domain.ErrKeyNotFound
// (possibly wrapped) when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
