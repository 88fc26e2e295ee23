package repository

import "context"

// KeyValueRepository defines the interface for the durable local
// key-value store used by the license layer
type KeyValueRepository interface {
	// Get returns the value for key and whether a row exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
