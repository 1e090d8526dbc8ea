package repositories

import "context"

// KVStore is a string key-value backend. Keys arrive already namespaced.
type KVStore interface {
	// Get reports found=false with a nil error for a missing key.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
