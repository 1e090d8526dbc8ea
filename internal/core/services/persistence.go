package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
)

// KeyPrefix namespaces every key this application stores in a KV backend.
const KeyPrefix = "kv:"

func namespaced(key string) string {
	return KeyPrefix + key
}

// loadJSON reads and decodes key. A missing key reports found=false with a nil error.
func loadJSON[T any](ctx context.Context, store portsrepo.KVStore, key string) (T, bool, error) {
	var out T
	raw, found, err := store.Get(ctx, namespaced(key))
	if err != nil || !found {
		return out, false, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, false, fmt.Errorf("corrupt value for %q: %w", key, err)
	}
	return out, true, nil
}

func saveJSON[T any](ctx context.Context, store portsrepo.KVStore, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return store.Set(ctx, namespaced(key), string(raw))
}

func removeKey(ctx context.Context, store portsrepo.KVStore, key string) error {
	return store.Delete(ctx, namespaced(key))
}

// PersistentValue is a single JSON value mirrored to a KV backend. It is read once at
// construction and written through on every change. Backend problems are logged and
// never surface to callers: a missing or corrupt stored value yields the default, and a
// failed write keeps the new value in memory.
type PersistentValue[T any] struct {
	BaseService
	store portsrepo.KVStore
	key   string

	mu    sync.RWMutex
	value T
}

// NewPersistentValue loads key from store, falling back to def.
func NewPersistentValue[T any](ctx context.Context, store portsrepo.KVStore, key string, def T) *PersistentValue[T] {
	p := &PersistentValue[T]{store: store, key: key, value: def}
	stored, found, err := loadJSON[T](ctx, store, key)
	switch {
	case err != nil:
		p.LogWarn(ctx, "Failed to load persisted value, using default", slog.String("key", key), slog.String("error", err.Error()))
	case found:
		p.value = stored
	}
	return p
}

// Get returns the current value.
func (p *PersistentValue[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set replaces the value and writes it through.
func (p *PersistentValue[T]) Set(ctx context.Context, value T) {
	p.mu.Lock()
	p.value = value
	p.mu.Unlock()
	p.persist(ctx, value)
}

// Update applies fn to the current value under the lock and writes the result through.
func (p *PersistentValue[T]) Update(ctx context.Context, fn func(T) T) T {
	p.mu.Lock()
	p.value = fn(p.value)
	value := p.value
	p.mu.Unlock()
	p.persist(ctx, value)
	return value
}

func (p *PersistentValue[T]) persist(ctx context.Context, value T) {
	if err := saveJSON(ctx, p.store, p.key, value); err != nil {
		p.LogError(ctx, err, "Failed to persist value", slog.String("key", p.key))
	}
}
