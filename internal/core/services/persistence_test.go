package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/rjb_tranz/internal/adapters/kv"
	"github.com/SscSPs/rjb_tranz/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type prefs struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

func TestPersistentValue_DefaultWhenMissing(t *testing.T) {
	store := kv.NewMemoryStore()
	v := services.NewPersistentValue(context.Background(), store, "prefs", prefs{Theme: "light"})
	assert.Equal(t, prefs{Theme: "light"}, v.Get())
}

func TestPersistentValue_WritesThroughAndReloads(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	v := services.NewPersistentValue(ctx, store, "prefs", prefs{})

	v.Set(ctx, prefs{Theme: "dark", Count: 1})
	got := v.Update(ctx, func(p prefs) prefs {
		p.Count++
		return p
	})
	assert.Equal(t, 2, got.Count)

	raw, found, err := store.Get(ctx, services.KeyPrefix+"prefs")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"theme":"dark","count":2}`, raw)

	reloaded := services.NewPersistentValue(ctx, store, "prefs", prefs{})
	assert.Equal(t, prefs{Theme: "dark", Count: 2}, reloaded.Get())
}

func TestPersistentValue_CorruptValueFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, services.KeyPrefix+"prefs", "{not json"))

	v := services.NewPersistentValue(ctx, store, "prefs", prefs{Theme: "light"})
	assert.Equal(t, prefs{Theme: "light"}, v.Get())
}

func TestPersistentValue_WriteFailureKeepsValue(t *testing.T) {
	ctx := context.Background()
	store := new(MockKVStore)
	store.On("Get", mock.Anything, "kv:prefs").Return("", false, nil).Once()
	store.On("Set", mock.Anything, "kv:prefs", mock.Anything).Return(errors.New("quota exceeded")).Once()

	v := services.NewPersistentValue(ctx, store, "prefs", prefs{})
	v.Set(ctx, prefs{Theme: "dark"})

	assert.Equal(t, prefs{Theme: "dark"}, v.Get())
	store.AssertExpectations(t)
}

func TestPersistentValue_ReadFailureFallsBackToDefault(t *testing.T) {
	store := new(MockKVStore)
	store.On("Get", mock.Anything, "kv:prefs").Return("", false, errors.New("connection refused")).Once()

	v := services.NewPersistentValue(context.Background(), store, "prefs", prefs{Count: 7})
	assert.Equal(t, 7, v.Get().Count)
}
