package settings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/repository"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, ttl, nil), server
}

func TestRedisCache_SetGetExpires(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestRedisCache(t, time.Minute)

	_, ok := cache.Get(ctx, domain.StoreSettingsCollection)
	assert.False(t, ok)

	cache.Set(ctx, domain.StoreSettingsCollection, repository.Record{"id": "store_settings", "currency": "IDR"})
	assert.Equal(t, time.Minute, server.TTL("settings:store_settings"))

	rec, ok := cache.Get(ctx, domain.StoreSettingsCollection)
	require.True(t, ok)
	assert.Equal(t, "IDR", rec["currency"])

	server.FastForward(time.Minute)
	_, ok = cache.Get(ctx, domain.StoreSettingsCollection)
	assert.False(t, ok)
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestRedisCache(t, time.Minute)
	require.NoError(t, server.Set("sessions:abc", "keep"))

	cache.Set(ctx, "store_settings", repository.Record{"id": "store_settings"})
	cache.Set(ctx, "site_settings", repository.Record{"id": "site_settings"})

	cache.Delete(ctx, "store_settings")
	assert.False(t, server.Exists("settings:store_settings"))
	assert.True(t, server.Exists("settings:site_settings"))

	cache.Clear(ctx)
	assert.False(t, server.Exists("settings:site_settings"))
	assert.True(t, server.Exists("sessions:abc"))
}

func TestRedisCache_GarbageIsAMiss(t *testing.T) {
	cache, server := newTestRedisCache(t, time.Minute)
	require.NoError(t, server.Set("settings:store_settings", "not json"))

	_, ok := cache.Get(context.Background(), "store_settings")
	assert.False(t, ok)
}

func TestGetSettings_ThroughRedis(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestRedisCache(t, time.Minute)
	store := repository.NewMemoryCollectionStore()
	svc := NewService(store, cache, nil)

	_, err := store.Create(ctx, domain.StoreSettingsCollection, repository.Record{"id": "store_settings", "currency": "IDR"})
	require.NoError(t, err)

	rec, err := svc.GetSettings(ctx, domain.StoreSettingsCollection)
	require.NoError(t, err)
	assert.Equal(t, "IDR", rec["currency"])
	assert.True(t, server.Exists("settings:store_settings"))

	_, err = svc.UpdateSettings(ctx, domain.StoreSettingsCollection, repository.Record{"currency": "USD"})
	require.NoError(t, err)
	assert.False(t, server.Exists("settings:store_settings"))

	rec, err = svc.GetSettings(ctx, domain.StoreSettingsCollection)
	require.NoError(t, err)
	assert.Equal(t, "USD", rec["currency"])
}
