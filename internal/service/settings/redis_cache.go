package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront-admin/internal/repository"
)

const redisKeyPrefix = "settings:"

func redisKey(key string) string {
	return redisKeyPrefix + key
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger.Named("settings_cache")}
}

func (c *RedisCache) Get(ctx context.Context, key string) (repository.Record, bool) {
	cached, err := c.client.Get(ctx, redisKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var rec repository.Record
	if err := json.Unmarshal([]byte(cached), &rec); err != nil {
		return nil, false
	}
	return rec, true
}

func (c *RedisCache) Set(ctx context.Context, key string, rec repository.Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, redisKey(key), data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = redisKey(key)
	}
	_ = c.client.Del(ctx, prefixed...).Err()
}

func (c *RedisCache) Clear(ctx context.Context) {
	keys, _ := c.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if len(keys) > 0 {
		_ = c.client.Del(ctx, keys...).Err()
	}
}
