package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vsynytsia/clothing-shop/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 5 * time.Minute,
	}
}

// RedisCache keeps catalog items hot between menu screens. A short TTL with
// jitter keeps stale stock from surviving long and spreads out expirations.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, itemID int64) (*domain.CatalogItem, error) {
	key := cacheKey(itemID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var item domain.CatalogItem
	if err2 := json.Unmarshal(data, &item); err2 != nil {
		return nil, fmt.Errorf("unmarshal catalog item failed: %w", err2)
	}

	return &item, nil
}

func (r RedisCache) Set(ctx context.Context, item *domain.CatalogItem) error {
	key := cacheKey(item.ID)
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal catalog item failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(30)) * time.Second
	ttl := r.baseTTL + jitter
	if ret := r.client.Set(ctx, key, data, ttl); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, itemID int64) error {
	if err := r.client.Del(ctx, cacheKey(itemID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(itemID int64) string {
	return fmt.Sprintf("catalog:%d", itemID)
}
