package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cemetery/internal/model"

	"github.com/redis/go-redis/v9"
)

const intentCachePrefix = "search:intent:"

// IntentCache stores model-derived intents so repeated queries skip the
// completion round trip. Get returns (nil, nil) on a miss.
type IntentCache interface {
	Get(ctx context.Context, query string) (*model.SearchIntent, error)
	Set(ctx context.Context, query string, intent *model.SearchIntent) error
}

// RedisIntentCache is an IntentCache backed by Redis string keys
type RedisIntentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIntentCache creates a cache whose entries expire after ttl
func NewRedisIntentCache(client *redis.Client, ttl time.Duration) *RedisIntentCache {
	return &RedisIntentCache{client: client, ttl: ttl}
}

// Get looks up the cached intent for query
func (c *RedisIntentCache) Get(ctx context.Context, query string) (*model.SearchIntent, error) {
	val, err := c.client.Get(ctx, intentCacheKey(query)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read intent cache: %w", err)
	}

	var intent model.SearchIntent
	if err := json.Unmarshal([]byte(val), &intent); err != nil {
		return nil, fmt.Errorf("failed to decode cached intent: %w", err)
	}
	// the stored copy belongs to whichever spelling populated it
	intent.SearchQuery = query
	return &intent, nil
}

// Set stores intent under query
func (c *RedisIntentCache) Set(ctx context.Context, query string, intent *model.SearchIntent) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("failed to encode intent: %w", err)
	}
	if err := c.client.Set(ctx, intentCacheKey(query), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write intent cache: %w", err)
	}
	return nil
}

// intentCacheKey ignores surrounding whitespace only. Case is kept because
// capitalisation decides which words the model reads as names.
func intentCacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(query)))
	return intentCachePrefix + hex.EncodeToString(sum[:])
}
