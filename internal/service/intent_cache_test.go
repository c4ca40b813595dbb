package service

import (
	"context"
	"testing"
	"time"

	"cemetery/internal/model"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentCacheKey(t *testing.T) {
	assert.Equal(t, intentCacheKey("John Smith"), intentCacheKey("  John Smith "))
	assert.NotEqual(t, intentCacheKey("John Smith"), intentCacheKey("john smith"))
	assert.NotEqual(t, intentCacheKey("John Smith"), intentCacheKey("John Smyth"))
	assert.Contains(t, intentCacheKey("x"), intentCachePrefix)
}

func TestRedisIntentCache_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisIntentCache(client, time.Minute)

	mock.ExpectGet(intentCacheKey("Rizal")).RedisNil()

	intent, err := cache.Get(context.Background(), "Rizal")
	require.NoError(t, err)
	assert.Nil(t, intent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisIntentCache_CorruptEntry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisIntentCache(client, time.Minute)

	mock.ExpectGet(intentCacheKey("Rizal")).SetVal("{not json")

	_, err := cache.Get(context.Background(), "Rizal")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisIntentCache_SetUsesTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisIntentCache(client, 90*time.Second)

	intent := &model.SearchIntent{SearchQuery: "Rizal", Confidence: 0.5, LastName: model.StringPtr("Rizal")}
	mock.ExpectSet(intentCacheKey("Rizal"), []byte(`{"searchQuery":"Rizal","confidence":0.5,"lastName":"Rizal"}`), 90*time.Second).SetVal("OK")

	require.NoError(t, cache.Set(context.Background(), "Rizal", intent))
	assert.NoError(t, mock.ExpectationsWereMet())
}
