package enrichment

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	exports := 1600.0
	stats := &TradeStats{ISO3: "DEU", ExportsUSDBn: &exports, ExportsYear: 2023}
	require.NoError(t, c.Set(ctx, "DEU", CacheEntry{Stats: stats}, 12*time.Hour))

	entry, err := c.Get(ctx, "DEU")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.False(t, entry.Negative)
	assert.Equal(t, stats, entry.Stats)

	// Still live just inside the TTL, gone just past it.
	now = now.Add(12*time.Hour - time.Second)
	entry, err = c.Get(ctx, "DEU")
	require.NoError(t, err)
	assert.NotNil(t, entry)

	now = now.Add(2 * time.Second)
	entry, err = c.Get(ctx, "DEU")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestMemoryCacheMiss(t *testing.T) {
	entry, err := NewMemoryCache().Get(context.Background(), "FRA")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	c := NewRedisCache(client)

	share := 62.4
	stats := &TradeStats{ISO3: "DEU", TradeShareGDP: &share, TradeShareGDPYear: 2023, Partial: true}
	require.NoError(t, c.Set(ctx, "DEU", CacheEntry{Stats: stats}, 12*time.Hour))

	entry, err := c.Get(ctx, "DEU")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.NotNil(t, entry.Stats)
	assert.Equal(t, "DEU", entry.Stats.ISO3)
	assert.Equal(t, 62.4, *entry.Stats.TradeShareGDP)
	assert.True(t, entry.Stats.Partial)

	mr.FastForward(13 * time.Hour)
	entry, err = c.Get(ctx, "DEU")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestRedisCacheNegativeEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	c := NewRedisCache(client)

	require.NoError(t, c.Set(ctx, "XYZ", CacheEntry{Negative: true}, 30*time.Minute))

	entry, err := c.Get(ctx, "XYZ")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Negative)
	assert.Nil(t, entry.Stats)
}
