// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"hostwise/internal/models"
)

// testRedisClient returns a Redis client for tests.
// Skips if Redis is unavailable.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, boardKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestBoardCacheRoundTrip(t *testing.T) {
	client := testRedisClient(t)
	bc := NewBoardCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := bc.GetCounts(ctx, models.PostTypeInsights); ok {
		t.Fatal("expected a miss on a cold cache")
	}

	cats := []models.Category{
		models.AllCategory(models.PostTypeInsights, 5),
		{ID: uuid.New(), Type: models.PostTypeInsights, Name: "Operations", PostCount: 2},
	}
	bc.SetCounts(ctx, models.PostTypeInsights, cats)

	got, ok := bc.GetCounts(ctx, models.PostTypeInsights)
	if !ok {
		t.Fatal("expected a hit after SetCounts")
	}
	if len(got) != 2 || got[0].Name != models.AllCategoryName || got[0].PostCount != 5 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestBoardCacheInvalidate(t *testing.T) {
	client := testRedisClient(t)
	bc := NewBoardCache(client, time.Minute)
	ctx := context.Background()

	bc.SetCounts(ctx, models.PostTypeEvents, []models.Category{
		models.AllCategory(models.PostTypeEvents, 1),
	})
	bc.Invalidate(ctx, models.PostTypeEvents)

	if _, ok := bc.GetCounts(ctx, models.PostTypeEvents); ok {
		t.Error("expected a miss after invalidation")
	}
}

func TestBoardCacheBoardsAreIndependent(t *testing.T) {
	client := testRedisClient(t)
	bc := NewBoardCache(client, time.Minute)
	ctx := context.Background()

	bc.SetCounts(ctx, models.PostTypeInsights, []models.Category{
		models.AllCategory(models.PostTypeInsights, 3),
	})
	bc.Invalidate(ctx, models.PostTypeEvents)

	if _, ok := bc.GetCounts(ctx, models.PostTypeInsights); !ok {
		t.Error("invalidating one board must not drop another")
	}
}
