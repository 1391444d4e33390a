// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// board.go provides a Redis-backed cache for per-board category counts.
// The aggregation walks every published post of a board, so the result is
// cached briefly and invalidated whenever an admin writes a post or
// category.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"hostwise/internal/models"
)

const (
	// boardKeyPrefix is the Redis key prefix for cached category counts.
	boardKeyPrefix = "board:categories:"

	// DefaultBoardTTL is how long aggregation results stay cached.
	DefaultBoardTTL = time.Minute
)

// BoardCache stores category aggregation results per board in Redis.
type BoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBoardCache creates a board cache backed by the given Redis client.
func NewBoardCache(client *redis.Client, ttl time.Duration) *BoardCache {
	if ttl == 0 {
		ttl = DefaultBoardTTL
	}
	return &BoardCache{client: client, ttl: ttl}
}

// GetCounts retrieves cached category counts for a board. The second
// return value is false on a miss or decode failure.
func (bc *BoardCache) GetCounts(ctx context.Context, t models.PostType) ([]models.Category, bool) {
	val, err := bc.client.Get(ctx, boardKeyPrefix+string(t)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("board cache get error", "board", t, "error", err)
		return nil, false
	}

	var cats []models.Category
	if err := json.Unmarshal(val, &cats); err != nil {
		slog.Warn("board cache decode error", "board", t, "error", err)
		return nil, false
	}
	return cats, true
}

// SetCounts stores category counts for a board with the configured TTL.
func (bc *BoardCache) SetCounts(ctx context.Context, t models.PostType, cats []models.Category) {
	payload, err := json.Marshal(cats)
	if err != nil {
		slog.Warn("board cache encode error", "board", t, "error", err)
		return
	}
	if err := bc.client.Set(ctx, boardKeyPrefix+string(t), payload, bc.ttl).Err(); err != nil {
		slog.Warn("board cache set error", "board", t, "error", err)
	}
}

// Invalidate removes the cached counts for a single board. Called after
// any admin write to that board's posts or categories.
func (bc *BoardCache) Invalidate(ctx context.Context, t models.PostType) {
	if err := bc.client.Del(ctx, boardKeyPrefix+string(t)).Err(); err != nil {
		slog.Warn("board cache invalidate error", "board", t, "error", err)
	}
}
