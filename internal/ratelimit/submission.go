// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ratelimit provides the per-email cooldown for public
// service-request submissions. The window lives in Redis so the limit
// holds across instances; the key TTL doubles as eviction.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces limiter keys in Redis.
const keyPrefix = "intake:cooldown:"

// SubmissionLimiter allows one submission per email per window.
type SubmissionLimiter struct {
	client *redis.Client
	window time.Duration
}

// NewSubmissionLimiter creates a limiter with the given cooldown window.
func NewSubmissionLimiter(client *redis.Client, window time.Duration) *SubmissionLimiter {
	return &SubmissionLimiter{client: client, window: window}
}

// Allow records a submission attempt for the email and reports whether it
// may proceed. The first attempt inside a window wins; repeats are
// rejected until the key expires.
func (l *SubmissionLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := keyPrefix + strings.ToLower(strings.TrimSpace(email))
	ok, err := l.client.SetNX(ctx, key, time.Now().Unix(), l.window).Result()
	if err != nil {
		return false, fmt.Errorf("submission limiter: %w", err)
	}
	return ok, nil
}

// Reset clears the cooldown for an email. Used by tests and support
// tooling.
func (l *SubmissionLimiter) Reset(ctx context.Context, email string) error {
	key := keyPrefix + strings.ToLower(strings.TrimSpace(email))
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("submission limiter reset: %w", err)
	}
	return nil
}
