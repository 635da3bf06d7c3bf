// Copyright (c) 2026 juan-jcr. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/juan-jcr/api/internal/platform/constants"
)

// RedisLoginThrottle implements [LoginThrottle] with a fixed-window counter:
// one Redis key per username, incremented on failure, expiring on its own
// after the window.
type RedisLoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLoginThrottle creates a Redis-backed LoginThrottle with the standard limits.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{
		client: client,
		limit:  constants.MaxLoginAttempts,
		window: constants.LoginAttemptWindow,
	}
}

// attemptKey namespaces the counter key per username.
func attemptKey(username string) string {
	return "auth:attempts:" + username
}

// Allow reports whether a login attempt for username may proceed.
func (throttle *RedisLoginThrottle) Allow(ctx context.Context, username string) (bool, error) {
	count, err := throttle.client.Get(ctx, attemptKey(username)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("auth_throttle_allow_failed: %w", err)
	}

	return count < throttle.limit, nil
}

// RecordFailure counts one failed attempt against username.
//
// The window starts at the first failure; the key expires on its own, so a
// locked-out account recovers without any cleanup job.
func (throttle *RedisLoginThrottle) RecordFailure(ctx context.Context, username string) error {
	key := attemptKey(username)

	count, err := throttle.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("auth_throttle_record_failed: %w", err)
	}

	if count == 1 {
		if err := throttle.client.Expire(ctx, key, throttle.window).Err(); err != nil {
			return fmt.Errorf("auth_throttle_expire_failed: %w", err)
		}
	}

	return nil
}

// Reset clears the failure counter after a successful login.
func (throttle *RedisLoginThrottle) Reset(ctx context.Context, username string) error {
	if err := throttle.client.Del(ctx, attemptKey(username)).Err(); err != nil {
		return fmt.Errorf("auth_throttle_reset_failed: %w", err)
	}
	return nil
}
