// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/hms/internal/platform/constants"
)

// RedisAttemptLimiter implements [AttemptLimiter] with one expiring counter per key.
//
// The counter's TTL is set on the first failure, so the lockout window is
// fixed: it opens with the first failure rather than sliding with each one.
type RedisAttemptLimiter struct {
	client      *redis.Client
	maxAttempts int
	lockout     time.Duration
}

// NewAttemptLimiter creates a Redis-backed limiter allowing maxAttempts
// failures per lockout window.
func NewAttemptLimiter(client *redis.Client, maxAttempts int, lockout time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client, maxAttempts: maxAttempts, lockout: lockout}
}

/*
Blocked returns how long key remains locked out.

Parameters:
  - context: context.Context
  - key: string (email|ip)

Returns:
  - time.Duration: Remaining lockout, zero when allowed
  - error: Connectivity errors
*/
func (limiter *RedisAttemptLimiter) Blocked(context context.Context, key string) (time.Duration, error) {
	redisKey := constants.RedisPrefixLoginAttempts + key

	count, err := limiter.client.Get(context, redisKey).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}

	if count < limiter.maxAttempts {
		return 0, nil
	}

	remaining, err := limiter.client.TTL(context, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_attempts_ttl_failed: %w", err)
	}

	// A counter without TTL would lock forever; report the full window instead.
	if remaining <= 0 {
		return limiter.lockout, nil
	}
	return remaining, nil
}

// Fail increments the counter and starts the window on the first failure.
func (limiter *RedisAttemptLimiter) Fail(context context.Context, key string) error {
	redisKey := constants.RedisPrefixLoginAttempts + key

	// EXPIRE NX needs Redis 7; it leaves an existing window untouched.
	pipe := limiter.client.TxPipeline()
	pipe.Incr(context, redisKey)
	pipe.ExpireNX(context, redisKey, limiter.lockout)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}
	return nil
}

// Reset deletes the counter.
func (limiter *RedisAttemptLimiter) Reset(context context.Context, key string) error {
	if err := limiter.client.Del(context, constants.RedisPrefixLoginAttempts+key).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_del_failed: %w", err)
	}
	return nil
}
