// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/reelhub/internal/platform/constants"
)

// # Redis Attempt Limiter

// RedisAttemptLimiter counts failed signins per username in Redis.
//
// The first failure starts a window of `lockout`; once `maxAttempts` failures
// are counted inside it, signin is refused until the key expires.
type RedisAttemptLimiter struct {
	client      *redis.Client
	maxAttempts int64
	lockout     time.Duration
}

// NewRedisAttemptLimiter creates a Redis-backed [AttemptLimiter].
func NewRedisAttemptLimiter(client *redis.Client, maxAttempts int, lockout time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		lockout:     lockout,
	}
}

func attemptKey(key string) string {
	return constants.RedisPrefixSigninAttempts + key
}

// Sentinel TTL values Redis reports for a missing key and a key without expiry.
const (
	ttlKeyMissing = time.Duration(-2)
	ttlNoExpiry   = time.Duration(-1)
)

/*
Allow reports whether key is below the failure threshold.

The counter and its TTL are read in one MULTI block so both describe the same
key state.
*/
func (limiter *RedisAttemptLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	var countCmd *redis.StringCmd
	var ttlCmd *redis.DurationCmd

	_, err := limiter.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		countCmd = pipe.Get(ctx, attemptKey(key))
		ttlCmd = pipe.TTL(ctx, attemptKey(key))
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return true, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("redis_signin_attempts_get_failed: %w", err)
	}

	count, err := countCmd.Int64()
	if err != nil {
		return false, 0, fmt.Errorf("redis_signin_attempts_parse_failed: %w", err)
	}
	if count < limiter.maxAttempts {
		return true, 0, nil
	}

	switch ttl := ttlCmd.Val(); ttl {
	case ttlKeyMissing:
		return true, 0, nil
	case ttlNoExpiry:
		// A counter without expiry would lock the username forever.
		if err := limiter.client.Expire(ctx, attemptKey(key), limiter.lockout).Err(); err != nil {
			return false, 0, fmt.Errorf("redis_signin_attempts_expire_failed: %w", err)
		}
		return false, limiter.lockout, nil
	default:
		return false, ttl, nil
	}
}

// RecordFailure increments the counter and arms its expiry on the first failure.
func (limiter *RedisAttemptLimiter) RecordFailure(ctx context.Context, key string) error {
	count, err := limiter.client.Incr(ctx, attemptKey(key)).Result()
	if err != nil {
		return fmt.Errorf("redis_signin_attempts_incr_failed: %w", err)
	}

	if count == 1 {
		if err := limiter.client.Expire(ctx, attemptKey(key), limiter.lockout).Err(); err != nil {
			return fmt.Errorf("redis_signin_attempts_expire_failed: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful signin.
func (limiter *RedisAttemptLimiter) Reset(ctx context.Context, key string) error {
	if err := limiter.client.Del(ctx, attemptKey(key)).Err(); err != nil {
		return fmt.Errorf("redis_signin_attempts_delete_failed: %w", err)
	}
	return nil
}

// # No-op Limiter

// NoopAttemptLimiter never throttles. It is used when Redis is not configured.
type NoopAttemptLimiter struct{}

// Allow always permits the attempt.
func (NoopAttemptLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}

// RecordFailure does nothing.
func (NoopAttemptLimiter) RecordFailure(context.Context, string) error { return nil }

// Reset does nothing.
func (NoopAttemptLimiter) Reset(context.Context, string) error { return nil }
