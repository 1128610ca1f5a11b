package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts per client address. Counters live in
// Redis with a rolling window TTL, so several instances behind one load
// balancer share the same view. This is a soft mitigation against credential
// stuffing, not a security boundary.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a limiter allowing maxAttempts per window for each
// distinct key.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow records one attempt for addr and reports whether it is still within
// the limit. The first attempt in a window sets the TTL; later attempts only
// increment, so the window does not slide on every hit.
func (l *LoginLimiter) Allow(ctx context.Context, addr string) (bool, error) {
	key := fmt.Sprintf("login_attempts:%s", addr)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(l.maxAttempts), nil
}

// Reset clears the counter for addr, used after a successful login so a slow
// typist is not locked out of their next session.
func (l *LoginLimiter) Reset(ctx context.Context, addr string) error {
	return l.client.Del(ctx, fmt.Sprintf("login_attempts:%s", addr)).Err()
}
