package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles admin login attempts per client IP using a fixed
// Redis window. A nil limiter allows everything, so deployments without
// Redis keep working.
type LoginLimiter struct {
	redis    redis.UniversalClient
	attempts int
	window   time.Duration
}

func NewLoginLimiter(client redis.UniversalClient, attempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		redis:    client,
		attempts: attempts,
		window:   window,
	}
}

func (l *LoginLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	if l == nil || l.redis == nil {
		return true, nil
	}

	key := fmt.Sprintf("login_attempts:%s", ip)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr login attempts failed: %w", err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire login attempts failed: %w", err)
		}
	}

	return count <= int64(l.attempts), nil
}

// Reset clears the counter after a successful login so legitimate admins
// are not locked out by their own typos.
func (l *LoginLimiter) Reset(ctx context.Context, ip string) error {
	if l == nil || l.redis == nil {
		return nil
	}

	return l.redis.Del(ctx, fmt.Sprintf("login_attempts:%s", ip)).Err()
}
