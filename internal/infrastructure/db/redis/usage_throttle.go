package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultThrottleWindow = time.Minute

// UsageThrottle limits how often a token's last_used_at gets written.
// Key format: usage:<token_id>
type UsageThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewUsageThrottle wraps client. A non-positive window falls back to one minute.
func NewUsageThrottle(client *redis.Client, window time.Duration) *UsageThrottle {
	if window <= 0 {
		window = defaultThrottleWindow
	}
	return &UsageThrottle{client: client, window: window}
}

// Acquire reports whether the caller should write usage for tokenID now. The
// first caller inside a window wins; later callers get false until it expires.
func (u *UsageThrottle) Acquire(ctx context.Context, tokenID string) (bool, error) {
	ok, err := u.client.SetNX(ctx, u.key(tokenID), "1", u.window).Result()
	if err != nil {
		return false, fmt.Errorf("usage throttle: %w", err)
	}
	return ok, nil
}

// Release drops the window for tokenID so the next usage is written.
func (u *UsageThrottle) Release(ctx context.Context, tokenID string) error {
	if err := u.client.Del(ctx, u.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("usage throttle release: %w", err)
	}
	return nil
}

func (u *UsageThrottle) key(tokenID string) string {
	return "usage:" + tokenID
}

// Pinger adapts a Redis client for readiness probes.
type Pinger struct {
	client *redis.Client
}

func NewPinger(client *redis.Client) *Pinger {
	return &Pinger{client: client}
}

func (p *Pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
