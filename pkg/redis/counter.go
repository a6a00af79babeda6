package redis

import (
	"context"
	"time"
)

// Hit is the state of a fixed-window counter after one increment.
type Hit struct {
	Count   int64
	ResetIn time.Duration
}

// Hit increments the counter at key. The first hit of a window starts its expiry.
// A counter found without an expiry (a crash between INCR and EXPIRE) is given one.
func (c *Client) Hit(ctx context.Context, key string, window time.Duration) (Hit, error) {
	if c.store == nil {
		return Hit{}, errNotInitialized
	}
	count, err := c.store.Incr(ctx, key).Result()
	if err != nil {
		return Hit{}, err
	}
	if window <= 0 {
		return Hit{Count: count}, nil
	}
	if count == 1 {
		if err := c.store.Expire(ctx, key, window).Err(); err != nil {
			return Hit{Count: count}, err
		}
		return Hit{Count: count, ResetIn: window}, nil
	}

	remaining, err := c.store.PTTL(ctx, key).Result()
	if err != nil {
		return Hit{Count: count}, err
	}
	if remaining < 0 {
		if err := c.store.Expire(ctx, key, window).Err(); err != nil {
			return Hit{Count: count}, err
		}
		remaining = window
	}
	return Hit{Count: count, ResetIn: remaining}, nil
}
