package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	// IncrementWithTTL bumps a counter and returns its new value.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error)
}
