package ratelimiter

import (
	"context"
	"time"

	"code.cloudfoundry.org/lager/v3"
)

// Limiter throttles queries per key, one key per database.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

type RateLimiter struct {
	store Store
}

var _ Limiter = &RateLimiter{}

func NewRateLimiter(bucketCapacity int, maxAmount int, validDuration time.Duration, expireDuration time.Duration, expireCheckInterval time.Duration, logger lager.Logger) *RateLimiter {
	return &RateLimiter{
		store: NewStore(bucketCapacity, maxAmount, validDuration, expireDuration, expireCheckInterval, logger),
	}
}

// Wait blocks until key has a token or ctx ends.
func (r *RateLimiter) Wait(ctx context.Context, key string) error {
	return r.store.Limiter(key).Wait(ctx)
}
