package ratelimiter

import (
	"sync"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

type Store interface {
	Limiter(key string) *rate.Limiter
}

// InMemoryStore keeps one token bucket per key. Buckets nobody asked for
// within expireDuration are dropped.
type InMemoryStore struct {
	bucketCapacity int
	limit          rate.Limit
	buckets        *cache.Cache
	logger         lager.Logger
	lock           sync.Mutex
}

func NewStore(bucketCapacity int, maxAmount int, validDuration time.Duration, expireDuration time.Duration, expireCheckInterval time.Duration, logger lager.Logger) *InMemoryStore {
	store := &InMemoryStore{
		bucketCapacity: bucketCapacity,
		limit:          limitOf(maxAmount, validDuration),
		buckets:        cache.New(expireDuration, expireCheckInterval),
		logger:         logger,
	}
	store.buckets.OnEvicted(func(key string, _ interface{}) {
		store.logger.Debug("removing-expired-key", lager.Data{"key": key})
	})
	return store
}

func limitOf(maxAmount int, validDuration time.Duration) rate.Limit {
	if maxAmount <= 0 || validDuration <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(maxAmount) / validDuration.Seconds())
}

func (s *InMemoryStore) Limiter(key string) *rate.Limiter {
	s.lock.Lock()
	defer s.lock.Unlock()

	limiter, found := s.buckets.Get(key)
	if !found {
		limiter = rate.NewLimiter(s.limit, s.bucketCapacity)
	}
	s.buckets.SetDefault(key, limiter)
	return limiter.(*rate.Limiter)
}
