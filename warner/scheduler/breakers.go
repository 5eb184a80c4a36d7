package scheduler

import (
	"sync"

	"code.cloudfoundry.org/influxdb-warner/warner/config"

	"github.com/cenkalti/backoff/v4"
	circuit "github.com/rubyist/circuitbreaker"
)

// Breakers hands out one circuit breaker per database, created on first use.
type Breakers struct {
	conf     config.CircuitBreakerConfig
	breakers map[string]*circuit.Breaker
	lock     sync.Mutex
}

func NewBreakers(conf config.CircuitBreakerConfig) *Breakers {
	return &Breakers{
		conf:     conf,
		breakers: make(map[string]*circuit.Breaker),
	}
}

func (b *Breakers) GetBreaker(database string) *circuit.Breaker {
	b.lock.Lock()
	defer b.lock.Unlock()

	if breaker, ok := b.breakers[database]; ok {
		return breaker
	}

	bf := backoff.NewExponentialBackOff()
	bf.InitialInterval = b.conf.BackOffInitialInterval
	bf.MaxInterval = b.conf.BackOffMaxInterval
	bf.RandomizationFactor = 0
	bf.Multiplier = 2
	bf.MaxElapsedTime = 0
	bf.Reset()

	breaker := circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    bf,
		ShouldTrip: circuit.ConsecutiveTripFunc(b.conf.ConsecutiveFailureCount),
	})
	b.breakers[database] = breaker
	return breaker
}
