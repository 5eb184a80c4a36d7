package ratelimiter_test

import (
	"time"

	. "code.cloudfoundry.org/influxdb-warner/ratelimiter"

	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	const (
		bucketCapacity      = 3
		maxAmount           = 1
		validDuration       = 1 * time.Second
		expireDuration      = 200 * time.Millisecond
		expireCheckInterval = 50 * time.Millisecond
	)

	var (
		store  *InMemoryStore
		logger *lagertest.TestLogger
	)

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("store")
		store = NewStore(bucketCapacity, maxAmount, validDuration, expireDuration, expireCheckInterval, logger)
	})

	It("returns the same bucket for a key", func() {
		Expect(store.Limiter("warner")).To(BeIdenticalTo(store.Limiter("warner")))
		Expect(store.Limiter("warner")).NotTo(BeIdenticalTo(store.Limiter("monitor")))
	})

	It("sizes buckets from the configuration", func() {
		limiter := store.Limiter("warner")
		Expect(limiter.Burst()).To(Equal(bucketCapacity))
		Expect(float64(limiter.Limit())).To(BeNumerically("~", 1.0))
	})

	It("drops buckets that were not used", func() {
		limiter := store.Limiter("warner")
		Expect(limiter.Allow()).To(BeTrue())

		Eventually(logger.LogMessages).Should(ContainElement("store.removing-expired-key"))
		Expect(store.Limiter("warner")).NotTo(BeIdenticalTo(limiter))
	})
})
