package healthendpoint_test

import (
	"time"

	"code.cloudfoundry.org/influxdb-warner/healthendpoint"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("WarnerCollector", func() {
	var (
		collector *healthendpoint.WarnerCollector
		registry  *prometheus.Registry
	)

	BeforeEach(func() {
		collector = healthendpoint.NewWarnerCollector()
		registry = prometheus.NewRegistry()
		Expect(registry.Register(collector)).To(Succeed())
	})

	It("counts ticks, rule states and alerts", func() {
		collector.IncTick()
		collector.IncTick()
		collector.IncRuleState("warner", "done")
		collector.IncRuleState("warner", "failed")
		collector.IncRuleState("warner", "done")
		collector.IncAlert("warner", "login")

		Expect(testutil.CollectAndCount(collector, "influxdb_warner_rules_ticks_total")).To(Equal(1))
		Expect(testutil.CollectAndCount(collector, "influxdb_warner_rules_runs_total")).To(Equal(2))
		Expect(testutil.CollectAndCount(collector, "influxdb_warner_rules_alerts_total")).To(Equal(1))
	})

	It("observes query durations per database", func() {
		collector.ObserveQuery("warner", 20*time.Millisecond)
		collector.ObserveQuery("monitor", time.Second)

		Expect(testutil.CollectAndCount(collector, "influxdb_warner_rules_query_duration_seconds")).To(Equal(2))
	})
})
