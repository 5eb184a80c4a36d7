package healthendpoint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "influxdb_warner"
	subsystem = "rules"
)

// WarnerCollector exposes what the scheduler and the rule runners do.
type WarnerCollector struct {
	ticks         prometheus.Counter
	ruleStates    *prometheus.CounterVec
	alerts        *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

func NewWarnerCollector() *WarnerCollector {
	return &WarnerCollector{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ticks_total",
			Help:      "Number of check passes started",
		}),
		ruleStates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Rule runs by database and final state",
		}, []string{"database", "state"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "alerts_total",
			Help:      "Alerts emitted by database and measurement",
		}, []string{"database", "measurement"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "query_duration_seconds",
			Help:      "Time spent waiting for the store",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database"}),
	}
}

func (c *WarnerCollector) IncTick() {
	c.ticks.Inc()
}

func (c *WarnerCollector) IncRuleState(database string, state string) {
	c.ruleStates.WithLabelValues(database, state).Inc()
}

func (c *WarnerCollector) IncAlert(database string, measurement string) {
	c.alerts.WithLabelValues(database, measurement).Inc()
}

func (c *WarnerCollector) ObserveQuery(database string, d time.Duration) {
	c.queryDuration.WithLabelValues(database).Observe(d.Seconds())
}

func (c *WarnerCollector) Describe(ch chan<- *prometheus.Desc) {
	c.ticks.Describe(ch)
	c.ruleStates.Describe(ch)
	c.alerts.Describe(ch)
	c.queryDuration.Describe(ch)
}

func (c *WarnerCollector) Collect(ch chan<- prometheus.Metric) {
	c.ticks.Collect(ch)
	c.ruleStates.Collect(ch)
	c.alerts.Collect(ch)
	c.queryDuration.Collect(ch)
}
