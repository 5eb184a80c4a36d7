// Package warner runs a rule set against its databases on a timer and hands
// alerts and rule failures to registered listeners.
package warner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/ratelimiter"
	"code.cloudfoundry.org/influxdb-warner/store"
	"code.cloudfoundry.org/influxdb-warner/store/influxdb"
	"code.cloudfoundry.org/influxdb-warner/warner/config"
	"code.cloudfoundry.org/influxdb-warner/warner/runner"
	"code.cloudfoundry.org/influxdb-warner/warner/scheduler"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/patrickmn/go-cache"
)

var ErrInvalidInterval = errors.New("check interval must be greater than 0")

type Metrics interface {
	runner.Metrics
	scheduler.TickMetrics
}

type Option func(*Warner)

func WithEngineConfig(conf config.EngineConfig) Option {
	return func(w *Warner) { w.conf = conf }
}

func WithClock(cclock clock.Clock) Option {
	return func(w *Warner) { w.cclock = cclock }
}

func WithConnectorFactory(factory store.ConnectorFactory) Option {
	return func(w *Warner) { w.factory = factory }
}

func WithMetrics(metrics Metrics) Option {
	return func(w *Warner) { w.metrics = metrics }
}

func WithRateLimiter(limiter ratelimiter.Limiter) Option {
	return func(w *Warner) { w.limiter = limiter }
}

type Warner struct {
	logger     lager.Logger
	rules      *models.Rules
	conf       config.EngineConfig
	cclock     clock.Clock
	factory    store.ConnectorFactory
	metrics    Metrics
	limiter    ratelimiter.Limiter
	breakers   *scheduler.Breakers
	listeners  *listeners
	runner     *runner.Runner
	compiled   []*runner.Rule
	connectors *cache.Cache
	timeout    atomic.Int64

	handlesLock sync.Mutex
	handles     map[*Handle]struct{}
}

// New compiles every rule in rules. Rules that fail to compile stay in the
// set and report a config error each tick; see ConfigErrors.
func New(logger lager.Logger, rules *models.Rules, opts ...Option) (*Warner, error) {
	w := &Warner{
		logger:  logger.Session("Warner"),
		rules:   rules,
		conf:    config.DefaultEngineConfig(),
		cclock:  clock.NewClock(),
		handles: make(map[*Handle]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.conf.Validate(); err != nil {
		return nil, err
	}

	if w.factory == nil {
		w.factory = influxdb.NewConnectorFactory(logger)
	}
	if w.limiter == nil {
		w.limiter = ratelimiter.NewRateLimiter(w.conf.RateLimit.BucketCapacity, w.conf.RateLimit.MaxAmount, w.conf.RateLimit.ValidDuration,
			w.conf.ConnectionCache.TTL, w.conf.ConnectionCache.CleanupInterval, logger)
	}
	w.timeout.Store(int64(w.conf.QueryTimeout))

	w.connectors = cache.New(w.conf.ConnectionCache.TTL, w.conf.ConnectionCache.CleanupInterval)
	w.connectors.OnEvicted(func(key string, value interface{}) {
		if err := value.(store.Connector).Close(); err != nil {
			w.logger.Error("failed-to-close-connector", err, lager.Data{"key": key})
			return
		}
		w.logger.Debug("connector-closed", lager.Data{"key": key})
	})

	w.breakers = scheduler.NewBreakers(w.conf.CircuitBreaker)
	w.listeners = &listeners{logger: w.logger}

	w.runner = runner.NewRunner(logger, w.cclock, w.listeners, w.connect, w.limiter, w.breakers.GetBreaker, w.metrics)

	for _, db := range rules.Databases {
		for _, measurement := range db.Measurements {
			for i, descriptor := range measurement.Rules {
				rule := runner.Compile(db.Name, measurement.Name, i, descriptor)
				if err := rule.Err(); err != nil {
					w.logger.Error("invalid-rule", err, lager.Data{"database": db.Name, "measurement": measurement.Name, "rule": i})
				}
				w.compiled = append(w.compiled, rule)
			}
		}
	}
	w.logger.Info("created", lager.Data{"databases": len(rules.Databases), "rules": len(w.compiled)})
	return w, nil
}

func (w *Warner) OnWarn(listener WarnListener) {
	w.listeners.onWarn(listener)
}

func (w *Warner) OnError(listener ErrorListener) {
	w.listeners.onError(listener)
}

// ConfigErrors lists the rules that will never query.
func (w *Warner) ConfigErrors() models.ConfigErrors {
	var errs models.ConfigErrors
	for _, rule := range w.compiled {
		if err := rule.ConfigError(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Timeout sets the per-query timeout. Connectors cached under the previous
// timeout are replaced on their next use.
func (w *Warner) Timeout(d time.Duration) {
	w.timeout.Store(int64(d))
	w.logger.Info("timeout-changed", lager.Data{"timeout": d.String()})
}

func (w *Warner) queryTimeout() time.Duration {
	return time.Duration(w.timeout.Load())
}

// Start runs a check pass now and then every interval until the returned
// handle, or the Warner, is stopped. A nil beforeCheck always passes. A
// non-positive interval is reported as a scheduling error and nothing runs.
func (w *Warner) Start(interval time.Duration, beforeCheck scheduler.BeforeCheck) *Handle {
	if interval <= 0 {
		err := fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
		w.logger.Error("failed-to-start", err)
		w.listeners.Error(&models.RuleError{Kind: models.SchedulingErrorKind, Err: err})
		return &Handle{warner: w}
	}

	s := scheduler.NewScheduler(w.logger, w.cclock, w.compiled, w.runner, scheduler.Options{
		Interval:     interval,
		BeforeCheck:  beforeCheck,
		WorkerCount:  w.conf.WorkerCount,
		JobQueueSize: w.conf.JobQueueSize,
		Timeout:      w.queryTimeout,
		Metrics:      w.metrics,
		OnSkip:       w.reportSkip,
	})
	handle := &Handle{warner: w, scheduler: s}

	w.handlesLock.Lock()
	w.handles[handle] = struct{}{}
	w.handlesLock.Unlock()

	s.Start()
	return handle
}

func (w *Warner) reportSkip(err error) {
	w.listeners.Error(&models.RuleError{Kind: models.SchedulingErrorKind, Err: err})
}

// Stop stops every handle returned by Start.
func (w *Warner) Stop() {
	w.handlesLock.Lock()
	handles := make([]*Handle, 0, len(w.handles))
	for handle := range w.handles {
		handles = append(handles, handle)
	}
	w.handlesLock.Unlock()

	for _, handle := range handles {
		handle.Stop()
	}
}

// Close stops the Warner and closes every cached connector.
func (w *Warner) Close() {
	w.Stop()
	w.connectors.DeleteExpired()
	for key := range w.connectors.Items() {
		w.connectors.Delete(key)
	}
}

// Ping checks that database answers, through the same connector its rules use.
func (w *Warner) Ping(ctx context.Context, database string) error {
	conn, err := w.connect(database)
	if err != nil {
		return err
	}
	return conn.Ping(ctx)
}

func (w *Warner) connect(database string) (store.Connector, error) {
	db, ok := w.rules.Database(database)
	if !ok {
		return nil, fmt.Errorf("unknown database %q", database)
	}

	timeout := w.queryTimeout()
	key := database + "#" + timeout.String()
	if conn, found := w.connectors.Get(key); found {
		return conn.(store.Connector), nil
	}

	conn, err := w.factory(db, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", database, err)
	}
	if err := w.connectors.Add(key, conn, cache.DefaultExpiration); err != nil {
		// another run cached one first
		_ = conn.Close()
		if cached, found := w.connectors.Get(key); found {
			return cached.(store.Connector), nil
		}
		return nil, err
	}
	w.logger.Debug("connector-created", lager.Data{"key": key})
	return conn, nil
}

type Handle struct {
	warner    *Warner
	scheduler *scheduler.Scheduler
	stopOnce  sync.Once
}

func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		if h.scheduler == nil {
			return
		}
		h.scheduler.Stop()

		h.warner.handlesLock.Lock()
		delete(h.warner.handles, h)
		h.warner.handlesLock.Unlock()
	})
}
