// Package runner executes one compiled rule against one store connection.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/ratelimiter"
	"code.cloudfoundry.org/influxdb-warner/store"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	circuit "github.com/rubyist/circuitbreaker"
)

// Emitter receives what rule runs produce.
type Emitter interface {
	Warn(event *models.AlertEvent)
	Error(err *models.RuleError)
}

type Metrics interface {
	ObserveQuery(database string, d time.Duration)
	IncRuleState(database string, state string)
	IncAlert(database string, measurement string)
}

type ConnectFunc func(database string) (store.Connector, error)

type Job struct {
	TickID  string
	Rule    *Rule
	Timeout time.Duration
}

type Runner struct {
	logger     lager.Logger
	cclock     clock.Clock
	emitter    Emitter
	connect    ConnectFunc
	limiter    ratelimiter.Limiter
	getBreaker func(string) *circuit.Breaker
	metrics    Metrics
}

func NewRunner(logger lager.Logger, cclock clock.Clock, emitter Emitter, connect ConnectFunc,
	limiter ratelimiter.Limiter, getBreaker func(string) *circuit.Breaker, metrics Metrics) *Runner {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Runner{
		logger:     logger.Session("Runner"),
		cclock:     cclock,
		emitter:    emitter,
		connect:    connect,
		limiter:    limiter,
		getBreaker: getBreaker,
		metrics:    metrics,
	}
}

// Run takes job's rule from Gated to a terminal state. Failures go to the
// emitter, never to the caller.
func (r *Runner) Run(ctx context.Context, job *Job) (state State) {
	rule := job.Rule
	logger := r.logger.Session("run", lager.Data{"tick": job.TickID, "database": rule.Database, "measurement": rule.Measurement, "rule": rule.Index})
	ql := ""

	defer func() {
		if p := recover(); p != nil {
			kind := models.QueryErrorKind
			if state == Scanning {
				kind = models.EvaluationErrorKind
			}
			err := fmt.Errorf("rule run panicked: %v", p)
			logger.Error("rule-panicked", err)
			r.emitter.Error(rule.ruleError(kind, ql, err))
			state = Failed
		}
		r.metrics.IncRuleState(rule.Database, state.String())
	}()

	state = Gated
	if rule.err != nil {
		r.emitter.Error(rule.ConfigError())
		return Failed
	}
	if rule.Descriptor.Pass || !rule.inWindow(r.cclock.Now()) {
		logger.Debug("skipped")
		return Skipped
	}

	conn, err := r.connect(rule.Database)
	if err != nil {
		logger.Error("failed-to-connect", err)
		r.emitter.Error(rule.ruleError(models.QueryErrorKind, ql, err))
		return Failed
	}
	handle := rule.spec.Build(conn)
	ql = handle.String()

	state = Querying
	rows, err := r.fetch(ctx, rule.Database, job.Timeout, handle)
	if err != nil {
		logger.Error("failed-to-query", err, lager.Data{"ql": ql})
		r.emitter.Error(rule.ruleError(models.QueryErrorKind, ql, err))
		return Failed
	}

	state = Scanning
	for _, row := range rows[rule.Measurement] {
		matched, branch, err := rule.checks.Evaluate(row)
		if err != nil {
			logger.Error("failed-to-evaluate", err, lager.Data{"ql": ql})
			r.emitter.Error(rule.ruleError(models.EvaluationErrorKind, ql, err))
			return Failed
		}
		if matched {
			r.warn(job, ql, branch, row)
		}
	}
	return Done
}

func (r *Runner) fetch(ctx context.Context, database string, timeout time.Duration, handle store.QueryHandle) (map[string][]models.Row, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, database); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := r.cclock.Now()
	defer func() { r.metrics.ObserveQuery(database, r.cclock.Since(start)) }()

	// statement errors do not count against the breaker
	var rows map[string][]models.Row
	var statementErr *store.StatementError
	execute := func() error {
		var err error
		rows, err = handle.Execute(ctx)
		if errors.As(err, &statementErr) {
			rows = nil
			return nil
		}
		return err
	}

	var breaker *circuit.Breaker
	if r.getBreaker != nil {
		breaker = r.getBreaker(database)
	}
	var err error
	if breaker == nil {
		err = execute()
	} else {
		if breaker.Tripped() {
			r.logger.Info("circuit-tripped", lager.Data{"database": database, "consecutiveFailures": breaker.ConsecFailures()})
		}
		err = breaker.Call(execute, 0)
	}
	if err == nil && statementErr != nil {
		return nil, statementErr
	}
	return rows, err
}

func (r *Runner) warn(job *Job, ql string, branch int, row models.Row) {
	rule := job.Rule
	event := &models.AlertEvent{
		TickID:      job.TickID,
		Database:    rule.Database,
		Measurement: rule.Measurement,
		Query:       ql,
		Text:        rule.Descriptor.TextFor(branch),
		Timestamp:   r.cclock.Now(),
	}
	if field := rule.Descriptor.Field; field != "" {
		event.Value = row[field]
	} else {
		event.Row = row
	}
	r.metrics.IncAlert(rule.Database, rule.Measurement)
	r.emitter.Warn(event)
}

type nopMetrics struct{}

func (nopMetrics) ObserveQuery(string, time.Duration) {}
func (nopMetrics) IncRuleState(string, string)        {}
func (nopMetrics) IncAlert(string, string)            {}
