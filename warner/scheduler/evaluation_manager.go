package scheduler

import (
	"context"
	"time"

	"code.cloudfoundry.org/influxdb-warner/warner/runner"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	uuid "github.com/nu7hatch/gouuid"
)

type BeforeCheck func(ctx context.Context) error

type TickMetrics interface {
	IncTick()
}

// EvaluationManager fans every rule out to jobChan once per interval, the
// first time right after Start.
type EvaluationManager struct {
	logger      lager.Logger
	interval    time.Duration
	cclock      clock.Clock
	doneChan    chan bool
	jobChan     chan<- *runner.Job
	rules       []*runner.Rule
	beforeCheck BeforeCheck
	timeout     func() time.Duration
	metrics     TickMetrics
	onSkip      func(err error)
}

func NewEvaluationManager(logger lager.Logger, interval time.Duration, cclock clock.Clock, jobChan chan<- *runner.Job,
	rules []*runner.Rule, beforeCheck BeforeCheck, timeout func() time.Duration, metrics TickMetrics, onSkip func(err error)) *EvaluationManager {
	if beforeCheck == nil {
		beforeCheck = func(context.Context) error { return nil }
	}
	return &EvaluationManager{
		logger:      logger.Session("EvaluationManager"),
		interval:    interval,
		cclock:      cclock,
		doneChan:    make(chan bool),
		jobChan:     jobChan,
		rules:       rules,
		beforeCheck: beforeCheck,
		timeout:     timeout,
		metrics:     metrics,
		onSkip:      onSkip,
	}
}

func (m *EvaluationManager) Start() {
	go m.run()
	m.logger.Info("started", lager.Data{"interval": m.interval.String(), "rules": len(m.rules)})
}

func (m *EvaluationManager) Stop() {
	close(m.doneChan)
	m.logger.Info("stopped")
}

func (m *EvaluationManager) run() {
	ticker := m.cclock.NewTicker(m.interval)
	defer ticker.Stop()

	go m.tick()
	for {
		select {
		case <-m.doneChan:
			return
		case <-ticker.C():
			go m.tick()
		}
	}
}

func (m *EvaluationManager) tick() {
	id, err := uuid.NewV4()
	if err != nil {
		m.logger.Error("failed-to-create-tick-id", err)
		return
	}
	tickID := id.String()
	logger := m.logger.Session("tick", lager.Data{"tick": tickID})

	if err := m.beforeCheck(context.Background()); err != nil {
		logger.Info("check-skipped", lager.Data{"reason": err.Error()})
		if m.onSkip != nil {
			m.onSkip(err)
		}
		return
	}
	if m.metrics != nil {
		m.metrics.IncTick()
	}

	var timeout time.Duration
	if m.timeout != nil {
		timeout = m.timeout()
	}
	for _, rule := range m.rules {
		select {
		case <-m.doneChan:
			logger.Info("dispatch-stopped")
			return
		case m.jobChan <- &runner.Job{TickID: tickID, Rule: rule, Timeout: timeout}:
		}
	}
	logger.Debug("dispatched", lager.Data{"jobs": len(m.rules)})
}
