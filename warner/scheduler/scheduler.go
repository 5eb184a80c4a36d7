// Package scheduler runs every compiled rule on a shared timer with a fixed
// pool of workers.
package scheduler

import (
	"sync"
	"time"

	"code.cloudfoundry.org/influxdb-warner/warner/runner"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
)

type Options struct {
	Interval     time.Duration
	BeforeCheck  BeforeCheck
	WorkerCount  int
	JobQueueSize int
	Timeout      func() time.Duration
	Metrics      TickMetrics
	// OnSkip is told why beforeCheck skipped a tick.
	OnSkip       func(err error)
}

type Scheduler struct {
	manager  *EvaluationManager
	workers  []*Worker
	stopOnce sync.Once
}

func NewScheduler(logger lager.Logger, cclock clock.Clock, rules []*runner.Rule, jobRunner JobRunner, opts Options) *Scheduler {
	jobChan := make(chan *runner.Job, opts.JobQueueSize)

	workers := make([]*Worker, opts.WorkerCount)
	for i := range workers {
		workers[i] = NewWorker(logger, jobRunner, jobChan)
	}

	return &Scheduler{
		manager: NewEvaluationManager(logger, opts.Interval, cclock, jobChan, rules, opts.BeforeCheck, opts.Timeout, opts.Metrics, opts.OnSkip),
		workers: workers,
	}
}

func (s *Scheduler) Start() {
	for _, worker := range s.workers {
		worker.Start()
	}
	s.manager.Start()
}

// Stop ends the timer and the workers. Jobs already running finish, queued
// ones are dropped.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.manager.Stop()
		for _, worker := range s.workers {
			worker.Stop()
		}
	})
}
