package scheduler

import (
	"context"

	"code.cloudfoundry.org/influxdb-warner/warner/runner"

	"code.cloudfoundry.org/lager/v3"
)

type JobRunner interface {
	Run(ctx context.Context, job *runner.Job) runner.State
}

// Worker runs jobs from jobChan one at a time until stopped.
type Worker struct {
	logger    lager.Logger
	jobRunner JobRunner
	jobChan   <-chan *runner.Job
	doneChan  chan bool
}

func NewWorker(logger lager.Logger, jobRunner JobRunner, jobChan <-chan *runner.Job) *Worker {
	return &Worker{
		logger:    logger.Session("Worker"),
		jobRunner: jobRunner,
		jobChan:   jobChan,
		doneChan:  make(chan bool),
	}
}

func (w *Worker) Start() {
	go w.start()
}

func (w *Worker) start() {
	for {
		select {
		case <-w.doneChan:
			return
		case job := <-w.jobChan:
			// a stop that raced with the receive wins
			select {
			case <-w.doneChan:
				return
			default:
			}
			state := w.jobRunner.Run(context.Background(), job)
			w.logger.Debug("job-finished", lager.Data{"tick": job.TickID, "database": job.Rule.Database, "measurement": job.Rule.Measurement, "rule": job.Rule.Index, "state": state.String()})
		}
	}
}

func (w *Worker) Stop() {
	close(w.doneChan)
}
