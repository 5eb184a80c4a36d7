package warner

import (
	"sync"

	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/warner/runner"

	"code.cloudfoundry.org/lager/v3"
)

type WarnListener func(event *models.AlertEvent)

type ErrorListener func(err *models.RuleError)

// listeners fans runner output out to the registered callbacks.
type listeners struct {
	logger lager.Logger
	lock   sync.RWMutex
	warns  []WarnListener
	errors []ErrorListener
}

var _ runner.Emitter = &listeners{}

func (l *listeners) onWarn(listener WarnListener) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.warns = append(l.warns, listener)
}

func (l *listeners) onError(listener ErrorListener) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.errors = append(l.errors, listener)
}

func (l *listeners) Warn(event *models.AlertEvent) {
	l.lock.RLock()
	registered := l.warns
	l.lock.RUnlock()

	if len(registered) == 0 {
		l.logger.Debug("unobserved-alert", lager.Data{"database": event.Database, "measurement": event.Measurement, "text": event.Text})
		return
	}
	for _, listener := range registered {
		listener(event)
	}
}

func (l *listeners) Error(err *models.RuleError) {
	l.lock.RLock()
	registered := l.errors
	l.lock.RUnlock()

	if len(registered) == 0 {
		l.logger.Error("unobserved-rule-error", err, lager.Data{
			"kind":        err.Kind,
			"database":    err.Database,
			"measurement": err.Measurement,
			"rule":        err.Rule,
			"ql":          err.Query,
		})
		return
	}
	for _, listener := range registered {
		listener(err)
	}
}
