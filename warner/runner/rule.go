package runner

import (
	"errors"
	"time"

	"code.cloudfoundry.org/influxdb-warner/expression"
	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/warner/query"
	"code.cloudfoundry.org/influxdb-warner/window"
)

// Rule is a rule descriptor compiled for running. A rule that failed to
// compile keeps its error and reports it on every run.
type Rule struct {
	Database    string
	Measurement string
	Index       int
	Descriptor  *models.Rule

	spec   *query.Spec
	checks expression.Checks
	days   window.Days
	times  window.Times
	err    error
}

func Compile(database string, measurement string, index int, descriptor *models.Rule) *Rule {
	rule := &Rule{
		Database:    database,
		Measurement: measurement,
		Index:       index,
		Descriptor:  descriptor,
	}

	var errs []error
	var err error
	if rule.spec, err = query.Parse(measurement, descriptor); err != nil {
		errs = append(errs, err)
	}
	if rule.checks, err = expression.CompileChecks(descriptor.Check); err != nil {
		errs = append(errs, err)
	}
	if rule.days, err = window.ParseDays(descriptor.Day); err != nil {
		errs = append(errs, err)
	}
	if rule.times, err = window.ParseTimes(descriptor.Time); err != nil {
		errs = append(errs, err)
	}
	rule.err = errors.Join(errs...)
	return rule
}

// Err is the compile error, nil for a runnable rule.
func (r *Rule) Err() error {
	return r.err
}

func (r *Rule) ConfigError() *models.RuleError {
	if r.err == nil {
		return nil
	}
	return r.ruleError(models.ConfigErrorKind, "", r.err)
}

func (r *Rule) inWindow(now time.Time) bool {
	return r.days.Contains(now) && r.times.Contains(now)
}

func (r *Rule) ruleError(kind models.ErrorKind, ql string, err error) *models.RuleError {
	return &models.RuleError{
		Kind:        kind,
		Database:    r.Database,
		Measurement: r.Measurement,
		Rule:        r.Index,
		Query:       ql,
		Err:         err,
	}
}
