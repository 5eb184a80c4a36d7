package models

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	ConfigErrorKind     ErrorKind = "config"
	QueryErrorKind      ErrorKind = "query"
	EvaluationErrorKind ErrorKind = "evaluation"
	SchedulingErrorKind ErrorKind = "scheduling"
)

// RuleError is what the error listeners receive. Query holds the rendered
// query text when one was built.
type RuleError struct {
	Kind        ErrorKind
	Database    string
	Measurement string
	Rule        int
	Query       string
	Err         error
}

func (e *RuleError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(" error")
	if e.Measurement != "" {
		fmt.Fprintf(&b, " in %s/%s rule %d", e.Database, e.Measurement, e.Rule)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Query != "" {
		fmt.Fprintf(&b, " (ql: %s)", e.Query)
	}
	return b.String()
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func IsKind(err error, kind ErrorKind) bool {
	var ruleErr *RuleError
	return errors.As(err, &ruleErr) && ruleErr.Kind == kind
}

type ConfigErrors []error

func (e ConfigErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func (e ConfigErrors) Unwrap() []error {
	return e
}
