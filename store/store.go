// Package store describes the time-series store the warner queries.
package store

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/influxdb-warner/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported result format")

// StatementError is an error the store answered with for one statement, such
// as an unknown function. The store itself is reachable.
type StatementError struct {
	Err error
}

func (e *StatementError) Error() string {
	return e.Err.Error()
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// QueryHandle accumulates the parts of one select statement against a
// measurement. String renders the statement as it will be sent.
type QueryHandle interface {
	SetTimeRange(start, end string)
	AddFunction(name string, args ...string)
	AddGroup(tag string)
	Where(field string, value interface{}, operator string)
	SetFormat(format Format)
	String() string
	Execute(ctx context.Context) (map[string][]models.Row, error)
}

type Connector interface {
	Query(measurement string) QueryHandle
	Ping(ctx context.Context) error
	Close() error
}

type ConnectorFactory func(db *models.Database, timeout time.Duration) (Connector, error)
