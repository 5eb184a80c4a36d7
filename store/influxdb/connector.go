package influxdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/store"

	"code.cloudfoundry.org/lager/v3"
	client "github.com/influxdata/influxdb1-client/v2"
)

const defaultPingTimeout = 5 * time.Second

var _ store.Connector = &Connector{}

// Connector runs queries against one InfluxDB 1.x database over HTTP.
type Connector struct {
	database string
	address  string
	client   client.Client
	logger   lager.Logger
}

func NewConnector(db *models.Database, timeout time.Duration, logger lager.Logger) (*Connector, error) {
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:     db.Address(),
		Username: db.User,
		Password: db.Pass,
		Timeout:  timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create influxdb client for %s: %w", db.Name, err)
	}
	return &Connector{
		database: db.Name,
		address:  db.Address(),
		client:   c,
		logger:   logger.Session("influxdb", lager.Data{"database": db.Name, "address": db.Address()}),
	}, nil
}

// NewConnectorFactory adapts NewConnector to store.ConnectorFactory.
func NewConnectorFactory(logger lager.Logger) store.ConnectorFactory {
	return func(db *models.Database, timeout time.Duration) (store.Connector, error) {
		return NewConnector(db, timeout, logger)
	}
}

func (c *Connector) Query(measurement string) store.QueryHandle {
	return newQuery(c, measurement)
}

func (c *Connector) Ping(ctx context.Context) error {
	timeout := defaultPingTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	_, _, err := c.client.Ping(timeout)
	if err != nil {
		c.logger.Error("failed-to-ping", err)
	}
	return err
}

func (c *Connector) Close() error {
	return c.client.Close()
}

// query sends q and waits for the response or for ctx to end, whichever
// comes first. An abandoned request ends with the client's own timeout.
func (c *Connector) query(ctx context.Context, command string) (*client.Response, error) {
	type result struct {
		response *client.Response
		err      error
	}
	results := make(chan result, 1)
	go func() {
		response, err := c.client.Query(client.NewQuery(command, c.database, ""))
		results <- result{response: response, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-results:
		if r.err != nil {
			return nil, r.err
		}
		if r.response.Err != "" {
			return nil, errors.New(r.response.Err)
		}
		if err := r.response.Error(); err != nil {
			return nil, &store.StatementError{Err: err}
		}
		return r.response, nil
	}
}
