package main

import (
	"context"
	"os"

	"code.cloudfoundry.org/influxdb-warner/healthendpoint"
	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/rules"
	"code.cloudfoundry.org/influxdb-warner/startup"
	"code.cloudfoundry.org/influxdb-warner/warner"
	"code.cloudfoundry.org/influxdb-warner/warner/config"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tedsuo/ifrit"
)

func main() {
	conf, logger := startup.Bootstrap("warner", config.LoadConfig)

	ruleSet, err := rules.LoadFile(conf.RulesPath)
	startup.ExitOnError(err, logger, "failed-to-load-rules", lager.Data{"path": conf.RulesPath})

	warnerCollector := healthendpoint.NewWarnerCollector()
	promRegistry := prometheus.NewRegistry()
	healthendpoint.RegisterCollectors(promRegistry, []prometheus.Collector{warnerCollector}, true, logger.Session("warner-prometheus"))

	w, err := warner.New(logger, ruleSet,
		warner.WithEngineConfig(conf.Engine),
		warner.WithClock(clock.NewClock()),
		warner.WithMetrics(warnerCollector),
	)
	startup.ExitOnError(err, logger, "failed-to-create-warner")

	alertLogger := logger.Session("alerts")
	w.OnWarn(func(event *models.AlertEvent) {
		alertLogger.Info("alert", lager.Data(event.Fields()))
	})
	w.OnError(func(ruleErr *models.RuleError) {
		alertLogger.Error("rule-failed", ruleErr, lager.Data{"kind": ruleErr.Kind, "database": ruleErr.Database, "measurement": ruleErr.Measurement, "rule": ruleErr.Rule, "ql": ruleErr.Query})
	})

	checkers := make([]healthendpoint.Checker, 0, len(ruleSet.Databases))
	for _, db := range ruleSet.Databases {
		checkers = append(checkers, healthendpoint.StoreChecker(db.Name, databasePinger{warner: w, database: db.Name}))
	}

	startup.StartService(logger,
		startup.Server("warner", func() (ifrit.Runner, error) { return ifrit.RunFunc(runFunc(w, conf)), nil }),
		startup.Server("health_server", func() (ifrit.Runner, error) {
			return healthendpoint.NewServerWithBasicAuth(conf.Health, checkers, logger.Session("health-server"), promRegistry)
		}),
	)
}

func runFunc(w *warner.Warner, conf *config.Config) func(signals <-chan os.Signal, ready chan<- struct{}) error {
	return func(signals <-chan os.Signal, ready chan<- struct{}) error {
		w.Start(conf.CheckInterval, nil)

		close(ready)

		<-signals
		w.Close()

		return nil
	}
}

type databasePinger struct {
	warner   *warner.Warner
	database string
}

func (p databasePinger) Ping(ctx context.Context) error {
	return p.warner.Ping(ctx, p.database)
}
