package healthendpoint

import (
	"code.cloudfoundry.org/influxdb-warner/helpers"

	"code.cloudfoundry.org/lager/v3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tedsuo/ifrit"
)

func NewServerWithBasicAuth(conf helpers.HealthConfig, healthCheckers []Checker, logger lager.Logger, gatherer prometheus.Gatherer) (ifrit.Runner, error) {
	healthRouter, err := NewHealthRouter(conf, healthCheckers, logger, gatherer)
	if err != nil {
		return nil, err
	}
	return helpers.NewHTTPServer(logger.Session("health-server"), conf.ServerConfig, healthRouter), nil
}

// NewHealthRouter serves metrics on every path except /health/readiness,
// which stays unauthenticated when readiness checks are enabled.
func NewHealthRouter(conf helpers.HealthConfig, healthCheckers []Checker, logger lager.Logger, gatherer prometheus.Gatherer) (*mux.Router, error) {
	router := mux.NewRouter()
	if conf.ReadinessCheckEnabled {
		router.Handle("/health/readiness", readiness(healthCheckers))
	}

	promHandler := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	if !conf.BasicAuth.Enabled() {
		router.PathPrefix("").Handler(promHandler)
		return router, nil
	}

	basicAuthentication, err := helpers.CreateBasicAuthMiddleware(logger, conf.BasicAuth)
	if err != nil {
		return nil, err
	}
	everything := router.PathPrefix("").Subrouter()
	everything.Use(basicAuthentication.Middleware)
	everything.PathPrefix("").Handler(promHandler)

	return router, nil
}
