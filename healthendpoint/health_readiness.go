package healthendpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type (
	Pinger interface {
		Ping(ctx context.Context) error
	}

	ReadinessCheck struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Status string `json:"status"`
	}
	readinessResponse struct {
		OverallStatus string           `json:"overall_status"`
		Checks        []ReadinessCheck `json:"checks"`
	}
	Checker func(ctx context.Context) ReadinessCheck
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"

	readinessTimeout = 5 * time.Second
)

func readiness(checkers []Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := make([]ReadinessCheck, 0, len(checkers))
		overallStatus := statusUp
		for _, checker := range checkers {
			check := checker(ctx)
			checks = append(checks, check)
			if check.Status == statusDown {
				overallStatus = statusDown
			}
		}

		w.Header().Set("Content-Type", "application/json")
		response, err := json.Marshal(readinessResponse{OverallStatus: overallStatus, Checks: checks})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Internal error"}`))
			return
		}
		_, _ = w.Write(response)
	}
}

// StoreChecker reports a configured database as DOWN when its server does
// not answer a ping.
func StoreChecker(name string, pinger Pinger) Checker {
	return func(ctx context.Context) ReadinessCheck {
		status := statusUp
		if pinger == nil || pinger.Ping(ctx) != nil {
			status = statusDown
		}
		return ReadinessCheck{Name: name, Type: "influxdb", Status: status}
	}
}
