// Package metrics exposes the Prometheus instruments for the event loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "canvas_events_processed_total",
		Help: "Inbound room events that completed their cycle, by type.",
	}, []string{"type"})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "canvas_events_dropped_total",
		Help: "Events abandoned because the target room was absent or expired.",
	})

	CycleFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "canvas_cycle_failures_total",
		Help: "Event cycles aborted by a store failure.",
	})

	OpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "canvas_open_connections",
		Help: "Currently open websocket connections.",
	})
)

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
