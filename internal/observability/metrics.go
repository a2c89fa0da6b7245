package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clubhub_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ChangeEventsTotal counts change-feed events published by table.
	ChangeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubhub_change_events_total",
		Help: "Total number of change-feed events published by table",
	}, []string{"table"})

	// ChangeSubscriptions is the gauge of active change-feed subscriptions.
	ChangeSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clubhub_change_subscriptions",
		Help: "Number of active change-feed subscriptions",
	})

	// WebSocketConnectionsTotal is the gauge of total WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clubhub_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubhub_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// NotificationsCreated counts notification fan-out writes by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubhub_notifications_created_total",
		Help: "Total number of notifications created by type",
	}, []string{"type"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
