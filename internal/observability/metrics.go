package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "questboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// MessagesSent counts direct messages accepted for delivery.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "questboard_messages_sent_total",
		Help: "Total number of direct messages created",
	})

	// MessagesMarkedRead counts messages transitioned from unread to read.
	MessagesMarkedRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "questboard_messages_marked_read_total",
		Help: "Total number of messages marked as read",
	})

	// ConnectionTransitions counts connection status transitions by target status.
	ConnectionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "questboard_connection_transitions_total",
		Help: "Total number of connection status transitions",
	}, []string{"status"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
