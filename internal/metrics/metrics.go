// Package metrics defines and registers all custom Prometheus metrics for
// PROADMIN: the client core (transport, stubs, session) and the reference
// backend. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default registry on import through promauto.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "proadmin"

// ── Client transport ─────────────────────────────────────────────────────────

// ClientRequestsTotal counts requests issued by the transport.
// Labels:
//   - method: HTTP verb
//   - route: request path with numeric segments collapsed (see Route)
//   - outcome: "ok", "session_expired", "server_error" or "network_error"
var ClientRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of backend requests issued by the client, by outcome.",
	},
	[]string{"method", "route", "outcome"},
)

// ClientRequestDuration measures request round-trip time including body read.
var ClientRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Round-trip duration of backend requests issued by the client.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Client gateway & session ─────────────────────────────────────────────────

// StubOperationsTotal counts gateway operations answered locally because the
// backend has no endpoint for them yet.
// Label:
//   - operation: gateway method name (e.g. "AddFinanceTransaction")
var StubOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "stub_operations_total",
		Help:      "Total number of gateway operations synthesized without a network call.",
	},
	[]string{"operation"},
)

// SessionTransitionsTotal counts session state changes.
// Label:
//   - state: "loading", "authenticated" or "unauthenticated"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by target state.",
	},
	[]string{"state"},
)

// ── Reference backend ────────────────────────────────────────────────────────

// BackendRequestsTotal counts requests served by the reference backend.
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Total number of requests served by the reference backend.",
	},
	[]string{"method", "route", "status"},
)

// BackendLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var BackendLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "logins_total",
		Help:      "Total number of login attempts against the reference backend.",
	},
	[]string{"result"},
)

// Route strips the query string and collapses numeric path segments to
// ":id" so that label cardinality stays bounded.
func Route(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p != "" && isDigits(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
