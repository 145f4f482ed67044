// Package metrics defines and registers all custom Prometheus metrics for the
// web gateway. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry on package init via
// promauto and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dentedu_gateway"

// ── Session metrics ───────────────────────────────────────────────────────────

// SignInAttemptsTotal counts sign-in submissions.
// Label:
//   - outcome: "success", or the failure kind ("validation", "auth", "server", "network")
var SignInAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_attempts_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsClearedTotal counts sessions destroyed.
// Label:
//   - reason: "signout", "backend_rejected" or "unknown_role"
var SessionsClearedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_cleared_total",
		Help:      "Total number of sessions cleared, by reason.",
	},
	[]string{"reason"},
)

// WhoAmIFailuresTotal counts sign-ins where the follow-up user lookup failed
// and the role fell back to the token claim.
var WhoAmIFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "whoami_failures_total",
		Help:      "Total number of post-login user lookups that failed.",
	},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard evaluations.
// Label:
//   - reason: "allowed", "unauthenticated", "unknown_role" or "role_mismatch"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by reason.",
	},
	[]string{"reason"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the REST backend.
// Labels:
//   - endpoint: "login", "me" or "register"
//   - status: HTTP status code, or "error" when no response arrived
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests from the gateway to the REST backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)

// BackendOnline is 1 while the connectivity monitor sees the backend, else 0.
var BackendOnline = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backend_online",
		Help:      "Whether the REST backend was reachable at the last probe.",
	},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts requests served by the gateway.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern (e.g. "/doctor/dashboard")
//   - code: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served, by method, route and code.",
	},
	[]string{"method", "route", "code"},
)
