// Package metrics defines and registers all custom Prometheus metrics for the
// back-office API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// LoginsTotal counts login attempts by result.
// Label:
//   - result: "success", "invalid_credentials", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts self-service registrations by result.
// Label:
//   - result: "created" or "rejected"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of self-service registration attempts, by result.",
	},
	[]string{"result"},
)

// AccountWritesTotal counts admin account mutations.
// Labels:
//   - op: "create", "update", or "delete"
//   - result: "ok", "rejected", or "error"
var AccountWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_writes_total",
		Help:      "Total number of admin account mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ActiveSessions tracks how many accounts currently hold a live session.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of accounts with a currently active session.",
	},
)
