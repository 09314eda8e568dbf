// Package metrics defines and registers all custom Prometheus metrics for
// the salon auth service. It is the single source of truth for metric
// names, labels, and help strings.
//
// The promauto constructors register with the default registry at package
// init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "salon_auth"

// LoginsTotal counts authentication attempts.
// Labels:
//   - role: the namespace the attempt targeted (admin/staff/reception)
//   - result: "success", "first_login", or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of authentication attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// ActivationsTotal counts successful first-time activations by role.
var ActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activations_total",
		Help:      "Total number of accounts activated via first login.",
	},
	[]string{"role"},
)

// GateDeniedTotal counts requests rejected by the authorization gate.
// Label:
//   - reason: "missing_header", "invalid_token", or "forbidden"
var GateDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denied_total",
		Help:      "Total number of requests denied by the authorization gate.",
	},
	[]string{"reason"},
)

// TokenValidationsTotal counts explicit /auth/validate checks.
// Label:
//   - result: "valid" or "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of explicit token validation requests.",
	},
	[]string{"result"},
)
