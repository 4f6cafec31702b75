// Package metrics defines and registers all custom Prometheus metrics for
// the reimbursement API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init and
// are exposed on /metrics alongside the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ers"

// ── Reimbursement metrics ─────────────────────────────────────────────────────

// ReimbSubmittedTotal counts newly submitted reimbursements.
// Label:
//   - reimb_type: "lodging", "travel", "food", or "other"
var ReimbSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reimbursements_submitted_total",
		Help:      "Total number of reimbursements submitted, by category.",
	},
	[]string{"reimb_type"},
)

// ReimbResolvedTotal counts resolutions.
// Label:
//   - reimb_status: the terminal status applied ("approved" or "denied")
var ReimbResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reimbursements_resolved_total",
		Help:      "Total number of reimbursements resolved, by terminal status.",
	},
	[]string{"reimb_status"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful self-registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
