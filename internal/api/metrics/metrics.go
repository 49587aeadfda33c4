// Package metrics defines and registers all custom Prometheus metrics for the
// shop API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shop"

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDecisionsTotal counts authorization gate outcomes.
// Label:
//   - decision: "allow", "unauthenticated" or "forbidden"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of authorization decisions, by outcome.",
	},
	[]string{"decision"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "locked"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders created, split by whether an admin placed
// the order on behalf of someone.
// Label:
//   - placed_by: "owner" or "admin"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
	[]string{"placed_by"},
)

// AuditQueueDepth tracks the number of order events waiting in each audit
// worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of order events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long persisting one order event takes.
// Label:
//   - result: "ok" or "error"
var AuditWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of order event persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
