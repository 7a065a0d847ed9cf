// Package metrics defines and registers all custom Prometheus metrics for the
// account API. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered on the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - guard:  "admin" or "customer"
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by guard and result.",
	},
	[]string{"guard", "result"},
)

// LogoutsTotal counts revoked tokens through the logout endpoints.
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of tokens revoked via logout, by guard.",
	},
	[]string{"guard"},
)

// TokenChecksTotal counts bearer token checks made by the auth middleware.
// Labels:
//   - guard:  "admin" or "customer"
//   - result: "ok", "rejected" or "error"
var TokenChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_checks_total",
		Help:      "Total number of bearer token checks, by guard and result.",
	},
	[]string{"guard", "result"},
)

// ── Token usage metrics ───────────────────────────────────────────────────────

// TokenUsageQueueDepth tracks pending usage records in each dispatcher worker channel.
var TokenUsageQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "token_usage_queue_depth",
		Help:      "Current number of usage records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// TokenUsageDroppedTotal counts usage records dropped because a shard was full.
var TokenUsageDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_usage_dropped_total",
		Help:      "Total number of token usage records dropped on a full queue.",
	},
)

// ── Customer metrics ──────────────────────────────────────────────────────────

// CustomerMutationsTotal counts customer writes.
// Label:
//   - op: "register", "create", "update" or "delete"
var CustomerMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customer_mutations_total",
		Help:      "Total number of successful customer writes, by operation.",
	},
	[]string{"op"},
)
