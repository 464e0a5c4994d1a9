// Package metrics defines and registers all custom Prometheus metrics for
// the publishing core. It is the single source of truth for metric names,
// labels, and help strings; everything registers with the default registry
// at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "publishing"

// ── Store operation metrics ──────────────────────────────────────────────────

// OperationsTotal counts store operations by outcome.
// Labels:
//   - op: the operation name (e.g. "create_article")
//   - outcome: "ok", "unauthorized", "not_found", "conflict", "invalid"
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of store operations by outcome.",
	},
	[]string{"op", "outcome"},
)

// ── Persistence metrics ──────────────────────────────────────────────────────

// SnapshotFailuresTotal counts snapshot writes that failed. Persistence is
// best-effort, so failures surface here and in the log rather than to the
// caller.
// Label:
//   - collection: the snapshot key that failed (e.g. "articles")
var SnapshotFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_failures_total",
		Help:      "Total number of failed collection snapshot writes.",
	},
	[]string{"collection"},
)

// SnapshotWritesTotal counts snapshot writes handed to the persistence
// backend, successful or not.
var SnapshotWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_writes_total",
		Help:      "Total number of collection snapshot writes attempted.",
	},
	[]string{"collection"},
)

// ── Notification metrics ─────────────────────────────────────────────────────

// NotificationsActive tracks notifications currently alive (posted and not
// yet expired).
var NotificationsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_active",
		Help:      "Number of notifications currently displayed.",
	},
)
