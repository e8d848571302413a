// Package metrics defines all custom Prometheus metrics for the bowl
// storefront. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bowlapp"

// OrdersPlacedTotal counts successfully placed orders.
// Labels:
//   - order_type: "dine-in" or "take-away"
//   - payment_method: "cash", "card", or "mobile"
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders successfully placed.",
	},
	[]string{"order_type", "payment_method"},
)

// PointsAwardedTotal counts loyalty points handed out, by reason class.
var PointsAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "Total loyalty points awarded.",
	},
	[]string{"reason"},
)

// SignupsTotal counts accounts created.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// StorageErrorsTotal counts persistence gateway failures that were swallowed
// per the storage contract.
// Label:
//   - op: "get", "set", or "remove"
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total persistence gateway operations that failed and degraded to defaults.",
	},
	[]string{"op"},
)

// CatalogFallbackTotal counts catalog fetches that served the bundled
// catalog because the remote source failed.
var CatalogFallbackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_fallback_total",
		Help:      "Total catalog fetches answered from the bundled fallback catalog.",
	},
)

// PersistQueueDepth tracks pending writes in each persistence writer shard.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PersistQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "persist_queue_depth",
		Help:      "Current number of writes pending in each persistence writer shard.",
	},
	[]string{"worker_id"},
)
