// Package metrics defines all custom Prometheus metrics for the DPD
// gateway. It is the single source of truth for metric names, labels, and
// help strings; registration happens implicitly via promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dpd_gateway"

// --- Carrier call metrics ---

// CarrierRequestsTotal counts SOAP calls to the carrier.
// Labels:
//   - operation: getAuth, storeOrders, getTrackingData, findParcelShopsByGeoData
//   - result: "ok" or "error"
var CarrierRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carrier_requests_total",
		Help:      "Total number of SOAP requests sent to the carrier, by operation and result.",
	},
	[]string{"operation", "result"},
)

// LoginThrottleSkipsTotal counts login calls answered from the cached
// session without contacting the carrier (24h throttle window).
var LoginThrottleSkipsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttle_skips_total",
		Help:      "Total number of logins short-circuited by the 24h session throttle.",
	},
)

// --- Shipment metrics ---

// LabelsStoredTotal counts labels persisted after successful submissions.
var LabelsStoredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "labels_stored_total",
		Help:      "Total number of shipping labels stored.",
	},
)

// TrackingEventsMergedTotal counts delivery events written by tracking polls
// (appended or updated in place).
var TrackingEventsMergedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_merged_total",
		Help:      "Total number of delivery events merged into shipment event logs.",
	},
)

// StateTransitionsTotal counts coarse delivery-state transitions.
// Label:
//   - state: the new coarse state (e.g. "ON_THE_ROAD")
var StateTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_transitions_total",
		Help:      "Total number of coarse delivery-state transitions, by new state.",
	},
	[]string{"state"},
)

// --- Sync metrics ---

// SyncQueueDepth tracks the number of refresh jobs waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", ...)
var SyncQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sync_queue_depth",
		Help:      "Current number of tracking-refresh jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// SyncRunsTotal counts scheduled batch tracking-sync runs.
// Label:
//   - result: "ok" or "error"
var SyncRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Total number of scheduled batch tracking sync runs, by result.",
	},
	[]string{"result"},
)
