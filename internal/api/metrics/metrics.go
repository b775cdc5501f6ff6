// Package metrics defines and registers the custom Prometheus metrics of the
// focusboard API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "focusboard"

// ── Realtime metrics ──────────────────────────────────────────────────────────

// RealtimeConnections tracks open websocket connections.
var RealtimeConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "connections",
		Help:      "Current number of open websocket connections.",
	},
)

// RealtimeAuthenticated tracks connections that have joined a user room.
var RealtimeAuthenticated = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "authenticated_connections",
		Help:      "Current number of websocket connections that joined a user room.",
	},
)

// RealtimeAuthTotal counts socket authentication attempts.
// Label:
//   - result: "ok" or "error"
var RealtimeAuthTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "auth_total",
		Help:      "Total number of websocket authenticate attempts, by result.",
	},
	[]string{"result"},
)

// EventsPublishedTotal counts change events handed to a room.
// Label:
//   - event: e.g. "task_created", "note_deleted"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "events_published_total",
		Help:      "Total number of change events delivered to a user room.",
	},
	[]string{"event"},
)

// EventsDroppedTotal counts events discarded before reaching a client.
// Label:
//   - reason: "queue_full" (dispatcher) or "send_buffer_full" (slow client)
var EventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "events_dropped_total",
		Help:      "Total number of change events dropped, by reason.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the number of events waiting in each dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - action: "register" or "login"
//   - result: "ok", "invalid_credentials", "throttled", "conflict", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by result.",
	},
	[]string{"action", "result"},
)

// TokenRejectionsTotal counts bearer tokens refused by the auth middleware.
// Label:
//   - reason: "missing", "expired", "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)
