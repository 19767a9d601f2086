package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ActiveWebSockets tracks the number of open notification websocket connections.
var ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "gather_active_websockets",
	Help: "Number of currently open notification websocket connections",
})

// WebSocketBackpressureDrops counts messages dropped because a client buffer
// was full or closed.
var WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gather_websocket_backpressure_drops_total",
	Help: "Messages dropped due to websocket client backpressure",
}, []string{"hub", "reason"})

// NotificationsPublished counts notifications pushed to the live channel by type.
var NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gather_notifications_published_total",
	Help: "Notifications published to the live push channel",
}, []string{"type"})

// SweepRemovals counts active-post projection rows removed by the expiry sweep.
var SweepRemovals = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gather_sweep_removed_total",
	Help: "Active post projections removed by the expiry sweep",
})

// SweepFailures counts per-row sweep failures.
var SweepFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gather_sweep_failures_total",
	Help: "Per-row failures during the expiry sweep",
})

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gather_redis_errors_total",
	Help: "Redis command errors",
}, []string{"command"})
