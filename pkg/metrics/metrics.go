// Package metrics provides Prometheus instrumentation for streamkit components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for streamkit components.
type Registry struct {
	// Channel Metrics
	ChannelPuts        *prometheus.CounterVec
	ChannelTakes       *prometheus.CounterVec
	ChannelBlockedPuts *prometheus.CounterVec
	ChannelBufferSize  *prometheus.GaugeVec
	ChannelBufferUsage *prometheus.GaugeVec

	// Session Metrics
	SessionsStarted *prometheus.CounterVec
	SessionsEnded   *prometheus.CounterVec

	// Sink Metrics
	SinkItemsAccepted *prometheus.CounterVec
	SinkDeliveries    *prometheus.CounterVec
	SinkDeliveryErrs  *prometheus.CounterVec
	SinkObservers     *prometheus.GaugeVec

	// Schedule Metrics
	ScheduleRuns    *prometheus.CounterVec
	ScheduleSkipped *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by streamkit components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Channel Metrics
		ChannelPuts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "channel",
				Name:      "puts_total",
				Help:      "Total number of items written to channels",
			},
			[]string{"channel_name"},
		),

		ChannelTakes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "channel",
				Name:      "takes_total",
				Help:      "Total number of items taken from channels",
			},
			[]string{"channel_name"},
		),

		ChannelBlockedPuts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "channel",
				Name:      "blocked_puts_total",
				Help:      "Total number of puts that blocked on a full buffer",
			},
			[]string{"channel_name"},
		),

		ChannelBufferSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streamkit",
				Subsystem: "channel",
				Name:      "buffer_size",
				Help:      "Channel buffer capacity (-1 for unbounded)",
			},
			[]string{"channel_name"},
		),

		ChannelBufferUsage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streamkit",
				Subsystem: "channel",
				Name:      "buffer_usage",
				Help:      "Current number of buffered items",
			},
			[]string{"channel_name"},
		),

		// Session Metrics
		SessionsStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "session",
				Name:      "started_total",
				Help:      "Total number of streaming sessions started",
			},
			[]string{"session_name"},
		),

		SessionsEnded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "session",
				Name:      "ended_total",
				Help:      "Total number of sessions reaching a terminal state",
			},
			[]string{"session_name", "state"},
		),

		// Sink Metrics
		SinkItemsAccepted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "sink",
				Name:      "items_accepted_total",
				Help:      "Total number of uploaded items accepted by sinks",
			},
			[]string{"sink_name"},
		),

		SinkDeliveries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "sink",
				Name:      "deliveries_total",
				Help:      "Total number of successful observer notifications",
			},
			[]string{"sink_name"},
		),

		SinkDeliveryErrs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "sink",
				Name:      "delivery_errors_total",
				Help:      "Total number of failed observer notifications",
			},
			[]string{"sink_name"},
		),

		SinkObservers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streamkit",
				Subsystem: "sink",
				Name:      "observers",
				Help:      "Number of currently registered observers",
			},
			[]string{"sink_name"},
		),

		// Schedule Metrics
		ScheduleRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "schedule",
				Name:      "runs_total",
				Help:      "Total number of scheduled streaming rounds executed",
			},
			[]string{"job_id", "state"},
		),

		ScheduleSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "schedule",
				Name:      "skipped_total",
				Help:      "Total number of scheduled rounds skipped because the previous round was still running",
			},
			[]string{"job_id"},
		),
	}
}
