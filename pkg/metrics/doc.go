// Package metrics provides Prometheus instrumentation for streamkit components.
//
// Enable metrics by using the metrics-enabled constructors:
//
//	ch := channel.NewBoundedWithMetrics[int](10, "demo_feed")
//	uploads := sink.NewWithMetrics[string]("uploads")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Available Metrics
//
// Channel metrics:
//   - streamkit_channel_puts_total: items written to channels
//   - streamkit_channel_takes_total: items taken from channels
//   - streamkit_channel_blocked_puts_total: puts that blocked on a full buffer
//   - streamkit_channel_buffer_size: buffer capacity (-1 for unbounded)
//   - streamkit_channel_buffer_usage: currently buffered items
//
// Session metrics:
//   - streamkit_session_started_total: sessions started
//   - streamkit_session_ended_total: sessions reaching a terminal state,
//     labeled by state (completed, cancelled, faulted)
//
// Sink metrics:
//   - streamkit_sink_items_accepted_total: uploaded items accepted
//   - streamkit_sink_deliveries_total: successful observer notifications
//   - streamkit_sink_delivery_errors_total: failed observer notifications
//   - streamkit_sink_observers: currently registered observers
//
// Schedule metrics:
//   - streamkit_schedule_runs_total: scheduled rounds executed, by terminal state
//   - streamkit_schedule_skipped_total: rounds skipped due to overlap
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{Enabled: true, Registry: registry}
//	ch := channel.NewWithConfigAndMetrics[int](chConfig, "feed", config)
package metrics
