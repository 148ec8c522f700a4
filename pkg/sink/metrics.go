package sink

import (
	"context"

	"github.com/vnykmshr/streamkit/pkg/metrics"
	"github.com/vnykmshr/streamkit/pkg/sequence"
)

// MetricsSink wraps an UploadSink with Prometheus metrics collection.
type MetricsSink[T any] struct {
	inner    UploadSink[T]
	name     string
	registry *metrics.Registry
}

// NewWithMetrics creates an upload sink reporting to the default
// metrics registry.
func NewWithMetrics[T any](name string) UploadSink[T] {
	s, _ := NewWithConfigAndMetrics[T](DefaultConfig(), name, metrics.DefaultConfig())
	return s
}

// NewWithConfigAndMetrics creates an upload sink with custom config and
// metrics.
func NewWithConfigAndMetrics[T any](config Config, name string, metricsConfig metrics.Config) (UploadSink[T], error) {
	if !metricsConfig.Enabled {
		return NewWithConfig[T](config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	// Count failed notifications at the swallow point.
	userOnError := config.OnError
	config.OnError = func(id int64, err error) {
		registry.SinkDeliveryErrs.WithLabelValues(name).Inc()
		if userOnError != nil {
			userOnError(id, err)
		}
	}

	inner, err := NewWithConfig[T](config)
	if err != nil {
		return nil, err
	}
	return &MetricsSink[T]{inner: inner, name: name, registry: registry}, nil
}

// Register implements UploadSink.Register.
func (ms *MetricsSink[T]) Register(obs Observer[T]) int64 {
	id := ms.inner.Register(obs)
	ms.registry.SinkObservers.WithLabelValues(ms.name).Set(float64(ms.inner.Observers()))
	return id
}

// Unregister implements UploadSink.Unregister.
func (ms *MetricsSink[T]) Unregister(id int64) {
	ms.inner.Unregister(id)
	ms.registry.SinkObservers.WithLabelValues(ms.name).Set(float64(ms.inner.Observers()))
}

// Observers implements UploadSink.Observers.
func (ms *MetricsSink[T]) Observers() int { return ms.inner.Observers() }

// Accept implements UploadSink.Accept.
func (ms *MetricsSink[T]) Accept(ctx context.Context, src sequence.Source[T]) error {
	before := ms.inner.Stats()
	err := ms.inner.Accept(ctx, src)
	after := ms.inner.Stats()

	ms.registry.SinkItemsAccepted.WithLabelValues(ms.name).Add(float64(after.ItemsAccepted - before.ItemsAccepted))
	ms.registry.SinkDeliveries.WithLabelValues(ms.name).Add(float64(after.Deliveries - before.Deliveries))
	return err
}

// Stats implements UploadSink.Stats.
func (ms *MetricsSink[T]) Stats() Stats { return ms.inner.Stats() }
