package channel

import (
	"context"

	"github.com/vnykmshr/streamkit/pkg/metrics"
)

// MetricsChannel wraps a Channel with Prometheus metrics collection.
type MetricsChannel[T any] struct {
	inner    Channel[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewBoundedWithMetrics creates a bounded channel with metrics enabled on
// the default registry.
func NewBoundedWithMetrics[T any](capacity int, name string) Channel[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return NewWithConfigAndMetrics[T](Config{Capacity: capacity}, name, metrics.DefaultConfig())
}

// NewWithConfigAndMetrics creates a channel with custom config and metrics.
func NewWithConfigAndMetrics[T any](config Config, name string, metricsConfig metrics.Config) Channel[T] {
	if !metricsConfig.Enabled {
		return NewWithConfig[T](config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	// Count back-pressure events at the moment a put starts waiting.
	userOnBlock := config.OnBlock
	config.OnBlock = func() {
		registry.ChannelBlockedPuts.WithLabelValues(name).Inc()
		if userOnBlock != nil {
			userOnBlock()
		}
	}

	mc := &MetricsChannel[T]{
		inner:    NewWithConfig[T](config),
		name:     name,
		registry: registry,
		enabled:  true,
	}
	registry.ChannelBufferSize.WithLabelValues(name).Set(float64(mc.inner.Cap()))
	mc.updateUsage()

	return mc
}

func (mc *MetricsChannel[T]) updateUsage() {
	mc.registry.ChannelBufferUsage.WithLabelValues(mc.name).Set(float64(mc.inner.Len()))
}

// Put implements Channel.Put.
func (mc *MetricsChannel[T]) Put(ctx context.Context, item T) error {
	err := mc.inner.Put(ctx, item)
	if err == nil {
		mc.registry.ChannelPuts.WithLabelValues(mc.name).Inc()
	}
	mc.updateUsage()
	return err
}

// TryTake implements Channel.TryTake.
func (mc *MetricsChannel[T]) TryTake() (T, bool) {
	item, ok := mc.inner.TryTake()
	if ok {
		mc.registry.ChannelTakes.WithLabelValues(mc.name).Inc()
	}
	mc.updateUsage()
	return item, ok
}

// WaitReadable implements Channel.WaitReadable.
func (mc *MetricsChannel[T]) WaitReadable(ctx context.Context) (bool, error) {
	return mc.inner.WaitReadable(ctx)
}

// Complete implements Channel.Complete.
func (mc *MetricsChannel[T]) Complete(err error) {
	mc.inner.Complete(err)
}

// Completed implements Channel.Completed.
func (mc *MetricsChannel[T]) Completed() bool { return mc.inner.Completed() }

// Err implements Channel.Err.
func (mc *MetricsChannel[T]) Err() error { return mc.inner.Err() }

// Len implements Channel.Len.
func (mc *MetricsChannel[T]) Len() int { return mc.inner.Len() }

// Cap implements Channel.Cap.
func (mc *MetricsChannel[T]) Cap() int { return mc.inner.Cap() }

// Stats implements Channel.Stats.
func (mc *MetricsChannel[T]) Stats() Stats { return mc.inner.Stats() }
