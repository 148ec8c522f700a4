package sink

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/streamkit/pkg/common/validation"
	"github.com/vnykmshr/streamkit/pkg/sequence"
)

// Observer receives items broadcast by an upload sink.
type Observer[T any] interface {
	// Notify delivers one item. A non-nil error marks this delivery
	// failed for this observer only; the broadcast continues.
	Notify(ctx context.Context, item T) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[T any] func(ctx context.Context, item T) error

// Notify implements Observer.
func (f ObserverFunc[T]) Notify(ctx context.Context, item T) error {
	return f(ctx, item)
}

// UploadSink accepts client-driven sequences and fans each item out to
// the observers registered at the moment the item arrives. Delivery is
// at-most-once: observers registered mid-stream see only later items,
// and there is no replay buffer.
type UploadSink[T any] interface {
	// Register adds an observer and returns a handle for Unregister.
	Register(obs Observer[T]) int64

	// Unregister removes the observer with the given handle. Removing
	// an unknown handle is a no-op.
	Unregister(id int64)

	// Observers returns the number of currently registered observers.
	Observers() int

	// Accept drains src to exhaustion, broadcasting each item. It
	// returns the source's error if it faults, or ctx.Err() on
	// cancellation. Observer failures never abort the drain.
	Accept(ctx context.Context, src sequence.Source[T]) error

	// Stats returns delivery statistics.
	Stats() Stats
}

// Stats carries sink delivery counters.
type Stats struct {
	ItemsAccepted  int64
	Deliveries     int64
	DeliveryErrors int64
	Observers      int
}

// Config holds upload sink configuration.
type Config struct {
	// NotifyTimeout bounds a single observer notification. Zero means
	// notify inline with no extra bound; the broadcast then relies on
	// the observer honoring ctx.
	NotifyTimeout time.Duration

	// OnError is called with the observer handle and the failure when
	// a notification fails. Errors are otherwise swallowed.
	OnError func(id int64, err error)
}

// DefaultConfig returns the default sink configuration.
func DefaultConfig() Config {
	return Config{}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return validation.ValidateNonNegativeDuration("sink", "notify_timeout", c.NotifyTimeout)
}

type uploadSink[T any] struct {
	config Config

	mu        sync.RWMutex
	observers map[int64]Observer[T]
	nextID    int64

	itemsAccepted  int64
	deliveries     int64
	deliveryErrors int64
}

// New creates an upload sink with default configuration.
func New[T any]() UploadSink[T] {
	s, _ := NewWithConfig[T](DefaultConfig())
	return s
}

// NewWithConfig creates an upload sink with the given configuration.
func NewWithConfig[T any](config Config) (UploadSink[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &uploadSink[T]{
		config:    config,
		observers: make(map[int64]Observer[T]),
	}, nil
}

func (s *uploadSink[T]) Register(obs Observer[T]) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.observers[id] = obs
	return id
}

func (s *uploadSink[T]) Unregister(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}

func (s *uploadSink[T]) Observers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

func (s *uploadSink[T]) Accept(ctx context.Context, src sequence.Source[T]) error {
	if err := validation.ValidateNotNil("sink", "source", src); err != nil {
		return err
	}
	for {
		item, ok, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		atomic.AddInt64(&s.itemsAccepted, 1)
		s.broadcast(ctx, item)
	}
}

// broadcast delivers item to a stable snapshot of the registry taken at
// call time. Registration changes during the broadcast affect only
// later items.
func (s *uploadSink[T]) broadcast(ctx context.Context, item T) {
	s.mu.RLock()
	snapshot := make(map[int64]Observer[T], len(s.observers))
	for id, obs := range s.observers {
		snapshot[id] = obs
	}
	s.mu.RUnlock()

	for id, obs := range snapshot {
		if err := s.notify(ctx, obs, item); err != nil {
			atomic.AddInt64(&s.deliveryErrors, 1)
			if s.config.OnError != nil {
				s.config.OnError(id, err)
			}
			continue
		}
		atomic.AddInt64(&s.deliveries, 1)
	}
}

// notify runs one delivery, bounding it by NotifyTimeout when set so a
// stuck observer cannot hold the broadcast past one attempt.
func (s *uploadSink[T]) notify(ctx context.Context, obs Observer[T], item T) (err error) {
	if s.config.NotifyTimeout <= 0 {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("observer panicked: %v", r)
			}
		}()
		return obs.Notify(ctx, item)
	}

	nctx, cancel := context.WithTimeout(ctx, s.config.NotifyTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("observer panicked: %v", r)
			}
		}()
		done <- obs.Notify(nctx, item)
	}()

	select {
	case err := <-done:
		return err
	case <-nctx.Done():
		return fmt.Errorf("notify: %w", nctx.Err())
	}
}

func (s *uploadSink[T]) Stats() Stats {
	return Stats{
		ItemsAccepted:  atomic.LoadInt64(&s.itemsAccepted),
		Deliveries:     atomic.LoadInt64(&s.deliveries),
		DeliveryErrors: atomic.LoadInt64(&s.deliveryErrors),
		Observers:      s.Observers(),
	}
}
