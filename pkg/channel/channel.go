package channel

import (
	"context"
	"sync"
	"sync/atomic"

	skerrors "github.com/vnykmshr/streamkit/pkg/common/errors"
)

// DefaultCapacity is the buffer size used for bounded channels when no
// capacity is configured. Small enough to exert back-pressure quickly
// on server-to-client flows.
const DefaultCapacity = 10

// Unbounded is the capacity reported by Cap for unbounded channels.
const Unbounded = -1

// Channel is an ordered hand-off queue between one producer and one
// consumer goroutine. The producer owns the writer half (Put, Complete);
// the consumer owns the reader half (TryTake, WaitReadable). Neither side
// manipulates the other's lifecycle; cancellation travels through the
// contexts passed to the blocking operations.
type Channel[T any] interface {
	// Put appends an item. For a bounded channel it blocks while the
	// buffer is full, until space frees, ctx is cancelled, or the channel
	// is completed. Returns ErrCompleted after completion and the ctx
	// error on cancellation.
	Put(ctx context.Context, item T) error

	// TryTake removes and returns the next item without blocking.
	// The second return is false when no item is ready.
	TryTake() (T, bool)

	// WaitReadable blocks until at least one item is available or the
	// channel is completed. Returns false once the channel is completed
	// and fully drained, and the ctx error on cancellation.
	WaitReadable(ctx context.Context) (bool, error)

	// Complete marks that no more items will arrive, optionally recording
	// a terminal error. Idempotent; the first call wins. All blocked
	// operations are woken.
	Complete(err error)

	// Completed returns true once Complete has been called.
	Completed() bool

	// Err returns the terminal error recorded by Complete, if any.
	Err() error

	// Len returns the current number of buffered items.
	Len() int

	// Cap returns the buffer capacity, or Unbounded.
	Cap() int

	// Stats returns channel statistics.
	Stats() Stats
}

// Stats holds statistics about channel activity.
type Stats struct {
	// PutCount is the total number of items written.
	PutCount int64

	// TakeCount is the total number of items taken.
	TakeCount int64

	// BlockedPuts is the number of times a put had to wait for space.
	BlockedPuts int64

	// BufferUtilization is the current buffer utilization (0.0 to 1.0).
	// Always 0 for unbounded channels.
	BufferUtilization float64
}

// Config holds configuration for a channel.
type Config struct {
	// Capacity is the buffer size. Values <= 0 create an unbounded channel.
	Capacity int

	// OnBlock is called each time a put starts waiting for space.
	OnBlock func()
}

// NewBounded creates a bounded channel with the given capacity.
// Capacities <= 0 fall back to DefaultCapacity.
func NewBounded[T any](capacity int) Channel[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return NewWithConfig[T](Config{Capacity: capacity})
}

// NewUnbounded creates a channel whose Put never blocks. Used for upload
// flows where the producer is a user-timed action that must not stall on
// a slow reader; back-pressure is traded away for responsiveness.
func NewUnbounded[T any]() Channel[T] {
	return NewWithConfig[T](Config{Capacity: 0})
}

// NewWithConfig creates a channel with the specified configuration.
func NewWithConfig[T any](config Config) Channel[T] {
	q := &queue[T]{config: config}
	if config.Capacity > 0 {
		q.ring = make([]T, config.Capacity)
	}
	q.putCond = sync.NewCond(&q.mu)
	q.takeCond = sync.NewCond(&q.mu)
	return q
}

// queue implements Channel with a mutex plus two condition variables.
// Bounded channels use a fixed ring buffer; unbounded channels use a
// growable slice queue.
type queue[T any] struct {
	config Config
	mu     sync.Mutex

	// bounded storage
	ring  []T
	head  int
	tail  int
	count int

	// unbounded storage
	items []T

	putCond  *sync.Cond
	takeCond *sync.Cond

	completed atomic.Bool
	err       error

	stats Stats
}

func (q *queue[T]) bounded() bool { return q.config.Capacity > 0 }

// Put implements Channel.Put.
func (q *queue[T]) Put(ctx context.Context, item T) error {
	if q.completed.Load() {
		return skerrors.ErrCompleted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Bridge ctx cancellation into the condition variables so a blocked
	// put resolves promptly instead of waiting out the consumer.
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, q.wakeAll)
		defer stop()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for q.bounded() && q.count >= q.config.Capacity && !q.completed.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if q.config.OnBlock != nil {
			q.config.OnBlock()
		}
		q.stats.BlockedPuts++
		q.putCond.Wait()
	}

	if q.completed.Load() {
		return skerrors.ErrCompleted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	q.enqueueLocked(item)
	q.stats.PutCount++
	q.takeCond.Signal()

	return nil
}

// TryTake implements Channel.TryTake.
func (q *queue[T]) TryTake() (T, bool) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.lenLocked() == 0 {
		return zero, false
	}

	item := q.dequeueLocked()
	q.stats.TakeCount++
	q.putCond.Signal()

	return item, true
}

// WaitReadable implements Channel.WaitReadable.
func (q *queue[T]) WaitReadable(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, q.wakeAll)
		defer stop()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for q.lenLocked() == 0 && !q.completed.Load() {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		q.takeCond.Wait()
	}

	if q.lenLocked() > 0 {
		return true, nil
	}

	// Completed and drained.
	return false, nil
}

// Complete implements Channel.Complete.
func (q *queue[T]) Complete(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.completed.CompareAndSwap(false, true) {
		return
	}
	q.err = err
	q.putCond.Broadcast()
	q.takeCond.Broadcast()
}

// Completed implements Channel.Completed.
func (q *queue[T]) Completed() bool {
	return q.completed.Load()
}

// Err implements Channel.Err.
func (q *queue[T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

// Len implements Channel.Len.
func (q *queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lenLocked()
}

// Cap implements Channel.Cap.
func (q *queue[T]) Cap() int {
	if !q.bounded() {
		return Unbounded
	}
	return q.config.Capacity
}

// Stats implements Channel.Stats.
func (q *queue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	stats := q.stats
	if q.bounded() {
		stats.BufferUtilization = float64(q.count) / float64(q.config.Capacity)
	}
	return stats
}

// wakeAll wakes every waiter so they can observe context cancellation.
func (q *queue[T]) wakeAll() {
	q.mu.Lock()
	q.putCond.Broadcast()
	q.takeCond.Broadcast()
	q.mu.Unlock()
}

func (q *queue[T]) lenLocked() int {
	if q.bounded() {
		return q.count
	}
	return len(q.items)
}

func (q *queue[T]) enqueueLocked(item T) {
	if q.bounded() {
		q.ring[q.tail] = item
		q.tail = (q.tail + 1) % len(q.ring)
		q.count++
		return
	}
	q.items = append(q.items, item)
}

func (q *queue[T]) dequeueLocked() T {
	if q.bounded() {
		item := q.ring[q.head]
		var zero T
		q.ring[q.head] = zero // Clear reference
		q.head = (q.head + 1) % len(q.ring)
		q.count--
		return item
	}
	item := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return item
}
