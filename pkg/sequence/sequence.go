package sequence

import (
	"context"
	"time"

	"github.com/vnykmshr/streamkit/pkg/channel"
)

// Source represents a lazy sequence of elements, produced on demand.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if no more elements.
	Next(ctx context.Context) (T, bool, error)
	// Close closes the source and releases resources.
	Close() error
}

// Count creates a Source yielding 0..n-1.
func Count(n int) Source[int] {
	return &countSource{limit: n}
}

// CountPaced creates a Source yielding 0..n-1 with delay between
// consecutive elements. The delay is cancellable: Next returns the ctx
// error promptly if cancellation fires mid-wait.
func CountPaced(n int, delay time.Duration) Source[int] {
	return &countSource{limit: n, delay: delay}
}

// countSource implements Source for counting sequences.
type countSource struct {
	limit int
	delay time.Duration
	next  int
}

func (s *countSource) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if s.next >= s.limit {
		return 0, false, nil
	}

	// Pace between consecutive elements, never before the first.
	if s.delay > 0 && s.next > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return 0, false, ctx.Err()
		}
	}

	v := s.next
	s.next++
	return v, true, nil
}

func (s *countSource) Close() error { return nil }

// FromSlice creates a Source over a slice.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: items}
}

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	items []T
	index int
}

func (s *sliceSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.index >= len(s.items) {
		return zero, false, nil
	}

	v := s.items[s.index]
	s.index++
	return v, true, nil
}

func (s *sliceSource[T]) Close() error { return nil }

// FromFunc creates a Source from a generator function. The generator
// returns false when the sequence is exhausted; a generator that never
// returns false yields an unbounded sequence.
func FromFunc[T any](generator func() (T, bool)) Source[T] {
	return &funcSource[T]{generator: generator}
}

// funcSource implements Source for generator functions.
type funcSource[T any] struct {
	generator func() (T, bool)
}

func (s *funcSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	v, ok := s.generator()
	if !ok {
		return zero, false, nil
	}
	return v, true, nil
}

func (s *funcSource[T]) Close() error { return nil }

// FromChannel adapts the reader half of a channel into a Source. Next
// blocks until an item is available; once the channel is completed and
// drained it reports exhaustion, surfacing the channel's terminal error
// if one was recorded.
func FromChannel[T any](ch channel.Channel[T]) Source[T] {
	return &channelSource[T]{ch: ch}
}

// channelSource implements Source over a channel reader.
type channelSource[T any] struct {
	ch channel.Channel[T]
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	for {
		if v, ok := s.ch.TryTake(); ok {
			return v, true, nil
		}
		ok, err := s.ch.WaitReadable(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return zero, false, s.ch.Err()
		}
	}
}

func (s *channelSource[T]) Close() error { return nil }
