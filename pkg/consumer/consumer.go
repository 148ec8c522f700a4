package consumer

import (
	"context"

	"github.com/vnykmshr/streamkit/pkg/channel"
	"github.com/vnykmshr/streamkit/pkg/sequence"
)

// Drain reads ch to exhaustion, calling fn for each item in order. It
// blocks between items while the channel is empty but not completed,
// waking as soon as either an item or the completion signal arrives.
//
// Drain returns nil on clean exhaustion, the channel's terminal error if
// it completed with one, ctx.Err() on cancellation, or fn's error if a
// callback fails. Buffered items remain in the channel when Drain exits
// early; a caller may resume with a fresh call.
func Drain[T any](ctx context.Context, ch channel.Channel[T], fn func(T) error) error {
	for {
		for {
			v, ok := ch.TryTake()
			if !ok {
				break
			}
			if err := fn(v); err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		readable, err := ch.WaitReadable(ctx)
		if err != nil {
			return err
		}
		if !readable {
			return ch.Err()
		}
	}
}

// DrainSource pulls src to exhaustion, calling fn for each element. The
// source is closed before DrainSource returns, on every path.
func DrainSource[T any](ctx context.Context, src sequence.Source[T], fn func(T) error) error {
	defer func() { _ = src.Close() }()
	for {
		v, ok, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// Collect drains ch into a slice, preserving arrival order.
func Collect[T any](ctx context.Context, ch channel.Channel[T]) ([]T, error) {
	var out []T
	err := Drain(ctx, ch, func(v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}
