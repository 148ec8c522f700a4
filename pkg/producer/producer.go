package producer

import (
	"context"
	"fmt"
	"time"

	"github.com/vnykmshr/streamkit/pkg/channel"
	"github.com/vnykmshr/streamkit/pkg/common/validation"
	"github.com/vnykmshr/streamkit/pkg/sequence"
)

// Config holds configuration for a paced counting producer.
type Config struct {
	// Count is the number of items to produce (0..Count-1).
	Count int

	// Delay is the pause between consecutive writes.
	Delay time.Duration

	// OnPut is called after each successful write.
	OnPut func(n int)
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validation.ValidateNonNegative("producer", "count", c.Count); err != nil {
		return err
	}
	return validation.ValidateNonNegativeDuration("producer", "delay", c.Delay)
}

// Run writes 0..Count-1 into ch with Delay between consecutive writes,
// checking ctx before each write. The channel is completed on every exit
// path - normal exhaustion, cancellation, write failure, or panic - with
// the failure recorded as the terminal error. A reader blocked on the
// channel therefore always wakes up.
func Run(ctx context.Context, ch channel.Channel[int], cfg Config) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("producer panicked: %v", r)
		}
		ch.Complete(err)
	}()

	if err = cfg.Validate(); err != nil {
		return err
	}

	for i := 0; i < cfg.Count; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = ch.Put(ctx, i); err != nil {
			return err
		}
		if cfg.OnPut != nil {
			cfg.OnPut(i)
		}
		if cfg.Delay > 0 && i < cfg.Count-1 {
			if err = pause(ctx, cfg.Delay); err != nil {
				return err
			}
		}
	}

	return nil
}

// Start launches Run on its own goroutine and returns immediately.
// Fire-and-forget: no handle to the producer goroutine is exposed; the
// channel is the only synchronization surface, and its completion signal
// is guaranteed to arrive eventually.
func Start(ctx context.Context, ch channel.Channel[int], cfg Config) {
	go func() {
		_ = Run(ctx, ch, cfg)
	}()
}

// Feed pumps a lazy source into ch with delay between consecutive
// writes, under the same completion guarantee as Run. The source is
// closed when production ends.
func Feed[T any](ctx context.Context, ch channel.Channel[T], src sequence.Source[T], delay time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("producer panicked: %v", r)
		}
		ch.Complete(err)
		_ = src.Close()
	}()

	if err = validation.ValidateNonNegativeDuration("producer", "delay", delay); err != nil {
		return err
	}

	first := true
	for {
		if err = ctx.Err(); err != nil {
			return err
		}
		v, ok, serr := src.Next(ctx)
		if serr != nil {
			err = serr
			return err
		}
		if !ok {
			return nil
		}
		if !first && delay > 0 {
			if err = pause(ctx, delay); err != nil {
				return err
			}
		}
		first = false
		if err = ch.Put(ctx, v); err != nil {
			return err
		}
	}
}

// StartFeed launches Feed on its own goroutine and returns immediately.
func StartFeed[T any](ctx context.Context, ch channel.Channel[T], src sequence.Source[T], delay time.Duration) {
	go func() {
		_ = Feed(ctx, ch, src, delay)
	}()
}

// pause sleeps for d or until ctx is cancelled, whichever comes first.
func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
}
