package producer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/streamkit/internal/testutil"
	"github.com/vnykmshr/streamkit/pkg/channel"
	skerrors "github.com/vnykmshr/streamkit/pkg/common/errors"
	"github.com/vnykmshr/streamkit/pkg/sequence"
)

func collect(t *testing.T, ctx context.Context, ch channel.Channel[int]) ([]int, error) {
	t.Helper()
	var out []int
	for {
		v, ok := ch.TryTake()
		if ok {
			out = append(out, v)
			continue
		}
		readable, err := ch.WaitReadable(ctx)
		testutil.AssertNoError(t, err)
		if !readable {
			return out, ch.Err()
		}
	}
}

func TestRun(t *testing.T) {
	ch := channel.NewBounded[int](10)
	ctx := context.Background()

	var puts int32
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, ch, Config{
			Count: 10,
			Delay: time.Millisecond,
			OnPut: func(int) { atomic.AddInt32(&puts, 1) },
		})
	}()

	got, terr := collect(t, ctx, ch)
	testutil.AssertNoError(t, terr)
	testutil.AssertEqual(t, len(got), 10)
	for i, v := range got {
		testutil.AssertEqual(t, v, i)
	}

	testutil.AssertNoError(t, <-done)
	testutil.AssertEqual(t, atomic.LoadInt32(&puts), 10)
	testutil.AssertEqual(t, ch.Completed(), true)
}

func TestRunZeroCount(t *testing.T) {
	ch := channel.NewBounded[int](10)
	testutil.AssertNoError(t, Run(context.Background(), ch, Config{Count: 0}))

	testutil.AssertEqual(t, ch.Completed(), true)
	readable, err := ch.WaitReadable(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, readable, false)
}

func TestRunPacing(t *testing.T) {
	ch := channel.NewUnbounded[int]()

	start := time.Now()
	testutil.AssertNoError(t, Run(context.Background(), ch, Config{Count: 4, Delay: 15 * time.Millisecond}))
	elapsed := time.Since(start)

	// Three gaps between four items; no trailing delay after the last.
	if elapsed < 45*time.Millisecond {
		t.Errorf("elapsed %v, want >= 45ms", elapsed)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	ch := channel.NewBounded[int](10)
	err := Run(context.Background(), ch, Config{Count: -1})
	testutil.AssertErrorIs(t, err, skerrors.ErrInvalidConfiguration)

	// The channel still completes, carrying the validation failure.
	testutil.AssertEqual(t, ch.Completed(), true)
	testutil.AssertErrorIs(t, ch.Err(), skerrors.ErrInvalidConfiguration)
}

func TestRunCancellation(t *testing.T) {
	testutil.WithTimeout(t)
	ch := channel.NewUnbounded[int]()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, ch, Config{
			Count: 1000,
			Delay: 5 * time.Millisecond,
			OnPut: func(n int) {
				if n == 2 {
					cancel()
				}
			},
		})
	}()

	err := <-done
	testutil.AssertErrorIs(t, err, context.Canceled)
	testutil.AssertEqual(t, ch.Completed(), true)
	testutil.AssertErrorIs(t, ch.Err(), context.Canceled)

	// The items written before cancellation remain readable.
	if ch.Len() < 3 {
		t.Errorf("expected at least 3 buffered items, got %d", ch.Len())
	}
}

func TestRunCancelDuringDelay(t *testing.T) {
	ch := channel.NewUnbounded[int]()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, ch, Config{Count: 2, Delay: time.Minute})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	start := time.Now()
	err := <-done
	testutil.AssertErrorIs(t, err, context.Canceled)
	if time.Since(start) > time.Second {
		t.Error("cancellation did not interrupt the pacing delay")
	}
}

func TestStartReturnsImmediately(t *testing.T) {
	testutil.WithTimeout(t)
	ch := channel.NewBounded[int](2)
	ctx := context.Background()

	Start(ctx, ch, Config{Count: 6, Delay: time.Millisecond})

	got, terr := collect(t, ctx, ch)
	testutil.AssertNoError(t, terr)
	testutil.AssertEqual(t, len(got), 6)
}

func TestFeed(t *testing.T) {
	ch := channel.NewUnbounded[string]()
	src := sequence.FromSlice([]string{"x", "y", "z"})

	testutil.AssertNoError(t, Feed(context.Background(), ch, src, 0))
	testutil.AssertEqual(t, ch.Completed(), true)
	testutil.AssertEqual(t, ch.Len(), 3)

	v, ok := ch.TryTake()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, "x")
}

func TestFeedSourceError(t *testing.T) {
	cause := errors.New("read failed")
	n := 0
	src := failingSource{limit: 2, cause: cause, n: &n}
	ch := channel.NewUnbounded[int]()

	err := Feed(context.Background(), ch, src, 0)
	testutil.AssertErrorIs(t, err, cause)
	testutil.AssertEqual(t, ch.Completed(), true)
	testutil.AssertErrorIs(t, ch.Err(), cause)
	testutil.AssertEqual(t, ch.Len(), 2)
}

type failingSource struct {
	limit int
	cause error
	n     *int
}

func (s failingSource) Next(context.Context) (int, bool, error) {
	if *s.n >= s.limit {
		return 0, false, s.cause
	}
	*s.n++
	return *s.n, true, nil
}

func (s failingSource) Close() error { return nil }

func TestFeedPanicRecovery(t *testing.T) {
	src := sequence.FromFunc(func() (int, bool) {
		panic("generator blew up")
	})
	ch := channel.NewUnbounded[int]()

	err := Feed(context.Background(), ch, src, 0)
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, ch.Completed(), true)
	testutil.AssertError(t, ch.Err())
}

func BenchmarkRun(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		ch := channel.NewUnbounded[int]()
		_ = Run(ctx, ch, Config{Count: 100})
	}
}
