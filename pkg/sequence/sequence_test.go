package sequence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/streamkit/internal/testutil"
	"github.com/vnykmshr/streamkit/pkg/channel"
	skerrors "github.com/vnykmshr/streamkit/pkg/common/errors"
)

func drain[T any](t *testing.T, ctx context.Context, src Source[T]) []T {
	t.Helper()
	var out []T
	for {
		v, ok, err := src.Next(ctx)
		testutil.AssertNoError(t, err)
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestCount(t *testing.T) {
	src := Count(5)
	defer func() { _ = src.Close() }()

	got := drain(t, context.Background(), src)
	testutil.AssertEqual(t, len(got), 5)
	for i, v := range got {
		testutil.AssertEqual(t, v, i)
	}

	// Exhausted source keeps reporting exhaustion.
	_, ok, err := src.Next(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestCountZero(t *testing.T) {
	src := Count(0)
	got := drain(t, context.Background(), src)
	testutil.AssertEqual(t, len(got), 0)
}

func TestCountPaced(t *testing.T) {
	src := CountPaced(3, 20*time.Millisecond)
	defer func() { _ = src.Close() }()

	start := time.Now()
	got := drain(t, context.Background(), src)
	elapsed := time.Since(start)

	testutil.AssertEqual(t, len(got), 3)
	// Two gaps between three elements.
	if elapsed < 40*time.Millisecond {
		t.Errorf("elapsed %v, want >= 40ms", elapsed)
	}
}

func TestCountPacedCancelMidDelay(t *testing.T) {
	src := CountPaced(10, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	v, ok, err := src.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 0)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	// The second element sits behind a one-minute delay; cancellation
	// must cut the wait short.
	start := time.Now()
	_, _, err = src.Next(ctx)
	testutil.AssertErrorIs(t, err, context.Canceled)
	if time.Since(start) > time.Second {
		t.Error("cancellation did not interrupt the pacing delay")
	}
}

func TestFromSlice(t *testing.T) {
	src := FromSlice([]string{"a", "b", "c"})
	got := drain(t, context.Background(), src)
	testutil.AssertEqual(t, len(got), 3)
	testutil.AssertEqual(t, got[0], "a")
	testutil.AssertEqual(t, got[2], "c")
}

func TestFromFunc(t *testing.T) {
	n := 0
	src := FromFunc(func() (int, bool) {
		if n >= 4 {
			return 0, false
		}
		n++
		return n * 10, true
	})

	got := drain(t, context.Background(), src)
	testutil.AssertEqual(t, len(got), 4)
	testutil.AssertEqual(t, got[0], 10)
	testutil.AssertEqual(t, got[3], 40)
}

func TestFromFuncCancelled(t *testing.T) {
	src := FromFunc(func() (int, bool) { return 1, true })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := src.Next(ctx)
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestFromChannel(t *testing.T) {
	ch := channel.NewBounded[int](5)
	ctx := context.Background()

	go func() {
		for i := 0; i < 8; i++ {
			_ = ch.Put(ctx, i)
		}
		ch.Complete(nil)
	}()

	src := FromChannel(ch)
	got := drain(t, ctx, src)
	testutil.AssertEqual(t, len(got), 8)
	for i, v := range got {
		testutil.AssertEqual(t, v, i)
	}
}

func TestFromChannelTerminalError(t *testing.T) {
	ch := channel.NewBounded[int](5)
	cause := errors.New("boom")
	_ = ch.Put(context.Background(), 1)
	ch.Complete(skerrors.Fault(cause))

	src := FromChannel(ch)

	v, ok, err := src.Next(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 1)

	// Exhaustion surfaces the channel's terminal error.
	_, ok, err = src.Next(context.Background())
	testutil.AssertEqual(t, ok, false)
	testutil.AssertErrorIs(t, err, skerrors.ErrFaulted)
}
