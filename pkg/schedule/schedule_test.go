package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/vnykmshr/streamkit/internal/testutil"
	skerrors "github.com/vnykmshr/streamkit/pkg/common/errors"
	"github.com/vnykmshr/streamkit/pkg/session"
)

func TestAddValidation(t *testing.T) {
	s := New(DefaultConfig())
	noop := func(int) error { return nil }

	err := s.Add("", "@every 1s", session.Request{Count: 1}, noop)
	testutil.AssertErrorIs(t, err, skerrors.ErrInvalidConfiguration)

	err = s.Add("job", "", session.Request{Count: 1}, noop)
	testutil.AssertErrorIs(t, err, skerrors.ErrInvalidConfiguration)

	err = s.Add("job", "@every 1s", session.Request{Count: 1}, nil)
	testutil.AssertErrorIs(t, err, skerrors.ErrInvalidConfiguration)

	err = s.Add("job", "@every 1s", session.Request{Count: -1}, noop)
	testutil.AssertErrorIs(t, err, skerrors.ErrInvalidConfiguration)

	err = s.Add("job", "not a cron expr", session.Request{Count: 1}, noop)
	testutil.AssertError(t, err)
}

func TestAddDuplicate(t *testing.T) {
	s := New(DefaultConfig())
	noop := func(int) error { return nil }

	testutil.AssertNoError(t, s.Add("job", "@every 1s", session.Request{Count: 1}, noop))
	testutil.AssertError(t, s.Add("job", "@every 1s", session.Request{Count: 1}, noop))
}

func TestJobsAndRemove(t *testing.T) {
	s := New(DefaultConfig())
	noop := func(int) error { return nil }

	testutil.AssertNoError(t, s.Add("a", "@every 1s", session.Request{Count: 1}, noop))
	testutil.AssertNoError(t, s.Add("b", "@every 1s", session.Request{Count: 1}, noop))
	testutil.AssertEqual(t, len(s.Jobs()), 2)

	s.Remove("a")
	testutil.AssertEqual(t, len(s.Jobs()), 1)
	testutil.AssertEqual(t, s.Jobs()[0], "b")

	// Removing an unknown job is a no-op.
	s.Remove("missing")
	testutil.AssertEqual(t, len(s.Jobs()), 1)
}

func TestScheduledRound(t *testing.T) {
	testutil.WithTimeout(t)

	var mu sync.Mutex
	var items []int
	var states []session.State

	cfg := DefaultConfig()
	cfg.OnRun = func(_ string, state session.State, _ error) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	}

	s := New(cfg)
	err := s.Add("round", "@every 1s", session.Request{Count: 3}, func(n int) error {
		mu.Lock()
		items = append(items, n)
		mu.Unlock()
		return nil
	})
	testutil.AssertNoError(t, err)

	s.Start()
	defer s.Stop()

	testutil.Eventually(t, 3*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) >= 1
	}, "scheduled round did not run")

	mu.Lock()
	defer mu.Unlock()
	testutil.AssertEqual(t, states[0], session.StateCompleted)
	testutil.AssertEqual(t, items[0], 0)
	testutil.AssertEqual(t, items[1], 1)
	testutil.AssertEqual(t, items[2], 2)
}

func TestOverlappingRoundSkipped(t *testing.T) {
	testutil.WithTimeout(t)

	var mu sync.Mutex
	skips := 0
	runs := 0

	cfg := DefaultConfig()
	cfg.OnSkip = func(string) {
		mu.Lock()
		skips++
		mu.Unlock()
	}
	cfg.OnRun = func(string, session.State, error) {
		mu.Lock()
		runs++
		mu.Unlock()
	}

	s := New(cfg)
	// A round that takes ~2s against a 1s tick: every other tick skips.
	err := s.Add("slow", "@every 1s", session.Request{Count: 5, Delay: 400 * time.Millisecond}, func(int) error {
		return nil
	})
	testutil.AssertNoError(t, err)

	s.Start()
	defer s.Stop()

	testutil.Eventually(t, 4*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return skips >= 1
	}, "overlapping tick was not skipped")

	mu.Lock()
	defer mu.Unlock()
	if runs > 2 {
		t.Errorf("expected at most 2 completed runs while skipping, got %d", runs)
	}
}

func TestStopCancelsInFlightRound(t *testing.T) {
	testutil.WithTimeout(t)

	var mu sync.Mutex
	var finalState session.State

	cfg := DefaultConfig()
	cfg.OnRun = func(_ string, state session.State, _ error) {
		mu.Lock()
		finalState = state
		mu.Unlock()
	}

	s := New(cfg)
	started := make(chan struct{}, 1)
	err := s.Add("long", "@every 1s", session.Request{Count: 1000, Delay: 50 * time.Millisecond}, func(n int) error {
		if n == 0 {
			started <- struct{}{}
		}
		return nil
	})
	testutil.AssertNoError(t, err)

	s.Start()
	<-started
	s.Stop()

	mu.Lock()
	defer mu.Unlock()
	testutil.AssertEqual(t, finalState, session.StateCancelled)
}
