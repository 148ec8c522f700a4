package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/streamkit/pkg/channel"
	skerrors "github.com/vnykmshr/streamkit/pkg/common/errors"
	"github.com/vnykmshr/streamkit/pkg/common/validation"
	"github.com/vnykmshr/streamkit/pkg/producer"
	"github.com/vnykmshr/streamkit/pkg/sequence"
)

// State is a session lifecycle state.
type State int32

const (
	// StateIdle is the initial state; Start has not been called.
	StateIdle State = iota
	// StateStarted means the producer is running.
	StateStarted
	// StateCompleted means the producer exhausted its count cleanly.
	StateCompleted
	// StateCancelled means the run was stopped by an explicit signal.
	StateCancelled
	// StateFaulted means the producer ended with an unexpected error.
	StateFaulted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarted:
		return "started"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is a final state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFaulted
}

// Request carries the parameters of one streaming run. It is immutable
// once the session starts.
type Request struct {
	// Count is the number of items to stream (0..Count-1).
	Count int

	// Delay is the pacing interval between consecutive items.
	Delay time.Duration
}

// Validate checks the request parameters.
func (r Request) Validate() error {
	if err := validation.ValidateNonNegative("session", "count", r.Count); err != nil {
		return err
	}
	return validation.ValidateNonNegativeDuration("session", "delay", r.Delay)
}

// Config holds session configuration.
type Config struct {
	// Capacity is the channel capacity for the session's stream.
	// Values <= 0 select channel.DefaultCapacity for counting sessions
	// and are ignored by upload sessions, which are always unbounded.
	Capacity int

	// OnStateChange is called after every state transition.
	OnStateChange func(from, to State)
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{Capacity: channel.DefaultCapacity}
}

// lifecycle is the shared state machine behind both session kinds.
// Transitions go through compareAndSwap so double-start and late
// cancellation resolve deterministically under races.
type lifecycle struct {
	state atomic.Int32
	done  chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	err    error

	onStateChange func(from, to State)
}

func newLifecycle(onStateChange func(from, to State)) *lifecycle {
	return &lifecycle{
		done:          make(chan struct{}),
		onStateChange: onStateChange,
	}
}

func (l *lifecycle) transition(from, to State) bool {
	if !l.state.CompareAndSwap(int32(from), int32(to)) {
		return false
	}
	if l.onStateChange != nil {
		l.onStateChange(from, to)
	}
	return true
}

// begin moves idle to started, installing the cancel func under the
// same lock so Cancel never observes started without a cancel func.
func (l *lifecycle) begin(cancel context.CancelFunc) bool {
	l.mu.Lock()
	if State(l.state.Load()) != StateIdle {
		l.mu.Unlock()
		return false
	}
	l.cancel = cancel
	l.state.Store(int32(StateStarted))
	l.mu.Unlock()
	if l.onStateChange != nil {
		l.onStateChange(StateIdle, StateStarted)
	}
	return true
}

// finish classifies the producer's outcome and records the terminal
// state. Cancellation is expected, not a fault.
func (l *lifecycle) finish(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()

	switch {
	case err == nil:
		l.transition(StateStarted, StateCompleted)
	case skerrors.IsCancellation(err):
		l.transition(StateStarted, StateCancelled)
	default:
		l.transition(StateStarted, StateFaulted)
	}
	close(l.done)
}

// State returns the current lifecycle state.
func (l *lifecycle) State() State {
	return State(l.state.Load())
}

// Err returns the terminal error, or nil before the session ends or
// after a clean completion.
func (l *lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Done returns a channel closed when the session reaches a terminal
// state.
func (l *lifecycle) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the session ends or ctx is cancelled, returning the
// terminal error in the former case.
func (l *lifecycle) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel signals the running producer to stop. It is valid only while
// the session is in StateStarted; the terminal transition to
// StateCancelled happens when the producer observes the signal and
// completes the channel, not here.
func (l *lifecycle) Cancel() error {
	l.mu.Lock()
	if State(l.state.Load()) != StateStarted {
		l.mu.Unlock()
		return skerrors.ErrInvalidState
	}
	cancel := l.cancel
	l.mu.Unlock()
	cancel()
	return nil
}

// Session orchestrates one paced counting run: it binds a producer to a
// bounded channel and exposes the read side to the caller. A session is
// single-use; a new run needs a new Session.
type Session struct {
	*lifecycle
	cfg Config
	ch  channel.Channel[int]
}

// New creates an idle Session.
func New(cfg Config) *Session {
	if cfg.Capacity <= 0 {
		cfg.Capacity = channel.DefaultCapacity
	}
	return &Session{
		lifecycle: newLifecycle(cfg.OnStateChange),
		cfg:       cfg,
	}
}

// Start launches the producer and returns the channel to drain. It
// returns ErrInvalidState if the session is not idle. The producer runs
// on its own goroutine; Start returns immediately.
func (s *Session) Start(ctx context.Context, req Request) (channel.Channel[int], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	if !s.begin(cancel) {
		cancel()
		return nil, skerrors.ErrInvalidState
	}
	s.ch = channel.NewBounded[int](s.cfg.Capacity)

	ch := s.ch
	go func() {
		err := producer.Run(ctx, ch, producer.Config{Count: req.Count, Delay: req.Delay})
		cancel()
		s.finish(err)
	}()

	return s.ch, nil
}

// Channel returns the session's channel, or nil before Start.
func (s *Session) Channel() channel.Channel[int] {
	return s.ch
}

// UploadSession orchestrates one client-driven upload: it pumps a lazy
// source into an unbounded channel so the producing side never stalls
// on a slow reader. Like Session, it is single-use.
type UploadSession[T any] struct {
	*lifecycle
	cfg Config
	ch  channel.Channel[T]
}

// NewUpload creates an idle UploadSession.
func NewUpload[T any](cfg Config) *UploadSession[T] {
	return &UploadSession[T]{
		lifecycle: newLifecycle(cfg.OnStateChange),
		cfg:       cfg,
	}
}

// Start pumps src into a fresh unbounded channel with delay between
// writes and returns the channel to drain. It returns ErrInvalidState
// if the session is not idle.
func (u *UploadSession[T]) Start(ctx context.Context, src sequence.Source[T], delay time.Duration) (channel.Channel[T], error) {
	if err := validation.ValidateNotNil("session", "source", src); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("session", "delay", delay); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	if !u.begin(cancel) {
		cancel()
		return nil, skerrors.ErrInvalidState
	}
	u.ch = channel.NewUnbounded[T]()

	ch := u.ch
	go func() {
		err := producer.Feed(ctx, ch, src, delay)
		cancel()
		u.finish(err)
	}()

	return u.ch, nil
}

// Channel returns the session's channel, or nil before Start.
func (u *UploadSession[T]) Channel() channel.Channel[T] {
	return u.ch
}
