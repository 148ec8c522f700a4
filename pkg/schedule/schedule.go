package schedule

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/streamkit/pkg/channel"
	"github.com/vnykmshr/streamkit/pkg/common/validation"
	"github.com/vnykmshr/streamkit/pkg/consumer"
	"github.com/vnykmshr/streamkit/pkg/metrics"
	"github.com/vnykmshr/streamkit/pkg/session"
)

// Config holds scheduler configuration.
type Config struct {
	// Capacity is the channel capacity used for each round's session.
	Capacity int

	// OnRun is called after each round with the session's terminal
	// state and error.
	OnRun func(id string, state session.State, err error)

	// OnSkip is called when a round is skipped because the previous
	// one is still running.
	OnSkip func(id string)

	// Metrics controls round counters. Disabled by default.
	Metrics metrics.Config
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{Capacity: channel.DefaultCapacity}
}

// Scheduler runs streaming rounds on cron expressions. Each round is a
// full session: start a paced producer, drain the channel through the
// job's deliver callback, and observe the terminal state. Rounds of the
// same job never overlap; a tick that fires while the previous round is
// still draining is skipped.
type Scheduler struct {
	cron   *cron.Cron
	config Config

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	entries map[string]cron.EntryID
	running map[string]*atomic.Bool

	registry *metrics.Registry
}

// New creates a stopped scheduler. Expressions use the six-field form
// with a leading seconds field, plus descriptors like "@every 5s".
func New(config Config) *Scheduler {
	if config.Capacity <= 0 {
		config.Capacity = channel.DefaultCapacity
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:    cron.New(cron.WithParser(parser)),
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[string]cron.EntryID),
		running: make(map[string]*atomic.Bool),
	}
	if config.Metrics.Enabled {
		s.registry = metrics.DefaultRegistry
		if config.Metrics.Registry != nil {
			s.registry = metrics.NewRegistry(config.Metrics.Registry)
		}
	}
	return s
}

// Add registers a recurring streaming round. deliver receives each item
// of every round in order; a deliver error ends that round early and
// cancels its producer.
func (s *Scheduler) Add(id, expr string, req session.Request, deliver func(int) error) error {
	if err := validation.ValidateNotEmpty("schedule", "id", id); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty("schedule", "expr", expr); err != nil {
		return err
	}
	if deliver == nil {
		return validation.ValidateNotNil("schedule", "deliver", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[id]; exists {
		return fmt.Errorf("schedule: job %q already registered", id)
	}

	inFlight := &atomic.Bool{}
	entryID, err := s.cron.AddFunc(expr, func() {
		s.runRound(id, req, deliver, inFlight)
	})
	if err != nil {
		return fmt.Errorf("schedule: invalid expression %q: %w", expr, err)
	}

	s.entries[id] = entryID
	s.running[id] = inFlight
	return nil
}

// runRound executes one streaming round for a job, skipping if the
// previous round has not finished.
func (s *Scheduler) runRound(id string, req session.Request, deliver func(int) error, inFlight *atomic.Bool) {
	if !inFlight.CompareAndSwap(false, true) {
		if s.registry != nil {
			s.registry.ScheduleSkipped.WithLabelValues(id).Inc()
		}
		if s.config.OnSkip != nil {
			s.config.OnSkip(id)
		}
		return
	}
	defer inFlight.Store(false)

	sess := session.New(session.Config{Capacity: s.config.Capacity})
	ch, err := sess.Start(s.ctx, req)
	if err != nil {
		if s.config.OnRun != nil {
			s.config.OnRun(id, sess.State(), err)
		}
		return
	}

	if derr := consumer.Drain(s.ctx, ch, deliver); derr != nil {
		// Stop the producer so the round ends instead of stalling on
		// a full channel with no reader.
		_ = sess.Cancel()
	}

	err = sess.Wait(context.Background())
	state := sess.State()

	if s.registry != nil {
		s.registry.ScheduleRuns.WithLabelValues(id, state.String()).Inc()
	}
	if s.config.OnRun != nil {
		s.config.OnRun(id, state, err)
	}
}

// Remove unregisters a job. A round already in flight finishes.
func (s *Scheduler) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entryID, exists := s.entries[id]; exists {
		s.cron.Remove(entryID)
		delete(s.entries, id)
		delete(s.running, id)
	}
}

// Jobs returns the registered job IDs.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	return ids
}

// Start begins firing registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling, cancels in-flight rounds, and waits for them
// to drain.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	s.cancel()
	<-stopCtx.Done()
}
