// Package poll runs the background refresh cadence. The scheduler arms the
// next timer only after the previous run settles, so scheduled fetches never
// overlap. Foreground fetches (user action, focus regain) happen outside the
// scheduler and may race a scheduled one; the snapshot store resolves that by
// completion order.
package poll

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State of the scheduler. Transitions: Idle → Scheduled ⇄ Running, and any
// state → Stopped.
type State int

const (
	StateIdle State = iota
	StateScheduled
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrStopped is returned by Start after Stop has been called.
var ErrStopped = errors.New("scheduler already stopped")

// ErrStarted is returned by a second Start call.
var ErrStarted = errors.New("scheduler already started")

const DefaultInterval = 30 * time.Second

// Scheduler re-invokes a run function at a fixed interval. Stopping cancels
// future timers only; an in-flight run is left to finish.
type Scheduler struct {
	run      func(ctx context.Context)
	interval time.Duration

	mu    sync.Mutex
	state State
	stop  chan struct{}
	done  chan struct{}
}

// New builds a Scheduler around run. A zero or negative interval falls back
// to DefaultInterval.
func New(run func(ctx context.Context), interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		run:      run,
		interval: interval,
		state:    StateIdle,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start arms the first timer and returns immediately. Calling Start twice, or
// after Stop, is a programming error and reports it instead of misbehaving.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateStopped:
		s.mu.Unlock()
		return ErrStopped
	case StateScheduled, StateRunning:
		s.mu.Unlock()
		return ErrStarted
	}
	s.state = StateScheduled
	s.mu.Unlock()

	go s.loop(ctx)
	return nil
}

// Stop cancels any armed timer and marks the scheduler stopped. It is safe to
// call once from teardown; it does not wait for an in-flight run.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	prev := s.state
	s.state = StateStopped
	s.mu.Unlock()

	if prev != StateIdle {
		close(s.stop)
	}
}

// State reports the current scheduler state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done is closed once the scheduler loop has fully exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.markStopped()
			return
		case <-s.stop:
			return
		case <-timer.C:
		}

		if !s.transition(StateScheduled, StateRunning) {
			return
		}
		s.run(ctx)
		if !s.transition(StateRunning, StateScheduled) {
			return
		}

		// Re-arm only after the run settled; scheduled runs never overlap.
		timer.Reset(s.interval)
	}
}

// transition moves from one state to the next; it reports false when Stop won
// the race, in which case the loop exits.
func (s *Scheduler) transition(from, to State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != from {
		return false
	}
	s.state = to
	return true
}

func (s *Scheduler) markStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStopped {
		s.state = StateStopped
	}
}
