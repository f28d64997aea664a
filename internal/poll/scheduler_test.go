package poll

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_RunsWithoutOverlap(t *testing.T) {
	t.Parallel()

	var inFlight, maxInFlight, runs int64
	var mu sync.Mutex

	run := func(ctx context.Context) {
		cur := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if cur > maxInFlight {
			maxInFlight = cur
		}
		mu.Unlock()
		// Hold the run open longer than the interval; a broken scheduler
		// would start the next run on top of this one.
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		atomic.AddInt64(&runs, 1)
	}

	s := New(run, 5*time.Millisecond)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	s.Stop()
	<-s.Done()

	if atomic.LoadInt64(&runs) < 2 {
		t.Fatalf("runs = %d, want at least 2", runs)
	}
	mu.Lock()
	defer mu.Unlock()
	if maxInFlight != 1 {
		t.Fatalf("max in-flight runs = %d, want 1", maxInFlight)
	}
}

func TestScheduler_StateTransitions(t *testing.T) {
	t.Parallel()

	s := New(func(ctx context.Context) {}, time.Hour)
	if got := s.State(); got != StateIdle {
		t.Fatalf("state = %v, want idle", got)
	}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if got := s.State(); got != StateScheduled {
		t.Fatalf("state = %v, want scheduled", got)
	}

	if err := s.Start(context.Background()); !errors.Is(err, ErrStarted) {
		t.Fatalf("second Start = %v, want ErrStarted", err)
	}

	s.Stop()
	<-s.Done()
	if got := s.State(); got != StateStopped {
		t.Fatalf("state = %v, want stopped", got)
	}

	if err := s.Start(context.Background()); !errors.Is(err, ErrStopped) {
		t.Fatalf("Start after Stop = %v, want ErrStopped", err)
	}
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	t.Parallel()

	s := New(func(ctx context.Context) {}, time.Hour)
	s.Stop()
	if got := s.State(); got != StateStopped {
		t.Fatalf("state = %v, want stopped", got)
	}
	if err := s.Start(context.Background()); !errors.Is(err, ErrStopped) {
		t.Fatalf("Start after Stop = %v, want ErrStopped", err)
	}
}

func TestScheduler_StopDoesNotAbortInFlightRun(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})

	s := New(func(ctx context.Context) {
		close(started)
		<-release
		close(finished)
	}, 5*time.Millisecond)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	<-started
	s.Stop()

	select {
	case <-finished:
		t.Fatal("run finished before being released; Stop must not abort it")
	case <-time.After(10 * time.Millisecond):
	}

	close(release)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("in-flight run never completed")
	}
	<-s.Done()

	if got := s.State(); got != StateStopped {
		t.Fatalf("state = %v, want stopped", got)
	}
}

func TestScheduler_ContextCancellationStopsLoop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := New(func(ctx context.Context) {}, time.Hour)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	cancel()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not exit on context cancellation")
	}
	if got := s.State(); got != StateStopped {
		t.Fatalf("state = %v, want stopped", got)
	}
}
