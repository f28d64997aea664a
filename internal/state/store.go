// Package state holds the latest fetch outcome for the UI. The poll goroutine
// and foreground fetch commands both write; whoever completes last wins.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/tomvoss/rezdesk/internal/booking"
	"github.com/tomvoss/rezdesk/internal/fetch"
)

// Snapshot is the latest data available to the UI.
type Snapshot struct {
	Rows        []booking.Booking
	HasRows     bool
	LastUpdated time.Time
	LastError   error
	// NewRows is the new-row delta carried by the fetch that produced this
	// revision; zero when nothing new arrived.
	NewRows int
	// Revision increments on every update so the UI can notice a fresh
	// snapshot exactly once (toasts fire on revision change, not per read).
	Revision            uint64
	ConsecutiveFailures int
}

// IsOffline reports that the backend has been unreachable for multiple
// consecutive fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a fetch outcome. On error the previous rows are kept (stale
// data beats a blank screen) and only the error bookkeeping changes.
func (s *Store) Update(result *fetch.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Revision++
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.NewRows = 0
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Rows = cloneRows(result.Rows)
	s.snapshot.HasRows = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = result.FetchedAt
	s.snapshot.NewRows = result.NewRows
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Rows = cloneRows(s.snapshot.Rows)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRows(rows []booking.Booking) []booking.Booking {
	if len(rows) == 0 {
		return nil
	}
	dup := make([]booking.Booking, len(rows))
	copy(dup, rows)
	return dup
}
