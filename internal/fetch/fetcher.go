// Package fetch retrieves the booking row set from the backend, retries
// transient failures, and tracks the new-row delta between fetches.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomvoss/rezdesk/internal/backend"
	"github.com/tomvoss/rezdesk/internal/booking"
)

const maxRetries = 3

// retryDelays is the linear backoff schedule for foreground fetches.
var retryDelays = []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}

// Options configure one fetch.
type Options struct {
	// Silent marks a background refresh: no retries, and the caller is
	// expected to log rather than surface the error.
	Silent bool
}

// Result is one successful fetch: the full row set, newest first, with the
// retrieval time and the positive new-row delta since the previous success.
type Result struct {
	Rows      []booking.Booking
	FetchedAt time.Time
	NewRows   int
}

// Fetcher wraps the backend list capability. It owns only the last known row
// count used for delta detection; everything else flows through the result.
type Fetcher struct {
	svc   backend.Service
	table string
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	mu        sync.Mutex
	lastCount int
	haveCount bool
}

// New builds a Fetcher for one table.
func New(svc backend.Service, table string) *Fetcher {
	return &Fetcher{
		svc:   svc,
		table: table,
		sleep: sleepCtx,
		now:   time.Now,
	}
}

// Fetch retrieves the row set. Foreground fetches retry timeouts and backend
// errors up to three times with 1s/2s/3s delays; silent fetches fail fast.
func (f *Fetcher) Fetch(ctx context.Context, opts Options) (Result, error) {
	rows, err := f.svc.List(ctx, f.table)
	if err != nil && !opts.Silent {
		for attempt := 0; attempt < maxRetries; attempt++ {
			if sleepErr := f.sleep(ctx, retryDelays[attempt]); sleepErr != nil {
				return Result{}, wrap(err)
			}
			rows, err = f.svc.List(ctx, f.table)
			if err == nil {
				break
			}
		}
	}
	if err != nil {
		return Result{}, wrap(err)
	}

	result := Result{
		Rows:      rows,
		FetchedAt: f.now(),
		NewRows:   f.recordCount(len(rows)),
	}
	return result, nil
}

// recordCount updates the last known row count and returns the positive
// delta, or zero when the count held or shrank. The very first fetch reports
// no delta; there is nothing to compare against.
func (f *Fetcher) recordCount(count int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	delta := 0
	if f.haveCount && count > f.lastCount {
		delta = count - f.lastCount
	}
	f.lastCount = count
	f.haveCount = true
	return delta
}

func wrap(err error) error {
	if errors.Is(err, backend.ErrTimeout) {
		return err
	}
	return fmt.Errorf("fetch bookings: %w", err)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
