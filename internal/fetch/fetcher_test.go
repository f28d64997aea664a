package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tomvoss/rezdesk/internal/backend"
	"github.com/tomvoss/rezdesk/internal/booking"
)

// fakeService scripts List responses per call.
type fakeService struct {
	calls     int
	responses []fakeResponse
}

type fakeResponse struct {
	rows []booking.Booking
	err  error
}

func (f *fakeService) List(ctx context.Context, table string) ([]booking.Booking, error) {
	if f.calls >= len(f.responses) {
		return nil, fmt.Errorf("unexpected call %d", f.calls)
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp.rows, resp.err
}

func (f *fakeService) Update(ctx context.Context, table, id string, fields map[string]string) error {
	return nil
}

func rows(n int) []booking.Booking {
	out := make([]booking.Booking, n)
	for i := range out {
		out[i] = booking.Booking{ID: fmt.Sprintf("b-%d", i)}
	}
	return out
}

// withFakeSleep records requested delays without waiting.
func withFakeSleep(f *Fetcher) *[]time.Duration {
	var delays []time.Duration
	f.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return &delays
}

func TestFetch_NewRowDelta(t *testing.T) {
	svc := &fakeService{responses: []fakeResponse{
		{rows: rows(5)},
		{rows: rows(7)},
		{rows: rows(7)},
		{rows: rows(4)},
		{rows: rows(6)},
	}}
	f := New(svc, "bookings")

	wantDeltas := []int{0, 2, 0, 0, 2}
	for i, want := range wantDeltas {
		res, err := f.Fetch(context.Background(), Options{Silent: true})
		if err != nil {
			t.Fatalf("fetch %d returned error: %v", i, err)
		}
		if res.NewRows != want {
			t.Fatalf("fetch %d NewRows = %d, want %d", i, res.NewRows, want)
		}
	}
}

func TestFetch_SilentDoesNotRetry(t *testing.T) {
	svc := &fakeService{responses: []fakeResponse{
		{err: errors.New("boom")},
	}}
	f := New(svc, "bookings")
	delays := withFakeSleep(f)

	_, err := f.Fetch(context.Background(), Options{Silent: true})
	if err == nil {
		t.Fatal("Fetch should return the backend error")
	}
	if svc.calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retries in silent mode)", svc.calls)
	}
	if len(*delays) != 0 {
		t.Fatalf("delays = %v, want none", *delays)
	}
}

func TestFetch_ForegroundRetriesWithLinearBackoff(t *testing.T) {
	svc := &fakeService{responses: []fakeResponse{
		{err: backend.ErrTimeout},
		{err: backend.ErrTimeout},
		{err: backend.ErrTimeout},
		{err: backend.ErrTimeout},
	}}
	f := New(svc, "bookings")
	delays := withFakeSleep(f)

	_, err := f.Fetch(context.Background(), Options{})
	if !errors.Is(err, backend.ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
	if svc.calls != 4 {
		t.Fatalf("calls = %d, want initial attempt plus 3 retries", svc.calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(*delays) != len(want) {
		t.Fatalf("delays = %v, want %v", *delays, want)
	}
	for i, d := range want {
		if (*delays)[i] != d {
			t.Fatalf("delay %d = %v, want %v", i, (*delays)[i], d)
		}
	}
}

func TestFetch_RetrySucceedsMidway(t *testing.T) {
	svc := &fakeService{responses: []fakeResponse{
		{err: errors.New("transient")},
		{err: errors.New("transient")},
		{rows: rows(3)},
	}}
	f := New(svc, "bookings")
	withFakeSleep(f)

	res, err := f.Fetch(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(res.Rows))
	}
	if svc.calls != 3 {
		t.Fatalf("calls = %d, want 3", svc.calls)
	}
	if res.FetchedAt.IsZero() {
		t.Fatal("FetchedAt not set")
	}

	// A later fetch compares against the count from this success.
	svc.responses = append(svc.responses, fakeResponse{rows: rows(5)})
	res, err = f.Fetch(context.Background(), Options{Silent: true})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if res.NewRows != 2 {
		t.Fatalf("NewRows = %d, want 2", res.NewRows)
	}
}

func TestFetch_CancelledContextStopsRetryLoop(t *testing.T) {
	svc := &fakeService{responses: []fakeResponse{
		{err: errors.New("transient")},
		{err: errors.New("transient")},
	}}
	f := New(svc, "bookings")

	ctx, cancel := context.WithCancel(context.Background())
	f.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := f.Fetch(ctx, Options{})
	if err == nil {
		t.Fatal("Fetch should surface the original failure")
	}
	if svc.calls != 1 {
		t.Fatalf("calls = %d, want 1 (retry abandoned on cancellation)", svc.calls)
	}
}
