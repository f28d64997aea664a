package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/tomvoss/rezdesk/internal/booking"
	"github.com/tomvoss/rezdesk/internal/fetch"
	"github.com/tomvoss/rezdesk/internal/state"
)

type fakeService struct {
	rows []booking.Booking
	err  error
}

func (f *fakeService) List(ctx context.Context, table string) ([]booking.Booking, error) {
	return f.rows, f.err
}

func (f *fakeService) Update(ctx context.Context, table, id string, fields map[string]string) error {
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefresh_PopulatesStore(t *testing.T) {
	svc := &fakeService{rows: []booking.Booking{{ID: "b-1"}, {ID: "b-2"}}}
	fetcher := fetch.New(svc, "bookings")
	store := &state.Store{}

	refresh(context.Background(), fetcher, store, discardLogger())

	snap := store.Snapshot()
	if !snap.HasRows || len(snap.Rows) != 2 {
		t.Fatalf("snapshot rows = %d hasRows=%v, want 2 rows", len(snap.Rows), snap.HasRows)
	}
	if snap.LastError != nil {
		t.Fatalf("snapshot error = %v, want nil", snap.LastError)
	}
}

func TestRefresh_KeepsRowsOnFailure(t *testing.T) {
	svc := &fakeService{rows: []booking.Booking{{ID: "b-1"}}}
	fetcher := fetch.New(svc, "bookings")
	store := &state.Store{}

	refresh(context.Background(), fetcher, store, discardLogger())

	svc.err = errors.New("backend down")
	refresh(context.Background(), fetcher, store, discardLogger())

	snap := store.Snapshot()
	if len(snap.Rows) != 1 {
		t.Fatalf("rows after failure = %d, want stale row kept", len(snap.Rows))
	}
	if snap.LastError == nil {
		t.Fatal("expected LastError after failed refresh")
	}
}
