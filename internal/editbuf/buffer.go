// Package editbuf accumulates unsaved status-field edits keyed by booking ID
// and flushes them to the backend as a batch of per-row patches.
package editbuf

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomvoss/rezdesk/internal/backend"
	"github.com/tomvoss/rezdesk/internal/booking"
)

// PendingEdit is the unsaved field overrides for one booking. At most one
// exists per booking ID; later edits merge into it.
type PendingEdit struct {
	RowID  string
	Fields map[string]string
}

// Summary reports a completed save.
type Summary struct {
	Saved int
}

// SaveError reports a failed save. Edits for FailedIDs stayed in the buffer;
// any other pending edits were persisted and cleared.
type SaveError struct {
	FailedIDs []string
	first     error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save %d booking(s) [%s]: %v",
		len(e.FailedIDs), strings.Join(e.FailedIDs, ", "), e.first)
}

func (e *SaveError) Unwrap() error { return e.first }

// Buffer is the sole owner of pending edits. Methods are safe for concurrent
// use; the UI and save commands touch it from different goroutines.
type Buffer struct {
	mu    sync.Mutex
	edits map[string]map[string]string
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{edits: make(map[string]map[string]string)}
}

// SetField upserts a pending edit for rowID, merging field into any existing
// entry. Only mutable booking fields are accepted; anything else is a caller
// error.
func (b *Buffer) SetField(rowID, field, value string) error {
	if strings.TrimSpace(rowID) == "" {
		return fmt.Errorf("row id required")
	}
	if !booking.MutableField(field) {
		return fmt.Errorf("field %q is not editable", field)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	entry := b.edits[rowID]
	if entry == nil {
		entry = make(map[string]string, 2)
		b.edits[rowID] = entry
	}
	entry[field] = value
	return nil
}

// Get returns the pending value for a field and whether one exists.
func (b *Buffer) Get(rowID, field string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.edits[rowID]
	if !ok {
		return "", false
	}
	v, ok := entry[field]
	return v, ok
}

// Has reports whether rowID carries a pending edit.
func (b *Buffer) Has(rowID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.edits[rowID]
	return ok
}

// Len returns the number of pending edits.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.edits)
}

// MergedRow returns row with any pending values overlaid. The input is never
// mutated; pending values win over fetched ones.
func (b *Buffer) MergedRow(row booking.Booking) booking.Booking {
	b.mu.Lock()
	entry := b.edits[row.ID]
	b.mu.Unlock()

	merged := row
	if v, ok := entry[booking.FieldStatus]; ok {
		merged.Status = v
	}
	if v, ok := entry[booking.FieldPayment]; ok {
		merged.PaymentStatus = v
	}
	return merged
}

// Pending returns a snapshot of all pending edits, sorted by row ID for
// deterministic iteration.
func (b *Buffer) Pending() []PendingEdit {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]PendingEdit, 0, len(b.edits))
	for id, fields := range b.edits {
		dup := make(map[string]string, len(fields))
		for k, v := range fields {
			dup[k] = v
		}
		out = append(out, PendingEdit{RowID: id, Fields: dup})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RowID < out[j].RowID })
	return out
}

// Discard drops the pending edit for rowID, if any.
func (b *Buffer) Discard(rowID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.edits, rowID)
}

// DiscardAll drops every pending edit.
func (b *Buffer) DiscardAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edits = make(map[string]map[string]string)
}

// Save patches each pending row concurrently, with no ordering between rows.
// Edits that persisted are cleared; edits whose patch failed stay in the
// buffer, and the returned *SaveError names them so the operator can retry.
func (b *Buffer) Save(ctx context.Context, svc backend.Service, table string) (Summary, error) {
	pending := b.Pending()
	if len(pending) == 0 {
		return Summary{}, nil
	}

	var mu sync.Mutex
	var failedIDs []string
	var firstErr error

	g, ctx := errgroup.WithContext(ctx)
	for _, edit := range pending {
		edit := edit
		g.Go(func() error {
			if err := svc.Update(ctx, table, edit.RowID, edit.Fields); err != nil {
				mu.Lock()
				failedIDs = append(failedIDs, edit.RowID)
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never return errors; Wait is for completion only.
	_ = g.Wait()

	failed := make(map[string]struct{}, len(failedIDs))
	for _, id := range failedIDs {
		failed[id] = struct{}{}
	}
	saved := 0
	b.mu.Lock()
	for _, edit := range pending {
		if _, ok := failed[edit.RowID]; ok {
			continue
		}
		b.clearSavedLocked(edit)
		saved++
	}
	b.mu.Unlock()

	if len(failedIDs) == 0 {
		return Summary{Saved: saved}, nil
	}
	sort.Strings(failedIDs)
	return Summary{Saved: saved}, &SaveError{FailedIDs: failedIDs, first: firstErr}
}

// clearSavedLocked removes only the field values that were actually
// persisted. An edit made to the same row while the save was in flight keeps
// its newer value instead of being wiped.
func (b *Buffer) clearSavedLocked(edit PendingEdit) {
	entry, ok := b.edits[edit.RowID]
	if !ok {
		return
	}
	for field, value := range edit.Fields {
		if entry[field] == value {
			delete(entry, field)
		}
	}
	if len(entry) == 0 {
		delete(b.edits, edit.RowID)
	}
}
