package ui

import (
	"testing"
	"time"

	"github.com/tomvoss/rezdesk/internal/booking"
	"github.com/tomvoss/rezdesk/internal/editbuf"
	"github.com/tomvoss/rezdesk/internal/state"
)

func testModel(rows ...booking.Booking) *Model {
	m := New(Options{Edits: editbuf.New()})
	m.snapshot = state.Snapshot{Rows: rows, HasRows: true}
	m.ready = true
	m.width = 120
	m.height = 40
	return &m
}

func TestNextValue(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{booking.StatusPending, booking.StatusConfirmed},
		{booking.StatusConfirmed, booking.StatusCompleted},
		{booking.StatusCompleted, booking.StatusCancelled},
		{booking.StatusCancelled, booking.StatusPending},
		{"bogus", booking.StatusPending},
		{"", booking.StatusPending},
	}
	for _, tt := range tests {
		if got := nextValue(booking.StatusCycle, tt.current); got != tt.want {
			t.Errorf("nextValue(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestVisibleRows_FilterAndMerge(t *testing.T) {
	m := testModel(
		booking.Booking{ID: "a", Status: booking.StatusPending, PaymentStatus: booking.PaymentUnpaid},
		booking.Booking{ID: "b", Status: booking.StatusConfirmed, PaymentStatus: booking.PaymentPaid},
		booking.Booking{ID: "c", Status: booking.StatusPending, PaymentStatus: booking.PaymentPaid},
	)

	if got := len(m.visibleRows()); got != 3 {
		t.Fatalf("all filter rows = %d, want 3", got)
	}

	m.filter = FilterPending
	if got := len(m.visibleRows()); got != 2 {
		t.Fatalf("pending filter rows = %d, want 2", got)
	}

	m.filter = FilterUnpaid
	rows := m.visibleRows()
	if len(rows) != 1 || rows[0].ID != "a" {
		t.Fatalf("unpaid filter rows = %#v, want only a", rows)
	}

	// A pending edit changes what the filter sees: confirm row a.
	if err := m.edits.SetField("a", booking.FieldStatus, booking.StatusConfirmed); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	m.filter = FilterPending
	rows = m.visibleRows()
	if len(rows) != 1 || rows[0].ID != "c" {
		t.Fatalf("pending filter after edit = %#v, want only c", rows)
	}

	m.filter = FilterEdited
	rows = m.visibleRows()
	if len(rows) != 1 || rows[0].ID != "a" || rows[0].Status != booking.StatusConfirmed {
		t.Fatalf("edited filter = %#v, want merged row a", rows)
	}
}

func TestFilterCycle(t *testing.T) {
	f := FilterAll
	seen := []Filter{}
	for i := 0; i < 4; i++ {
		f = f.next()
		seen = append(seen, f)
	}
	want := []Filter{FilterPending, FilterUnpaid, FilterEdited, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle step %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestPreserveSelection(t *testing.T) {
	m := testModel(
		booking.Booking{ID: "a"},
		booking.Booking{ID: "b"},
		booking.Booking{ID: "c"},
	)
	m.selectedRow = 1 // "b"

	// A new row arrives on top; selection should follow "b" to index 2.
	m.snapshot = state.Snapshot{
		Rows: []booking.Booking{
			{ID: "new"}, {ID: "a"}, {ID: "b"}, {ID: "c"},
		},
		HasRows: true,
	}
	m.preserveSelection()
	if m.selectedRow != 2 {
		t.Fatalf("selectedRow = %d, want 2 (following id b)", m.selectedRow)
	}

	// Selected row disappears; clamp to the valid range.
	m.selectedRow = 3
	m.snapshot = state.Snapshot{Rows: []booking.Booking{{ID: "a"}}, HasRows: true}
	m.preserveSelection()
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow = %d, want clamped to 0", m.selectedRow)
	}
}

func TestCycleField_RecordsEdit(t *testing.T) {
	m := testModel(booking.Booking{ID: "a", Status: booking.StatusPending, PaymentStatus: booking.PaymentUnpaid})

	m.cycleField(fieldStatus)
	if v, ok := m.edits.Get("a", booking.FieldStatus); !ok || v != booking.StatusConfirmed {
		t.Fatalf("status edit = %q ok=%v, want confirmed", v, ok)
	}

	// Cycling again moves from the merged (edited) value, not the fetched one.
	m.cycleField(fieldStatus)
	if v, _ := m.edits.Get("a", booking.FieldStatus); v != booking.StatusCompleted {
		t.Fatalf("status edit after second cycle = %q, want completed", v)
	}

	m.cycleField(fieldPayment)
	if v, _ := m.edits.Get("a", booking.FieldPayment); v != booking.PaymentPending {
		t.Fatalf("payment edit = %q, want Pending", v)
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                     string
		selected, total, visible int
		want                     int
	}{
		{"fits entirely", 3, 5, 10, 0},
		{"selected at top", 0, 50, 10, 0},
		{"selected centered", 25, 50, 10, 20},
		{"selected at bottom", 49, 50, 10, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrollOffset(tt.selected, tt.total, tt.visible); got != tt.want {
				t.Fatalf("scrollOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.visible, got, tt.want)
			}
		})
	}
}

func TestPadAndTruncate(t *testing.T) {
	if got := pad("ab", 4); got != "ab  " {
		t.Fatalf("pad = %q", got)
	}
	if got := pad("abcdef", 4); got != "abcd" {
		t.Fatalf("pad long = %q", got)
	}
	if got := truncate("hello world", 8); got != "hello w…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("héllo wörld", 8); got != "héllo w…" {
		t.Fatalf("truncate multibyte = %q", got)
	}
	if got := truncate("short", 8); got != "short" {
		t.Fatalf("truncate short = %q", got)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "new booking"); got != "1 new booking" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(3, "new booking"); got != "3 new bookings" {
		t.Fatalf("plural(3) = %q", got)
	}
}

func TestToastLifecycle(t *testing.T) {
	m := testModel()

	m.pushToast(toastInfo, "one")
	m.pushToast(toastSuccess, "two")
	m.pushToast(toastDanger, "three")
	m.pushToast(toastInfo, "four")
	if len(m.toasts) != maxToasts {
		t.Fatalf("toasts = %d, want capped at %d", len(m.toasts), maxToasts)
	}
	if m.toasts[0].message != "two" {
		t.Fatalf("oldest toast = %q, want two (one dropped)", m.toasts[0].message)
	}

	m.pruneToasts(time.Now().Add(toastTTL + time.Second))
	if len(m.toasts) != 0 {
		t.Fatalf("toasts after expiry = %d, want 0", len(m.toasts))
	}
}

func TestHandleSnapshot_ToastsOncePerRevision(t *testing.T) {
	m := testModel()

	snap := state.Snapshot{Rows: []booking.Booking{{ID: "a"}}, HasRows: true, NewRows: 2, Revision: 1}
	next, _ := m.handleSnapshot(snap)
	got := next.(Model)
	if len(got.toasts) != 1 {
		t.Fatalf("toasts = %d, want 1 after fresh revision", len(got.toasts))
	}

	// Re-reading the same revision must not toast again.
	next, _ = got.handleSnapshot(snap)
	got = next.(Model)
	if len(got.toasts) != 1 {
		t.Fatalf("toasts = %d, want still 1 for same revision", len(got.toasts))
	}
}
