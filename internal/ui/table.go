package ui

import (
	"fmt"
	"strings"

	"github.com/tomvoss/rezdesk/internal/booking"
)

// Filter narrows the bookings table.
type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterUnpaid
	FilterEdited
)

func (f Filter) next() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterUnpaid
	case FilterUnpaid:
		return FilterEdited
	default:
		return FilterAll
	}
}

func (f Filter) label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterUnpaid:
		return "Unpaid"
	case FilterEdited:
		return "Edited"
	default:
		return "All"
	}
}

type fieldKind int

const (
	fieldStatus fieldKind = iota
	fieldPayment
)

// visibleRows returns the fetched rows with pending edits overlaid and the
// active filter applied. Order is the backend's: creation time, newest first.
func (m *Model) visibleRows() []booking.Booking {
	rows := make([]booking.Booking, 0, len(m.snapshot.Rows))
	for _, row := range m.snapshot.Rows {
		merged := row
		if m.edits != nil {
			merged = m.edits.MergedRow(row)
		}
		if !m.matchesFilter(merged) {
			continue
		}
		rows = append(rows, merged)
	}
	return rows
}

func (m *Model) matchesFilter(row booking.Booking) bool {
	switch m.filter {
	case FilterPending:
		return strings.EqualFold(row.Status, booking.StatusPending)
	case FilterUnpaid:
		return row.PaymentStatus == booking.PaymentUnpaid
	case FilterEdited:
		return m.edits != nil && m.edits.Has(row.ID)
	default:
		return true
	}
}

// selectedBooking returns the currently selected merged row, or nil.
func (m *Model) selectedBooking() *booking.Booking {
	rows := m.visibleRows()
	if len(rows) == 0 || m.selectedRow < 0 || m.selectedRow >= len(rows) {
		return nil
	}
	row := rows[m.selectedRow]
	return &row
}

// preserveSelection keeps the cursor on the same booking ID across snapshot
// updates when possible, clamping otherwise.
func (m *Model) preserveSelection() {
	var selectedID string
	if row := m.selectedBooking(); row != nil {
		selectedID = row.ID
	}

	rows := m.visibleRows()
	if len(rows) == 0 {
		m.selectedRow = 0
		return
	}
	if selectedID != "" {
		for i, row := range rows {
			if row.ID == selectedID {
				m.selectedRow = i
				return
			}
		}
	}
	if m.selectedRow >= len(rows) {
		m.selectedRow = len(rows) - 1
	}
}

func (m *Model) clampSelection() {
	rows := m.visibleRows()
	if len(rows) == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= len(rows) {
		m.selectedRow = len(rows) - 1
	}
}

// cycleField steps the selected row's status or payment field to the next
// value in its cycle, recording the change in the edit buffer.
func (m *Model) cycleField(kind fieldKind) {
	row := m.selectedBooking()
	if row == nil || m.edits == nil {
		return
	}

	var field string
	var next string
	switch kind {
	case fieldStatus:
		field = booking.FieldStatus
		next = nextValue(booking.StatusCycle, row.Status)
	case fieldPayment:
		field = booking.FieldPayment
		next = nextValue(booking.PaymentCycle, row.PaymentStatus)
	}

	if err := m.edits.SetField(row.ID, field, next); err != nil {
		m.pushToast(toastDanger, shortError(err))
		return
	}
	m.updateDetailViewport()
}

// nextValue returns the cycle entry after current, wrapping around. Unknown
// values start the cycle from the beginning.
func nextValue(cycle []string, current string) string {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// Column layout. Guest takes whatever width remains.
const (
	colDate    = 10
	colParty   = 5
	colStatus  = 11
	colPayment = 9
	colCreated = 11
	colEdited  = 2
	colGap     = 2
)

// renderTable renders the bookings list with header row and selection.
func (m Model) renderTable(height int) string {
	styles := m.theme.Styles()
	rows := m.visibleRows()

	guestWidth := m.width - (colEdited + colDate + colParty + colStatus + colPayment + colCreated + 6*colGap)
	if guestWidth < 12 {
		guestWidth = 12
	}

	var b strings.Builder
	gap := strings.Repeat(" ", colGap)

	header := strings.Join([]string{
		pad("", colEdited),
		pad("GUEST", guestWidth),
		pad("DATE", colDate),
		pad("PARTY", colParty),
		pad("STATUS", colStatus),
		pad("PAYMENT", colPayment),
		pad("CREATED", colCreated),
	}, gap)
	b.WriteString(styles.MutedText.Render(header))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(styles.FaintText.Render(m.emptyTableMessage()))
		return b.String()
	}

	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	start := scrollOffset(m.selectedRow, len(rows), visible)

	for i := start; i < len(rows) && i < start+visible; i++ {
		row := rows[i]

		edited := " "
		if m.edits != nil && m.edits.Has(row.ID) {
			edited = "*"
		}

		cells := []string{
			pad(edited, colEdited),
			pad(truncate(row.GuestName, guestWidth), guestWidth),
			pad(formatDate(row.EventDate), colDate),
			pad(formatParty(row.PartySize), colParty),
			pad(row.Status, colStatus),
			pad(row.PaymentStatus, colPayment),
			pad(formatCreated(row), colCreated),
		}

		if i == m.selectedRow {
			b.WriteString(styles.Selected.Width(m.width).Render(strings.Join(cells, gap)))
		} else {
			// Status and payment cells get their badge colors; the rest
			// stays in the default text color.
			b.WriteString(styles.Text.Render(strings.Join(cells[:4], gap) + gap))
			b.WriteString(styles.StatusStyle(row.Status).Render(cells[4]))
			b.WriteString(styles.Text.Render(gap))
			b.WriteString(styles.StatusStyle(row.PaymentStatus).Render(cells[5]))
			b.WriteString(styles.Text.Render(gap + cells[6]))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) emptyTableMessage() string {
	if !m.snapshot.HasRows {
		if m.snapshot.LastError != nil {
			return "No data yet — " + shortError(m.snapshot.LastError) + " (r to retry)"
		}
		return "Waiting for first fetch..."
	}
	if m.filter != FilterAll {
		return "No bookings match the " + m.filter.label() + " filter (f to cycle)"
	}
	return "No bookings"
}

// scrollOffset keeps the selected row inside the visible window.
func scrollOffset(selected, total, visible int) int {
	if total <= visible {
		return 0
	}
	start := selected - visible/2
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func formatDate(value string) string {
	if len(value) >= 10 {
		return value[:10]
	}
	return value
}

func formatParty(n int) string {
	if n <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

func formatCreated(row booking.Booking) string {
	t := row.ParsedCreatedAt()
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 02 15:04")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func shortError(err error) string {
	if err == nil {
		return ""
	}
	return truncate(err.Error(), 80)
}
