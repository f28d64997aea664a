package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderHeader renders the one-line status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	parts := []string{styles.Logo.Render("rezdesk")}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, styles.DangerText.Render("● OFFLINE"))
	case m.snapshot.LastError != nil:
		parts = append(parts, styles.WarningText.Render("● DEGRADED"))
	case m.snapshot.HasRows:
		parts = append(parts, styles.SuccessText.Render("● LIVE"))
	default:
		parts = append(parts, styles.WarningText.Render("● CONNECTING"))
	}

	parts = append(parts,
		styles.MutedText.Render("Bookings:")+" "+styles.Text.Render(fmt.Sprintf("%d", len(m.snapshot.Rows))))

	if m.filter != FilterAll {
		parts = append(parts,
			styles.MutedText.Render("Filter:")+" "+styles.AccentText.Render(m.filter.label()))
	}

	if m.edits != nil {
		if n := m.edits.Len(); n > 0 {
			parts = append(parts, styles.WarningText.Render(fmt.Sprintf("✎ %d unsaved", n)))
		}
	}

	if m.fetching {
		parts = append(parts, styles.InfoText.Render("refreshing…"))
	}
	if m.saving {
		parts = append(parts, styles.InfoText.Render("saving…"))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render(relativeTime(m.snapshot.LastUpdated)))
	}

	if m.snapshot.LastError != nil {
		parts = append(parts, styles.DangerText.Render(truncate("ERR "+shortError(m.snapshot.LastError), 60)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderFooter renders the command bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var hints []string
	switch m.view {
	case ViewLog:
		hints = []string{"esc back", "q quit"}
	default:
		hints = []string{
			"j/k move", "c status", "p payment", "s save", "u/U discard",
			"r refresh", "f filter", "d detail", "L log", "h help", "q quit",
		}
	}
	return styles.Footer.Width(m.width).Render(strings.Join(hints, "  ·  "))
}

// relativeTime formats the last-update timestamp with a coarse age suffix.
func relativeTime(t time.Time) string {
	stamp := t.Format("15:04:05")
	since := time.Since(t)
	switch {
	case since < time.Minute:
		return stamp
	case since < time.Hour:
		return fmt.Sprintf("%s (%dm ago)", stamp, int(since.Minutes()))
	default:
		return fmt.Sprintf("%s (%dh ago)", stamp, int(since.Hours()))
	}
}
