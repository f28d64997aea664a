package ui

import (
	"fmt"
	"strings"
)

const detailHeight = 9

// updateDetailViewport refreshes the detail pane content for the selected row.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.Width = m.width
	m.detailViewport.Height = detailHeight
	m.detailViewport.SetContent(m.detailContent())
}

func (m *Model) detailContent() string {
	styles := m.theme.Styles()
	row := m.selectedBooking()
	if row == nil {
		return styles.FaintText.Render("No booking selected")
	}

	label := func(s string) string { return styles.MutedText.Render(pad(s, 10)) }

	var b strings.Builder
	b.WriteString(styles.Text.Render(row.GuestName))
	b.WriteString("  ")
	b.WriteString(styles.StatusStyle(row.Status).Render(row.Status))
	b.WriteString("  ")
	b.WriteString(styles.StatusStyle(row.PaymentStatus).Render(row.PaymentStatus))
	if m.edits != nil && m.edits.Has(row.ID) {
		b.WriteString("  ")
		b.WriteString(styles.WarningText.Render("✎ unsaved"))
	}
	b.WriteString("\n")

	if row.GuestEmail != "" || row.GuestPhone != "" {
		contact := row.GuestEmail
		if row.GuestPhone != "" {
			if contact != "" {
				contact += "  ·  "
			}
			contact += row.GuestPhone
		}
		b.WriteString(label("Contact") + styles.Text.Render(contact) + "\n")
	}
	b.WriteString(label("Event") + styles.Text.Render(formatDate(row.EventDate)) + "\n")
	b.WriteString(label("Party") + styles.Text.Render(formatParty(row.PartySize)) + "\n")
	if !row.Address.IsZero() {
		b.WriteString(label("Address") + styles.Text.Render(row.Address.String()) + "\n")
	}
	if len(row.Services) > 0 {
		b.WriteString(label("Services") + styles.Text.Render(strings.Join(row.Services, ", ")) + "\n")
	}
	if row.Notes != "" {
		b.WriteString(label("Notes") + styles.Text.Render(row.Notes) + "\n")
	}
	b.WriteString(label("ID") + styles.FaintText.Render(row.ID) + "\n")
	if t := row.ParsedCreatedAt(); !t.IsZero() {
		b.WriteString(label("Created") + styles.FaintText.Render(t.Format("2006-01-02 15:04:05")))
	}

	return b.String()
}

// renderDetail renders the detail pane with its border.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	return styles.Border.Width(m.width - 2).Render(m.detailViewport.View())
}

// renderConfigError renders the full-screen configuration error state.
func (m Model) renderConfigError() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString("  " + styles.Logo.Render("rezdesk") + "\n\n")
	b.WriteString("  " + styles.DangerText.Render("Configuration required") + "\n\n")
	b.WriteString("  " + styles.Text.Render("The backend endpoint URL and access key are not set.") + "\n\n")
	b.WriteString("  " + styles.MutedText.Render("Set them in ~/.config/rezdesk/config.toml:") + "\n")
	b.WriteString("  " + styles.FaintText.Render(`    backend_url = "https://<project>.supabase.co"`) + "\n")
	b.WriteString("  " + styles.FaintText.Render(`    backend_key = "<access key>"`) + "\n\n")
	b.WriteString("  " + styles.MutedText.Render("or export REZDESK_BACKEND_URL / REZDESK_BACKEND_KEY") + "\n")
	b.WriteString("  " + styles.MutedText.Render("(SUPABASE_URL / SUPABASE_ANON_KEY also work).") + "\n\n")
	b.WriteString("  " + styles.FaintText.Render(fmt.Sprintf("detail: %v", m.configErr)) + "\n\n")
	b.WriteString("  " + styles.Text.Render("Press q to quit."))
	return b.String()
}
