package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	section := func(title string, bindings ...key.Binding) string {
		var b strings.Builder
		b.WriteString("  " + styles.AccentText.Render(title) + "\n")
		for _, binding := range bindings {
			h := binding.Help()
			b.WriteString("    " + styles.Text.Render(pad(h.Key, 12)) + styles.MutedText.Render(h.Desc) + "\n")
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString("\n  " + styles.Logo.Render("rezdesk") + styles.MutedText.Render("  —  booking admin") + "\n\n")
	b.WriteString(section("Navigate",
		m.keys.Down, m.keys.Up, m.keys.Top, m.keys.Bottom))
	b.WriteString("\n")
	b.WriteString(section("Edit",
		m.keys.CycleStatus, m.keys.CyclePayment, m.keys.Save, m.keys.DiscardRow, m.keys.DiscardAll))
	b.WriteString("\n")
	b.WriteString(section("Data",
		m.keys.Refresh, m.keys.CycleFilter))
	b.WriteString("\n")
	b.WriteString(section("Views",
		m.keys.ToggleDetail, m.keys.ViewLog, m.keys.Escape, m.keys.CycleTheme, m.keys.Quit))
	b.WriteString("\n  " + styles.FaintText.Render("Press any key to close"))
	return b.String()
}
