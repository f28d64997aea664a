package ui

import (
	"strings"
)

// renderLog renders the activity log view from the tailed app log file.
func (m Model) renderLog(height int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("ACTIVITY LOG  " + m.config.LogPath()))
	b.WriteString("\n")

	if m.logErr != nil {
		b.WriteString(styles.DangerText.Render("cannot read log: " + shortError(m.logErr)))
		return b.String()
	}
	if len(m.logEntries) == 0 {
		b.WriteString(styles.FaintText.Render("No log entries yet"))
		return b.String()
	}

	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	start := len(m.logEntries) - visible
	if start < 0 {
		start = 0
	}

	for i, entry := range m.logEntries[start:] {
		if i > 0 {
			b.WriteString("\n")
		}
		line := truncate(entry.Format(), m.width)
		switch strings.ToUpper(entry.Level) {
		case "ERROR":
			b.WriteString(styles.DangerText.Render(line))
		case "WARN":
			b.WriteString(styles.WarningText.Render(line))
		default:
			b.WriteString(styles.Text.Render(line))
		}
	}
	return b.String()
}

// renderMain assembles header, content, toasts, and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	toasts := m.renderToasts()

	// Header and footer take one line each; toasts take what they use.
	contentHeight := m.height - 2
	if toasts != "" {
		contentHeight -= strings.Count(toasts, "\n") + 1
	}

	var content string
	switch m.view {
	case ViewLog:
		content = m.renderLog(contentHeight)
	default:
		if m.showDetail {
			tableHeight := contentHeight - (detailHeight + 2)
			if tableHeight < 4 {
				content = m.renderTable(contentHeight)
			} else {
				content = m.renderTable(tableHeight) + "\n" + m.renderDetail()
			}
		} else {
			content = m.renderTable(contentHeight)
		}
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n")
	if toasts != "" {
		b.WriteString(toasts)
		b.WriteString("\n")
	}
	b.WriteString(footer)
	return b.String()
}
