package ui

import "time"

// toastKind selects the toast's color.
type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastDanger
)

const toastTTL = 4 * time.Second

// Keep the toast area bounded; older toasts drop first.
const maxToasts = 3

type toast struct {
	kind    toastKind
	message string
	expires time.Time
}

func (m *Model) pushToast(kind toastKind, message string) {
	m.toasts = append(m.toasts, toast{
		kind:    kind,
		message: message,
		expires: time.Now().Add(toastTTL),
	})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}

// pruneToasts drops expired toasts. Called once per UI tick.
func (m *Model) pruneToasts(now time.Time) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// renderToasts renders the active toast lines, newest last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()

	out := ""
	for i, t := range m.toasts {
		if i > 0 {
			out += "\n"
		}
		line := " " + t.message + " "
		switch t.kind {
		case toastSuccess:
			out += styles.SuccessText.Render(line)
		case toastDanger:
			out += styles.DangerText.Render(line)
		default:
			out += styles.InfoText.Render(line)
		}
	}
	return out
}
