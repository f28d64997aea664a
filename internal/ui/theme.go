package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Per-status badge colors, keyed by booking and payment status values.
	StatusColors map[string]string
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style

	statusColors map[string]string
	muted        string
}

// Styles builds the style set for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),

		statusColors: t.StatusColors,
		muted:        t.Muted,
	}
}

// StatusStyle returns a foreground style for a status value.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Nord":    nordTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Nord", "Slate"}

// GetTheme returns a theme by name, defaulting to Dracula.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func draculaTheme() Theme {
	// Dracula palette: https://draculatheme.com
	return Theme{
		Name: "Dracula",

		Background: "#282a36",
		Surface:    "#343746",

		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",

		Border:      "#44475a",
		BorderFocus: "#bd93f9",

		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Faint:   "#565976",
		Accent:  "#bd93f9",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
		Info:    "#8be9fd",

		StatusColors: map[string]string{
			"pending":   "#f1fa8c",
			"confirmed": "#50fa7b",
			"completed": "#8be9fd",
			"cancelled": "#ff5555",
			"Unpaid":    "#ff5555",
			"Pending":   "#f1fa8c",
			"Paid":      "#50fa7b",
			"Refunded":  "#8be9fd",
		},
	}
}

func nordTheme() Theme {
	// Nord palette: https://www.nordtheme.com
	return Theme{
		Name: "Nord",

		Background: "#2e3440",
		Surface:    "#3b4252",

		SelectionBg:   "#434c5e",
		SelectionText: "#eceff4",

		Border:      "#4c566a",
		BorderFocus: "#88c0d0",

		Text:    "#d8dee9",
		Muted:   "#7b88a1",
		Faint:   "#616e88",
		Accent:  "#88c0d0",
		Success: "#a3be8c",
		Warning: "#ebcb8b",
		Danger:  "#bf616a",
		Info:    "#81a1c1",

		StatusColors: map[string]string{
			"pending":   "#ebcb8b",
			"confirmed": "#a3be8c",
			"completed": "#81a1c1",
			"cancelled": "#bf616a",
			"Unpaid":    "#bf616a",
			"Pending":   "#ebcb8b",
			"Paid":      "#a3be8c",
			"Refunded":  "#81a1c1",
		},
	}
}

func slateTheme() Theme {
	// Neutral gray fallback for low-color terminals.
	return Theme{
		Name: "Slate",

		Background: "#1e2227",
		Surface:    "#2a2f36",

		SelectionBg:   "#3a414b",
		SelectionText: "#e6e9ed",

		Border:      "#444c57",
		BorderFocus: "#7aa2c4",

		Text:    "#d5dae0",
		Muted:   "#848e9a",
		Faint:   "#6a7482",
		Accent:  "#7aa2c4",
		Success: "#8fbf7f",
		Warning: "#d9b46a",
		Danger:  "#d07070",
		Info:    "#7fb3c8",

		StatusColors: map[string]string{
			"pending":   "#d9b46a",
			"confirmed": "#8fbf7f",
			"completed": "#7fb3c8",
			"cancelled": "#d07070",
			"Unpaid":    "#d07070",
			"Pending":   "#d9b46a",
			"Paid":      "#8fbf7f",
			"Refunded":  "#7fb3c8",
		},
	}
}
