// Package themes holds the dashboard color schemes.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/spend/internal/model"
)

// Theme defines the visual style for the dashboard.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Info          lipgloss.Color
	BarEmpty      lipgloss.Color
}

type palette struct {
	primary    string
	muted      string
	border     string
	foreground string
	success    string
	warning    string
	error      string
	info       string
	dim        string
	selectedFg string
}

func build(p palette) Theme {
	return Theme{
		Primary:    lipgloss.Color(p.primary),
		Muted:      lipgloss.Color(p.muted),
		Border:     lipgloss.Color(p.border),
		Foreground: lipgloss.Color(p.foreground),
		Success:    lipgloss.Color(p.success),
		Warning:    lipgloss.Color(p.warning),
		Error:      lipgloss.Color(p.error),
		Info:       lipgloss.Color(p.info),
		BarEmpty:   lipgloss.Color(p.dim),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.error)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			BorderBottom(true),
		TableSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.selectedFg)).
			Background(lipgloss.Color(p.primary)).
			Bold(false),
	}
}

// Light is used when the settings theme is light.
var Light = build(palette{
	primary:    "#7c3aed",
	muted:      "#6b7280",
	border:     "#d1d5db",
	foreground: "#111827",
	success:    "#059669",
	warning:    "#d97706",
	error:      "#dc2626",
	info:       "#2563eb",
	dim:        "#e5e7eb",
	selectedFg: "#ffffff",
})

// Dark is the Catppuccin Mocha palette, used when the settings theme is dark.
var Dark = build(palette{
	primary:    "#cba6f7",
	muted:      "#6c7086",
	border:     "#45475a",
	foreground: "#cdd6f4",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	error:      "#f38ba8",
	info:       "#89dceb",
	dim:        "#313244",
	selectedFg: "#1e1e2e",
})

// For returns the theme matching a settings theme. Unknown values get Light.
func For(t model.Theme) Theme {
	if t == model.ThemeDark {
		return Dark
	}
	return Light
}
