// Package cli provides styled terminal output and simple prompts.
package cli

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/spend/internal/model"
)

// Palette is the set of colors a theme renders with.
type Palette struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Subtle  lipgloss.Color
	Border  lipgloss.Color
}

// LightPalette is used with the light theme.
var LightPalette = Palette{
	Primary: lipgloss.Color("#2563EB"),
	Success: lipgloss.Color("#15803D"),
	Warning: lipgloss.Color("#B45309"),
	Error:   lipgloss.Color("#DC2626"),
	Info:    lipgloss.Color("#0E7490"),
	Subtle:  lipgloss.Color("#6B7280"),
	Border:  lipgloss.Color("#D1D5DB"),
}

// DarkPalette is used with the dark theme.
var DarkPalette = Palette{
	Primary: lipgloss.Color("#60A5FA"),
	Success: lipgloss.Color("#4ECDC4"),
	Warning: lipgloss.Color("#FFE66D"),
	Error:   lipgloss.Color("#FF6B6B"),
	Info:    lipgloss.Color("#95E1D3"),
	Subtle:  lipgloss.Color("#9CA3AF"),
	Border:  lipgloss.Color("#374151"),
}

// PaletteFor returns the palette of a theme. Unknown themes get the light one.
func PaletteFor(theme model.Theme) Palette {
	if theme == model.ThemeDark {
		return DarkPalette
	}
	return LightPalette
}

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Palette     Palette
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Info        lipgloss.Style
	Subtle      lipgloss.Style
	Bold        lipgloss.Style
	Box         lipgloss.Style
	Prompt      lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
}

// NewStyles builds the styles for a theme.
func NewStyles(theme model.Theme) Styles {
	p := PaletteFor(theme)
	return Styles{
		Palette:  p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.Subtle).MarginBottom(1),
		Success:  lipgloss.NewStyle().Foreground(p.Success),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning),
		Error:    lipgloss.NewStyle().Foreground(p.Error),
		Info:     lipgloss.NewStyle().Foreground(p.Info),
		Subtle:   lipgloss.NewStyle().Foreground(p.Subtle),
		Bold:     lipgloss.NewStyle().Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		Prompt:      lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(p.Primary).PaddingRight(2),
		TableCell:   lipgloss.NewStyle().PaddingRight(2),
	}
}

var (
	currentMu sync.RWMutex
	current   = NewStyles(model.ThemeLight)
)

// SetTheme switches the styles used by the package-level helpers.
func SetTheme(theme model.Theme) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = NewStyles(theme)
}

// Current returns the active styles.
func Current() Styles {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// Status icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WalletIcon  = "👛"
	ChartIcon   = "📊"
)

var iconGlyphs = map[model.Icon]string{
	model.IconCreditCard:    "💳",
	model.IconShoppingCart:  "🛒",
	model.IconHome:          "🏠",
	model.IconCar:           "🚗",
	model.IconUtensils:      "🍴",
	model.IconPlane:         "✈️",
	model.IconGraduationCap: "🎓",
	model.IconCoffee:        "☕",
	model.IconGift:          "🎁",
	model.IconDroplet:       "💧",
	model.IconBanknote:      "💵",
	model.IconZap:           "⚡",
	model.IconWifi:          "📶",
	model.IconSmartphone:    "📱",
	model.IconHeartPulse:    "💓",
}

// IconGlyph returns the terminal glyph for a category icon. Unknown icons
// render as the default icon.
func IconGlyph(icon model.Icon) string {
	if glyph, ok := iconGlyphs[icon]; ok {
		return glyph
	}
	return iconGlyphs[model.DefaultIcon]
}

// Swatch renders a small block in a category color.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return Current().Success.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return Current().Error.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return Current().Warning.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return Current().Info.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the wallet icon.
func FormatTitle(title string) string {
	return Current().Title.Render(WalletIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return Current().Prompt.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	s := Current()
	return s.Box.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		s.Title.UnsetMargins().Render(title),
		content,
	))
}

// RenderTable renders rows under a header. Columns listed in rightAlign
// (zero-based) are right aligned, for amounts.
func RenderTable(headers []string, rows [][]string, rightAlign ...int) string {
	s := Current()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Palette.Border)).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := s.TableCell
			if row == table.HeaderRow {
				style = s.TableHeader
			}
			for _, c := range rightAlign {
				if c == col {
					return style.Align(lipgloss.Right)
				}
			}
			return style
		})
	return strings.TrimRight(t.Render(), "\n")
}

// ProgressBar renders a fixed-width text bar for a percentage, capped at
// 100%. Bars past 100% render in the error color, past warnAt in the
// warning color.
func ProgressBar(percentage float64, width int, warnAt float64) string {
	if width <= 0 {
		return ""
	}
	filled := int(percentage / 100 * float64(width))
	filled = max(0, min(filled, width))

	s := Current()
	style := s.Success
	switch {
	case percentage > 100:
		style = s.Error
	case percentage >= warnAt:
		style = s.Warning
	}
	return style.Render(strings.Repeat("█", filled)) + s.Subtle.Render(strings.Repeat("░", width-filled))
}
