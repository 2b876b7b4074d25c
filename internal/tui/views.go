package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/spend/internal/report"
)

// Width at which the summary and category panels sit side by side.
const wideLayout = 100

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		return m.theme.Subtitle.Render("Loading dashboard...")
	}

	top := []string{m.renderSummary(), m.renderCategories()}
	var overview string
	if m.width >= wideLayout {
		overview = lipgloss.JoinHorizontal(lipgloss.Top, top[0], " ", top[1])
	} else {
		overview = lipgloss.JoinVertical(lipgloss.Left, top...)
	}

	sections := []string{
		m.renderHeader(),
		overview,
		m.renderBudgets(),
		m.renderRecent(),
	}
	if footer := m.renderStatus(); footer != "" {
		sections = append(sections, footer)
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("💰 Spending Dashboard")
	generated := m.theme.Subtitle.Render(fmt.Sprintf("%s · %s",
		m.ledger.Generated.Format("Jan 2, 2006 15:04"),
		m.ledger.Settings.Currency.Info().Name))
	return lipgloss.JoinVertical(lipgloss.Left, title, generated, "")
}

func (m Model) renderSummary() string {
	s := m.ledger.Summary
	currency := m.ledger.Settings.Currency

	available := m.theme.StatusSuccess
	if s.Available.IsNegative() {
		available = m.theme.StatusError
	}

	lines := []string{
		m.theme.Bold.Render("Summary"),
		m.row("Total Spent", m.theme.Value.Render(report.FormatCurrency(s.TotalSpent, currency))),
		m.row("Monthly Budget", m.theme.Value.Render(report.FormatCurrency(s.MonthlyBudget, currency))),
		m.row("Available", available.Render(report.FormatCurrency(s.Available, currency))),
		m.row("Spent", m.percentBar(s.PercentSpent)+" "+m.trend(s.Trend)),
		m.row("Expenses", m.theme.Value.Render(fmt.Sprintf("%d", s.ExpenseCount))),
	}
	if s.ExpenseCount > 0 {
		lines = append(lines,
			m.row("Largest", m.theme.Normal.Render(report.FormatCurrency(s.Largest, currency))),
			m.row("Smallest", m.theme.Normal.Render(report.FormatCurrency(s.Smallest, currency))))
	}
	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCategories() string {
	currency := m.ledger.Settings.Currency
	lines := []string{m.theme.Bold.Render("By Category")}
	if len(m.ledger.ByCategory) == 0 {
		lines = append(lines, m.theme.Subtitle.Render("No spending yet"))
	}
	for _, total := range m.ledger.ByCategory {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(total.Color)).Render("●")
		lines = append(lines, fmt.Sprintf("%s %-16s %12s %6.1f%%",
			swatch,
			truncate(total.CategoryName, 16),
			report.FormatCurrency(total.Total, currency),
			total.Percentage))
	}
	if n := len(m.ledger.Dangling); n > 0 {
		lines = append(lines, m.theme.StatusWarning.Render(fmt.Sprintf("%d uncategorized expense(s)", n)))
	}
	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderBudgets() string {
	currency := m.ledger.Settings.Currency
	lines := []string{m.theme.Bold.Render("Budgets")}
	if len(m.ledger.Budgets) == 0 {
		lines = append(lines, m.theme.Subtitle.Render("No budgets"))
	}
	for _, b := range m.ledger.Budgets {
		scope := "all categories"
		if !b.Overall() {
			scope = m.ledger.CategoryName(b.CategoryID)
		}
		lines = append(lines, fmt.Sprintf("%-18s %s %s / %s  %s",
			truncate(b.Name, 18),
			m.percentBar(report.StatusOf(b).Percentage),
			report.FormatCurrency(b.Current, currency),
			report.FormatCurrency(b.Amount, currency),
			m.theme.Subtitle.Render(string(b.Period)+", "+scope)))
	}
	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderRecent() string {
	title := m.theme.Bold.Render("Recent Expenses")
	if len(m.table.Rows()) == 0 {
		return m.theme.RoundedBox.Render(title + "\n" + m.theme.Subtitle.Render("No expenses"))
	}
	return m.theme.RoundedBox.Render(title + "\n" + m.table.View())
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return m.theme.StatusError.Render("✗ " + m.err.Error())
	}
	if m.status != "" {
		return m.theme.StatusInfo.Render(m.status)
	}
	return ""
}

func (m Model) row(label, value string) string {
	return m.theme.Label.Render(fmt.Sprintf("%-15s", label)) + value
}

func (m Model) percentBar(pct float64) string {
	bar := m.bar
	bar.FullColor = string(m.colorFor(pct))
	return bar.ViewAs(min(pct/100, 1)) + fmt.Sprintf(" %5.1f%%", pct)
}

func (m Model) colorFor(pct float64) lipgloss.Color {
	switch {
	case pct > 100:
		return m.theme.Error
	case pct >= 75:
		return m.theme.Warning
	default:
		return m.theme.Success
	}
}

func (m Model) trend(t report.Trend) string {
	switch t {
	case report.TrendUp:
		return m.theme.StatusError.Render("▲ over budget")
	case report.TrendNeutral:
		return m.theme.StatusWarning.Render("● nearing budget")
	default:
		return m.theme.StatusSuccess.Render("▼ on track")
	}
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
