package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/spend/internal/report"
)

const refreshTimeout = 10 * time.Second

// loadLedger snapshots the source and derives the dashboard views.
func (m Model) loadLedger() tea.Cmd {
	source, now := m.source, m.now
	return func() tea.Msg {
		state := source.Snapshot()
		return ledgerLoadedMsg{
			ledger: report.BuildLedger(state.Expenses, state.Categories, state.Budgets, state.Settings, now()),
		}
	}
}

// refreshBudgets recomputes budget totals in the source.
func (m Model) refreshBudgets() tea.Cmd {
	ctx, source, now := m.ctx, m.source, m.now
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()

		changed, err := source.RefreshBudgets(ctx, now())
		return budgetsRefreshedMsg{changed: changed, err: err}
	}
}
