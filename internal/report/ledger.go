package report

import (
	"time"

	"github.com/Veraticus/spend/internal/model"
)

// Ledger bundles every collection with the derived views an export needs.
type Ledger struct {
	Generated  time.Time
	Settings   model.Settings
	Summary    DashboardSummary
	ByCategory []model.CategoryTotal
	ByMonth    []model.MonthlyTotal
	Expenses   []model.Expense
	Categories []model.Category
	Budgets    []model.Budget
	Dangling   []model.Expense
}

// BuildLedger derives the export views. Expenses are ordered newest first.
func BuildLedger(expenses []model.Expense, categories []model.Category, budgets []model.Budget, settings model.Settings, now time.Time) Ledger {
	return Ledger{
		Generated:  now,
		Settings:   settings,
		Summary:    Summarize(expenses, budgets),
		ByCategory: ByCategory(expenses, categories),
		ByMonth:    ByMonth(expenses),
		Expenses:   Query{}.Apply(expenses),
		Categories: categories,
		Budgets:    budgets,
		Dangling:   Dangling(expenses, categories),
	}
}

// CategoryName resolves a category id for display. Unresolvable ids render
// as the raw id in brackets.
func (l Ledger) CategoryName(id string) string {
	if c, ok := model.FindCategory(l.Categories, id); ok {
		return c.Name
	}
	return "[" + id + "]"
}
