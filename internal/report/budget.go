package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
)

// BudgetStatus is the progress of a budget's accumulated amount against its
// target.
type BudgetStatus struct {
	Remaining  decimal.Decimal
	Percentage float64
	Over       bool
}

// StatusOf reports budget progress from the budget's Current amount.
func StatusOf(b model.Budget) BudgetStatus {
	return BudgetStatus{
		Remaining:  b.Amount.Sub(b.Current),
		Percentage: percent(b.Current, b.Amount),
		Over:       b.Current.GreaterThan(b.Amount),
	}
}

// PeriodSpend sums the expenses that fall in the budget's period window
// containing now. A category-scoped budget only counts its own category.
func PeriodSpend(b model.Budget, expenses []model.Expense, now time.Time) decimal.Decimal {
	start, end := b.Period.Window(now)
	spent := decimal.Zero
	for _, e := range expenses {
		if !b.Overall() && e.CategoryID != b.CategoryID {
			continue
		}
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		spent = spent.Add(e.Amount)
	}
	return spent
}
