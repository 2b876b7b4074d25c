package report

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
)

// Trend is the direction indicator shown next to the spending figure.
type Trend string

// Trends. Up means spending has passed the monthly budget.
const (
	TrendUp      Trend = "up"
	TrendNeutral Trend = "neutral"
	TrendDown    Trend = "down"
)

// overBudgetWarning is the percentage at which spending is flagged before it
// exceeds the budget.
const overBudgetWarning = 75

// DashboardSummary holds the headline figures of the dashboard.
type DashboardSummary struct {
	TotalSpent    decimal.Decimal
	MonthlyBudget decimal.Decimal
	Available     decimal.Decimal
	Largest       decimal.Decimal
	Smallest      decimal.Decimal
	MainBudget    *model.Budget
	Trend         Trend
	PercentSpent  float64
	ExpenseCount  int
	OverBudget    bool
}

// Summarize computes the dashboard figures. MonthlyBudget adds up every
// monthly budget without a category scope; Available comes from the main
// budget alone.
func Summarize(expenses []model.Expense, budgets []model.Budget) DashboardSummary {
	s := DashboardSummary{
		TotalSpent:    TotalOf(expenses),
		MonthlyBudget: decimal.Zero,
		Available:     decimal.Zero,
		Largest:       decimal.Zero,
		Smallest:      decimal.Zero,
		ExpenseCount:  len(expenses),
	}

	for _, b := range budgets {
		if b.Period == model.PeriodMonthly && b.Overall() {
			s.MonthlyBudget = s.MonthlyBudget.Add(b.Amount)
		}
	}

	if main, ok := model.MainBudget(budgets); ok {
		s.MainBudget = &main
		s.Available = main.Amount.Sub(main.Current)
	}

	s.PercentSpent = percent(s.TotalSpent, s.MonthlyBudget)
	s.OverBudget = s.PercentSpent > 100
	switch {
	case s.OverBudget:
		s.Trend = TrendUp
	case s.PercentSpent >= overBudgetWarning:
		s.Trend = TrendNeutral
	default:
		s.Trend = TrendDown
	}

	if len(expenses) > 0 {
		s.Largest = expenses[0].Amount
		s.Smallest = expenses[0].Amount
		for _, e := range expenses[1:] {
			s.Largest = decimal.Max(s.Largest, e.Amount)
			s.Smallest = decimal.Min(s.Smallest, e.Amount)
		}
	}
	return s
}

// Recent returns up to n expenses, newest first. Expenses on the same date
// keep their collection order.
func Recent(expenses []model.Expense, n int) []model.Expense {
	if n <= 0 {
		return nil
	}
	sorted := slices.Clone(expenses)
	slices.SortStableFunc(sorted, byDateDesc)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
