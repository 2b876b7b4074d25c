package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/report"
	"github.com/Veraticus/spend/internal/store"
	"github.com/Veraticus/spend/internal/testutil"
)

func TestSummarize(t *testing.T) {
	t.Run("seed data", func(t *testing.T) {
		s := report.Summarize(store.SeedExpenses(), store.SeedBudgets())

		assert.Equal(t, 15, s.ExpenseCount)
		assert.True(t, dec("2667.09").Equal(s.TotalSpent))
		assert.True(t, dec("3000").Equal(s.MonthlyBudget))
		require.NotNil(t, s.MainBudget)
		assert.Equal(t, "budget1", s.MainBudget.ID)
		assert.True(t, dec("245.91").Equal(s.Available), "available %s", s.Available)
		assert.InDelta(t, 88.903, s.PercentSpent, 1e-9)
		assert.False(t, s.OverBudget)
		assert.Equal(t, report.TrendNeutral, s.Trend)
		assert.True(t, dec("1200").Equal(s.Largest))
		assert.True(t, dec("15.99").Equal(s.Smallest))
	})

	t.Run("trend thresholds", func(t *testing.T) {
		budgets := []model.Budget{{ID: "b", Name: "Main", Amount: dec("100"), Period: model.PeriodMonthly}}
		day := model.NewDate(2023, time.May, 1)

		tests := []struct {
			spent string
			want  report.Trend
			over  bool
		}{
			{"10", report.TrendDown, false},
			{"74.99", report.TrendDown, false},
			{"75", report.TrendNeutral, false},
			{"100", report.TrendNeutral, false},
			{"100.01", report.TrendUp, true},
		}
		for _, tt := range tests {
			t.Run(tt.spent, func(t *testing.T) {
				s := report.Summarize([]model.Expense{expense("e", tt.spent, "cat1", day)}, budgets)
				assert.Equal(t, tt.want, s.Trend)
				assert.Equal(t, tt.over, s.OverBudget)
			})
		}
	})

	t.Run("only monthly overall budgets count", func(t *testing.T) {
		state := testutil.NewLedgerBuilder().
			WithCategory("Food", "300").
			WithExpense("2024-03-02", "Market", "40", "cat1").
			WithExpense("2024-03-09", "Bakery", "60", "cat1").
			WithBudget("Weekly", "50", model.PeriodWeekly, "").
			WithBudget("Food", "150", model.PeriodMonthly, "cat1").
			WithBudget("March", "200", model.PeriodMonthly, "").
			Build()

		s := report.Summarize(state.Expenses, state.Budgets)
		assert.True(t, testutil.Money("200").Equal(s.MonthlyBudget))
		require.NotNil(t, s.MainBudget)
		assert.Equal(t, "budget3", s.MainBudget.ID)
		assert.True(t, testutil.Money("200").Equal(s.Available))
		assert.InDelta(t, 50.0, s.PercentSpent, 1e-9)
		assert.Equal(t, report.TrendDown, s.Trend)
		assert.True(t, testutil.Money("60").Equal(s.Largest))
		assert.True(t, testutil.Money("40").Equal(s.Smallest))
	})

	t.Run("no budgets or expenses", func(t *testing.T) {
		s := report.Summarize(nil, nil)
		assert.Nil(t, s.MainBudget)
		assert.True(t, s.Available.IsZero())
		assert.True(t, s.Largest.IsZero())
		assert.True(t, s.Smallest.IsZero())
		assert.Zero(t, s.PercentSpent)
		assert.Equal(t, report.TrendDown, s.Trend)
	})
}

func TestRecent(t *testing.T) {
	recent := report.Recent(store.SeedExpenses(), 3)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"exp15", "exp14", "exp13"}, []string{recent[0].ID, recent[1].ID, recent[2].ID})

	assert.Nil(t, report.Recent(store.SeedExpenses(), 0))
	assert.Len(t, report.Recent(store.SeedExpenses(), 100), 15)
}
