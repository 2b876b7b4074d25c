package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodWindow(t *testing.T) {
	// Wednesday afternoon.
	at := time.Date(2023, time.May, 17, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		period    Period
		wantStart time.Time
		wantEnd   time.Time
	}{
		{PeriodDaily, time.Date(2023, time.May, 17, 0, 0, 0, 0, time.UTC), time.Date(2023, time.May, 18, 0, 0, 0, 0, time.UTC)},
		{PeriodWeekly, time.Date(2023, time.May, 14, 0, 0, 0, 0, time.UTC), time.Date(2023, time.May, 21, 0, 0, 0, 0, time.UTC)},
		{PeriodMonthly, time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYearly, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := tt.period.Window(at)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonthly, p)

	_, err = ParsePeriod("fortnightly")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestMainBudget(t *testing.T) {
	budgets := []Budget{
		{ID: "weekly", Period: PeriodWeekly},
		{ID: "food", Period: PeriodMonthly, CategoryID: "cat1"},
		{ID: "overall", Period: PeriodMonthly},
		{ID: "second", Period: PeriodMonthly},
	}

	main, ok := MainBudget(budgets)
	require.True(t, ok)
	assert.Equal(t, "overall", main.ID)

	_, ok = MainBudget(budgets[:2])
	assert.False(t, ok)
}
