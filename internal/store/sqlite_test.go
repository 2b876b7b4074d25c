package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/testutil"
)

func februaryLedger() testutil.TestStoreOptions {
	return testutil.TestStoreOptions{
		OnDisk: true,
		State: testutil.NewLedgerBuilder().
			WithCategory("Food", "300").
			WithCategory("Rent", "1000").
			WithExpense("2024-02-01", "Groceries", "42.50", "cat1").
			WithExpense("2024-02-03", "February rent", "1000", "cat2").
			WithExpense("2024-01-28", "Takeaway", "18.20", "cat1").
			WithBudget("Monthly", "1500", model.PeriodMonthly, "").
			WithBudget("Groceries", "300", model.PeriodMonthly, "cat1").
			WithSettings(model.Settings{Currency: model.CurrencyUSD, Theme: model.ThemeDark, Language: "en"}).
			Build(),
	}
}

func TestStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	ts := testutil.SetupTestStore(t, februaryLedger())

	changed, err := ts.Store.RefreshBudgets(ctx, time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	rent := testutil.Money("950")
	_, err = ts.Store.UpdateExpense(ctx, "exp2", model.ExpensePatch{Amount: &rent})
	require.NoError(t, err)
	require.NoError(t, ts.Store.DeleteExpense(ctx, "exp3"))

	reopened := ts.Reopen()
	assert.Equal(t, model.CurrencyUSD, reopened.Settings().Currency)
	assert.Len(t, reopened.Expenses(), 2)

	rentExpense, err := reopened.Expense("exp2")
	require.NoError(t, err)
	assert.True(t, rent.Equal(rentExpense.Amount))

	overall, err := reopened.Budget("budget1")
	require.NoError(t, err)
	assert.True(t, testutil.Money("1042.50").Equal(overall.Current), "current %s", overall.Current)

	food, err := reopened.Budget("budget2")
	require.NoError(t, err)
	assert.True(t, testutil.Money("42.50").Equal(food.Current), "current %s", food.Current)
}

func TestResetOnSQLiteKeepsSettings(t *testing.T) {
	ctx := context.Background()
	ts := testutil.SetupTestStore(t, februaryLedger())

	require.NoError(t, ts.Store.ResetToSampleData(ctx))

	reopened := ts.Reopen()
	assert.Len(t, reopened.Expenses(), 15)
	assert.Len(t, reopened.Categories(), 10)
	assert.Equal(t, model.CurrencyUSD, reopened.Settings().Currency)
	assert.Equal(t, model.ThemeDark, reopened.Settings().Theme)
}
