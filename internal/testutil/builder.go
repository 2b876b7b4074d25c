package testutil

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/store"
)

// LedgerBuilder assembles a ledger state fluently. Ids are generated in
// insertion order ("cat1", "exp1", "budget1") unless given explicitly.
type LedgerBuilder struct {
	state store.State
}

// NewLedgerBuilder starts an empty ledger with default settings.
func NewLedgerBuilder() *LedgerBuilder {
	return &LedgerBuilder{state: store.State{Settings: model.DefaultSettings()}}
}

// WithSampleData adds the sample categories, expenses and budgets.
func (b *LedgerBuilder) WithSampleData() *LedgerBuilder {
	seed := store.SeedState()
	b.state.Categories = append(b.state.Categories, seed.Categories...)
	b.state.Expenses = append(b.state.Expenses, seed.Expenses...)
	b.state.Budgets = append(b.state.Budgets, seed.Budgets...)
	return b
}

// WithCategory adds a category with the given name and spending ceiling.
func (b *LedgerBuilder) WithCategory(name, budget string) *LedgerBuilder {
	b.state.Categories = append(b.state.Categories, model.Category{
		ID:     fmt.Sprintf("cat%d", len(b.state.Categories)+1),
		Name:   name,
		Color:  "#607D8B",
		Icon:   model.IconBanknote,
		Budget: Money(budget),
	})
	return b
}

// WithExpense adds an expense. date is YYYY-MM-DD.
func (b *LedgerBuilder) WithExpense(date, description, amount, categoryID string) *LedgerBuilder {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	b.state.Expenses = append(b.state.Expenses, model.Expense{
		ID:          fmt.Sprintf("exp%d", len(b.state.Expenses)+1),
		Date:        d,
		Amount:      Money(amount),
		Description: description,
		CategoryID:  categoryID,
	})
	return b
}

// WithBudget adds a budget. An empty categoryID makes it an overall budget.
func (b *LedgerBuilder) WithBudget(name, amount string, period model.Period, categoryID string) *LedgerBuilder {
	b.state.Budgets = append(b.state.Budgets, model.Budget{
		ID:         fmt.Sprintf("budget%d", len(b.state.Budgets)+1),
		Name:       name,
		Amount:     Money(amount),
		Current:    decimal.Zero,
		Period:     period,
		CategoryID: categoryID,
	})
	return b
}

// WithSettings replaces the settings.
func (b *LedgerBuilder) WithSettings(settings model.Settings) *LedgerBuilder {
	b.state.Settings = settings
	return b
}

// Build returns the assembled state.
func (b *LedgerBuilder) Build() *store.State {
	state := b.state
	return &state
}

// Money parses a decimal literal, panicking on malformed test input.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
