package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Budget is a spending target over a recurrence period, optionally scoped to
// a single category. An empty CategoryID means the budget spans all
// categories.
type Budget struct {
	Amount     decimal.Decimal `json:"amount"`
	Current    decimal.Decimal `json:"current"`
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Period     Period          `json:"period"`
	CategoryID string          `json:"categoryId,omitempty"`
}

// Overall reports whether the budget is not scoped to a category.
func (b Budget) Overall() bool {
	return b.CategoryID == ""
}

// NewBudget holds the fields of a budget before an id is assigned.
type NewBudget struct {
	Amount     decimal.Decimal
	Current    decimal.Decimal
	Name       string
	Period     Period
	CategoryID string
}

// Validate checks every field of the new budget.
func (n NewBudget) Validate() error {
	if err := validateName("budget name", n.Name); err != nil {
		return err
	}
	if err := validateAmount("amount", n.Amount); err != nil {
		return err
	}
	if err := validateAmount("current", n.Current); err != nil {
		return err
	}
	if !n.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

// WithID returns the stored form of the budget.
func (n NewBudget) WithID(id string) Budget {
	return Budget{
		ID:         id,
		Name:       strings.TrimSpace(n.Name),
		Amount:     n.Amount,
		Current:    n.Current,
		Period:     n.Period,
		CategoryID: n.CategoryID,
	}
}

// BudgetPatch is a partial update. Nil fields keep their current value; a
// non-nil empty CategoryID removes the category scope.
type BudgetPatch struct {
	Amount     *decimal.Decimal
	Current    *decimal.Decimal
	Name       *string
	Period     *Period
	CategoryID *string
}

// IsEmpty reports whether the patch changes nothing.
func (p BudgetPatch) IsEmpty() bool {
	return p.Amount == nil && p.Current == nil && p.Name == nil &&
		p.Period == nil && p.CategoryID == nil
}

// Validate checks each supplied field.
func (p BudgetPatch) Validate() error {
	if p.Name != nil {
		if err := validateName("budget name", *p.Name); err != nil {
			return err
		}
	}
	if p.Amount != nil {
		if err := validateAmount("amount", *p.Amount); err != nil {
			return err
		}
	}
	if p.Current != nil {
		if err := validateAmount("current", *p.Current); err != nil {
			return err
		}
	}
	if p.Period != nil && !p.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

// Apply returns b with the supplied fields replaced.
func (p BudgetPatch) Apply(b Budget) Budget {
	if p.Name != nil {
		b.Name = strings.TrimSpace(*p.Name)
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Current != nil {
		b.Current = *p.Current
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
	return b
}

// MainBudget returns the first monthly budget without a category scope.
func MainBudget(budgets []Budget) (Budget, bool) {
	for _, b := range budgets {
		if b.Period == PeriodMonthly && b.Overall() {
			return b, true
		}
	}
	return Budget{}, false
}
