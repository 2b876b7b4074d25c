package model

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Expense is a single recorded spending event.
type Expense struct {
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryId"`
	Recurring   bool            `json:"isRecurring,omitempty"`
}

// NewExpense holds the fields of an expense before an id is assigned.
type NewExpense struct {
	Date        Date
	Amount      decimal.Decimal
	Description string
	CategoryID  string
	Recurring   bool
}

// Validate checks every field of the new expense.
func (n NewExpense) Validate() error {
	if err := validateAmount("amount", n.Amount); err != nil {
		return err
	}
	if err := validateDescription(n.Description); err != nil {
		return err
	}
	if strings.TrimSpace(n.CategoryID) == "" {
		return ErrMissingCategory
	}
	return n.Date.Validate()
}

// WithID returns the stored form of the expense.
func (n NewExpense) WithID(id string) Expense {
	return Expense{
		ID:          id,
		Amount:      n.Amount,
		Description: strings.TrimSpace(n.Description),
		CategoryID:  n.CategoryID,
		Date:        n.Date,
		Recurring:   n.Recurring,
	}
}

// ExpensePatch is a partial update. Nil fields keep their current value.
type ExpensePatch struct {
	Amount      *decimal.Decimal
	Description *string
	CategoryID  *string
	Date        *Date
	Recurring   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Amount == nil && p.Description == nil && p.CategoryID == nil &&
		p.Date == nil && p.Recurring == nil
}

// Validate checks each supplied field.
func (p ExpensePatch) Validate() error {
	if p.Amount != nil {
		if err := validateAmount("amount", *p.Amount); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.CategoryID != nil && strings.TrimSpace(*p.CategoryID) == "" {
		return ErrMissingCategory
	}
	if p.Date != nil {
		if err := p.Date.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns e with the supplied fields replaced. The id never changes.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = strings.TrimSpace(*p.Description)
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Recurring != nil {
		e.Recurring = *p.Recurring
	}
	return e
}

func validateDescription(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return fmt.Errorf("%w (max %d characters)", ErrDescriptionTooLong, MaxDescriptionLength)
	}
	return nil
}
