package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the spend attributed to one category.
type CategoryTotal struct {
	Total        decimal.Decimal
	CategoryID   string
	CategoryName string
	Color        string
	Percentage   float64
}

// MonthlyTotal is the spend in one calendar month.
type MonthlyTotal struct {
	Total decimal.Decimal
	Label string // short month name, e.g. "May"
	Year  int
	Month time.Month
}

// String renders the month with its year, e.g. "May 2023".
func (m MonthlyTotal) String() string {
	return fmt.Sprintf("%s %d", m.Label, m.Year)
}

// BudgetProgress is how much of a category's budget ceiling has been spent.
type BudgetProgress struct {
	Spent      decimal.Decimal
	Budget     decimal.Decimal
	Percentage float64
}
