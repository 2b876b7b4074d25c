// Package report derives summary views from expense, category and budget
// collections. Every function is pure: callers pass the collections in and
// receive fresh values back.
package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// TotalOf sums the amounts of expenses. An empty slice sums to zero.
func TotalOf(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory totals spend per category that appears in at least one
// expense. Percentages are relative to the total of all expenses, including
// those whose category does not resolve; such expenses are left out of the
// result. The result is ordered by total descending, ties keeping the order
// in which each category was first encountered.
func ByCategory(expenses []model.Expense, categories []model.Category) []model.CategoryTotal {
	grand := TotalOf(expenses)

	var totals []model.CategoryTotal
	index := make(map[string]int)
	for _, e := range expenses {
		if i, ok := index[e.CategoryID]; ok {
			totals[i].Total = totals[i].Total.Add(e.Amount)
			continue
		}
		category, ok := model.FindCategory(categories, e.CategoryID)
		if !ok {
			continue
		}
		index[e.CategoryID] = len(totals)
		totals = append(totals, model.CategoryTotal{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Color:        category.Color,
			Total:        e.Amount,
		})
	}

	for i := range totals {
		totals[i].Percentage = percent(totals[i].Total, grand)
	}

	slices.SortStableFunc(totals, func(a, b model.CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})
	return totals
}

// ByMonth totals spend per calendar month in encounter order. Months are
// keyed by year and month, so May 2023 and May 2024 stay separate buckets.
func ByMonth(expenses []model.Expense) []model.MonthlyTotal {
	type key struct {
		year  int
		month time.Month
	}

	var totals []model.MonthlyTotal
	index := make(map[key]int)
	for _, e := range expenses {
		k := key{year: e.Date.Year(), month: e.Date.Month()}
		if i, ok := index[k]; ok {
			totals[i].Total = totals[i].Total.Add(e.Amount)
			continue
		}
		index[k] = len(totals)
		totals = append(totals, model.MonthlyTotal{
			Year:  k.year,
			Month: k.month,
			Label: k.month.String()[:3],
			Total: e.Amount,
		})
	}
	return totals
}

// CategoryBudgetProgress reports how much of a category's budget ceiling the
// expenses in that category consume. An unknown category yields a zero
// value.
func CategoryBudgetProgress(categoryID string, expenses []model.Expense, categories []model.Category) model.BudgetProgress {
	category, ok := model.FindCategory(categories, categoryID)
	if !ok {
		return model.BudgetProgress{Spent: decimal.Zero, Budget: decimal.Zero}
	}

	spent := decimal.Zero
	for _, e := range expenses {
		if e.CategoryID == categoryID {
			spent = spent.Add(e.Amount)
		}
	}

	return model.BudgetProgress{
		Spent:      spent,
		Budget:     category.Budget,
		Percentage: percent(spent, category.Budget),
	}
}

// Dangling returns the expenses whose category does not resolve. These are
// the expenses ByCategory leaves out.
func Dangling(expenses []model.Expense, categories []model.Category) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if _, ok := model.FindCategory(categories, e.CategoryID); !ok {
			out = append(out, e)
		}
	}
	return out
}

// percent returns part/whole*100, or 0 when whole is zero.
func percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}
