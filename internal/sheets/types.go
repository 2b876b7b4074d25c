package sheets

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/report"
)

// Tab titles, in the order they appear in the spreadsheet.
const (
	TabSummary    = "Summary"
	TabCategories = "Categories"
	TabMonths     = "Months"
	TabBudgets    = "Budgets"
	TabExpenses   = "Expenses"
)

// TabTitles lists every tab the writer maintains.
var TabTitles = []string{TabSummary, TabCategories, TabMonths, TabBudgets, TabExpenses}

// Tab holds the values written to one sheet.
type Tab struct {
	Title string
	Rows  [][]any
	// MoneyColumns are zero-based columns formatted as currency.
	MoneyColumns []int64
	// HeaderRows are frozen and set in bold.
	HeaderRows int64
	Columns    int64
}

// BuildTabs lays out a ledger as spreadsheet tabs.
func BuildTabs(l report.Ledger) []Tab {
	return []Tab{
		summaryTab(l),
		categoriesTab(l),
		monthsTab(l),
		budgetsTab(l),
		expensesTab(l),
	}
}

func summaryTab(l report.Ledger) Tab {
	s := l.Summary
	cur := l.Settings.Currency
	rows := [][]any{
		{"Spending Report", "Generated " + l.Generated.Format("Jan 2, 2006 15:04")},
		{},
		{"Total Spent", report.FormatCurrency(s.TotalSpent, cur)},
		{"Monthly Budget", report.FormatCurrency(s.MonthlyBudget, cur)},
		{"Available", report.FormatCurrency(s.Available, cur)},
		{"Percent Spent", fmt.Sprintf("%.1f%%", s.PercentSpent)},
		{"Trend", string(s.Trend)},
		{"Expenses", s.ExpenseCount},
		{"Largest Expense", report.FormatCurrency(s.Largest, cur)},
		{"Smallest Expense", report.FormatCurrency(s.Smallest, cur)},
		{"Currency", string(cur)},
	}
	if s.MainBudget != nil {
		rows = append(rows, []any{"Main Budget", s.MainBudget.Name})
	}
	if len(l.Dangling) > 0 {
		rows = append(rows, []any{"Uncategorized Expenses", len(l.Dangling)})
	}

	return Tab{
		Title:      TabSummary,
		Rows:       rows,
		HeaderRows: 1,
		Columns:    2,
	}
}

func categoriesTab(l report.Ledger) Tab {
	rows := make([][]any, 0, len(l.ByCategory)+1)
	rows = append(rows, []any{"Category", "Total", "Share", "Budget", "Budget Used"})

	for _, ct := range l.ByCategory {
		progress := report.CategoryBudgetProgress(ct.CategoryID, l.Expenses, l.Categories)
		rows = append(rows, []any{
			ct.CategoryName,
			money(ct.Total),
			fmt.Sprintf("%.1f%%", ct.Percentage),
			money(progress.Budget),
			fmt.Sprintf("%.1f%%", progress.Percentage),
		})
	}

	return Tab{
		Title:        TabCategories,
		Rows:         rows,
		MoneyColumns: []int64{1, 3},
		HeaderRows:   1,
		Columns:      5,
	}
}

func monthsTab(l report.Ledger) Tab {
	rows := make([][]any, 0, len(l.ByMonth)+1)
	rows = append(rows, []any{"Month", "Total"})
	for _, m := range l.ByMonth {
		rows = append(rows, []any{m.String(), money(m.Total)})
	}

	return Tab{
		Title:        TabMonths,
		Rows:         rows,
		MoneyColumns: []int64{1},
		HeaderRows:   1,
		Columns:      2,
	}
}

func budgetsTab(l report.Ledger) Tab {
	rows := make([][]any, 0, len(l.Budgets)+1)
	rows = append(rows, []any{"Budget", "Period", "Category", "Target", "Current", "Remaining", "Used", "Over"})

	for _, b := range l.Budgets {
		category := "All categories"
		if !b.Overall() {
			category = l.CategoryName(b.CategoryID)
		}
		status := report.StatusOf(b)
		rows = append(rows, []any{
			b.Name,
			string(b.Period),
			category,
			money(b.Amount),
			money(b.Current),
			money(status.Remaining),
			fmt.Sprintf("%.1f%%", status.Percentage),
			yesNo(status.Over),
		})
	}

	return Tab{
		Title:        TabBudgets,
		Rows:         rows,
		MoneyColumns: []int64{3, 4, 5},
		HeaderRows:   1,
		Columns:      8,
	}
}

func expensesTab(l report.Ledger) Tab {
	rows := make([][]any, 0, len(l.Expenses)+1)
	rows = append(rows, []any{"Date", "Description", "Category", "Amount", "Recurring"})

	for _, e := range l.Expenses {
		rows = append(rows, []any{
			e.Date.Format(model.DateLayout),
			e.Description,
			l.CategoryName(e.CategoryID),
			money(e.Amount),
			yesNo(e.Recurring),
		})
	}

	return Tab{
		Title:        TabExpenses,
		Rows:         rows,
		MoneyColumns: []int64{3},
		HeaderRows:   1,
		Columns:      5,
	}
}

// money converts an amount to a JSON number for the Sheets API.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
