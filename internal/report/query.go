package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/spend/internal/model"
)

// SortOrder selects how Query orders its result.
type SortOrder string

// Sort orders. The zero value sorts newest first.
const (
	SortDateDesc   SortOrder = "date-desc"
	SortDateAsc    SortOrder = "date-asc"
	SortAmountDesc SortOrder = "amount-desc"
	SortAmountAsc  SortOrder = "amount-asc"
)

// SortOrders lists every accepted sort order.
var SortOrders = []SortOrder{SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc}

// AllCategories matches every category in Query.CategoryID.
const AllCategories = "all"

// ParseSortOrder validates a sort order name. An empty name means
// SortDateDesc.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortDateDesc, nil
	}
	order := SortOrder(strings.ToLower(s))
	if !slices.Contains(SortOrders, order) {
		return "", fmt.Errorf("unknown sort order %q", s)
	}
	return order, nil
}

// Query filters and orders an expense list.
type Query struct {
	Search     string
	CategoryID string
	Sort       SortOrder
}

// Apply returns the matching expenses in the requested order. The input is
// not modified.
func (q Query) Apply(expenses []model.Expense) []model.Expense {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if search != "" && !strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		if q.CategoryID != "" && q.CategoryID != AllCategories && e.CategoryID != q.CategoryID {
			continue
		}
		out = append(out, e)
	}

	switch q.Sort {
	case SortDateAsc:
		slices.SortStableFunc(out, func(a, b model.Expense) int { return a.Date.Compare(b.Date.Time) })
	case SortAmountDesc:
		slices.SortStableFunc(out, func(a, b model.Expense) int { return b.Amount.Cmp(a.Amount) })
	case SortAmountAsc:
		slices.SortStableFunc(out, func(a, b model.Expense) int { return a.Amount.Cmp(b.Amount) })
	default:
		slices.SortStableFunc(out, byDateDesc)
	}
	return out
}

// ExpenseGroup is a run of expenses sharing a month, labelled "May 2023".
type ExpenseGroup struct {
	Label    string
	Expenses []model.Expense
}

// GroupByMonthYear groups expenses by month and year. Groups appear in the
// order their first expense is encountered, so sorting the input first
// controls the group order.
func GroupByMonthYear(expenses []model.Expense) []ExpenseGroup {
	var groups []ExpenseGroup
	index := make(map[string]int)
	for _, e := range expenses {
		label := fmt.Sprintf("%s %d", e.Date.Month(), e.Date.Year())
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, ExpenseGroup{Label: label})
		}
		groups[i].Expenses = append(groups[i].Expenses, e)
	}
	return groups
}

func byDateDesc(a, b model.Expense) int {
	return b.Date.Compare(a.Date.Time)
}
