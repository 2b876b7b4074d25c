package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/report"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense", "exp"},
		Short:   "Manage expenses",
		Long:    `List, add, update, and delete recorded expenses.`,
		Example: `  # Record a coffee
  spend expenses add --amount 4.50 --description "Flat white" --category cat8

  # Newest restaurant spending
  spend expenses list --search restaurant --category cat1`,
	}

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var (
		search   string
		category string
		sortBy   string
		limit    int
		byMonth  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long:  `Display expenses, optionally filtered by description and category.`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			order, err := report.ParseSortOrder(sortBy)
			if err != nil {
				return common.NewUserError(err.Error(), err)
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			categories := l.Store.Categories()
			settings := l.Store.Settings()
			expenses := report.Query{Search: search, CategoryID: category, Sort: order}.Apply(l.Store.Expenses())
			if limit > 0 && len(expenses) > limit {
				expenses = expenses[:limit]
			}

			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				_, _ = fmt.Fprintln(out, cli.FormatInfo("No expenses found. Use 'spend expenses add' to record one."))
				return nil
			}

			if byMonth {
				for _, group := range report.GroupByMonthYear(expenses) {
					_, _ = fmt.Fprintln(out, cli.Current().Bold.Render(group.Label))
					_, _ = fmt.Fprintln(out, expenseTable(group.Expenses, categories, settings.Currency))
					_, _ = fmt.Fprintln(out)
				}
			} else {
				_, _ = fmt.Fprintln(out, expenseTable(expenses, categories, settings.Currency))
			}

			_, _ = fmt.Fprintf(out, "\n%d expense(s), total %s\n",
				len(expenses), report.FormatCurrency(report.TotalOf(expenses), settings.Currency))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only descriptions containing this text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category id ('all' for every category)")
	cmd.Flags().StringVar(&sortBy, "sort", string(report.SortDateDesc), "Sort order (date-desc, date-asc, amount-desc, amount-asc)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many expenses")
	cmd.Flags().BoolVar(&byMonth, "by-month", false, "Group expenses by month")

	return cmd
}

func expenseTable(expenses []model.Expense, categories []model.Category, currency model.Currency) string {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.ID,
			e.Date.String(),
			e.Description,
			categoryLabel(categories, e.CategoryID),
			report.FormatCurrency(e.Amount, currency),
			recurringMark(e.Recurring),
		})
	}
	return cli.RenderTable([]string{"ID", "Date", "Description", "Category", "Amount", "Recurring"}, rows, 4)
}

// categoryLabel shows a category with its glyph. Ids that no longer resolve
// render in brackets.
func categoryLabel(categories []model.Category, id string) string {
	c, ok := model.FindCategory(categories, id)
	if !ok {
		return "[" + id + "]"
	}
	return cli.IconGlyph(c.Icon) + " " + c.Name
}

func recurringMark(recurring bool) string {
	if recurring {
		return "↻"
	}
	return ""
}

func addExpenseCmd() *cobra.Command {
	var (
		amount      string
		description string
		category    string
		date        string
		recurring   bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			value, err := parseAmountFlag("amount", amount)
			if err != nil {
				return err
			}
			day := model.Today()
			if date != "" {
				if day, err = parseDateFlag("date", date); err != nil {
					return err
				}
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if err := requireCategory(l.Store, category); err != nil {
				return err
			}

			e, err := l.Store.AddExpense(ctx, model.NewExpense{
				Amount:      value,
				Description: description,
				CategoryID:  category,
				Date:        day,
				Recurring:   recurring,
			})
			if err != nil {
				return explain("expense", "", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added expense %s: %s %s on %s",
				e.ID, e.Description, report.FormatCurrency(e.Amount, l.Store.Settings().Currency), e.Date)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount spent, e.g. 12.50")
	cmd.Flags().StringVarP(&description, "description", "d", "", "What the money was spent on")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id")
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Mark as a recurring expense")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func updateExpenseCmd() *cobra.Command {
	var (
		amount      string
		description string
		category    string
		date        string
		recurring   bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an expense",
		Long:  `Update an expense. Only the flags you pass are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			id := args[0]
			flags := cmd.Flags()

			var patch model.ExpensePatch
			if flags.Changed("amount") {
				value, err := parseAmountFlag("amount", amount)
				if err != nil {
					return err
				}
				patch.Amount = &value
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("category") {
				patch.CategoryID = &category
			}
			if flags.Changed("date") {
				day, err := parseDateFlag("date", date)
				if err != nil {
					return err
				}
				patch.Date = &day
			}
			if flags.Changed("recurring") {
				patch.Recurring = &recurring
			}
			if patch.IsEmpty() {
				return common.NewUserError("Nothing to update: pass at least one field flag", common.ErrInvalidInput)
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if patch.CategoryID != nil {
				if err := requireCategory(l.Store, category); err != nil {
					return err
				}
			}

			e, err := l.Store.UpdateExpense(ctx, id, patch)
			if err != nil {
				return explain("expense", id, err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated expense %s: %s %s on %s",
				e.ID, e.Description, report.FormatCurrency(e.Amount, l.Store.Settings().Currency), e.Date)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "New amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category id")
	cmd.Flags().StringVar(&date, "date", "", "New date as YYYY-MM-DD")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Set or clear (--recurring=false) the recurring flag")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if err := l.Store.DeleteExpense(ctx, args[0]); err != nil {
				return explain("expense", args[0], err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted expense %s", args[0])))
			return nil
		},
	}
}
