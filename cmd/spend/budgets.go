package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/report"
	"github.com/Veraticus/spend/internal/store"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "Manage budgets",
		Long: `List, add, update, and delete budgets. A budget without a category
covers all spending; the first monthly one is the main budget.`,
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(addBudgetCmd())
	cmd.AddCommand(updateBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())
	cmd.AddCommand(refreshBudgetsCmd())

	return cmd
}

func budgetTable(s *store.Store) string {
	budgets := s.Budgets()
	categories := s.Categories()
	currency := s.Settings().Currency

	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		status := report.StatusOf(b)
		scope := "All categories"
		if !b.Overall() {
			scope = categoryLabel(categories, b.CategoryID)
		}
		rows = append(rows, []string{
			b.ID,
			b.Name,
			string(b.Period),
			scope,
			cli.ProgressBar(status.Percentage, 20, 75),
			report.FormatCurrency(b.Current, currency),
			report.FormatCurrency(b.Amount, currency),
			report.FormatCurrency(status.Remaining, currency),
		})
	}
	return cli.RenderTable(
		[]string{"ID", "Name", "Period", "Category", "Progress", "Current", "Target", "Remaining"},
		rows, 5, 6, 7)
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with their progress",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			out := cmd.OutOrStdout()
			if len(l.Store.Budgets()) == 0 {
				_, _ = fmt.Fprintln(out, cli.FormatInfo("No budgets found. Use 'spend budgets add' to create one."))
				return nil
			}
			_, _ = fmt.Fprintln(out, budgetTable(l.Store))
			return nil
		},
	}
}

func addBudgetCmd() *cobra.Command {
	var (
		amount   string
		current  string
		period   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()

			target, err := parseAmountFlag("amount", amount)
			if err != nil {
				return err
			}
			spent, err := parseAmountFlag("current", current)
			if err != nil {
				return err
			}
			p, err := model.ParsePeriod(period)
			if err != nil {
				return common.NewUserError("--period: "+err.Error(), err)
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if category != "" {
				if err := requireCategory(l.Store, category); err != nil {
					return err
				}
			}

			b, err := l.Store.AddBudget(ctx, model.NewBudget{
				Name:       args[0],
				Amount:     target,
				Current:    spent,
				Period:     p,
				CategoryID: category,
			})
			if err != nil {
				return explain("budget", "", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s budget %s: %s %s",
				b.Period, b.ID, b.Name, report.FormatCurrency(b.Amount, l.Store.Settings().Currency))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Budget target")
	cmd.Flags().StringVar(&current, "current", "0", "Amount already spent this period")
	cmd.Flags().StringVarP(&period, "period", "p", string(model.PeriodMonthly), "Period (daily, weekly, monthly, yearly)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Limit the budget to one category id")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateBudgetCmd() *cobra.Command {
	var (
		name     string
		amount   string
		current  string
		period   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a budget",
		Long: `Update a budget. Only the flags you pass are changed; --category ""
turns a category budget into an overall one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			id := args[0]
			flags := cmd.Flags()

			var patch model.BudgetPatch
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("amount") {
				var target decimal.Decimal
				if target, err = parseAmountFlag("amount", amount); err != nil {
					return err
				}
				patch.Amount = &target
			}
			if flags.Changed("current") {
				var spent decimal.Decimal
				if spent, err = parseAmountFlag("current", current); err != nil {
					return err
				}
				patch.Current = &spent
			}
			if flags.Changed("period") {
				p, err := model.ParsePeriod(period)
				if err != nil {
					return common.NewUserError("--period: "+err.Error(), err)
				}
				patch.Period = &p
			}
			if flags.Changed("category") {
				patch.CategoryID = &category
			}
			if patch.IsEmpty() {
				return common.NewUserError("Nothing to update: pass at least one field flag", common.ErrInvalidInput)
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if category != "" {
				if err := requireCategory(l.Store, category); err != nil {
					return err
				}
			}

			b, err := l.Store.UpdateBudget(ctx, id, patch)
			if err != nil {
				return explain("budget", id, err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated budget %s: %s %s",
				b.ID, b.Name, report.FormatCurrency(b.Amount, l.Store.Settings().Currency))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "New target")
	cmd.Flags().StringVar(&current, "current", "", "New accumulated amount")
	cmd.Flags().StringVarP(&period, "period", "p", "", "New period")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category id")

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a budget",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if err := l.Store.DeleteBudget(ctx, args[0]); err != nil {
				return explain("budget", args[0], err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted budget %s", args[0])))
			return nil
		},
	}
}

func refreshBudgetsCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute budget totals from expenses",
		Long: `Set each budget's current amount to the spending inside its period
(today's day, week, month or year) as of --at.`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			now := time.Now()
			if at != "" {
				day, err := parseDateFlag("at", at)
				if err != nil {
					return err
				}
				now = day.Time
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			changed, err := l.Store.RefreshBudgets(ctx, now)
			if err != nil {
				return fmt.Errorf("failed to refresh budgets: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Refreshed budgets: %d changed", changed)))
			if len(l.Store.Budgets()) > 0 {
				_, _ = fmt.Fprintln(out, budgetTable(l.Store))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Reference date as YYYY-MM-DD (default: today)")

	return cmd
}
