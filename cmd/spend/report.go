package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries of where the money went",
	}

	cmd.AddCommand(summaryReportCmd())
	cmd.AddCommand(categoriesReportCmd())
	cmd.AddCommand(monthsReportCmd())

	return cmd
}

func summaryReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Headline spending figures",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			currency := l.Store.Settings().Currency
			expenses := l.Store.Expenses()
			s := report.Summarize(expenses, l.Store.Budgets())
			money := func(label string, amount decimal.Decimal) string {
				return fmt.Sprintf("%-16s %s", label, report.FormatCurrency(amount, currency))
			}

			lines := []string{
				money("Total spent", s.TotalSpent),
				money("Monthly budget", s.MonthlyBudget),
				money("Available", s.Available),
				fmt.Sprintf("%-16s %s %.1f%% %s", "Spent", cli.ProgressBar(s.PercentSpent, 20, 75), s.PercentSpent, trendLabel(s.Trend)),
				fmt.Sprintf("%-16s %d", "Expenses", s.ExpenseCount),
			}
			if s.ExpenseCount > 0 {
				lines = append(lines,
					money("Largest", s.Largest),
					money("Smallest", s.Smallest))
			}
			if s.MainBudget != nil {
				lines = append(lines, fmt.Sprintf("%-16s %s (%s)", "Main budget", s.MainBudget.Name, s.MainBudget.Period))
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, cli.RenderBox(cli.ChartIcon+" Spending Summary", strings.Join(lines, "\n")))
			if s.OverBudget {
				_, _ = fmt.Fprintln(out, cli.FormatWarning("Spending is over the monthly budget"))
			}
			if dangling := report.Dangling(expenses, l.Store.Categories()); len(dangling) > 0 {
				_, _ = fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d expense(s) reference a deleted category", len(dangling))))
			}
			return nil
		},
	}
}

func trendLabel(t report.Trend) string {
	switch t {
	case report.TrendUp:
		return "▲ over budget"
	case report.TrendNeutral:
		return "● nearing budget"
	default:
		return "▼ on track"
	}
}

func categoriesReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Spending per category",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			currency := l.Store.Settings().Currency
			totals := report.ByCategory(l.Store.Expenses(), l.Store.Categories())
			out := cmd.OutOrStdout()
			if len(totals) == 0 {
				_, _ = fmt.Fprintln(out, cli.FormatInfo("No categorized spending yet."))
				return nil
			}

			rows := make([][]string, 0, len(totals))
			for _, t := range totals {
				rows = append(rows, []string{
					cli.Swatch(t.Color) + " " + t.CategoryName,
					report.FormatCurrency(t.Total, currency),
					fmt.Sprintf("%.1f%%", t.Percentage),
					cli.ProgressBar(t.Percentage, 20, 101),
				})
			}
			_, _ = fmt.Fprintln(out, cli.RenderTable([]string{"Category", "Total", "Share", ""}, rows, 1, 2))
			return nil
		},
	}
}

func monthsReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "Spending per month",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			currency := l.Store.Settings().Currency
			totals := report.ByMonth(l.Store.Expenses())
			out := cmd.OutOrStdout()
			if len(totals) == 0 {
				_, _ = fmt.Fprintln(out, cli.FormatInfo("No spending yet."))
				return nil
			}

			rows := make([][]string, 0, len(totals))
			for _, m := range totals {
				rows = append(rows, []string{m.String(), report.FormatCurrency(m.Total, currency)})
			}
			_, _ = fmt.Fprintln(out, cli.RenderTable([]string{"Month", "Total"}, rows, 1))
			return nil
		},
	}
}
