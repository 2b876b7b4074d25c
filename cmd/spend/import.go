package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/ofx"
	"github.com/Veraticus/spend/internal/report"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import expenses from bank files",
	}

	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importOFXCmd() *cobra.Command {
	var (
		category string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "ofx <file>...",
		Short: "Import debits from OFX/QFX statements",
		Long: `Import every debit in one or more OFX or QFX statements as an expense
in the given category. Deposits and refunds are skipped.`,
		Example: `  spend import ofx ~/Downloads/checking.qfx --category cat1
  spend import ofx statements/*.ofx --category cat2 --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			parser := ofx.NewParser(slog.Default())
			var (
				pending []model.NewExpense
				credits int
			)
			for _, path := range args {
				stmt, err := parseStatement(cmd, parser, path)
				if err != nil {
					return err
				}
				common.LogInfo("Parsed statement", common.Fields{
					"file":    filepath.Base(path),
					"debits":  len(stmt.Entries),
					"credits": stmt.Credits,
				})
				pending = append(pending, stmt.Expenses(category)...)
				credits += stmt.Credits
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if err := requireCategory(l.Store, category); err != nil {
				return err
			}

			currency := l.Store.Settings().Currency
			if len(pending) == 0 {
				_, _ = fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No debits found (%d credit(s) skipped).", credits)))
				return nil
			}

			if dryRun {
				rows := make([][]string, 0, len(pending))
				total := decimal.Zero
				for _, n := range pending {
					rows = append(rows, []string{n.Date.String(), n.Description, report.FormatCurrency(n.Amount, currency)})
					total = total.Add(n.Amount)
				}
				_, _ = fmt.Fprintln(out, cli.RenderTable([]string{"Date", "Description", "Amount"}, rows, 2))
				_, _ = fmt.Fprintf(out, "\nWould import %d expense(s) totalling %s (%d credit(s) skipped)\n",
					len(pending), report.FormatCurrency(total, currency), credits)
				return nil
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx = handler.HandleInterrupts(ctx, "Import", "Expenses imported so far have been saved.")
			defer handler.Stop()

			bar := progressbar.NewOptions(len(pending),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Importing expenses...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr())
				}),
			)

			imported, rejected := 0, 0
			for _, n := range pending {
				if ctx.Err() != nil {
					break
				}
				if _, err := l.Store.AddExpense(ctx, n); err != nil {
					rejected++
					common.LogWarn(err, "Skipped statement entry", common.Fields{
						"description": n.Description,
						"date":        n.Date.String(),
					})
				} else {
					imported++
				}
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}

			if handler.WasInterrupted() {
				_, _ = fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Import stopped after %d of %d expense(s)", imported, len(pending))))
				return nil
			}

			_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d expense(s), skipped %d credit(s)", imported, credits)))
			if rejected > 0 {
				_, _ = fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d statement entries were rejected; see the log for details", rejected)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id for the imported expenses")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be imported without saving")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func parseStatement(cmd *cobra.Command, parser *ofx.Parser, path string) (ofx.Statement, error) {
	f, err := os.Open(path) // #nosec G304 -- user-supplied statement path
	if err != nil {
		return ofx.Statement{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	stmt, err := parser.Parse(cmd.Context(), f)
	if err != nil {
		return ofx.Statement{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return stmt, nil
}
