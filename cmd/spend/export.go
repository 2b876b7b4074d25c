package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/config"
	"github.com/Veraticus/spend/internal/report"
	"github.com/Veraticus/spend/internal/service"
	"github.com/Veraticus/spend/internal/sheets"
	"github.com/Veraticus/spend/internal/store"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the spending report",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var spreadsheetID string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write the report to Google Sheets",
		Long: `Write the summary, category totals, monthly totals, budgets and
expenses to a Google Sheets spreadsheet, one tab each. Existing tabs are
cleared and rewritten.

Authenticate first with 'spend auth sheets', or point
sheets.service_account_path at a service account key.`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			cfg, err := config.LoadSheetsConfig()
			if err != nil {
				if errors.Is(err, common.ErrMissingConfig) {
					return common.NewUserError(
						"Google Sheets is not configured. Run 'spend auth sheets' or set sheets.service_account_path", err)
				}
				return common.NewUserError(fmt.Sprintf("Invalid Google Sheets configuration: %v", err), err)
			}
			if spreadsheetID != "" {
				cfg.SpreadsheetID = spreadsheetID
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to connect to Google Sheets: %w", err)
			}

			count, err := exportLedger(ctx, l.Store, writer, time.Now())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Exported %d expenses to Google Sheets", count)))
			return nil
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "Write to this spreadsheet instead of the configured one")

	return cmd
}

// exportLedger builds the report as of now and hands it to w. It returns the
// number of expense rows written.
func exportLedger(ctx context.Context, s *store.Store, w service.ReportWriter, now time.Time) (int, error) {
	snapshot := s.Snapshot()
	ledger := report.BuildLedger(snapshot.Expenses, snapshot.Categories, snapshot.Budgets, snapshot.Settings, now)
	if err := w.Write(ctx, ledger); err != nil {
		return 0, fmt.Errorf("failed to export report: %w", err)
	}
	return len(ledger.Expenses), nil
}
