package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/storage"
)

func resetCmd() *cobra.Command {
	var (
		force        bool
		noCheckpoint bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace expenses, categories and budgets with the sample ledger",
		Long: `Reset replaces every expense, category and budget with the sample
data. Settings such as currency and theme are kept. An automatic checkpoint
is taken first so the previous ledger can be restored with
'spend checkpoint restore'.`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if !force {
				snapshot := l.Store.Snapshot()
				_, _ = fmt.Fprintf(out, "This will replace %d expenses, %d categories and %d budgets with sample data.\n",
					len(snapshot.Expenses), len(snapshot.Categories), len(snapshot.Budgets))

				ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Are you sure you want to continue?", false)
				if err != nil {
					return fmt.Errorf("failed to read confirmation: %w", err)
				}
				if !ok {
					_, _ = fmt.Fprintln(out, "Reset canceled.")
					return nil
				}
			}

			if !noCheckpoint {
				manager, err := l.DB.NewCheckpointManager()
				switch {
				case errors.Is(err, storage.ErrCheckpointUnsupported):
					common.LogDebug("Skipping checkpoint for in-memory database", common.Fields{"database": l.DB.Path()})
				case err != nil:
					return fmt.Errorf("failed to create checkpoint manager: %w", err)
				default:
					info, err := manager.AutoCheckpoint(ctx, "reset")
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Saved checkpoint %s", info.ID)))
				}
			}

			if err := l.Store.ResetToSampleData(ctx); err != nil {
				return fmt.Errorf("failed to reset ledger: %w", err)
			}

			_, _ = fmt.Fprintln(out, cli.FormatSuccess("Ledger reset to sample data"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&noCheckpoint, "no-checkpoint", false, "Do not take a checkpoint first")

	return cmd
}
