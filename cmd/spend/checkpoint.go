package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/storage"
)

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage database checkpoints",
		Long: `Create, list, restore, and delete database checkpoints.

Checkpoints save a copy of the whole ledger before risky changes so it can
be restored later. 'spend reset' takes one automatically.`,
		Example: `  # Create a checkpoint before importing a statement
  spend checkpoint create --tag pre-march-import

  # List all checkpoints
  spend checkpoint list

  # Restore from a checkpoint
  spend checkpoint restore pre-march-import

  # Delete an old checkpoint
  spend checkpoint delete pre-march-import`,
	}

	cmd.AddCommand(createCheckpointCmd())
	cmd.AddCommand(listCheckpointsCmd())
	cmd.AddCommand(restoreCheckpointCmd())
	cmd.AddCommand(deleteCheckpointCmd())

	return cmd
}

// withCheckpoints opens the database and hands fn a checkpoint manager for it.
// Closing after a restore is a no-op since sql.DB.Close is idempotent.
func withCheckpoints(ctx context.Context, fn func(*storage.CheckpointManager) error) (err error) {
	db, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	manager, err := db.NewCheckpointManager()
	if errors.Is(err, storage.ErrCheckpointUnsupported) {
		return common.NewUserError("Checkpoints need a database file; the in-memory database cannot be checkpointed", err)
	}
	if err != nil {
		return fmt.Errorf("failed to create checkpoint manager: %w", err)
	}

	return fn(manager)
}

func explainCheckpoint(id string, err error) error {
	switch {
	case errors.Is(err, storage.ErrCheckpointNotFound):
		return common.NewUserError(fmt.Sprintf("No checkpoint named %q", id), err)
	case errors.Is(err, storage.ErrCheckpointExists):
		return common.NewUserError(fmt.Sprintf("A checkpoint named %q already exists", id), err)
	case errors.Is(err, storage.ErrInvalidTag):
		return common.NewUserError(err.Error(), err)
	default:
		return err
	}
}

func createCheckpointCmd() *cobra.Command {
	var tag string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		Long:  `Create a snapshot of the current database state.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			return withCheckpoints(ctx, func(manager *storage.CheckpointManager) error {
				info, err := manager.Create(ctx, tag, description)
				if err != nil {
					return explainCheckpoint(tag, err)
				}

				_, _ = fmt.Fprintln(out, cli.FormatSuccess(
					fmt.Sprintf("Created checkpoint %s (%s)", info.ID, formatFileSize(info.FileSize))))
				if info.Description != "" {
					_, _ = fmt.Fprintf(out, "  Description: %s\n", info.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Checkpoint tag/name (auto-generated if not provided)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the checkpoint")

	return cmd
}

func listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all checkpoints",
		Long:  `Display all available checkpoints with their metadata.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			return withCheckpoints(ctx, func(manager *storage.CheckpointManager) error {
				checkpoints, err := manager.List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list checkpoints: %w", err)
				}

				if len(checkpoints) == 0 {
					_, _ = fmt.Fprintln(out, cli.Current().Subtitle.Render("No checkpoints found."))
					return nil
				}

				now := time.Now()
				rows := make([][]string, 0, len(checkpoints))
				for _, cp := range checkpoints {
					kind := "manual"
					if cp.IsAuto {
						kind = "auto"
					}
					rows = append(rows, []string{
						cp.ID,
						formatRelativeTime(cp.CreatedAt, now),
						formatFileSize(cp.FileSize),
						fmt.Sprintf("%d", cp.Expenses),
						fmt.Sprintf("%d", cp.Categories),
						fmt.Sprintf("%d", cp.Budgets),
						kind,
					})
				}

				_, _ = fmt.Fprintln(out, cli.RenderTable(
					[]string{"Name", "Created", "Size", "Expenses", "Categories", "Budgets", "Type"},
					rows, 2, 3, 4, 5))
				return nil
			})
		},
	}
}

func restoreCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <checkpoint-id>",
		Short: "Restore database from a checkpoint",
		Long:  `Replace the current database with a checkpoint.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id := args[0]

			return withCheckpoints(ctx, func(manager *storage.CheckpointManager) error {
				info, err := manager.Info(ctx, id)
				if err != nil {
					return explainCheckpoint(id, err)
				}

				if !force {
					_, _ = fmt.Fprintln(out, cli.FormatWarning(
						fmt.Sprintf("This will replace your current ledger with checkpoint %s.", id)))
					describeCheckpoint(out, info)

					ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Continue?", false)
					if err != nil {
						return fmt.Errorf("failed to read confirmation: %w", err)
					}
					if !ok {
						_, _ = fmt.Fprintln(out, "Restore canceled.")
						return nil
					}
				}

				if err := manager.Restore(ctx, id); err != nil {
					return explainCheckpoint(id, err)
				}

				_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Restored from checkpoint %s", id)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func deleteCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <checkpoint-id>",
		Short: "Delete a checkpoint",
		Long:  `Permanently remove a checkpoint.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id := args[0]

			return withCheckpoints(ctx, func(manager *storage.CheckpointManager) error {
				info, err := manager.Info(ctx, id)
				if err != nil {
					return explainCheckpoint(id, err)
				}

				if !force {
					_, _ = fmt.Fprintln(out, cli.FormatWarning(
						fmt.Sprintf("This will permanently delete checkpoint %s.", id)))
					describeCheckpoint(out, info)

					ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Continue?", false)
					if err != nil {
						return fmt.Errorf("failed to read confirmation: %w", err)
					}
					if !ok {
						_, _ = fmt.Fprintln(out, "Deletion canceled.")
						return nil
					}
				}

				if err := manager.Delete(ctx, id); err != nil {
					return explainCheckpoint(id, err)
				}

				_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted checkpoint %s", id)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func describeCheckpoint(w io.Writer, info *storage.CheckpointInfo) {
	_, _ = fmt.Fprintf(w, "  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(w, "  Size: %s\n", formatFileSize(info.FileSize))
	if info.Description != "" {
		_, _ = fmt.Fprintf(w, "  Description: %s\n", info.Description)
	}
}

func formatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		if m := int(d.Minutes()); m != 1 {
			return fmt.Sprintf("%d minutes ago", m)
		}
		return "1 minute ago"
	case d < 24*time.Hour:
		if h := int(d.Hours()); h != 1 {
			return fmt.Sprintf("%d hours ago", h)
		}
		return "1 hour ago"
	case d < 7*24*time.Hour:
		if days := int(d.Hours() / 24); days != 1 {
			return fmt.Sprintf("%d days ago", days)
		}
		return "yesterday"
	default:
		return t.Format("2006-01-02 15:04")
	}
}
