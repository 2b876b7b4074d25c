package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spend/internal/tui"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive spending dashboard",
		Long: `Open a full-screen dashboard with the spending summary, budget
progress, category totals and recent expenses. Press r to refresh budgets
and q to quit.`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			return tui.Run(ctx, l.Store, tui.WithRecentLimit(viper.GetInt("dashboard.recent")))
		},
	}

	cmd.Flags().Int("recent", tui.DefaultRecentLimit, "Number of recent expenses to show")
	_ = viper.BindPFlag("dashboard.recent", cmd.Flags().Lookup("recent"))

	return cmd
}
