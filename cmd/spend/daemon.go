package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/schedule"
)

// How often the daemon retries saves that failed.
const flushInterval = 30 * time.Second

func daemonCmd() *cobra.Command {
	var timezone string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Keep budget progress current in the background",
		Long: `Run in the foreground and refresh budget progress whenever a daily,
weekly, monthly or yearly period rolls over, plus every --interval. Stop it
with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			interval := viper.GetDuration("daemon.refresh_interval")
			if interval < 0 {
				return common.NewUserError(fmt.Sprintf("--interval must not be negative, got %s", interval), nil)
			}

			loc := time.Local
			if timezone != "" {
				if loc, err = time.LoadLocation(timezone); err != nil {
					return common.NewUserError(fmt.Sprintf("Unknown time zone %q", timezone), err)
				}
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			logger := slog.Default()
			scheduler := schedule.New(l.Store, schedule.WithLocation(loc), schedule.WithLogger(logger))
			if err := scheduler.Register(ctx, interval); err != nil {
				return err
			}

			logger.Info("Starting budget daemon",
				"database", l.DB.Path(),
				"interval", interval,
				"timezone", loc.String())

			if changed, err := scheduler.RefreshNow(ctx); err != nil {
				common.LogError(err, "Initial refresh failed", common.Fields{"timezone": loc.String()})
			} else {
				logger.Info("Initial refresh complete", "changed", changed)
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return scheduler.Run(gctx)
			})
			g.Go(func() error {
				return flushLoop(gctx, l, flushInterval)
			})

			err = g.Wait()
			logger.Info("Budget daemon stopped", "refreshes", scheduler.Runs())
			return err
		},
	}

	cmd.Flags().Duration("interval", time.Hour, "Refresh every interval as well as at period boundaries (0 disables)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "Time zone for period boundaries (default: local)")
	_ = viper.BindPFlag("daemon.refresh_interval", cmd.Flags().Lookup("interval"))

	return cmd
}

// flushLoop retries failed saves until ctx is done.
func flushLoop(ctx context.Context, l *ledger, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !l.Store.Dirty() {
				continue
			}
			if err := l.Store.Flush(ctx); err != nil {
				common.LogWarn(err, "Retrying save failed", common.Fields{"next_attempt": every.String()})
			}
		}
	}
}
