package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/config"
	"github.com/Veraticus/spend/internal/tui"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "spend",
		Short: "💰 Personal expense tracker",
		Long: `spend: track expenses against categories and budgets, see where the
money went, and export clean reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, cfgFile)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/spend/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("db", "", "database file (default: $XDG_DATA_HOME/spend/spend.db)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))

	// Add commands
	rootCmd.AddCommand(expensesCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(budgetsCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(checkpointCmd())
	rootCmd.AddCommand(daemonCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Local .env overrides are optional.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError shows user errors verbatim and everything else with its chain.
func printError(w io.Writer, err error) {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		_, _ = fmt.Fprintln(w, cli.FormatError(userErr.UserMessage))
		return
	}
	_, _ = fmt.Fprintln(w, cli.FormatError(err.Error()))
}

func initConfig(cmd *cobra.Command, cfgFile string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
		viper.SetConfigName(config.ConfigFileName)
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("SPEND")
	viper.AutomaticEnv()

	viper.SetDefault("daemon.refresh_interval", "1h")
	viper.SetDefault("dashboard.recent", tui.DefaultRecentLimit)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := setupLogging(cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(w io.Writer) error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}

	logger, err := common.NewLogger(w, level, viper.GetString("logging.format"))
	if err != nil {
		return err
	}

	slog.SetDefault(logger)
	return nil
}

// databasePath resolves the configured database file.
func databasePath() string {
	if path := viper.GetString("database.path"); path != "" {
		return config.ExpandPath(path)
	}
	return config.DefaultDatabasePath()
}

// tokenFile is where the Sheets OAuth2 token is cached.
func tokenFile() string {
	return filepath.Join(config.ConfigDir(), "sheets-token.json")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "spend version %s\n", version)
		},
	}
}
