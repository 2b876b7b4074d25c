package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func renderSettings(s model.Settings) string {
	info := s.Currency.Info()
	return cli.RenderTable([]string{"Setting", "Value"}, [][]string{
		{"Currency", fmt.Sprintf("%s (%s, %s)", info.Code, info.Symbol, info.Name)},
		{"Theme", string(s.Theme)},
		{"Language", s.Language},
	})
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSettings(l.Store.Settings()))
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	var (
		currency string
		theme    string
		language string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long:  `Change one or more settings. Currency only changes how amounts are shown; nothing is converted.`,
		Example: `  spend settings set --currency USD
  spend settings set --theme dark --language en-GB`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			flags := cmd.Flags()

			var patch model.SettingsPatch
			if flags.Changed("currency") {
				c, err := model.ParseCurrency(currency)
				if err != nil {
					return common.NewUserError("--currency: "+err.Error(), err)
				}
				patch.Currency = &c
			}
			if flags.Changed("theme") {
				t, err := model.ParseTheme(theme)
				if err != nil {
					return common.NewUserError("--theme: "+err.Error(), err)
				}
				patch.Theme = &t
			}
			if flags.Changed("language") {
				patch.Language = &language
			}
			if patch.IsEmpty() {
				return common.NewUserError("Nothing to change: pass --currency, --theme or --language", common.ErrInvalidInput)
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			settings, err := l.Store.UpdateSettings(ctx, patch)
			if err != nil {
				return explain("settings", "", err)
			}
			cli.SetTheme(settings.Theme)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, cli.FormatSuccess("Settings updated"))
			_, _ = fmt.Fprintln(out, renderSettings(settings))
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "Currency code (MYR, USD, EUR, GBP, JPY, SGD, AUD)")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme (light, dark)")
	cmd.Flags().StringVar(&language, "language", "", "Language tag, e.g. en or en-GB")

	return cmd
}
