package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/report"
)

const defaultCategoryColor = "#607D8B"

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage expense categories",
		Long:    `List, add, update, and delete the categories expenses are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	cmd.AddCommand(categoryProgressCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			categories := l.Store.Categories()
			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				_, _ = fmt.Fprintln(out, cli.FormatInfo("No categories found. Use 'spend categories add' to create one."))
				return nil
			}

			currency := l.Store.Settings().Currency
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{
					c.ID,
					cli.Swatch(c.Color) + " " + cli.IconGlyph(c.Icon) + " " + c.Name,
					report.FormatCurrency(c.Budget, currency),
				})
			}
			_, _ = fmt.Fprintln(out, cli.RenderTable([]string{"ID", "Name", "Budget"}, rows, 2))
			return nil
		},
	}
}

func iconNames() string {
	names := make([]string, 0, len(model.Icons))
	for _, icon := range model.Icons {
		names = append(names, string(icon))
	}
	return strings.Join(names, ", ")
}

func parseIconFlag(value string) (model.Icon, error) {
	for _, icon := range model.Icons {
		if strings.EqualFold(string(icon), value) {
			return icon, nil
		}
	}
	return "", common.NewUserError(fmt.Sprintf("--icon: unknown icon %q (want one of %s)", value, iconNames()), model.ErrInvalidIcon)
}

func addCategoryCmd() *cobra.Command {
	var (
		color  string
		icon   string
		budget string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()

			ceiling, err := parseAmountFlag("budget", budget)
			if err != nil {
				return err
			}
			glyph, err := parseIconFlag(icon)
			if err != nil {
				return err
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			c, err := l.Store.AddCategory(ctx, model.NewCategory{
				Name:   args[0],
				Color:  color,
				Icon:   glyph,
				Budget: ceiling,
			})
			if err != nil {
				return explain("category", "", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added category %s: %s %s",
				c.ID, cli.IconGlyph(c.Icon), c.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", defaultCategoryColor, "Display color as #RRGGBB")
	cmd.Flags().StringVar(&icon, "icon", string(model.DefaultIcon), "Icon name ("+iconNames()+")")
	cmd.Flags().StringVar(&budget, "budget", "0", "Monthly spending ceiling")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name   string
		color  string
		icon   string
		budget string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a category",
		Long:  `Update a category. Only the flags you pass are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			id := args[0]
			flags := cmd.Flags()

			var patch model.CategoryPatch
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			if flags.Changed("icon") {
				glyph, err := parseIconFlag(icon)
				if err != nil {
					return err
				}
				patch.Icon = &glyph
			}
			if flags.Changed("budget") {
				var ceiling decimal.Decimal
				if ceiling, err = parseAmountFlag("budget", budget); err != nil {
					return err
				}
				patch.Budget = &ceiling
			}
			if patch.IsEmpty() {
				return common.NewUserError("Nothing to update: pass at least one field flag", common.ErrInvalidInput)
			}

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			c, err := l.Store.UpdateCategory(ctx, id, patch)
			if err != nil {
				return explain("category", id, err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated category %s: %s %s",
				c.ID, cli.IconGlyph(c.Icon), c.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color as #RRGGBB")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon name")
	cmd.Flags().StringVar(&budget, "budget", "", "New monthly spending ceiling")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Long: `Delete a category. Expenses filed under it are kept and show up as
uncategorized until they are moved to another category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			id := args[0]

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			if err := l.Store.DeleteCategory(ctx, id); err != nil {
				return explain("category", id, err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted category %s", id)))

			orphans := report.Query{CategoryID: id}.Apply(l.Store.Expenses())
			if len(orphans) > 0 {
				_, _ = fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf(
					"%d expense(s) still reference %s; move them with 'spend expenses update <id> --category <new>'",
					len(orphans), id)))
			}
			return nil
		},
	}
}

func categoryProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [id]",
		Short: "Show spending against category budgets",
		Long:  `Show how much of each category's budget ceiling has been spent, or of one category when an id is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()

			l, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger(ctx, l, &err)

			categories := l.Store.Categories()
			if len(args) == 1 {
				c, err := l.Store.Category(args[0])
				if err != nil {
					return explain("category", args[0], err)
				}
				categories = []model.Category{c}
			}

			expenses := l.Store.Expenses()
			currency := l.Store.Settings().Currency
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				progress := report.CategoryBudgetProgress(c.ID, expenses, categories)
				rows = append(rows, []string{
					cli.IconGlyph(c.Icon) + " " + c.Name,
					cli.ProgressBar(progress.Percentage, 20, 75),
					fmt.Sprintf("%.1f%%", progress.Percentage),
					report.FormatCurrency(progress.Spent, currency),
					report.FormatCurrency(progress.Budget, currency),
				})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable(
				[]string{"Category", "Progress", "Used", "Spent", "Budget"}, rows, 2, 3, 4))
			return nil
		},
	}
}
