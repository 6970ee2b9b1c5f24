package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/xYup1terx/routine-builder/internal/cli/formatter"
	"github.com/xYup1terx/routine-builder/internal/domain"
)

func newSelectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Manage the products selected for your routine",
	}

	cmd.AddCommand(
		newSelectAddCmd(app),
		newSelectRemoveCmd(app),
		newSelectListCmd(app),
		newSelectClearCmd(app),
	)

	return cmd
}

func newSelectAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <number|name>",
		Short: "Toggle a product in or out of the selection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Catalog.Products(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			product, err := resolveProduct(products, strings.Join(args, " "))
			if err != nil {
				return err
			}

			sel := app.Controller.Selection()
			added := sel.Toggle(product)
			if err := sel.Persist(cmd.Context()); err != nil {
				return fmt.Errorf("saving selection: %w", err)
			}

			if added {
				fmt.Fprintf(app.Out, "Added %s\n", formatter.Bold(product.Name))
			} else {
				fmt.Fprintf(app.Out, "Removed %s\n", formatter.Bold(product.Name))
			}
			return nil
		},
	}
}

func newSelectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove a product from the selection by its position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("expected a selection number, got %q", args[0])
			}

			sel := app.Controller.Selection()
			items := sel.Items()
			if n < 1 || n > len(items) {
				return fmt.Errorf("no selected product numbered %d", n)
			}
			removed := items[n-1]

			if err := sel.Remove(n - 1); err != nil {
				return err
			}
			if err := sel.Persist(cmd.Context()); err != nil {
				return fmt.Errorf("saving selection: %w", err)
			}

			fmt.Fprintf(app.Out, "Removed %s\n", formatter.Bold(removed.Name))
			return nil
		},
	}
}

func newSelectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the selected products",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.Out, formatter.FormatSelection(app.Controller.Selection().Items()))
			return nil
		},
	}
}

func newSelectClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all selected products",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := app.Controller.Selection()
			if sel.Len() == 0 {
				fmt.Fprintln(app.Out, formatter.Dim("Nothing to clear."))
				return nil
			}

			if !yes && isatty.IsTerminal(os.Stdin.Fd()) {
				confirmed := false
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title(fmt.Sprintf("Clear all %d selected products?", sel.Len())).
							Affirmative("Yes").
							Negative("No").
							Value(&confirmed),
					),
				).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(app.Out, formatter.Dim("Kept the selection."))
					return nil
				}
			}

			sel.Clear()
			if err := sel.Persist(cmd.Context()); err != nil {
				return fmt.Errorf("saving selection: %w", err)
			}
			fmt.Fprintln(app.Out, "Selection cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

// resolveProduct maps a catalog number or a (partial) product name to a
// catalog entry. A numeric argument is 1-based into the full catalog
// ordering; otherwise an exact name match wins, then a unique
// substring match.
func resolveProduct(products []domain.Product, arg string) (domain.Product, error) {
	arg = strings.TrimSpace(arg)

	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(products) {
			return domain.Product{}, fmt.Errorf("no product numbered %d in the catalog", n)
		}
		return products[n-1], nil
	}

	lower := strings.ToLower(arg)
	var matches []domain.Product
	for _, p := range products {
		if strings.ToLower(p.Name) == lower {
			return p, nil
		}
		if strings.Contains(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Product{}, fmt.Errorf("no product matching %q", arg)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Name)
		}
		return domain.Product{}, fmt.Errorf("%q matches several products: %s", arg, strings.Join(names, ", "))
	}
}
