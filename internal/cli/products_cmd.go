package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xYup1terx/routine-builder/internal/catalog"
	"github.com/xYup1terx/routine-builder/internal/cli/formatter"
)

func newProductsCmd(app *App) *cobra.Command {
	var category string
	var search string
	var listCategories bool

	cmd := &cobra.Command{
		Use:   "products [number]",
		Short: "Browse the product catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Catalog.Products(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			if listCategories {
				for _, c := range catalog.Categories(products) {
					fmt.Fprintln(app.Out, c)
				}
				return nil
			}

			filtered := catalog.Filter(products, category, search)

			if len(args) == 1 {
				n, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil || n < 1 || n > len(filtered) {
					return fmt.Errorf("no product numbered %q in the current listing", args[0])
				}
				fmt.Fprintln(app.Out, formatter.FormatProductDetail(filtered[n-1]))
				return nil
			}

			names := app.Controller.Selection().Names()
			fmt.Fprint(app.Out, formatter.FormatProductList(filtered, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show products in this category")
	cmd.Flags().StringVar(&search, "search", "", "Only show products matching this term")
	cmd.Flags().BoolVar(&listCategories, "categories", false, "List the available categories")

	return cmd
}
