package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/earthen/shopctl/internal/output"
	"github.com/earthen/shopctl/internal/utils"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	Args:  cobra.NoArgs,
	RunE:  runProductsList,
}

var productsShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one product in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsShow,
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsShowCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext()
	defer cancel()

	products, err := gw.ListProducts(ctx)
	if err != nil {
		reportAPIError(err)
		return fmt.Errorf("listing products: %w", err)
	}

	if len(products) == 0 {
		printer.Info("The catalog is empty")
		return nil
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"ID", "Name", "Price"})
	for _, p := range products {
		table.AddRow([]string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			output.FormatPrice(p.Price),
		})
	}
	table.Render()
	return nil
}

func runProductsShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	ctx, cancel := requestContext()
	defer cancel()

	product, err := gw.GetProduct(ctx, id)
	if err != nil {
		reportAPIError(err)
		return fmt.Errorf("fetching product %d: %w", id, err)
	}

	printer.Plain("%s", product.Name)
	printer.Plain("price: %s", output.FormatPrice(product.Price))
	if image := utils.Value(product.Image); image != "" {
		printer.Plain("image: %s", image)
	}
	if product.Description != "" {
		printer.Plain("\n%s", product.Description)
	}
	return nil
}
