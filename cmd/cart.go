package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/earthen/shopctl/internal/output"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and edit the shopping cart",
	Long: `Inspect and edit the shopping cart.

Every mutation re-fetches the cart afterwards so the badge count shown
by other commands stays in step with the server.`,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cart contents",
	Args:  cobra.NoArgs,
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Long: `Add a product to the cart. Adding a product that is already in the
cart increases that line's quantity instead of creating a second line.`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Change a cart line's quantity",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)

	cartAddCmd.Flags().Int("qty", 1, "quantity to add")
	cartUpdateCmd.Flags().Int("qty", 1, "new quantity for the line")
	_ = cartUpdateCmd.MarkFlagRequired("qty")
}

func runCartShow(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	cart, err := gw.GetCart(ctx)
	if err != nil {
		reportAPIError(err)
		return fmt.Errorf("fetching cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		printer.Info("Your cart is empty")
		return nil
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"Item", "Product", "Price", "Qty", "Subtotal"})
	var total float64
	for _, item := range cart.Items {
		price, _ := strconv.ParseFloat(item.Product.Price, 64)
		subtotal := price * float64(item.Quantity)
		total += subtotal

		table.AddRow([]string{
			strconv.FormatInt(item.ID, 10),
			item.Product.Name,
			output.FormatPrice(item.Product.Price),
			strconv.Itoa(item.Quantity),
			output.FormatAmount(int64(subtotal)),
		})
	}
	table.Render()
	printer.Plain("\nSubtotal: %s", output.FormatAmount(int64(total)))
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	qty, _ := cmd.Flags().GetInt("qty")

	ctx, cancel := requestContext()
	defer cancel()

	item, err := gw.AddCartItem(ctx, productID, qty)
	if err != nil {
		reportAPIError(err)
		return fmt.Errorf("adding to cart: %w", err)
	}

	count := ctrl.RefreshCartSummary(ctx)
	printer.Success("Added %s (qty %d)", item.Product.Name, item.Quantity)
	printer.Info("Cart: %d item(s)", count)
	return nil
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	qty, _ := cmd.Flags().GetInt("qty")

	ctx, cancel := requestContext()
	defer cancel()

	item, err := gw.UpdateCartItem(ctx, itemID, qty)
	if err != nil {
		reportAPIError(err)
		return fmt.Errorf("updating cart line: %w", err)
	}

	count := ctrl.RefreshCartSummary(ctx)
	printer.Success("%s now at qty %d", item.Product.Name, item.Quantity)
	printer.Info("Cart: %d item(s)", count)
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := gw.DeleteCartItem(ctx, itemID); err != nil {
		reportAPIError(err)
		return fmt.Errorf("removing cart line: %w", err)
	}

	count := ctrl.RefreshCartSummary(ctx)
	printer.Success("Removed item %d", itemID)
	printer.Info("Cart: %d item(s)", count)
	return nil
}
