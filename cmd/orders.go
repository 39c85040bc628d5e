package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/earthen/shopctl/internal/output"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show order history, newest first",
	Args:  cobra.NoArgs,
	RunE:  runOrders,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}

func runOrders(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	orders, err := gw.ListOrders(ctx)
	if err != nil {
		reportAPIError(err)
		return fmt.Errorf("listing orders: %w", err)
	}

	if len(orders) == 0 {
		printer.Info("No orders yet")
		return nil
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"Order", "Date", "Items", "Total", "Shipping"})
	for _, o := range orders {
		table.AddRow([]string{
			strconv.FormatInt(o.ID, 10),
			o.CreatedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(len(o.Items)),
			output.FormatPrice(o.TotalPrice),
			o.ShippingOption,
		})
	}
	table.Render()
	return nil
}
