package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/earthen/shopctl/gateway"
	"github.com/earthen/shopctl/internal/output"
)

// shippingOption is a fixed shipping tier offered by the store.
type shippingOption struct {
	Name string
	Cost int64
}

// shippingOptions mirrors the tiers the storefront offers.
var shippingOptions = map[string]shippingOption{
	"jabodetabek":         {Name: "Jabodetabek", Cost: 10000},
	"luar_jawa":           {Name: "Luar Jabodetabek (Pulau Jawa)", Cost: 15000},
	"sumatera_bali":       {Name: "Sumatera, Bali", Cost: 30000},
	"sulawesi_kalimantan": {Name: "Sulawesi, Kalimantan", Cost: 50000},
	"papua":               {Name: "Papua dan sekitarnya", Cost: 100000},
}

const defaultPaymentMethod = "Transfer Bank"

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the cart",
	Long: `Place an order from the current cart contents. The server empties the
cart as part of the order, so the badge drops to zero afterwards.

Shipping tiers: jabodetabek, luar_jawa, sumatera_bali,
sulawesi_kalimantan, papua.

Example:
  shopctl checkout --full-name "Alice" --phone 0812000 \
    --address "Jl. Kebon 1" --city Jakarta --postal-code 10110 \
    --shipping jabodetabek`,
	Args: cobra.NoArgs,
	RunE: runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)

	checkoutCmd.Flags().String("full-name", "", "recipient full name")
	checkoutCmd.Flags().String("phone", "", "recipient phone number")
	checkoutCmd.Flags().String("address", "", "street address")
	checkoutCmd.Flags().String("city", "", "city")
	checkoutCmd.Flags().String("postal-code", "", "postal code")
	checkoutCmd.Flags().String("payment", defaultPaymentMethod, "payment method")
	checkoutCmd.Flags().String("shipping", "jabodetabek", "shipping tier")
	for _, flag := range []string{"full-name", "phone", "address", "city", "postal-code"} {
		_ = checkoutCmd.MarkFlagRequired(flag)
	}
}

func runCheckout(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	shippingKey, _ := cmd.Flags().GetString("shipping")
	shipping, ok := shippingOptions[shippingKey]
	if !ok {
		keys := make([]string, 0, len(shippingOptions))
		for k := range shippingOptions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown shipping tier %q (valid: %v)", shippingKey, keys)
	}

	fullName, _ := cmd.Flags().GetString("full-name")
	phone, _ := cmd.Flags().GetString("phone")
	address, _ := cmd.Flags().GetString("address")
	city, _ := cmd.Flags().GetString("city")
	postalCode, _ := cmd.Flags().GetString("postal-code")
	payment, _ := cmd.Flags().GetString("payment")

	form := gateway.CheckoutForm{
		FullName:       fullName,
		Phone:          phone,
		Address:        address,
		City:           city,
		PostalCode:     postalCode,
		PaymentMethod:  payment,
		ShippingOption: shipping.Name,
		ShippingCost:   shipping.Cost,
	}

	ctx, cancel := requestContext()
	defer cancel()

	order, err := gw.Checkout(ctx, form)
	if err != nil {
		reportAPIError(err)
		return fmt.Errorf("checkout: %w", err)
	}

	count := ctrl.RefreshCartSummary(ctx)
	printer.Success("Order #%d placed, total %s (incl. shipping %s)",
		order.ID, output.FormatPrice(order.TotalPrice), output.FormatAmount(shipping.Cost))
	printer.Info("Cart: %d item(s)", count)
	return nil
}
