package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/earthen/shopctl/gateway"
	"github.com/earthen/shopctl/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a session and store overview",
	Long: `Show the API endpoint, authentication state, cart badge and most
recent order. Cart and order history are fetched concurrently.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	printer.Plain("api:   %s", cfg.API.URL)

	if ctrl.State() == session.StateAnonymous {
		printer.Plain("state: anonymous")
		return nil
	}

	ident := ctrl.Identity()
	printer.Plain("state: authenticated as %s", ident.Username)

	ctx, cancel := requestContext()
	defer cancel()

	var orders []gateway.Order
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ctrl.RefreshCartSummary(gctx)
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = gw.ListOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		reportAPIError(err)
		return fmt.Errorf("fetching status: %w", err)
	}

	printer.Plain("cart:  %d item(s)", ctrl.CartCount())
	if len(orders) > 0 {
		last := orders[0]
		printer.Plain("last order: #%d on %s", last.ID, last.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
