package cmd

import (
	"github.com/spf13/cobra"

	"github.com/earthen/shopctl/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Show the identity decoded from the stored credential and the cart
badge count. Works offline except for the badge refresh.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if ctrl.State() == session.StateAnonymous {
		printer.Plain("anonymous")
		return nil
	}

	ctx, cancel := requestContext()
	defer cancel()
	ctrl.RefreshCartSummary(ctx)

	ident := ctrl.Identity()
	printer.Plain("user:  %s (id %d)", ident.Username, ident.UserID)
	if ident.Email != "" {
		printer.Plain("email: %s", ident.Email)
	}
	printer.Plain("cart:  %d item(s)", ctrl.CartCount())
	return nil
}
