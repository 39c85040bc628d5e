package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Authenticate against the storefront",
	Long: `Authenticate with a username (or email) and password.

On success the credential is stored locally and the cart badge is
restored from the server. A failed login leaves any existing session
untouched.

Examples:
  shopctl login alice
  shopctl login alice@example.com --password secret`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("username", "u", "", "username or email")
	loginCmd.Flags().StringP("password", "p", "", "password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	if len(args) > 0 {
		username = args[0]
	}
	if username == "" {
		return errors.New("username is required")
	}

	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := ctrl.Login(ctx, username, password); err != nil {
		reportAPIError(err)
		return fmt.Errorf("login failed: %w", err)
	}

	ident := ctrl.Identity()
	printer.Success("Logged in as %s", ident.Username)
	printer.Info("Cart: %d item(s)", ctrl.CartCount())
	return nil
}
