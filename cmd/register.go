package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/earthen/shopctl/gateway"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a storefront account",
	Long: `Create a new account. The server provisions an empty cart for it.

Username and email must be unique; violations come back as field-level
validation messages.

Example:
  shopctl register --username alice --email alice@example.com --password secret`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("username", "", "desired username")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	ctx, cancel := requestContext()
	defer cancel()

	form := gateway.RegistrationForm{Username: username, Email: email, Password: password}
	if err := gw.Register(ctx, form); err != nil {
		reportAPIError(err)
		return errors.New("registration failed")
	}

	printer.Success("Account %s created", username)
	printer.Info("Run %q to sign in", fmt.Sprintf("shopctl login %s", username))
	return nil
}
