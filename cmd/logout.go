package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long: `Remove the stored credential and reset the session to anonymous.

Logout is purely local: no request is sent and it always succeeds, even
when no session exists.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctrl.Logout()
	printer.Success("Logged out")
	return nil
}
