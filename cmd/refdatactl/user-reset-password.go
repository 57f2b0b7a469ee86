package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/poseidoncap/refdata/pkg/db"
	"github.com/poseidoncap/refdata/pkg/identity"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <username>",
	Short: "Reset a user's password",
	Long: `Reset the password for an existing user.

The new password is read from --password or prompted on stdin.

Example:
  refdatactl user reset-password admin`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]

		if err := resetPassword(cmd, username); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", username, err)
			os.Exit(1)
		}

		fmt.Printf("Password reset for %s\n", username)
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
	userResetPasswordCmd.Flags().String("password", "", "New password (prompted when omitted)")
}

func resetPassword(cmd *cobra.Command, username string) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	provider := identity.NewGormProvider(database)
	return provider.SetPassword(username, password)
}
