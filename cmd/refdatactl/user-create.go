package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/poseidoncap/refdata/pkg/db"
	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/model"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user account",
	Long: `Create a user account with the given role.

The password is read from --password or prompted on stdin. The role is
created if it does not exist yet.

Example:
  refdatactl user create admin --role admin
  refdatactl user create alice --role user --email alice@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]

		if err := createUser(cmd, username); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user %s: %v\n", username, err)
			os.Exit(1)
		}

		fmt.Printf("Created user %s\n", username)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("role", "r", "user", "Role for the new user")
	userCreateCmd.Flags().String("full-name", "", "Full name")
	userCreateCmd.Flags().String("email", "", "Email address")
	userCreateCmd.Flags().String("password", "", "Password (prompted when omitted)")
}

func createUser(cmd *cobra.Command, username string) error {
	role, _ := cmd.Flags().GetString("role")
	fullName, _ := cmd.Flags().GetString("full-name")
	email, _ := cmd.Flags().GetString("email")

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	provider := identity.NewGormProvider(database)

	if err := provider.EnsureRole(role); err != nil {
		return fmt.Errorf("failed to ensure role %q: %w", role, err)
	}

	user := model.User{
		Username: username,
		FullName: fullName,
		Email:    email,
		Role:     role,
	}
	if err := provider.CreateUser(&user, password); err != nil {
		return err
	}

	return provider.AssignRole(user.ID, role)
}
