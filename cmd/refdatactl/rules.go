package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage rule definitions",
	Long:  `Load rule definitions from YAML files into the database.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'rules' requires a subcommand (load, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
