package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/poseidoncap/refdata/pkg/db"
	"github.com/poseidoncap/refdata/pkg/rules"
)

// rulesLoadCmd represents the rules load command
var rulesLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load rule definitions from a YAML file",
	Long: `Load rule definitions from a YAML file.

Rules are matched by name: unknown names are created, known names have
their fields overwritten. Use --dry-run to validate without applying.

Example:
  refdatactl rules load rules.yml
  refdatactl rules load rules.yml --dry-run`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if err := loadRules(args[0], dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load rules: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rulesCmd.AddCommand(rulesLoadCmd)
	rulesLoadCmd.Flags().Bool("dry-run", false, "validate only, apply nothing")
}

func loadRules(path string, dryRun bool) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	result, err := rules.NewLoader(database).WithDryRun(dryRun).LoadFile(path)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println("Dry run, no changes applied")
	}
	fmt.Printf("Created: %d, updated: %d\n", len(result.Created), len(result.Updated))
	for _, name := range result.Created {
		fmt.Printf("  created %s\n", name)
	}
	for _, name := range result.Updated {
		fmt.Printf("  updated %s\n", name)
	}
	return nil
}
