package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Release notes tooling",
	Long: `Parses and checks the CHANGELOG.md kept in Keep a Changelog format.
The release pipeline uses it to extract per-version notes for GitHub releases.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
