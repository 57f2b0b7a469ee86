package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var linkDefLine = regexp.MustCompile(`(?m)^\[[^\]]+\]:\s+\S+\s*$`)

func loadNotes(cmd *cobra.Command) (*Notes, error) {
	file, _ := cmd.Flags().GetString("file")
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	notes, err := ParseNotes(content)
	if err != nil {
		return nil, fmt.Errorf("parsing changelog: %w", err)
	}
	return notes, nil
}

func printRelease(notes *Notes, rel *Release) {
	if rel.Date != "" {
		fmt.Printf("## [%s] - %s\n\n", rel.Version, rel.Date)
	} else {
		fmt.Printf("## [%s]\n\n", rel.Version)
	}

	// Link definitions at the end of the file can bleed into the last
	// release body. Drop them, then append only this release's link.
	body := rel.Notes
	body = strings.TrimSpace(linkDefLine.ReplaceAllString(body, ""))
	fmt.Print(body)

	if url, ok := notes.Links[rel.Version]; ok {
		fmt.Printf("\n\n[%s]: %s\n", rel.Version, url)
	}
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one release's notes",
	Long:  `Print the changelog section for a single version, for use as GitHub release notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		version, _ := cmd.Flags().GetString("version")
		rel := notes.Find(version)
		if rel == nil {
			return fmt.Errorf("version %s not found in changelog", version)
		}
		printRelease(notes, rel)
		return nil
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the most recent release's notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		rel := notes.Latest()
		if rel == nil {
			return fmt.Errorf("no released versions found in changelog")
		}
		printRelease(notes, rel)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all versions in the changelog",
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		for _, rel := range notes.Releases {
			if rel.Date != "" {
				fmt.Printf("%s (%s)\n", rel.Version, rel.Date)
			} else {
				fmt.Println(rel.Version)
			}
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{showCmd, latestCmd, listCmd} {
		c.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
		rootCmd.AddCommand(c)
	}
	showCmd.Flags().StringP("version", "v", "", "Version to show (with or without 'v' prefix)")
	_ = showCmd.MarkFlagRequired("version")
}
