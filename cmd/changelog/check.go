package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// Problem is one finding from a changelog check. Line 0 means the
// finding applies to the file as a whole.
type Problem struct {
	Line    int
	Message string
}

// Report collects check findings.
type Report struct {
	Problems []Problem
}

func (r *Report) add(line int, format string, args ...interface{}) {
	r.Problems = append(r.Problems, Problem{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

var (
	isoDate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	semver     = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	changeKind = map[string]bool{
		"Added":      true,
		"Changed":    true,
		"Deprecated": true,
		"Removed":    true,
		"Fixed":      true,
		"Security":   true,
	}
)

// Check verifies a changelog against the Keep a Changelog conventions
// the release pipeline relies on.
func Check(source []byte) *Report {
	report := &Report{}

	hasTitle := false
	hasUnreleased := false
	var versions []string

	for i, raw := range strings.Split(string(source), "\n") {
		line := strings.TrimSpace(raw)
		num := i + 1

		switch {
		case strings.HasPrefix(line, "# "):
			hasTitle = true
			if !strings.Contains(strings.ToLower(line), "changelog") {
				report.add(num, "Title should contain 'Changelog'")
			}

		case strings.HasPrefix(line, "## ["):
			end := strings.Index(line, "]")
			if end <= 4 {
				continue
			}
			version := line[4:end]
			if strings.EqualFold(version, "unreleased") {
				hasUnreleased = true
				continue
			}
			versions = append(versions, version)
			if !semver.MatchString(version) {
				report.add(num, "Version '%s' should follow semantic versioning (X.Y.Z)", version)
			}
			if _, date, ok := strings.Cut(line[end+1:], " - "); ok {
				if !isoDate.MatchString(strings.TrimSpace(date)) {
					report.add(num, "Date '%s' should be in ISO 8601 format (YYYY-MM-DD)", strings.TrimSpace(date))
				}
			} else {
				report.add(num, "Version '%s' is missing a release date", version)
			}

		case strings.HasPrefix(line, "### "):
			kind := strings.TrimPrefix(line, "### ")
			if !changeKind[kind] {
				report.add(num, "Invalid change type '%s'. Valid types: Added, Changed, Deprecated, Removed, Fixed, Security", kind)
			}
		}
	}

	if !hasTitle {
		report.add(0, "Missing changelog title (# Changelog)")
	}
	if !hasUnreleased {
		report.add(0, "Missing [Unreleased] section")
	}

	if notes, err := ParseNotes(source); err == nil {
		for _, version := range versions {
			if _, ok := notes.Links[version]; !ok {
				report.add(0, "Missing link definition for version [%s]", version)
			}
		}
		if hasUnreleased {
			if _, ok := notes.Links["Unreleased"]; !ok {
				report.add(0, "Missing link definition for [Unreleased]")
			}
		}
	}

	return report
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the changelog follows Keep a Changelog conventions",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		report := Check(content)
		if report.OK() {
			fmt.Println("changelog ok")
			return nil
		}

		fmt.Printf("Found %d issue(s):\n\n", len(report.Problems))
		for _, p := range report.Problems {
			if p.Line > 0 {
				fmt.Printf("  Line %d: %s\n", p.Line, p.Message)
			} else {
				fmt.Printf("  %s\n", p.Message)
			}
		}
		os.Exit(1)
		return nil
	},
}

func init() {
	checkCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	rootCmd.AddCommand(checkCmd)
}
