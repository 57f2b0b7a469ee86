package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Release is a single versioned section of the changelog.
type Release struct {
	Version string
	Date    string
	Notes   string
}

// Notes is the parsed changelog: releases in file order plus the link
// definitions collected at the bottom of the file.
type Notes struct {
	Releases []Release
	Links    map[string]string
}

// Find returns the release for version, tolerating a leading "v" on
// either side. Nil when the version is not present.
func (n *Notes) Find(version string) *Release {
	want := strings.TrimPrefix(version, "v")
	for i := range n.Releases {
		if strings.TrimPrefix(n.Releases[i].Version, "v") == want {
			return &n.Releases[i]
		}
	}
	return nil
}

// Latest returns the most recent dated release, skipping Unreleased.
func (n *Notes) Latest() *Release {
	for i := range n.Releases {
		if !strings.EqualFold(n.Releases[i].Version, "unreleased") {
			return &n.Releases[i]
		}
	}
	return nil
}

// section tracks a level-2 heading's place in the source so the raw
// markdown between headings can be sliced out afterwards.
type section struct {
	version   string
	date      string
	headStart int
	bodyStart int
}

// ParseNotes parses Keep a Changelog formatted markdown. Release bodies
// are the raw markdown between consecutive level-2 headings.
func ParseNotes(source []byte) (*Notes, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	notes := &Notes{Links: make(map[string]string)}
	for _, ref := range ctx.References() {
		notes.Links[string(ref.Label())] = string(ref.Destination())
	}

	var sections []section
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := splitReleaseHeading(headingText(heading, source))
		sec := section{version: version, date: date}
		if lines := heading.Lines(); lines.Len() > 0 {
			sec.headStart = lines.At(0).Start
			sec.bodyStart = lines.At(lines.Len() - 1).Stop
		}
		sections = append(sections, sec)
		return ast.WalkContinue, nil
	})

	for i, sec := range sections {
		end := len(source)
		if i+1 < len(sections) {
			end = sections[i+1].headStart
		}
		body := ""
		if sec.bodyStart < end {
			body = strings.TrimSpace(string(source[sec.bodyStart:end]))
		}
		notes.Releases = append(notes.Releases, Release{
			Version: sec.version,
			Date:    sec.date,
			Notes:   body,
		})
	}

	return notes, nil
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if tn, ok := child.(*ast.Text); ok {
				buf.Write(tn.Segment.Value(source))
				continue
			}
			walk(child)
		}
	}
	walk(node)
	return buf.String()
}

// splitReleaseHeading turns "[1.2.0] - 2026-03-01" (or the bare
// "1.2.0 - 2026-03-01" form) into its version and date parts.
func splitReleaseHeading(heading string) (version, date string) {
	heading = strings.TrimSpace(heading)
	heading = strings.TrimPrefix(heading, "[")

	if idx := strings.Index(heading, "]"); idx != -1 {
		version = heading[:idx]
		rest := strings.TrimSpace(heading[idx+1:])
		rest = strings.TrimPrefix(rest, "-")
		date = strings.TrimSpace(rest)
		return version, date
	}

	if idx := strings.Index(heading, " - "); idx != -1 {
		return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+3:])
	}
	return heading, ""
}
