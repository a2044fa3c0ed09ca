// Package report renders a Classification into the pull request description
// markdown. Rendering is pure formatting: no decisions, no timestamps, no
// randomness, so identical inputs always produce byte-identical output.
package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shipit-cli/shipit/internal/models"
)

// summaryLineRe matches the trailing "N file(s) changed, ..." summary that
// git appends to stat output. Anchored so a per-file line whose filename
// happens to contain "changed" is not mistaken for it.
var summaryLineRe = regexp.MustCompile(`^\d+ files? changed`)

// maxFileLines caps how many stat lines the Files Modified section shows.
const maxFileLines = 10

const trailer = "*Generated by shipit*"

// Render builds the full markdown description. commits holds one subject per
// entry; fileStat is raw `git diff --stat` output whose per-file lines (not
// the trailing summary) feed the Files Modified section.
func Render(commits []string, fileStat string, c *models.Classification) string {
	var b strings.Builder

	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf(
		"This pull request contains %d commit(s) changing %d file(s): %d insertion(s) and %d deletion(s).\n\n",
		len(commits), c.Metrics.FilesChanged, c.Metrics.Insertions, c.Metrics.Deletions,
	))

	b.WriteString(fmt.Sprintf("## Severity: %s\n\n", c.Severity))
	b.WriteString(c.Reasoning)
	b.WriteString("\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Lines changed | %d |\n", c.Metrics.LinesChanged))
	b.WriteString(fmt.Sprintf("| Files changed | %d |\n", c.Metrics.FilesChanged))
	b.WriteString(fmt.Sprintf("| Insertions | %d |\n", c.Metrics.Insertions))
	b.WriteString(fmt.Sprintf("| Deletions | %d |\n", c.Metrics.Deletions))
	b.WriteString("\n")

	b.WriteString("## Changes Made\n\n")
	if len(commits) == 0 {
		b.WriteString("No commits\n")
	} else {
		for _, subject := range commits {
			b.WriteString("- " + subject + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("## Files Modified\n\n")
	files := fileLines(fileStat)
	if len(files) == 0 {
		b.WriteString("No files\n")
	} else {
		b.WriteString("```\n")
		for _, line := range files {
			b.WriteString(line + "\n")
		}
		b.WriteString("```\n")
	}
	b.WriteString("\n")

	b.WriteString("## Impact Analysis\n\n")
	for _, area := range c.ImpactAreas {
		b.WriteString("- " + area + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Risks & Considerations\n\n")
	for _, risk := range c.Risks {
		b.WriteString("- " + risk + "\n")
	}
	b.WriteString("\n---\n")
	b.WriteString(trailer + "\n")

	return b.String()
}

// fileLines returns up to maxFileLines per-file lines from stat output,
// skipping blank lines and the "N files changed" summary.
func fileLines(fileStat string) []string {
	var lines []string
	for _, line := range strings.Split(fileStat, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || summaryLineRe.MatchString(trimmed) {
			continue
		}
		lines = append(lines, trimmed)
		if len(lines) == maxFileLines {
			break
		}
	}
	return lines
}

// Write renders the description to w. When sink is non-nil the markdown is
// also appended there (e.g. an analysis log file); a sink write failure is
// returned after the primary write succeeded.
func Write(w io.Writer, sink io.Writer, commits []string, fileStat string, c *models.Classification) error {
	body := Render(commits, fileStat, c)
	if _, err := io.WriteString(w, body); err != nil {
		return fmt.Errorf("write description: %w", err)
	}
	if sink != nil {
		if _, err := io.WriteString(sink, body); err != nil {
			return fmt.Errorf("append to analysis log: %w", err)
		}
	}
	return nil
}
