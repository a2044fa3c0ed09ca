// Package classify implements the heuristic change classifier: pure functions
// that turn raw diff, commit, and stat text into a severity tier, impact
// areas, and risk notes. Matching is deliberately plain case-insensitive
// substring containment, not tokenized analysis; a keyword inside an
// unrelated identifier still counts.
package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shipit-cli/shipit/internal/models"
)

// Input carries the three text blobs describing a change set. Any of them
// may be empty; an empty string behaves the same as an absent value.
type Input struct {
	Diff    string // unified diff between two refs
	Commits string // commit subjects, newline-separated
	Stat    string // git diff --stat output
}

var (
	insertionsRe   = regexp.MustCompile(`(\d+) insertion`)
	deletionsRe    = regexp.MustCompile(`(\d+) deletion`)
	filesChangedRe = regexp.MustCompile(`(\d+) files? changed`)
)

// ExtractMetrics pulls change counts out of git stat text. Each pattern is
// searched independently; a missing pattern silently yields zero. Malformed
// input never produces an error.
func ExtractMetrics(stat string) models.Metrics {
	var m models.Metrics
	if match := insertionsRe.FindStringSubmatch(stat); match != nil {
		m.Insertions, _ = strconv.Atoi(match[1])
	}
	if match := deletionsRe.FindStringSubmatch(stat); match != nil {
		m.Deletions, _ = strconv.Atoi(match[1])
	}
	if match := filesChangedRe.FindStringSubmatch(stat); match != nil {
		m.FilesChanged, _ = strconv.Atoi(match[1])
	}
	m.LinesChanged = m.Insertions + m.Deletions
	return m
}

// criticalKeywords trigger the Critical tier when present in commit subjects.
var criticalKeywords = []string{"breaking", "security", "critical", "vulnerability", "exploit"}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ClassifySeverity evaluates the tier rules as an ordered decision list:
// Critical, then High, then Medium, with Low as the fallback. The first tier
// with any matching condition wins; tiers are not cumulative, so a config
// change inside a 600-line diff is High, never Medium. The returned reasons
// name every condition that fired within the winning tier, in rule order.
func ClassifySeverity(diff, commits, stat string) (models.Severity, []string) {
	m := ExtractMetrics(stat)
	lowerDiff := strings.ToLower(diff)
	lowerCommits := strings.ToLower(commits)

	var reasons []string

	if containsAny(lowerCommits, criticalKeywords...) {
		reasons = append(reasons, "Critical keywords in commits")
	}
	if containsAny(lowerDiff, "auth", "permission", "token") {
		reasons = append(reasons, "Authentication/authorization changes detected")
	}
	if containsAny(lowerDiff, "schema", "migration", "database") {
		reasons = append(reasons, "Database schema changes detected")
	}
	if len(reasons) > 0 {
		return models.SeverityCritical, reasons
	}

	if m.LinesChanged > 500 {
		reasons = append(reasons, fmt.Sprintf("Large number of changes (%d lines)", m.LinesChanged))
	}
	if m.FilesChanged > 10 {
		reasons = append(reasons, fmt.Sprintf("Changes span many files (%d files)", m.FilesChanged))
	}
	if containsAny(lowerDiff, "export", "public") {
		reasons = append(reasons, "Public API changes detected")
	}
	if len(reasons) > 0 {
		return models.SeverityHigh, reasons
	}

	if m.LinesChanged > 100 {
		reasons = append(reasons, fmt.Sprintf("Moderate number of changes (%d lines)", m.LinesChanged))
	}
	if m.FilesChanged > 3 {
		reasons = append(reasons, fmt.Sprintf("Changes span several files (%d files)", m.FilesChanged))
	}
	if containsAny(lowerDiff, "config", ".json", ".env") {
		reasons = append(reasons, "Configuration changes detected")
	}
	if len(reasons) > 0 {
		return models.SeverityMedium, reasons
	}

	reasons = []string{
		fmt.Sprintf("Minimal changes (%d lines, %d files)", m.LinesChanged, m.FilesChanged),
		"No critical areas affected",
	}
	return models.SeverityLow, reasons
}

// impactGroups maps keyword groups to impact area labels. Declaration order
// is the output order.
var impactGroups = []struct {
	area     string
	keywords []string
}{
	{"Testing", []string{"test", "spec"}},
	{"API", []string{"api", "endpoint", "route"}},
	{"UI/UX", []string{"ui", "component", "view"}},
	{"Data layer", []string{"database", "model", "schema"}},
	{"Configuration", []string{"config", "setting", "env"}},
	{"Security", []string{"security", "auth", "permission"}},
	{"Performance", []string{"performance", "optimize", "cache"}},
	{"Documentation", []string{"doc", "readme", "comment"}},
}

// ImpactFallback is returned when no keyword group matches at all.
const ImpactFallback = "General code improvements and maintenance"

// DetectImpactAreas scans the diff and commit text for the fixed keyword
// groups. Every matching group contributes its label, in declaration order.
func DetectImpactAreas(diff, commits string) []string {
	text := strings.ToLower(diff + " " + commits)

	var areas []string
	for _, g := range impactGroups {
		if containsAny(text, g.keywords...) {
			areas = append(areas, g.area)
		}
	}
	if len(areas) == 0 {
		return []string{ImpactFallback}
	}
	return areas
}

// baseRiskNotes holds the fixed advisory notes per severity tier.
var baseRiskNotes = map[models.Severity][]string{
	models.SeverityCritical: {
		"High-priority review required before merge",
		"Extensive testing recommended across affected areas",
		"Consider a staged rollout",
	},
	models.SeverityHigh: {
		"Careful review recommended",
		"Thorough testing of modified functionality advised",
	},
	models.SeverityMedium: {
		"Standard review process should be sufficient",
		"Test the affected functionality",
	},
	models.SeverityLow: {
		"Low risk change",
		"Basic testing should be sufficient",
	},
}

// GenerateRiskNotes returns the tier's fixed notes, then appends the TODO and
// deprecation notes when the diff carries those markers. The additive notes
// are independent of the tier and always come last, in that order.
func GenerateRiskNotes(severity models.Severity, diff string) []string {
	notes := append([]string(nil), baseRiskNotes[severity]...)

	lowerDiff := strings.ToLower(diff)
	if containsAny(lowerDiff, "todo", "fixme") {
		notes = append(notes, "Contains TODO/FIXME markers - ensure these are tracked")
	}
	if strings.Contains(lowerDiff, "deprecated") {
		notes = append(notes, "Contains deprecation notices - verify downstream consumers")
	}
	return notes
}

// Classify runs the full pipeline over one change set. It is a pure function:
// identical input always yields an identical Classification.
func Classify(in Input) *models.Classification {
	severity, reasons := ClassifySeverity(in.Diff, in.Commits, in.Stat)
	return &models.Classification{
		Metrics:     ExtractMetrics(in.Stat),
		Severity:    severity,
		Reasoning:   strings.Join(reasons, "; "),
		ImpactAreas: DetectImpactAreas(in.Diff, in.Commits),
		Risks:       GenerateRiskNotes(severity, in.Diff),
	}
}
