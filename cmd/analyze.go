package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shipit-cli/shipit/internal/classify"
	"github.com/shipit-cli/shipit/internal/git"
	"github.com/shipit-cli/shipit/internal/models"
	"github.com/shipit-cli/shipit/internal/output"
	"github.com/shipit-cli/shipit/internal/report"
)

var (
	analyzeFormat string
	analyzeLog    string
	analyzeSave   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [base [head]]",
	Short: "Classify the changes between two refs",
	Long: `Classify the changes between two refs by severity and impact.

Base defaults to the configured base_branch (or origin's default branch)
and head defaults to HEAD. With --format markdown the full pull request
description is printed; --log appends that markdown to a file.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var base, head string
		if len(args) > 0 {
			base = args[0]
		}
		if len(args) > 1 {
			head = args[1]
		}
		return analyzeRun(base, head)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "Output format: table, markdown, json")
	analyzeCmd.Flags().StringVar(&analyzeLog, "log", "", "Append the markdown description to this file")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Record this analysis in the history database")
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeRun(base, head string) error {
	gc := git.NewClient()

	cs, err := gatherChangeSet(gc, ".", base, head)
	if err != nil {
		return err
	}
	if cs.isEmpty() {
		ui.Info("No changes between %s and %s; nothing to analyze.", cs.Base, cs.Head)
		return nil
	}

	c := classify.Classify(classify.Input{
		Diff:    cs.Diff,
		Commits: cs.commitText(),
		Stat:    cs.Stat,
	})

	if analyzeSave {
		if err := saveAnalysis(cs, c, ""); err != nil {
			return err
		}
		ui.VerboseLog("Recorded analysis for %s", cs.Branch)
	}

	switch analyzeFormat {
	case "table":
		return printClassification(cs, c)
	case "markdown":
		sink, cleanup, err := openAnalysisLog(analyzeLog)
		if err != nil {
			return err
		}
		defer cleanup()
		return report.Write(ui.Out, sink, cs.Commits, cs.Stat, c)
	case "json":
		enc := json.NewEncoder(ui.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	default:
		return fmt.Errorf("unknown format: %s (use: table, markdown, json)", analyzeFormat)
	}
}

// printClassification renders the terminal view of a classification.
func printClassification(cs *changeSet, c *models.Classification) error {
	ui.Info("%s..%s on %s", cs.Base, cs.Head, output.Cyan(cs.Branch))
	fmt.Fprintf(ui.Out, "\nSeverity: %s\n", output.SeverityColor(c.Severity))
	fmt.Fprintf(ui.Out, "Reasoning: %s\n\n", c.Reasoning)

	table := ui.Table([]string{"Metric", "Value"})
	_ = table.Append([]string{"Lines changed", fmt.Sprintf("%d", c.Metrics.LinesChanged)})
	_ = table.Append([]string{"Files changed", fmt.Sprintf("%d", c.Metrics.FilesChanged)})
	_ = table.Append([]string{"Insertions", fmt.Sprintf("%d", c.Metrics.Insertions)})
	_ = table.Append([]string{"Deletions", fmt.Sprintf("%d", c.Metrics.Deletions)})
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "\nImpact: %s\n", strings.Join(c.ImpactAreas, ", "))
	fmt.Fprintln(ui.Out, "\nRisks:")
	for _, risk := range c.Risks {
		fmt.Fprintf(ui.Out, "  - %s\n", risk)
	}
	return nil
}

// openAnalysisLog opens the append-only markdown sink. Precedence: explicit
// flag, then the analysis.log_file config key. A nil writer means no sink.
func openAnalysisLog(flagValue string) (io.Writer, func(), error) {
	path := flagValue
	if path == "" {
		path = viper.GetString("analysis.log_file")
	}
	if path == "" {
		return nil, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open analysis log: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// lastAnalysisID holds the most recently saved record's ID so pr create can
// attach the PR URL after gh returns.
var lastAnalysisID string

// saveAnalysis records a classification in the history database.
func saveAnalysis(cs *changeSet, c *models.Classification, prURL string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	rec := &models.AnalysisRecord{
		Branch:       cs.Branch,
		BaseRef:      cs.Base,
		Severity:     c.Severity,
		Reasoning:    c.Reasoning,
		Insertions:   c.Metrics.Insertions,
		Deletions:    c.Metrics.Deletions,
		LinesChanged: c.Metrics.LinesChanged,
		FilesChanged: c.Metrics.FilesChanged,
		PRURL:        prURL,
	}
	if err := s.SaveAnalysis(context.Background(), rec); err != nil {
		return err
	}
	lastAnalysisID = rec.ID
	return nil
}
