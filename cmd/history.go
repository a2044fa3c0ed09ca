package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipit-cli/shipit/internal/output"
)

var (
	historyLimit  int
	historyBranch string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyRun()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded analysis in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyShowRun(args[0])
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum records to show")
	historyCmd.Flags().StringVar(&historyBranch, "branch", "", "Filter by branch")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}

	records, err := s.ListAnalyses(context.Background(), historyBranch, historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		ui.Info("No analyses recorded yet. Use 'shipit analyze --save' or 'shipit pr create'.")
		return nil
	}

	table := ui.Table([]string{"ID", "When", "Branch", "Base", "Severity", "Lines", "Files", "PR"})
	for _, rec := range records {
		_ = table.Append([]string{
			rec.ID,
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			output.Cyan(rec.Branch),
			rec.BaseRef,
			output.SeverityColor(rec.Severity),
			fmt.Sprintf("%d", rec.LinesChanged),
			fmt.Sprintf("%d", rec.FilesChanged),
			rec.PRURL,
		})
	}
	return table.Render()
}

func historyShowRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	rec, err := s.GetAnalysis(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Analysis %s\n\n", rec.ID)
	fmt.Fprintf(ui.Out, "Branch:    %s (base %s)\n", output.Cyan(rec.Branch), rec.BaseRef)
	fmt.Fprintf(ui.Out, "When:      %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(ui.Out, "Severity:  %s\n", output.SeverityColor(rec.Severity))
	fmt.Fprintf(ui.Out, "Reasoning: %s\n", rec.Reasoning)
	fmt.Fprintf(ui.Out, "Changes:   %d lines across %d files (+%d/-%d)\n",
		rec.LinesChanged, rec.FilesChanged, rec.Insertions, rec.Deletions)
	if rec.PRURL != "" {
		fmt.Fprintf(ui.Out, "PR:        %s\n", rec.PRURL)
	}
	return nil
}
