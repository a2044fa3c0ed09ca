package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shipit-cli/shipit/internal/classify"
	"github.com/shipit-cli/shipit/internal/git"
	"github.com/shipit-cli/shipit/internal/llm"
	"github.com/shipit-cli/shipit/internal/output"
)

var (
	commitMessage string
	commitAll     bool
	commitSuggest bool
	commitPush    bool
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit staged changes with a severity hint",
	Long: `Commit staged changes. Before committing, the staged diff is
classified and its severity shown, so risky commits are visible at
the moment they are made.

With --suggest the commit message is proposed by the Anthropic API
from the staged diff (requires anthropic.api_key).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return commitRun(cmd.Context())
	},
}

func init() {
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "Commit message")
	commitCmd.Flags().BoolVarP(&commitAll, "all", "a", false, "Stage all changes before committing")
	commitCmd.Flags().BoolVar(&commitSuggest, "suggest", false, "Suggest a commit message from the staged diff")
	commitCmd.Flags().BoolVar(&commitPush, "push", false, "Push the branch after committing")
	rootCmd.AddCommand(commitCmd)
}

func commitRun(ctx context.Context) error {
	gc := git.NewClient()

	root, err := gc.RepoRoot(".")
	if err != nil {
		return fmt.Errorf("not inside a git repository: %w", err)
	}

	if commitAll {
		if dryRun {
			ui.DryRunMsg("would stage all changes")
		} else if err := gc.Add(root, "-A"); err != nil {
			return err
		}
	}

	staged, err := gc.HasStagedChanges(root)
	if err != nil {
		return err
	}
	if !staged && !dryRun {
		return fmt.Errorf("nothing staged to commit (use --all to stage everything)")
	}

	diff, err := gc.StagedDiff(root)
	if err != nil {
		return err
	}
	stat, err := gc.StagedDiffStat(root)
	if err != nil {
		return err
	}

	message := commitMessage
	if commitSuggest && message == "" {
		message, err = suggestMessage(ctx, diff)
		if err != nil {
			return err
		}
		ui.Info("Suggested message: %s", output.Cyan(message))
	}
	if message == "" {
		return fmt.Errorf("no commit message (use -m or --suggest)")
	}

	// Severity hint for what is about to be committed.
	c := classify.Classify(classify.Input{Diff: diff, Commits: message, Stat: stat})
	ui.Info("Severity: %s (%s)", output.SeverityColor(c.Severity), c.Reasoning)

	if dryRun {
		ui.DryRunMsg("would commit: %s", message)
		return nil
	}

	if err := gc.Commit(root, message); err != nil {
		return err
	}
	ui.Success("Committed: %s", message)
	warnRemainingChanges(gc, root)

	if commitPush {
		return pushRun()
	}
	return nil
}

// warnRemainingChanges flags a worktree that is still dirty after the commit,
// so partial commits are visible before a push.
func warnRemainingChanges(gc git.Client, root string) {
	dirty, err := gc.IsDirty(root)
	if err == nil && dirty {
		ui.Warning("Uncommitted changes remain in the worktree")
	}
}

func suggestMessage(ctx context.Context, diff string) (string, error) {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		return "", fmt.Errorf("anthropic.api_key not configured (required for --suggest)")
	}

	client := llm.NewClient(apiKey, viper.GetString("anthropic.model"))
	message, err := client.SuggestCommitMessage(ctx, diff)
	if err != nil {
		return "", fmt.Errorf("suggest commit message: %w", err)
	}
	return message, nil
}
