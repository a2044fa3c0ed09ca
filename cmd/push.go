package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipit-cli/shipit/internal/git"
	"github.com/shipit-cli/shipit/internal/output"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the current branch, setting upstream",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pushRun()
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func pushRun() error {
	gc := git.NewClient()

	root, err := gc.RepoRoot(".")
	if err != nil {
		return fmt.Errorf("not inside a git repository: %w", err)
	}

	branch, err := gc.CurrentBranch(root)
	if err != nil {
		return err
	}
	if branch == "" {
		return fmt.Errorf("detached HEAD; check out a branch before pushing")
	}

	if dryRun {
		ui.DryRunMsg("would push %s to origin", branch)
		return nil
	}

	if err := gc.Push(root, branch); err != nil {
		return err
	}
	ui.Success("Pushed %s", output.Cyan(branch))
	return nil
}
