package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipit-cli/shipit/internal/git"
	"github.com/shipit-cli/shipit/internal/workflow"
)

var workflowForce bool

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Manage the PR analysis GitHub Actions workflow",
}

var workflowInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the PR analysis workflow to .github/workflows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return workflowInitRun()
	},
}

func init() {
	workflowInitCmd.Flags().BoolVar(&workflowForce, "force", false, "Overwrite an existing workflow file")
	workflowCmd.AddCommand(workflowInitCmd)
	rootCmd.AddCommand(workflowCmd)
}

func workflowInitRun() error {
	gc := git.NewClient()

	root, err := gc.RepoRoot(".")
	if err != nil {
		return fmt.Errorf("not inside a git repository: %w", err)
	}

	base, err := resolveBase(gc, root, "")
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("would write %s targeting %s", workflow.DefaultFileName, base)
		return nil
	}

	path, err := workflow.WriteFile(root, base, workflowForce)
	if err != nil {
		return err
	}
	ui.Success("Wrote %s", path)
	return nil
}
