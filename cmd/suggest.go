package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shipit-cli/shipit/internal/git"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <what you want to do>",
	Short: "Ask gh copilot for a git command",
	Long: `Ask gh copilot to suggest a git command for a task described in
plain language. Requires the gh-copilot extension
(gh extension install github/gh-copilot).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return suggestRun(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func suggestRun(prompt string) error {
	ghc := git.NewGitHubClient()

	out, err := ghc.CopilotSuggest(prompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(ui.Out, out)
	return nil
}
