package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shipit-cli/shipit/internal/classify"
	"github.com/shipit-cli/shipit/internal/git"
	"github.com/shipit-cli/shipit/internal/models"
	"github.com/shipit-cli/shipit/internal/output"
	"github.com/shipit-cli/shipit/internal/report"
)

var (
	prTitle     string
	prBase      string
	prDraft     bool
	prReviewers []string
	prLog       string
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Create, update, or comment on pull requests",
	Long: `Manage pull requests via the gh CLI. The pull request body is the
generated change analysis for the current branch against its base.`,
}

var prCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a pull request with a generated description",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prCreateRun()
	},
}

var prUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Regenerate and replace the pull request body",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prUpdateRun()
	},
}

var prCommentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Post the current analysis as a pull request comment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return prCommentRun()
	},
}

func init() {
	prCreateCmd.Flags().StringVarP(&prTitle, "title", "t", "", "PR title (default: last commit subject)")
	prCreateCmd.Flags().StringVar(&prBase, "base", "", "Base branch (default: configured base_branch or origin HEAD)")
	prCreateCmd.Flags().BoolVar(&prDraft, "draft", false, "Open as draft")
	prCreateCmd.Flags().StringSliceVar(&prReviewers, "reviewer", nil, "Request review from a user (repeatable)")
	prCreateCmd.Flags().StringVar(&prLog, "log", "", "Append the generated description to this file")

	prUpdateCmd.Flags().StringVar(&prBase, "base", "", "Base branch (default: configured base_branch or origin HEAD)")
	prCommentCmd.Flags().StringVar(&prBase, "base", "", "Base branch (default: configured base_branch or origin HEAD)")

	prCmd.AddCommand(prCreateCmd)
	prCmd.AddCommand(prUpdateCmd)
	prCmd.AddCommand(prCommentCmd)
	rootCmd.AddCommand(prCmd)
}

// defaultPRTitle falls back to the newest commit subject, then the branch name.
func defaultPRTitle(cs *changeSet) string {
	if len(cs.Commits) > 0 {
		return cs.Commits[len(cs.Commits)-1]
	}
	return cs.Branch
}

// repoSlug resolves owner/repo from the origin remote. Empty when the repo
// has no remote or the URL is not a recognizable GitHub remote.
func repoSlug(gc git.Client, root string) string {
	remote, err := gc.RemoteURL(root)
	if err != nil || remote == "" {
		return ""
	}
	owner, repo, err := git.ExtractOwnerRepo(remote)
	if err != nil {
		return ""
	}
	return owner + "/" + repo
}

// currentPR confirms an open pull request exists for the branch before the
// body is touched.
func currentPR(ghc git.GitHubClient, path, branch string) (*git.PullRequest, error) {
	pr, err := ghc.ViewPR(path)
	if err != nil {
		return nil, fmt.Errorf("no pull request found for %s (open one with 'shipit pr create'): %w", branch, err)
	}
	return pr, nil
}

// buildDescription gathers the change set and renders the PR body. A nil
// change set with no error means there is nothing to describe.
func buildDescription(gc git.Client) (*changeSet, *models.Classification, string, error) {
	cs, err := gatherChangeSet(gc, ".", prBase, "")
	if err != nil {
		return nil, nil, "", err
	}
	if cs.isEmpty() {
		return nil, nil, "", nil
	}

	c := classify.Classify(classify.Input{
		Diff:    cs.Diff,
		Commits: cs.commitText(),
		Stat:    cs.Stat,
	})
	return cs, c, report.Render(cs.Commits, cs.Stat, c), nil
}

func prCreateRun() error {
	gc := git.NewClient()
	ghc := git.NewGitHubClient()

	cs, c, body, err := buildDescription(gc)
	if err != nil {
		return err
	}
	if cs == nil {
		ui.Info("No changes against the base branch; nothing to open a PR for.")
		return nil
	}

	title := prTitle
	if title == "" {
		title = defaultPRTitle(cs)
	}

	draft := prDraft || viper.GetBool("pr.draft")
	reviewers := prReviewers
	if len(reviewers) == 0 {
		reviewers = viper.GetStringSlice("pr.reviewers")
	}

	// openAnalysisLog falls back to the analysis.log_file config key.
	sink, cleanup, err := openAnalysisLog(prLog)
	if err != nil {
		return err
	}
	if sink != nil {
		if _, err := fmt.Fprint(sink, body); err != nil {
			cleanup()
			return fmt.Errorf("append to analysis log: %w", err)
		}
	}
	cleanup()

	if dryRun {
		ui.DryRunMsg("would open PR %q (%s -> %s, severity %s)", title, cs.Branch, cs.Base, c.Severity)
		return nil
	}

	if err := saveAnalysis(cs, c, ""); err != nil {
		return err
	}

	url, err := ghc.CreatePR(cs.Path, git.CreatePROptions{
		Title:     title,
		Body:      body,
		Base:      cs.Base,
		Draft:     draft,
		Reviewers: reviewers,
	})
	if err != nil {
		return err
	}

	if lastAnalysisID != "" {
		if s, serr := getStore(); serr == nil {
			_ = s.SetAnalysisPRURL(context.Background(), lastAnalysisID, url)
		}
	}

	if slug := repoSlug(gc, cs.Path); slug != "" {
		ui.Success("Opened %s on %s (severity %s)", output.Cyan(url), slug, output.SeverityColor(c.Severity))
	} else {
		ui.Success("Opened %s (severity %s)", output.Cyan(url), output.SeverityColor(c.Severity))
	}
	return nil
}

func prUpdateRun() error {
	gc := git.NewClient()
	ghc := git.NewGitHubClient()

	cs, c, body, err := buildDescription(gc)
	if err != nil {
		return err
	}
	if cs == nil {
		ui.Info("No changes against the base branch; nothing to update.")
		return nil
	}

	if dryRun {
		ui.DryRunMsg("would replace the PR body for %s (severity %s)", cs.Branch, c.Severity)
		return nil
	}

	pr, err := currentPR(ghc, cs.Path, cs.Branch)
	if err != nil {
		return err
	}

	if err := ghc.EditPRBody(cs.Path, body); err != nil {
		return err
	}
	ui.Success("Updated body of PR #%d for %s", pr.Number, output.Cyan(cs.Branch))
	return nil
}

func prCommentRun() error {
	gc := git.NewClient()
	ghc := git.NewGitHubClient()

	cs, c, body, err := buildDescription(gc)
	if err != nil {
		return err
	}
	if cs == nil {
		ui.Info("No changes against the base branch; nothing to comment.")
		return nil
	}

	if dryRun {
		ui.DryRunMsg("would comment the analysis on the PR for %s (severity %s)", cs.Branch, c.Severity)
		return nil
	}

	pr, err := currentPR(ghc, cs.Path, cs.Branch)
	if err != nil {
		return err
	}

	if err := ghc.CommentPR(cs.Path, body); err != nil {
		return err
	}
	ui.Success("Commented analysis on PR #%d for %s", pr.Number, output.Cyan(cs.Branch))
	return nil
}
