package git

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// PullRequest represents a GitHub pull request.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Branch string `json:"headRefName"`
	URL    string `json:"url"`
}

// CreatePROptions holds the parameters for opening a pull request.
type CreatePROptions struct {
	Title     string
	Body      string
	Base      string
	Draft     bool
	Reviewers []string
}

// GitHubClient wraps the gh CLI for pull request operations.
type GitHubClient interface {
	CreatePR(path string, opts CreatePROptions) (string, error)
	EditPRBody(path, body string) error
	CommentPR(path, body string) error
	ViewPR(path string) (*PullRequest, error)
	CopilotSuggest(prompt string) (string, error)
}

// RealGitHubClient implements GitHubClient using the gh CLI.
type RealGitHubClient struct{}

// NewGitHubClient returns a new RealGitHubClient.
func NewGitHubClient() *RealGitHubClient {
	return &RealGitHubClient{}
}

func ghCmd(dir string, args ...string) (string, error) {
	cmd := exec.Command("gh", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("gh %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("gh %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CreatePR opens a pull request for the current branch and returns its URL
// (gh prints the URL on stdout).
func (c *RealGitHubClient) CreatePR(path string, opts CreatePROptions) (string, error) {
	args := []string{"pr", "create", "--title", opts.Title, "--body", opts.Body}
	if opts.Base != "" {
		args = append(args, "--base", opts.Base)
	}
	if opts.Draft {
		args = append(args, "--draft")
	}
	for _, r := range opts.Reviewers {
		args = append(args, "--reviewer", r)
	}
	return ghCmd(path, args...)
}

func (c *RealGitHubClient) EditPRBody(path, body string) error {
	_, err := ghCmd(path, "pr", "edit", "--body", body)
	return err
}

func (c *RealGitHubClient) CommentPR(path, body string) error {
	_, err := ghCmd(path, "pr", "comment", "--body", body)
	return err
}

// ViewPR returns the pull request associated with the current branch.
func (c *RealGitHubClient) ViewPR(path string) (*PullRequest, error) {
	out, err := ghCmd(path, "pr", "view",
		"--json", "number,title,state,headRefName,url",
	)
	if err != nil {
		return nil, err
	}

	var pr PullRequest
	if err := json.Unmarshal([]byte(out), &pr); err != nil {
		return nil, fmt.Errorf("parse PR: %w", err)
	}
	return &pr, nil
}

// CopilotSuggest asks `gh copilot suggest` for a git command matching the
// prompt. Requires the gh-copilot extension.
func (c *RealGitHubClient) CopilotSuggest(prompt string) (string, error) {
	return ghCmd("", "copilot", "suggest", "-t", "git", prompt)
}
