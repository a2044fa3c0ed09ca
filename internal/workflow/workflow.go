// Package workflow generates the GitHub Actions workflow that runs change
// analysis on pull requests.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the workflow file written under .github/workflows.
const DefaultFileName = "pr-analysis.yml"

type step struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	Run  string            `yaml:"run,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
}

type job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []step `yaml:"steps"`
}

type onPullRequest struct {
	Branches []string `yaml:"branches"`
}

type triggers struct {
	PullRequest onPullRequest `yaml:"pull_request"`
}

type document struct {
	Name string         `yaml:"name"`
	On   triggers       `yaml:"on"`
	Jobs map[string]job `yaml:"jobs"`
}

// Generate returns the workflow YAML targeting the given base branch.
func Generate(baseBranch string) ([]byte, error) {
	doc := document{
		Name: "PR Analysis",
		On: triggers{
			PullRequest: onPullRequest{Branches: []string{baseBranch}},
		},
		Jobs: map[string]job{
			"analyze": {
				RunsOn: "ubuntu-latest",
				Steps: []step{
					{
						Name: "Checkout",
						Uses: "actions/checkout@v4",
						With: map[string]string{"fetch-depth": "0"},
					},
					{
						Name: "Set up Go",
						Uses: "actions/setup-go@v5",
						With: map[string]string{"go-version": "stable"},
					},
					{
						Name: "Install shipit",
						Run:  "go install github.com/shipit-cli/shipit@latest",
					},
					{
						Name: "Analyze changes",
						Run:  fmt.Sprintf("shipit analyze origin/%s HEAD --format markdown >> \"$GITHUB_STEP_SUMMARY\"", baseBranch),
					},
				},
			},
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal workflow: %w", err)
	}
	return out, nil
}

// WriteFile generates the workflow and writes it under repoRoot at
// .github/workflows/<DefaultFileName>. An existing file is left alone unless
// force is set. Returns the path written.
func WriteFile(repoRoot, baseBranch string, force bool) (string, error) {
	dir := filepath.Join(repoRoot, ".github", "workflows")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create workflows directory: %w", err)
	}

	path := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("workflow file already exists: %s (use --force to overwrite)", path)
	}

	data, err := Generate(baseBranch)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write workflow file: %w", err)
	}
	return path, nil
}
