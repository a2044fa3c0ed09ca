package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/shipit-cli/shipit/internal/git"
)

// changeSet bundles everything the classifier and renderer need about the
// range base..head, gathered in one place by the calling layer.
type changeSet struct {
	Path    string
	Branch  string
	Base    string
	Head    string
	Diff    string
	Stat    string
	Commits []string
}

// resolveBase picks the base ref: explicit argument, then the base_branch
// config key, then origin's default branch.
func resolveBase(gc git.Client, path, base string) (string, error) {
	if base != "" {
		return base, nil
	}
	if cfg := viper.GetString("base_branch"); cfg != "" {
		return cfg, nil
	}
	return gc.DefaultBranch(path)
}

// gatherChangeSet collects diff, stat, and commit subjects for base..head.
// The returned set may describe an empty diff; callers own the decision to
// skip analysis in that case.
func gatherChangeSet(gc git.Client, path, base, head string) (*changeSet, error) {
	root, err := gc.RepoRoot(path)
	if err != nil {
		return nil, fmt.Errorf("not inside a git repository: %w", err)
	}

	base, err = resolveBase(gc, root, base)
	if err != nil {
		return nil, err
	}
	if head == "" {
		head = "HEAD"
	}

	branch, err := gc.CurrentBranch(root)
	if err != nil {
		return nil, err
	}

	diff, err := gc.Diff(root, base, head)
	if err != nil {
		return nil, err
	}
	stat, err := gc.DiffStat(root, base, head)
	if err != nil {
		return nil, err
	}
	commits, err := gc.CommitSubjects(root, base, head)
	if err != nil {
		return nil, err
	}

	return &changeSet{
		Path:    root,
		Branch:  branch,
		Base:    base,
		Head:    head,
		Diff:    diff,
		Stat:    stat,
		Commits: commits,
	}, nil
}

// isEmpty reports whether there is nothing to classify.
func (cs *changeSet) isEmpty() bool {
	return strings.TrimSpace(cs.Diff) == ""
}

// commitText returns the commit subjects newline-joined, the form the
// classifier's keyword matching expects.
func (cs *changeSet) commitText() string {
	return strings.Join(cs.Commits, "\n")
}
