package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitClient implements git.Client with canned responses.
type fakeGitClient struct {
	root          string
	branch        string
	defaultBranch string
	diff          string
	stat          string
	subjects      []string
	dirty         bool
	remoteURL     string
}

func (f *fakeGitClient) RepoRoot(path string) (string, error)      { return f.root, nil }
func (f *fakeGitClient) CurrentBranch(path string) (string, error) { return f.branch, nil }
func (f *fakeGitClient) DefaultBranch(path string) (string, error) {
	return f.defaultBranch, nil
}
func (f *fakeGitClient) Add(path string, pathspecs ...string) error { return nil }
func (f *fakeGitClient) Commit(path, message string) error          { return nil }
func (f *fakeGitClient) Push(path, branch string) error             { return nil }
func (f *fakeGitClient) Diff(path, base, head string) (string, error) {
	return f.diff, nil
}
func (f *fakeGitClient) DiffStat(path, base, head string) (string, error) {
	return f.stat, nil
}
func (f *fakeGitClient) StagedDiff(path string) (string, error)     { return f.diff, nil }
func (f *fakeGitClient) StagedDiffStat(path string) (string, error) { return f.stat, nil }
func (f *fakeGitClient) CommitSubjects(path, base, head string) ([]string, error) {
	return f.subjects, nil
}
func (f *fakeGitClient) IsDirty(path string) (bool, error)          { return f.dirty, nil }
func (f *fakeGitClient) HasStagedChanges(path string) (bool, error) { return false, nil }
func (f *fakeGitClient) RemoteURL(path string) (string, error)      { return f.remoteURL, nil }

func TestGatherChangeSet(t *testing.T) {
	viper.Reset()
	gc := &fakeGitClient{
		root:          "/repo",
		branch:        "feature/login",
		defaultBranch: "main",
		diff:          "+added line",
		stat:          " 1 file changed, 1 insertion(+)",
		subjects:      []string{"add login"},
	}

	cs, err := gatherChangeSet(gc, ".", "", "")
	require.NoError(t, err)

	assert.Equal(t, "/repo", cs.Path)
	assert.Equal(t, "feature/login", cs.Branch)
	assert.Equal(t, "main", cs.Base)
	assert.Equal(t, "HEAD", cs.Head)
	assert.False(t, cs.isEmpty())
	assert.Equal(t, "add login", cs.commitText())
}

func TestGatherChangeSet_ExplicitBaseWins(t *testing.T) {
	viper.Reset()
	viper.Set("base_branch", "develop")
	t.Cleanup(viper.Reset)

	gc := &fakeGitClient{root: "/repo", branch: "f", defaultBranch: "main"}

	cs, err := gatherChangeSet(gc, ".", "release/2.0", "v1..head")
	require.NoError(t, err)
	assert.Equal(t, "release/2.0", cs.Base)
	assert.Equal(t, "v1..head", cs.Head)
}

func TestGatherChangeSet_ConfigBase(t *testing.T) {
	viper.Reset()
	viper.Set("base_branch", "develop")
	t.Cleanup(viper.Reset)

	gc := &fakeGitClient{root: "/repo", branch: "f", defaultBranch: "main"}

	cs, err := gatherChangeSet(gc, ".", "", "")
	require.NoError(t, err)
	assert.Equal(t, "develop", cs.Base)
}

func TestChangeSet_IsEmpty(t *testing.T) {
	cs := &changeSet{Diff: "  \n\t "}
	assert.True(t, cs.isEmpty())

	cs.Diff = "+x"
	assert.False(t, cs.isEmpty())
}

func TestChangeSet_CommitText(t *testing.T) {
	cs := &changeSet{Commits: []string{"first", "second"}}
	assert.Equal(t, "first\nsecond", cs.commitText())

	cs.Commits = nil
	assert.Equal(t, "", cs.commitText())
}

func TestDefaultPRTitle(t *testing.T) {
	cs := &changeSet{Branch: "feature/x", Commits: []string{"older", "newest"}}
	assert.Equal(t, "newest", defaultPRTitle(cs))

	cs.Commits = nil
	assert.Equal(t, "feature/x", defaultPRTitle(cs))
}
