package git

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo creates a git repo in dir with a user config so commits work on CI.
func initTestRepo(t *testing.T, dir string) {
	t.Helper()
	cmds := [][]string{
		{"git", "-C", dir, "init", "-b", "main"},
		{"git", "-C", dir, "config", "user.email", "test@test.com"},
		{"git", "-C", dir, "config", "user.name", "Test"},
	}
	for _, args := range cmds {
		require.NoError(t, exec.Command(args[0], args[1:]...).Run())
	}
}

func TestExtractOwnerRepo_SSH(t *testing.T) {
	owner, repo, err := ExtractOwnerRepo("git@github.com:shipit-cli/shipit.git")
	assert.NoError(t, err)
	assert.Equal(t, "shipit-cli", owner)
	assert.Equal(t, "shipit", repo)
}

func TestExtractOwnerRepo_HTTPS(t *testing.T) {
	owner, repo, err := ExtractOwnerRepo("https://github.com/shipit-cli/shipit.git")
	assert.NoError(t, err)
	assert.Equal(t, "shipit-cli", owner)
	assert.Equal(t, "shipit", repo)
}

func TestExtractOwnerRepo_HTTPSNoGit(t *testing.T) {
	owner, repo, err := ExtractOwnerRepo("https://github.com/shipit-cli/shipit")
	assert.NoError(t, err)
	assert.Equal(t, "shipit-cli", owner)
	assert.Equal(t, "shipit", repo)
}

func TestExtractOwnerRepo_Invalid(t *testing.T) {
	_, _, err := ExtractOwnerRepo("not-a-url")
	assert.Error(t, err)
}

func TestRealClient_DiffAndLog(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)

	// Initial file and commit on main
	require.NoError(t, os.WriteFile(dir+"/file1.txt", []byte("hello\n"), 0644))
	require.NoError(t, exec.Command("git", "-C", dir, "add", ".").Run())
	require.NoError(t, exec.Command("git", "-C", dir, "commit", "-m", "initial").Run())

	// Feature branch with a modified file and a new file
	require.NoError(t, exec.Command("git", "-C", dir, "checkout", "-b", "feature").Run())
	require.NoError(t, os.WriteFile(dir+"/file1.txt", []byte("hello world\n"), 0644))
	require.NoError(t, os.WriteFile(dir+"/file2.txt", []byte("new file\n"), 0644))
	require.NoError(t, exec.Command("git", "-C", dir, "add", ".").Run())
	require.NoError(t, exec.Command("git", "-C", dir, "commit", "-m", "feature changes").Run())

	c := NewClient()

	t.Run("Diff returns diff content", func(t *testing.T) {
		diff, err := c.Diff(dir, "main", "feature")
		require.NoError(t, err)
		assert.Contains(t, diff, "hello world")
		assert.Contains(t, diff, "file2.txt")
	})

	t.Run("DiffStat returns stat summary", func(t *testing.T) {
		stat, err := c.DiffStat(dir, "main", "feature")
		require.NoError(t, err)
		assert.Contains(t, stat, "file")
		assert.Contains(t, stat, "changed")
	})

	t.Run("CommitSubjects returns subjects oldest first", func(t *testing.T) {
		subjects, err := c.CommitSubjects(dir, "main", "feature")
		require.NoError(t, err)
		assert.Equal(t, []string{"feature changes"}, subjects)
	})

	t.Run("CommitSubjects empty range", func(t *testing.T) {
		subjects, err := c.CommitSubjects(dir, "feature", "feature")
		require.NoError(t, err)
		assert.Nil(t, subjects)
	})

	t.Run("CurrentBranch", func(t *testing.T) {
		branch, err := c.CurrentBranch(dir)
		require.NoError(t, err)
		assert.Equal(t, "feature", branch)
	})
}

func TestRealClient_StagedChanges(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	require.NoError(t, exec.Command("git", "-C", dir, "commit", "--allow-empty", "-m", "init").Run())

	c := NewClient()

	staged, err := c.HasStagedChanges(dir)
	require.NoError(t, err)
	assert.False(t, staged)

	require.NoError(t, os.WriteFile(dir+"/new.txt", []byte("content\n"), 0644))
	require.NoError(t, c.Add(dir, "."))

	staged, err = c.HasStagedChanges(dir)
	require.NoError(t, err)
	assert.True(t, staged)

	diff, err := c.StagedDiff(dir)
	require.NoError(t, err)
	assert.Contains(t, diff, "new.txt")

	stat, err := c.StagedDiffStat(dir)
	require.NoError(t, err)
	assert.Contains(t, stat, "1 file changed")

	require.NoError(t, c.Commit(dir, "add new file"))

	staged, err = c.HasStagedChanges(dir)
	require.NoError(t, err)
	assert.False(t, staged)
}

func TestRealClient_IsDirty(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	require.NoError(t, exec.Command("git", "-C", dir, "commit", "--allow-empty", "-m", "init").Run())

	c := NewClient()

	dirty, err := c.IsDirty(dir)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, os.WriteFile(dir+"/scratch.txt", []byte("x\n"), 0644))

	dirty, err = c.IsDirty(dir)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestRealClient_DefaultBranchFallback(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)

	// No origin remote, so the symbolic-ref lookup fails and we fall back.
	c := NewClient()
	branch, err := c.DefaultBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}
