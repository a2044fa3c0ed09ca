package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerate_ValidYAML(t *testing.T) {
	data, err := Generate("main")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "PR Analysis", doc["name"])
	assert.Contains(t, string(data), "branches:")
	assert.Contains(t, string(data), "- main")
	assert.Contains(t, string(data), "shipit analyze origin/main HEAD")
}

func TestGenerate_CustomBase(t *testing.T) {
	data, err := Generate("develop")
	require.NoError(t, err)
	assert.Contains(t, string(data), "- develop")
	assert.Contains(t, string(data), "origin/develop")
}

func TestWriteFile(t *testing.T) {
	root := t.TempDir()

	path, err := WriteFile(root, "main", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".github", "workflows", DefaultFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PR Analysis")
}

func TestWriteFile_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()

	_, err := WriteFile(root, "main", false)
	require.NoError(t, err)

	_, err = WriteFile(root, "main", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = WriteFile(root, "main", true)
	assert.NoError(t, err)
}
