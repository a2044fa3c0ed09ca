package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAndClose(t *testing.T, sink io.Writer, cleanup func(), text string) {
	t.Helper()
	_, err := io.WriteString(sink, text)
	require.NoError(t, err)
	cleanup()
}

func TestOpenAnalysisLog_FlagWins(t *testing.T) {
	viper.Reset()
	viper.Set("analysis.log_file", filepath.Join(t.TempDir(), "config.md"))
	t.Cleanup(viper.Reset)

	flagPath := filepath.Join(t.TempDir(), "flag.md")
	sink, cleanup, err := openAnalysisLog(flagPath)
	require.NoError(t, err)
	require.NotNil(t, sink)
	writeAndClose(t, sink, cleanup, "from flag\n")

	data, err := os.ReadFile(flagPath)
	require.NoError(t, err)
	assert.Equal(t, "from flag\n", string(data))
}

func TestOpenAnalysisLog_ConfigFallback(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "analysis.md")
	viper.Set("analysis.log_file", path)
	t.Cleanup(viper.Reset)

	sink, cleanup, err := openAnalysisLog("")
	require.NoError(t, err)
	require.NotNil(t, sink)
	writeAndClose(t, sink, cleanup, "from config\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from config\n", string(data))
}

func TestOpenAnalysisLog_Appends(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "analysis.md")

	for _, chunk := range []string{"first\n", "second\n"} {
		sink, cleanup, err := openAnalysisLog(path)
		require.NoError(t, err)
		writeAndClose(t, sink, cleanup, chunk)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestOpenAnalysisLog_None(t *testing.T) {
	viper.Reset()

	sink, cleanup, err := openAnalysisLog("")
	require.NoError(t, err)
	assert.Nil(t, sink)
	cleanup()
}
