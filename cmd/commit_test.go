package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shipit-cli/shipit/internal/output"
)

// captureUI swaps the package UI for one writing to buffers, restoring it
// when the test ends.
func captureUI(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	prev := ui
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	ui = &output.UI{Out: out, ErrOut: errOut}
	t.Cleanup(func() { ui = prev })
	return out, errOut
}

func TestWarnRemainingChanges_Dirty(t *testing.T) {
	_, errOut := captureUI(t)

	warnRemainingChanges(&fakeGitClient{dirty: true}, "/repo")
	assert.Contains(t, errOut.String(), "Uncommitted changes remain")
}

func TestWarnRemainingChanges_Clean(t *testing.T) {
	_, errOut := captureUI(t)

	warnRemainingChanges(&fakeGitClient{dirty: false}, "/repo")
	assert.Empty(t, errOut.String())
}
