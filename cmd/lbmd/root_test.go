package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	configFile, parseJSON, sanitizeText = "", false, false

	out := &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.cmd")
	defer teardown()
	//
	out, err := run(t, "[color=red]x[/color]\n", "format")
	require.NoError(t, err)
	assert.Equal(t, "[color=red]x[/color]\n", out)
}

func TestParseAndRenderCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.cmd")
	defer teardown()
	//
	data, err := run(t, "## Title\n\n>! hidden", "parse", "--json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(data, "{"))
	out, err := run(t, data, "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "## Title\n\n>! hidden\n", out)

	data, err = run(t, "## Title\n\n>! hidden", "parse")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(data, "{"))
	assert.Contains(t, data, "type: doc")
	out, err = run(t, data, "render")
	require.NoError(t, err)
	assert.Equal(t, "## Title\n\n>! hidden\n", out)

	_, err = run(t, "- [not a tree", "render")
	assert.Error(t, err)
}

func TestSanitizeCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.cmd")
	defer teardown()
	//
	src := `<p><b>bold</b><img src="data:image/png;base64,AA"></p>`
	out, err := run(t, src, "sanitize")
	require.NoError(t, err)
	assert.Equal(t, "<p><b>bold</b></p>\n", out)

	out, err = run(t, src, "sanitize", "--text")
	require.NoError(t, err)
	assert.Equal(t, "**bold**\n", out)
}

func TestPreviewCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.cmd")
	defer teardown()
	//
	out, err := run(t, ">!x!<", "preview")
	require.NoError(t, err)
	assert.Equal(t, "<p><span class=\"spoiler\">x</span></p>\n", out)
}

func TestCheckCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.cmd")
	defer teardown()
	//
	out, err := run(t, "a\n\nb", "check")
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 blocks, 2 characters, 2 words\n", out)
}

func TestMissingConfigFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.cmd")
	defer teardown()
	//
	_, err := run(t, "x", "format", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
