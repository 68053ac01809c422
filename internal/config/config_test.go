package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pafthang/lbmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.config")
	defer teardown()
	//
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Parse.GFMTable)
	assert.True(t, cfg.Parse.LinkRef)
	assert.False(t, cfg.Parse.DataImage)
	assert.True(t, cfg.Preview.CodeSyntaxHighlight)
	assert.Equal(t, "github", cfg.Preview.StyleName)
	assert.Equal(t, "highlight-", cfg.Preview.ClassPrefix)
	assert.Equal(t, 8, cfg.Preview.TextSizeMin)
	assert.Equal(t, 72, cfg.Preview.TextSizeMax)
	assert.Equal(t, "", cfg.Preview.TextColorPattern)
}

func TestLoadFileAndEnv(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.config")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "lbmd.yaml")
	data := "parse:\n  gfm_table: false\n  data_image: true\npreview:\n  style_name: monokai\n  text_color_pattern: \"^#\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	t.Setenv("LBMD_PREVIEW_TEXT_SIZE_MAX", "40")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Parse.GFMTable)
	assert.True(t, cfg.Parse.DataImage)
	assert.True(t, cfg.Parse.GFMTaskListItem)
	assert.Equal(t, "monokai", cfg.Preview.StyleName)
	assert.Equal(t, "^#", cfg.Preview.TextColorPattern)
	assert.Equal(t, 40, cfg.Preview.TextSizeMax)

	engine := lbmd.New()
	require.NoError(t, cfg.Apply(engine))
	assert.False(t, engine.ParseOptions.GFMTable)
	assert.True(t, engine.ParseOptions.DataImage)
	assert.Equal(t, "monokai", engine.RenderOptions.CodeSyntaxHighlightStyleName)
	assert.Equal(t, 40, engine.RenderOptions.TextSizeMax)
	assert.True(t, engine.RenderOptions.TextColorPattern.MatchString("#fff"))
	assert.False(t, engine.RenderOptions.TextColorPattern.MatchString("red"))
}

func TestLoadMissingFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.config")
	defer teardown()
	//
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyInvalidPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lbmd.config")
	defer teardown()
	//
	cfg := &Config{Preview: PreviewConfig{TextSizeMin: 20, TextSizeMax: 10, TextColorPattern: "("}}
	engine := lbmd.New()
	assert.Error(t, cfg.Apply(engine))
	assert.Equal(t, 10, engine.RenderOptions.TextSizeMin)
	assert.Equal(t, 20, engine.RenderOptions.TextSizeMax)
}
