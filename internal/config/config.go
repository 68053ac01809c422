// Package config 加载命令行工具的配置：配置文件、LBMD_ 前缀的环境变量以及默认值。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pafthang/lbmd"
	"github.com/pafthang/lbmd/editor"
	"github.com/spf13/viper"
)

func tracer() tracing.Trace {
	return tracing.Select("lbmd.config")
}

// EnvPrefix 是环境变量前缀，例如 LBMD_PREVIEW_TEXT_SIZE_MAX。
const EnvPrefix = "LBMD"

type Config struct {
	Parse   ParseConfig   `mapstructure:"parse"`
	Preview PreviewConfig `mapstructure:"preview"`
}

// ParseConfig 对应解析选项。
type ParseConfig struct {
	GFMTable         bool `mapstructure:"gfm_table"`
	GFMTaskListItem  bool `mapstructure:"gfm_task_list_item"`
	GFMStrikethrough bool `mapstructure:"gfm_strikethrough"`
	LinkRef          bool `mapstructure:"link_ref"`
	DataImage        bool `mapstructure:"data_image"` // 是否允许 data: 图片
}

// PreviewConfig 对应预览渲染选项。
type PreviewConfig struct {
	CodeSyntaxHighlight bool   `mapstructure:"code_syntax_highlight"`
	StyleName           string `mapstructure:"style_name"`   // chroma 样式名
	ClassPrefix         string `mapstructure:"class_prefix"` // 高亮 CSS 类名前缀
	TextSizeMin         int    `mapstructure:"text_size_min"`
	TextSizeMax         int    `mapstructure:"text_size_max"`
	TextColorPattern    string `mapstructure:"text_color_pattern"` // 为空时使用默认的颜色白名单
}

// Load 加载配置。path 为空时在配置目录和当前目录下查找 config.yaml，找不到时使用默认值；
// path 不为空时文件必须存在。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if "" != path {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if configPath, err := GetConfigDir(); nil == err {
			v.AddConfigPath(configPath)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("parse.gfm_table", true)
	v.SetDefault("parse.gfm_task_list_item", true)
	v.SetDefault("parse.gfm_strikethrough", true)
	v.SetDefault("parse.link_ref", true)
	v.SetDefault("parse.data_image", false)
	v.SetDefault("preview.code_syntax_highlight", true)
	v.SetDefault("preview.style_name", "github")
	v.SetDefault("preview.class_prefix", editor.HighlightClassPrefix)
	v.SetDefault("preview.text_size_min", 8)
	v.SetDefault("preview.text_size_max", 72)
	v.SetDefault("preview.text_color_pattern", "")

	if err := v.ReadInConfig(); nil != err {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		tracer().Debugf("config file not found, using defaults")
	} else {
		tracer().Debugf("loaded config [%s]", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); nil != err {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Apply 将配置设置到引擎上。
func (c *Config) Apply(engine *lbmd.Engine) error {
	engine.SetGFMTable(c.Parse.GFMTable)
	engine.SetGFMTaskListItem(c.Parse.GFMTaskListItem)
	engine.SetGFMStrikethrough(c.Parse.GFMStrikethrough)
	engine.SetLinkRef(c.Parse.LinkRef)
	engine.SetDataImage(c.Parse.DataImage)

	engine.SetCodeSyntaxHighlight(c.Preview.CodeSyntaxHighlight)
	engine.SetCodeSyntaxHighlightStyleName(c.Preview.StyleName)
	engine.SetCodeSyntaxHighlightClassPrefix(c.Preview.ClassPrefix)
	engine.SetTextSizeRange(c.Preview.TextSizeMin, c.Preview.TextSizeMax)
	if err := engine.SetTextColorPattern(c.Preview.TextColorPattern); nil != err {
		return fmt.Errorf("preview.text_color_pattern: %w", err)
	}
	return nil
}

// GetConfigDir 返回配置目录，优先使用 XDG_CONFIG_HOME。
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); "" != xdgHome {
		return filepath.Join(xdgHome, "lbmd"), nil
	}
	homeDir, err := os.UserHomeDir()
	if nil != err {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lbmd"), nil
}
