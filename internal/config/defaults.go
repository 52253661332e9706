package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmgsk/edda/pkg/docx"
	"github.com/cmgsk/edda/pkg/richtext"
)

// 环境变量，优先级高于配置文件
const (
	EnvFontCacheDir   = "EDDA_FONT_CACHE_DIR"
	EnvDefaultFont    = "EDDA_DEFAULT_FONT"
	EnvValidateOutput = "EDDA_VALIDATE_OUTPUT"
	EnvMaxConcurrent  = "EDDA_MAX_CONCURRENT_FILES"
)

const (
	// DefaultSuffix 输出文件名后缀
	DefaultSuffix = "_styled"
	// DefaultMaxConcurrentFiles 批量处理的默认并发数
	DefaultMaxConcurrentFiles = 4
)

// setDefaultValues 为缺失的字段填充默认值
func setDefaultValues(config *Config) {
	if config.Version == "" {
		config.Version = CurrentVersion
	}

	if config.DefaultStyle.Font == "" {
		config.DefaultStyle.Font = richtext.DefaultFont
	}
	if config.DefaultStyle.Size == 0 {
		config.DefaultStyle.Size = richtext.DefaultSize
	}
	if config.DefaultStyle.Color == "" {
		config.DefaultStyle.Color = richtext.DefaultFontColor
	}

	if config.Output.Application == "" {
		config.Output.Application = docx.DefaultApplication
	}
	if config.Output.Suffix == "" {
		config.Output.Suffix = DefaultSuffix
	}

	if config.Processing.MaxConcurrentFiles == 0 {
		config.Processing.MaxConcurrentFiles = DefaultMaxConcurrentFiles
	}
}

// applyEnv 用环境变量覆盖配置
func applyEnv(config *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvFontCacheDir)); v != "" {
		config.Fonts.CacheDir = v
	}
	if v := strings.TrimSpace(getenv(EnvDefaultFont)); v != "" {
		config.DefaultStyle.Font = v
	}
	if v := strings.TrimSpace(getenv(EnvValidateOutput)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s 取值无效 %q: %w", EnvValidateOutput, v, err)
		}
		config.Output.Validate = b
	}
	if v := strings.TrimSpace(getenv(EnvMaxConcurrent)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s 取值无效 %q: %w", EnvMaxConcurrent, v, err)
		}
		config.Processing.MaxConcurrentFiles = n
	}
	return nil
}

// DefaultConfig 返回带一条示例规则的默认配置
func DefaultConfig() *Config {
	bold := true
	config := &Config{
		ProjectName: "edda",
		Rules: []Rule{
			{
				Chunk: "TODO",
				Style: StyleSpec{Bold: &bold, Color: "#C00000", Highlight: "#FFFF00"},
			},
		},
		Output: OutputConfig{Validate: true},
		Processing: ProcessingConfig{
			ExcludePatterns: []string{"~$*", "*" + DefaultSuffix + ".docx"},
		},
	}
	setDefaultValues(config)
	return config
}
