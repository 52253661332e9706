package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cmgsk/edda/pkg/richtext"
)

// CurrentVersion 当前配置格式版本
const CurrentVersion = "1.0"

// StyleSpec 配置文件中的样式描述，未设置的字段沿用基础样式
type StyleSpec struct {
	Bold      *bool  `json:"bold,omitempty" toml:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    *bool  `json:"italic,omitempty" toml:"italic,omitempty" yaml:"italic,omitempty"`
	Underline string `json:"underline,omitempty" toml:"underline,omitempty" yaml:"underline,omitempty"`
	Size      uint8  `json:"size,omitempty" toml:"size,omitempty" yaml:"size,omitempty"`
	Font      string `json:"font,omitempty" toml:"font,omitempty" yaml:"font,omitempty"`
	Color     string `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	// Highlight 为 "none" 时清除高亮
	Highlight string `json:"highlight,omitempty" toml:"highlight,omitempty" yaml:"highlight,omitempty"`
}

// FontConfig 字体设置
type FontConfig struct {
	// CacheDir 系统字体索引缓存目录，支持 ~
	CacheDir string `json:"cache_dir,omitempty" toml:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
	// Allowed 非空时只允许使用列出的字体，不再扫描系统字体
	Allowed []string `json:"allowed,omitempty" toml:"allowed,omitempty" yaml:"allowed,omitempty"`
}

// Rule 一条改样式规则
type Rule struct {
	Chunk    string    `json:"chunk" toml:"chunk" yaml:"chunk"`
	Spanning bool      `json:"spanning,omitempty" toml:"spanning,omitempty" yaml:"spanning,omitempty"`
	Style    StyleSpec `json:"style" toml:"style" yaml:"style"`
	Enabled  *bool     `json:"enabled,omitempty" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// IsEnabled 规则是否启用，未设置时启用
func (r Rule) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// OutputConfig 输出设置
type OutputConfig struct {
	Validate    bool   `json:"validate" toml:"validate" yaml:"validate"`
	Application string `json:"application,omitempty" toml:"application,omitempty" yaml:"application,omitempty"`
	Suffix      string `json:"suffix,omitempty" toml:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// ProcessingConfig 批量处理设置
type ProcessingConfig struct {
	MaxConcurrentFiles int      `json:"max_concurrent_files" toml:"max_concurrent_files" yaml:"max_concurrent_files"`
	ExcludePatterns    []string `json:"exclude_patterns,omitempty" toml:"exclude_patterns,omitempty" yaml:"exclude_patterns,omitempty"`
}

// Config 完整配置
type Config struct {
	ProjectName  string           `json:"project_name" toml:"project_name" yaml:"project_name"`
	Version      string           `json:"version,omitempty" toml:"version,omitempty" yaml:"version,omitempty"`
	DefaultStyle StyleSpec        `json:"default_style" toml:"default_style" yaml:"default_style"`
	Fonts        FontConfig       `json:"fonts" toml:"fonts" yaml:"fonts"`
	Rules        []Rule           `json:"rules" toml:"rules" yaml:"rules"`
	Output       OutputConfig     `json:"output" toml:"output" yaml:"output"`
	Processing   ProcessingConfig `json:"processing" toml:"processing" yaml:"processing"`
}

// ConfigManager 配置管理接口
type ConfigManager interface {
	LoadConfig(filePath string) (*Config, error)
	ValidateConfig(config *Config) error
	SaveConfig(config *Config, filePath string) error
}

// configManager 配置管理器实现
type configManager struct {
	getenv func(string) string
}

// NewConfigManager 创建新的配置管理器
func NewConfigManager() ConfigManager {
	return &configManager{getenv: os.Getenv}
}

// LoadConfig 从文件加载配置，格式由扩展名决定（.json、.toml、.yaml、.yml）。
// 缺失的部分填充默认值，随后应用环境变量覆盖。
func (cm *configManager) LoadConfig(filePath string) (*Config, error) {
	if filePath == "" {
		return nil, fmt.Errorf("配置文件路径不能为空")
	}

	expanded, err := homedir.Expand(filePath)
	if err != nil {
		return nil, fmt.Errorf("展开配置文件路径失败: %w", err)
	}

	// 检查文件是否存在
	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		return nil, fmt.Errorf("配置文件不存在: %s", filePath)
	}

	format, err := formatOf(expanded)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := unmarshal(format, data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	setDefaultValues(&config)
	if err := applyEnv(&config, cm.getenv); err != nil {
		return nil, fmt.Errorf("应用环境变量失败: %w", err)
	}
	if config.Fonts.CacheDir, err = homedir.Expand(config.Fonts.CacheDir); err != nil {
		return nil, fmt.Errorf("展开字体缓存目录失败: %w", err)
	}

	if err := cm.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &config, nil
}

// ValidateConfig 验证配置的有效性。字体名称不在这里校验，需要字体查询服务。
func (cm *configManager) ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("配置不能为空")
	}

	if config.ProjectName == "" {
		return fmt.Errorf("项目名称不能为空")
	}

	if err := config.DefaultStyle.Validate(); err != nil {
		return fmt.Errorf("默认样式无效: %w", err)
	}

	// 检查规则重复
	seen := make(map[string]bool)
	for i, rule := range config.Rules {
		if rule.Chunk == "" {
			return fmt.Errorf("第 %d 条规则的 chunk 不能为空", i+1)
		}
		key := fmt.Sprintf("%t:%s", rule.Spanning, rule.Chunk)
		if seen[key] {
			return fmt.Errorf("规则重复: %s", rule.Chunk)
		}
		seen[key] = true

		if rule.Style.IsZero() {
			return fmt.Errorf("第 %d 条规则没有设置任何样式", i+1)
		}
		if err := rule.Style.Validate(); err != nil {
			return fmt.Errorf("第 %d 条规则的样式无效: %w", i+1, err)
		}
	}

	if strings.ContainsAny(config.Output.Suffix, `/\`) {
		return fmt.Errorf("输出后缀不能包含路径分隔符: %s", config.Output.Suffix)
	}

	if config.Processing.MaxConcurrentFiles < 1 || config.Processing.MaxConcurrentFiles > 50 {
		return fmt.Errorf("最大并发文件数必须在1-50之间")
	}
	for _, pattern := range config.Processing.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("排除模式无效 %q: %w", pattern, err)
		}
	}

	return nil
}

// DefaultStyleWith 按配置构建默认样式，fonts 用于校验非默认字体
func (c *Config) DefaultStyleWith(fonts richtext.FontOracle) (richtext.Style, error) {
	return c.DefaultStyle.Apply(richtext.DefaultStyle(), fonts)
}

type fileFormat int

const (
	formatJSON fileFormat = iota
	formatTOML
	formatYAML
)

func formatOf(path string) (fileFormat, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return formatJSON, nil
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("配置文件必须是 JSON、TOML 或 YAML 格式，当前文件: %s", ext)
	}
}

func unmarshal(f fileFormat, data []byte, v any) error {
	switch f {
	case formatTOML:
		return toml.Unmarshal(data, v)
	case formatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

func marshal(f fileFormat, v any) ([]byte, error) {
	switch f {
	case formatTOML:
		return toml.Marshal(v)
	case formatYAML:
		return yaml.Marshal(v)
	default:
		return json.MarshalIndent(v, "", "  ")
	}
}
