package processor

import (
	"fmt"

	"github.com/cmgsk/edda/internal/config"
	"github.com/cmgsk/edda/internal/domain"
	"github.com/cmgsk/edda/internal/fontcheck"
	"github.com/cmgsk/edda/pkg/richtext"
)

// FontsFromConfig 配置了字体白名单时使用固定列表，否则扫描系统字体
func FontsFromConfig(cfg *config.Config) richtext.FontOracle {
	if len(cfg.Fonts.Allowed) > 0 {
		return fontcheck.NewStaticOracle(cfg.Fonts.Allowed...)
	}
	return fontcheck.NewSystemOracle(cfg.Fonts.CacheDir)
}

// RulesFromConfig 把配置中启用的规则解析为样式。
// 规则样式以配置的默认样式为基础。
func RulesFromConfig(cfg *config.Config, fonts richtext.FontOracle) ([]domain.StyleRule, error) {
	base, err := cfg.DefaultStyleWith(fonts)
	if err != nil {
		return nil, fmt.Errorf("默认样式无效: %w", err)
	}

	rules := make([]domain.StyleRule, 0, len(cfg.Rules))
	for i, rule := range cfg.Rules {
		if !rule.IsEnabled() {
			continue
		}
		style, err := rule.Style.Apply(base, fonts)
		if err != nil {
			return nil, fmt.Errorf("第 %d 条规则 %q 样式无效: %w", i+1, rule.Chunk, err)
		}
		rules = append(rules, domain.StyleRule{
			Chunk:    rule.Chunk,
			Spanning: rule.Spanning,
			Style:    style,
		})
	}
	return rules, nil
}
