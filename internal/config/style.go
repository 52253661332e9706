package config

import (
	"fmt"
	"strings"

	"github.com/cmgsk/edda/pkg/richtext"
)

// HighlightNone 清除高亮
const HighlightNone = "none"

// Validate 检查颜色与下划线取值，不检查字体
func (s StyleSpec) Validate() error {
	if s.Color != "" {
		if err := richtext.CheckHex(s.Color); err != nil {
			return fmt.Errorf("字体颜色 %q: %w", s.Color, err)
		}
	}
	if s.Highlight != "" && !strings.EqualFold(s.Highlight, HighlightNone) {
		if err := richtext.CheckHex(s.Highlight); err != nil {
			return fmt.Errorf("高亮颜色 %q: %w", s.Highlight, err)
		}
	}
	if _, err := richtext.ParseUnderline(s.Underline); err != nil {
		return err
	}
	return nil
}

// IsZero 是否未设置任何属性
func (s StyleSpec) IsZero() bool {
	return s == StyleSpec{}
}

// Commands 把样式描述转换为作用在 base 上的命令序列。
// 粗体、斜体只在与 base 不同时切换；字体只在与 base 不同时设置。
func (s StyleSpec) Commands(base richtext.Style, fonts richtext.FontOracle) ([]richtext.Command, error) {
	var cmds []richtext.Command

	if s.Bold != nil && *s.Bold != base.Bold() {
		cmds = append(cmds, richtext.ToggleBold{})
	}
	if s.Italic != nil && *s.Italic != base.Italic() {
		cmds = append(cmds, richtext.ToggleItalic{})
	}
	if s.Underline != "" {
		u, err := richtext.ParseUnderline(s.Underline)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, richtext.SetUnderline{Variant: u})
	}
	if s.Size != 0 {
		cmds = append(cmds, richtext.SetSize{Points: s.Size})
	}
	if s.Color != "" {
		cmds = append(cmds, richtext.SetColor{Hex: s.Color})
	}
	switch {
	case strings.EqualFold(s.Highlight, HighlightNone):
		cmds = append(cmds, richtext.SetHighlight{})
	case s.Highlight != "":
		cmds = append(cmds, richtext.SetHighlight{Hex: s.Highlight})
	}
	if s.Font != "" && s.Font != base.Font() {
		cmds = append(cmds, richtext.SetFont{Name: s.Font, Fonts: fonts})
	}

	return cmds, nil
}

// Apply 在 base 上依次执行样式命令，任一命令失败时返回 base 和错误
func (s StyleSpec) Apply(base richtext.Style, fonts richtext.FontOracle) (richtext.Style, error) {
	cmds, err := s.Commands(base, fonts)
	if err != nil {
		return base, err
	}

	style := base
	for _, cmd := range cmds {
		if style, err = style.Apply(cmd); err != nil {
			return base, err
		}
	}
	return style, nil
}
