package richtext

import (
	"errors"
	"fmt"
	"strings"
)

// StyledText 一段带样式的文本（run）
type StyledText struct {
	Text  string
	Style Style
}

// NewStyledText 创建带样式的文本
func NewStyledText(text string, style Style) StyledText {
	return StyledText{Text: text, Style: style}
}

// TaggedText 返回 [[tag]]text[[/tag]] 形式的文本
func (t StyledText) TaggedText() string {
	tag := t.Style.String()
	return "[[" + tag + "]]" + t.Text + "[[/" + tag + "]]"
}

// ChangeStyle 执行样式命令；失败时文本块保持原样
func (t *StyledText) ChangeStyle(cmd Command) error {
	style, err := t.Style.Apply(cmd)
	if err != nil {
		return err
	}
	t.Style = style
	return nil
}

// RunDescriptor 交给外部编码器的扁平化文本块描述。
//
// 颜色不带前导 #；Underline 为小驼峰名称，空字符串表示无下划线；
// Highlight 为空表示无高亮。解码时零值表示该属性缺失。
type RunDescriptor struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline string
	Size      uint8
	Font      string
	FontColor string
	Highlight string
}

// Descriptor 生成编码器使用的文本块描述
func (t StyledText) Descriptor() RunDescriptor {
	d := RunDescriptor{
		Text:      t.Text,
		Bold:      t.Style.bold,
		Italic:    t.Style.italic,
		Size:      t.Style.size,
		Font:      t.Style.font,
		FontColor: strings.TrimPrefix(t.Style.fontColor, "#"),
	}
	if t.Style.underline.IsSet() {
		d.Underline = t.Style.underline.String()
	}
	if hc, ok := t.Style.Highlight(); ok {
		d.Highlight = strings.TrimPrefix(hc, "#")
	}
	return d
}

// RestoreStyle 从解码得到的描述尽力还原样式。
//
// 从默认样式开始逐项应用；无法应用的属性被跳过并汇总到返回的错误中，
// 返回的样式总是可用的。fonts 为 nil 时跳过非默认字体。
func RestoreStyle(d RunDescriptor, fonts FontOracle) (Style, error) {
	style := DefaultStyle()
	if d.Bold {
		style = style.WithBoldToggled()
	}
	if d.Italic {
		style = style.WithItalicToggled()
	}
	if d.Size > 0 {
		style = style.WithSize(d.Size)
	}

	var errs []error
	if d.Underline != "" {
		u, err := ParseUnderline(d.Underline)
		if err != nil {
			errs = append(errs, err)
		} else {
			style = style.WithUnderline(u)
		}
	}
	if d.FontColor != "" {
		next, err := style.WithFontColor("#" + d.FontColor)
		if err != nil {
			errs = append(errs, err)
		}
		style = next
	}
	if d.Highlight != "" {
		next, err := style.WithHighlight("#" + d.Highlight)
		if err != nil {
			errs = append(errs, err)
		}
		style = next
	}
	if d.Font != "" && d.Font != style.font {
		if fonts == nil {
			errs = append(errs, fmt.Errorf("跳过字体 %q: %w", d.Font, ErrNoFontOracle))
		} else {
			next, err := style.WithFont(fonts, d.Font)
			if err != nil {
				errs = append(errs, err)
			}
			style = next
		}
	}
	return style, errors.Join(errs...)
}
