// Package render 把文档输出为带 ANSI 样式的终端文本
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/cmgsk/edda/pkg/document"
	"github.com/cmgsk/edda/pkg/richtext"
)

// Renderer 终端渲染器，每个段落输出一行
type Renderer struct {
	out *termenv.Output
}

// New 创建使用指定颜色配置的渲染器；termenv.Ascii 输出纯文本
func New(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// NewAuto 根据终端能力自动选择颜色配置
func NewAuto(w io.Writer) *Renderer {
	return &Renderer{out: termenv.NewOutput(w)}
}

// Render 输出整个文档
func (r *Renderer) Render(d *document.Document) error {
	for i, p := range d.Paragraphs() {
		if _, err := fmt.Fprintln(r.out, r.Paragraph(p)); err != nil {
			return fmt.Errorf("输出第 %d 段失败: %w", i+1, err)
		}
	}
	return nil
}

// Paragraph 渲染单个段落
func (r *Renderer) Paragraph(p *richtext.StyledParagraph) string {
	var sb strings.Builder
	for _, run := range p.Runs() {
		sb.WriteString(r.run(run))
	}
	return sb.String()
}

func (r *Renderer) run(run richtext.StyledText) string {
	s := r.out.String(run.Text)
	style := run.Style

	if style.Bold() {
		s = s.Bold()
	}
	if style.Italic() {
		s = s.Italic()
	}
	if style.Underline().IsSet() {
		s = s.Underline()
	}
	// 默认黑色不着色，避免在深色终端上看不见
	if fc := style.FontColor(); fc != richtext.DefaultFontColor {
		s = s.Foreground(r.out.Color(rgbHex(fc)))
	}
	if hc, ok := style.Highlight(); ok {
		s = s.Background(r.out.Color(rgbHex(hc)))
	}
	return s.String()
}

// rgbHex 去掉 #RRGGBBAA 的透明度分量
func rgbHex(hex string) string {
	if len(hex) > 7 {
		return hex[:7]
	}
	return hex
}
