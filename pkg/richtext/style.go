package richtext

import (
	"errors"
	"strconv"
	"strings"
)

const (
	// DefaultSize 默认字号（磅）
	DefaultSize uint8 = 11
	// DefaultFont 默认字体
	DefaultFont = "Arial"
	// DefaultFontColor 默认字体颜色
	DefaultFontColor = "#000000"
)

// FontOracle 字体查询服务
//
// Exists 在字体存在时返回 nil；字体不存在时返回包装了 ErrFontNotFound 的错误；
// 其他错误视为查询服务故障。
type FontOracle interface {
	Exists(name string) error
}

// Style 一段文本的视觉属性。
//
// Style 是值类型：所有修改方法都返回新的 Style，原值不变，可以直接用 == 比较。
// 字段不可导出，保证字体颜色与高亮颜色始终是合法的十六进制颜色。
type Style struct {
	bold      bool
	italic    bool
	underline Underline
	size      uint8
	font      string
	fontColor string
	highlight string
}

// DefaultStyle 返回默认样式：非粗体、非斜体、无下划线、11 磅 Arial、黑色、无高亮
func DefaultStyle() Style {
	return Style{
		size:      DefaultSize,
		font:      DefaultFont,
		fontColor: DefaultFontColor,
	}
}

func (s Style) Bold() bool           { return s.bold }
func (s Style) Italic() bool         { return s.italic }
func (s Style) Size() uint8          { return s.size }
func (s Style) Font() string         { return s.font }
func (s Style) FontColor() string    { return s.fontColor }
func (s Style) Underline() Underline { return s.underline }

// Highlight 返回高亮颜色，第二个返回值表示是否设置了高亮
func (s Style) Highlight() (string, bool) {
	return s.highlight, s.highlight != ""
}

// WithBoldToggled 切换粗体
func (s Style) WithBoldToggled() Style {
	s.bold = !s.bold
	return s
}

// WithItalicToggled 切换斜体
func (s Style) WithItalicToggled() Style {
	s.italic = !s.italic
	return s
}

// WithUnderline 设置下划线，UnderlineNone 表示取消
func (s Style) WithUnderline(u Underline) Style {
	if !u.IsSet() {
		u = UnderlineNone
	}
	s.underline = u
	return s
}

// WithSize 设置字号
func (s Style) WithSize(points uint8) Style {
	s.size = points
	return s
}

// WithFontColor 设置字体颜色，十六进制数字统一保存为大写
func (s Style) WithFontColor(hex string) (Style, error) {
	if err := CheckHex(hex); err != nil {
		return s, &ValidationError{Field: "font_color", Value: hex, Err: err}
	}
	s.fontColor = strings.ToUpper(hex)
	return s, nil
}

// WithHighlight 设置高亮颜色，空字符串表示取消高亮。十六进制数字统一保存为大写
func (s Style) WithHighlight(hex string) (Style, error) {
	if hex == "" {
		s.highlight = ""
		return s, nil
	}
	if err := CheckHex(hex); err != nil {
		return s, &ValidationError{Field: "highlight_color", Value: hex, Err: err}
	}
	s.highlight = strings.ToUpper(hex)
	return s, nil
}

// WithFont 通过字体查询服务校验后设置字体
func (s Style) WithFont(fonts FontOracle, name string) (Style, error) {
	if fonts == nil {
		return s, &FontQueryError{Font: name, Err: ErrNoFontOracle}
	}
	if err := fonts.Exists(name); err != nil {
		if errors.Is(err, ErrFontNotFound) {
			return s, &ValidationError{Field: "font", Value: name, Err: err}
		}
		return s, &FontQueryError{Font: name, Err: err}
	}
	s.font = name
	return s, nil
}

// Apply 执行一条样式命令，失败时返回原样式和错误
func (s Style) Apply(cmd Command) (Style, error) {
	if cmd == nil {
		return s, nil
	}
	return cmd.apply(s)
}

// String 返回规范标签，例如 bold;italic;underline(dash);hc(#FFFF00);pt(11);Arial;fc(#000000)
func (s Style) String() string {
	var sb strings.Builder
	if s.bold {
		sb.WriteString("bold;")
	}
	if s.italic {
		sb.WriteString("italic;")
	}
	if s.underline.IsSet() {
		sb.WriteString("underline(")
		sb.WriteString(s.underline.String())
		sb.WriteString(");")
	}
	if s.highlight != "" {
		sb.WriteString("hc(")
		sb.WriteString(s.highlight)
		sb.WriteString(");")
	}
	sb.WriteString("pt(")
	sb.WriteString(strconv.Itoa(int(s.size)))
	sb.WriteString(");")
	sb.WriteString(s.font)
	sb.WriteString(";fc(")
	sb.WriteString(s.fontColor)
	sb.WriteString(")")
	return sb.String()
}

// CheckHex 校验 # 加 6 位或 8 位十六进制数字
func CheckHex(s string) error {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok || (len(digits) != 6 && len(digits) != 8) {
		return ErrInvalidHexColor
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return ErrInvalidHexColor
		}
	}
	return nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
