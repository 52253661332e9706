package richtext

// Command 一条样式修改命令
type Command interface {
	apply(s Style) (Style, error)
}

// ToggleBold 切换粗体
type ToggleBold struct{}

// ToggleItalic 切换斜体
type ToggleItalic struct{}

// SetUnderline 设置下划线，UnderlineNone 表示取消
type SetUnderline struct {
	Variant Underline
}

// SetSize 设置字号（磅）
type SetSize struct {
	Points uint8
}

// SetColor 设置字体颜色
type SetColor struct {
	Hex string
}

// SetHighlight 设置高亮颜色，Hex 为空表示取消
type SetHighlight struct {
	Hex string
}

// SetFont 设置字体，Fonts 用于校验字体是否存在
type SetFont struct {
	Name  string
	Fonts FontOracle
}

func (ToggleBold) apply(s Style) (Style, error)     { return s.WithBoldToggled(), nil }
func (ToggleItalic) apply(s Style) (Style, error)   { return s.WithItalicToggled(), nil }
func (c SetUnderline) apply(s Style) (Style, error) { return s.WithUnderline(c.Variant), nil }
func (c SetSize) apply(s Style) (Style, error)      { return s.WithSize(c.Points), nil }
func (c SetColor) apply(s Style) (Style, error)     { return s.WithFontColor(c.Hex) }
func (c SetHighlight) apply(s Style) (Style, error) { return s.WithHighlight(c.Hex) }
func (c SetFont) apply(s Style) (Style, error)      { return s.WithFont(c.Fonts, c.Name) }
