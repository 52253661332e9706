package richtext

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTaggedText 解析 TaggedText 生成的 [[tag]]text[[/tag]] 序列
func ParseTaggedText(s string, fonts FontOracle) (*StyledParagraph, error) {
	p := NewParagraph()
	rest := s
	for rest != "" {
		if !strings.HasPrefix(rest, "[[") {
			return nil, fmt.Errorf("%w: 期望 [[，实际 %q", ErrMalformedTag, preview(rest))
		}
		end := strings.Index(rest, "]]")
		if end < 0 {
			return nil, fmt.Errorf("%w: 标签未闭合", ErrMalformedTag)
		}
		tag := rest[2:end]
		rest = rest[end+2:]

		closing := "[[/" + tag + "]]"
		idx := strings.Index(rest, closing)
		if idx < 0 {
			return nil, fmt.Errorf("%w: 缺少结束标签 %s", ErrMalformedTag, closing)
		}
		text := rest[:idx]
		rest = rest[idx+len(closing):]

		style, err := ParseStyleTag(tag, fonts)
		if err != nil {
			return nil, err
		}
		if err := p.Add(StyledText{Text: text, Style: style}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTag, err)
		}
	}
	return p, nil
}

// ParseStyleTag 解析 Style.String 生成的规范标签。
// 默认字体不经过字体查询服务校验。
func ParseStyleTag(tag string, fonts FontOracle) (Style, error) {
	tokens := strings.Split(tag, ";")
	style := DefaultStyle()
	i := 0

	if i < len(tokens) && tokens[i] == "bold" {
		style = style.WithBoldToggled()
		i++
	}
	if i < len(tokens) && tokens[i] == "italic" {
		style = style.WithItalicToggled()
		i++
	}
	if i < len(tokens) {
		if arg, ok := call(tokens[i], "underline"); ok {
			u, err := ParseUnderline(arg)
			if err != nil || !u.IsSet() {
				return Style{}, fmt.Errorf("%w: 下划线 %q", ErrMalformedTag, arg)
			}
			style = style.WithUnderline(u)
			i++
		}
	}
	if i < len(tokens) {
		if arg, ok := call(tokens[i], "hc"); ok {
			next, err := style.WithHighlight(arg)
			if err != nil || arg == "" {
				return Style{}, fmt.Errorf("%w: 高亮 %q", ErrMalformedTag, arg)
			}
			style = next
			i++
		}
	}

	// 剩余部分: pt(n);字体;fc(颜色)，字体名本身可能包含分号
	if len(tokens)-i < 3 {
		return Style{}, fmt.Errorf("%w: %q", ErrMalformedTag, tag)
	}
	arg, ok := call(tokens[i], "pt")
	if !ok {
		return Style{}, fmt.Errorf("%w: 缺少 pt(): %q", ErrMalformedTag, tag)
	}
	size, err := strconv.ParseUint(arg, 10, 8)
	if err != nil {
		return Style{}, fmt.Errorf("%w: 字号 %q", ErrMalformedTag, arg)
	}
	style = style.WithSize(uint8(size))

	color, ok := call(tokens[len(tokens)-1], "fc")
	if !ok {
		return Style{}, fmt.Errorf("%w: 缺少 fc(): %q", ErrMalformedTag, tag)
	}
	if style, err = style.WithFontColor(color); err != nil {
		return Style{}, err
	}

	font := strings.Join(tokens[i+1:len(tokens)-1], ";")
	if font == "" {
		return Style{}, fmt.Errorf("%w: 缺少字体", ErrMalformedTag)
	}
	if font != style.font {
		if style, err = style.WithFont(fonts, font); err != nil {
			return Style{}, err
		}
	}
	return style, nil
}

// call 解析 name(arg) 形式的记号
func call(token, name string) (string, bool) {
	if !strings.HasPrefix(token, name+"(") || !strings.HasSuffix(token, ")") {
		return "", false
	}
	return token[len(name)+1 : len(token)-1], true
}

func preview(s string) string {
	const limit = 16
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
