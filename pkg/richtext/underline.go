package richtext

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Underline 下划线样式，零值表示无下划线
type Underline uint8

const (
	UnderlineNone Underline = iota
	UnderlineSingle
	UnderlineWords
	UnderlineDouble
	UnderlineThick
	UnderlineDotted
	UnderlineDottedHeavy
	UnderlineDash
	UnderlineDashedHeavy
	UnderlineDashLong
	UnderlineDashLongHeavy
	UnderlineDotDash
	UnderlineDashDotHeavy
	UnderlineDotDotDash
	UnderlineDashDotDotHeavy
	UnderlineWave
	UnderlineWavyHeavy
	UnderlineWavyDouble
)

// underlineNames 与 WordprocessingML w:u 的取值一致
var underlineNames = [...]string{
	UnderlineNone:            "none",
	UnderlineSingle:          "single",
	UnderlineWords:           "words",
	UnderlineDouble:          "double",
	UnderlineThick:           "thick",
	UnderlineDotted:          "dotted",
	UnderlineDottedHeavy:     "dottedHeavy",
	UnderlineDash:            "dash",
	UnderlineDashedHeavy:     "dashedHeavy",
	UnderlineDashLong:        "dashLong",
	UnderlineDashLongHeavy:   "dashLongHeavy",
	UnderlineDotDash:         "dotDash",
	UnderlineDashDotHeavy:    "dashDotHeavy",
	UnderlineDotDotDash:      "dotDotDash",
	UnderlineDashDotDotHeavy: "dashDotDotHeavy",
	UnderlineWave:            "wave",
	UnderlineWavyHeavy:       "wavyHeavy",
	UnderlineWavyDouble:      "wavyDouble",
}

// Underlines 返回全部 17 种下划线样式
func Underlines() []Underline {
	out := make([]Underline, 0, len(underlineNames)-1)
	for u := UnderlineSingle; int(u) < len(underlineNames); u++ {
		out = append(out, u)
	}
	return out
}

// String 返回小驼峰名称
func (u Underline) String() string {
	if int(u) < len(underlineNames) {
		return underlineNames[u]
	}
	return fmt.Sprintf("Underline(%d)", uint8(u))
}

// IsSet 是否带下划线
func (u Underline) IsSet() bool {
	return u != UnderlineNone && int(u) < len(underlineNames)
}

// ParseUnderline 解析下划线名称，兼容 dash_long、DashLong、dash-long 等写法
func ParseUnderline(name string) (Underline, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return UnderlineNone, nil
	}

	normalized := strcase.ToLowerCamel(trimmed)
	for i, candidate := range underlineNames {
		if candidate == normalized || strings.EqualFold(candidate, trimmed) {
			return Underline(i), nil
		}
	}
	return UnderlineNone, fmt.Errorf("未知的下划线样式: %s", name)
}
