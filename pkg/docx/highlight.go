package docx

import "strings"

// highlightNames w:highlight 支持的 16 种命名颜色
var highlightNames = map[string]string{
	"black":       "000000",
	"blue":        "0000FF",
	"cyan":        "00FFFF",
	"green":       "00FF00",
	"magenta":     "FF00FF",
	"red":         "FF0000",
	"yellow":      "FFFF00",
	"white":       "FFFFFF",
	"darkBlue":    "000080",
	"darkCyan":    "008080",
	"darkGreen":   "008000",
	"darkMagenta": "800080",
	"darkRed":     "800000",
	"darkYellow":  "808000",
	"darkGray":    "808080",
	"lightGray":   "C0C0C0",
}

var highlightByHex = func() map[string]string {
	m := make(map[string]string, len(highlightNames))
	for name, hex := range highlightNames {
		m[hex] = name
	}
	return m
}()

// highlightName 返回 RRGGBB 对应的命名高亮颜色
func highlightName(rgb string) (string, bool) {
	name, ok := highlightByHex[strings.ToUpper(rgb)]
	return name, ok
}

// highlightHex 返回命名高亮颜色对应的 RRGGBB；none 或未知名称返回 false
func highlightHex(name string) (string, bool) {
	hex, ok := highlightNames[name]
	return hex, ok
}

// rgb 去掉 RRGGBBAA 的透明度分量，包内只保存 RRGGBB
func rgb(hex string) string {
	if len(hex) == 8 {
		return hex[:6]
	}
	return hex
}
