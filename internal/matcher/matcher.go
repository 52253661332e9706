package matcher

import (
	"strings"
)

// Span 描述一个文本片段在连续文本块中的位置
//
// StartOffset 是片段在 StartRun 内的起始字节偏移；EndOffset 是片段在 EndRun 内的
// 结束字节偏移（不含）。两者都是 UTF-8 字节偏移。
type Span struct {
	StartRun    int
	StartOffset int
	EndRun      int
	EndOffset   int
}

// SingleRun 片段是否完全落在一个文本块内
func (s Span) SingleRun() bool {
	return s.StartRun == s.EndRun
}

// FindWithinRun 按顺序逐块查找第一个完整包含 chunk 的文本块
func FindWithinRun(texts []string, chunk string) (Span, bool) {
	if chunk == "" {
		return Span{}, false
	}

	for i, text := range texts {
		if offset := strings.Index(text, chunk); offset >= 0 {
			return Span{
				StartRun:    i,
				StartOffset: offset,
				EndRun:      i,
				EndOffset:   offset + len(chunk),
			}, true
		}
	}
	return Span{}, false
}

// FindAcrossRuns 把全部文本块视为一个连续字符串，查找 chunk 第一次出现的位置，
// 片段可以跨越多个文本块
func FindAcrossRuns(texts []string, chunk string) (Span, bool) {
	if chunk == "" {
		return Span{}, false
	}

	start := strings.Index(strings.Join(texts, ""), chunk)
	if start < 0 {
		return Span{}, false
	}
	end := start + len(chunk)

	// 把全局偏移换算为 (文本块, 块内偏移)
	var span Span
	located := false
	pos := 0
	for i, text := range texts {
		next := pos + len(text)
		if !located && start < next {
			span.StartRun = i
			span.StartOffset = start - pos
			located = true
		}
		if located && end <= next {
			span.EndRun = i
			span.EndOffset = end - pos
			return span, true
		}
		pos = next
	}
	return Span{}, false
}

// CountAcrossRuns 统计 chunk 在连续文本中不重叠出现的次数
func CountAcrossRuns(texts []string, chunk string) int {
	if chunk == "" {
		return 0
	}
	return strings.Count(strings.Join(texts, ""), chunk)
}
