package richtext

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cmgsk/edda/internal/matcher"
)

// StyledParagraph 由多个带样式文本块组成的段落。
//
// 按顺序拼接各文本块的内容即为段落全文；文本块内容永不为空。
// 段落只改变样式边界，不增删文字。
type StyledParagraph struct {
	runs []StyledText
}

// NewParagraph 创建空段落
func NewParagraph() *StyledParagraph {
	return &StyledParagraph{}
}

// NewParagraphFromRuns 用给定文本块创建段落
func NewParagraphFromRuns(runs ...StyledText) (*StyledParagraph, error) {
	p := NewParagraph()
	for _, run := range runs {
		if err := p.Add(run); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Add 在末尾追加文本块
func (p *StyledParagraph) Add(run StyledText) error {
	if run.Text == "" {
		return ErrEmptyRun
	}
	p.runs = append(p.runs, run)
	return nil
}

// Prepend 在开头插入文本块
func (p *StyledParagraph) Prepend(run StyledText) error {
	return p.Insert(0, run)
}

// Insert 在 index 处插入文本块，index 可以等于 Len()
func (p *StyledParagraph) Insert(index int, run StyledText) error {
	if index < 0 || index > len(p.runs) {
		return ErrIndexOutOfRange
	}
	if run.Text == "" {
		return ErrEmptyRun
	}
	p.runs = slices.Insert(p.runs, index, run)
	return nil
}

// Len 文本块数量
func (p *StyledParagraph) Len() int {
	return len(p.runs)
}

// Run 返回第 index 个文本块
func (p *StyledParagraph) Run(index int) (StyledText, bool) {
	if index < 0 || index >= len(p.runs) {
		return StyledText{}, false
	}
	return p.runs[index], true
}

// Runs 返回文本块副本
func (p *StyledParagraph) Runs() []StyledText {
	return slices.Clone(p.runs)
}

// Text 段落纯文本
func (p *StyledParagraph) Text() string {
	var sb strings.Builder
	for _, run := range p.runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// TaggedText 依次拼接每个文本块的标签文本，空段落返回空字符串
func (p *StyledParagraph) TaggedText() string {
	var sb strings.Builder
	for _, run := range p.runs {
		sb.WriteString(run.TaggedText())
	}
	return sb.String()
}

// Descriptors 返回交给编码器的文本块描述
func (p *StyledParagraph) Descriptors() []RunDescriptor {
	out := make([]RunDescriptor, 0, len(p.runs))
	for _, run := range p.runs {
		out = append(out, run.Descriptor())
	}
	return out
}

// Clone 深拷贝段落
func (p *StyledParagraph) Clone() *StyledParagraph {
	return &StyledParagraph{runs: slices.Clone(p.runs)}
}

// Modify 把第一个完整包含 chunk 的文本块中的该片段改为 style。
//
// 匹配的文本块被拆分为至多三块：前缀（原样式）、chunk（新样式）、后缀（原样式），
// 空的前缀和后缀被省略。失败时段落不变。
func (p *StyledParagraph) Modify(style Style, chunk string) error {
	if err := checkChunk(chunk); err != nil {
		return err
	}

	span, ok := matcher.FindWithinRun(p.texts(), chunk)
	if !ok {
		return &ModifyError{Chunk: chunk, Err: ErrChunkNotFound}
	}
	p.splice(span, style, chunk)
	return nil
}

// ModifySpanning 把段落全文中第一次出现的 chunk 改为 style，chunk 可以跨越多个文本块。
//
// 起始块的前缀保留起始块样式，结束块的后缀保留结束块样式，完全位于 chunk 内部的
// 文本块连同其原有样式被整体替换。失败时段落不变。
func (p *StyledParagraph) ModifySpanning(style Style, chunk string) error {
	if err := checkChunk(chunk); err != nil {
		return err
	}

	span, ok := matcher.FindAcrossRuns(p.texts(), chunk)
	if !ok {
		return &ModifyError{Chunk: chunk, Err: ErrChunkNotFound}
	}
	p.splice(span, style, chunk)
	return nil
}

// Occurrences 统计 chunk 在段落全文中不重叠出现的次数，包括跨块出现
func (p *StyledParagraph) Occurrences(chunk string) int {
	return matcher.CountAcrossRuns(p.texts(), chunk)
}

// Compact 合并样式相同的相邻文本块
func (p *StyledParagraph) Compact() {
	if len(p.runs) < 2 {
		return
	}

	merged := make([]StyledText, 0, len(p.runs))
	for _, run := range p.runs {
		if last := len(merged) - 1; last >= 0 && merged[last].Style == run.Style {
			merged[last].Text += run.Text
			continue
		}
		merged = append(merged, run)
	}
	p.runs = merged
}

// splice 用 前缀/新片段/后缀 替换 span 覆盖的文本块
func (p *StyledParagraph) splice(span matcher.Span, style Style, chunk string) {
	first := p.runs[span.StartRun]
	last := p.runs[span.EndRun]

	replacement := make([]StyledText, 0, 3)
	if prefix := first.Text[:span.StartOffset]; prefix != "" {
		replacement = append(replacement, StyledText{Text: prefix, Style: first.Style})
	}
	replacement = append(replacement, StyledText{Text: chunk, Style: style})
	if suffix := last.Text[span.EndOffset:]; suffix != "" {
		replacement = append(replacement, StyledText{Text: suffix, Style: last.Style})
	}

	p.runs = slices.Replace(p.runs, span.StartRun, span.EndRun+1, replacement...)
}

func (p *StyledParagraph) texts() []string {
	texts := make([]string, len(p.runs))
	for i, run := range p.runs {
		texts[i] = run.Text
	}
	return texts
}

// checkChunk 在查找之前校验 chunk；非法 UTF-8 不可能作为文本出现，按未找到处理
func checkChunk(chunk string) error {
	if chunk == "" {
		return &ModifyError{Chunk: chunk, Err: ErrEmptyChunk}
	}
	if !utf8.ValidString(chunk) {
		return &ModifyError{Chunk: chunk, Err: ErrChunkNotFound}
	}
	return nil
}
