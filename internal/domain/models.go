package domain

import (
	"context"

	"github.com/cmgsk/edda/pkg/document"
	"github.com/cmgsk/edda/pkg/richtext"
)

// DocumentProcessor 文档处理器接口
type DocumentProcessor interface {
	// RestyleDocument 加载文档并应用样式规则，不写出文件
	RestyleDocument(ctx context.Context, inputPath string) (*document.Document, *ProcessResult, error)
	// ProcessDocument 加载、应用样式规则并保存为 DOCX
	ProcessDocument(ctx context.Context, inputPath, outputPath string) (*ProcessResult, error)
	ValidateDocument(inputPath string) error
}

// Format 输入文档格式
type Format string

const (
	FormatDocx     Format = "docx"
	FormatMarkdown Format = "markdown"
)

// StyleRule 一条已解析的样式规则：把段落中的 Chunk 改为 Style
type StyleRule struct {
	Chunk    string
	Spanning bool // 允许跨越文本块边界
	Style    richtext.Style
}

// RuleStats 单条规则的命中统计
type RuleStats struct {
	Chunk    string
	Spanning bool
	Matches  int // 命中的段落数
	// Occurrences 处理前片段在文档中出现的总次数；每段只修改第一次出现
	Occurrences int
}

// ProcessResult 单个文档的处理结果
type ProcessResult struct {
	InputPath  string
	OutputPath string
	Format     Format
	Paragraphs int
	Rules      []RuleStats
}

// TotalMatches 所有规则的命中总数
func (r *ProcessResult) TotalMatches() int {
	total := 0
	for _, rule := range r.Rules {
		total += rule.Matches
	}
	return total
}

// BatchResult 批量处理结果
type BatchResult struct {
	ProcessedFiles int
	FailedFiles    int
	Matches        int
	Errors         []error
}

// Success 是否全部成功
func (r *BatchResult) Success() bool {
	return r.FailedFiles == 0
}
