package document

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/cmgsk/edda/pkg/richtext"
)

// Document 按阅读顺序排列的段落及其元数据。
//
// Document 独占自己的段落和元数据：传入和取出的段落都会被拷贝，
// EditParagraph 是唯一返回内部段落的方法。Document 不是并发安全的。
type Document struct {
	metadata   Metadata
	paragraphs []*richtext.StyledParagraph
}

// New 创建指定标题的空文档，并分配随机标识
func New(title string) *Document {
	return &Document{
		metadata: Metadata{
			Title:      title,
			Identifier: uuid.NewString(),
		},
	}
}

// NewWithContent 创建带有初始段落的文档
func NewWithContent(title string, paragraphs ...*richtext.StyledParagraph) *Document {
	d := New(title)
	for _, p := range paragraphs {
		d.AddParagraph(p)
	}
	return d
}

// Metadata 返回元数据副本
func (d *Document) Metadata() Metadata {
	return d.metadata.Clone()
}

// SetMetadata 整体替换元数据
func (d *Document) SetMetadata(m Metadata) {
	d.metadata = m.Clone()
}

// Title 文档标题
func (d *Document) Title() string {
	return d.metadata.Title
}

// AddParagraph 在末尾追加段落；nil 视为空段落
func (d *Document) AddParagraph(p *richtext.StyledParagraph) {
	d.paragraphs = append(d.paragraphs, own(p))
}

// InsertParagraph 在 index 处插入段落，index 可以等于 ParagraphCount()
func (d *Document) InsertParagraph(index int, p *richtext.StyledParagraph) error {
	if index < 0 || index > len(d.paragraphs) {
		return richtext.ErrIndexOutOfRange
	}
	d.paragraphs = slices.Insert(d.paragraphs, index, own(p))
	return nil
}

// ReplaceParagraph 替换第 index 个段落，返回被替换的段落
func (d *Document) ReplaceParagraph(index int, p *richtext.StyledParagraph) (*richtext.StyledParagraph, error) {
	if index < 0 || index >= len(d.paragraphs) {
		return nil, richtext.ErrIndexOutOfRange
	}
	old := d.paragraphs[index]
	d.paragraphs[index] = own(p)
	return old, nil
}

// RemoveParagraph 删除并返回第 index 个段落；越界时返回 false
func (d *Document) RemoveParagraph(index int) (*richtext.StyledParagraph, bool) {
	if index < 0 || index >= len(d.paragraphs) {
		return nil, false
	}
	removed := d.paragraphs[index]
	d.paragraphs = slices.Delete(d.paragraphs, index, index+1)
	return removed, true
}

// Paragraph 返回第 index 个段落的副本；越界时返回 false
func (d *Document) Paragraph(index int) (*richtext.StyledParagraph, bool) {
	if index < 0 || index >= len(d.paragraphs) {
		return nil, false
	}
	return d.paragraphs[index].Clone(), true
}

// EditParagraph 返回第 index 个段落本身，对它的修改直接作用于文档；越界时返回 false
func (d *Document) EditParagraph(index int) (*richtext.StyledParagraph, bool) {
	if index < 0 || index >= len(d.paragraphs) {
		return nil, false
	}
	return d.paragraphs[index], true
}

// Paragraphs 返回所有段落的副本
func (d *Document) Paragraphs() []*richtext.StyledParagraph {
	out := make([]*richtext.StyledParagraph, len(d.paragraphs))
	for i, p := range d.paragraphs {
		out[i] = p.Clone()
	}
	return out
}

// ParagraphCount 段落数量
func (d *Document) ParagraphCount() int {
	return len(d.paragraphs)
}

// IsEmpty 文档是否没有段落
func (d *Document) IsEmpty() bool {
	return len(d.paragraphs) == 0
}

// Text 依次拼接所有段落的文本，段落之间不插入分隔符。
// tagged 为 true 时使用每个文本块的标签文本。
func (d *Document) Text(tagged bool) string {
	var sb strings.Builder
	for _, p := range d.paragraphs {
		if tagged {
			sb.WriteString(p.TaggedText())
		} else {
			sb.WriteString(p.Text())
		}
	}
	return sb.String()
}

// Package 生成交给编码器的文档内容
func (d *Document) Package() *Package {
	pkg := &Package{
		Metadata:   d.metadata.Clone(),
		Paragraphs: make([][]richtext.RunDescriptor, 0, len(d.paragraphs)),
	}
	for _, p := range d.paragraphs {
		pkg.Paragraphs = append(pkg.Paragraphs, p.Descriptors())
	}
	return pkg
}

func own(p *richtext.StyledParagraph) *richtext.StyledParagraph {
	if p == nil {
		return richtext.NewParagraph()
	}
	return p.Clone()
}
