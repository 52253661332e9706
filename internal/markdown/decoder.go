// Package markdown 把 Markdown 文本解码为文档内容，作为 DOCX 之外的第二种输入格式
package markdown

import (
	"fmt"
	"io"
	"strings"

	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/cmgsk/edda/pkg/document"
	"github.com/cmgsk/edda/pkg/richtext"
)

// CodeFont 行内代码和代码块使用的字体
const CodeFont = "Courier New"

// headingSizes 一到六级标题的字号
var headingSizes = [6]uint8{24, 20, 16, 14, 12, 12}

// Decoder Markdown 解码器
//
// 段落、标题、列表项和代码块各成为一个段落；**粗体** 与 *斜体* 映射到对应样式，
// 标题加粗并使用 headingSizes 中的字号。表格、图片和内嵌 HTML 被忽略。
type Decoder struct{}

// NewDecoder 创建 Markdown 解码器
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode 实现 document.Decoder；第一个一级标题作为文档标题
func (d *Decoder) Decode(r io.Reader) (*document.Package, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取 Markdown 失败: %w", err)
	}

	root := md.Parse(data, parser.NewWithExtensions(parser.CommonExtensions))

	b := &builder{}
	ast.WalkFunc(root, b.visit)
	b.end()

	return &document.Package{
		Metadata:   document.Metadata{Title: b.title},
		Paragraphs: b.paragraphs,
	}, nil
}

type builder struct {
	paragraphs [][]richtext.RunDescriptor
	current    []richtext.RunDescriptor
	open       bool

	bold    int
	italic  int
	code    bool
	heading int
	title   string
}

func (b *builder) visit(node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.Paragraph:
		if entering {
			b.begin()
		} else {
			b.end()
		}
	case *ast.Heading:
		if entering {
			b.begin()
			b.heading = n.Level
			return ast.GoToNext
		}
		if n.Level == 1 && b.title == "" {
			b.title = strings.TrimSpace(b.currentText())
		}
		b.end()
		b.heading = 0
	case *ast.ListItem:
		if !entering {
			b.end()
		}
	case *ast.Strong:
		b.bold += depth(entering)
	case *ast.Emph:
		b.italic += depth(entering)
	case *ast.Text:
		b.text(strings.ReplaceAll(string(n.Literal), "\n", " "))
	case *ast.Code:
		b.code = true
		b.text(string(n.Literal))
		b.code = false
	case *ast.CodeBlock:
		b.begin()
		b.code = true
		b.text(strings.TrimRight(string(n.Literal), "\n"))
		b.code = false
		b.end()
	case *ast.Softbreak:
		b.text(" ")
	case *ast.Hardbreak:
		b.text("\n")
	case *ast.Table, *ast.Image:
		return ast.SkipChildren
	}
	return ast.GoToNext
}

func depth(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

func (b *builder) begin() {
	b.end()
	b.open = true
	b.current = []richtext.RunDescriptor{}
}

// end 结束当前段落，去掉段尾空白
func (b *builder) end() {
	if !b.open {
		return
	}
	if last := len(b.current) - 1; last >= 0 {
		b.current[last].Text = strings.TrimRight(b.current[last].Text, " ")
		if b.current[last].Text == "" {
			b.current = b.current[:last]
		}
	}
	b.paragraphs = append(b.paragraphs, b.current)
	b.current = nil
	b.open = false
}

// text 以当前样式追加文本，与前一个样式相同的文本块合并
func (b *builder) text(s string) {
	if s == "" {
		return
	}
	if !b.open {
		b.begin()
	}

	run := b.descriptor()
	if last := len(b.current) - 1; last >= 0 {
		prev := b.current[last]
		prev.Text = ""
		if prev == run {
			b.current[last].Text += s
			return
		}
	}
	run.Text = s
	b.current = append(b.current, run)
}

func (b *builder) descriptor() richtext.RunDescriptor {
	d := richtext.NewStyledText("", richtext.DefaultStyle()).Descriptor()
	d.Bold = b.bold > 0 || b.heading > 0
	d.Italic = b.italic > 0
	if b.heading > 0 {
		d.Size = headingSizes[min(b.heading, len(headingSizes))-1]
	}
	if b.code {
		d.Font = CodeFont
	}
	return d
}

func (b *builder) currentText() string {
	var sb strings.Builder
	for _, run := range b.current {
		sb.WriteString(run.Text)
	}
	return sb.String()
}
