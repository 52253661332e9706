package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/cmgsk/edda/pkg/document"
	"github.com/cmgsk/edda/pkg/richtext"
)

// DefaultApplication 写入 docProps/app.xml 的默认应用名
const DefaultApplication = "edda"

// Encoder 把文档内容写成 .docx 文件包
type Encoder struct {
	// Application 写入 app.xml 的应用名
	Application string
	// Now 提供 created/modified 时间，测试时可替换
	Now func() time.Time
}

// ErrInvalidXMLChar 文本中有 XML 1.0 无法表示的字符，例如 \v 或其他 C0 控制字符
var ErrInvalidXMLChar = errors.New("文本包含 XML 不允许的字符")

// NewEncoder 创建默认的 DOCX 编码器
func NewEncoder() *Encoder {
	return &Encoder{
		Application: DefaultApplication,
		Now:         time.Now,
	}
}

// Encode 把 pkg 写成 DOCX 文件包。
//
// 八位颜色只保留 RRGGBB；高亮颜色是 16 种命名颜色之一时写成 w:highlight，
// 否则写成底纹填充。文本或元数据中有 XML 无法表示的字符时返回 ErrInvalidXMLChar，
// 不写入任何数据。
func (e *Encoder) Encode(w io.Writer, pkg *document.Package) error {
	if pkg == nil {
		return fmt.Errorf("文档内容不能为空")
	}
	if err := checkPackageText(pkg); err != nil {
		return err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	application := e.Application
	if application == "" {
		application = DefaultApplication
	}

	body, err := marshalPart(buildDocument(pkg.Paragraphs))
	if err != nil {
		return fmt.Errorf("生成 %s 失败: %w", partDocument, err)
	}
	core, err := marshalPart(newCoreProperties(pkg.Metadata, now()))
	if err != nil {
		return fmt.Errorf("生成 %s 失败: %w", partCore, err)
	}
	app, err := marshalPart(newAppProperties(application, len(pkg.Paragraphs)))
	if err != nil {
		return fmt.Errorf("生成 %s 失败: %w", partApp, err)
	}

	// 按文件头识别 DOCX 时检查第一个和第三个条目的名称，
	// 所以 [Content_Types].xml 排第一，word/document.xml 排第三
	parts := []struct {
		name string
		data []byte
	}{
		{partContentTypes, withHeader(contentTypesXML)},
		{partRootRels, withHeader(rootRelsXML)},
		{partDocument, body},
		{partDocumentRels, withHeader(documentRelsXML)},
		{partStyles, withHeader(stylesXML)},
		{partCore, core},
		{partApp, app},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("创建 %s 失败: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("关闭 ZIP 写入器失败: %w", err)
	}
	return nil
}

// checkPackageText 检查所有会写入 XML 的文本
func checkPackageText(pkg *document.Package) error {
	for i, runs := range pkg.Paragraphs {
		for j, run := range runs {
			if err := checkXMLText(run.Text); err != nil {
				return fmt.Errorf("第 %d 段第 %d 个文本块: %w", i+1, j+1, err)
			}
			if err := checkXMLText(run.Font); err != nil {
				return fmt.Errorf("第 %d 段第 %d 个文本块的字体: %w", i+1, j+1, err)
			}
		}
	}

	m := pkg.Metadata
	fields := []string{m.Title, m.Description, m.Category, m.Version, m.Status, m.Language, m.Identifier}
	fields = append(fields, m.Authors...)
	fields = append(fields, m.Keywords...)
	for _, field := range fields {
		if err := checkXMLText(field); err != nil {
			return fmt.Errorf("文档属性: %w", err)
		}
	}
	return nil
}

func checkXMLText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: 无效的 UTF-8 编码", ErrInvalidXMLChar)
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("%w: %U", ErrInvalidXMLChar, r)
		}
	}
	return nil
}

// isXMLChar XML 1.0 的 Char 产生式
func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

func buildDocument(paragraphs [][]richtext.RunDescriptor) xmlDocument {
	doc := xmlDocument{
		XmlnsW: nsWordML,
		XmlnsR: nsRelationships,
	}
	doc.Body.Paragraphs = make([]xmlParagraph, 0, len(paragraphs))
	for _, runs := range paragraphs {
		var p xmlParagraph
		for _, run := range runs {
			if run.Text == "" {
				continue
			}
			p.Runs = append(p.Runs, xmlRun{
				Props:   buildRunProps(run),
				Content: splitRunText(run.Text),
			})
		}
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, p)
	}
	return doc
}

func buildRunProps(run richtext.RunDescriptor) *xmlRunProps {
	props := &xmlRunProps{}
	if run.Font != "" {
		props.Fonts = &xmlFonts{ASCII: run.Font, HAnsi: run.Font, EastAsia: run.Font, CS: run.Font}
	}
	if run.Bold {
		props.Bold = &struct{}{}
	}
	if run.Italic {
		props.Italic = &struct{}{}
	}
	if run.FontColor != "" {
		props.Color = &xmlVal{Val: rgb(run.FontColor)}
	}
	if run.Size > 0 {
		halfPoints := strconv.Itoa(int(run.Size) * 2)
		props.Size = &xmlVal{Val: halfPoints}
		props.SizeCS = &xmlVal{Val: halfPoints}
	}
	if run.Highlight != "" {
		fill := rgb(run.Highlight)
		if name, ok := highlightName(fill); ok {
			props.Highlight = &xmlVal{Val: name}
		} else {
			props.Shading = &xmlShading{Val: "clear", Color: "auto", Fill: fill}
		}
	}
	if run.Underline != "" {
		props.Underline = &xmlVal{Val: run.Underline}
	}
	if *props == (xmlRunProps{}) {
		return nil
	}
	return props
}

func marshalPart(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), data...), nil
}

func withHeader(body string) []byte {
	return []byte(xmlHeader + body)
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
