package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	ndocx "github.com/nguyenthenguyen/docx"

	"github.com/cmgsk/edda/pkg/document"
	"github.com/cmgsk/edda/pkg/richtext"
)

// Decoder 从 .docx 文件包读取段落和文本块样式
type Decoder struct{}

// NewDecoder 创建 DOCX 解码器
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode 读取 r 中的 DOCX 文件包。
//
// 正文来自 word/document.xml，元数据来自 docProps/core.xml（缺失时为空）。
// 图片、图形和嵌入对象被跳过，不含文字的文本块被丢弃。
func (d *Decoder) Decode(r io.Reader) (*document.Package, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取文档包失败: %w", err)
	}

	content, err := readDocumentXML(data)
	if err != nil {
		return nil, err
	}

	paragraphs, err := parseBody(content)
	if err != nil {
		return nil, err
	}

	metadata, err := readMetadata(data)
	if err != nil {
		return nil, err
	}

	return &document.Package{Metadata: metadata, Paragraphs: paragraphs}, nil
}

// readDocumentXML 通过 nguyenthenguyen/docx 取得 word/document.xml 的内容
func readDocumentXML(data []byte) (string, error) {
	reader, err := ndocx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("打开DOCX文件失败: %w", err)
	}
	defer reader.Close()

	return reader.Editable().GetContent(), nil
}

func readMetadata(data []byte) (document.Metadata, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return document.Metadata{}, fmt.Errorf("打开DOCX文件失败: %w", err)
	}

	f, err := zr.Open(partCore)
	if errors.Is(err, fs.ErrNotExist) {
		return document.Metadata{}, nil
	}
	if err != nil {
		return document.Metadata{}, fmt.Errorf("打开 %s 失败: %w", partCore, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return document.Metadata{}, fmt.Errorf("读取 %s 失败: %w", partCore, err)
	}
	return parseCoreProperties(raw)
}

// skipped 不包含正文文本的元素，整体跳过
var skipped = map[string]bool{
	"drawing":          true,
	"pict":             true,
	"object":           true,
	"AlternateContent": true,
	"delText":          true,
	"instrText":        true,
	"rPrChange":        true,
	"pPrChange":        true,
}

// bodyParser 按元素本地名解析 document.xml
type bodyParser struct {
	dec        *xml.Decoder
	paragraphs [][]richtext.RunDescriptor

	paragraph []richtext.RunDescriptor
	inPara    bool
	inPPr     bool

	run   *richtext.RunDescriptor
	text  strings.Builder
	inRPr bool
}

func parseBody(content string) ([][]richtext.RunDescriptor, error) {
	p := &bodyParser{dec: xml.NewDecoder(strings.NewReader(content))}
	if err := p.parse(); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", partDocument, err)
	}
	return p.paragraphs, nil
}

func (p *bodyParser) parse() error {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.start(t); err != nil {
				return err
			}
		case xml.EndElement:
			p.end(t)
		}
	}
}

func (p *bodyParser) start(t xml.StartElement) error {
	name := t.Name.Local
	if skipped[name] {
		return p.dec.Skip()
	}

	switch {
	case name == "p":
		p.inPara = true
		p.paragraph = []richtext.RunDescriptor{}
	case name == "pPr":
		p.inPPr = true
	case name == "r" && p.inPara && !p.inPPr:
		p.run = &richtext.RunDescriptor{}
		p.text.Reset()
	case name == "rPr" && p.run != nil:
		p.inRPr = true
	case p.inRPr:
		applyRunProperty(p.run, t)
	case p.run == nil:
	case name == "t":
		var s string
		if err := p.dec.DecodeElement(&s, &t); err != nil {
			return err
		}
		p.text.WriteString(s)
	case name == "tab":
		p.text.WriteByte('\t')
	case name == "br" || name == "cr":
		p.text.WriteByte('\n')
	}
	return nil
}

func (p *bodyParser) end(t xml.EndElement) {
	switch t.Name.Local {
	case "p":
		if p.inPara {
			p.paragraphs = append(p.paragraphs, p.paragraph)
		}
		p.inPara = false
		p.paragraph = nil
	case "pPr":
		p.inPPr = false
	case "rPr":
		p.inRPr = false
	case "r":
		if p.run != nil {
			p.run.Text = p.text.String()
			if p.run.Text != "" {
				p.paragraph = append(p.paragraph, *p.run)
			}
		}
		p.run = nil
	}
}

// applyRunProperty 把一个 w:rPr 子元素合并到文本块描述
func applyRunProperty(run *richtext.RunDescriptor, t xml.StartElement) {
	val, hasVal := attr(t, "val")
	switch t.Name.Local {
	case "b":
		run.Bold = !hasVal || isOn(val)
	case "i":
		run.Italic = !hasVal || isOn(val)
	case "u":
		if val == "none" {
			run.Underline = ""
		} else if hasVal {
			run.Underline = val
		}
	case "sz":
		if n, err := strconv.Atoi(val); err == nil && n/2 > 0 && n/2 <= 255 {
			run.Size = uint8(n / 2)
		}
	case "color":
		if hasVal && val != "auto" {
			run.FontColor = strings.ToUpper(val)
		}
	case "highlight":
		if hex, ok := highlightHex(val); ok {
			run.Highlight = hex
		}
	case "shd":
		if fill, ok := attr(t, "fill"); ok && fill != "auto" && run.Highlight == "" {
			run.Highlight = strings.ToUpper(fill)
		}
	case "rFonts":
		for _, key := range []string{"ascii", "hAnsi", "eastAsia", "cs"} {
			if font, ok := attr(t, key); ok && font != "" {
				run.Font = font
				break
			}
		}
	}
}

func attr(t xml.StartElement, local string) (string, bool) {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func isOn(val string) bool {
	switch strings.ToLower(val) {
	case "0", "false", "off":
		return false
	}
	return true
}
