package docx

import (
	"encoding/xml"
)

const (
	nsWordML        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
)

const contentTypesXML = `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const rootRelsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

// stylesXML 文档默认字体与 Normal 样式，与 richtext.DefaultStyle 一致（11 磅 = 22 半磅）
const stylesXML = `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Arial" w:hAnsi="Arial" w:eastAsia="Arial" w:cs="Arial"/>` +
	`<w:color w:val="000000"/><w:sz w:val="22"/><w:szCs w:val="22"/>` +
	`</w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`</w:styles>`

// xmlDocument word/document.xml 根元素
type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"w:p"`
	Section    struct{}       `xml:"w:sectPr"`
}

type xmlParagraph struct {
	Runs []xmlRun `xml:"w:r"`
}

type xmlRun struct {
	Props   *xmlRunProps    `xml:"w:rPr,omitempty"`
	Content []xmlRunContent // w:t / w:tab / w:br，元素名由 XMLName 决定
}

type xmlRunContent struct {
	XMLName xml.Name
	Space   string `xml:"xml:space,attr,omitempty"`
	Text    string `xml:",chardata"`
}

// xmlRunProps 文本块属性，字段顺序即 CT_RPr 要求的元素顺序
type xmlRunProps struct {
	Fonts     *xmlFonts   `xml:"w:rFonts,omitempty"`
	Bold      *struct{}   `xml:"w:b,omitempty"`
	Italic    *struct{}   `xml:"w:i,omitempty"`
	Color     *xmlVal     `xml:"w:color,omitempty"`
	Size      *xmlVal     `xml:"w:sz,omitempty"`
	SizeCS    *xmlVal     `xml:"w:szCs,omitempty"`
	Highlight *xmlVal     `xml:"w:highlight,omitempty"`
	Underline *xmlVal     `xml:"w:u,omitempty"`
	Shading   *xmlShading `xml:"w:shd,omitempty"`
}

type xmlFonts struct {
	ASCII    string `xml:"w:ascii,attr"`
	HAnsi    string `xml:"w:hAnsi,attr"`
	EastAsia string `xml:"w:eastAsia,attr"`
	CS       string `xml:"w:cs,attr"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlShading struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

func runContent(local, text string) xmlRunContent {
	c := xmlRunContent{XMLName: xml.Name{Local: local}, Text: text}
	if local == "w:t" {
		c.Space = "preserve"
	}
	return c
}

// splitRunText 把文本拆成 w:t 元素，制表符和换行分别写成 w:tab 和 w:br
func splitRunText(text string) []xmlRunContent {
	var out []xmlRunContent
	start := 0
	for i := 0; i < len(text); i++ {
		var local string
		switch text[i] {
		case '\t':
			local = "w:tab"
		case '\n':
			local = "w:br"
		default:
			continue
		}
		if start < i {
			out = append(out, runContent("w:t", text[start:i]))
		}
		out = append(out, runContent(local, ""))
		start = i + 1
	}
	if start < len(text) {
		out = append(out, runContent("w:t", text[start:]))
	}
	return out
}
