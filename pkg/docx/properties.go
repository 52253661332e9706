package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/cmgsk/edda/pkg/document"
)

const (
	nsCoreProperties     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDublinCore         = "http://purl.org/dc/elements/1.1/"
	nsDublinCoreTerms    = "http://purl.org/dc/terms/"
	nsXSI                = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtendedProperties = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDocPropsVTypes     = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"

	authorSeparator  = "; "
	keywordSeparator = ", "
)

// coreProperties docProps/core.xml 写入结构
type coreProperties struct {
	XMLName      xml.Name `xml:"cp:coreProperties"`
	XmlnsCP      string   `xml:"xmlns:cp,attr"`
	XmlnsDC      string   `xml:"xmlns:dc,attr"`
	XmlnsDCTerms string   `xml:"xmlns:dcterms,attr"`
	XmlnsXSI     string   `xml:"xmlns:xsi,attr"`

	Title       string `xml:"dc:title,omitempty"`
	Creator     string `xml:"dc:creator,omitempty"`
	Keywords    string `xml:"cp:keywords,omitempty"`
	Description string `xml:"dc:description,omitempty"`
	Category    string `xml:"cp:category,omitempty"`
	Version     string `xml:"cp:version,omitempty"`
	Status      string `xml:"cp:contentStatus,omitempty"`
	Language    string `xml:"dc:language,omitempty"`
	Identifier  string `xml:"dc:identifier,omitempty"`
	Created     w3cdtf `xml:"dcterms:created"`
	Modified    w3cdtf `xml:"dcterms:modified"`
}

// w3cdtf 带 xsi:type 的时间元素
type w3cdtf struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// corePropertiesIn docProps/core.xml 读取结构，按本地名匹配，忽略前缀
type corePropertiesIn struct {
	Title       string `xml:"title"`
	Creator     string `xml:"creator"`
	Keywords    string `xml:"keywords"`
	Description string `xml:"description"`
	Category    string `xml:"category"`
	Version     string `xml:"version"`
	Status      string `xml:"contentStatus"`
	Language    string `xml:"language"`
	Identifier  string `xml:"identifier"`
}

// appProperties docProps/app.xml
type appProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	XmlnsVT     string   `xml:"xmlns:vt,attr"`
	Application string   `xml:"Application"`
	Paragraphs  int      `xml:"Paragraphs"`
}

func newCoreProperties(m document.Metadata, now time.Time) coreProperties {
	stamp := w3cdtf{Type: "dcterms:W3CDTF", Value: now.UTC().Format(time.RFC3339)}
	return coreProperties{
		XmlnsCP:      nsCoreProperties,
		XmlnsDC:      nsDublinCore,
		XmlnsDCTerms: nsDublinCoreTerms,
		XmlnsXSI:     nsXSI,
		Title:        m.Title,
		Creator:      strings.Join(m.Authors, authorSeparator),
		Keywords:     strings.Join(m.Keywords, keywordSeparator),
		Description:  m.Description,
		Category:     m.Category,
		Version:      m.Version,
		Status:       m.Status,
		Language:     m.Language,
		Identifier:   m.Identifier,
		Created:      stamp,
		Modified:     stamp,
	}
}

func newAppProperties(application string, paragraphs int) appProperties {
	return appProperties{
		Xmlns:       nsExtendedProperties,
		XmlnsVT:     nsDocPropsVTypes,
		Application: application,
		Paragraphs:  paragraphs,
	}
}

// parseCoreProperties 解析 docProps/core.xml 为元数据
func parseCoreProperties(data []byte) (document.Metadata, error) {
	var in corePropertiesIn
	if err := xml.Unmarshal(data, &in); err != nil {
		return document.Metadata{}, fmt.Errorf("解析核心属性失败: %w", err)
	}
	return document.Metadata{
		Title:       strings.TrimSpace(in.Title),
		Authors:     splitList(in.Creator, ";"),
		Description: in.Description,
		Category:    in.Category,
		Version:     in.Version,
		Status:      in.Status,
		Language:    in.Language,
		Keywords:    splitList(in.Keywords, ","),
		Identifier:  in.Identifier,
	}, nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
