package docx

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/gomutex/godocx"
)

// ValidatePackage 用 gomutex/godocx 重新打开 path 处的文档包，确认它能被其他实现读取
func ValidatePackage(path string) error {
	doc, err := godocx.OpenDocument(path)
	if err != nil {
		return fmt.Errorf("文档包校验失败: %w", err)
	}
	if err := doc.Close(); err != nil {
		return fmt.Errorf("关闭文档失败: %w", err)
	}
	return nil
}

// HasDocumentPart data 是否为包含 word/document.xml 的 zip 包。
// 用于识别条目顺序不标准、按文件头无法识别的 DOCX。
func HasDocumentPart(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == partDocument {
			return true
		}
	}
	return false
}
