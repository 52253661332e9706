package processor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/cmgsk/edda/internal/domain"
	"github.com/cmgsk/edda/pkg/docx"
)

// ErrUnsupportedFormat 既不是 DOCX 也不是 Markdown
var ErrUnsupportedFormat = errors.New("不支持的输入格式")

// DetectFormat 先按内容判断，再按扩展名判断。
// DOCX 的识别要查看 zip 中的条目名，所以传入完整内容；其他 zip 包（xlsx、odt 等）不支持。
func DetectFormat(path string, data []byte) (domain.Format, error) {
	if filetype.Is(data, "docx") || (filetype.Is(data, "zip") && docx.HasDocumentPart(data)) {
		return domain.FormatDocx, nil
	}
	if filetype.IsArchive(data) {
		return "", fmt.Errorf("%w: %s 不是 Word 文档", ErrUnsupportedFormat, filepath.Base(path))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return domain.FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

// IsSupportedFile 按扩展名判断是否为可处理的输入文件
func IsSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx", ".md", ".markdown":
		return true
	}
	return false
}
