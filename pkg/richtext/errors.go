package richtext

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHexColor 颜色不是 #RRGGBB 或 #RRGGBBAA 格式
	ErrInvalidHexColor = errors.New("无效的十六进制颜色")
	// ErrFontNotFound 字体查询服务确认字体不存在
	ErrFontNotFound = errors.New("字体不存在")
	// ErrNoFontOracle 未提供字体查询服务
	ErrNoFontOracle = errors.New("未配置字体查询服务")

	// ErrEmptyChunk 待修改的文本片段为空
	ErrEmptyChunk = errors.New("文本片段不能为空")
	// ErrChunkNotFound 段落中找不到待修改的文本片段
	ErrChunkNotFound = errors.New("段落中未找到文本片段")

	// ErrIndexOutOfRange 索引越界
	ErrIndexOutOfRange = errors.New("索引越界")
	// ErrEmptyRun 不允许向段落插入空文本块
	ErrEmptyRun = errors.New("文本块内容不能为空")
	// ErrMalformedTag 带标签文本格式错误
	ErrMalformedTag = errors.New("标签文本格式错误")
)

// ValidationError 用户输入校验失败（颜色或字体）
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s 校验失败 (%q): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FontQueryError 字体查询服务本身出错，区别于字体不存在
type FontQueryError struct {
	Font string
	Err  error
}

func (e *FontQueryError) Error() string {
	return fmt.Sprintf("查询字体 %q 失败: %v", e.Font, e.Err)
}

func (e *FontQueryError) Unwrap() error {
	return e.Err
}

// ModifyError 段落样式修改失败，段落内容保持不变
type ModifyError struct {
	Chunk string
	Err   error
}

func (e *ModifyError) Error() string {
	return fmt.Sprintf("修改片段 %q 失败: %v", e.Chunk, e.Err)
}

func (e *ModifyError) Unwrap() error {
	return e.Err
}
