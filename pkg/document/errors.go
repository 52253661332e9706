package document

import (
	"errors"
	"fmt"
)

var (
	// ErrIO 本地文件读写失败
	ErrIO = errors.New("文件读写失败")
	// ErrPackaging 编码器或解码器处理文档包失败
	ErrPackaging = errors.New("文档打包失败")
	// ErrNoEncoder 未提供编码器
	ErrNoEncoder = errors.New("未提供编码器")
	// ErrNoDecoder 未提供解码器
	ErrNoDecoder = errors.New("未提供解码器")
)

// Kind 文档错误类别
type Kind uint8

const (
	// KindIO 本地 I/O 错误
	KindIO Kind = iota + 1
	// KindPackaging 编码/解码错误
	KindPackaging
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindPackaging:
		return "packaging"
	default:
		return "unknown"
	}
}

// DocumentError 保存或加载文档失败。
//
// errors.Is(err, ErrIO) 与 errors.Is(err, ErrPackaging) 按 Kind 区分两类错误。
type DocumentError struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s 失败 (%s): %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s 失败 (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Is 让 DocumentError 匹配其类别对应的哨兵错误
func (e *DocumentError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrPackaging:
		return e.Kind == KindPackaging
	}
	return false
}
