package document

import (
	"io"

	"github.com/cmgsk/edda/pkg/richtext"
)

// Package 编码器与解码器之间交换的文档内容：元数据加上按顺序排列的段落，
// 每个段落是文本块描述列表
type Package struct {
	Metadata   Metadata
	Paragraphs [][]richtext.RunDescriptor
}

// Encoder 把文档内容写成具体的文件格式
type Encoder interface {
	Encode(w io.Writer, pkg *Package) error
}

// Decoder 从字节流还原文档内容。
//
// 解码器至少要还原文本、粗体和斜体；其余属性尽力而为，缺失时保持零值。
type Decoder interface {
	Decode(r io.Reader) (*Package, error)
}

// EncoderFunc 函数形式的编码器
type EncoderFunc func(w io.Writer, pkg *Package) error

func (f EncoderFunc) Encode(w io.Writer, pkg *Package) error {
	return f(w, pkg)
}

// DecoderFunc 函数形式的解码器
type DecoderFunc func(r io.Reader) (*Package, error)

func (f DecoderFunc) Decode(r io.Reader) (*Package, error) {
	return f(r)
}

// errWriter 记录底层写入错误，用来区分 I/O 失败与编码失败
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	n, err := ew.w.Write(p)
	if err != nil && ew.err == nil {
		ew.err = err
	}
	return n, err
}

// errReader 记录底层读取错误，用来区分 I/O 失败与解码失败
type errReader struct {
	r   io.Reader
	err error
}

func (er *errReader) Read(p []byte) (int, error) {
	n, err := er.r.Read(p)
	if err != nil && err != io.EOF && er.err == nil {
		er.err = err
	}
	return n, err
}
