package document

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cmgsk/edda/pkg/richtext"
)

// SaveTo 用 enc 把文档写入 w。
//
// w 的写入错误返回 KindIO，编码器自身的错误返回 KindPackaging。
// 失败时 w 中可能已有部分数据。
func (d *Document) SaveTo(w io.Writer, enc Encoder) error {
	return d.save(w, enc, "")
}

// SaveFile 用 enc 把文档保存到 path。
//
// 先写入同目录下的临时文件再重命名，失败时删除临时文件，path 处的原文件保持不变。
// 覆盖已有文件时沿用其权限，新文件的权限为 0644。
func (d *Document) SaveFile(path string, enc Encoder) error {
	if enc == nil {
		return &DocumentError{Op: "保存文档", Path: path, Kind: KindPackaging, Err: ErrNoEncoder}
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return &DocumentError{Op: "保存文档", Path: path, Kind: KindIO, Err: err}
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	// CreateTemp 的权限是 0600
	if err := tmp.Chmod(filePerm(path)); err != nil {
		cleanup()
		return &DocumentError{Op: "保存文档", Path: path, Kind: KindIO, Err: err}
	}
	if err := d.save(tmp, enc, path); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return &DocumentError{Op: "保存文档", Path: path, Kind: KindIO, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &DocumentError{Op: "保存文档", Path: path, Kind: KindIO, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &DocumentError{Op: "保存文档", Path: path, Kind: KindIO, Err: err}
	}
	return nil
}

// DefaultFilePerm 新建文档文件的权限
const DefaultFilePerm os.FileMode = 0644

func filePerm(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return DefaultFilePerm
}

func (d *Document) save(w io.Writer, enc Encoder, path string) error {
	if enc == nil {
		return &DocumentError{Op: "保存文档", Path: path, Kind: KindPackaging, Err: ErrNoEncoder}
	}

	ew := &errWriter{w: w}
	if err := enc.Encode(ew, d.Package()); err != nil {
		kind := KindPackaging
		if ew.err != nil {
			kind = KindIO
		}
		return &DocumentError{Op: "保存文档", Path: path, Kind: kind, Err: err}
	}
	return nil
}

// LoadOption 加载选项
type LoadOption func(*loadOptions)

type loadOptions struct {
	fonts  richtext.FontOracle
	logger *zap.Logger
	title  string
}

// WithFonts 设置还原字体时使用的字体查询服务；未设置时加载的文本块使用默认字体
func WithFonts(fonts richtext.FontOracle) LoadOption {
	return func(o *loadOptions) {
		o.fonts = fonts
	}
}

// WithLogger 设置记录样式还原告警的日志器
func WithLogger(logger *zap.Logger) LoadOption {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTitle 文档包中没有标题时使用的标题
func WithTitle(title string) LoadOption {
	return func(o *loadOptions) {
		o.title = title
	}
}

// Load 用 dec 从 r 读取文档。
//
// 样式属性尽力还原：无法还原的属性回退为默认值并记录告警，不会导致加载失败。
// 空文本块被丢弃。
func Load(r io.Reader, dec Decoder, opts ...LoadOption) (*Document, error) {
	return load(r, dec, "", opts)
}

// LoadFile 用 dec 读取 path 处的文档
func LoadFile(path string, dec Decoder, opts ...LoadOption) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DocumentError{Op: "加载文档", Path: path, Kind: KindIO, Err: err}
	}
	defer f.Close()

	return load(f, dec, path, opts)
}

func load(r io.Reader, dec Decoder, path string, opts []LoadOption) (*Document, error) {
	o := loadOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if dec == nil {
		return nil, &DocumentError{Op: "加载文档", Path: path, Kind: KindPackaging, Err: ErrNoDecoder}
	}

	er := &errReader{r: r}
	pkg, err := dec.Decode(er)
	if err != nil {
		kind := KindPackaging
		if er.err != nil {
			kind = KindIO
		}
		return nil, &DocumentError{Op: "加载文档", Path: path, Kind: kind, Err: err}
	}
	if pkg == nil {
		pkg = &Package{}
	}

	d := &Document{metadata: pkg.Metadata.Clone()}
	if d.metadata.Title == "" {
		d.metadata.Title = o.title
	}

	for i, runs := range pkg.Paragraphs {
		p := richtext.NewParagraph()
		for j, desc := range runs {
			if desc.Text == "" {
				continue
			}
			style, err := richtext.RestoreStyle(desc, o.fonts)
			for _, dropped := range splitJoined(err) {
				o.logger.Warn("文本块样式未能完全还原",
					zap.String("path", path),
					zap.Int("paragraph", i),
					zap.Int("run", j),
					zap.Error(dropped))
			}
			// 文本非空，Add 不会失败
			_ = p.Add(richtext.NewStyledText(desc.Text, style))
		}
		d.paragraphs = append(d.paragraphs, p)
	}

	o.logger.Debug("文档加载完成",
		zap.String("path", path),
		zap.Int("paragraphs", len(d.paragraphs)))
	return d, nil
}

// splitJoined 展开 errors.Join 合并的错误
func splitJoined(err error) []error {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
