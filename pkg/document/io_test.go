package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cmgsk/edda/pkg/richtext"
)

// jsonCodec 测试用编解码器
var jsonCodec = struct {
	Encoder
	Decoder
}{
	Encoder: EncoderFunc(func(w io.Writer, pkg *Package) error {
		return json.NewEncoder(w).Encode(pkg)
	}),
	Decoder: DecoderFunc(func(r io.Reader) (*Package, error) {
		var pkg Package
		if err := json.NewDecoder(r).Decode(&pkg); err != nil {
			return nil, err
		}
		return &pkg, nil
	}),
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("磁盘已满")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("读取中断")
}

type fakeFonts map[string]bool

func (f fakeFonts) Exists(name string) error {
	if !f[name] {
		return fmt.Errorf("%w: %s", richtext.ErrFontNotFound, name)
	}
	return nil
}

func sampleDocument(t *testing.T) *Document {
	t.Helper()
	d := New("示例")
	d.SetMetadata(Metadata{Title: "示例", Authors: []string{"作者"}})

	p := richtext.NewParagraph()
	require.NoError(t, p.Add(richtext.NewStyledText("This is a test.", richtext.DefaultStyle())))
	require.NoError(t, p.Modify(richtext.DefaultStyle().WithBoldToggled(), "is a"))
	d.AddParagraph(p)

	q := richtext.NewParagraph()
	style, err := richtext.DefaultStyle().WithHighlight("#FFFF00")
	require.NoError(t, err)
	require.NoError(t, q.Add(richtext.NewStyledText("高亮", style.WithUnderline(richtext.UnderlineWave))))
	d.AddParagraph(q)
	return d
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	d := sampleDocument(t)

	var buf bytes.Buffer
	require.NoError(t, d.SaveTo(&buf, jsonCodec))

	loaded, err := Load(&buf, jsonCodec)
	require.NoError(t, err)

	assert.Equal(t, d.Text(true), loaded.Text(true))
	assert.Equal(t, d.Metadata(), loaded.Metadata())
}

func TestSaveTo_ErrorKinds(t *testing.T) {
	d := sampleDocument(t)

	t.Run("writer failure is io", func(t *testing.T) {
		err := d.SaveTo(failingWriter{}, jsonCodec)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIO)
		assert.NotErrorIs(t, err, ErrPackaging)
	})

	t.Run("encoder failure is packaging", func(t *testing.T) {
		broken := EncoderFunc(func(io.Writer, *Package) error {
			return errors.New("无法编码")
		})
		err := d.SaveTo(io.Discard, broken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPackaging)
		assert.NotErrorIs(t, err, ErrIO)

		var derr *DocumentError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, KindPackaging, derr.Kind)
	})

	t.Run("missing encoder", func(t *testing.T) {
		err := d.SaveTo(io.Discard, nil)
		assert.ErrorIs(t, err, ErrNoEncoder)
		assert.ErrorIs(t, err, ErrPackaging)
	})
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	d := sampleDocument(t)

	require.NoError(t, d.SaveFile(path, jsonCodec))

	loaded, err := LoadFile(path, jsonCodec)
	require.NoError(t, err)
	assert.Equal(t, d.Text(false), loaded.Text(false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "不应残留临时文件")
}

func TestSaveFile_FailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	broken := EncoderFunc(func(w io.Writer, _ *Package) error {
		if _, err := w.Write([]byte("partial")); err != nil {
			return err
		}
		return errors.New("无法编码")
	})
	err := sampleDocument(t).SaveFile(path, broken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPackaging)

	var derr *DocumentError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, path, derr.Path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows 不支持 Unix 权限位")
	}
	dir := t.TempDir()
	d := sampleDocument(t)

	tests := []struct {
		name     string
		existing os.FileMode
		want     os.FileMode
	}{
		{name: "new file", want: DefaultFilePerm},
		{name: "overwrite keeps mode", existing: 0640, want: 0640},
		{name: "overwrite world readable", existing: 0644, want: 0644},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("out%d.json", i))
			if tt.existing != 0 {
				require.NoError(t, os.WriteFile(path, []byte("old"), 0600))
				require.NoError(t, os.Chmod(path, tt.existing))
			}

			require.NoError(t, d.SaveFile(path, jsonCodec))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Mode().Perm())
		})
	}
}

func TestSaveFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	err := sampleDocument(t).SaveFile(path, jsonCodec)
	assert.ErrorIs(t, err, ErrIO)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "none.json"), jsonCodec)
		assert.ErrorIs(t, err, ErrIO)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("reader failure", func(t *testing.T) {
		_, err := Load(failingReader{}, jsonCodec)
		assert.ErrorIs(t, err, ErrIO)
	})

	t.Run("decoder failure", func(t *testing.T) {
		_, err := Load(bytes.NewBufferString("not json"), jsonCodec)
		assert.ErrorIs(t, err, ErrPackaging)
	})

	t.Run("missing decoder", func(t *testing.T) {
		_, err := Load(bytes.NewBufferString("{}"), nil)
		assert.ErrorIs(t, err, ErrNoDecoder)
	})
}

func TestLoad_PartialStyleRecovery(t *testing.T) {
	pkg := &Package{
		Paragraphs: [][]richtext.RunDescriptor{
			{
				{Text: "ok", Bold: true, Size: 14, Font: "Georgia", FontColor: "FF0000"},
				{Text: ""},
				{Text: "bad", Italic: true, FontColor: "nothex", Underline: "zigzag", Font: "Missing"},
			},
			{},
		},
	}
	dec := DecoderFunc(func(io.Reader) (*Package, error) { return pkg, nil })

	core, logs := observer.New(zap.WarnLevel)
	d, err := Load(bytes.NewReader(nil), dec,
		WithFonts(fakeFonts{"Georgia": true}),
		WithLogger(zap.New(core)),
		WithTitle("备用标题"),
	)
	require.NoError(t, err)

	assert.Equal(t, "备用标题", d.Title())
	assert.Equal(t, 2, d.ParagraphCount())

	p, _ := d.Paragraph(0)
	require.Equal(t, 2, p.Len(), "空文本块应被丢弃")

	first, _ := p.Run(0)
	assert.True(t, first.Style.Bold())
	assert.Equal(t, uint8(14), first.Style.Size())
	assert.Equal(t, "Georgia", first.Style.Font())
	assert.Equal(t, "#FF0000", first.Style.FontColor())

	second, _ := p.Run(1)
	assert.True(t, second.Style.Italic())
	assert.Equal(t, richtext.DefaultFontColor, second.Style.FontColor())
	assert.Equal(t, richtext.DefaultFont, second.Style.Font())
	assert.Equal(t, richtext.UnderlineNone, second.Style.Underline())

	assert.Equal(t, 3, logs.Len(), "每个丢弃的属性记录一条告警")
}

func TestLoad_WithoutFontsKeepsDefaultFont(t *testing.T) {
	pkg := &Package{
		Metadata:   Metadata{Title: "原标题"},
		Paragraphs: [][]richtext.RunDescriptor{{{Text: "x", Font: "Georgia"}}},
	}
	dec := DecoderFunc(func(io.Reader) (*Package, error) { return pkg, nil })

	d, err := Load(bytes.NewReader(nil), dec, WithTitle("备用标题"))
	require.NoError(t, err)
	assert.Equal(t, "原标题", d.Title())

	p, _ := d.Paragraph(0)
	run, _ := p.Run(0)
	assert.Equal(t, richtext.DefaultFont, run.Style.Font())
}

func TestDocumentError_Message(t *testing.T) {
	err := &DocumentError{Op: "保存文档", Path: "a.docx", Kind: KindIO, Err: errors.New("boom")}
	assert.Equal(t, "保存文档 a.docx 失败 (io): boom", err.Error())

	err = &DocumentError{Op: "加载文档", Kind: KindPackaging, Err: errors.New("boom")}
	assert.Equal(t, "加载文档 失败 (packaging): boom", err.Error())
}
