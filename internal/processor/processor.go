package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cmgsk/edda/internal/domain"
	"github.com/cmgsk/edda/internal/markdown"
	"github.com/cmgsk/edda/pkg/document"
	"github.com/cmgsk/edda/pkg/docx"
	"github.com/cmgsk/edda/pkg/richtext"
)

// Options 文档处理器设置
type Options struct {
	Rules  []domain.StyleRule
	Fonts  richtext.FontOracle
	Logger *zap.Logger
	// Application 写入 app.xml 的应用名，为空时使用默认值
	Application string
	// Validate 保存后用 godocx 重新打开输出文件
	Validate bool
}

// documentProcessor 文档处理器实现
type documentProcessor struct {
	opts   Options
	logger *zap.Logger
}

// NewDocumentProcessor 创建新的文档处理器
func NewDocumentProcessor(opts Options) domain.DocumentProcessor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &documentProcessor{opts: opts, logger: logger}
}

// RestyleDocument 加载文档并按顺序应用每条规则
func (dp *documentProcessor) RestyleDocument(ctx context.Context, inputPath string) (*document.Document, *domain.ProcessResult, error) {
	if inputPath == "" {
		return nil, nil, fmt.Errorf("输入路径不能为空")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("读取输入文件失败: %w", err)
	}

	format, err := DetectFormat(inputPath, data)
	if err != nil {
		return nil, nil, err
	}

	log := dp.logger.With(zap.String("input", inputPath), zap.String("format", string(format)))
	log.Debug("开始处理文档")

	d, err := document.Load(bytes.NewReader(data), decoderFor(format),
		document.WithFonts(dp.opts.Fonts),
		document.WithLogger(log),
		document.WithTitle(titleFromPath(inputPath)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("加载文档失败: %w", err)
	}

	result := &domain.ProcessResult{
		InputPath:  inputPath,
		Format:     format,
		Paragraphs: d.ParagraphCount(),
		Rules:      make([]domain.RuleStats, len(dp.opts.Rules)),
	}
	for i, rule := range dp.opts.Rules {
		result.Rules[i] = domain.RuleStats{Chunk: rule.Chunk, Spanning: rule.Spanning}
	}

	if err := dp.applyRules(ctx, d, result); err != nil {
		return nil, nil, err
	}

	log.Debug("样式规则应用完成",
		zap.Int("paragraphs", result.Paragraphs),
		zap.Int("matches", result.TotalMatches()))
	return d, result, nil
}

// applyRules 每条规则在每个段落中最多修改一次；段落中找不到片段不算错误
func (dp *documentProcessor) applyRules(ctx context.Context, d *document.Document, result *domain.ProcessResult) error {
	for i := 0; i < d.ParagraphCount(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, _ := d.EditParagraph(i)
		for j, rule := range dp.opts.Rules {
			result.Rules[j].Occurrences += p.Occurrences(rule.Chunk)

			var err error
			if rule.Spanning {
				err = p.ModifySpanning(rule.Style, rule.Chunk)
			} else {
				err = p.Modify(rule.Style, rule.Chunk)
			}

			switch {
			case err == nil:
				result.Rules[j].Matches++
			case errors.Is(err, richtext.ErrChunkNotFound):
			default:
				return fmt.Errorf("第 %d 段应用规则 %q 失败: %w", i+1, rule.Chunk, err)
			}
		}
	}
	return nil
}

// ProcessDocument 处理文档并保存为 DOCX
func (dp *documentProcessor) ProcessDocument(ctx context.Context, inputPath, outputPath string) (*domain.ProcessResult, error) {
	if outputPath == "" {
		return nil, fmt.Errorf("输出路径不能为空")
	}
	if !strings.EqualFold(filepath.Ext(outputPath), ".docx") {
		return nil, fmt.Errorf("输出文件必须是 .docx: %s", outputPath)
	}

	d, result, err := dp.RestyleDocument(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	enc := docx.NewEncoder()
	if dp.opts.Application != "" {
		enc.Application = dp.opts.Application
	}
	if err := d.SaveFile(outputPath, enc); err != nil {
		return nil, fmt.Errorf("保存文档失败: %w", err)
	}
	result.OutputPath = outputPath

	if dp.opts.Validate {
		if err := docx.ValidatePackage(outputPath); err != nil {
			return nil, fmt.Errorf("输出文件校验失败: %w", err)
		}
	}

	dp.logger.Info("文档处理完成",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("matches", result.TotalMatches()))
	return result, nil
}

// ValidateDocument 验证输入文档是否可以处理
func (dp *documentProcessor) ValidateDocument(inputPath string) error {
	if inputPath == "" {
		return fmt.Errorf("输入路径不能为空")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开文档: %w", err)
	}

	format, err := DetectFormat(inputPath, data)
	if err != nil {
		return err
	}
	if format == domain.FormatDocx {
		if _, err := docx.NewDecoder().Decode(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("无法解析文档: %w", err)
		}
	}
	return nil
}

func decoderFor(format domain.Format) document.Decoder {
	if format == domain.FormatMarkdown {
		return markdown.NewDecoder()
	}
	return docx.NewDecoder()
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
