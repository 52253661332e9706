package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cmgsk/edda/internal/domain"
	"github.com/cmgsk/edda/internal/processor"
	"github.com/cmgsk/edda/internal/render"
)

// BatchOptions 批量处理设置
type BatchOptions struct {
	MaxConcurrentFiles int
	ExcludePatterns    []string
}

// ExecuteProcessing 执行处理逻辑
func ExecuteProcessing(ctx context.Context, docProcessor domain.DocumentProcessor, args *CommandLineArgs, opts BatchOptions, logger *zap.Logger, stdout io.Writer) error {
	switch {
	case args.Print != "":
		return PrintDocument(ctx, docProcessor, args.InputFile, args.Print, stdout)
	case args.InputFile != "":
		// 单文件处理
		return ProcessSingleFile(ctx, docProcessor, args.InputFile, args.OutputFile, logger)
	default:
		// 批量处理
		result, err := ProcessBatchFiles(ctx, docProcessor, args.InputDir, args.OutputDir, opts, logger)
		if err != nil {
			return err
		}
		if !result.Success() {
			return fmt.Errorf("%d 个文件处理失败", result.FailedFiles)
		}
		return nil
	}
}

// ProcessSingleFile 处理单个文件
func ProcessSingleFile(ctx context.Context, docProcessor domain.DocumentProcessor, inputFile, outputFile string, logger *zap.Logger) error {
	logger.Info("处理文件", zap.String("input", inputFile), zap.String("output", outputFile))

	if err := docProcessor.ValidateDocument(inputFile); err != nil {
		return fmt.Errorf("文档验证失败: %w", err)
	}

	result, err := docProcessor.ProcessDocument(ctx, inputFile, outputFile)
	if err != nil {
		return fmt.Errorf("处理文件失败: %w", err)
	}

	for _, rule := range result.Rules {
		logger.Debug("规则命中",
			zap.String("chunk", rule.Chunk),
			zap.Bool("spanning", rule.Spanning),
			zap.Int("matches", rule.Matches),
			zap.Int("occurrences", rule.Occurrences))
	}
	return nil
}

// ProcessBatchFiles 并发处理目录中的文件，单个文件失败不影响其他文件
func ProcessBatchFiles(ctx context.Context, docProcessor domain.DocumentProcessor, inputDir, outputDir string, opts BatchOptions, logger *zap.Logger) (*domain.BatchResult, error) {
	files, err := FindInputFiles(inputDir, opts.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("查找输入文件失败: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("在目录 %s 中没有找到可处理的文件", inputDir)
	}

	// 创建输出目录
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	result := &domain.BatchResult{}
	jobs, err := planBatch(inputDir, outputDir, files, result, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("开始批量处理", zap.Int("files", len(files)), zap.String("input_dir", inputDir))

	workers := opts.MaxConcurrentFiles
	if workers < 1 {
		workers = 1
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, workers)
	)

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return result, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return result, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(n int, job batchJob) {
			defer wg.Done()
			defer func() { <-sem }()

			logger.Info("处理文件",
				zap.Int("index", n),
				zap.Int("total", len(jobs)),
				zap.String("input", job.input))

			res, err := docProcessor.ProcessDocument(ctx, job.input, job.output)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("处理文件失败", zap.String("input", job.input), zap.Error(err))
				result.FailedFiles++
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", job.input, err))
				return
			}
			result.ProcessedFiles++
			result.Matches += res.TotalMatches()
		}(i+1, job)
	}
	wg.Wait()

	logger.Info("批量处理完成",
		zap.Int("processed", result.ProcessedFiles),
		zap.Int("failed", result.FailedFiles),
		zap.Int("matches", result.Matches))
	return result, nil
}

// ErrOutputConflict 多个输入文件对应同一个输出文件
var ErrOutputConflict = errors.New("输出文件冲突")

type batchJob struct {
	input  string
	output string
}

// planBatch 计算每个输入文件的输出路径。
// a.md 和 a.docx 这类只有扩展名不同的文件对应同一个输出，只处理遍历顺序中的第一个，
// 其余记为失败。
func planBatch(inputDir, outputDir string, files []string, result *domain.BatchResult, logger *zap.Logger) ([]batchJob, error) {
	owners := make(map[string]string, len(files))
	jobs := make([]batchJob, 0, len(files))
	for _, inputFile := range files {
		outputFile, err := batchOutputPath(inputDir, outputDir, inputFile)
		if err != nil {
			return nil, err
		}
		if owner, ok := owners[outputFile]; ok {
			err := fmt.Errorf("%w: %s 已被 %s 使用", ErrOutputConflict, outputFile, owner)
			logger.Warn("跳过文件", zap.String("input", inputFile), zap.Error(err))
			result.FailedFiles++
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", inputFile, err))
			continue
		}
		owners[outputFile] = inputFile
		jobs = append(jobs, batchJob{input: inputFile, output: outputFile})
	}
	return jobs, nil
}

// batchOutputPath 保持相对目录结构，扩展名统一为 .docx
func batchOutputPath(inputDir, outputDir, inputFile string) (string, error) {
	relPath, err := filepath.Rel(inputDir, inputFile)
	if err != nil {
		return "", fmt.Errorf("计算相对路径失败: %w", err)
	}
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ".docx"
	return filepath.Join(outputDir, relPath), nil
}

// FindInputFiles 查找目录中所有可处理的文件，排除 Office 临时文件和匹配 exclude 的文件名
func FindInputFiles(dir string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !processor.IsSupportedFile(path) {
			return nil
		}

		// 排除临时文件
		filename := d.Name()
		if strings.HasPrefix(filename, "~$") {
			return nil
		}
		for _, pattern := range exclude {
			if ok, _ := filepath.Match(pattern, filename); ok {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// PrintDocument 应用规则后把文档输出到 w，不写文件
func PrintDocument(ctx context.Context, docProcessor domain.DocumentProcessor, inputFile, mode string, w io.Writer) error {
	d, _, err := docProcessor.RestyleDocument(ctx, inputFile)
	if err != nil {
		return fmt.Errorf("处理文件失败: %w", err)
	}

	switch mode {
	case PrintANSI:
		return render.NewAuto(w).Render(d)
	case PrintTagged, PrintPlain:
		for _, p := range d.Paragraphs() {
			line := p.Text()
			if mode == PrintTagged {
				line = p.TaggedText()
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("未知的打印模式: %s", mode)
	}
}
