package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cmgsk/edda/internal/cmd"
	"github.com/cmgsk/edda/internal/config"
	"github.com/cmgsk/edda/internal/processor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	// 解析命令行参数
	flags := flag.NewFlagSet(cmd.AppName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	args, err := cmd.ParseArgs(flags, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// 处理版本和帮助信息
	if args.ShowVersion {
		fmt.Fprintf(stdout, "%s v%s\n", cmd.AppName, cmd.AppVersion)
		return 0
	}

	if args.ShowHelp {
		cmd.ShowUsage(stdout)
		return 0
	}

	logger, err := newLogger(args.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "创建日志失败: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if err := execute(ctx, args, logger, stdout); err != nil {
		logger.Error("处理失败", zap.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, args *cmd.CommandLineArgs, logger *zap.Logger, stdout io.Writer) error {
	// .env 可选
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("加载 .env 失败: %w", err)
	}

	configManager := config.NewConfigManager()

	if args.InitConfig != "" {
		if err := configManager.SaveConfig(config.DefaultConfig(), args.InitConfig); err != nil {
			return fmt.Errorf("生成默认配置失败: %w", err)
		}
		logger.Info("已生成默认配置", zap.String("path", args.InitConfig))
		return nil
	}

	// 加载配置文件
	cfg, err := configManager.LoadConfig(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("加载配置文件失败: %w", err)
	}

	// 验证参数
	if err := cmd.ValidateArgs(args, cfg.Output.Suffix); err != nil {
		return fmt.Errorf("参数验证失败: %w", err)
	}

	logger.Info("成功加载配置文件",
		zap.String("config", args.ConfigFile),
		zap.String("project", cfg.ProjectName),
		zap.Int("rules", len(cfg.Rules)))

	fonts := processor.FontsFromConfig(cfg)
	rules, err := processor.RulesFromConfig(cfg, fonts)
	if err != nil {
		return err
	}

	docProcessor := processor.NewDocumentProcessor(processor.Options{
		Rules:       rules,
		Fonts:       fonts,
		Logger:      logger,
		Application: cfg.Output.Application,
		Validate:    cfg.Output.Validate,
	})

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	return cmd.ExecuteProcessing(ctx, docProcessor, args, cmd.BatchOptions{
		MaxConcurrentFiles: cfg.Processing.MaxConcurrentFiles,
		ExcludePatterns:    cfg.Processing.ExcludePatterns,
	}, logger, stdout)
}

// newLogger -verbose 时使用开发配置，否则使用生产配置
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
