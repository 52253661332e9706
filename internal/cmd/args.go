package cmd

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	AppName    = "edda"
	AppVersion = "1.0.0"
)

// 打印模式
const (
	PrintPlain  = "plain"
	PrintTagged = "tagged"
	PrintANSI   = "ansi"
)

// CommandLineArgs 命令行参数结构
type CommandLineArgs struct {
	ConfigFile  string
	InputFile   string
	OutputFile  string
	InputDir    string
	OutputDir   string
	Print       string
	InitConfig  string
	ShowVersion bool
	ShowHelp    bool
	Verbose     bool
}

// ParseArgs 用指定的 FlagSet 解析参数
func ParseArgs(fs *flag.FlagSet, argv []string) (*CommandLineArgs, error) {
	args := &CommandLineArgs{}

	fs.StringVar(&args.ConfigFile, "config", "edda.json", "配置文件路径（.json/.toml/.yaml）")
	fs.StringVar(&args.InputFile, "input", "", "输入文件路径（.docx 或 .md）")
	fs.StringVar(&args.OutputFile, "output", "", "输出 DOCX 文件路径")
	fs.StringVar(&args.InputDir, "input-dir", "", "输入目录路径（批量处理）")
	fs.StringVar(&args.OutputDir, "output-dir", "", "输出目录路径（批量处理）")
	fs.StringVar(&args.Print, "print", "", "把处理结果输出到终端而不保存：plain、tagged 或 ansi")
	fs.StringVar(&args.InitConfig, "init-config", "", "在指定路径生成默认配置文件")
	fs.BoolVar(&args.ShowVersion, "version", false, "显示版本信息")
	fs.BoolVar(&args.ShowHelp, "help", false, "显示帮助信息")
	fs.BoolVar(&args.Verbose, "verbose", false, "详细输出")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	return args, nil
}

// ValidateArgs 验证命令行参数，并用 suffix 补全缺省的输出路径
func ValidateArgs(args *CommandLineArgs, suffix string) error {
	if args.ConfigFile == "" {
		return fmt.Errorf("配置文件路径不能为空")
	}

	// 检查是单文件处理还是批量处理
	hasSingleFile := args.InputFile != "" || args.OutputFile != ""
	hasBatchMode := args.InputDir != "" || args.OutputDir != ""

	if !hasSingleFile && !hasBatchMode {
		return fmt.Errorf("必须指定输入文件或输入目录")
	}

	if hasSingleFile && hasBatchMode {
		return fmt.Errorf("不能同时指定单文件和批量处理模式")
	}

	if args.Print != "" {
		switch args.Print {
		case PrintPlain, PrintTagged, PrintANSI:
		default:
			return fmt.Errorf("未知的打印模式: %s", args.Print)
		}
		if hasBatchMode || args.InputFile == "" {
			return fmt.Errorf("打印模式只支持单个输入文件")
		}
		return nil
	}

	if hasSingleFile {
		if args.InputFile == "" {
			return fmt.Errorf("单文件模式下必须指定输入文件")
		}
		if args.OutputFile == "" {
			// 自动生成输出文件名
			args.OutputFile = GenerateOutputFileName(args.InputFile, suffix)
		}
	}

	if hasBatchMode {
		if args.InputDir == "" {
			return fmt.Errorf("批量模式下必须指定输入目录")
		}
		if args.OutputDir == "" {
			// 自动生成输出目录名
			args.OutputDir = strings.TrimRight(args.InputDir, `/\`) + "_processed"
		}
		if filepath.Clean(args.OutputDir) == filepath.Clean(args.InputDir) {
			return fmt.Errorf("输出目录不能与输入目录相同")
		}
	}

	return nil
}

// GenerateOutputFileName 生成输出文件名，输出总是 .docx
func GenerateOutputFileName(inputFile, suffix string) string {
	ext := filepath.Ext(inputFile)
	base := strings.TrimSuffix(inputFile, ext)
	return base + suffix + ".docx"
}

// ShowUsage 输出帮助信息
func ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "%s v%s - 文档样式批量修改工具\n\n", AppName, AppVersion)
	fmt.Fprintln(w, "用法:")
	fmt.Fprintf(w, "  %s -config edda.json -input report.docx [-output report_styled.docx]\n", AppName)
	fmt.Fprintf(w, "  %s -config edda.yaml -input-dir docs [-output-dir docs_processed]\n", AppName)
	fmt.Fprintf(w, "  %s -config edda.toml -input notes.md -print ansi\n", AppName)
	fmt.Fprintf(w, "  %s -init-config edda.json\n\n", AppName)
	fmt.Fprintln(w, "环境变量:")
	fmt.Fprintln(w, "  EDDA_FONT_CACHE_DIR        系统字体索引缓存目录")
	fmt.Fprintln(w, "  EDDA_DEFAULT_FONT          默认字体")
	fmt.Fprintln(w, "  EDDA_VALIDATE_OUTPUT       是否校验输出文件")
	fmt.Fprintln(w, "  EDDA_MAX_CONCURRENT_FILES  批量处理并发数")
}
