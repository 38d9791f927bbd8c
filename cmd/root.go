// Package cmd 提供计算器 CLI 的命令实现
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yqhp/calculator/internal/calculator"
	"yqhp/calculator/internal/config"
	"yqhp/calculator/internal/metrics"
	"yqhp/calculator/pkg/logger"
)

const (
	// Version 是当前版本号
	Version = "0.1.0"
	// Banner 是启动时显示的 ASCII 艺术
	Banner = `
   ___       __         Calculator %s
  / _ \___ _/ /______
 / // / _ '/ / __/ _ \
/____/\_,_/_/\__/\___/
`
)

var (
	// 全局配置
	cfgFile string
	debug   bool
	quiet   bool

	// appConfig 在 PersistentPreRunE 中加载
	appConfig *config.Config
)

// rootCmd 是根命令
var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "计算器表达式求值工具",
	Long: `calc 对计算器输入的表达式求值，支持加减乘除、小数和百分号。

百分号规则：
  A%B     -> A/100*B
  A+B%    -> A+(A*B/100)
  A-B%    -> A-(A*B/100)
  A%      -> A/100`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// 全局 flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "启用调试日志")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "静默模式")

	// 禁用默认的 completion 命令
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// 自定义版本模板
	rootCmd.SetVersionTemplate(fmt.Sprintf(Banner, Version) + "\n")
}

// GetRootCmd 返回根命令（用于测试）
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// initApp 加载配置并初始化日志
func initApp(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader()
	if cfgFile != "" {
		loader = loader.WithConfigPath(cfgFile)
	}
	if overrides := cmdOverrides(cmd); len(overrides) > 0 {
		loader = loader.WithCmdArgs(overrides)
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	appConfig = cfg

	logger.Init(cfg.Logging.LoggerConfig())
	switch {
	case debug:
		logger.EnableDebug()
	case quiet:
		logger.SetLevelFromString("error")
	}
	return nil
}

// cmdOverrides 收集子命令中被显式设置的配置覆盖项
func cmdOverrides(cmd *cobra.Command) map[string]string {
	overrides := make(map[string]string)
	for flag, path := range map[string]string{
		"address":          "server.address",
		"max-input-length": "calculator.max_input_length",
		"log-trace":        "calculator.trace",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[path] = f.Value.String()
		}
	}
	return overrides
}

// newService 按当前配置创建求值服务
func newService() *calculator.Service {
	cfg := appConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return calculator.NewService(cfg.Calculator, logger.L(), metrics.NewRecorder())
}
