package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"yqhp/calculator/api/rest"
	"yqhp/calculator/pkg/logger"
)

// serveCmd 是 serve 子命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP API 服务",
	Long: `启动 REST API 服务，提供以下接口：
  GET  /health
  POST /api/v1/evaluate
  POST /api/v1/keypad
  GET  /api/v1/stats`,
	Example: `  # 使用默认配置启动
  calc serve

  # 指定监听地址
  calc serve --address :9090

  # 使用配置文件
  calc serve --config config.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("address", ":8080", "HTTP 服务地址")
	serveCmd.Flags().Int("max-input-length", 0, "表达式最大长度（0 为不限制）")
	serveCmd.Flags().Bool("log-trace", false, "以 debug 级别记录每个求值阶段")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	server := rest.NewServer(newService(), cfg.Server, logger.L())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 处理关闭信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(cmd.OutOrStdout(), "\n正在关闭服务...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if !quiet {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, Banner, Version)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  HTTP 地址: %s\n", cfg.Server.Address)
		fmt.Fprintf(out, "  最大表达式长度: %d\n", cfg.Calculator.MaxInputLength)
		fmt.Fprintln(out)
	}
	logger.Info("服务启动")

	if err := server.StartWithContext(ctx); err != nil {
		return fmt.Errorf("HTTP 服务异常退出: %w", err)
	}

	logger.Info("服务已停止")
	return nil
}
