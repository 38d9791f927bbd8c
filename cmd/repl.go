package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"yqhp/calculator/internal/calculator"
)

// replCmd 是 repl 子命令
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "交互式求值",
	Long: `逐行读取表达式并输出结果。

内置命令：
  :stats   查看本次会话的求值统计
  :help    查看帮助
  :quit    退出（也可使用 Ctrl+D）`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	svc := newService()
	out := cmd.OutOrStdout()

	if !quiet {
		fmt.Fprintf(out, Banner, Version)
		fmt.Fprintln(out, "输入表达式后回车求值，:help 查看帮助。")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if !quiet {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case ":quit", ":q", "exit":
			return nil
		case ":help", ":h":
			fmt.Fprintln(out, cmd.Long)
			continue
		case ":stats":
			printStats(out, svc)
			continue
		}

		if _, err := printEvaluation(svc, out, out, line, false); err != nil {
			fmt.Fprintf(out, "错误: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("读取输入失败: %w", err)
	}
	return nil
}

func printStats(w io.Writer, svc *calculator.Service) {
	snap := svc.Stats()
	fmt.Fprintf(w, "总数: %d  有结果: %d  空: %d  无结果: %d\n", snap.Total, snap.Value, snap.Empty, snap.NoResult)
	fmt.Fprintf(w, "耗时(us): p50=%d p90=%d p99=%d max=%d\n",
		snap.Latency.P50, snap.Latency.P90, snap.Latency.P99, snap.Latency.Max)
}
