package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yqhp/calculator/internal/expression"
	"yqhp/calculator/internal/keypad"
)

var (
	// keys 命令的 flags
	keysSteps bool
)

// keysCmd 是 keys 子命令
var keysCmd = &cobra.Command{
	Use:   "keys <sequence>",
	Short: "模拟按键输入",
	Long: `按顺序模拟计算器按键，输出最终的表达式和预览结果。

不含空格的序列按字符拆分为按键；含空格时按空格拆分，可使用多字符按键：
  0-9 00 . + - * / × ÷ %   数字与运算符
  AC C                      清空
  DEL <                     退格
  =                         求值`,
	Example: `  calc keys "12+5%="
  calc keys "1 2 DEL 3 + 4 ="
  calc keys --steps "90+10%"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)

	keysCmd.Flags().BoolVar(&keysSteps, "steps", false, "输出每次按键后的表达式和预览")
}

func runKeys(cmd *cobra.Command, args []string) error {
	svc := newService()
	out := cmd.OutOrStdout()

	expr := ""
	var result expression.Result
	for _, key := range keypad.SplitKeys(strings.Join(args, " ")) {
		kp, err := svc.Press(expr, key)
		if err != nil {
			return fmt.Errorf("按键 %q 失败: %w", key, err)
		}
		expr = kp.Buffer.String()
		result = kp.Result
		if keysSteps {
			fmt.Fprintf(out, "%-4s %-20s %s\n", key, expr, formatPreview(result))
		}
	}

	fmt.Fprintf(out, "表达式: %s\n", expr)
	fmt.Fprintf(out, "结果:   %s\n", formatPreview(result))
	return nil
}

// formatPreview 按显示屏的方式展示结果
func formatPreview(result expression.Result) string {
	switch result.Outcome {
	case expression.OutcomeValue:
		return result.Text
	case expression.OutcomeNoResult:
		return "-"
	default:
		return ""
	}
}
