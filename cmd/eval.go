package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"yqhp/calculator/internal/calculator"
	"yqhp/calculator/internal/expression"
)

// errNoResult 表示至少一个表达式没有结果
var errNoResult = errors.New("存在无法求值的表达式")

var (
	// eval 命令的 flags
	evalTrace bool
)

// evalCmd 是 eval 子命令
var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "对表达式求值",
	Long: `对一个或多个表达式求值，每行输出一个结果。

不带参数时从标准输入逐行读取表达式。
空表达式输出空行；无法求值的表达式在标准错误输出原因，命令以非零状态退出。`,
	Example: `  calc eval "90+10%"
  calc eval "2+3*4" "10%50"
  echo "100-5%" | calc eval
  calc eval --trace "90+10%*2"`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().BoolVar(&evalTrace, "trace", false, "输出每个求值阶段")
	evalCmd.Flags().Int("max-input-length", 0, "表达式最大长度（0 为不限制）")
}

func runEval(cmd *cobra.Command, args []string) error {
	svc := newService()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	failed := false
	evalOne := func(raw string) error {
		ok, err := printEvaluation(svc, out, errOut, raw, evalTrace)
		if err != nil {
			return err
		}
		if !ok {
			failed = true
		}
		return nil
	}

	if len(args) > 0 {
		for _, raw := range args {
			if err := evalOne(raw); err != nil {
				return err
			}
		}
	} else {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if err := evalOne(scanner.Text()); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("读取标准输入失败: %w", err)
		}
	}

	if failed {
		return errNoResult
	}
	return nil
}

// printEvaluation 输出一次求值，返回是否得到结果（空输入也算成功）
func printEvaluation(svc *calculator.Service, out, errOut io.Writer, raw string, trace bool) (bool, error) {
	ev, err := svc.Evaluate(raw)
	if err != nil {
		return false, err
	}

	if trace && ev.Trace != nil {
		printTrace(out, ev.Trace)
	}

	switch ev.Result.Outcome {
	case expression.OutcomeValue:
		fmt.Fprintln(out, ev.Result.Text)
		return true, nil
	case expression.OutcomeEmpty:
		fmt.Fprintln(out)
		return true, nil
	default:
		fmt.Fprintf(errOut, "无结果: %q (%s): %v\n", raw, expression.ErrorKind(ev.Result.Err), ev.Result.Err)
		return false, nil
	}
}

func printTrace(w io.Writer, trace *expression.Trace) {
	fmt.Fprintf(w, "  输入:     %s\n", trace.Input)
	fmt.Fprintf(w, "  百分号:   %s\n", trace.Normalized)
	fmt.Fprintf(w, "  词法单元: %s\n", joinTokens(trace.Tokens))
	fmt.Fprintf(w, "  后缀式:   %s\n", joinTokens(trace.Postfix))
}

func joinTokens(tokens []expression.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Literal
	}
	return strings.Join(parts, " ")
}
