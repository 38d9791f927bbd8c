// Package main 是计算器 CLI 的入口
package main

import "yqhp/calculator/cmd"

func main() {
	cmd.Execute()
}
