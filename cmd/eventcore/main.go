// Package main 提供 eventcore 命令行入口
//
// 子命令：
//   - run: 运行带帧循环、键盘与资源注册表的演示运行时
//   - bench: 压测同步/异步分发
//   - config: 查看与校验配置文件
//   - version: 显示版本信息
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
