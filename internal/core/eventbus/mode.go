package eventbus

import (
	"fmt"
	"strings"
)

// Mode 异步分发的执行顺序
type Mode int

const (
	// Parallel 按订阅顺序依次启动所有处理器，不等待前一个完成
	Parallel Mode = iota
	// Sequential 按订阅顺序逐个执行，前一个完成后才启动下一个
	Sequential
)

// String 返回模式名称
func (m Mode) String() string {
	switch m {
	case Parallel:
		return "parallel"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode 解析模式名称（不区分大小写）
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parallel", "":
		return Parallel, nil
	case "sequential":
		return Sequential, nil
	default:
		return Parallel, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
