package config

import (
	"fmt"
	"strings"

	"github.com/dep2p/go-eventcore/internal/util/logger"
)

// LogConfig 日志配置
//
// 输出格式只能通过 EVENTCORE_LOG_FORMAT 环境变量设置。
type LogConfig struct {
	// Level 级别配置字符串，格式同 EVENTCORE_LOG_LEVEL
	// 例如 "core/eventbus=debug,info"；为空时保持环境变量的设置
	Level string `json:"level" yaml:"level" toml:"level"`

	// Output 输出目标：stderr 或 stdout
	Output string `json:"output" yaml:"output" toml:"output"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Output: "stderr",
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	if !logger.ValidLevelSpec(c.Level) {
		return fmt.Errorf("invalid log level spec %q", c.Level)
	}
	switch strings.ToLower(c.Output) {
	case "", "stderr", "stdout":
		return nil
	default:
		return fmt.Errorf("invalid log output %q (want stderr or stdout)", c.Output)
	}
}
