package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FrameLoopConfig 帧循环配置
type FrameLoopConfig struct {
	// Interval 帧间隔
	Interval Duration `json:"interval" yaml:"interval" toml:"interval"`

	// LateUpdateMode LateUpdated 异步事件的分发模式：parallel 或 sequential
	LateUpdateMode string `json:"late_update_mode" yaml:"late_update_mode" toml:"late_update_mode"`

	// AutoStart 运行时启动时是否自动开始循环
	AutoStart bool `json:"auto_start" yaml:"auto_start" toml:"auto_start"`
}

// DefaultFrameLoopConfig 返回默认帧循环配置（约 60 帧/秒）
func DefaultFrameLoopConfig() FrameLoopConfig {
	return FrameLoopConfig{
		Interval:       Duration(16 * time.Millisecond),
		LateUpdateMode: "sequential",
		AutoStart:      false,
	}
}

// Validate 验证帧循环配置
func (c FrameLoopConfig) Validate() error {
	if c.Interval <= 0 {
		return errors.New("frame_loop interval must be positive")
	}
	switch strings.ToLower(c.LateUpdateMode) {
	case "", "parallel", "sequential":
		return nil
	default:
		return fmt.Errorf("invalid frame_loop late_update_mode %q", c.LateUpdateMode)
	}
}
