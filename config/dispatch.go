package config

import "errors"

// DispatchConfig 异步分发配置
type DispatchConfig struct {
	// ParallelLimit 并行分发时同时运行的处理器上限，0 表示不限
	ParallelLimit int `json:"parallel_limit" yaml:"parallel_limit" toml:"parallel_limit"`
}

// DefaultDispatchConfig 返回默认分发配置
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{}
}

// Validate 验证分发配置
func (c DispatchConfig) Validate() error {
	if c.ParallelLimit < 0 {
		return errors.New("dispatch parallel_limit must be non-negative")
	}
	return nil
}
