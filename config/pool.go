package config

import "errors"

// PoolConfig 分发器数组池配置
type PoolConfig struct {
	// Enabled 是否启用数组池，关闭后所有数组直接分配
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`

	// MaxNodes 每个池的空闲节点上限，0 表示从不缓存
	MaxNodes int `json:"max_nodes" yaml:"max_nodes" toml:"max_nodes"`
}

// DefaultPoolConfig 返回默认数组池配置
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Enabled:  true,
		MaxNodes: 512,
	}
}

// Validate 验证数组池配置
func (c PoolConfig) Validate() error {
	if c.MaxNodes < 0 {
		return errors.New("pool max_nodes must be non-negative")
	}
	return nil
}
