package config

import "errors"

// ResourceConfig 资源缓存配置
type ResourceConfig struct {
	// CacheSize 最多缓存的资源数，超出时淘汰最久未使用的资源
	CacheSize int `json:"cache_size" yaml:"cache_size" toml:"cache_size"`
}

// DefaultResourceConfig 返回默认资源缓存配置
func DefaultResourceConfig() ResourceConfig {
	return ResourceConfig{
		CacheSize: 128,
	}
}

// Validate 验证资源缓存配置
func (c ResourceConfig) Validate() error {
	if c.CacheSize <= 0 {
		return errors.New("resource cache_size must be positive")
	}
	return nil
}
