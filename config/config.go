// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义，
// 支持从 JSON、YAML、TOML 加载。
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Pool.MaxNodes = 1024
//	cfg.FrameLoop.Interval = config.Duration(8 * time.Millisecond)
//
//	// 从文件加载（按扩展名选择格式）
//	cfg, err := config.LoadFile("eventcore.yaml")
package config

// Config 是 eventcore 的完整配置结构
//
// 配置按照功能模块组织：
//   - Pool: 分发器数组池
//   - Dispatch: 异步分发
//   - Metrics: Prometheus 指标
//   - Log: 日志
//   - FrameLoop: 帧循环
//   - Resource: 资源缓存
type Config struct {
	// Pool 数组池配置
	Pool PoolConfig `json:"pool" yaml:"pool" toml:"pool"`

	// Dispatch 异步分发配置
	Dispatch DispatchConfig `json:"dispatch" yaml:"dispatch" toml:"dispatch"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" toml:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log" yaml:"log" toml:"log"`

	// FrameLoop 帧循环配置
	FrameLoop FrameLoopConfig `json:"frame_loop" yaml:"frame_loop" toml:"frame_loop"`

	// Resource 资源缓存配置
	Resource ResourceConfig `json:"resource" yaml:"resource" toml:"resource"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Pool:      DefaultPoolConfig(),
		Dispatch:  DefaultDispatchConfig(),
		Metrics:   DefaultMetricsConfig(),
		Log:       DefaultLogConfig(),
		FrameLoop: DefaultFrameLoopConfig(),
		Resource:  DefaultResourceConfig(),
	}
}

// Validate 验证配置的有效性
//
// 按子配置依次检查，返回遇到的第一个错误。
func (c *Config) Validate() error {
	if err := c.Pool.Validate(); err != nil {
		return err
	}
	if err := c.Dispatch.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.FrameLoop.Validate(); err != nil {
		return err
	}
	if err := c.Resource.Validate(); err != nil {
		return err
	}
	return nil
}
