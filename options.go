package eventcore

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/util/logger"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 基础配置（WithConfig / WithConfigFile）
	base *config.Config

	// 单项覆盖
	logLevel      string
	frameInterval time.Duration
	autoStart     *bool
	metrics       *bool

	// 注入依赖
	clock      clock.Clock
	registerer prometheus.Registerer

	// 用户扩展的 Fx 选项
	fxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// toConfig 合并基础配置与单项覆盖
func (o *options) toConfig() *config.Config {
	cfg := config.NewConfig()
	if o.base != nil {
		copied := *o.base
		cfg = &copied
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.frameInterval > 0 {
		cfg.FrameLoop.Interval = config.Duration(o.frameInterval)
	}
	if o.autoStart != nil {
		cfg.FrameLoop.AutoStart = *o.autoStart
	}
	if o.metrics != nil {
		cfg.Metrics.Enabled = *o.metrics
	}
	return cfg
}

// ============================================================================
//                              配置来源
// ============================================================================

// WithConfig 使用给定配置作为基础
//
// 配置会被复制，之后修改 cfg 不影响运行时。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config cannot be nil")
		}
		o.base = cfg
		return nil
	}
}

// WithConfigFile 从文件加载基础配置
//
// 按扩展名识别格式：.json、.yaml/.yml、.toml。
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		o.base = cfg
		return nil
	}
}

// ============================================================================
//                              单项覆盖
// ============================================================================

// WithLogLevel 设置日志级别配置，格式同 EVENTCORE_LOG_LEVEL
func WithLogLevel(spec string) Option {
	return func(o *options) error {
		if !logger.ValidLevelSpec(spec) {
			return fmt.Errorf("invalid log level spec %q", spec)
		}
		o.logLevel = spec
		return nil
	}
}

// WithFrameInterval 设置帧间隔
func WithFrameInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("frame interval must be positive, got %v", d)
		}
		o.frameInterval = d
		return nil
	}
}

// WithAutoStart 设置启动时是否自动运行帧循环
func WithAutoStart(enable bool) Option {
	return func(o *options) error {
		o.autoStart = &enable
		return nil
	}
}

// WithMetrics 启用或禁用 Prometheus 指标
func WithMetrics(enable bool) Option {
	return func(o *options) error {
		o.metrics = &enable
		return nil
	}
}

// ============================================================================
//                              依赖注入
// ============================================================================

// WithClock 注入时钟，测试中可传入 clock.NewMock()
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		if clk == nil {
			return errors.New("clock cannot be nil")
		}
		o.clock = clk
		return nil
	}
}

// WithRegisterer 指定 Prometheus 注册器
//
// 未指定时使用运行时私有的注册表。
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.New("registerer cannot be nil")
		}
		o.registerer = reg
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
//
// 可用于向应用注入额外组件或 fx.Invoke 订阅事件。
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
