package eventbus

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/util/logger"
	pkgif "github.com/dep2p/go-eventcore/pkg/interfaces"
)

var log = logger.Logger("core/eventbus")

// ============================================================================
// Fx 模块
// ============================================================================

// Params Hub 依赖参数
type Params struct {
	fx.In

	Config   *config.Config     `optional:"true"`
	Observer pkgif.PoolObserver `optional:"true"`
}

// ProvideHub 按配置创建 Hub
//
// 未提供配置时使用默认配置。
func ProvideHub(p Params) *Hub {
	cfg := p.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return NewHub(HubOptionsFromConfig(cfg, p.Observer)...)
}

// HubOptionsFromConfig 把配置转换为 Hub 选项
func HubOptionsFromConfig(cfg *config.Config, observer pkgif.PoolObserver) []HubOption {
	opts := []HubOption{
		WithMaxPoolNodes(cfg.Pool.MaxNodes),
		WithParallelLimit(cfg.Dispatch.ParallelLimit),
	}
	if !cfg.Pool.Enabled {
		opts = append(opts, WithoutPooling())
	}
	if observer != nil {
		opts = append(opts, WithPoolObserver(observer))
	}
	return opts
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideHub),
		fx.Invoke(registerLifecycle),
	)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC      fx.Lifecycle
	Hub     *Hub
	Watcher pkgif.PoolWatcher `optional:"true"`
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			input.Hub.WatchPools(input.Watcher)
			stats := input.Hub.Stats()
			log.Debug("事件分发核心已启动",
				"max_nodes", stats.MaxNodes,
				"parallel_limit", input.Hub.ParallelLimit())
			return nil
		},
		OnStop: func(_ context.Context) error {
			stats := input.Hub.Stats()
			log.Debug("事件分发核心已停止",
				"sync_free", stats.SyncFree,
				"async_free", stats.AsyncFree)
			return nil
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "eventbus"
	// Description 模块描述
	Description = "多播事件分发核心，提供同步与异步的类型化订阅/广播"
)
