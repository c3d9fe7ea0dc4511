package resource

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/core/eventbus"
)

// Params 注册表依赖参数
type Params struct {
	fx.In

	Config *config.Config `optional:"true"`
	Hub    *eventbus.Hub
	Clock  clock.Clock `optional:"true"`
}

// ProvideRegistry 按配置创建注册表
func ProvideRegistry(p Params) (*Registry, error) {
	cfg := config.DefaultResourceConfig()
	if p.Config != nil {
		cfg = p.Config.Resource
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewRegistry(cfg.CacheSize, p.Hub, p.Clock)
}

// Module 返回 Fx 模块
//
// 停止时清空缓存，订阅者会收到每个资源的 Evicted。
func Module() fx.Option {
	return fx.Module("resource",
		fx.Provide(ProvideRegistry),
		fx.Invoke(func(lc fx.Lifecycle, r *Registry) {
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					r.Purge()
					return nil
				},
			})
		}),
	)
}
