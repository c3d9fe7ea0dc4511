package lifecycle

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
)

// Params 协调器依赖参数
type Params struct {
	fx.In

	Hub *eventbus.Hub `optional:"true"`
}

// provideCoordinator 提供 Coordinator 实例
func provideCoordinator(p Params) *Coordinator {
	return NewCoordinator(p.Hub)
}

// Module 返回 Fx 模块
//
// 提供生命周期协调器作为全局单例。启动时进入 Initializing，
// 停止时推进到 Stopped 并解除所有等待。
func Module() fx.Option {
	return fx.Module("lifecycle",
		fx.Provide(
			provideCoordinator,
		),
		fx.Invoke(registerLifecycleHooks),
	)
}

// lifecycleHooksParams 生命周期钩子参数
type lifecycleHooksParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Coordinator *Coordinator
}

// registerLifecycleHooks 注册生命周期钩子
func registerLifecycleHooks(params lifecycleHooksParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return params.Coordinator.AdvanceTo(PhaseInitializing)
		},
		OnStop: func(_ context.Context) error {
			err := params.Coordinator.AdvanceTo(PhaseStopped)
			params.Coordinator.Stop()
			return err
		},
	})
}
