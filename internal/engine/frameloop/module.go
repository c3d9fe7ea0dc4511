package frameloop

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/core/eventbus"
)

// Params 帧循环依赖参数
type Params struct {
	fx.In

	Config *config.Config `optional:"true"`
	Hub    *eventbus.Hub
	Clock  clock.Clock `optional:"true"`
}

// ProvideLoop 按配置创建帧循环
func ProvideLoop(p Params) (*Loop, error) {
	cfg := config.DefaultFrameLoopConfig()
	if p.Config != nil {
		cfg = p.Config.FrameLoop
	}
	return New(cfg, p.Hub, p.Clock)
}

// Module 返回 Fx 模块
//
// 配置 AutoStart 时随应用启动循环；停止时总是停止循环。
func Module() fx.Option {
	return fx.Module("frameloop",
		fx.Provide(ProvideLoop),
		fx.Invoke(registerLifecycle),
	)
}

type lifecycleInput struct {
	fx.In

	LC     fx.Lifecycle
	Loop   *Loop
	Config *config.Config `optional:"true"`
}

func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if input.Config == nil || !input.Config.FrameLoop.AutoStart {
				return nil
			}
			// 循环的生命周期独立于启动 ctx
			return input.Loop.Start(context.Background())
		},
		OnStop: func(context.Context) error {
			input.Loop.Stop()
			return nil
		},
	})
}
