package eventcore

import (
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/core/eventbus"
	"github.com/dep2p/go-eventcore/internal/core/lifecycle"
	"github.com/dep2p/go-eventcore/internal/core/metrics"
	"github.com/dep2p/go-eventcore/internal/engine/frameloop"
	"github.com/dep2p/go-eventcore/internal/engine/input"
	"github.com/dep2p/go-eventcore/internal/engine/resource"
)

// buildFxApp 构建 Fx 应用
//
// 模块加载顺序：
//  1. 配置与注入依赖
//  2. 核心层（lifecycle, metrics, eventbus）
//  3. 引擎层（frameloop, input, resource）
//  4. 用户扩展
func buildFxApp(cfg *config.Config, o *options, rt *Runtime) *fx.App {
	modules := []fx.Option{
		fx.Supply(cfg),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 1. 注入依赖（可选）
	// ════════════════════════════════════════════════════════════════════════
	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}
	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 核心层
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		lifecycle.Module(),
		// metrics 始终加载：关闭时提供空 Collector
		metrics.Module,
		eventbus.Module(),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 3. 引擎层
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		frameloop.Module(),
		input.Module(),
		resource.Module(),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 4. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(o.fxOptions) > 0 {
		modules = append(modules, o.fxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 5. Runtime 组件注入
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Invoke(injectRuntimeComponents(rt)))

	// ════════════════════════════════════════════════════════════════════════
	// 6. Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	return fx.New(modules...)
}

// runtimeInjectParams Runtime 组件注入参数
type runtimeInjectParams struct {
	fx.In

	Hub         *eventbus.Hub
	Coordinator *lifecycle.Coordinator
	Collector   *metrics.Collector
	Loop        *frameloop.Loop
	Keyboard    *input.Keyboard
	Resources   *resource.Registry
}

// injectRuntimeComponents 把 Fx 构建的组件注入 Runtime
func injectRuntimeComponents(rt *Runtime) interface{} {
	return func(params runtimeInjectParams) {
		rt.hub = params.Hub
		rt.coordinator = params.Coordinator
		rt.collector = params.Collector
		rt.loop = params.Loop
		rt.keyboard = params.Keyboard
		rt.resources = params.Resources
	}
}
