package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-eventcore/config"
	pkgif "github.com/dep2p/go-eventcore/pkg/interfaces"
)

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Result Metrics 模块输出
type Result struct {
	fx.Out

	Collector *Collector
	Observer  pkgif.PoolObserver
	Watcher   pkgif.PoolWatcher
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewCollectorFromParams),
	fx.Invoke(registerLifecycle),
)

// NewCollectorFromParams 从参数创建 Collector
//
// 指标关闭时返回 nil Collector（所有方法均为空操作）。
func NewCollectorFromParams(p Params) (Result, error) {
	cfg := config.DefaultMetricsConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Metrics
	}
	if !cfg.Enabled {
		var nop *Collector
		return Result{Collector: nop, Observer: nop, Watcher: nop}, nil
	}

	c, err := NewCollector(cfg.Namespace, p.Registerer)
	if err != nil {
		return Result{}, err
	}
	return Result{Collector: c, Observer: c, Watcher: c}, nil
}

func registerLifecycle(lc fx.Lifecycle, c *Collector) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			c.Close()
			return nil
		},
	})
}
