package eventcore

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/core/eventbus"
	"github.com/dep2p/go-eventcore/internal/core/lifecycle"
	"github.com/dep2p/go-eventcore/internal/core/metrics"
	"github.com/dep2p/go-eventcore/internal/engine/frameloop"
	"github.com/dep2p/go-eventcore/internal/engine/input"
	"github.com/dep2p/go-eventcore/internal/engine/resource"
	"github.com/dep2p/go-eventcore/internal/util/logger"
)

var log = logger.Logger("eventcore")

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期常量
// ════════════════════════════════════════════════════════════════════════════

const (
	// initializeTimeout 初始化超时（Fx App Start）
	initializeTimeout = 30 * time.Second

	// shutdownTimeout 调用方 ctx 无截止时间时的停止超时
	shutdownTimeout = 10 * time.Second
)

// ════════════════════════════════════════════════════════════════════════════
//                              Runtime
// ════════════════════════════════════════════════════════════════════════════

// Runtime 事件核心运行时
//
// Runtime 持有共享 Hub 和挂在其上的引擎组件。New 只构建依赖图，
// Start 之后各组件才开始工作。Stop 之后不能再次启动。
type Runtime struct {
	mu      sync.Mutex
	started bool
	closed  bool

	cfg *config.Config
	app *fx.App

	// 由 Fx 注入
	hub         *eventbus.Hub
	coordinator *lifecycle.Coordinator
	collector   *metrics.Collector
	loop        *frameloop.Loop
	keyboard    *input.Keyboard
	resources   *resource.Registry
}

// New 创建运行时
//
// 选项按顺序应用，之后校验合并后的配置并应用日志设置。
func New(opts ...Option) (*Runtime, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	cfg := o.toConfig()
	if err := config.ValidateAll(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	applyLogConfig(cfg.Log)

	rt := &Runtime{cfg: cfg}
	rt.app = buildFxApp(cfg, o, rt)
	if err := rt.app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return rt, nil
}

// applyLogConfig 应用日志级别与输出目标
func applyLogConfig(c config.LogConfig) {
	if c.Level != "" {
		logger.Apply(c.Level)
	}
	switch strings.ToLower(c.Output) {
	case "stdout":
		logger.SetOutput(os.Stdout)
	case "", "stderr":
		logger.SetOutput(os.Stderr)
	}
}

// Start 启动运行时
//
// 阶段推进：Created → Initializing（Fx OnStart）→ Loading → Running。
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.started {
		return ErrAlreadyStarted
	}

	initCtx, initCancel := context.WithTimeout(ctx, initializeTimeout)
	defer initCancel()

	if err := r.app.Start(initCtx); err != nil {
		log.Error("运行时初始化失败", "err", err)
		r.closed = true
		return fmt.Errorf("initialize failed: %w", err)
	}

	if err := multierr.Combine(
		r.coordinator.AdvanceTo(lifecycle.PhaseLoading),
		r.coordinator.AdvanceTo(lifecycle.PhaseRunning),
	); err != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stopCancel()
		r.closed = true
		return multierr.Append(fmt.Errorf("advance lifecycle: %w", err), r.app.Stop(stopCtx))
	}

	r.started = true
	log.Info("运行时已启动",
		"frame_interval", r.loop.Interval(),
		"metrics", r.cfg.Metrics.Enabled)
	return nil
}

// Stop 停止运行时
//
// 松开所有按键、停止帧循环、清空资源缓存，最后推进到 Stopped。
// 各步骤的错误会合并返回。
func (r *Runtime) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if !r.started {
		return ErrNotStarted
	}
	r.closed = true

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
	}

	err := r.coordinator.AdvanceTo(lifecycle.PhaseStopping)
	released := r.keyboard.ReleaseAll()
	err = multierr.Append(err, r.app.Stop(ctx))

	log.Info("运行时已停止",
		"frames", r.loop.Frames(),
		"released_keys", released,
		"err", err)
	return err
}

// Done 返回在运行时停止时关闭的 channel
func (r *Runtime) Done() <-chan struct{} {
	return r.coordinator.Context().Done()
}

// ============================================================================
//                              组件访问
// ============================================================================

// Config 返回生效的配置
func (r *Runtime) Config() *config.Config { return r.cfg }

// Hub 返回共享的池与并发上限容器，用于创建新的事件源
func (r *Runtime) Hub() *Hub { return r.hub }

// Lifecycle 返回生命周期协调器
func (r *Runtime) Lifecycle() *lifecycle.Coordinator { return r.coordinator }

// Phase 返回当前生命周期阶段
func (r *Runtime) Phase() Phase { return r.coordinator.Phase() }

// Frames 返回帧循环
func (r *Runtime) Frames() *frameloop.Loop { return r.loop }

// Keyboard 返回键盘输入
func (r *Runtime) Keyboard() *input.Keyboard { return r.keyboard }

// Resources 返回资源注册表
func (r *Runtime) Resources() *resource.Registry { return r.resources }

// Metrics 返回指标采集器，指标关闭时为 nil
func (r *Runtime) Metrics() *metrics.Collector { return r.collector }

// Gatherer 返回指标收集入口，指标关闭或注册器不可收集时为 nil
func (r *Runtime) Gatherer() prometheus.Gatherer { return r.collector.Gatherer() }
