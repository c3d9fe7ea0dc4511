// Package lifecycle 提供引擎生命周期协调器
//
// 阶段定义：
//
//	Created → Initializing → Loading → Running → Stopping → Stopped
//
// 本模块的核心职责：
//  1. 定义生命周期阶段 gate
//  2. 提供基于信号的显式依赖机制（WaitFor）
//  3. 通过同步事件广播阶段变更
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
	"github.com/dep2p/go-eventcore/internal/util/logger"
)

var log = logger.Logger("core/lifecycle")

// ============================================================================
//                              阶段定义
// ============================================================================

// Phase 生命周期阶段
type Phase int

const (
	// PhaseCreated 引擎已创建，未启动
	PhaseCreated Phase = iota

	// PhaseInitializing 初始化各子系统（分发核心、指标、输入）
	PhaseInitializing

	// PhaseLoading 加载初始资源
	PhaseLoading

	// PhaseRunning 帧循环运行中
	PhaseRunning

	// PhaseStopping 正在停止，不再接收新帧
	PhaseStopping

	// PhaseStopped 已停止
	PhaseStopped
)

// String 返回阶段字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseInitializing:
		return "initializing"
	case PhaseLoading:
		return "loading"
	case PhaseRunning:
		return "running"
	case PhaseStopping:
		return "stopping"
	case PhaseStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", p)
	}
}

// PhaseChange 阶段变更事件
type PhaseChange struct {
	From Phase
	To   Phase
}

// ============================================================================
//                              生命周期协调器
// ============================================================================

// Coordinator 生命周期协调器
//
// 追踪当前阶段，提供阶段 gate，并在阶段推进后广播 PhaseChanged 事件。
type Coordinator struct {
	mu sync.RWMutex

	// 当前阶段
	phase Phase

	// 阶段完成信号，关闭表示该阶段已完成
	phaseSignals map[Phase]chan struct{}

	// advanceMu 串行化阶段推进与事件广播，保证订阅者按推进顺序收到事件
	advanceMu sync.Mutex

	changed *eventbus.EventSource[PhaseChange]

	ctx    context.Context
	cancel context.CancelFunc
}

// NewCoordinator 创建生命周期协调器
//
// hub 可以为 nil。
func NewCoordinator(hub *eventbus.Hub) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		phase:        PhaseCreated,
		phaseSignals: make(map[Phase]chan struct{}),
		changed:      eventbus.NewEventSource[PhaseChange](hub),
		ctx:          ctx,
		cancel:       cancel,
	}

	for p := PhaseCreated; p <= PhaseStopped; p++ {
		c.phaseSignals[p] = make(chan struct{})
	}
	// 创建即完成 Created
	close(c.phaseSignals[PhaseCreated])

	return c
}

// ============================================================================
//                              阶段管理
// ============================================================================

// Phase 返回当前阶段
func (c *Coordinator) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// PhaseChanged 返回阶段变更事件
//
// 处理器在推进阶段的 goroutine 上同步执行，此时状态锁已释放，
// 可以查询阶段；但不能在处理器内同步调用 AdvanceTo（会死锁）。
func (c *Coordinator) PhaseChanged() eventbus.Event[PhaseChange] {
	return c.changed.Event()
}

// AdvanceTo 推进到指定阶段
//
// 规则：
//   - 只能向前推进，不能后退
//   - 会自动完成中间所有阶段的信号
func (c *Coordinator) AdvanceTo(target Phase) error {
	if target < PhaseCreated || target > PhaseStopped {
		return fmt.Errorf("invalid phase: %d", target)
	}

	c.advanceMu.Lock()
	defer c.advanceMu.Unlock()

	c.mu.Lock()
	if target < c.phase {
		current := c.phase
		c.mu.Unlock()
		return fmt.Errorf("cannot advance backwards: current=%s target=%s", current, target)
	}
	if target == c.phase {
		c.mu.Unlock()
		return nil
	}

	old := c.phase
	for p := old; p <= target; p++ {
		c.completeLocked(p)
	}
	c.phase = target
	c.mu.Unlock()

	log.Info("生命周期阶段推进",
		"from", old.String(),
		"to", target.String())

	c.changed.Invoke(PhaseChange{From: old, To: target})
	return nil
}

// Complete 标记指定阶段完成
//
// 只完成单个阶段的信号，不改变当前阶段。
func (c *Coordinator) Complete(phase Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.completeLocked(phase) {
		log.Debug("阶段信号已完成", "phase", phase.String())
	}
}

func (c *Coordinator) completeLocked(phase Phase) bool {
	ch, ok := c.phaseSignals[phase]
	if !ok {
		return false
	}
	select {
	case <-ch:
		return false
	default:
		close(ch)
		return true
	}
}

// WaitFor 等待指定阶段完成
//
// 阻塞直到目标阶段完成、ctx 取消或协调器停止。
func (c *Coordinator) WaitFor(ctx context.Context, phase Phase) error {
	c.mu.RLock()
	ch := c.phaseSignals[phase]
	c.mu.RUnlock()

	if ch == nil {
		return fmt.Errorf("invalid phase: %d", phase)
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// WaitForWithTimeout 带超时等待指定阶段完成
func (c *Coordinator) WaitForWithTimeout(phase Phase, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()
	return c.WaitFor(ctx, phase)
}

// IsCompleted 检查指定阶段是否已完成
func (c *Coordinator) IsCompleted(phase Phase) bool {
	c.mu.RLock()
	ch := c.phaseSignals[phase]
	c.mu.RUnlock()

	if ch == nil {
		return false
	}

	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// ============================================================================
//                              生命周期控制
// ============================================================================

// Stop 停止协调器，解除所有 WaitFor 的阻塞
func (c *Coordinator) Stop() {
	c.cancel()
}

// Context 返回协调器上下文
func (c *Coordinator) Context() context.Context {
	return c.ctx
}
