package frameloop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/core/eventbus"
	"github.com/dep2p/go-eventcore/internal/util/logger"
)

var log = logger.Logger("engine/frameloop")

var (
	// ErrAlreadyRunning 循环已在运行
	ErrAlreadyRunning = errors.New("frameloop: already running")
)

// Frame 一帧的时间信息
type Frame struct {
	Index uint64        // 从 0 开始的帧序号
	Time  time.Time     // 帧开始时间
	Delta time.Duration // 距上一帧的时间，第一帧为 0
}

// Loop 帧循环
type Loop struct {
	clock    clock.Clock
	interval time.Duration
	lateMode eventbus.Mode

	updated     *eventbus.EventSource[Frame]
	lateUpdated *eventbus.AsyncEventSource[Frame]

	// stepMu 串行化帧，Step 与后台循环不会交错
	stepMu sync.Mutex
	index  uint64
	last   time.Time
	frames atomic.Uint64

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New 创建帧循环
//
// hub 可以为 nil；clk 为 nil 时使用系统时钟。
func New(cfg config.FrameLoopConfig, hub *eventbus.Hub, clk clock.Clock) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := eventbus.ParseMode(cfg.LateUpdateMode)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Loop{
		clock:       clk,
		interval:    cfg.Interval.Duration(),
		lateMode:    mode,
		updated:     eventbus.NewEventSource[Frame](hub),
		lateUpdated: eventbus.NewAsyncEventSource[Frame](hub),
	}, nil
}

// Updated 每帧同步广播的事件
func (l *Loop) Updated() eventbus.Event[Frame] {
	return l.updated.Event()
}

// LateUpdated 每帧在 Updated 之后异步广播的事件
func (l *Loop) LateUpdated() eventbus.AsyncEvent[Frame] {
	return l.lateUpdated.Event()
}

// Interval 返回帧间隔
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Frames 返回已执行的帧数
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Step 同步执行一帧
//
// 返回 LateUpdated 处理器的错误；Updated 处理器 panic 会直接传播。
// 不能在帧处理器内调用 Step 或 Stop。
func (l *Loop) Step(ctx context.Context) (Frame, error) {
	l.stepMu.Lock()
	defer l.stepMu.Unlock()

	now := l.clock.Now()
	frame := Frame{Index: l.index, Time: now}
	if l.index > 0 {
		frame.Delta = now.Sub(l.last)
	}
	l.index++
	l.last = now
	l.frames.Store(l.index)

	l.updated.Invoke(frame)

	var err error
	if l.lateMode == eventbus.Sequential {
		err = l.lateUpdated.InvokeSequentially(ctx, frame)
	} else {
		err = l.lateUpdated.Invoke(ctx, frame)
	}
	if err != nil {
		return frame, fmt.Errorf("frame %d late update: %w", frame.Index, err)
	}
	return frame, nil
}

// Start 在后台按间隔运行帧循环，直到 ctx 结束或调用 Stop
func (l *Loop) Start(ctx context.Context) error {
	l.runMu.Lock()
	defer l.runMu.Unlock()

	if l.done != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := l.clock.Ticker(l.interval)
	l.cancel = cancel
	l.done = done

	go l.run(ctx, ticker, done)

	log.Info("帧循环已启动", "interval", l.interval, "late_mode", l.lateMode.String())
	return nil
}

func (l *Loop) run(ctx context.Context, ticker *clock.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := l.Step(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				// 处理器错误不会停止循环
				log.Warn("帧处理失败", "err", err)
			}
		}
	}
}

// Stop 停止后台循环并等待当前帧结束，未运行时为空操作
func (l *Loop) Stop() {
	l.runMu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Info("帧循环已停止", "frames", l.Frames())
}

// Running 报告后台循环是否在运行
func (l *Loop) Running() bool {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	return l.done != nil
}
