package frameloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/core/eventbus"
)

func newTestLoop(t *testing.T, mode string) (*Loop, *clock.Mock) {
	t.Helper()
	cfg := config.DefaultFrameLoopConfig()
	cfg.LateUpdateMode = mode
	mock := clock.NewMock()
	loop, err := New(cfg, eventbus.NewHub(), mock)
	require.NoError(t, err)
	return loop, mock
}

// TestLoop_New 测试配置校验
func TestLoop_New(t *testing.T) {
	cfg := config.DefaultFrameLoopConfig()
	cfg.Interval = 0
	_, err := New(cfg, nil, nil)
	assert.Error(t, err)

	cfg = config.DefaultFrameLoopConfig()
	loop, err := New(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 16*time.Millisecond, loop.Interval())
	assert.Equal(t, eventbus.Sequential, loop.lateMode)
}

// TestLoop_Step 测试单帧执行顺序与时间
func TestLoop_Step(t *testing.T) {
	loop, mock := newTestLoop(t, "sequential")
	ctx := context.Background()
	var order []string
	var frames []Frame

	_, err := loop.LateUpdated().Subscribe(func(_ context.Context, f Frame) error {
		order = append(order, "late")
		return nil
	})
	require.NoError(t, err)
	_, err = loop.Updated().Subscribe(func(f Frame) {
		order = append(order, "update")
		frames = append(frames, f)
	})
	require.NoError(t, err)

	_, err = loop.Step(ctx)
	require.NoError(t, err)
	mock.Add(20 * time.Millisecond)
	f, err := loop.Step(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"update", "late", "update", "late"}, order)
	require.Len(t, frames, 2)
	assert.Equal(t, uint64(0), frames[0].Index)
	assert.Zero(t, frames[0].Delta)
	assert.Equal(t, uint64(1), f.Index)
	assert.Equal(t, 20*time.Millisecond, f.Delta)
	assert.Equal(t, mock.Now(), f.Time)
	assert.Equal(t, uint64(2), loop.Frames())
}

// TestLoop_StepLateError 测试 LateUpdated 错误
func TestLoop_StepLateError(t *testing.T) {
	loop, _ := newTestLoop(t, "parallel")
	errLate := errors.New("late failed")

	_, _ = loop.LateUpdated().Subscribe(func(context.Context, Frame) error { return errLate })
	_, _ = loop.LateUpdated().Subscribe(func(context.Context, Frame) error { return nil })

	f, err := loop.Step(context.Background())
	assert.ErrorIs(t, err, errLate)
	assert.Equal(t, uint64(0), f.Index)

	// 出错的帧仍然计数
	assert.Equal(t, uint64(1), loop.Frames())
}

// TestLoop_StartStop 测试后台循环
func TestLoop_StartStop(t *testing.T) {
	loop, mock := newTestLoop(t, "sequential")
	ticks := make(chan Frame, 16)

	_, _ = loop.Updated().Subscribe(func(f Frame) { ticks <- f })
	// 处理器错误不会停止循环
	_, _ = loop.LateUpdated().Subscribe(func(context.Context, Frame) error {
		return errors.New("ignored")
	})

	require.NoError(t, loop.Start(context.Background()))
	assert.True(t, loop.Running())
	assert.ErrorIs(t, loop.Start(context.Background()), ErrAlreadyRunning)

	for i := 0; i < 3; i++ {
		mock.Add(loop.Interval())
		select {
		case f := <-ticks:
			assert.Equal(t, uint64(i), f.Index)
		case <-time.After(5 * time.Second):
			t.Fatalf("frame %d not delivered", i)
		}
	}

	loop.Stop()
	assert.False(t, loop.Running())
	assert.Equal(t, uint64(3), loop.Frames())

	// 停止后再推进时钟不会产生新帧
	mock.Add(loop.Interval())
	assert.Equal(t, uint64(3), loop.Frames())

	loop.Stop()
}

// TestLoop_StopOnContext 测试 ctx 结束时循环退出
func TestLoop_StopOnContext(t *testing.T) {
	loop, _ := newTestLoop(t, "parallel")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, loop.Start(ctx))
	cancel()

	loop.runMu.Lock()
	done := loop.done
	loop.runMu.Unlock()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit")
	}
	loop.Stop()
	assert.False(t, loop.Running())
}

// TestLoop_ConcurrentStep 测试并发 Step 串行执行
func TestLoop_ConcurrentStep(t *testing.T) {
	loop, _ := newTestLoop(t, "parallel")
	seen := make(map[uint64]bool)
	var mu sync.Mutex
	_, _ = loop.Updated().Subscribe(func(f Frame) {
		mu.Lock()
		seen[f.Index] = true
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = loop.Step(context.Background())
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 10)
	assert.Equal(t, uint64(10), loop.Frames())
}

// TestModule_AutoStart 测试 Fx 模块自动启动
func TestModule_AutoStart(t *testing.T) {
	cfg := config.NewConfig()
	cfg.FrameLoop.AutoStart = true
	mock := clock.NewMock()
	var loop *Loop

	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() clock.Clock { return mock }),
		eventbus.Module(),
		Module(),
		fx.Populate(&loop),
	)
	app.RequireStart()
	assert.True(t, loop.Running())

	app.RequireStop()
	assert.False(t, loop.Running())
}
