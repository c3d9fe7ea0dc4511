package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
)

// TestCoordinator_Initial 测试初始状态
func TestCoordinator_Initial(t *testing.T) {
	c := NewCoordinator(nil)
	assert.Equal(t, PhaseCreated, c.Phase())
	assert.True(t, c.IsCompleted(PhaseCreated))
	assert.False(t, c.IsCompleted(PhaseInitializing))
	assert.False(t, c.IsCompleted(Phase(42)))
}

// TestCoordinator_AdvanceTo 测试推进并完成中间阶段
func TestCoordinator_AdvanceTo(t *testing.T) {
	c := NewCoordinator(eventbus.NewHub())

	require.NoError(t, c.AdvanceTo(PhaseRunning))
	assert.Equal(t, PhaseRunning, c.Phase())
	for _, p := range []Phase{PhaseInitializing, PhaseLoading, PhaseRunning} {
		assert.True(t, c.IsCompleted(p), p.String())
	}
	assert.False(t, c.IsCompleted(PhaseStopping))

	// 同一阶段是空操作
	assert.NoError(t, c.AdvanceTo(PhaseRunning))

	// 不能后退
	assert.Error(t, c.AdvanceTo(PhaseLoading))
	assert.Error(t, c.AdvanceTo(Phase(-1)))
	assert.Error(t, c.AdvanceTo(Phase(99)))
}

// TestCoordinator_PhaseChanged 测试阶段变更事件
func TestCoordinator_PhaseChanged(t *testing.T) {
	c := NewCoordinator(eventbus.NewHub())
	var got []PhaseChange

	sub, err := c.PhaseChanged().Subscribe(func(ch PhaseChange) {
		// 处理器执行时锁已释放
		assert.Equal(t, ch.To, c.Phase())
		got = append(got, ch)
	})
	require.NoError(t, err)

	require.NoError(t, c.AdvanceTo(PhaseInitializing))
	require.NoError(t, c.AdvanceTo(PhaseRunning))
	require.NoError(t, c.AdvanceTo(PhaseRunning))

	assert.Equal(t, []PhaseChange{
		{From: PhaseCreated, To: PhaseInitializing},
		{From: PhaseInitializing, To: PhaseRunning},
	}, got)

	sub.Dispose()
	require.NoError(t, c.AdvanceTo(PhaseStopped))
	assert.Len(t, got, 2)
}

// TestCoordinator_WaitFor 测试阶段 gate
func TestCoordinator_WaitFor(t *testing.T) {
	c := NewCoordinator(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var waitErr error
	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		waitErr = c.WaitFor(ctx, PhaseLoading)
	}()

	require.NoError(t, c.AdvanceTo(PhaseLoading))
	wg.Wait()
	assert.NoError(t, waitErr)

	assert.Error(t, c.WaitFor(context.Background(), Phase(42)))
}

// TestCoordinator_WaitForCanceled 测试等待被取消
func TestCoordinator_WaitForCanceled(t *testing.T) {
	c := NewCoordinator(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.WaitFor(ctx, PhaseRunning), context.Canceled)

	assert.ErrorIs(t, c.WaitForWithTimeout(PhaseRunning, 10*time.Millisecond), context.DeadlineExceeded)

	c.Stop()
	assert.Error(t, c.WaitFor(context.Background(), PhaseRunning))
	assert.Error(t, c.Context().Err())
}

// TestCoordinator_Complete 测试单独完成阶段信号
func TestCoordinator_Complete(t *testing.T) {
	c := NewCoordinator(nil)
	c.Complete(PhaseLoading)
	c.Complete(PhaseLoading)

	assert.True(t, c.IsCompleted(PhaseLoading))
	assert.Equal(t, PhaseCreated, c.Phase())

	// 推进经过已完成的阶段不会重复关闭
	assert.NotPanics(t, func() { _ = c.AdvanceTo(PhaseRunning) })
}

// TestPhase_String 测试阶段名称
func TestPhase_String(t *testing.T) {
	assert.Equal(t, "created", PhaseCreated.String())
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "stopped", PhaseStopped.String())
	assert.Equal(t, "unknown(9)", Phase(9).String())
}

// TestModule_Lifecycle 测试 Fx 模块推进阶段
func TestModule_Lifecycle(t *testing.T) {
	var c *Coordinator

	app := fxtest.New(t,
		eventbus.Module(),
		Module(),
		fx.Populate(&c),
	)
	app.RequireStart()
	assert.Equal(t, PhaseInitializing, c.Phase())

	app.RequireStop()
	assert.Equal(t, PhaseStopped, c.Phase())
	assert.Error(t, c.Context().Err())
}
