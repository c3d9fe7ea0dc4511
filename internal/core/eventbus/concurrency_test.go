package eventbus

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// 并发测试
// ============================================================================

// TestConcurrent_SubscribeWhileRaising 测试分发期间并发订阅不会丢失订阅
func TestConcurrent_SubscribeWhileRaising(t *testing.T) {
	for round := 0; round < 20; round++ {
		src := NewEventSource[int](NewHub())
		var aCalls, bCalls atomic.Int64
		var subscribed sync.WaitGroup
		stop := make(chan struct{})
		raiserDone := make(chan struct{})

		go func() {
			defer close(raiserDone)
			for {
				select {
				case <-stop:
					return
				default:
					src.Invoke(1)
				}
			}
		}()

		subscribed.Add(2)
		go func() {
			defer subscribed.Done()
			_, err := src.Event().Subscribe(func(int) { aCalls.Add(1) })
			assert.NoError(t, err)
		}()
		go func() {
			defer subscribed.Done()
			_, err := src.Event().Subscribe(func(int) { bCalls.Add(1) })
			assert.NoError(t, err)
		}()
		subscribed.Wait()

		// 订阅返回之后开始的分发必须看到两个处理器
		a, b := aCalls.Load(), bCalls.Load()
		src.Invoke(1)
		assert.Greater(t, aCalls.Load(), a)
		assert.Greater(t, bCalls.Load(), b)

		close(stop)
		<-raiserDone
		require.Equal(t, 2, src.SubscribedCount())
	}
}

// TestConcurrent_Churn 测试并发订阅、取消订阅与分发
func TestConcurrent_Churn(t *testing.T) {
	hub := NewHub()
	r := NewEventRaiser[int](hub)
	ar := NewAsyncEventRaiser[int](hub)

	var stable atomic.Int64
	_, _ = r.Subscribe(func(int) { stable.Add(1) })

	var g errgroup.Group
	const workers = 8
	const iterations = 200

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				u, err := r.Subscribe(func(int) {})
				if err != nil {
					return err
				}
				au, err := ar.Subscribe(func(context.Context, int) error { return nil })
				if err != nil {
					return err
				}
				r.Raise(i)
				if err := ar.Raise(context.Background(), i); err != nil {
					return err
				}
				u.Dispose()
				au.Dispose()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, r.SubscribedCount())
	assert.Equal(t, 0, ar.SubscribedCount())
	assert.Equal(t, int64(workers*iterations), stable.Load())

	stats := hub.Stats()
	assert.LessOrEqual(t, stats.SyncFree, stats.MaxNodes)
	assert.LessOrEqual(t, stats.AsyncFree, stats.MaxNodes)
}

// TestConcurrent_ClearWhileRaising 测试分发期间清空
func TestConcurrent_ClearWhileRaising(t *testing.T) {
	src := NewAsyncEventSource[int](NewHub())

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 500; i++ {
			_, err := src.Event().Subscribe(func(context.Context, int) error { return nil })
			if err != nil {
				return err
			}
			if i%10 == 0 {
				src.Clear()
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < 500; i++ {
			if err := src.InvokeSequentially(context.Background(), i); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, src.SubscribedCount(), 10)
}
