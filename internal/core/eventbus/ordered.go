package eventbus

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// 异步分发
// ============================================================================

// raiseAsync 阻塞式异步分发
//
// ctx 只在入口检查一次；已取消时不调用任何处理器，直接返回 ctx.Err()。
func raiseAsync[T any](ctx context.Context, set *subscriberSet, arg T, mode Mode, limit int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if set == nil {
		return nil
	}
	single, snap := set.take()
	if single != nil {
		return invokeAsync(ctx, single, arg)
	}
	if snap.empty() {
		return nil
	}
	defer snap.release()
	return runOrdered(ctx, snap.refs, arg, mode, limit)
}

// goAsync 非阻塞式异步分发
//
// 快照在调用方 goroutine 上同步获取，之后的订阅变化不影响本次分发。
func goAsync[T any](ctx context.Context, set *subscriberSet, arg T, mode Mode, limit int) *Promise {
	if err := ctx.Err(); err != nil {
		return failedPromise(err)
	}
	if set == nil {
		return CompletedPromise()
	}
	single, snap := set.take()
	if single == nil && snap.empty() {
		return CompletedPromise()
	}

	p := newPromise()
	go func() {
		if single != nil {
			p.complete(invokeAsync(ctx, single, arg))
			return
		}
		defer snap.release()
		p.complete(runOrdered(ctx, snap.refs, arg, mode, limit))
	}()
	return p
}

func runOrdered[T any](ctx context.Context, refs []*handlerRef, arg T, mode Mode, limit int) error {
	if mode == Sequential {
		return runSequential(ctx, refs, arg)
	}
	return runParallel(ctx, refs, arg, limit)
}

// runSequential 逐个执行，遇到第一个错误即停止
func runSequential[T any](ctx context.Context, refs []*handlerRef, arg T) error {
	for _, ref := range refs {
		if err := invokeAsync(ctx, ref, arg); err != nil {
			return err
		}
	}
	return nil
}

// runParallel 按订阅顺序启动全部处理器并等待全部结束
//
// 第 i 个 goroutine 发出启动信号后才会派生第 i+1 个，等待的是启动而不是完成，
// 因此处理器的调用顺序与订阅顺序一致。错误按订阅顺序（而非完成顺序）合并。
// limit > 0 时同时运行的处理器不超过 limit 个，派生下一个需要等待空位。
func runParallel[T any](ctx context.Context, refs []*handlerRef, arg T, limit int) error {
	errs := make([]error, len(refs))
	started := make(chan struct{})

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, ref := range refs {
		g.Go(func() error {
			started <- struct{}{}
			errs[i] = invokeAsync(ctx, ref, arg)
			return nil
		})
		<-started
	}
	_ = g.Wait()

	return multierr.Combine(errs...)
}
