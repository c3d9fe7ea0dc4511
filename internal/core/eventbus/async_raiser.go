package eventbus

import "context"

// AsyncEventRaiser 独立的异步分发器，零值可用
//
// nil 分发器上的分发与查询均安全：没有处理器，ctx 已取消时返回 ctx.Err()。
type AsyncEventRaiser[T any] struct {
	set   subscriberSet
	limit int
}

// NewAsyncEventRaiser 创建使用 hub 数组池和并发上限的分发器
func NewAsyncEventRaiser[T any](hub *Hub) *AsyncEventRaiser[T] {
	r := &AsyncEventRaiser[T]{limit: hub.ParallelLimit()}
	r.set.pool = hub.asyncArrays()
	return r
}

// subscribers 返回订阅集合，nil 分发器返回 nil
func (r *AsyncEventRaiser[T]) subscribers() *subscriberSet {
	if r == nil {
		return nil
	}
	return &r.set
}

// parallelLimit 返回并发上限，nil 分发器不限
func (r *AsyncEventRaiser[T]) parallelLimit() int {
	if r == nil {
		return 0
	}
	return r.limit
}

// Subscribe 订阅
func (r *AsyncEventRaiser[T]) Subscribe(h AsyncHandler[T]) (AsyncUnsubscriber[T], error) {
	if h == nil {
		return AsyncUnsubscriber[T]{}, ErrNilHandler
	}
	ref := &handlerRef{fn: h}
	r.set.subscribe(ref)
	return AsyncUnsubscriber[T]{handle{set: &r.set, ref: ref}}, nil
}

// Unsubscribe 取消订阅，None 句柄以及属于其他分发器的句柄被忽略
func (r *AsyncEventRaiser[T]) Unsubscribe(u AsyncUnsubscriber[T]) {
	if r == nil || u.set != &r.set {
		return
	}
	r.set.unsubscribe(u.ref)
}

// Raise 并行分发并等待全部处理器结束
func (r *AsyncEventRaiser[T]) Raise(ctx context.Context, arg T) error {
	return raiseAsync(ctx, r.subscribers(), arg, Parallel, r.parallelLimit())
}

// RaiseSequentially 顺序分发，遇到第一个错误即停止
func (r *AsyncEventRaiser[T]) RaiseSequentially(ctx context.Context, arg T) error {
	return raiseAsync(ctx, r.subscribers(), arg, Sequential, 0)
}

// RaiseMode 按 mode 分发
func (r *AsyncEventRaiser[T]) RaiseMode(ctx context.Context, arg T, mode Mode) error {
	return raiseAsync(ctx, r.subscribers(), arg, mode, r.parallelLimit())
}

// Go 立即获取快照，在后台按 mode 分发
func (r *AsyncEventRaiser[T]) Go(ctx context.Context, arg T, mode Mode) *Promise {
	return goAsync(ctx, r.subscribers(), arg, mode, r.parallelLimit())
}

// Clear 清空所有订阅，不通知订阅者
func (r *AsyncEventRaiser[T]) Clear() {
	if r == nil {
		return
	}
	r.set.clear()
}

// SubscribedCount 返回当前订阅数
func (r *AsyncEventRaiser[T]) SubscribedCount() int {
	if r == nil {
		return 0
	}
	return r.set.len()
}
