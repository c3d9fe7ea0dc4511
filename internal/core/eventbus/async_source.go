package eventbus

import (
	"context"
	"sync/atomic"
)

// AsyncEventSource 异步事件的拥有方
//
// 与 EventSource 结构相同，处理器签名为 AsyncHandler。零值可用。
type AsyncEventSource[T any] struct {
	holder atomic.Pointer[subscriberSet]
	hub    *Hub
}

// NewAsyncEventSource 创建使用 hub 数组池的异步事件源
func NewAsyncEventSource[T any](hub *Hub) *AsyncEventSource[T] {
	return &AsyncEventSource[T]{hub: hub}
}

// Event 返回只能订阅的视图
func (s *AsyncEventSource[T]) Event() AsyncEvent[T] {
	return AsyncEvent[T]{source: s}
}

// Invoke 并行分发并等待全部处理器结束，错误按订阅顺序合并
func (s *AsyncEventSource[T]) Invoke(ctx context.Context, arg T) error {
	return raiseAsync(ctx, s.holder.Load(), arg, Parallel, s.hub.ParallelLimit())
}

// InvokeSequentially 顺序分发，遇到第一个错误即停止
func (s *AsyncEventSource[T]) InvokeSequentially(ctx context.Context, arg T) error {
	return raiseAsync(ctx, s.holder.Load(), arg, Sequential, 0)
}

// Go 立即获取快照，在后台按 mode 分发
func (s *AsyncEventSource[T]) Go(ctx context.Context, arg T, mode Mode) *Promise {
	return goAsync(ctx, s.holder.Load(), arg, mode, s.hub.ParallelLimit())
}

// Clear 清空所有订阅，不通知订阅者
func (s *AsyncEventSource[T]) Clear() {
	if set := s.holder.Load(); set != nil {
		set.clear()
	}
}

// SubscribedCount 返回当前订阅数
func (s *AsyncEventSource[T]) SubscribedCount() int {
	if set := s.holder.Load(); set != nil {
		return set.len()
	}
	return 0
}

func (s *AsyncEventSource[T]) subscribers() *subscriberSet {
	if set := s.holder.Load(); set != nil {
		return set
	}
	fresh := &subscriberSet{pool: s.hub.asyncArrays()}
	if s.holder.CompareAndSwap(nil, fresh) {
		return fresh
	}
	return s.holder.Load()
}

// AsyncEvent 异步事件的订阅视图，零值为 None
type AsyncEvent[T any] struct {
	source *AsyncEventSource[T]
}

// Subscribe 订阅事件
func (e AsyncEvent[T]) Subscribe(h AsyncHandler[T]) (AsyncSubscription[T], error) {
	if e.source == nil {
		return AsyncSubscription[T]{}, ErrNilEvent
	}
	if h == nil {
		return AsyncSubscription[T]{}, ErrNilHandler
	}
	set := e.source.subscribers()
	ref := &handlerRef{fn: h}
	set.subscribe(ref)
	return AsyncSubscription[T]{handle{set: set, ref: ref}}, nil
}

// IsNone 报告视图是否未绑定事件源
func (e AsyncEvent[T]) IsNone() bool {
	return e.source == nil
}
