package eventbus

import "sync/atomic"

// EventSource 同步事件的拥有方
//
// 拥有方持有 EventSource 并调用 Invoke，对外只暴露 Event。
// 订阅者集合在第一次订阅时才创建，未被订阅的事件不占用额外内存。
// 零值可用（不使用数组池）；需要共享数组池时用 NewEventSource。
type EventSource[T any] struct {
	holder atomic.Pointer[subscriberSet]
	hub    *Hub
}

// NewEventSource 创建使用 hub 数组池的事件源
func NewEventSource[T any](hub *Hub) *EventSource[T] {
	return &EventSource[T]{hub: hub}
}

// Event 返回只能订阅的视图
func (s *EventSource[T]) Event() Event[T] {
	return Event[T]{source: s}
}

// Invoke 按订阅顺序在当前 goroutine 上依次调用所有处理器
//
// 处理器 panic 会直接传播给调用方，后续处理器不再执行。
func (s *EventSource[T]) Invoke(arg T) {
	raiseSync(s.holder.Load(), arg)
}

// Clear 清空所有订阅，不通知订阅者
func (s *EventSource[T]) Clear() {
	if set := s.holder.Load(); set != nil {
		set.clear()
	}
}

// SubscribedCount 返回当前订阅数
func (s *EventSource[T]) SubscribedCount() int {
	if set := s.holder.Load(); set != nil {
		return set.len()
	}
	return 0
}

// subscribers 返回订阅者集合，不存在时以 CAS 方式创建
//
// 两个订阅者同时创建时只有一个成功，另一个订阅到胜出者中。
func (s *EventSource[T]) subscribers() *subscriberSet {
	if set := s.holder.Load(); set != nil {
		return set
	}
	fresh := &subscriberSet{pool: s.hub.syncArrays()}
	if s.holder.CompareAndSwap(nil, fresh) {
		return fresh
	}
	return s.holder.Load()
}

// Event 同步事件的订阅视图
//
// 不拥有订阅者集合，只能订阅，不能触发。零值为 None。
type Event[T any] struct {
	source *EventSource[T]
}

// Subscribe 订阅事件
func (e Event[T]) Subscribe(h Handler[T]) (Subscription[T], error) {
	if e.source == nil {
		return Subscription[T]{}, ErrNilEvent
	}
	if h == nil {
		return Subscription[T]{}, ErrNilHandler
	}
	set := e.source.subscribers()
	ref := &handlerRef{fn: h}
	set.subscribe(ref)
	return Subscription[T]{handle{set: set, ref: ref}}, nil
}

// IsNone 报告视图是否未绑定事件源
func (e Event[T]) IsNone() bool {
	return e.source == nil
}

// raiseSync 同步分发：快照后释放锁，再逐个调用
func raiseSync[T any](set *subscriberSet, arg T) {
	if set == nil {
		return
	}
	single, snap := set.take()
	if single != nil {
		invokeSync(single, arg)
		return
	}
	if snap.empty() {
		return
	}
	defer snap.release()
	for _, ref := range snap.refs {
		invokeSync(ref, arg)
	}
}
