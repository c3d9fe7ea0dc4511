package eventbus

// EventRaiser 独立的同步分发器
//
// 与 EventSource 算法相同，但由广播方自己直接暴露订阅与取消订阅。
// 零值可用（不使用数组池），nil 分发器上的 Raise 不做任何事。
type EventRaiser[T any] struct {
	set subscriberSet
}

// NewEventRaiser 创建使用 hub 数组池的分发器
func NewEventRaiser[T any](hub *Hub) *EventRaiser[T] {
	r := &EventRaiser[T]{}
	r.set.pool = hub.syncArrays()
	return r
}

// Subscribe 订阅
func (r *EventRaiser[T]) Subscribe(h Handler[T]) (Unsubscriber[T], error) {
	if h == nil {
		return Unsubscriber[T]{}, ErrNilHandler
	}
	ref := &handlerRef{fn: h}
	r.set.subscribe(ref)
	return Unsubscriber[T]{handle{set: &r.set, ref: ref}}, nil
}

// Unsubscribe 取消订阅
//
// None 句柄以及属于其他分发器的句柄被忽略。
func (r *EventRaiser[T]) Unsubscribe(u Unsubscriber[T]) {
	if r == nil || u.set != &r.set {
		return
	}
	r.set.unsubscribe(u.ref)
}

// Raise 按订阅顺序在当前 goroutine 上依次调用所有处理器
func (r *EventRaiser[T]) Raise(arg T) {
	if r == nil {
		return
	}
	raiseSync(&r.set, arg)
}

// Clear 清空所有订阅，不通知订阅者
func (r *EventRaiser[T]) Clear() {
	if r == nil {
		return
	}
	r.set.clear()
}

// SubscribedCount 返回当前订阅数
func (r *EventRaiser[T]) SubscribedCount() int {
	if r == nil {
		return 0
	}
	return r.set.len()
}
