package eventbus

import pkgif "github.com/dep2p/go-eventcore/pkg/interfaces"

// handle 订阅句柄的公共部分：(持有者, 订阅记录) 二元组
//
// 零值即 None 句柄，Dispose 为空操作。
type handle struct {
	set *subscriberSet
	ref *handlerRef
}

func (h handle) dispose() {
	if h.set != nil {
		h.set.unsubscribe(h.ref)
	}
}

func (h handle) isNone() bool {
	return h.set == nil || h.ref == nil
}

// ============================================================================
// 句柄接口
// ============================================================================

// SubscriptionHandle 可放入 SubscriptionBag 的句柄
//
// 由 Subscription 和 AsyncSubscription 实现，外部包不能实现。
type SubscriptionHandle interface {
	pkgif.Handle
	subscription()
}

// UnsubscriberHandle 可放入 UnsubscriberBag 的句柄
//
// 由 Unsubscriber 和 AsyncUnsubscriber 实现，外部包不能实现。
type UnsubscriberHandle interface {
	pkgif.Handle
	unsubscriber()
}

// SubscriptionAdder 接收订阅句柄的容器（SubscriptionBag 或 SubscriptionRegister）
type SubscriptionAdder interface {
	Add(h SubscriptionHandle)
}

// ============================================================================
// 同步句柄
// ============================================================================

// Subscription 通过 Event 订阅得到的句柄
type Subscription[T any] struct {
	handle
}

// Dispose 取消订阅，可重复调用
func (s Subscription[T]) Dispose() { s.dispose() }

// IsNone 报告是否为空句柄
func (s Subscription[T]) IsNone() bool { return s.isNone() }

// AddTo 把句柄加入 bag 并原样返回
func (s Subscription[T]) AddTo(bag SubscriptionAdder) Subscription[T] {
	bag.Add(s)
	return s
}

func (Subscription[T]) subscription() {}

// Unsubscriber 通过 EventRaiser 订阅得到的句柄
type Unsubscriber[T any] struct {
	handle
}

// Dispose 取消订阅，可重复调用
func (u Unsubscriber[T]) Dispose() { u.dispose() }

// IsNone 报告是否为空句柄
func (u Unsubscriber[T]) IsNone() bool { return u.isNone() }

// AddTo 把句柄加入 bag 并原样返回
func (u Unsubscriber[T]) AddTo(bag *UnsubscriberBag) Unsubscriber[T] {
	bag.Add(u)
	return u
}

func (Unsubscriber[T]) unsubscriber() {}

// ============================================================================
// 异步句柄
// ============================================================================

// AsyncSubscription 通过 AsyncEvent 订阅得到的句柄
type AsyncSubscription[T any] struct {
	handle
}

// Dispose 取消订阅，可重复调用
func (s AsyncSubscription[T]) Dispose() { s.dispose() }

// IsNone 报告是否为空句柄
func (s AsyncSubscription[T]) IsNone() bool { return s.isNone() }

// AddTo 把句柄加入 bag 并原样返回
func (s AsyncSubscription[T]) AddTo(bag SubscriptionAdder) AsyncSubscription[T] {
	bag.Add(s)
	return s
}

func (AsyncSubscription[T]) subscription() {}

// AsyncUnsubscriber 通过 AsyncEventRaiser 订阅得到的句柄
type AsyncUnsubscriber[T any] struct {
	handle
}

// Dispose 取消订阅，可重复调用
func (u AsyncUnsubscriber[T]) Dispose() { u.dispose() }

// IsNone 报告是否为空句柄
func (u AsyncUnsubscriber[T]) IsNone() bool { return u.isNone() }

// AddTo 把句柄加入 bag 并原样返回
func (u AsyncUnsubscriber[T]) AddTo(bag *UnsubscriberBag) AsyncUnsubscriber[T] {
	bag.Add(u)
	return u
}

func (AsyncUnsubscriber[T]) unsubscriber() {}
