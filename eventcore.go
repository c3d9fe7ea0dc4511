// Package eventcore 提供进程内多播事件分发核心
//
// eventcore 是一个轻量的同步/异步多播事件系统：发布者持有事件源，
// 订阅者通过句柄注册回调并随时取消。分发时先在自旋锁内拍下订阅者快照，
// 释放锁后再调用回调，回调可以安全地订阅、取消订阅或嵌套触发。
//
// # 快速开始
//
//	hub := eventcore.NewHub()
//	src := eventcore.NewEventSource[string](hub)
//
//	sub, _ := src.Event().Subscribe(func(msg string) {
//	    fmt.Println("received:", msg)
//	})
//	defer sub.Dispose()
//
//	src.Invoke("hello")
//
// # 运行时
//
// Runtime 通过 Fx 组装分发核心与示例引擎组件（帧循环、键盘、资源注册表）：
//
//	rt, err := eventcore.New(eventcore.WithConfigFile("eventcore.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rt.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Stop(context.Background())
package eventcore

import (
	"fmt"
	"runtime"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
	"github.com/dep2p/go-eventcore/internal/core/lifecycle"
	"github.com/dep2p/go-eventcore/internal/engine/frameloop"
	"github.com/dep2p/go-eventcore/internal/engine/input"
	"github.com/dep2p/go-eventcore/internal/engine/resource"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// 构建信息（通过 ldflags 注入）
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// VersionInfo 返回完整版本信息
func VersionInfo() string {
	return fmt.Sprintf("eventcore %s (commit: %s, built: %s, %s)",
		Version, GitCommit, BuildDate, runtime.Version())
}

// ════════════════════════════════════════════════════════════════════════════
//                              分发核心
// ════════════════════════════════════════════════════════════════════════════

// 回调类型
type (
	// Handler 同步回调
	Handler[T any] = eventbus.Handler[T]

	// AsyncHandler 异步回调，返回错误表示失败
	AsyncHandler[T any] = eventbus.AsyncHandler[T]
)

// 同步三元组
type (
	EventSource[T any]  = eventbus.EventSource[T]
	Event[T any]        = eventbus.Event[T]
	Subscription[T any] = eventbus.Subscription[T]
	EventRaiser[T any]  = eventbus.EventRaiser[T]
	Unsubscriber[T any] = eventbus.Unsubscriber[T]
)

// 异步三元组
type (
	AsyncEventSource[T any]  = eventbus.AsyncEventSource[T]
	AsyncEvent[T any]        = eventbus.AsyncEvent[T]
	AsyncSubscription[T any] = eventbus.AsyncSubscription[T]
	AsyncEventRaiser[T any]  = eventbus.AsyncEventRaiser[T]
	AsyncUnsubscriber[T any] = eventbus.AsyncUnsubscriber[T]
)

// 共享基础设施
type (
	Hub                  = eventbus.Hub
	HubOption            = eventbus.HubOption
	HubStats             = eventbus.HubStats
	Mode                 = eventbus.Mode
	Promise              = eventbus.Promise
	PromiseStatus        = eventbus.PromiseStatus
	SubscriptionHandle   = eventbus.SubscriptionHandle
	UnsubscriberHandle   = eventbus.UnsubscriberHandle
	SubscriptionBag      = eventbus.SubscriptionBag
	SubscriptionRegister = eventbus.SubscriptionRegister
	UnsubscriberBag      = eventbus.UnsubscriberBag
)

// 异步分发模式
const (
	Parallel   = eventbus.Parallel
	Sequential = eventbus.Sequential
)

// Promise 状态
const (
	PromisePending   = eventbus.PromisePending
	PromiseSucceeded = eventbus.PromiseSucceeded
	PromiseFaulted   = eventbus.PromiseFaulted
	PromiseCanceled  = eventbus.PromiseCanceled
)

// Hub 选项
var (
	WithMaxPoolNodes  = eventbus.WithMaxPoolNodes
	WithPoolObserver  = eventbus.WithPoolObserver
	WithParallelLimit = eventbus.WithParallelLimit
	WithoutPooling    = eventbus.WithoutPooling
)

// 数组池名称，用于指标标签
const (
	PoolSync  = eventbus.PoolSync
	PoolAsync = eventbus.PoolAsync
)

// NewHub 创建共享池与并发上限的容器
func NewHub(opts ...HubOption) *Hub { return eventbus.NewHub(opts...) }

// NewEventSource 创建同步事件源，hub 为 nil 时不使用数组池
func NewEventSource[T any](hub *Hub) *EventSource[T] { return eventbus.NewEventSource[T](hub) }

// NewEventRaiser 创建同步事件触发器
func NewEventRaiser[T any](hub *Hub) *EventRaiser[T] { return eventbus.NewEventRaiser[T](hub) }

// NewAsyncEventSource 创建异步事件源
func NewAsyncEventSource[T any](hub *Hub) *AsyncEventSource[T] {
	return eventbus.NewAsyncEventSource[T](hub)
}

// NewAsyncEventRaiser 创建异步事件触发器
func NewAsyncEventRaiser[T any](hub *Hub) *AsyncEventRaiser[T] {
	return eventbus.NewAsyncEventRaiser[T](hub)
}

// NewSubscriptionBag 创建一次性订阅袋
func NewSubscriptionBag() *SubscriptionBag { return eventbus.NewSubscriptionBag() }

// NewUnsubscriberBag 创建可复用的取消订阅袋
func NewUnsubscriberBag() *UnsubscriberBag { return eventbus.NewUnsubscriberBag() }

// CompletedPromise 返回已成功完成的 Promise
func CompletedPromise() *Promise { return eventbus.CompletedPromise() }

// ParseMode 解析分发模式名称
func ParseMode(s string) (Mode, error) { return eventbus.ParseMode(s) }

// ════════════════════════════════════════════════════════════════════════════
//                              引擎组件
// ════════════════════════════════════════════════════════════════════════════

type (
	Phase       = lifecycle.Phase
	PhaseChange = lifecycle.PhaseChange
	Frame       = frameloop.Frame
	Key         = input.Key
	KeyEvent    = input.KeyEvent
	Resource    = resource.Resource
	LoaderFunc  = resource.LoaderFunc
)

// 生命周期阶段
const (
	PhaseCreated      = lifecycle.PhaseCreated
	PhaseInitializing = lifecycle.PhaseInitializing
	PhaseLoading      = lifecycle.PhaseLoading
	PhaseRunning      = lifecycle.PhaseRunning
	PhaseStopping     = lifecycle.PhaseStopping
	PhaseStopped      = lifecycle.PhaseStopped
)

// 常用按键
const (
	KeyUp     = input.KeyUp
	KeyDown   = input.KeyDown
	KeyLeft   = input.KeyLeft
	KeyRight  = input.KeyRight
	KeySpace  = input.KeySpace
	KeyEnter  = input.KeyEnter
	KeyEscape = input.KeyEscape
)
