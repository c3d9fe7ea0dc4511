// Package eventbus 实现进程内多播事件分发核心
//
// 任何组件（帧循环、资源加载、输入设备）都通过本包把类型化的值广播给
// 任意数量的监听者，支持同步回调和基于 context 的异步回调。
//
// # 快速开始
//
//	// 同步事件：拥有方持有 EventSource，对外只暴露 Event
//	type Window struct {
//	    resized eventbus.EventSource[Size]
//	}
//
//	func (w *Window) Resized() eventbus.Event[Size] { return w.resized.Event() }
//
//	sub, _ := w.Resized().Subscribe(func(s Size) { ... })
//	defer sub.Dispose()
//
//	w.resized.Invoke(Size{W: 800, H: 600})
//
//	// 异步事件：并行或顺序
//	loaded := eventbus.NewAsyncEventRaiser[*Resource](hub)
//	loaded.Subscribe(func(ctx context.Context, r *Resource) error { ... })
//	err := loaded.Raise(ctx, res)             // 并行
//	err = loaded.RaiseSequentially(ctx, res)  // 顺序
//
// # 存储结构
//
// 每个分发器持有一个 subscriberSet，按订阅数分三种形态：
//   - 0 个：不分配任何内存
//   - 1 个：直接保存该处理器
//   - n 个：保存在数组中，容量从 4 开始按 2 倍增长
//
// 宽度为 4 的数组来自 Hub 中的数组池（同步、异步各一个），
// 1→2 的过渡以及小规模快照几乎不产生分配。
//
// # 并发安全
//
//   - 订阅/取消订阅/清空：在每个实例自己的自旋锁内修改存储
//   - 分发：持锁拷贝快照，释放锁后再调用处理器，处理器内部可以
//     自由地订阅、取消订阅或嵌套分发
//   - 订阅数为 0 时，分发不加锁直接返回（无锁读取计数）
//
// # 失败语义
//
//   - 同步处理器 panic：直接传播给分发调用方，后续处理器被跳过
//   - 异步顺序模式：遇到第一个错误即停止
//   - 异步并行模式：全部执行完毕，按订阅顺序合并所有错误
//   - 异步处理器 panic：被恢复并包装为 ErrHandlerPanic
package eventbus
