// Package interfaces 定义 eventcore 公共接口
//
// 本文件定义订阅句柄相关接口。
package interfaces

// Disposable 可释放的订阅句柄
//
// Dispose 必须幂等：多次调用与调用一次效果相同。
type Disposable interface {
	// Dispose 解除订阅
	Dispose()
}

// Handle 订阅句柄
//
// 空句柄（None）表示没有对应的订阅，对其 Dispose 是空操作。
type Handle interface {
	Disposable

	// IsNone 是否为空句柄
	IsNone() bool
}
