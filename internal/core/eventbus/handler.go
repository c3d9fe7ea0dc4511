package eventbus

import (
	"context"
	"fmt"
)

// Handler 同步事件处理器
type Handler[T any] func(arg T)

// AsyncHandler 异步事件处理器
//
// ctx 由分发调用方传入，处理器自行观察取消信号。
type AsyncHandler[T any] func(ctx context.Context, arg T) error

// handlerRef 一条订阅记录
//
// 以指针身份区分订阅：同一个函数订阅两次得到两条记录。
// fn 保存 Handler[T] 或 AsyncHandler[T]；记录本身不带类型参数，
// 这样同一风格的所有分发器可以共享一个数组池。
type handlerRef struct {
	fn any
}

func invokeSync[T any](ref *handlerRef, arg T) {
	ref.fn.(Handler[T])(arg)
}

func invokeAsync[T any](ctx context.Context, ref *handlerRef, arg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return ref.fn.(AsyncHandler[T])(ctx, arg)
}
