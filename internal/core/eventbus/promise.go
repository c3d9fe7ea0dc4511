package eventbus

import (
	"context"
	"errors"
)

// PromiseStatus 异步分发结果的状态
type PromiseStatus int

const (
	// PromisePending 仍在执行
	PromisePending PromiseStatus = iota
	// PromiseSucceeded 全部处理器成功
	PromiseSucceeded
	// PromiseFaulted 至少一个处理器失败
	PromiseFaulted
	// PromiseCanceled 因 context 取消或超时结束
	PromiseCanceled
)

// String 返回状态名称
func (s PromiseStatus) String() string {
	switch s {
	case PromisePending:
		return "pending"
	case PromiseSucceeded:
		return "succeeded"
	case PromiseFaulted:
		return "faulted"
	case PromiseCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Promise 非阻塞异步分发的结果
//
// 完成后 err 不再变化。所有方法并发安全。
type Promise struct {
	done chan struct{}
	err  error
}

var completed = func() *Promise {
	p := newPromise()
	p.complete(nil)
	return p
}()

// CompletedPromise 返回已成功完成的 Promise
func CompletedPromise() *Promise {
	return completed
}

func failedPromise(err error) *Promise {
	p := newPromise()
	p.complete(err)
	return p
}

func newPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// complete 只能调用一次
func (p *Promise) complete(err error) {
	p.err = err
	close(p.done)
}

// Done 返回完成时关闭的通道
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Wait 等待完成并返回结果；ctx 先结束时返回 ctx.Err()，分发本身不受影响
func (p *Promise) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err 返回结果，尚未完成时返回 nil
func (p *Promise) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Status 返回当前状态
func (p *Promise) Status() PromiseStatus {
	select {
	case <-p.done:
	default:
		return PromisePending
	}
	switch {
	case p.err == nil:
		return PromiseSucceeded
	case errors.Is(p.err, context.Canceled), errors.Is(p.err, context.DeadlineExceeded):
		return PromiseCanceled
	default:
		return PromiseFaulted
	}
}
