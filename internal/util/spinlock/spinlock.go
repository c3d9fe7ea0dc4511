// Package spinlock 提供用于极短临界区的自旋锁
//
// 仅用于保护订阅者存储的变更或单次引用拷贝，
// 绝不能在持锁期间调用用户回调。
//
// 不保证公平性，不可重入：同一执行上下文重复 Enter 会死锁。
package spinlock

import (
	"runtime"
	"sync/atomic"
)

const (
	unlocked int32 = 0
	locked   int32 = 1

	// spinsBeforeYield 连续自旋多少次后让出处理器
	spinsBeforeYield = 16
)

// SpinLock 自旋锁
//
// 零值即为未加锁状态，不可复制。
type SpinLock struct {
	_     noCopy
	state atomic.Int32
}

// Enter 获取锁，忙等直到成功
func (l *SpinLock) Enter() {
	if l.state.CompareAndSwap(unlocked, locked) {
		return
	}
	spins := 0
	for {
		// 先读后 CAS，减少缓存行争用
		if l.state.Load() == unlocked && l.state.CompareAndSwap(unlocked, locked) {
			return
		}
		spins++
		if spins >= spinsBeforeYield {
			spins = 0
			runtime.Gosched()
		}
	}
}

// TryEnter 尝试获取锁一次，不阻塞
func (l *SpinLock) TryEnter() bool {
	return l.state.CompareAndSwap(unlocked, locked)
}

// Exit 释放锁
//
// 释放未持有的锁属于调用方错误，直接 panic。
func (l *SpinLock) Exit() {
	if l.state.Swap(unlocked) != locked {
		panic("spinlock: exit of unlocked lock")
	}
}

// IsHeld 报告锁当前是否被持有（仅用于调试和测试）
func (l *SpinLock) IsHeld() bool {
	return l.state.Load() == locked
}

// noCopy 让 go vet 的 copylocks 检查生效
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
