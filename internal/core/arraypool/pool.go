// Package arraypool 实现固定宽度数组的有界对象池
//
// 池中只保存长度恰为 Width 的数组，空闲节点数上限为 MaxNodes（默认 512），
// 超出上限时归还的数组直接丢弃，交给 GC 回收。
//
// 空闲链表是一个由池独占的索引栈，出栈即把数组所有权交给调用方；
// 不会借用数组的数据槽位保存链接。
package arraypool

import (
	"github.com/dep2p/go-eventcore/internal/util/logger"
	"github.com/dep2p/go-eventcore/internal/util/spinlock"
	pkgif "github.com/dep2p/go-eventcore/pkg/interfaces"
)

var log = logger.Logger("core/arraypool")

const (
	// Width 池中数组的固定长度
	Width = 4

	// DefaultMaxNodes 默认空闲节点上限
	DefaultMaxNodes = 512
)

// Pool 固定宽度数组池
//
// 所有方法并发安全。池内元素是普通数据，不需要关闭。
type Pool[E any] struct {
	lock     spinlock.SpinLock
	free     [][]E
	name     string
	maxNodes int
	observer pkgif.PoolObserver
}

// New 创建数组池
func New[E any](name string, opts ...Option) *Pool[E] {
	s := settings{maxNodes: DefaultMaxNodes}
	for _, opt := range opts {
		opt(&s)
	}
	if s.maxNodes < 0 {
		s.maxNodes = 0
	}
	return &Pool[E]{
		name:     name,
		maxNodes: s.maxNodes,
		observer: s.observer,
	}
}

// Name 返回池名称
func (p *Pool[E]) Name() string {
	return p.name
}

// MaxNodes 返回空闲节点上限
func (p *Pool[E]) MaxNodes() int {
	return p.maxNodes
}

// Len 返回当前空闲节点数
func (p *Pool[E]) Len() int {
	p.lock.Enter()
	n := len(p.free)
	p.lock.Exit()
	return n
}

// TryAcquire 非阻塞地获取一个数组
//
// 锁被争用或池为空时返回 false，调用方应自行分配。
// 返回的数组长度为 Width，所有槽位均为零值。
func (p *Pool[E]) TryAcquire() ([]E, bool) {
	if !p.lock.TryEnter() {
		p.observeAcquire(false)
		return nil, false
	}
	arr, ok := p.pop()
	p.lock.Exit()
	p.observeAcquire(ok)
	return arr, ok
}

// Acquire 获取一个数组，必要时自旋等待锁
//
// 池为空时返回 false。
func (p *Pool[E]) Acquire() ([]E, bool) {
	p.lock.Enter()
	arr, ok := p.pop()
	p.lock.Exit()
	p.observeAcquire(ok)
	return arr, ok
}

// Release 归还数组
//
// 调用方必须先把所有槽位清零，池不会代为清理。
// 长度不是 Width 的数组、或池已满时，数组被丢弃。
func (p *Pool[E]) Release(arr []E) {
	if len(arr) != Width {
		p.observeRelease(false)
		return
	}
	arr = arr[:Width:Width]

	p.lock.Enter()
	pooled := len(p.free) < p.maxNodes
	if pooled {
		p.free = append(p.free, arr)
	}
	p.lock.Exit()

	if !pooled {
		log.Debug("数组池已满，丢弃归还的数组", "pool", p.name, "max", p.maxNodes)
	}
	p.observeRelease(pooled)
}

// pop 弹出栈顶数组（调用方持锁）
func (p *Pool[E]) pop() ([]E, bool) {
	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	arr := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return arr, true
}

func (p *Pool[E]) observeAcquire(hit bool) {
	if p.observer != nil {
		p.observer.OnAcquire(p.name, hit)
	}
}

func (p *Pool[E]) observeRelease(pooled bool) {
	if p.observer != nil {
		p.observer.OnRelease(p.name, pooled)
	}
}
