package eventbus

import (
	"sync"

	pkgif "github.com/dep2p/go-eventcore/pkg/interfaces"
)

// ============================================================================
// SubscriptionBag
// ============================================================================

// SubscriptionBag 随拥有者生命周期一起释放的订阅集合
//
// 一次性使用：Dispose 之后再 Add 的句柄会被立即取消订阅。
// 可以混合存放不同事件类型的句柄。
type SubscriptionBag struct {
	mu       sync.Mutex
	items    []pkgif.Disposable
	disposed bool
}

// NewSubscriptionBag 创建 SubscriptionBag
func NewSubscriptionBag() *SubscriptionBag {
	return &SubscriptionBag{}
}

// Add 加入句柄；已释放时立即取消该订阅
func (b *SubscriptionBag) Add(h SubscriptionHandle) {
	if h == nil || h.IsNone() {
		return
	}
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		h.Dispose()
		return
	}
	b.items = append(b.items, h)
	b.mu.Unlock()
}

// Dispose 按加入顺序取消全部订阅，可重复调用
func (b *SubscriptionBag) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	items := b.items
	b.items = nil
	b.mu.Unlock()

	for _, it := range items {
		it.Dispose()
	}
}

// IsDisposed 报告是否已释放
func (b *SubscriptionBag) IsDisposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}

// Len 返回当前持有的句柄数
func (b *SubscriptionBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Register 返回只能 Add 的视图
func (b *SubscriptionBag) Register() SubscriptionRegister {
	return SubscriptionRegister{bag: b}
}

// SubscriptionRegister SubscriptionBag 的只写视图
//
// 交给只负责登记订阅、不负责释放的组件。零值为 None，Add 时直接取消订阅。
type SubscriptionRegister struct {
	bag *SubscriptionBag
}

// Add 加入句柄
func (r SubscriptionRegister) Add(h SubscriptionHandle) {
	if r.bag == nil {
		if h != nil {
			h.Dispose()
		}
		return
	}
	r.bag.Add(h)
}

// IsNone 报告是否未绑定 bag
func (r SubscriptionRegister) IsNone() bool {
	return r.bag == nil
}

// ============================================================================
// UnsubscriberBag
// ============================================================================

// UnsubscriberBag 可重复使用的取消订阅集合
//
// Dispose 只是清空当前内容，之后仍可继续 Add，供下一次 Dispose 统一释放。
type UnsubscriberBag struct {
	mu    sync.Mutex
	items []pkgif.Disposable
}

// NewUnsubscriberBag 创建 UnsubscriberBag
func NewUnsubscriberBag() *UnsubscriberBag {
	return &UnsubscriberBag{}
}

// Add 加入句柄
func (b *UnsubscriberBag) Add(h UnsubscriberHandle) {
	if h == nil || h.IsNone() {
		return
	}
	b.mu.Lock()
	b.items = append(b.items, h)
	b.mu.Unlock()
}

// Dispose 按加入顺序取消当前全部订阅
func (b *UnsubscriberBag) Dispose() {
	b.mu.Lock()
	items := b.items
	b.items = nil
	b.mu.Unlock()

	for _, it := range items {
		it.Dispose()
	}
}

// Len 返回当前持有的句柄数
func (b *UnsubscriberBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
