package eventbus

import (
	"github.com/dep2p/go-eventcore/internal/core/arraypool"
	pkgif "github.com/dep2p/go-eventcore/pkg/interfaces"
)

const (
	// PoolSync 同步分发器使用的数组池名称
	PoolSync = "sync"
	// PoolAsync 异步分发器使用的数组池名称
	PoolAsync = "async"
)

// Hub 分发器共享的资源
//
// 持有同步、异步两个数组池以及并行分发的并发上限。
// 同一个 Hub 可以被任意多个、任意类型参数的分发器共享。
// nil Hub 合法：不使用数组池，并行分发不限并发。
type Hub struct {
	syncPool      *arraypool.Pool[*handlerRef]
	asyncPool     *arraypool.Pool[*handlerRef]
	parallelLimit int
}

// HubStats Hub 数组池状态
type HubStats struct {
	SyncFree  int
	AsyncFree int
	MaxNodes  int
}

// hubSettings Hub 配置
type hubSettings struct {
	pooling       bool
	maxNodes      int
	observer      pkgif.PoolObserver
	parallelLimit int
}

// HubOption Hub 选项
type HubOption func(*hubSettings)

// WithMaxPoolNodes 设置每个数组池的空闲节点上限
func WithMaxPoolNodes(n int) HubOption {
	return func(s *hubSettings) {
		s.maxNodes = n
	}
}

// WithPoolObserver 设置数组池观察者
func WithPoolObserver(o pkgif.PoolObserver) HubOption {
	return func(s *hubSettings) {
		s.observer = o
	}
}

// WithParallelLimit 设置并行分发时同时运行的处理器上限，<= 0 表示不限
//
// 设置上限后，运行中的处理器达到上限时要等其中一个结束才会启动下一个，
// 后面的处理器因此会等待前面的处理器。处理器之间不能互相等待
// （例如前一个等待后一个的信号），否则在上限内会死锁。
func WithParallelLimit(n int) HubOption {
	return func(s *hubSettings) {
		s.parallelLimit = n
	}
}

// WithoutPooling 关闭数组池，所有数组都直接分配
func WithoutPooling() HubOption {
	return func(s *hubSettings) {
		s.pooling = false
	}
}

// NewHub 创建 Hub
func NewHub(opts ...HubOption) *Hub {
	s := hubSettings{
		pooling:  true,
		maxNodes: arraypool.DefaultMaxNodes,
	}
	for _, opt := range opts {
		opt(&s)
	}

	h := &Hub{parallelLimit: s.parallelLimit}
	if s.pooling {
		poolOpts := []arraypool.Option{
			arraypool.WithMaxNodes(s.maxNodes),
			arraypool.WithObserver(s.observer),
		}
		h.syncPool = arraypool.New[*handlerRef](PoolSync, poolOpts...)
		h.asyncPool = arraypool.New[*handlerRef](PoolAsync, poolOpts...)
	}
	return h
}

// Stats 返回数组池状态
func (h *Hub) Stats() HubStats {
	if h == nil || h.syncPool == nil {
		return HubStats{}
	}
	return HubStats{
		SyncFree:  h.syncPool.Len(),
		AsyncFree: h.asyncPool.Len(),
		MaxNodes:  h.syncPool.MaxNodes(),
	}
}

// ParallelLimit 返回并行分发的并发上限
func (h *Hub) ParallelLimit() int {
	if h == nil {
		return 0
	}
	return h.parallelLimit
}

// WatchPools 把两个数组池的空闲节点数注册到 watcher
func (h *Hub) WatchPools(w pkgif.PoolWatcher) {
	if h == nil || w == nil || h.syncPool == nil {
		return
	}
	w.WatchPool(PoolSync, h.syncPool.Len)
	w.WatchPool(PoolAsync, h.asyncPool.Len)
}

func (h *Hub) syncArrays() *arraypool.Pool[*handlerRef] {
	if h == nil {
		return nil
	}
	return h.syncPool
}

func (h *Hub) asyncArrays() *arraypool.Pool[*handlerRef] {
	if h == nil {
		return nil
	}
	return h.asyncPool
}
