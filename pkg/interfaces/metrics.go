package interfaces

//go:generate mockgen -destination=mocks/mock_metrics.go -package=mocks . PoolObserver,PoolWatcher

// PoolObserver 观察固定宽度数组池的命中与回收
//
// 回调在池的锁之外执行，实现必须并发安全且不能阻塞。
type PoolObserver interface {
	// OnAcquire 记录一次获取，hit 表示命中空闲链表
	OnAcquire(pool string, hit bool)

	// OnRelease 记录一次归还，pooled 表示数组被放回池中（否则被丢弃）
	OnRelease(pool string, pooled bool)
}

// PoolWatcher 允许按名称注册池的空闲节点数读取函数
type PoolWatcher interface {
	// WatchPool 注册池的空闲节点数
	WatchPool(pool string, freeNodes func() int)
}
