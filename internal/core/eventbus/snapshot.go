package eventbus

import "github.com/dep2p/go-eventcore/internal/core/arraypool"

// snapshot 分发期间使用的订阅记录拷贝
//
// 在锁内创建，在锁外消费；release 必须在所有处理器结束后调用一次。
type snapshot struct {
	refs []*handlerRef // 恰好 count 个
	buf  []*handlerRef // 底层缓冲区，来自池时长度为 Width
	pool *arraypool.Pool[*handlerRef]
}

func (sn *snapshot) empty() bool {
	return len(sn.refs) == 0
}

// release 清零缓冲区并归还给池
func (sn *snapshot) release() {
	if sn.pool != nil {
		clear(sn.buf)
		sn.pool.Release(sn.buf)
	}
	*sn = snapshot{}
}

// take 执行"快照后释放"协议的取数部分
//
//  1. 无锁读取 count，为 0 时直接返回，不加锁也不分配
//  2. 加锁后重新读取 count
//  3. count == 1：返回唯一的记录
//  4. count >= 2：把记录拷贝到快照缓冲区后释放锁
//
// 两个返回值至多一个非空。
func (s *subscriberSet) take() (*handlerRef, snapshot) {
	if s.count.Load() == 0 {
		return nil, snapshot{}
	}

	s.lock.Enter()
	count := int(s.count.Load())
	switch count {
	case 0:
		s.lock.Exit()
		return nil, snapshot{}
	case 1:
		ref := s.single
		s.lock.Exit()
		return ref, snapshot{}
	}
	snap := s.newSnapshot(count)
	copy(snap.refs, s.many[:count])
	s.lock.Exit()
	return nil, snap
}

// newSnapshot 分配恰好 n 个槽位的快照
//
// n 不超过池宽度时使用池中的数组；未命中时新分配一个池宽度的数组，
// 释放时一并交给池，稳态下不再分配。
func (s *subscriberSet) newSnapshot(n int) snapshot {
	if s.pool != nil && n <= arraypool.Width {
		buf, ok := s.pool.TryAcquire()
		if !ok {
			buf = make([]*handlerRef, arraypool.Width)
		}
		return snapshot{refs: buf[:n], buf: buf, pool: s.pool}
	}
	buf := make([]*handlerRef, n)
	return snapshot{refs: buf, buf: buf}
}
