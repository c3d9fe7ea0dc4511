package eventbus

import (
	"sync/atomic"

	"github.com/dep2p/go-eventcore/internal/core/arraypool"
	"github.com/dep2p/go-eventcore/internal/util/spinlock"
)

// shape 订阅者存储的形态
type shape uint8

const (
	shapeEmpty  shape = iota // count == 0, single == nil, many == nil
	shapeSingle              // count == 1, single != nil, many == nil
	shapeMany                // count >= 2, single == nil, len(many) >= count
)

func (s shape) String() string {
	switch s {
	case shapeEmpty:
		return "empty"
	case shapeSingle:
		return "single"
	case shapeMany:
		return "many"
	default:
		return "invalid"
	}
}

// subscriberSet 一个分发器的订阅者集合
//
// 存储只在 lock 内修改；count 用原子变量保存，
// 以便分发的快速路径不加锁读取。
type subscriberSet struct {
	lock   spinlock.SpinLock
	count  atomic.Int32
	single *handlerRef
	many   []*handlerRef // len(many) 即容量，[count:] 全为 nil
	pool   *arraypool.Pool[*handlerRef]
}

// len 返回当前订阅数（不加锁，仅作提示）
func (s *subscriberSet) len() int {
	return int(s.count.Load())
}

// shape 返回当前存储形态（加锁读取，用于测试和诊断）
func (s *subscriberSet) shape() shape {
	s.lock.Enter()
	defer s.lock.Exit()
	return s.shapeLocked()
}

func (s *subscriberSet) shapeLocked() shape {
	switch count := s.count.Load(); {
	case count == 0 && s.single == nil && s.many == nil:
		return shapeEmpty
	case count == 1 && s.single != nil && s.many == nil:
		return shapeSingle
	case count >= 2 && s.single == nil && len(s.many) >= int(count):
		return shapeMany
	default:
		return shape(0xff)
	}
}

// subscribe 追加一条订阅记录，不做去重
func (s *subscriberSet) subscribe(ref *handlerRef) {
	s.lock.Enter()
	defer s.lock.Exit()

	count := int(s.count.Load())
	switch {
	case count == 0:
		s.single = ref
	case count == 1:
		arr := s.acquireArray()
		arr[0] = s.single
		arr[1] = ref
		s.single = nil
		s.many = arr
	default:
		if len(s.many) == count {
			grown := make([]*handlerRef, len(s.many)*2)
			copy(grown, s.many)
			s.recycle(s.many)
			s.many = grown
		}
		s.many[count] = ref
	}
	s.count.Store(int32(count + 1))
}

// unsubscribe 移除第一条与 ref 相同的记录，找不到时什么也不做
func (s *subscriberSet) unsubscribe(ref *handlerRef) {
	if ref == nil {
		return
	}
	s.lock.Enter()
	defer s.lock.Exit()

	count := int(s.count.Load())
	switch count {
	case 0:
		return
	case 1:
		if s.single == ref {
			s.single = nil
			s.count.Store(0)
		}
		return
	}

	live := s.many[:count]
	for i, r := range live {
		if r != ref {
			continue
		}
		// 左移后续记录，保持相对顺序
		copy(live[i:], live[i+1:])
		count--
		live[count] = nil

		if count == 1 {
			s.single = live[0]
			live[0] = nil
			s.recycle(s.many)
			s.many = nil
		}
		s.count.Store(int32(count))
		return
	}
}

// clear 无条件清空，不回收数组
func (s *subscriberSet) clear() {
	s.lock.Enter()
	s.single = nil
	s.many = nil
	s.count.Store(0)
	s.lock.Exit()
}

// acquireArray 优先从池中取宽度为 4 的数组（非阻塞），未命中时分配
func (s *subscriberSet) acquireArray() []*handlerRef {
	if s.pool != nil {
		if arr, ok := s.pool.TryAcquire(); ok {
			return arr
		}
	}
	return make([]*handlerRef, arraypool.Width)
}

// recycle 清零并归还宽度恰为 4 的数组
func (s *subscriberSet) recycle(arr []*handlerRef) {
	if s.pool == nil || len(arr) != arraypool.Width {
		return
	}
	clear(arr)
	s.pool.Release(arr)
}
