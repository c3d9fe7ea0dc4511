package arraypool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver 记录观察回调
type recordingObserver struct {
	mu              sync.Mutex
	hits, misses    int
	pooled, dropped int
	lastPool        string
}

func (o *recordingObserver) OnAcquire(pool string, hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastPool = pool
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func (o *recordingObserver) OnRelease(pool string, pooled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastPool = pool
	if pooled {
		o.pooled++
	} else {
		o.dropped++
	}
}

// ============================================================================
// 基础功能测试
// ============================================================================

// TestPool_EmptyMiss 测试空池未命中
func TestPool_EmptyMiss(t *testing.T) {
	p := New[*int]("test")

	arr, ok := p.TryAcquire()
	assert.False(t, ok)
	assert.Nil(t, arr)

	arr, ok = p.Acquire()
	assert.False(t, ok)
	assert.Nil(t, arr)
}

// TestPool_ReleaseThenAcquire 测试归还后再获取
func TestPool_ReleaseThenAcquire(t *testing.T) {
	p := New[*int]("test")

	p.Release(make([]*int, Width))
	assert.Equal(t, 1, p.Len())

	arr, ok := p.TryAcquire()
	require.True(t, ok)
	assert.Len(t, arr, Width)
	for i := range arr {
		assert.Nil(t, arr[i])
	}
	assert.Equal(t, 0, p.Len())
}

// TestPool_LIFO 测试后进先出
func TestPool_LIFO(t *testing.T) {
	p := New[int]("test")

	a := make([]int, Width)
	b := make([]int, Width)
	p.Release(a)
	p.Release(b)

	got, ok := p.Acquire()
	require.True(t, ok)
	assert.Same(t, &b[0], &got[0])

	got, ok = p.Acquire()
	require.True(t, ok)
	assert.Same(t, &a[0], &got[0])
}

// TestPool_Bounded 测试空闲节点上限
func TestPool_Bounded(t *testing.T) {
	obs := &recordingObserver{}
	p := New[int]("bounded", WithMaxNodes(2), WithObserver(obs))

	for i := 0; i < 5; i++ {
		p.Release(make([]int, Width))
	}

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 2, obs.pooled)
	assert.Equal(t, 3, obs.dropped)
	assert.Equal(t, "bounded", obs.lastPool)
}

// TestPool_DefaultMaxNodes 测试默认上限为 512
func TestPool_DefaultMaxNodes(t *testing.T) {
	p := New[int]("default")
	assert.Equal(t, DefaultMaxNodes, p.MaxNodes())

	for i := 0; i < DefaultMaxNodes+10; i++ {
		p.Release(make([]int, Width))
	}
	assert.Equal(t, DefaultMaxNodes, p.Len())
}

// TestPool_WrongWidthDropped 测试宽度不符的数组被丢弃
func TestPool_WrongWidthDropped(t *testing.T) {
	obs := &recordingObserver{}
	p := New[int]("test", WithObserver(obs))

	p.Release(make([]int, Width*2))
	p.Release(nil)

	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 2, obs.dropped)
}

// TestPool_TryAcquireContended 测试锁被占用时非阻塞获取直接失败
func TestPool_TryAcquireContended(t *testing.T) {
	obs := &recordingObserver{}
	p := New[int]("test", WithObserver(obs))
	p.Release(make([]int, Width))

	p.lock.Enter()
	arr, ok := p.TryAcquire()
	p.lock.Exit()

	assert.False(t, ok)
	assert.Nil(t, arr)
	assert.Equal(t, 1, p.Len(), "contended TryAcquire must not pop")
	assert.Equal(t, 1, obs.misses)
}

// TestPool_ObserverHits 测试命中统计
func TestPool_ObserverHits(t *testing.T) {
	obs := &recordingObserver{}
	p := New[int]("test", WithObserver(obs))

	p.Release(make([]int, Width))
	_, _ = p.TryAcquire()
	_, _ = p.TryAcquire()

	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
}

// ============================================================================
// 并发测试
// ============================================================================

// TestPool_Concurrent 测试并发获取与归还
func TestPool_Concurrent(t *testing.T) {
	p := New[*int]("concurrent", WithMaxNodes(16))

	var wg sync.WaitGroup
	const workers = 8
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				arr, ok := p.TryAcquire()
				if !ok {
					arr = make([]*int, Width)
				}
				for k := range arr {
					assert.Nil(t, arr[k])
				}
				p.Release(arr)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, p.Len(), 16)
}
