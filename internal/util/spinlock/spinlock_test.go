package spinlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpinLock_EnterExit 测试基本加锁解锁
func TestSpinLock_EnterExit(t *testing.T) {
	var l SpinLock

	assert.False(t, l.IsHeld())
	l.Enter()
	assert.True(t, l.IsHeld())
	l.Exit()
	assert.False(t, l.IsHeld())
}

// TestSpinLock_TryEnter 测试非阻塞加锁
func TestSpinLock_TryEnter(t *testing.T) {
	var l SpinLock

	require.True(t, l.TryEnter())
	assert.False(t, l.TryEnter(), "second TryEnter must fail while held")

	l.Exit()
	assert.True(t, l.TryEnter())
	l.Exit()
}

// TestSpinLock_ExitUnlocked 测试释放未持有的锁
func TestSpinLock_ExitUnlocked(t *testing.T) {
	var l SpinLock
	assert.Panics(t, func() { l.Exit() })
}

// TestSpinLock_MutualExclusion 测试并发互斥
func TestSpinLock_MutualExclusion(t *testing.T) {
	var (
		l       SpinLock
		counter int
		wg      sync.WaitGroup
	)

	const workers = 8
	const iterations = 2000

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				l.Enter()
				counter++
				l.Exit()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*iterations, counter)
	assert.False(t, l.IsHeld())
}
