// Package input 提供键盘状态与按键事件
//
// Keyboard 只在状态发生边沿变化时广播：按下已按下的键、
// 释放未按下的键都不会产生事件。
package input

import (
	"slices"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
)

// Key 按键标识
type Key string

// 常用按键
const (
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeySpace  Key = "space"
	KeyEnter  Key = "enter"
	KeyEscape Key = "escape"
)

// KeyEvent 按键事件
type KeyEvent struct {
	Key  Key
	Time time.Time
}

// Keyboard 键盘状态
type Keyboard struct {
	clock clock.Clock

	mu   sync.Mutex
	down map[Key]time.Time

	pressed  *eventbus.EventRaiser[KeyEvent]
	released *eventbus.EventRaiser[KeyEvent]
}

// NewKeyboard 创建键盘，clk 为 nil 时使用系统时钟
func NewKeyboard(hub *eventbus.Hub, clk clock.Clock) *Keyboard {
	if clk == nil {
		clk = clock.New()
	}
	return &Keyboard{
		clock:    clk,
		down:     make(map[Key]time.Time),
		pressed:  eventbus.NewEventRaiser[KeyEvent](hub),
		released: eventbus.NewEventRaiser[KeyEvent](hub),
	}
}

// OnPressed 订阅按下事件
func (k *Keyboard) OnPressed(h eventbus.Handler[KeyEvent]) (eventbus.Unsubscriber[KeyEvent], error) {
	return k.pressed.Subscribe(h)
}

// OnReleased 订阅释放事件
func (k *Keyboard) OnReleased(h eventbus.Handler[KeyEvent]) (eventbus.Unsubscriber[KeyEvent], error) {
	return k.released.Subscribe(h)
}

// Press 按下按键，状态从未按下变为按下时广播并返回 true
func (k *Keyboard) Press(key Key) bool {
	now := k.clock.Now()

	k.mu.Lock()
	if _, ok := k.down[key]; ok {
		k.mu.Unlock()
		return false
	}
	k.down[key] = now
	k.mu.Unlock()

	k.pressed.Raise(KeyEvent{Key: key, Time: now})
	return true
}

// Release 释放按键，状态从按下变为未按下时广播并返回 true
func (k *Keyboard) Release(key Key) bool {
	now := k.clock.Now()

	k.mu.Lock()
	if _, ok := k.down[key]; !ok {
		k.mu.Unlock()
		return false
	}
	delete(k.down, key)
	k.mu.Unlock()

	k.released.Raise(KeyEvent{Key: key, Time: now})
	return true
}

// ReleaseAll 释放所有按下的键（例如窗口失去焦点），按键名顺序广播
//
// 返回实际释放的键数。
func (k *Keyboard) ReleaseAll() int {
	n := 0
	for _, key := range k.Down() {
		if k.Release(key) {
			n++
		}
	}
	return n
}

// IsDown 报告按键是否按下
func (k *Keyboard) IsDown(key Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.down[key]
	return ok
}

// HeldFor 返回按键已按下的时长，未按下时返回 0
func (k *Keyboard) HeldFor(key Key) time.Duration {
	k.mu.Lock()
	since, ok := k.down[key]
	k.mu.Unlock()
	if !ok {
		return 0
	}
	return k.clock.Since(since)
}

// Down 返回当前按下的所有键（按名称排序）
func (k *Keyboard) Down() []Key {
	k.mu.Lock()
	keys := make([]Key, 0, len(k.down))
	for key := range k.down {
		keys = append(keys, key)
	}
	k.mu.Unlock()
	slices.Sort(keys)
	return keys
}
