package input

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
)

// TestKeyboard_Edges 测试只在边沿变化时广播
func TestKeyboard_Edges(t *testing.T) {
	mock := clock.NewMock()
	kb := NewKeyboard(eventbus.NewHub(), mock)
	var pressed, released []KeyEvent

	_, err := kb.OnPressed(func(e KeyEvent) { pressed = append(pressed, e) })
	require.NoError(t, err)
	_, err = kb.OnReleased(func(e KeyEvent) { released = append(released, e) })
	require.NoError(t, err)

	assert.True(t, kb.Press(KeySpace))
	assert.False(t, kb.Press(KeySpace), "重复按下不广播")
	assert.True(t, kb.IsDown(KeySpace))

	mock.Add(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, kb.HeldFor(KeySpace))

	assert.True(t, kb.Release(KeySpace))
	assert.False(t, kb.Release(KeySpace), "重复释放不广播")
	assert.False(t, kb.IsDown(KeySpace))
	assert.Zero(t, kb.HeldFor(KeySpace))

	require.Len(t, pressed, 1)
	require.Len(t, released, 1)
	assert.Equal(t, KeySpace, pressed[0].Key)
	assert.Equal(t, 100*time.Millisecond, released[0].Time.Sub(pressed[0].Time))
}

// TestKeyboard_Unsubscribe 测试取消订阅
func TestKeyboard_Unsubscribe(t *testing.T) {
	kb := NewKeyboard(nil, nil)
	count := 0
	u, err := kb.OnPressed(func(KeyEvent) { count++ })
	require.NoError(t, err)

	kb.Press(KeyUp)
	u.Dispose()
	kb.Press(KeyDown)
	assert.Equal(t, 1, count)

	_, err = kb.OnPressed(nil)
	assert.ErrorIs(t, err, eventbus.ErrNilHandler)
}

// TestKeyboard_ReleaseAll 测试释放全部按键
func TestKeyboard_ReleaseAll(t *testing.T) {
	kb := NewKeyboard(eventbus.NewHub(), clock.NewMock())
	var released []Key
	bag := eventbus.NewUnsubscriberBag()

	u, _ := kb.OnReleased(func(e KeyEvent) { released = append(released, e.Key) })
	u.AddTo(bag)

	kb.Press(KeyRight)
	kb.Press(KeyLeft)
	kb.Press(KeyEnter)
	assert.Equal(t, []Key{KeyEnter, KeyLeft, KeyRight}, kb.Down())

	assert.Equal(t, 3, kb.ReleaseAll())
	assert.Equal(t, []Key{KeyEnter, KeyLeft, KeyRight}, released)
	assert.Empty(t, kb.Down())
	assert.Zero(t, kb.ReleaseAll())

	bag.Dispose()
	kb.Press(KeyEscape)
	kb.Release(KeyEscape)
	assert.Len(t, released, 3)
}

// TestKeyboard_HandlerMayQueryState 测试处理器内可以查询状态
func TestKeyboard_HandlerMayQueryState(t *testing.T) {
	kb := NewKeyboard(nil, nil)
	var downInHandler bool
	_, _ = kb.OnPressed(func(e KeyEvent) { downInHandler = kb.IsDown(e.Key) })

	kb.Press(KeyUp)
	assert.True(t, downInHandler)
}

// TestModule_Load 测试 Fx 模块
func TestModule_Load(t *testing.T) {
	var kb *Keyboard
	app := fxtest.New(t,
		eventbus.Module(),
		Module(),
		fx.Populate(&kb),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, kb)
	assert.True(t, kb.Press(KeyUp))
}
