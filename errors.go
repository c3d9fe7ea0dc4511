package eventcore

import (
	"errors"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
	"github.com/dep2p/go-eventcore/internal/engine/resource"
)

// ════════════════════════════════════════════════════════════════════════════
//                              公共错误定义
// ════════════════════════════════════════════════════════════════════════════

// ────────────────────────────────────────────────────────────────────────────
// 运行时状态错误
// ────────────────────────────────────────────────────────────────────────────

var (
	// ErrNotStarted 运行时尚未启动
	ErrNotStarted = errors.New("runtime not started")

	// ErrAlreadyStarted 运行时已启动
	ErrAlreadyStarted = errors.New("runtime already started")

	// ErrClosed 运行时已停止，不能再次启动
	ErrClosed = errors.New("runtime closed")
)

// ────────────────────────────────────────────────────────────────────────────
// 分发错误
// ────────────────────────────────────────────────────────────────────────────

var (
	// ErrNilHandler 订阅时传入了空处理器
	ErrNilHandler = eventbus.ErrNilHandler

	// ErrNilEvent 在未绑定事件源的 Event 上订阅
	ErrNilEvent = eventbus.ErrNilEvent

	// ErrHandlerPanic 异步处理器发生 panic
	ErrHandlerPanic = eventbus.ErrHandlerPanic

	// ErrInvalidMode 无法识别的异步分发模式
	ErrInvalidMode = eventbus.ErrInvalidMode
)

// ────────────────────────────────────────────────────────────────────────────
// 资源错误
// ────────────────────────────────────────────────────────────────────────────

var (
	// ErrEmptyName 资源名为空
	ErrEmptyName = resource.ErrEmptyName

	// ErrNilLoader 资源加载函数为空
	ErrNilLoader = resource.ErrNilLoader
)
