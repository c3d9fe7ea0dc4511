package eventbus

import "errors"

var (
	// ErrNilHandler 订阅时传入了空处理器
	ErrNilHandler = errors.New("eventbus: nil handler")

	// ErrNilEvent 在未绑定事件源的 Event 上订阅
	ErrNilEvent = errors.New("eventbus: event has no source")

	// ErrHandlerPanic 异步处理器发生 panic
	ErrHandlerPanic = errors.New("eventbus: handler panicked")
)

// ErrInvalidMode 无法识别的异步分发模式
var ErrInvalidMode = errors.New("eventbus: invalid dispatch mode")
