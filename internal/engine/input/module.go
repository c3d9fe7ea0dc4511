package input

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
)

// Params 键盘依赖参数
type Params struct {
	fx.In

	Hub   *eventbus.Hub
	Clock clock.Clock `optional:"true"`
}

// ProvideKeyboard 创建键盘
func ProvideKeyboard(p Params) *Keyboard {
	return NewKeyboard(p.Hub, p.Clock)
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("input",
		fx.Provide(ProvideKeyboard),
	)
}
