package arraypool

import pkgif "github.com/dep2p/go-eventcore/pkg/interfaces"

// settings 池配置
type settings struct {
	maxNodes int
	observer pkgif.PoolObserver
}

// Option 池选项
type Option func(*settings)

// WithMaxNodes 设置空闲节点上限，0 表示从不缓存
func WithMaxNodes(n int) Option {
	return func(s *settings) {
		s.maxNodes = n
	}
}

// WithObserver 设置命中/回收观察者
func WithObserver(o pkgif.PoolObserver) Option {
	return func(s *settings) {
		s.observer = o
	}
}
