// Package interfaces 定义 eventcore 的公共接口
//
// 接口按关注点拆分：
//   - eventbus.go  - 订阅句柄（Disposable / Handle）
//   - metrics.go   - 数组池观察者（PoolObserver / PoolWatcher）
//
// 实现位于 internal/core 下对应目录，本包不依赖任何实现。
package interfaces
