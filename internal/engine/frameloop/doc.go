// Package frameloop 实现固定间隔的帧循环
//
// 每一帧先同步广播 Updated，再按配置的模式异步广播 LateUpdated。
// 时钟来自 benbjohnson/clock，测试中可以用 clock.NewMock 精确推进。
//
//	loop, _ := frameloop.New(cfg.FrameLoop, hub, clock.New())
//	loop.Updated().Subscribe(func(f frameloop.Frame) { ... })
//	loop.LateUpdated().Subscribe(func(ctx context.Context, f frameloop.Frame) error { ... })
//	_ = loop.Start(ctx)
//	defer loop.Stop()
package frameloop
