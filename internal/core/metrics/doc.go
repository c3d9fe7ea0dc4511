// Package metrics 提供事件分发核心的 Prometheus 指标
//
// Collector 作为数组池观察者接入 eventbus.Hub，采集：
//   - <ns>_pool_acquire_total{pool, result=hit|miss}
//   - <ns>_pool_release_total{pool, result=pooled|dropped}
//   - <ns>_pool_free_nodes{pool}（通过 WatchPool 注册的 GaugeFunc）
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	collector, err := metrics.NewCollector("eventcore", reg)
//	hub := eventbus.NewHub(eventbus.WithPoolObserver(collector))
//	hub.WatchPools(collector)
//
//	stats := collector.Stats(eventbus.PoolSync)
//	fmt.Printf("hit rate: %.2f\n", stats.HitRate())
//
// nil *Collector 是合法的空实现，指标关闭时直接注入 nil。
package metrics
