package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-eventcore/internal/util/logger"
	pkgif "github.com/dep2p/go-eventcore/pkg/interfaces"
)

var log = logger.Logger("core/metrics")

var (
	_ pkgif.PoolObserver = (*Collector)(nil)
	_ pkgif.PoolWatcher  = (*Collector)(nil)
)

// Collector 数组池指标采集器
type Collector struct {
	namespace string
	reg       prometheus.Registerer
	gatherer  prometheus.Gatherer

	acquires *prometheus.CounterVec
	releases *prometheus.CounterVec

	pools sync.Map // map[string]*poolCounters

	watchMu sync.Mutex
	watched map[string]prometheus.Collector
}

// poolCounters 单个池的计数器
//
// 带标签的子计数器在第一次计数时才创建，未发生过的结果不会导出零值序列。
type poolCounters struct {
	hit, miss       lazyCounter
	pooled, dropped lazyCounter

	hits, misses   atomic.Uint64
	pooledN, dropN atomic.Uint64
	freeNodes      atomic.Pointer[func() int]
}

// NewCollector 创建采集器并注册到 reg
//
// reg 为 nil 时使用新建的 prometheus.Registry。
func NewCollector(namespace string, reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &Collector{
		namespace: namespace,
		reg:       reg,
		watched:   make(map[string]prometheus.Collector),
		acquires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_acquire_total",
			Help:      "Array pool acquire attempts by result.",
		}, []string{"pool", "result"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_release_total",
			Help:      "Arrays returned to the pool by result.",
		}, []string{"pool", "result"}),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		c.gatherer = g
	}

	if err := reg.Register(c.acquires); err != nil {
		return nil, fmt.Errorf("register acquire counter: %w", err)
	}
	if err := reg.Register(c.releases); err != nil {
		reg.Unregister(c.acquires)
		return nil, fmt.Errorf("register release counter: %w", err)
	}
	return c, nil
}

// Gatherer 返回可供抓取的 Gatherer，注册器不支持抓取时返回 nil
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// OnAcquire 实现 PoolObserver
func (c *Collector) OnAcquire(pool string, hit bool) {
	if c == nil {
		return
	}
	pc := c.counters(pool)
	if hit {
		pc.hit.get(c.acquires, pool, "hit").Inc()
		pc.hits.Add(1)
	} else {
		pc.miss.get(c.acquires, pool, "miss").Inc()
		pc.misses.Add(1)
	}
}

// OnRelease 实现 PoolObserver
func (c *Collector) OnRelease(pool string, pooled bool) {
	if c == nil {
		return
	}
	pc := c.counters(pool)
	if pooled {
		pc.pooled.get(c.releases, pool, "pooled").Inc()
		pc.pooledN.Add(1)
	} else {
		pc.dropped.get(c.releases, pool, "dropped").Inc()
		pc.dropN.Add(1)
	}
}

// WatchPool 实现 PoolWatcher：注册 <ns>_pool_free_nodes{pool} 仪表
//
// 同一个池重复注册时替换旧的仪表。
func (c *Collector) WatchPool(pool string, freeNodes func() int) {
	if c == nil || freeNodes == nil {
		return
	}
	c.counters(pool).freeNodes.Store(&freeNodes)

	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   c.namespace,
		Name:        "pool_free_nodes",
		Help:        "Free arrays currently cached by the pool.",
		ConstLabels: prometheus.Labels{"pool": pool},
	}, func() float64 { return float64(freeNodes()) })

	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	if old, ok := c.watched[pool]; ok {
		c.reg.Unregister(old)
	}
	if err := c.reg.Register(gauge); err != nil {
		log.Warn("注册空闲节点仪表失败", "pool", pool, "err", err)
		delete(c.watched, pool)
		return
	}
	c.watched[pool] = gauge
}

// Stats 返回指定池的统计快照
func (c *Collector) Stats(pool string) PoolStats {
	if c == nil {
		return PoolStats{Pool: pool}
	}
	v, ok := c.pools.Load(pool)
	if !ok {
		return PoolStats{Pool: pool}
	}
	pc := v.(*poolCounters)
	s := PoolStats{
		Pool:    pool,
		Hits:    pc.hits.Load(),
		Misses:  pc.misses.Load(),
		Pooled:  pc.pooledN.Load(),
		Dropped: pc.dropN.Load(),
	}
	if fn := pc.freeNodes.Load(); fn != nil {
		s.FreeNodes = (*fn)()
	}
	return s
}

// Close 注销所有已注册的指标
func (c *Collector) Close() {
	if c == nil {
		return
	}
	c.watchMu.Lock()
	for pool, g := range c.watched {
		c.reg.Unregister(g)
		delete(c.watched, pool)
	}
	c.watchMu.Unlock()
	c.reg.Unregister(c.acquires)
	c.reg.Unregister(c.releases)
}

func (c *Collector) counters(pool string) *poolCounters {
	if v, ok := c.pools.Load(pool); ok {
		return v.(*poolCounters)
	}
	actual, _ := c.pools.LoadOrStore(pool, &poolCounters{})
	return actual.(*poolCounters)
}

// lazyCounter 按需绑定标签的计数器
type lazyCounter struct {
	c atomic.Pointer[prometheus.Counter]
}

// get 返回绑定好的子计数器，第一次调用时创建
//
// WithLabelValues 对相同标签返回同一个子计数器，并发首次调用是安全的。
func (l *lazyCounter) get(vec *prometheus.CounterVec, pool, result string) prometheus.Counter {
	if p := l.c.Load(); p != nil {
		return *p
	}
	counter := vec.WithLabelValues(pool, result)
	l.c.Store(&counter)
	return counter
}
