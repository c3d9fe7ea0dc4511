// Package resource 提供带 LRU 淘汰的资源注册表
//
// 资源第一次加载时异步并行广播 Loaded；被淘汰、移除或清空时同步广播 Evicted。
// 同名资源的并发加载只执行一次加载函数。
package resource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/dep2p/go-eventcore/internal/core/eventbus"
	"github.com/dep2p/go-eventcore/internal/util/logger"
)

var log = logger.Logger("engine/resource")

var (
	// ErrEmptyName 资源名为空
	ErrEmptyName = errors.New("resource: empty name")
	// ErrNilLoader 加载函数为空
	ErrNilLoader = errors.New("resource: nil loader")
)

// Resource 已加载的资源
type Resource struct {
	ID       uuid.UUID
	Name     string
	Data     []byte
	LoadedAt time.Time
}

// LoaderFunc 按名称加载资源内容
type LoaderFunc func(ctx context.Context, name string) ([]byte, error)

// Registry 资源注册表
type Registry struct {
	cache  *lru.Cache[string, *Resource]
	flight singleflight.Group
	clock  clock.Clock

	loaded  *eventbus.AsyncEventSource[*Resource]
	evicted *eventbus.EventSource[*Resource]
}

// NewRegistry 创建最多缓存 size 个资源的注册表
//
// hub 可以为 nil；clk 为 nil 时使用系统时钟。
func NewRegistry(size int, hub *eventbus.Hub, clk clock.Clock) (*Registry, error) {
	if clk == nil {
		clk = clock.New()
	}
	r := &Registry{
		clock:   clk,
		loaded:  eventbus.NewAsyncEventSource[*Resource](hub),
		evicted: eventbus.NewEventSource[*Resource](hub),
	}
	cache, err := lru.NewWithEvict(size, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create resource cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Loaded 资源首次加载后异步并行广播的事件
func (r *Registry) Loaded() eventbus.AsyncEvent[*Resource] {
	return r.loaded.Event()
}

// Evicted 资源离开缓存时同步广播的事件
func (r *Registry) Evicted() eventbus.Event[*Resource] {
	return r.evicted.Event()
}

// Load 返回缓存中的资源，不存在时调用 loader 加载并广播 Loaded
//
// Loaded 处理器的错误会返回给调用方，但资源仍然被缓存。
func (r *Registry) Load(ctx context.Context, name string, loader LoaderFunc) (*Resource, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if res, ok := r.cache.Get(name); ok {
		return res, nil
	}
	if loader == nil {
		return nil, ErrNilLoader
	}

	type result struct {
		res *Resource
		err error
	}
	v, err, _ := r.flight.Do(name, func() (any, error) {
		// 等待期间可能已被其他调用加载
		if res, ok := r.cache.Get(name); ok {
			return result{res: res}, nil
		}
		data, err := loader(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load resource %q: %w", name, err)
		}
		res := &Resource{
			ID:       uuid.New(),
			Name:     name,
			Data:     data,
			LoadedAt: r.clock.Now(),
		}
		r.cache.Add(name, res)
		log.Debug("资源已加载", "name", name, "id", res.ID, "size", len(data))

		if err := r.loaded.Invoke(ctx, res); err != nil {
			return result{res: res, err: fmt.Errorf("resource %q loaded handlers: %w", name, err)}, nil
		}
		return result{res: res}, nil
	})
	if err != nil {
		return nil, err
	}
	out := v.(result)
	return out.res, out.err
}

// Get 返回缓存中的资源
func (r *Registry) Get(name string) (*Resource, bool) {
	return r.cache.Get(name)
}

// Remove 移除资源，存在时广播 Evicted
func (r *Registry) Remove(name string) bool {
	return r.cache.Remove(name)
}

// Names 返回缓存中的资源名（从最久未使用到最近使用）
func (r *Registry) Names() []string {
	return r.cache.Keys()
}

// Len 返回缓存中的资源数
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Purge 清空缓存，对每个资源广播 Evicted
func (r *Registry) Purge() {
	r.cache.Purge()
}

func (r *Registry) onEvict(name string, res *Resource) {
	log.Debug("资源已淘汰", "name", name, "id", res.ID)
	r.evicted.Invoke(res)
}
