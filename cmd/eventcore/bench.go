package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-eventcore"
	"github.com/dep2p/go-eventcore/internal/core/metrics"
)

// benchFlags bench 子命令参数
type benchFlags struct {
	subscribers int
	iterations  int
	publishers  int
	async       bool
	mode        string
}

// benchResult 压测结果
type benchResult struct {
	raises  int64
	calls   int64
	elapsed time.Duration
	stats   eventcore.HubStats
	pools   []metrics.PoolStats
}

func newBenchCmd(g *globalFlags) *cobra.Command {
	f := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark event dispatch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			hubOpts := []eventcore.HubOption{
				eventcore.WithMaxPoolNodes(cfg.Pool.MaxNodes),
				eventcore.WithParallelLimit(cfg.Dispatch.ParallelLimit),
			}
			if !cfg.Pool.Enabled {
				hubOpts = append(hubOpts, eventcore.WithoutPooling())
			}

			res, err := runBench(cmd.Context(), f, hubOpts...)
			if err != nil {
				return err
			}
			return printBench(cmd.OutOrStdout(), f, res)
		},
	}
	cmd.Flags().IntVarP(&f.subscribers, "subscribers", "s", 4, "subscribers per event source")
	cmd.Flags().IntVarP(&f.iterations, "iterations", "i", 100000, "raises per publisher")
	cmd.Flags().IntVarP(&f.publishers, "publishers", "p", 1, "concurrent publishers")
	cmd.Flags().BoolVar(&f.async, "async", false, "benchmark the async dispatcher")
	cmd.Flags().StringVar(&f.mode, "mode", "parallel", "async dispatch mode: parallel or sequential")
	return cmd
}

// runBench 执行压测
//
// 所有发布者共享同一个事件源，每次触发都会拍快照并归还数组。
func runBench(ctx context.Context, f *benchFlags, hubOpts ...eventcore.HubOption) (*benchResult, error) {
	if f.subscribers < 0 || f.iterations <= 0 || f.publishers <= 0 {
		return nil, fmt.Errorf("subscribers must be >= 0, iterations and publishers > 0")
	}
	mode, err := eventcore.ParseMode(f.mode)
	if err != nil {
		return nil, err
	}

	collector, err := metrics.NewCollector("eventcore_bench", nil)
	if err != nil {
		return nil, err
	}
	defer collector.Close()

	hub := eventcore.NewHub(append(hubOpts, eventcore.WithPoolObserver(collector))...)
	hub.WatchPools(collector)

	var calls atomic.Int64
	raise, err := benchTarget(hub, f, mode, &calls)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	start := time.Now()
	for p := 0; p < f.publishers; p++ {
		g.Go(func() error {
			for i := 0; i < f.iterations; i++ {
				if err := raise(gctx, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &benchResult{
		raises:  int64(f.publishers) * int64(f.iterations),
		calls:   calls.Load(),
		elapsed: time.Since(start),
		stats:   hub.Stats(),
		pools:   []metrics.PoolStats{collector.Stats(eventcore.PoolSync), collector.Stats(eventcore.PoolAsync)},
	}, nil
}

// benchTarget 创建事件源并返回单次触发函数
func benchTarget(hub *eventcore.Hub, f *benchFlags, mode eventcore.Mode, calls *atomic.Int64) (func(context.Context, int) error, error) {
	if f.async {
		src := eventcore.NewAsyncEventSource[int](hub)
		for i := 0; i < f.subscribers; i++ {
			if _, err := src.Event().Subscribe(func(context.Context, int) error {
				calls.Add(1)
				return nil
			}); err != nil {
				return nil, err
			}
		}
		if mode == eventcore.Sequential {
			return src.InvokeSequentially, nil
		}
		return src.Invoke, nil
	}

	src := eventcore.NewEventSource[int](hub)
	for i := 0; i < f.subscribers; i++ {
		if _, err := src.Event().Subscribe(func(int) { calls.Add(1) }); err != nil {
			return nil, err
		}
	}
	return func(_ context.Context, arg int) error {
		src.Invoke(arg)
		return nil
	}, nil
}

func printBench(out io.Writer, f *benchFlags, r *benchResult) error {
	kind := "sync"
	if f.async {
		kind = "async/" + f.mode
	}
	perRaise := time.Duration(0)
	if r.raises > 0 {
		perRaise = r.elapsed / time.Duration(r.raises)
	}

	_, err := fmt.Fprintf(out,
		"dispatch    %s\nsubscribers %d\npublishers  %d\nraises      %d\ncalls       %d\nelapsed     %s\nper raise   %s\n",
		kind, f.subscribers, f.publishers, r.raises, r.calls, r.elapsed, perRaise)
	if err != nil {
		return err
	}
	for _, s := range r.pools {
		if _, err := fmt.Fprintf(out, "pool %-6s hits=%d misses=%d pooled=%d dropped=%d free=%d\n",
			s.Pool, s.Hits, s.Misses, s.Pooled, s.Dropped, s.FreeNodes); err != nil {
			return err
		}
	}
	return nil
}
