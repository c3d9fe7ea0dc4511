package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/dep2p/go-eventcore"
)

// runFlags run 子命令参数
type runFlags struct {
	frames      uint64
	interval    time.Duration
	reportEvery uint64
	keyEvery    uint64
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo runtime until the frame budget or Ctrl+C",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := append(g.runtimeOptions(), eventcore.WithAutoStart(true))
			if f.interval > 0 {
				opts = append(opts, eventcore.WithFrameInterval(f.interval))
			}
			return runDemo(ctx, cmd.OutOrStdout(), f, opts...)
		},
	}
	cmd.Flags().Uint64VarP(&f.frames, "frames", "n", 120, "stop after this many frames (0 = until interrupted)")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "frame interval (overrides config)")
	cmd.Flags().Uint64Var(&f.reportEvery, "report-every", 30, "print a line every N frames")
	cmd.Flags().Uint64Var(&f.keyEvery, "key-every", 20, "toggle the space key every N frames (0 = never)")
	return cmd
}

// runDemo 启动运行时并挂上演示订阅者
func runDemo(ctx context.Context, out io.Writer, f *runFlags, opts ...eventcore.Option) (err error) {
	rt, err := eventcore.New(opts...)
	if err != nil {
		return err
	}

	var outMu sync.Mutex
	printf := func(format string, args ...any) {
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Fprintf(out, format, args...)
	}

	finished := make(chan struct{})
	var finishOnce sync.Once

	bag := eventcore.NewSubscriptionBag()
	defer bag.Dispose()
	keys := eventcore.NewUnsubscriberBag()
	defer keys.Dispose()

	// ─────────────────────────────────────────────────────────────────────
	// 订阅者
	// ─────────────────────────────────────────────────────────────────────
	phase, err := rt.Lifecycle().PhaseChanged().Subscribe(func(pc eventcore.PhaseChange) {
		printf("phase  %s -> %s\n", pc.From, pc.To)
	})
	if err != nil {
		return err
	}
	phase.AddTo(bag)

	updated, err := rt.Frames().Updated().Subscribe(func(fr eventcore.Frame) {
		if f.reportEvery > 0 && fr.Index%f.reportEvery == 0 {
			printf("frame  #%d delta=%s\n", fr.Index, fr.Delta)
		}
		if f.keyEvery > 0 && fr.Index > 0 && fr.Index%f.keyEvery == 0 {
			kb := rt.Keyboard()
			if kb.IsDown(eventcore.KeySpace) {
				kb.Release(eventcore.KeySpace)
			} else {
				kb.Press(eventcore.KeySpace)
			}
		}
		if f.frames > 0 && fr.Index+1 >= f.frames {
			finishOnce.Do(func() { close(finished) })
		}
	})
	if err != nil {
		return err
	}
	updated.AddTo(bag)

	pressed, err := rt.Keyboard().OnPressed(func(e eventcore.KeyEvent) {
		printf("key    %s down\n", e.Key)
	})
	if err != nil {
		return err
	}
	pressed.AddTo(keys)

	released, err := rt.Keyboard().OnReleased(func(e eventcore.KeyEvent) {
		printf("key    %s up\n", e.Key)
	})
	if err != nil {
		return err
	}
	released.AddTo(keys)

	loaded, err := rt.Resources().Loaded().Subscribe(func(_ context.Context, r *eventcore.Resource) error {
		printf("load   %s id=%s size=%d\n", r.Name, r.ID, len(r.Data))
		return nil
	})
	if err != nil {
		return err
	}
	loaded.AddTo(bag)

	// ─────────────────────────────────────────────────────────────────────
	// 运行
	// ─────────────────────────────────────────────────────────────────────
	if err := rt.Start(ctx); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, rt.Stop(context.Background()))
		printSummary(printf, rt)
	}()

	if _, err := rt.Resources().Load(ctx, "splash", func(context.Context, string) ([]byte, error) {
		return []byte(eventcore.VersionInfo()), nil
	}); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		log.Info("收到退出信号")
	case <-finished:
	}
	return nil
}

// printSummary 输出运行统计
func printSummary(printf func(string, ...any), rt *eventcore.Runtime) {
	stats := rt.Hub().Stats()
	printf("frames %d\n", rt.Frames().Frames())
	printf("pools  sync_free=%d async_free=%d max=%d\n", stats.SyncFree, stats.AsyncFree, stats.MaxNodes)
	for _, pool := range []string{eventcore.PoolSync, eventcore.PoolAsync} {
		s := rt.Metrics().Stats(pool)
		printf("pool   %s hits=%d misses=%d hit_rate=%.2f\n", pool, s.Hits, s.Misses, s.HitRate())
	}
}
