package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-eventcore"
	"github.com/dep2p/go-eventcore/config"
)

// execute 执行命令并返回输出
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// TestVersionCmd 测试 version 子命令
func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, eventcore.Version)
}

// TestConfigShow 测试按格式输出配置，并能被重新加载
func TestConfigShow(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			out, err := execute(t, "config", "show", "--format", format)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "eventcore."+format)
			require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

			cfg, err := config.LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, config.NewConfig(), cfg)
		})
	}
}

// TestConfigShow_UnknownFormat 测试未知格式
func TestConfigShow_UnknownFormat(t *testing.T) {
	_, err := execute(t, "config", "show", "--format", "ini")
	assert.Error(t, err)
}

// TestConfigValidate 测试配置校验
func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("pool:\n  max_nodes: 64\n"), 0o600))
	out, err := execute(t, "config", "validate", "--config", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pool:\n  max_nodes: -1\n"), 0o600))
	_, err = execute(t, "config", "validate", "--config", bad)
	assert.Error(t, err)

	_, err = execute(t, "config", "validate")
	assert.Error(t, err)
}

// TestRunBench 测试同步与异步压测
func TestRunBench(t *testing.T) {
	tests := []struct {
		name  string
		flags benchFlags
	}{
		{"Sync", benchFlags{subscribers: 3, iterations: 50, publishers: 2, mode: "parallel"}},
		{"SyncEmpty", benchFlags{subscribers: 0, iterations: 10, publishers: 1, mode: "parallel"}},
		{"AsyncParallel", benchFlags{subscribers: 3, iterations: 20, publishers: 2, async: true, mode: "parallel"}},
		{"AsyncSequential", benchFlags{subscribers: 5, iterations: 20, publishers: 1, async: true, mode: "sequential"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.flags
			res, err := runBench(context.Background(), &f)
			require.NoError(t, err)

			raises := int64(f.iterations * f.publishers)
			assert.Equal(t, raises, res.raises)
			assert.Equal(t, raises*int64(f.subscribers), res.calls)
			require.Len(t, res.pools, 2)

			var out bytes.Buffer
			require.NoError(t, printBench(&out, &f, res))
			assert.Contains(t, out.String(), "per raise")
		})
	}
}

// TestRunBench_InvalidFlags 测试非法参数
func TestRunBench_InvalidFlags(t *testing.T) {
	_, err := runBench(context.Background(), &benchFlags{subscribers: 1, iterations: 0, publishers: 1, mode: "parallel"})
	assert.Error(t, err)

	_, err = runBench(context.Background(), &benchFlags{subscribers: 1, iterations: 1, publishers: 1, mode: "random"})
	assert.ErrorIs(t, err, eventcore.ErrInvalidMode)
}

// TestBenchCmd 测试 bench 子命令输出
func TestBenchCmd(t *testing.T) {
	out, err := execute(t, "bench", "-s", "2", "-i", "10", "--async")
	require.NoError(t, err)
	assert.Contains(t, out, "async/parallel")
	assert.Contains(t, out, "calls       20")
}

// TestRunDemo 测试演示运行时跑完帧预算后退出
func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	f := &runFlags{frames: 5, reportEvery: 1, keyEvery: 2}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := runDemo(ctx, &out, f,
		eventcore.WithAutoStart(true),
		eventcore.WithFrameInterval(time.Millisecond),
		eventcore.WithLogLevel("error"))
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "phase  loading -> running")
	assert.Contains(t, s, "frame  #0")
	assert.Contains(t, s, "frame  #4")
	assert.Contains(t, s, "key    space down")
	assert.Contains(t, s, "load   splash")
	assert.Contains(t, s, "pool   sync")
}
