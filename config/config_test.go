package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Pool.Enabled)
	assert.Equal(t, 512, cfg.Pool.MaxNodes)
	assert.Equal(t, 0, cfg.Dispatch.ParallelLimit)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "eventcore", cfg.Metrics.Namespace)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 16*time.Millisecond, cfg.FrameLoop.Interval.Duration())
	assert.Equal(t, "sequential", cfg.FrameLoop.LateUpdateMode)
	assert.Equal(t, 128, cfg.Resource.CacheSize)
}

// TestConfig_Validate 测试各子配置的验证
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"NegativeMaxNodes", func(c *Config) { c.Pool.MaxNodes = -1 }},
		{"NegativeParallelLimit", func(c *Config) { c.Dispatch.ParallelLimit = -2 }},
		{"BadNamespace", func(c *Config) { c.Metrics.Namespace = "event-core" }},
		{"BadLogLevel", func(c *Config) { c.Log.Level = "loud" }},
		{"BadLogOutput", func(c *Config) { c.Log.Output = "syslog" }},
		{"ZeroInterval", func(c *Config) { c.FrameLoop.Interval = 0 }},
		{"BadMode", func(c *Config) { c.FrameLoop.LateUpdateMode = "random" }},
		{"ZeroCache", func(c *Config) { c.Resource.CacheSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("NamespaceIgnoredWhenDisabled", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Metrics.Enabled = false
		cfg.Metrics.Namespace = ""
		assert.NoError(t, cfg.Validate())
	})
}

// TestValidateAll 测试 nil 配置
func TestValidateAll(t *testing.T) {
	assert.Error(t, ValidateAll(nil))
	assert.NoError(t, ValidateAll(NewConfig()))
	assert.Panics(t, func() { MustValidate(nil) })
}

// TestFromJSON 测试 JSON 加载
func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{
		"pool": {"enabled": false, "max_nodes": 64},
		"frame_loop": {"interval": "8ms", "late_update_mode": "parallel"}
	}`))
	require.NoError(t, err)

	assert.False(t, cfg.Pool.Enabled)
	assert.Equal(t, 64, cfg.Pool.MaxNodes)
	assert.Equal(t, 8*time.Millisecond, cfg.FrameLoop.Interval.Duration())
	assert.Equal(t, "parallel", cfg.FrameLoop.LateUpdateMode)
	// 未出现的字段保留默认值
	assert.Equal(t, 128, cfg.Resource.CacheSize)

	_, err = FromJSON([]byte(`{"pool":`))
	assert.Error(t, err)
}

// TestFromYAML 测试 YAML 加载
func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
dispatch:
  parallel_limit: 4
metrics:
  namespace: game
frame_loop:
  interval: 33ms
resource:
  cache_size: 16
`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Dispatch.ParallelLimit)
	assert.Equal(t, "game", cfg.Metrics.Namespace)
	assert.Equal(t, 33*time.Millisecond, cfg.FrameLoop.Interval.Duration())
	assert.Equal(t, 16, cfg.Resource.CacheSize)
	assert.True(t, cfg.Pool.Enabled)

	empty, err := FromYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), empty)
}

// TestFromTOML 测试 TOML 加载
func TestFromTOML(t *testing.T) {
	cfg, err := FromTOML([]byte(`
[pool]
max_nodes = 32

[log]
level = "core/eventbus=debug,warn"

[frame_loop]
interval = "20ms"
auto_start = true
`))
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Pool.MaxNodes)
	assert.Equal(t, "core/eventbus=debug,warn", cfg.Log.Level)
	assert.Equal(t, 20*time.Millisecond, cfg.FrameLoop.Interval.Duration())
	assert.True(t, cfg.FrameLoop.AutoStart)

	_, err = FromTOML([]byte("[pool]\nbogus = 1\n"))
	assert.Error(t, err)
}

// TestLoadFile 测试按扩展名加载
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("JSON", func(t *testing.T) {
		cfg, err := LoadFile(write("a.json", `{"resource":{"cache_size":3}}`))
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Resource.CacheSize)
	})

	t.Run("YML", func(t *testing.T) {
		cfg, err := LoadFile(write("b.yml", "pool:\n  max_nodes: 7\n"))
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Pool.MaxNodes)
	})

	t.Run("TOML", func(t *testing.T) {
		cfg, err := LoadFile(write("c.toml", "[dispatch]\nparallel_limit = 2\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Dispatch.ParallelLimit)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := LoadFile(write("d.json", `{"resource":{"cache_size":0}}`))
		assert.Error(t, err)
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		_, err := LoadFile(write("e.ini", "x=1"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}

// TestConfig_ToJSON 测试序列化后可重新加载
func TestConfig_ToJSON(t *testing.T) {
	cfg := NewConfig()
	cfg.FrameLoop.Interval = Duration(5 * time.Millisecond)

	data, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"interval": "5ms"`)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
