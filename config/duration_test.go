package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type durationHolder struct {
	D Duration `json:"d" yaml:"d" toml:"d"`
}

// TestDuration_Formats 测试三种格式的字符串和纳秒数
func TestDuration_Formats(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var h durationHolder
		require.NoError(t, json.Unmarshal([]byte(`{"d":"250ms"}`), &h))
		assert.Equal(t, 250*time.Millisecond, h.D.Duration())

		require.NoError(t, json.Unmarshal([]byte(`{"d":1000}`), &h))
		assert.Equal(t, time.Microsecond, h.D.Duration())

		assert.Error(t, json.Unmarshal([]byte(`{"d":"soon"}`), &h))
		assert.Error(t, json.Unmarshal([]byte(`{"d":true}`), &h))
	})

	t.Run("YAML", func(t *testing.T) {
		var h durationHolder
		require.NoError(t, yaml.Unmarshal([]byte("d: 2s\n"), &h))
		assert.Equal(t, 2*time.Second, h.D.Duration())

		require.NoError(t, yaml.Unmarshal([]byte("d: 5000\n"), &h))
		assert.Equal(t, 5*time.Microsecond, h.D.Duration())

		assert.Error(t, yaml.Unmarshal([]byte("d: later\n"), &h))
	})

	t.Run("TOML", func(t *testing.T) {
		var h durationHolder
		_, err := toml.Decode(`d = "1m"`, &h)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, h.D.Duration())

		_, err = toml.Decode(`d = 42`, &h)
		require.NoError(t, err)
		assert.Equal(t, Duration(42), h.D)
	})
}

// TestDuration_Marshal 测试输出为可读字符串
func TestDuration_Marshal(t *testing.T) {
	d := Duration(1500 * time.Millisecond)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1.5s"`, string(data))

	out, err := yaml.Marshal(durationHolder{D: d})
	require.NoError(t, err)
	assert.Equal(t, "d: 1.5s\n", string(out))

	assert.Equal(t, "1.5s", d.String())
}
