package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = EditorConfig{
	LineNumbers:    Absolute,
	TrimFiles:      true,
	RebalanceDepth: 32,
	TabWidth:       4,
}

func TestInitWritesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg := NewConfig(nil)
	require.NoError(t, cfg.Init(""))

	assert.Equal(t, filepath.Join(home, "goditor"), cfg.Dir())
	assert.FileExists(t, filepath.Join(home, "goditor", "config.json"))
	assert.Equal(t, defaults, cfg.Editor())
}

func TestDefaultDirWithoutXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, "/home/someone/.goditor", DefaultDir())
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"lineNumbers": "relative", "tabWidth": 2}`), 0644))

	cfg := NewConfig(nil)
	require.NoError(t, cfg.Init(path))

	want := defaults
	want.LineNumbers = Relative
	want.TabWidth = 2
	assert.Equal(t, want, cfg.Editor())
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown line numbers", `{"lineNumbers": "hex"}`},
		{"negative depth", `{"rebalanceDepth": -1}`},
		{"zero tab width", `{"tabWidth": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			err := NewConfig(nil).Init(path)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)
		})
	}
}

func TestMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"lineNumbers": `), 0644))
	assert.Error(t, NewConfig(nil).Init(path))
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := NewConfig(nil)
	require.NoError(t, cfg.Init(path))

	changed := make(chan EditorConfig, 1)
	cfg.OnChange(func(e EditorConfig) {
		select {
		case changed <- e:
		default:
		}
	})
	require.NoError(t, cfg.Watch())
	defer func() { assert.NoError(t, cfg.Cleanup()) }()

	require.NoError(t, os.WriteFile(path, []byte(`{"lineNumbers": "off"}`), 0644))

	assert.Eventually(t, func() bool {
		return cfg.Editor().LineNumbers == Off
	}, 5*time.Second, 10*time.Millisecond)
	assert.NotEmpty(t, changed)
}

func TestBrokenReloadKeepsPreviousSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := NewConfig(nil)
	require.NoError(t, cfg.Init(path))
	require.NoError(t, cfg.Watch())
	defer cfg.Cleanup()

	require.NoError(t, os.WriteFile(path, []byte(`{"lineNumbers": "hex"}`), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, defaults, cfg.Editor())
}

func TestCleanupWithoutWatch(t *testing.T) {
	assert.NoError(t, NewConfig(nil).Cleanup())
}
