package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigWatcher_Start 测试监听器加载配置文件并启动
func TestConfigWatcher_Start(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: development\n"), 0644))

	cfg := Default()
	watcher := NewConfigWatcher(cfg, path)
	watcher.OnConfigChange(func(*Config) {})

	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	assert.Equal(t, cfg, watcher.GetConfig())
}

// TestConfigWatcher_Start_MissingFile 测试配置文件不存在时启动失败
func TestConfigWatcher_Start_MissingFile(t *testing.T) {
	watcher := NewConfigWatcher(Default(), "/nonexistent/config.yaml")
	assert.Error(t, watcher.Start())
}
