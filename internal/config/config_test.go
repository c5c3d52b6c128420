package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault 测试默认配置
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "envgen", cfg.Database.DBName)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 100, cfg.Export.MaxFiles)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "envgen-gin", cfg.Tracing.ServiceName)
}

// TestLoad_FromFile 测试从 YAML 文件加载配置
func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
env: production
server:
  host: 127.0.0.1
  port: 9090
database:
  dbname: envgen_prod
export:
  max_files: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "envgen_prod", cfg.Database.DBName)
	assert.Equal(t, 50, cfg.Export.MaxFiles)

	// 未覆盖的字段使用默认值
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

// TestLoad_InvalidFile 测试加载不存在的配置文件
func TestLoad_InvalidFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

// TestIsProduction 测试环境判断
func TestIsProduction(t *testing.T) {
	assert.False(t, IsProduction(nil))
	assert.False(t, IsProduction(&Config{Env: "development"}))
	assert.True(t, IsProduction(&Config{Env: "production"}))
}

// TestLoad_EnvironmentOverride 测试环境变量覆盖
func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "18080")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 18080, cfg.Server.Port)
}

// TestLogDefaults_ByEnvironment 测试日志默认值随环境变化
func TestLogDefaults_ByEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}
