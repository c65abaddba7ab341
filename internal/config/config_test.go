package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadWithEnv("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "thermoprops.yaml", `
server:
  addr: ":9090"
  read_timeout: 5s
  cors_origins: ["http://localhost:5173"]
store:
  driver: redis
  redis_addr: localhost:6379
  ttl: 24h
  pii_params: [token, email]
engine:
  kind: idealgas
defaults:
  fluid: Nitrogen
`)
	cfg, err := LoadWithEnv(path, nil)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Store.TTL)
	assert.Equal(t, []string{"token", "email"}, cfg.Store.PIIParams)
	assert.Equal(t, "Nitrogen", cfg.Defaults.Fluid)
	assert.Equal(t, "si", cfg.Defaults.Units)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "thermoprops.toml", `
[store]
driver = "sqlite"
dsn = "file:workspaces.db"

[engine]
kind = "wasm"
wasm_path = "coolprop.wasm"
memory_pages = 512

[log]
level = "debug"
format = "json"
`)
	cfg, err := LoadWithEnv(path, nil)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file:workspaces.db", cfg.Store.DSN)
	assert.Equal(t, EngineWasm, cfg.Engine.Kind)
	assert.Equal(t, uint32(512), cfg.Engine.MemoryPages)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "thermoprops.yaml", `
store:
  driver: file
log:
  level: warn
`)
	cfg, err := LoadWithEnv(path, []string{
		"THERMOPROPS_STORE_DRIVER=redis",
		"THERMOPROPS_STORE_REDIS_ADDR=cache:6379",
		"THERMOPROPS_STORE_TTL=90m",
		"THERMOPROPS_SERVER_CORS_ORIGINS=https://a.example,https://b.example",
		"THERMOPROPS_DEFAULTS_FLUID=Argon",
		"THERMOPROPS_IGNORED=1",
		"HOME=/root",
	})
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 90*time.Minute, cfg.Store.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "Argon", cfg.Defaults.Fluid)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     []string
		wantErr string
	}{
		{"unknown driver", []string{"THERMOPROPS_STORE_DRIVER=etcd"}, "unknown store driver"},
		{"redis without addr", []string{"THERMOPROPS_STORE_DRIVER=redis"}, "redis_addr"},
		{"postgres without dsn", []string{"THERMOPROPS_STORE_DRIVER=postgres"}, "store.dsn"},
		{"wasm without path", []string{"THERMOPROPS_ENGINE_KIND=wasm"}, "wasm_path"},
		{"process without config", []string{"THERMOPROPS_ENGINE_KIND=process"}, "process_config"},
		{"unknown engine", []string{"THERMOPROPS_ENGINE_KIND=refprop"}, "unknown engine kind"},
		{"unknown log format", []string{"THERMOPROPS_LOG_FORMAT=xml"}, "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithEnv("", tt.env)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "thermoprops.ini", "x=1")
	_, err := LoadWithEnv(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoad_ProcessEngineFromEnv(t *testing.T) {
	cfg, err := LoadWithEnv("", []string{
		"THERMOPROPS_ENGINE_KIND=process",
		"THERMOPROPS_ENGINE_PROCESS_CONFIG=/etc/thermoprops/engine.yaml",
		"THERMOPROPS_ENGINE_TIMEOUT=3s",
	})
	require.NoError(t, err)
	assert.Equal(t, EngineProcess, cfg.Engine.Kind)
	assert.Equal(t, "/etc/thermoprops/engine.yaml", cfg.Engine.ProcessConfig)
	assert.Equal(t, 3*time.Second, cfg.Engine.Timeout)
}
