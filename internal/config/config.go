// Package config loads thermoprops settings from a YAML or TOML file, then
// applies THERMOPROPS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override file settings.
// THERMOPROPS_STORE_REDIS_ADDR sets store.redis_addr.
const EnvPrefix = "THERMOPROPS_"

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Engine kinds.
const (
	EngineIdealGas = "idealgas"
	EngineWasm     = "wasm"
	EngineProcess  = "process"
)

// Config is the full runtime configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Log      LogConfig      `mapstructure:"log"`
	Presets  PresetsConfig  `mapstructure:"presets"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

type StoreConfig struct {
	Driver    string        `mapstructure:"driver"`
	Path      string        `mapstructure:"path"`
	DSN       string        `mapstructure:"dsn"`
	RedisAddr string        `mapstructure:"redis_addr"`
	Prefix    string        `mapstructure:"prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
	// EncryptionKey is a base64 AES-256 key. Empty disables encryption.
	EncryptionKey string   `mapstructure:"encryption_key"`
	PIIParams     []string `mapstructure:"pii_params"`
}

type EngineConfig struct {
	Kind        string `mapstructure:"kind"`
	WasmPath    string `mapstructure:"wasm_path"`
	MemoryPages uint32 `mapstructure:"memory_pages"`
	// ProcessConfig names the YAML or JSON file describing an external engine command.
	ProcessConfig string        `mapstructure:"process_config"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type PresetsConfig struct {
	Path string `mapstructure:"path"`
}

type DefaultsConfig struct {
	Fluid string `mapstructure:"fluid"`
	Units string `mapstructure:"units"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Driver: DriverMemory,
			Path:   ".thermoprops/workspaces",
		},
		Engine:   EngineConfig{Kind: EngineIdealGas},
		Log:      LogConfig{Level: "info", Format: "text"},
		Defaults: DefaultsConfig{Units: "si"},
	}
}

// Load reads path (missing file means defaults) and applies the process
// environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Environ())
}

// LoadWithEnv is Load with an explicit environment, as KEY=VALUE pairs.
func LoadWithEnv(path string, environ []string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := decode(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := decode(envOverrides(environ), &cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return raw, nil
}

// envOverrides turns THERMOPROPS_SECTION_FIELD=value into {section: {field: value}}.
func envOverrides(environ []string) map[string]any {
	out := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		section, field, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_")
		if !ok || field == "" {
			continue
		}
		m, _ := out[section].(map[string]any)
		if m == nil {
			m = map[string]any{}
			out[section] = m
		}
		m[field] = value
	}
	return out
}

func decode(raw map[string]any, cfg *Config) error {
	if len(raw) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks enumerations and required companions.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == DriverRedis && c.Store.RedisAddr == "" {
		return errors.New("store.redis_addr is required for the redis driver")
	}
	if c.Store.Driver == DriverPostgres && c.Store.DSN == "" {
		return errors.New("store.dsn is required for the postgres driver")
	}

	switch c.Engine.Kind {
	case EngineIdealGas:
	case EngineWasm:
		if c.Engine.WasmPath == "" {
			return errors.New("engine.wasm_path is required for the wasm engine")
		}
	case EngineProcess:
		if c.Engine.ProcessConfig == "" {
			return errors.New("engine.process_config is required for the process engine")
		}
	default:
		return fmt.Errorf("unknown engine kind %q", c.Engine.Kind)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
