// Package cli assembles the thermoprops collaborators from a config.Config.
package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aretw0/thermoprops/internal/adapters/file"
	"github.com/aretw0/thermoprops/internal/config"
	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/adapters/idealgas"
	loamadapter "github.com/aretw0/thermoprops/pkg/adapters/loam"
	"github.com/aretw0/thermoprops/pkg/adapters/memory"
	"github.com/aretw0/thermoprops/pkg/adapters/process"
	redisadapter "github.com/aretw0/thermoprops/pkg/adapters/redis"
	"github.com/aretw0/thermoprops/pkg/adapters/sqlstore"
	"github.com/aretw0/thermoprops/pkg/adapters/wasm"
	"github.com/aretw0/thermoprops/pkg/observability"
	"github.com/aretw0/thermoprops/pkg/persistence/middleware"
	"github.com/aretw0/thermoprops/pkg/plot"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/aretw0/thermoprops/pkg/registry"
	"github.com/aretw0/thermoprops/pkg/session"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

// App bundles the collaborators shared by every command.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Engine   ports.PropertyEngine
	Plots    *plot.Builder
	Store    ports.QueryStore
	Sessions *session.Manager
	Presets  ports.PresetLoader
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	closers []func(context.Context) error
}

// BuildOption configures Build.
type BuildOption func(*App)

// WithLogger replaces the logger derived from the log section.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(a *App) { a.Logger = logger }
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := logging.ParseLevel(cfg.Level)
	if cfg.Format == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// Build wires engine, store, sessions, presets and metrics. A wasm engine starts
// loading in the background; use WaitEngine before single-shot work.
func Build(ctx context.Context, cfg config.Config, opts ...BuildOption) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = NewLogger(cfg.Log)
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector())
	a.Metrics = observability.NewMetrics(a.Registry)

	engine, err := a.buildEngine(ctx)
	if err != nil {
		return nil, err
	}
	a.Engine = engine
	a.Plots = plot.NewBuilder(a.Engine, plot.WithLogger(a.Logger))

	store, locker, err := a.buildStore(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.Store = store

	sessOpts := []session.Option{session.WithLogger(a.Logger)}
	if locker != nil {
		sessOpts = append(sessOpts, session.WithLocker(locker))
	}
	a.Sessions = session.NewManager(a.Store, func(w ports.QueryWriter) *workspace.Controller {
		return workspace.New(a.Engine, append(a.ControllerOptions(), workspace.WithWriter(w))...)
	}, sessOpts...)

	presets, err := a.buildPresets()
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.Presets = presets
	return a, nil
}

// ControllerOptions are the options of every controller the app builds.
func (a *App) ControllerOptions() []workspace.Option {
	return []workspace.Option{
		workspace.WithLogger(a.Logger),
		workspace.WithHooks(observability.Merge(observability.LogHooks(a.Logger), a.Metrics.Hooks())),
	}
}

// WaitEngine blocks until a background-loading engine is ready.
func (a *App) WaitEngine(ctx context.Context) error {
	if w, ok := a.Engine.(interface{ Wait(context.Context) error }); ok {
		return w.Wait(ctx)
	}
	return nil
}

// Close releases stores and engines in reverse order of creation.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildEngine(ctx context.Context) (ports.PropertyEngine, error) {
	return a.engines().Build(ctx, a.Config.Engine.Kind)
}

// engines registers one factory per engine kind of the configuration.
func (a *App) engines() *registry.Registry {
	r := registry.NewRegistry()
	r.Register(config.EngineIdealGas, func(context.Context) (ports.PropertyEngine, error) {
		return idealgas.New(), nil
	})
	r.Register(config.EngineWasm, func(ctx context.Context) (ports.PropertyEngine, error) {
		opts := []wasm.Option{wasm.WithLogger(a.Logger)}
		if a.Config.Engine.MemoryPages > 0 {
			opts = append(opts, wasm.WithMemoryLimitPages(a.Config.Engine.MemoryPages))
		}
		e := wasm.New(wasm.FromFile(a.Config.Engine.WasmPath), opts...)
		e.Start(context.WithoutCancel(ctx))
		a.closers = append(a.closers, e.Close)
		return e, nil
	})
	r.Register(config.EngineProcess, func(context.Context) (ports.PropertyEngine, error) {
		pc, err := process.LoadConfig(a.Config.Engine.ProcessConfig)
		if err != nil {
			return nil, err
		}
		return process.New(pc,
			process.WithBaseDir(filepath.Dir(a.Config.Engine.ProcessConfig)),
			process.WithTimeout(a.Config.Engine.Timeout),
			process.WithLogger(a.Logger),
		), nil
	})
	return r
}

func (a *App) buildStore(ctx context.Context) (ports.QueryStore, ports.DistributedLocker, error) {
	sc := a.Config.Store
	var (
		store  ports.QueryStore
		locker ports.DistributedLocker
	)

	switch sc.Driver {
	case config.DriverMemory:
		store = memory.NewStore()
	case config.DriverFile:
		store = file.New(sc.Path)
	case config.DriverRedis:
		var ropts []redisadapter.Option
		if sc.Prefix != "" {
			ropts = append(ropts, redisadapter.WithPrefix(sc.Prefix))
		}
		if sc.TTL > 0 {
			ropts = append(ropts, redisadapter.WithTTL(sc.TTL))
		}
		rs := redisadapter.New(sc.RedisAddr, "", 0, ropts...)
		a.closers = append(a.closers, func(context.Context) error { return rs.Close() })
		store = rs
		locker = redisadapter.NewLocker(rs.Client(), rs.Prefix())
	case config.DriverSQLite, config.DriverPostgres:
		dialect := sqlstore.Dialect(sc.Driver)
		dsn := sc.DSN
		if dsn == "" {
			dsn = filepath.Join(sc.Path, "workspaces.db")
		}
		db, err := sqlstore.Open(dialect, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s store: %w", sc.Driver, err)
		}
		ss, err := sqlstore.New(ctx, db, dialect)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return ss.Close() })
		store = ss
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", sc.Driver)
	}

	var mws []middleware.Middleware
	if len(sc.PIIParams) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(sc.PIIParams))
	}
	if sc.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(sc.EncryptionKey)
		if err != nil {
			return nil, nil, fmt.Errorf("store.encryption_key: %w", err)
		}
		if len(key) != 32 {
			return nil, nil, fmt.Errorf("store.encryption_key must decode to 32 bytes, got %d", len(key))
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	return middleware.Chain(store, mws...), locker, nil
}

func (a *App) buildPresets() (ports.PresetLoader, error) {
	if a.Config.Presets.Path == "" {
		return memory.NewLoader(memory.BuiltinPresets()...)
	}
	l, err := loamadapter.Open(a.Config.Presets.Path)
	if err != nil {
		return nil, fmt.Errorf("open presets at %s: %w", a.Config.Presets.Path, err)
	}
	return l, nil
}
