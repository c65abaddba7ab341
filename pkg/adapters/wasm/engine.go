// Package wasm hosts a CoolProp build compiled to a standalone WebAssembly
// module and exposes it as a ports.PropertyEngine.
//
// Loading happens in the background: Start compiles and instantiates the
// module, Ready reports whether calls can be made and Err holds the load
// failure, if any. A module instance is not reentrant, so calls are serialized.
package wasm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/domain"
)

// Exports the module must provide.
var requiredExports = []string{
	"malloc",
	"free",
	"PropsSI",
	"get_global_param_string",
	"get_fluid_param_string",
}

// paramBufferSize bounds the strings read back from the parameter getters.
const paramBufferSize = 16 * 1024

// ErrNotStarted is returned by Wait when Start was never called.
var ErrNotStarted = errors.New("wasm engine not started")

// Source provides the module bytes.
type Source func(ctx context.Context) ([]byte, error)

// FromFile reads the module from disk.
func FromFile(path string) Source {
	return func(context.Context) ([]byte, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read wasm module: %w", err)
		}
		return b, nil
	}
}

// FromBytes serves an in-memory module.
func FromBytes(b []byte) Source {
	return func(context.Context) ([]byte, error) { return b, nil }
}

// Engine implements ports.PropertyEngine on top of wazero.
type Engine struct {
	source      Source
	logger      *slog.Logger
	memoryPages uint32

	ready   atomic.Bool
	started atomic.Bool
	done    chan struct{}

	mu      sync.Mutex
	err     error
	runtime wazero.Runtime
	mod     api.Module
	fluids  []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMemoryLimitPages caps the module memory, in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(e *Engine) {
		e.memoryPages = pages
	}
}

// New creates an engine. Nothing is loaded until Start.
func New(source Source, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		logger: logging.NewNop(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start loads the module in the background. Subsequent calls are no-ops.
func (e *Engine) Start(ctx context.Context) {
	if !e.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(e.done)
		if err := e.load(ctx); err != nil {
			e.mu.Lock()
			e.err = err
			e.mu.Unlock()
			e.logger.Error("property engine failed to load", "err", err)
			return
		}
		e.ready.Store(true)
		e.logger.Info("property engine ready")
	}()
}

// Wait blocks until loading finishes and returns the load error.
func (e *Engine) Wait(ctx context.Context) error {
	if !e.started.Load() {
		return ErrNotStarted
	}
	select {
	case <-e.done:
		return e.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready reports whether the module is loaded.
func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// Err returns the load failure, if any.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Close releases the runtime.
func (e *Engine) Close(ctx context.Context) error {
	e.ready.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.runtime == nil {
		return nil
	}
	err := e.runtime.Close(ctx)
	e.runtime, e.mod = nil, nil
	return err
}

func (e *Engine) load(ctx context.Context) error {
	wasmBytes, err := e.source(ctx)
	if err != nil {
		return err
	}

	cfg := wazero.NewRuntimeConfig()
	if e.memoryPages > 0 {
		cfg = cfg.WithMemoryLimitPages(e.memoryPages)
	}
	r := wazero.NewRuntimeWithConfig(ctx, cfg)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		_ = r.Close(ctx)
		return fmt.Errorf("instantiate wasi: %w", err)
	}
	// Standalone builds notify the host when memory grows.
	_, err = r.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithFunc(func(context.Context, uint32) {}).
		Export("emscripten_notify_memory_growth").
		Instantiate(ctx)
	if err != nil {
		_ = r.Close(ctx)
		return fmt.Errorf("instantiate env: %w", err)
	}

	compiled, err := r.CompileModule(ctx, wasmBytes)
	if err != nil {
		_ = r.Close(ctx)
		return fmt.Errorf("compile wasm module: %w", err)
	}

	modCfg := wazero.NewModuleConfig().
		WithName("coolprop").
		WithStartFunctions("_initialize")
	mod, err := r.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		_ = r.Close(ctx)
		return fmt.Errorf("instantiate wasm module: %w", err)
	}

	for _, name := range requiredExports {
		if mod.ExportedFunction(name) == nil {
			_ = r.Close(ctx)
			return fmt.Errorf("wasm module does not export %s", name)
		}
	}
	if mod.Memory() == nil {
		_ = r.Close(ctx)
		return errors.New("wasm module does not export memory")
	}

	e.mu.Lock()
	e.runtime, e.mod = r, mod
	e.mu.Unlock()
	return nil
}

// ListFluids returns the fluids known to the module, sorted.
func (e *Engine) ListFluids(ctx context.Context) ([]string, error) {
	if !e.Ready() {
		return nil, domain.ErrEngineUnavailable
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mod == nil {
		return nil, domain.ErrEngineUnavailable
	}
	if e.fluids != nil {
		return append([]string(nil), e.fluids...), nil
	}

	raw, err := e.globalParam(ctx, "FluidsList")
	if err != nil {
		return nil, err
	}
	fluids := splitList(raw)
	sort.Strings(fluids)
	e.fluids = fluids
	return append([]string(nil), fluids...), nil
}

// FluidMetadata returns the aliases and formula of a fluid.
func (e *Engine) FluidMetadata(ctx context.Context, fluid string) (domain.FluidMetadata, error) {
	if !e.Ready() {
		return domain.FluidMetadata{}, domain.ErrEngineUnavailable
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mod == nil {
		return domain.FluidMetadata{}, domain.ErrEngineUnavailable
	}

	aliases, err := e.fluidParam(ctx, fluid, "aliases")
	if err != nil {
		return domain.FluidMetadata{}, err
	}
	meta := domain.FluidMetadata{Name: fluid, Aliases: splitList(aliases)}
	if name, err := e.fluidParam(ctx, fluid, "name"); err == nil && name != "" {
		meta.Name = name
	}
	if formula, err := e.fluidParam(ctx, fluid, "formula"); err == nil {
		meta.Formula = formula
	}
	return meta, nil
}

// ComputeProperty calls PropsSI. Non-finite results are rejections.
func (e *Engine) ComputeProperty(ctx context.Context, target, in1 string, v1 float64, in2 string, v2 float64, fluid string) (float64, error) {
	if !e.Ready() {
		return 0, domain.ErrEngineUnavailable
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mod == nil {
		return 0, domain.ErrEngineUnavailable
	}

	var ptrs []uint32
	defer func() { e.freeAll(ctx, ptrs) }()
	for _, s := range []string{target, in1, in2, fluid} {
		p, err := e.cstring(ctx, s)
		if err != nil {
			return 0, err
		}
		ptrs = append(ptrs, p)
	}

	res, err := e.mod.ExportedFunction("PropsSI").Call(ctx,
		uint64(ptrs[0]),
		uint64(ptrs[1]), api.EncodeF64(v1),
		uint64(ptrs[2]), api.EncodeF64(v2),
		uint64(ptrs[3]),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	v := api.DecodeF64(res[0])
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s(%s=%g, %s=%g) for %s", domain.ErrRejectedInput, target, in1, v1, in2, v2, fluid)
	}
	return v, nil
}

func (e *Engine) globalParam(ctx context.Context, param string) (string, error) {
	p, err := e.cstring(ctx, param)
	if err != nil {
		return "", err
	}
	defer e.freeAll(ctx, []uint32{p})
	return e.readParam(ctx, "get_global_param_string", uint64(p))
}

func (e *Engine) fluidParam(ctx context.Context, fluid, param string) (string, error) {
	f, err := e.cstring(ctx, fluid)
	if err != nil {
		return "", err
	}
	p, err := e.cstring(ctx, param)
	if err != nil {
		e.freeAll(ctx, []uint32{f})
		return "", err
	}
	defer e.freeAll(ctx, []uint32{f, p})

	out, err := e.readParam(ctx, "get_fluid_param_string", uint64(f), uint64(p))
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownFluid, fluid)
	}
	return out, nil
}

// readParam calls a getter of the form fn(args..., char *out, int n) -> long.
func (e *Engine) readParam(ctx context.Context, fn string, args ...uint64) (string, error) {
	buf, err := e.malloc(ctx, paramBufferSize)
	if err != nil {
		return "", err
	}
	defer e.freeAll(ctx, []uint32{buf})

	args = append(args, uint64(buf), uint64(paramBufferSize))
	res, err := e.mod.ExportedFunction(fn).Call(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	if api.DecodeI32(res[0]) != 1 {
		return "", fmt.Errorf("%s failed", fn)
	}
	raw, ok := e.mod.Memory().Read(buf, paramBufferSize)
	if !ok {
		return "", fmt.Errorf("%s: output out of range", fn)
	}
	if i := strings.IndexByte(string(raw), 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw), nil
}

func (e *Engine) malloc(ctx context.Context, size uint32) (uint32, error) {
	res, err := e.mod.ExportedFunction("malloc").Call(ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("%w: malloc: %v", domain.ErrEngineUnavailable, err)
	}
	p := uint32(res[0])
	if p == 0 {
		return 0, fmt.Errorf("%w: malloc returned null", domain.ErrEngineUnavailable)
	}
	return p, nil
}

func (e *Engine) cstring(ctx context.Context, s string) (uint32, error) {
	b := append([]byte(s), 0)
	p, err := e.malloc(ctx, uint32(len(b)))
	if err != nil {
		return 0, err
	}
	if !e.mod.Memory().Write(p, b) {
		e.freeAll(ctx, []uint32{p})
		return 0, fmt.Errorf("%w: write out of range", domain.ErrEngineUnavailable)
	}
	return p, nil
}

func (e *Engine) freeAll(ctx context.Context, ptrs []uint32) {
	free := e.mod.ExportedFunction("free")
	for _, p := range ptrs {
		if _, err := free.Call(ctx, uint64(p)); err != nil {
			e.logger.Warn("wasm free failed", "err", err)
		}
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
