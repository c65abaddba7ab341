package thermoprops

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/adapters/idealgas"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/numeric"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

//go:embed VERSION
var version string

// Version returns the release of the library.
func Version() string {
	return strings.TrimSpace(version)
}

// Workspace is a state workspace bound to a URL query string.
type Workspace = workspace.Controller

type options struct {
	engine ports.PropertyEngine
	logger *slog.Logger
	hooks  domain.WorkspaceHooks
	writer ports.QueryWriter
}

// Option configures the workspaces and computations of this package.
type Option func(*options)

// WithEngine replaces the built-in ideal gas engine.
func WithEngine(engine ports.PropertyEngine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.WorkspaceHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithWriter sets where the workspace writes its query after every change.
func WithWriter(w ports.QueryWriter) Option {
	return func(o *options) {
		o.writer = w
	}
}

func resolve(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = idealgas.New()
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	return o
}

// Open creates a workspace and loads it from rawQuery.
// An empty query yields an empty workspace with no fluid selected.
func Open(ctx context.Context, rawQuery string, opts ...Option) (*Workspace, error) {
	o := resolve(opts)
	ctrlOpts := []workspace.Option{
		workspace.WithLogger(o.logger),
		workspace.WithHooks(o.hooks),
	}
	if o.writer != nil {
		ctrlOpts = append(ctrlOpts, workspace.WithWriter(o.writer))
	}
	ws := workspace.New(o.engine, ctrlOpts...)
	if _, err := ws.ApplyExternal(ctx, strings.TrimPrefix(rawQuery, "?")); err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	return ws, nil
}

// Compute evaluates a single state of fluid without tracking it.
// Both values go through the numeric normalizer first. On failure the returned
// state carries the user-facing message of the error and no results.
func Compute(ctx context.Context, fluid string, cand domain.Candidate, opts ...Option) (domain.ComputedState, error) {
	o := resolve(opts)
	cand.Value1 = numeric.Normalize(cand.Value1)
	cand.Value2 = numeric.Normalize(cand.Value2)
	def := domain.StateDefinition{
		Property1: cand.Property1,
		Value1:    cand.Value1,
		Property2: cand.Property2,
		Value2:    cand.Value2,
	}
	if err := workspace.ValidateCandidate(cand); err != nil {
		return domain.ComputedState{Definition: def, Error: domain.UserMessage(err)}, err
	}
	results, err := workspace.CalculateProperties(ctx, o.engine, fluid, def)
	if err != nil {
		return domain.ComputedState{Definition: def, Error: domain.UserMessage(err)}, err
	}
	return domain.ComputedState{Definition: def, Results: results}, nil
}
