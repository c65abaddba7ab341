package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/codec"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/numeric"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/aretw0/thermoprops/pkg/query"
	"github.com/google/uuid"
)

// Controller owns the tracked states, the view configuration and the selected settings.
type Controller struct {
	engine ports.PropertyEngine
	writer ports.QueryWriter
	codec  *codec.Codec
	logger *slog.Logger
	hooks  domain.WorkspaceHooks
	newID  func() string

	prevalidate bool

	settings  domain.Settings
	view      domain.ViewConfig
	states    []domain.StateDefinition
	persisted string
	formErr   error
}

// Option configures a Controller.
type Option func(*Controller)

// WithWriter sets the destination of outbound synchronization.
// Without a writer the controller only tracks the persisted query in memory.
func WithWriter(w ports.QueryWriter) Option {
	return func(c *Controller) {
		c.writer = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks. They are shared with the codec.
func WithHooks(hooks domain.WorkspaceHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithIDGenerator overrides the state id source (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// WithPrevalidation toggles the engine round-trip performed by AddState.
func WithPrevalidation(enabled bool) Option {
	return func(c *Controller) {
		c.prevalidate = enabled
	}
}

// WithSettings sets the initial fluid and units.
func WithSettings(s domain.Settings) Option {
	return func(c *Controller) {
		c.settings = withDefaultUnits(s)
	}
}

// New creates a Controller with an empty collection and the default view.
func New(engine ports.PropertyEngine, opts ...Option) *Controller {
	c := &Controller{
		engine:      engine,
		logger:      logging.NewNop(),
		newID:       uuid.NewString,
		prevalidate: true,
		settings:    domain.Settings{Units: domain.DefaultUnits},
		view:        domain.DefaultViewConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.codec = codec.New(codec.WithLogger(c.logger), codec.WithHooks(c.hooks))
	return c
}

// States returns a copy of the tracked states, in insertion order.
func (c *Controller) States() []domain.StateDefinition {
	return domain.CloneStates(c.states)
}

// View returns the current view configuration.
func (c *Controller) View() domain.ViewConfig {
	return c.view
}

// Settings returns the selected fluid and units.
func (c *Controller) Settings() domain.Settings {
	return c.settings
}

// Query returns the last persisted query string.
func (c *Controller) Query() string {
	return c.persisted
}

// FormError returns the error of the last AddState attempt, if it failed.
func (c *Controller) FormError() error {
	return c.formErr
}

// Snapshot captures the observable state of the workspace.
func (c *Controller) Snapshot(id string) *domain.Snapshot {
	return &domain.Snapshot{
		WorkspaceID: id,
		Settings:    c.settings,
		View:        c.view,
		States:      c.States(),
	}
}

// AddState validates a candidate and appends it as a new state.
// On failure the error is also retained as the form error until the next attempt.
func (c *Controller) AddState(ctx context.Context, cand domain.Candidate) (domain.StateDefinition, error) {
	c.formErr = nil

	def, err := c.admit(ctx, cand)
	if err != nil {
		c.formErr = err
		c.logger.Debug("State rejected", "fluid", c.settings.Fluid, "err", err)
		return domain.StateDefinition{}, err
	}

	c.states = append(c.states, def)
	if c.hooks.OnStateAdded != nil {
		c.hooks.OnStateAdded(ctx, &domain.StateEvent{
			EventBase: domain.NewEventBase(domain.EventStateAdded),
			State:     def,
			Fluid:     c.settings.Fluid,
		})
	}

	if _, _, err := c.Synchronize(ctx); err != nil {
		return def, err
	}
	return def, nil
}

func (c *Controller) admit(ctx context.Context, cand domain.Candidate) (domain.StateDefinition, error) {
	if c.settings.Fluid == "" {
		return domain.StateDefinition{}, domain.ErrFluidRequired
	}

	cand.Value1 = numeric.Normalize(cand.Value1)
	cand.Value2 = numeric.Normalize(cand.Value2)
	if err := ValidateCandidate(cand); err != nil {
		return domain.StateDefinition{}, err
	}
	if _, err := numeric.ParseCanonical(cand.Value1); err != nil {
		return domain.StateDefinition{}, err
	}
	if _, err := numeric.ParseCanonical(cand.Value2); err != nil {
		return domain.StateDefinition{}, err
	}

	def := domain.StateDefinition{
		ID:        c.newID(),
		Label:     domain.StateLabel(len(c.states) + 1),
		Property1: cand.Property1,
		Value1:    cand.Value1,
		Property2: cand.Property2,
		Value2:    cand.Value2,
	}

	if c.prevalidate && c.engine != nil && c.engine.Ready() {
		if _, err := CalculateProperties(ctx, c.engine, c.settings.Fluid, def); err != nil {
			if errors.Is(err, domain.ErrEngineUnavailable) {
				return domain.StateDefinition{}, err
			}
			return domain.StateDefinition{}, fmt.Errorf("%w: %v", domain.ErrRejectedInput, err)
		}
	}
	return def, nil
}

// RemoveState deletes the state with the given id. Unknown ids are ignored.
// Remaining labels keep their numbering.
func (c *Controller) RemoveState(ctx context.Context, id string) error {
	idx := -1
	for i, s := range c.states {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := c.states[idx]
	next := make([]domain.StateDefinition, 0, len(c.states)-1)
	next = append(next, c.states[:idx]...)
	c.states = append(next, c.states[idx+1:]...)

	if c.hooks.OnStateRemoved != nil {
		c.hooks.OnStateRemoved(ctx, &domain.StateEvent{
			EventBase: domain.NewEventBase(domain.EventStateRemoved),
			State:     removed,
			Fluid:     c.settings.Fluid,
		})
	}

	_, _, err := c.Synchronize(ctx)
	return err
}

// SetViewMode switches between graph and table.
func (c *Controller) SetViewMode(ctx context.Context, mode domain.ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidViewMode, mode)
	}
	c.view.Mode = mode
	_, _, err := c.Synchronize(ctx)
	return err
}

// SetPlot selects the chart type.
func (c *Controller) SetPlot(ctx context.Context, plotID string) error {
	c.view.PlotID = plotID
	_, _, err := c.Synchronize(ctx)
	return err
}

// SetIsolineParameter selects the isoline family drawn on the chart.
func (c *Controller) SetIsolineParameter(ctx context.Context, param int) error {
	c.view.IsolineParameter = param
	_, _, err := c.Synchronize(ctx)
	return err
}

// SetSettings replaces the fluid and units received from the settings screen.
func (c *Controller) SetSettings(ctx context.Context, s domain.Settings) error {
	c.settings = withDefaultUnits(s)
	_, _, err := c.Synchronize(ctx)
	return err
}

// Synchronize runs the outbound reaction: memory is projected onto the query and
// written only when it differs from the persisted one. Nothing is written while no
// fluid is selected.
func (c *Controller) Synchronize(ctx context.Context) (string, bool, error) {
	if c.settings.Fluid == "" {
		return c.persisted, false, nil
	}

	base, _ := url.ParseQuery(c.persisted)
	token := ""
	if len(c.states) > 0 {
		token = c.codec.Encode(c.states)
	}
	next := query.Encode(query.Build(base, c.settings, c.view, token))
	if next == c.persisted {
		return next, false, nil
	}

	if c.writer != nil {
		if err := c.writer.Write(ctx, next); err != nil {
			return c.persisted, false, fmt.Errorf("failed to write workspace query: %w", err)
		}
	}
	c.persisted = next
	c.logger.Debug("Workspace query written", "query", next)

	if c.hooks.OnSync != nil {
		c.hooks.OnSync(ctx, &domain.SyncEvent{
			EventBase: domain.NewEventBase(domain.EventSync),
			Direction: domain.SyncOutbound,
			Query:     next,
		})
	}
	return next, true, nil
}

// ApplyExternal runs the inbound reaction for a query changed outside the controller
// (navigation, another replica, a stored session). Memory is replaced field by field,
// only where the query differs. The outbound reaction then canonicalizes the query.
func (c *Controller) ApplyExternal(ctx context.Context, raw string) (bool, error) {
	p, err := query.Parse(raw)
	if err != nil {
		c.logger.Warn("Malformed workspace query", "err", err)
	}

	changed := false
	if p.Settings != c.settings {
		c.settings = p.Settings
		changed = true
	}
	if p.View.Mode != c.view.Mode {
		c.view.Mode = p.View.Mode
		changed = true
	}
	if p.View.PlotID != c.view.PlotID {
		c.view.PlotID = p.View.PlotID
		changed = true
	}
	if p.View.IsolineParameter != c.view.IsolineParameter {
		c.view.IsolineParameter = p.View.IsolineParameter
		changed = true
	}

	decoded := normalizeStates(c.codec.Decode(ctx, p.States))
	if !domain.StatesEqual(decoded, c.states) {
		c.states = decoded
		changed = true
	}

	c.persisted = query.Encode(p.Values)
	if c.hooks.OnSync != nil {
		c.hooks.OnSync(ctx, &domain.SyncEvent{
			EventBase: domain.NewEventBase(domain.EventSync),
			Direction: domain.SyncInbound,
			Query:     c.persisted,
		})
	}

	if _, _, err := c.Synchronize(ctx); err != nil {
		return changed, err
	}
	return changed, nil
}

// normalizeStates runs both values of every decoded state through the normalizer,
// so hand-edited links with comma decimals compute like typed input does.
func normalizeStates(states []domain.StateDefinition) []domain.StateDefinition {
	for i := range states {
		states[i].Value1 = numeric.Normalize(states[i].Value1)
		states[i].Value2 = numeric.Normalize(states[i].Value2)
	}
	return states
}

// ComputedStates evaluates every tracked state. Failures become per-state error markers.
func (c *Controller) ComputedStates(ctx context.Context) []domain.ComputedState {
	out := make([]domain.ComputedState, 0, len(c.states))
	for _, def := range c.states {
		cs, err := computeState(ctx, c.engine, c.settings.Fluid, def)
		if err != nil {
			c.logger.Debug("State evaluation failed", "state", def.ID, "err", err)
			if c.hooks.OnComputeError != nil {
				c.hooks.OnComputeError(ctx, &domain.FailureEvent{
					EventBase: domain.NewEventBase(domain.EventComputeError),
					Kind:      cs.Error,
					Detail:    err.Error(),
				})
			}
		}
		out = append(out, cs)
	}
	return out
}

// Axes returns the axis mapping of the current chart, if it is a known one.
func (c *Controller) Axes() (domain.AxisMapping, bool) {
	axes, ok := domain.DefaultAxes[c.view.PlotID]
	return axes, ok
}

// PlotPoints places the tracked states on the current chart.
func (c *Controller) PlotPoints(ctx context.Context) []domain.PlotPoint {
	axes, ok := c.Axes()
	if !ok {
		return nil
	}
	return DerivePlotPoints(c.ComputedStates(ctx), axes)
}

func withDefaultUnits(s domain.Settings) domain.Settings {
	if s.Units == "" {
		s.Units = domain.DefaultUnits
	}
	return s
}
