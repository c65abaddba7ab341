package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// LogHooks returns hooks that log every workspace event.
func LogHooks(logger *slog.Logger) domain.WorkspaceHooks {
	return domain.WorkspaceHooks{
		OnStateAdded: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "state_added", "state_id", e.State.ID, "label", e.State.Label, "fluid", e.Fluid)
		},
		OnStateRemoved: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "state_removed", "state_id", e.State.ID, "fluid", e.Fluid)
		},
		OnSync: func(ctx context.Context, e *domain.SyncEvent) {
			logger.DebugContext(ctx, "sync", "direction", e.Direction, "query", e.Query)
		},
		OnDecodeFailure: func(ctx context.Context, e *domain.FailureEvent) {
			logger.WarnContext(ctx, "decode_failure", "kind", e.Kind, "detail", e.Detail)
		},
		OnComputeError: func(ctx context.Context, e *domain.FailureEvent) {
			logger.WarnContext(ctx, "compute_error", "kind", e.Kind, "detail", e.Detail)
		},
	}
}

// Merge fans every event out to all hook sets, in order.
func Merge(sets ...domain.WorkspaceHooks) domain.WorkspaceHooks {
	var out domain.WorkspaceHooks
	for _, h := range sets {
		out.OnStateAdded = chain(out.OnStateAdded, h.OnStateAdded)
		out.OnStateRemoved = chain(out.OnStateRemoved, h.OnStateRemoved)
		out.OnSync = chain(out.OnSync, h.OnSync)
		out.OnDecodeFailure = chain(out.OnDecodeFailure, h.OnDecodeFailure)
		out.OnComputeError = chain(out.OnComputeError, h.OnComputeError)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
