package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

// ControllerFactory builds a controller whose outbound writes go to w.
type ControllerFactory func(w ports.QueryWriter) *workspace.Controller

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates workspace access, ensuring safe concurrent operations.
// Unused locks are reclaimed by reference counting.
type Manager struct {
	store   ports.QueryStore
	factory ControllerFactory

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks (30s by default).
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over store. The factory builds the controllers handed to Open.
func NewManager(store ports.QueryStore, factory ControllerFactory, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		factory: factory,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Create stores a new workspace from an initial query (possibly empty) and returns its snapshot.
// An existing workspace with the same id is left untouched.
func (m *Manager) Create(ctx context.Context, id string, initial string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		raw, err := m.store.Load(ctx, id)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrWorkspaceNotFound):
			raw = initial
		default:
			return fmt.Errorf("failed to check workspace existence: %w", err)
		}

		c := m.factory(ports.StoreWriter(m.store, id))
		if _, err := c.ApplyExternal(ctx, raw); err != nil {
			return err
		}
		// Without a fluid nothing was written; reserve the id anyway.
		if err := m.store.Save(ctx, id, c.Query()); err != nil {
			return fmt.Errorf("failed to initialize workspace: %w", err)
		}
		snap = c.Snapshot(id)
		return nil
	})
	return snap, err
}

// Open runs fn against the controller of an existing workspace and reports what changed.
// Mutations performed by fn are persisted by the controller as they happen.
func (m *Manager) Open(ctx context.Context, id string, fn func(context.Context, *workspace.Controller) error) (*domain.WorkspaceDiff, error) {
	var diff *domain.WorkspaceDiff
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		raw, err := m.store.Load(ctx, id)
		if err != nil {
			return err
		}

		c := m.factory(ports.StoreWriter(m.store, id))
		if _, err := c.ApplyExternal(ctx, raw); err != nil {
			return err
		}

		before := c.Snapshot(id)
		fnErr := fn(ctx, c)
		diff = domain.Diff(before, c.Snapshot(id))
		return fnErr
	})
	return diff, err
}

// Snapshot returns the current state of a workspace without mutating it.
func (m *Manager) Snapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	_, err := m.Open(ctx, id, func(_ context.Context, c *workspace.Controller) error {
		snap = c.Snapshot(id)
		return nil
	})
	return snap, err
}

// Load returns the stored query of a workspace.
func (m *Manager) Load(ctx context.Context, id string) (string, error) {
	var raw string
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		raw, err = m.store.Load(ctx, id)
		return err
	})
	return raw, err
}

// Delete removes the workspace from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying query store.
func (m *Manager) Store() ports.QueryStore {
	return m.store
}

// WithLock executes a function while holding the lock for the workspace.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			// Release with a fresh context: ctx may already be canceled.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"workspace_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
