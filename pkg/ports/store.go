package ports

import (
	"context"
)

// QueryWriter receives the persisted query of a single workspace.
// The controller only calls Write when the query string actually changed.
type QueryWriter interface {
	Write(ctx context.Context, query string) error
}

// QueryWriterFunc adapts a function to QueryWriter.
type QueryWriterFunc func(ctx context.Context, query string) error

// Write calls f(ctx, query).
func (f QueryWriterFunc) Write(ctx context.Context, query string) error {
	return f(ctx, query)
}

// QueryStore persists workspace queries by workspace id.
type QueryStore interface {
	// Save persists the query for a given workspace ID.
	Save(ctx context.Context, id string, query string) error

	// Load retrieves the query for a given workspace ID.
	// Returns domain.ErrWorkspaceNotFound if the workspace does not exist.
	Load(ctx context.Context, id string) (string, error)

	// Delete removes the query for a given workspace ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored workspaces.
	List(ctx context.Context) ([]string, error)
}

// StoreWriter binds a QueryStore to one workspace id.
func StoreWriter(store QueryStore, id string) QueryWriter {
	return QueryWriterFunc(func(ctx context.Context, query string) error {
		return store.Save(ctx, id, query)
	})
}
