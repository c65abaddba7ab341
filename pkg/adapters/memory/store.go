package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// Store implements ports.QueryStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]string),
	}
}

// Save persists the query in memory.
func (s *Store) Save(ctx context.Context, id string, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = query
	return nil
}

// Load retrieves the query from memory.
func (s *Store) Load(ctx context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, ok := s.data[id]
	if !ok {
		return "", domain.ErrWorkspaceNotFound
	}
	return query, nil
}

// Delete removes the workspace.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored workspace IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
