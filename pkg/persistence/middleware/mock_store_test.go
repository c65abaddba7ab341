package middleware_test

import (
	"context"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]string),
	}
}

func (s *MockStore) Save(ctx context.Context, id string, query string) error {
	s.data[id] = query
	return nil
}

func (s *MockStore) Load(ctx context.Context, id string) (string, error) {
	q, ok := s.data[id]
	if !ok {
		return "", domain.ErrWorkspaceNotFound
	}
	return q, nil
}

func (s *MockStore) Delete(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.QueryStore = (*MockStore)(nil)
